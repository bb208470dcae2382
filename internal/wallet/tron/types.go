package tron

// 链上数据结构, 对应全节点 HTTP API 的 JSON 响应 (visible=true, base58 地址).

// Block is a full node block as returned by getnowblock / getblockbynum.
type Block struct {
	BlockID      string        `json:"blockID"`
	BlockHeader  BlockHeader   `json:"block_header"`
	Transactions []Transaction `json:"transactions"`
}

type BlockHeader struct {
	RawData BlockHeaderRaw `json:"raw_data"`
}

type BlockHeaderRaw struct {
	Number    int64 `json:"number"`
	Timestamp int64 `json:"timestamp"`
}

// Transaction is a chain transaction. When fetched via gettransactionbyid
// the block fields are zero; the monitor merges them from TransactionInfo.
type Transaction struct {
	TxID       string     `json:"txID"`
	Ret        []TxResult `json:"ret"`
	RawData    TxRawData  `json:"raw_data"`
	RawDataHex string     `json:"raw_data_hex"`
	Signature  []string   `json:"signature"`

	// Enriched fields, not part of the node response.
	Fee            int64 `json:"-"`
	BlockNumber    int64 `json:"-"`
	BlockTimestamp int64 `json:"-"`
}

type TxResult struct {
	ContractRet string `json:"contractRet"`
	Fee         int64  `json:"fee"`
}

type TxRawData struct {
	Contract      []Contract `json:"contract"`
	RefBlockBytes string     `json:"ref_block_bytes"`
	RefBlockHash  string     `json:"ref_block_hash"`
	Expiration    int64      `json:"expiration"`
	Timestamp     int64      `json:"timestamp"`
	FeeLimit      int64      `json:"fee_limit,omitempty"`
}

type Contract struct {
	Type      string            `json:"type"`
	Parameter ContractParameter `json:"parameter"`
}

type ContractParameter struct {
	Value   ContractValue `json:"value"`
	TypeURL string        `json:"type_url"`
}

// ContractValue carries the fields of a TransferContract. Other contract
// types leave the transfer fields empty and are skipped by the parser.
type ContractValue struct {
	OwnerAddress string `json:"owner_address"`
	ToAddress    string `json:"to_address"`
	Amount       int64  `json:"amount"`
}

// Account is the getaccount response. The node returns an empty object
// for addresses that never appeared on chain.
type Account struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

// AccountNet is the getaccountnet response (bandwidth accounting).
type AccountNet struct {
	FreeNetUsed  int64 `json:"freeNetUsed"`
	FreeNetLimit int64 `json:"freeNetLimit"`
	NetUsed      int64 `json:"NetUsed"`
	NetLimit     int64 `json:"NetLimit"`
}

// TransactionInfo is the gettransactioninfobyid response, carrying the
// confirmed fee and block placement of a transaction.
type TransactionInfo struct {
	ID             string    `json:"id"`
	Fee            int64     `json:"fee"`
	BlockNumber    int64     `json:"blockNumber"`
	BlockTimeStamp int64     `json:"blockTimeStamp"`
	Receipt        TxReceipt `json:"receipt"`
}

type TxReceipt struct {
	Result   string `json:"result"`
	NetUsage int64  `json:"net_usage"`
	NetFee   int64  `json:"net_fee"`
}

// BroadcastResult is the broadcasttransaction response.
type BroadcastResult struct {
	Result  bool   `json:"result"`
	TxID    string `json:"txid"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ContractRetSuccess is the contractRet value of a successful execution.
const ContractRetSuccess = "SUCCESS"

// TransferContractType identifies a native TRX transfer.
const TransferContractType = "TransferContract"
