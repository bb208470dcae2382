package scan

// 交易执行状态.
const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// ParsedTransaction 是链上交易解析后的统一视图, 金额与手续费均为 TRX 十进制字符串.
type ParsedTransaction struct {
	Hash          string `json:"hash"`
	From          string `json:"from"`
	To            string `json:"to"`
	Amount        string `json:"amount"`
	Fee           string `json:"fee"`
	Status        string `json:"status"`        // Success | Failed
	IsError       string `json:"isError"`       // "0" 成功, "1" 失败
	Confirmations string `json:"confirmations"` // 所在区块高度, 未知为 "0"
	Timestamp     string `json:"timestamp"`     // ISO-8601, 未知为空
}

// Success reports whether the transaction executed successfully on chain.
func (t ParsedTransaction) Success() bool {
	return t.IsError == "0"
}
