package scan

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github/chapool/tron-custody/internal/wallet/tron"
)

// sunPerTRX 为链上最小单位换算系数.
var sunPerTRX = decimal.New(1, 6)

// ParseTransaction 将节点返回的原始交易转换为 ParsedTransaction.
// 该函数是全函数: 任何结构良好的输入都有返回值, 缺失的可选字段以零值表示.
// 非 TransferContract 类型只保留哈希与状态, from/to 为空, 金额为 "0".
func ParseTransaction(tx *tron.Transaction) ParsedTransaction {
	parsed := ParsedTransaction{
		Hash:          tx.TxID,
		Amount:        "0",
		Fee:           "0",
		Status:        StatusSuccess,
		IsError:       "0",
		Confirmations: strconv.FormatInt(tx.BlockNumber, 10),
	}

	// 失败判定: 第一个返回码存在且不是 SUCCESS
	if len(tx.Ret) > 0 && tx.Ret[0].ContractRet != tron.ContractRetSuccess {
		parsed.Status = StatusFailed
		parsed.IsError = "1"
	}

	// 手续费优先取回执字段, 其次交易自身字段
	fee := tx.Fee
	if len(tx.Ret) > 0 && tx.Ret[0].Fee > 0 {
		fee = tx.Ret[0].Fee
	}
	parsed.Fee = decimal.NewFromInt(fee).Div(sunPerTRX).String()

	timestamp := tx.BlockTimestamp
	if timestamp == 0 {
		timestamp = tx.RawData.Timestamp
	}
	if timestamp > 0 {
		parsed.Timestamp = time.UnixMilli(timestamp).UTC().Format(time.RFC3339)
	}

	// 仅检查第一条指令, 非转账类型不填充转账字段
	if len(tx.RawData.Contract) == 0 || tx.RawData.Contract[0].Type != tron.TransferContractType {
		return parsed
	}

	value := tx.RawData.Contract[0].Parameter.Value
	parsed.From = tron.NormalizeAddress(value.OwnerAddress)
	parsed.To = tron.NormalizeAddress(value.ToAddress)
	parsed.Amount = decimal.NewFromInt(value.Amount).Div(sunPerTRX).String()

	return parsed
}

// ParseBlock 解析区块内全部交易, 并把区块高度与时间戳写入每笔交易.
func ParseBlock(block *tron.Block) []ParsedTransaction {
	parsed := make([]ParsedTransaction, 0, len(block.Transactions))

	for i := range block.Transactions {
		tx := block.Transactions[i]
		tx.BlockNumber = block.BlockHeader.RawData.Number
		tx.BlockTimestamp = block.BlockHeader.RawData.Timestamp

		parsed = append(parsed, ParseTransaction(&tx))
	}

	return parsed
}
