package deposit

import "context"

// Wallet identifies the custodial wallet a monitor session belongs to.
type Wallet struct {
	ID     string
	UserID string
}

// Event 是入账后推送给记账方的标准化充值描述.
type Event struct {
	Chain  string `json:"chain"`
	Hash   string `json:"hash"`
	Type   string `json:"type"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	Fee    string `json:"fee"`
	Status string `json:"status"`
}

const (
	chainName       = "TRON"
	eventType       = "DEPOSIT"
	statusCompleted = "COMPLETED"
)

// Ledger answers whether a deposit has already been credited to a user.
type Ledger interface {
	HasDepositTransaction(ctx context.Context, hash string, userID string) (bool, error)
}
