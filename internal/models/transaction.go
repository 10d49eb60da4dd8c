package models

import "time"

type TransactionType string

const (
	TxnBuyer  TransactionType = "buyer"
	TxnSeller TransactionType = "seller"
)

func (t TransactionType) Valid() bool { return t == TxnBuyer || t == TxnSeller }

type TransactionStatus string

const (
	TxnPending   TransactionStatus = "Pending"
	TxnCompleted TransactionStatus = "Completed"
	TxnRefunded  TransactionStatus = "Refunded"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TxnPending, TxnCompleted, TxnRefunded:
		return true
	}
	return false
}

// Terminal reports whether s is one of the statuses set by completion.
func (s TransactionStatus) Terminal() bool { return s == TxnCompleted || s == TxnRefunded }

// Transaction is the off-chain mirror of an escrow, seen from one party.
// CompletedAt is non-nil exactly when Status is terminal, as long as the
// record is only finished through the complete path.
type Transaction struct {
	ID                  string            `json:"id"`
	UserAddress         string            `json:"user_address"`
	CounterpartyAddress string            `json:"counterparty_address"`
	Amount              float64           `json:"amount"`
	Status              TransactionStatus `json:"status"`
	AssetID             string            `json:"asset_id"`
	TransactionType     TransactionType   `json:"transaction_type"`
	CreatedAt           time.Time         `json:"created_at"`
	CompletedAt         *time.Time        `json:"completed_at"`
}

// Columns a transaction patch may touch.
const (
	ColUserAddress         = "user_address"
	ColCounterpartyAddress = "counterparty_address"
	ColAmount              = "amount"
	ColStatus              = "status"
	ColAssetID             = "asset_id"
	ColTransactionType     = "transaction_type"
	ColCompletedAt         = "completed_at"
)

// TransactionPatchFields is the allow-list accepted by PATCH /transactions/{id}.
var TransactionPatchFields = []string{
	ColUserAddress,
	ColCounterpartyAddress,
	ColAmount,
	ColStatus,
	ColAssetID,
	ColTransactionType,
	ColCompletedAt,
}
