package models

import "time"

// TransactionKind classifies a ledger transaction.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
	KindTransfer   TransactionKind = "transfer"
	KindPayment    TransactionKind = "payment"
)

// Transaction represents a financial transaction as recorded by the ledger.
// Amount is in minor currency units (cents) to avoid floating-point error;
// the ledger guarantees it is non-negative.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Kind        TransactionKind `json:"kind"`
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	Metadata    Metadata        `json:"metadata,omitempty"`
	ExternalRef string          `json:"external_ref,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
