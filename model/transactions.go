package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of ledger entry.
type TransactionType string

const (
	TypeDeposit        TransactionType = "Deposit"
	TypeWithdraw       TransactionType = "Withdraw"
	TypeTransfer       TransactionType = "Transfer"
	TypeInitialDeposit TransactionType = "Initial Deposit"
)

// Transaction is an immutable, append-only ledger entry. Credits (Deposit,
// Initial Deposit) reference the account through ToAccountID, debits
// (Withdraw) through FromAccountID, and a Transfer references both.
type Transaction struct {
	ID            int64           `json:"id"`
	Type          TransactionType `json:"type"`
	FromAccountID *int64          `json:"from_account_id,omitempty"`
	ToAccountID   *int64          `json:"to_account_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
	Note          string          `json:"note"`
}
