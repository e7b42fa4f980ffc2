package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role identifies what an account holder may do. Assigned at creation,
// never changed afterwards.
type Role string

const (
	RoleUser    Role = "user"
	RoleClerk   Role = "clerk"
	RoleManager Role = "manager"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleClerk, RoleManager:
		return true
	}
	return false
}

// TransactionKind classifies a ledger record.
type TransactionKind string

const (
	TxDeposit         TransactionKind = "deposit"
	TxWithdraw        TransactionKind = "withdraw"
	TxAccountCreated  TransactionKind = "account_created"
	TxEditedByManager TransactionKind = "edited_by_manager"
	TxEditedByClerk   TransactionKind = "edited_by_clerk"
)

// Transaction is a single immutable ledger record. Records are only ever
// appended to an account, never edited or removed.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        TransactionKind `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	PerformedBy string          `json:"performedBy,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Account represents a bank account together with its ledger.
type Account struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Credential   Credential      `json:"-"`
	Role         Role            `json:"accountType"`
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
}

// Clone returns a detached copy of the account. The transaction slice is
// copied so the caller cannot alias the original ledger.
func (a Account) Clone() Account {
	cp := a
	cp.Transactions = make([]Transaction, len(a.Transactions))
	copy(cp.Transactions, a.Transactions)
	return cp
}
