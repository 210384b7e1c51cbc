package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a named monetary balance owned by a user.
// Invariant: Balance equals the starting balance plus the net signed sum of
// all posted transactions (credit = +amount, expense = -amount).
type Account struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Type        AccountType     `gorm:"type:varchar(16);not null"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OwnerUserID string          `gorm:"type:varchar(36);index;not null"`
	Version     int64           `gorm:"not null;default:1"` // optimistic lock
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Account) TableName() string {
	return "budget.accounts"
}

// Transaction is a single posted amount affecting exactly one account.
// Amount is always a positive magnitude; the sign is implied by Kind.
// AccountID is immutable once the row is created.
type Transaction struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	AccountID   int64           `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Kind        TransactionKind `gorm:"type:varchar(10);not null"`
	Date        time.Time       `gorm:"not null"`
	Description string          `gorm:"type:text"`
	OwnerUserID string          `gorm:"type:varchar(36);index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Transaction) TableName() string {
	return "budget.transactions"
}

// SignedAmount returns the transaction's effect on its account balance:
// positive for credit, negative for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == Credit {
		return t.Amount
	}
	return t.Amount.Neg()
}
