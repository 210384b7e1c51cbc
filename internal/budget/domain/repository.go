package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OwnerScope restricts reads and writes to rows owned by a single user.
// Admin callers see every row.
type OwnerScope struct {
	UserID string
	Admin  bool
}

// AccountRepository is the persistence port for accounts.
// Write methods take the transaction session they must run in; read methods
// run on the shared pool and are filtered by the caller's owner scope.
type AccountRepository interface {
	FindByID(ctx context.Context, scope OwnerScope, id int64) (*Account, error)
	FindAll(ctx context.Context, scope OwnerScope) ([]Account, error)
	Create(ctx context.Context, tx *gorm.DB, account *Account) error

	// Update persists the client-writable fields (name, type).
	Update(ctx context.Context, tx *gorm.DB, account *Account) error

	// SetBalance writes the new balance with an optimistic version check.
	// No rows updated means the observed version is stale.
	SetBalance(ctx context.Context, tx *gorm.DB, id int64, balance decimal.Decimal, version int64) error

	Delete(ctx context.Context, tx *gorm.DB, id int64) error
}

// TransactionRepository is the persistence port for transactions.
type TransactionRepository interface {
	FindByID(ctx context.Context, scope OwnerScope, id int64) (*Transaction, error)

	// FindAll lists transactions in scope, optionally restricted to one
	// account (accountID > 0).
	FindAll(ctx context.Context, scope OwnerScope, accountID int64) ([]Transaction, error)

	Create(ctx context.Context, tx *gorm.DB, txn *Transaction) error
	Update(ctx context.Context, tx *gorm.DB, txn *Transaction) error
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
	DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID int64) error
}

// TxManager runs a function inside a single database transaction.
// A non-nil error from fn rolls back every write performed within it.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
