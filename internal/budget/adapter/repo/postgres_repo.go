package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrack/household-budget/internal/budget/domain"
)

// ErrStaleVersion is returned by SetBalance when the optimistic version
// check matches no rows (the account was modified concurrently).
var ErrStaleVersion = errors.New("account version is stale")

// scoped applies the owner filter unless the caller is admin.
func scoped(db *gorm.DB, scope domain.OwnerScope) *gorm.DB {
	if scope.Admin {
		return db
	}
	return db.Where("owner_user_id = ?", scope.UserID)
}

type PostgresAccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

func (r *PostgresAccountRepo) FindByID(ctx context.Context, scope domain.OwnerScope, id int64) (*domain.Account, error) {
	var account domain.Account
	err := scoped(r.db.WithContext(ctx), scope).First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *PostgresAccountRepo) FindAll(ctx context.Context, scope domain.OwnerScope) ([]domain.Account, error) {
	var accounts []domain.Account
	err := scoped(r.db.WithContext(ctx), scope).Order("id").Find(&accounts).Error
	return accounts, err
}

func (r *PostgresAccountRepo) Create(ctx context.Context, tx *gorm.DB, account *domain.Account) error {
	return tx.WithContext(ctx).Create(account).Error
}

func (r *PostgresAccountRepo) Update(ctx context.Context, tx *gorm.DB, account *domain.Account) error {
	return tx.WithContext(ctx).Model(account).
		Select("name", "type").
		Updates(map[string]interface{}{
			"name": account.Name,
			"type": account.Type,
		}).Error
}

// SetBalance writes an absolute balance guarded by the version the caller
// observed when it read the account.
// SQL: UPDATE accounts SET balance = ?, version = version + 1 WHERE id = ? AND version = ?
func (r *PostgresAccountRepo) SetBalance(ctx context.Context, tx *gorm.DB, id int64, balance decimal.Decimal, version int64) error {
	result := tx.WithContext(ctx).Model(&domain.Account{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"balance": balance,
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("account %d: %w", id, ErrStaleVersion)
	}
	return nil
}

func (r *PostgresAccountRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	return tx.WithContext(ctx).Delete(&domain.Account{}, id).Error
}

// ---------------------------------------------------------

type PostgresTransactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) *PostgresTransactionRepo {
	return &PostgresTransactionRepo{db: db}
}

func (r *PostgresTransactionRepo) FindByID(ctx context.Context, scope domain.OwnerScope, id int64) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := scoped(r.db.WithContext(ctx), scope).First(&txn, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *PostgresTransactionRepo) FindAll(ctx context.Context, scope domain.OwnerScope, accountID int64) ([]domain.Transaction, error) {
	q := scoped(r.db.WithContext(ctx), scope)
	if accountID > 0 {
		q = q.Where("account_id = ?", accountID)
	}
	var txns []domain.Transaction
	err := q.Order("date DESC, id DESC").Find(&txns).Error
	return txns, err
}

func (r *PostgresTransactionRepo) Create(ctx context.Context, tx *gorm.DB, txn *domain.Transaction) error {
	return tx.WithContext(ctx).Create(txn).Error
}

func (r *PostgresTransactionRepo) Update(ctx context.Context, tx *gorm.DB, txn *domain.Transaction) error {
	// Only the mutable fields; id and account_id stay untouched.
	return tx.WithContext(ctx).Model(txn).
		Select("amount", "kind", "date", "description").
		Updates(map[string]interface{}{
			"amount":      txn.Amount,
			"kind":        txn.Kind,
			"date":        txn.Date,
			"description": txn.Description,
		}).Error
}

func (r *PostgresTransactionRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	return tx.WithContext(ctx).Delete(&domain.Transaction{}, id).Error
}

func (r *PostgresTransactionRepo) DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID int64) error {
	return tx.WithContext(ctx).Where("account_id = ?", accountID).Delete(&domain.Transaction{}).Error
}

// ---------------------------------------------------------

// GormTxManager scopes one gorm transaction per unit of work; gorm commits
// when fn returns nil and rolls back otherwise.
type GormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
