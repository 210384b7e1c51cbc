package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrack/household-budget/internal/budget/domain"
)

// fakeDB is an in-memory stand-in for the persistence layer. The fake tx
// manager snapshots it before each unit of work and restores it on error so
// rollback behavior can be asserted.
type fakeDB struct {
	accounts map[int64]domain.Account
	txns     map[int64]domain.Transaction

	nextAccountID int64
	nextTxnID     int64

	failAccountFind error
	failSetBalance  error
	failTxnCreate   error
	failTxnDelete   error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		accounts:      make(map[int64]domain.Account),
		txns:          make(map[int64]domain.Transaction),
		nextAccountID: 1,
		nextTxnID:     1,
	}
}

func (f *fakeDB) clone() (map[int64]domain.Account, map[int64]domain.Transaction) {
	accounts := make(map[int64]domain.Account, len(f.accounts))
	for id, a := range f.accounts {
		accounts[id] = a
	}
	txns := make(map[int64]domain.Transaction, len(f.txns))
	for id, t := range f.txns {
		txns[id] = t
	}
	return accounts, txns
}

func inScope(scope domain.OwnerScope, owner string) bool {
	return scope.Admin || scope.UserID == owner
}

type fakeTxManager struct {
	db *fakeDB
}

func (m *fakeTxManager) WithinTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	accounts, txns := m.db.clone()
	if err := fn(nil); err != nil {
		m.db.accounts, m.db.txns = accounts, txns
		return err
	}
	return nil
}

type fakeAccountRepo struct {
	db *fakeDB
}

func (r *fakeAccountRepo) FindByID(_ context.Context, scope domain.OwnerScope, id int64) (*domain.Account, error) {
	if r.db.failAccountFind != nil {
		return nil, r.db.failAccountFind
	}
	a, ok := r.db.accounts[id]
	if !ok || !inScope(scope, a.OwnerUserID) {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *fakeAccountRepo) FindAll(_ context.Context, scope domain.OwnerScope) ([]domain.Account, error) {
	var out []domain.Account
	for _, a := range r.db.accounts {
		if inScope(scope, a.OwnerUserID) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAccountRepo) Create(_ context.Context, _ *gorm.DB, account *domain.Account) error {
	account.ID = r.db.nextAccountID
	r.db.nextAccountID++
	if account.Version == 0 {
		account.Version = 1
	}
	r.db.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, _ *gorm.DB, account *domain.Account) error {
	stored, ok := r.db.accounts[account.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Name = account.Name
	stored.Type = account.Type
	r.db.accounts[account.ID] = stored
	return nil
}

func (r *fakeAccountRepo) SetBalance(_ context.Context, _ *gorm.DB, id int64, balance decimal.Decimal, version int64) error {
	if r.db.failSetBalance != nil {
		return r.db.failSetBalance
	}
	stored, ok := r.db.accounts[id]
	if !ok || stored.Version != version {
		return fmt.Errorf("account %d: stale version", id)
	}
	stored.Balance = balance
	stored.Version++
	r.db.accounts[id] = stored
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, _ *gorm.DB, id int64) error {
	delete(r.db.accounts, id)
	return nil
}

type fakeTransactionRepo struct {
	db *fakeDB
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, scope domain.OwnerScope, id int64) (*domain.Transaction, error) {
	t, ok := r.db.txns[id]
	if !ok || !inScope(scope, t.OwnerUserID) {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTransactionRepo) FindAll(_ context.Context, scope domain.OwnerScope, accountID int64) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range r.db.txns {
		if !inScope(scope, t.OwnerUserID) {
			continue
		}
		if accountID > 0 && t.AccountID != accountID {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTransactionRepo) Create(_ context.Context, _ *gorm.DB, txn *domain.Transaction) error {
	if r.db.failTxnCreate != nil {
		return r.db.failTxnCreate
	}
	txn.ID = r.db.nextTxnID
	r.db.nextTxnID++
	r.db.txns[txn.ID] = *txn
	return nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, _ *gorm.DB, txn *domain.Transaction) error {
	stored, ok := r.db.txns[txn.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Amount = txn.Amount
	stored.Kind = txn.Kind
	stored.Date = txn.Date
	stored.Description = txn.Description
	r.db.txns[txn.ID] = stored
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, _ *gorm.DB, id int64) error {
	if r.db.failTxnDelete != nil {
		return r.db.failTxnDelete
	}
	if _, ok := r.db.txns[id]; !ok {
		return errors.New("delete: transaction missing")
	}
	delete(r.db.txns, id)
	return nil
}

func (r *fakeTransactionRepo) DeleteByAccountID(_ context.Context, _ *gorm.DB, accountID int64) error {
	for id, t := range r.db.txns {
		if t.AccountID == accountID {
			delete(r.db.txns, id)
		}
	}
	return nil
}
