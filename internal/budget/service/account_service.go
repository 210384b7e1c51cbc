package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fintrack/household-budget/internal/budget/domain"
)

// CreateAccountRequest is the service-level input for opening an account.
// Balance is the starting balance; it is the only moment a caller may set it.
type CreateAccountRequest struct {
	Name    string
	Type    domain.AccountType
	Balance decimal.Decimal
}

// UpdateAccountRequest carries the client-writable fields of an account.
// Balance is deliberately absent: it only moves through transaction posting.
type UpdateAccountRequest struct {
	ID   int64
	Name string
	Type domain.AccountType
}

// AccountService implements account CRUD. Mutations run inside a unit of
// work even when they touch a single row, matching the posting flows.
type AccountService struct {
	tx       domain.TxManager
	accounts domain.AccountRepository
	txns     domain.TransactionRepository
	logger   *zap.Logger
}

func NewAccountService(tx domain.TxManager, accounts domain.AccountRepository, txns domain.TransactionRepository, logger *zap.Logger) *AccountService {
	return &AccountService{
		tx:       tx,
		accounts: accounts,
		txns:     txns,
		logger:   logger,
	}
}

func (s *AccountService) List(ctx context.Context, scope domain.OwnerScope) ([]domain.Account, error) {
	accounts, err := s.accounts.FindAll(ctx, scope)
	if err != nil {
		s.logger.Error("listing accounts failed", zap.Error(err))
		return nil, fmt.Errorf("listing accounts: %w: %w", domain.ErrOperationFailed, err)
	}
	return accounts, nil
}

func (s *AccountService) Get(ctx context.Context, scope domain.OwnerScope, id int64) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, scope, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("account %d: %w", id, err)
	}
	if err != nil {
		s.logger.Error("fetching account failed", zap.Int64("account_id", id), zap.Error(err))
		return nil, fmt.Errorf("fetching account %d: %w: %w", id, domain.ErrOperationFailed, err)
	}
	return account, nil
}

func (s *AccountService) Create(ctx context.Context, scope domain.OwnerScope, req CreateAccountRequest) (*domain.Account, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("unknown account type %q: %w", req.Type, domain.ErrInvalidOperation)
	}

	account := &domain.Account{
		Name:        req.Name,
		Type:        req.Type,
		Balance:     req.Balance,
		OwnerUserID: scope.UserID,
		Version:     1,
	}

	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		return s.accounts.Create(ctx, tx, account)
	})
	if err != nil {
		s.logger.Error("creating account failed", zap.Error(err))
		return nil, fmt.Errorf("creating account: %w: %w", domain.ErrOperationFailed, err)
	}

	s.logger.Info("account created",
		zap.Int64("account_id", account.ID),
		zap.String("type", string(account.Type)),
	)
	return account, nil
}

func (s *AccountService) Update(ctx context.Context, scope domain.OwnerScope, req UpdateAccountRequest) (*domain.Account, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("unknown account type %q: %w", req.Type, domain.ErrInvalidOperation)
	}

	account, err := s.accounts.FindByID(ctx, scope, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("account %d: %w", req.ID, err)
		}
		return nil, fmt.Errorf("fetching account %d: %w: %w", req.ID, domain.ErrOperationFailed, err)
	}

	account.Name = req.Name
	account.Type = req.Type

	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		return s.accounts.Update(ctx, tx, account)
	})
	if err != nil {
		s.logger.Error("updating account failed", zap.Int64("account_id", account.ID), zap.Error(err))
		return nil, fmt.Errorf("updating account %d: %w: %w", account.ID, domain.ErrOperationFailed, err)
	}

	s.logger.Info("account updated", zap.Int64("account_id", account.ID))
	return account, nil
}

// Delete removes the account together with any transactions still posted
// against it, in one unit of work.
func (s *AccountService) Delete(ctx context.Context, scope domain.OwnerScope, id int64) error {
	account, err := s.accounts.FindByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("account %d: %w", id, err)
		}
		return fmt.Errorf("fetching account %d: %w: %w", id, domain.ErrOperationFailed, err)
	}

	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := s.txns.DeleteByAccountID(ctx, tx, account.ID); err != nil {
			return err
		}
		return s.accounts.Delete(ctx, tx, account.ID)
	})
	if err != nil {
		s.logger.Error("deleting account failed", zap.Int64("account_id", account.ID), zap.Error(err))
		return fmt.Errorf("deleting account %d: %w: %w", account.ID, domain.ErrOperationFailed, err)
	}

	s.logger.Info("account deleted", zap.Int64("account_id", account.ID))
	return nil
}
