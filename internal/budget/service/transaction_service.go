package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fintrack/household-budget/internal/budget/domain"
)

// CreateTransactionRequest is the service-level input for posting a
// transaction.
type CreateTransactionRequest struct {
	AccountID   int64
	Amount      decimal.Decimal
	Kind        domain.TransactionKind
	Date        time.Time
	Description string
}

// UpdateTransactionRequest carries the mutable fields of a transaction.
// AccountID, when set, must match the transaction's current account.
type UpdateTransactionRequest struct {
	ID          int64
	AccountID   int64
	Amount      decimal.Decimal
	Kind        domain.TransactionKind
	Date        time.Time
	Description string
}

// TransactionService orchestrates transaction posting. Every mutation runs
// inside one database transaction so the transaction row and the account
// balance change commit or roll back together.
type TransactionService struct {
	tx       domain.TxManager
	accounts domain.AccountRepository
	txns     domain.TransactionRepository
	logger   *zap.Logger
}

func NewTransactionService(tx domain.TxManager, accounts domain.AccountRepository, txns domain.TransactionRepository, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		tx:       tx,
		accounts: accounts,
		txns:     txns,
		logger:   logger,
	}
}

func (s *TransactionService) List(ctx context.Context, scope domain.OwnerScope, accountID int64) ([]domain.Transaction, error) {
	txns, err := s.txns.FindAll(ctx, scope, accountID)
	if err != nil {
		s.logger.Error("listing transactions failed", zap.Error(err))
		return nil, fmt.Errorf("listing transactions: %w: %w", domain.ErrOperationFailed, err)
	}
	return txns, nil
}

func (s *TransactionService) Get(ctx context.Context, scope domain.OwnerScope, id int64) (*domain.Transaction, error) {
	txn, err := s.txns.FindByID(ctx, scope, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		s.logger.Error("fetching transaction failed", zap.Int64("transaction_id", id), zap.Error(err))
		return nil, fmt.Errorf("fetching transaction %d: %w: %w", id, domain.ErrOperationFailed, err)
	}
	return txn, nil
}

// Create posts a new transaction and applies its effect to the account
// balance in one unit of work.
func (s *TransactionService) Create(ctx context.Context, scope domain.OwnerScope, req CreateTransactionRequest) (*domain.Transaction, error) {
	if err := validatePosting(req.Kind, req.Amount); err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByID(ctx, scope, req.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("account %d: %w", req.AccountID, err)
		}
		return nil, fmt.Errorf("fetching account %d: %w: %w", req.AccountID, domain.ErrOperationFailed, err)
	}

	newBalance, err := AdjustAccountBalance(account.Balance, req.Kind, req.Amount)
	if err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		AccountID:   account.ID,
		Amount:      req.Amount,
		Kind:        req.Kind,
		Date:        req.Date,
		Description: req.Description,
		OwnerUserID: account.OwnerUserID, // transactions inherit the account's owner
	}

	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := s.txns.Create(ctx, tx, txn); err != nil {
			return err
		}
		return s.accounts.SetBalance(ctx, tx, account.ID, newBalance, account.Version)
	})
	if err != nil {
		s.logger.Error("posting transaction failed",
			zap.Int64("account_id", account.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("posting transaction: %w: %w", domain.ErrOperationFailed, err)
	}

	s.logger.Info("transaction posted",
		zap.Int64("transaction_id", txn.ID),
		zap.Int64("account_id", account.ID),
		zap.String("kind", string(txn.Kind)),
	)
	return txn, nil
}

// Update overwrites a transaction's mutable fields and re-posts its balance
// effect: the old effect is reversed with the old kind, then the new effect
// applied with the new kind, so the balance stays the net signed sum of the
// account's transactions even when the kind flips.
func (s *TransactionService) Update(ctx context.Context, scope domain.OwnerScope, req UpdateTransactionRequest) (*domain.Transaction, error) {
	if err := validatePosting(req.Kind, req.Amount); err != nil {
		return nil, err
	}

	txn, err := s.txns.FindByID(ctx, scope, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("transaction %d: %w", req.ID, err)
		}
		return nil, fmt.Errorf("fetching transaction %d: %w: %w", req.ID, domain.ErrOperationFailed, err)
	}

	if req.AccountID != 0 && req.AccountID != txn.AccountID {
		return nil, fmt.Errorf("transaction %d: account cannot change after creation: %w", req.ID, domain.ErrInvalidOperation)
	}

	account, err := s.accounts.FindByID(ctx, scope, txn.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("account %d: %w", txn.AccountID, err)
		}
		return nil, fmt.Errorf("fetching account %d: %w: %w", txn.AccountID, domain.ErrOperationFailed, err)
	}

	reversed, err := AdjustAccountBalance(account.Balance, txn.Kind, txn.Amount.Neg())
	if err != nil {
		return nil, err
	}
	newBalance, err := AdjustAccountBalance(reversed, req.Kind, req.Amount)
	if err != nil {
		return nil, err
	}

	txn.Kind = req.Kind
	txn.Amount = req.Amount
	txn.Date = req.Date
	txn.Description = req.Description

	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := s.txns.Update(ctx, tx, txn); err != nil {
			return err
		}
		return s.accounts.SetBalance(ctx, tx, account.ID, newBalance, account.Version)
	})
	if err != nil {
		s.logger.Error("updating transaction failed",
			zap.Int64("transaction_id", txn.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("updating transaction %d: %w: %w", txn.ID, domain.ErrOperationFailed, err)
	}

	s.logger.Info("transaction updated", zap.Int64("transaction_id", txn.ID))
	return txn, nil
}

// Delete reverses the transaction's balance effect and removes the row in
// one unit of work.
func (s *TransactionService) Delete(ctx context.Context, scope domain.OwnerScope, id int64) error {
	txn, err := s.txns.FindByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("transaction %d: %w", id, err)
		}
		return fmt.Errorf("fetching transaction %d: %w: %w", id, domain.ErrOperationFailed, err)
	}

	// Referential integrity should make this impossible, but a missing
	// account must still surface as NotFound rather than a nil deref.
	account, err := s.accounts.FindByID(ctx, scope, txn.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("account %d: %w", txn.AccountID, err)
		}
		return fmt.Errorf("fetching account %d: %w: %w", txn.AccountID, domain.ErrOperationFailed, err)
	}

	newBalance, err := AdjustAccountBalance(account.Balance, txn.Kind, txn.Amount.Neg())
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := s.accounts.SetBalance(ctx, tx, account.ID, newBalance, account.Version); err != nil {
			return err
		}
		return s.txns.Delete(ctx, tx, txn.ID)
	})
	if err != nil {
		s.logger.Error("deleting transaction failed",
			zap.Int64("transaction_id", txn.ID),
			zap.Error(err),
		)
		return fmt.Errorf("deleting transaction %d: %w: %w", txn.ID, domain.ErrOperationFailed, err)
	}

	s.logger.Info("transaction deleted", zap.Int64("transaction_id", txn.ID))
	return nil
}

func validatePosting(kind domain.TransactionKind, amount decimal.Decimal) error {
	if !kind.IsValid() {
		return fmt.Errorf("unknown transaction kind %q: %w", kind, domain.ErrInvalidOperation)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be positive: %w", domain.ErrInvalidOperation)
	}
	return nil
}
