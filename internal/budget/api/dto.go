package api

import (
	"time"

	"github.com/fintrack/household-budget/internal/budget/domain"
)

// Monetary values travel as decimal strings to avoid float precision loss.

type CreateAccountReq struct {
	Name    string `json:"name" binding:"required,max=100"`
	Type    string `json:"type" binding:"required,oneof=chequing savings credit_card loan other"`
	Balance string `json:"balance"` // optional starting balance, defaults to 0
}

type UpdateAccountReq struct {
	Name string `json:"name" binding:"required,max=100"`
	Type string `json:"type" binding:"required,oneof=chequing savings credit_card loan other"`
}

type AccountResp struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAccountResp(a *domain.Account) AccountResp {
	return AccountResp{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		Balance:   a.Balance.StringFixed(2),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type CreateTransactionReq struct {
	AccountID   int64     `json:"account_id" binding:"required"`
	Amount      string    `json:"amount" binding:"required"`
	Kind        string    `json:"kind" binding:"required,oneof=credit expense"`
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description"`
}

// UpdateTransactionReq carries the mutable fields. AccountID is accepted so
// reassignment attempts can be rejected explicitly rather than ignored.
type UpdateTransactionReq struct {
	AccountID   int64     `json:"account_id"`
	Amount      string    `json:"amount" binding:"required"`
	Kind        string    `json:"kind" binding:"required,oneof=credit expense"`
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description"`
}

type TransactionResp struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Amount      string    `json:"amount"`
	Kind        string    `json:"kind"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTransactionResp(t *domain.Transaction) TransactionResp {
	return TransactionResp{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Amount:      t.Amount.StringFixed(2),
		Kind:        string(t.Kind),
		Date:        t.Date,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
