package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/household-budget/internal/budget/domain"
	"github.com/fintrack/household-budget/internal/budget/service"
)

// TransactionOperations is the slice of TransactionService the handler needs.
type TransactionOperations interface {
	List(ctx context.Context, scope domain.OwnerScope, accountID int64) ([]domain.Transaction, error)
	Get(ctx context.Context, scope domain.OwnerScope, id int64) (*domain.Transaction, error)
	Create(ctx context.Context, scope domain.OwnerScope, req service.CreateTransactionRequest) (*domain.Transaction, error)
	Update(ctx context.Context, scope domain.OwnerScope, req service.UpdateTransactionRequest) (*domain.Transaction, error)
	Delete(ctx context.Context, scope domain.OwnerScope, id int64) error
}

type TransactionHandler struct {
	svc TransactionOperations
}

func NewTransactionHandler(svc TransactionOperations) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// RegisterRoutes mounts the transaction endpoints behind the auth middleware.
func (h *TransactionHandler) RegisterRoutes(r *gin.RouterGroup) {
	txnGroup := r.Group("/transactions")
	{
		txnGroup.GET("", h.List)
		txnGroup.POST("", h.Create)
		txnGroup.GET("/:id", h.Get)
		txnGroup.PUT("/:id", h.Update)
		txnGroup.DELETE("/:id", h.Delete)
	}
}

func (h *TransactionHandler) List(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}

	var accountID int64
	if raw := c.Query("account_id"); raw != "" {
		var err error
		accountID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account_id filter"})
			return
		}
	}

	txns, err := h.svc.List(c.Request.Context(), scope, accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]TransactionResp, len(txns))
	for i := range txns {
		resp[i] = toTransactionResp(&txns[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	txn, err := h.svc.Get(c.Request.Context(), scope, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransactionResp(txn))
}

func (h *TransactionHandler) Create(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}

	var req CreateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	amount, err := parseMoney(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount: " + err.Error()})
		return
	}

	txn, err := h.svc.Create(c.Request.Context(), scope, service.CreateTransactionRequest{
		AccountID:   req.AccountID,
		Amount:      amount,
		Kind:        domain.TransactionKind(req.Kind),
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTransactionResp(txn))
}

func (h *TransactionHandler) Update(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	var req UpdateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	amount, err := parseMoney(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount: " + err.Error()})
		return
	}

	txn, err := h.svc.Update(c.Request.Context(), scope, service.UpdateTransactionRequest{
		ID:          id,
		AccountID:   req.AccountID,
		Amount:      amount,
		Kind:        domain.TransactionKind(req.Kind),
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransactionResp(txn))
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), scope, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
