package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fintrack/household-budget/internal/budget/domain"
	"github.com/fintrack/household-budget/internal/budget/service"
)

// AccountOperations is the slice of AccountService the handler needs.
type AccountOperations interface {
	List(ctx context.Context, scope domain.OwnerScope) ([]domain.Account, error)
	Get(ctx context.Context, scope domain.OwnerScope, id int64) (*domain.Account, error)
	Create(ctx context.Context, scope domain.OwnerScope, req service.CreateAccountRequest) (*domain.Account, error)
	Update(ctx context.Context, scope domain.OwnerScope, req service.UpdateAccountRequest) (*domain.Account, error)
	Delete(ctx context.Context, scope domain.OwnerScope, id int64) error
}

type AccountHandler struct {
	svc AccountOperations
}

func NewAccountHandler(svc AccountOperations) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// RegisterRoutes mounts the account endpoints. The group is expected to be
// behind the auth middleware.
func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup) {
	accountGroup := r.Group("/accounts")
	{
		accountGroup.GET("", h.List)
		accountGroup.POST("", h.Create)
		accountGroup.GET("/:id", h.Get)
		accountGroup.PUT("/:id", h.Update)
		accountGroup.DELETE("/:id", h.Delete)
	}
}

func (h *AccountHandler) List(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}

	accounts, err := h.svc.List(c.Request.Context(), scope)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]AccountResp, len(accounts))
	for i := range accounts {
		resp[i] = toAccountResp(&accounts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AccountHandler) Get(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	account, err := h.svc.Get(c.Request.Context(), scope, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResp(account))
}

func (h *AccountHandler) Create(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}

	var req CreateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	balance := decimal.Zero
	if req.Balance != "" {
		var err error
		balance, err = parseMoney(req.Balance)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid balance: " + err.Error()})
			return
		}
	}

	account, err := h.svc.Create(c.Request.Context(), scope, service.CreateAccountRequest{
		Name:    req.Name,
		Type:    domain.AccountType(req.Type),
		Balance: balance,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccountResp(account))
}

func (h *AccountHandler) Update(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	var req UpdateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	account, err := h.svc.Update(c.Request.Context(), scope, service.UpdateAccountRequest{
		ID:   id,
		Name: req.Name,
		Type: domain.AccountType(req.Type),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResp(account))
}

func (h *AccountHandler) Delete(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), scope, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
