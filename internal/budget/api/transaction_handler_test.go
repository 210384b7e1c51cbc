package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authapi "github.com/fintrack/household-budget/internal/auth/api"
	authservice "github.com/fintrack/household-budget/internal/auth/service"
	"github.com/fintrack/household-budget/internal/budget/domain"
	"github.com/fintrack/household-budget/internal/budget/service"
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*authservice.Claims, error) {
	// Token format in tests: "<user-id>" or "<user-id>:admin".
	claims := &authservice.Claims{Role: "user"}
	parts := strings.SplitN(token, ":", 2)
	claims.Subject = parts[0]
	if len(parts) == 2 && parts[1] == "admin" {
		claims.Role = "admin"
	}
	return claims, nil
}

type stubTxnService struct {
	lastScope  domain.OwnerScope
	lastCreate service.CreateTransactionRequest
	txn        *domain.Transaction
	err        error
}

func (s *stubTxnService) List(_ context.Context, scope domain.OwnerScope, _ int64) ([]domain.Transaction, error) {
	s.lastScope = scope
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Transaction{*s.txn}, nil
}

func (s *stubTxnService) Get(_ context.Context, scope domain.OwnerScope, _ int64) (*domain.Transaction, error) {
	s.lastScope = scope
	return s.txn, s.err
}

func (s *stubTxnService) Create(_ context.Context, scope domain.OwnerScope, req service.CreateTransactionRequest) (*domain.Transaction, error) {
	s.lastScope = scope
	s.lastCreate = req
	return s.txn, s.err
}

func (s *stubTxnService) Update(_ context.Context, scope domain.OwnerScope, _ service.UpdateTransactionRequest) (*domain.Transaction, error) {
	s.lastScope = scope
	return s.txn, s.err
}

func (s *stubTxnService) Delete(_ context.Context, scope domain.OwnerScope, _ int64) error {
	s.lastScope = scope
	return s.err
}

func newTxnRouter(svc TransactionOperations) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/v1")
	group.Use(authapi.RequireAuth(stubVerifier{}))
	NewTransactionHandler(svc).RegisterRoutes(group)
	return r
}

func sampleTxn() *domain.Transaction {
	return &domain.Transaction{
		ID:          7,
		AccountID:   3,
		Amount:      decimal.RequireFromString("200.00"),
		Kind:        domain.Expense,
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "groceries",
		OwnerUserID: "user-1",
	}
}

func TestTransactionCreate_OK(t *testing.T) {
	stub := &stubTxnService{txn: sampleTxn()}
	r := newTxnRouter(stub)

	body := `{"account_id":3,"amount":"200.00","kind":"expense","date":"2025-06-01T00:00:00Z","description":"groceries"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer user-1")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "user-1", stub.lastScope.UserID)
	assert.False(t, stub.lastScope.Admin)
	assert.True(t, stub.lastCreate.Amount.Equal(decimal.RequireFromString("200.00")))
	assert.Equal(t, domain.Expense, stub.lastCreate.Kind)
	assert.Contains(t, w.Body.String(), `"amount":"200.00"`)
}

func TestTransactionCreate_AdminScope(t *testing.T) {
	stub := &stubTxnService{txn: sampleTxn()}
	r := newTxnRouter(stub)

	body := `{"account_id":3,"amount":"1.00","kind":"credit","date":"2025-06-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer root:admin")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, stub.lastScope.Admin)
}

func TestTransactionCreate_BadPayload(t *testing.T) {
	stub := &stubTxnService{txn: sampleTxn()}
	r := newTxnRouter(stub)

	cases := []string{
		`{"account_id":3,"amount":"200.00","kind":"transfer","date":"2025-06-01T00:00:00Z"}`, // kind outside enum
		`{"account_id":3,"amount":"two hundred","kind":"credit","date":"2025-06-01T00:00:00Z"}`,
		`{"amount":"200.00","kind":"credit","date":"2025-06-01T00:00:00Z"}`,                // missing account
		`{"account_id":3,"amount":"10.005","kind":"credit","date":"2025-06-01T00:00:00Z"}`, // sub-cent precision
		`{"account_id":3,"amount":"1e-3","kind":"expense","date":"2025-06-01T00:00:00Z"}`,  // sub-cent via exponent
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer user-1")
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestTransactionErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("transaction 7: %w", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("account cannot change: %w", domain.ErrInvalidOperation), http.StatusUnprocessableEntity},
		{fmt.Errorf("boom: %w", domain.ErrOperationFailed), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		stub := &stubTxnService{err: tc.err}
		r := newTxnRouter(stub)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/7", nil)
		req.Header.Set("Authorization", "Bearer user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
}

func TestTransactionDelete_NoContent(t *testing.T) {
	stub := &stubTxnService{txn: sampleTxn()}
	r := newTxnRouter(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/7", nil)
	req.Header.Set("Authorization", "Bearer user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestTransactionRoutes_RequireAuth(t *testing.T) {
	stub := &stubTxnService{txn: sampleTxn()}
	r := newTxnRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
