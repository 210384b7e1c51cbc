package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authapi "github.com/fintrack/household-budget/internal/auth/api"
	authdomain "github.com/fintrack/household-budget/internal/auth/domain"
	authservice "github.com/fintrack/household-budget/internal/auth/service"
	budgetapi "github.com/fintrack/household-budget/internal/budget/api"
	budgetdomain "github.com/fintrack/household-budget/internal/budget/domain"
	budgetservice "github.com/fintrack/household-budget/internal/budget/service"
)

type nopAuthenticator struct{}

func (nopAuthenticator) Register(context.Context, string, string) (*authdomain.User, error) {
	return &authdomain.User{}, nil
}

func (nopAuthenticator) Login(context.Context, string, string) (string, error) {
	return "", nil
}

type nopVerifier struct{}

func (nopVerifier) VerifyToken(string) (*authservice.Claims, error) {
	claims := &authservice.Claims{Role: "user"}
	claims.Subject = "user-1"
	return claims, nil
}

type nopAccountOps struct{}

func (nopAccountOps) List(context.Context, budgetdomain.OwnerScope) ([]budgetdomain.Account, error) {
	return nil, nil
}

func (nopAccountOps) Get(context.Context, budgetdomain.OwnerScope, int64) (*budgetdomain.Account, error) {
	return &budgetdomain.Account{}, nil
}

func (nopAccountOps) Create(context.Context, budgetdomain.OwnerScope, budgetservice.CreateAccountRequest) (*budgetdomain.Account, error) {
	return &budgetdomain.Account{}, nil
}

func (nopAccountOps) Update(context.Context, budgetdomain.OwnerScope, budgetservice.UpdateAccountRequest) (*budgetdomain.Account, error) {
	return &budgetdomain.Account{}, nil
}

func (nopAccountOps) Delete(context.Context, budgetdomain.OwnerScope, int64) error {
	return nil
}

type nopTxnOps struct{}

func (nopTxnOps) List(context.Context, budgetdomain.OwnerScope, int64) ([]budgetdomain.Transaction, error) {
	return nil, nil
}

func (nopTxnOps) Get(context.Context, budgetdomain.OwnerScope, int64) (*budgetdomain.Transaction, error) {
	return &budgetdomain.Transaction{}, nil
}

func (nopTxnOps) Create(context.Context, budgetdomain.OwnerScope, budgetservice.CreateTransactionRequest) (*budgetdomain.Transaction, error) {
	return &budgetdomain.Transaction{}, nil
}

func (nopTxnOps) Update(context.Context, budgetdomain.OwnerScope, budgetservice.UpdateTransactionRequest) (*budgetdomain.Transaction, error) {
	return &budgetdomain.Transaction{}, nil
}

func (nopTxnOps) Delete(context.Context, budgetdomain.OwnerScope, int64) error {
	return nil
}

func newTestServer() *Server {
	return NewServer(
		zap.NewNop(),
		"0",
		"release",
		nopVerifier{},
		authapi.NewAuthHandler(nopAuthenticator{}),
		budgetapi.NewAccountHandler(nopAccountOps{}),
		budgetapi.NewTransactionHandler(nopTxnOps{}),
	)
}

func TestShutdownBeforeRunIsSafe(t *testing.T) {
	srv := newTestServer()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
}

func TestHealthRoute(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	srv.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP"}`, w.Body.String())
}

func TestProtectedRoutesBehindAuth(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	srv.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "no token")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer any")
	srv.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "verified token passes")
}
