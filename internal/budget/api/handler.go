package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	authapi "github.com/fintrack/household-budget/internal/auth/api"
	"github.com/fintrack/household-budget/internal/budget/domain"
)

// callerScope builds the owner scope from the authenticated identity set by
// the auth middleware. The posting logic itself performs no authentication.
func callerScope(c *gin.Context) (domain.OwnerScope, bool) {
	userID, admin, ok := authapi.Caller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return domain.OwnerScope{}, false
	}
	return domain.OwnerScope{UserID: userID, Admin: admin}, true
}

// parseMoney parses a decimal string limited to two fractional digits, the
// precision of the stored columns. Extra digits are rejected rather than
// silently rounded.
func parseMoney(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid decimal %q", raw)
	}
	if d.Exponent() < -2 {
		return decimal.Decimal{}, fmt.Errorf("%q has more than two decimal places", raw)
	}
	return d, nil
}

// respondError maps the domain error taxonomy to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidOperation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
