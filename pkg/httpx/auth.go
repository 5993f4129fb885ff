package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tair/dairy-ledger/pkg/auth"
)

type claimsKey struct{}

// Pages a user type can be granted. Each API route group is guarded by one.
const (
	PageDashboard      = "dashboard"
	PageProducts       = "products"
	PageCustomers      = "customers"
	PageSells          = "sells"
	PageInventory      = "inventory"
	PageExpenses       = "expenses"
	PageCashManagement = "cash-management"
	PageUsers          = "users"
)

// AllPages lists every grantable page
var AllPages = []string{
	PageDashboard, PageProducts, PageCustomers, PageSells,
	PageInventory, PageExpenses, PageCashManagement, PageUsers,
}

// ClaimsFrom returns the verified token claims, or nil
func ClaimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}

// Guard builds page-level access checks. A disabled guard lets everything
// through, which is how the service runs behind a trusted proxy.
type Guard struct {
	enabled bool
}

func NewGuard(enabled bool) *Guard {
	return &Guard{enabled: enabled}
}

// RequirePage validates the bearer token and checks the page grant
func (g *Guard) RequirePage(page string, next http.HandlerFunc) http.HandlerFunc {
	if g == nil || !g.enabled {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondAuthError(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondAuthError(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, auth.ErrNoSecret) {
				status = http.StatusInternalServerError
			}
			respondAuthError(w, status, "invalid token")
			return
		}

		if !claims.CanAccess(page) {
			respondAuthError(w, http.StatusForbidden, "access to "+page+" not granted")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func respondAuthError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Response{Success: false, Error: message})
}
