package ports

import (
	"time"

	"github.com/plataforma/auth-backend/internal/core/domain"
)

// TokenClaims is the decoded content of a verified bearer token.
type TokenClaims struct {
	Subject   string
	Role      domain.Role
	ExpiresAt time.Time
}

// TokenService issues and verifies stateless bearer tokens. Verify is a pure
// function of the token, the clock and the signing secret; it never consults
// the user store.
type TokenService interface {
	Issue(subject string, role domain.Role) (string, error)
	Verify(token string) (*TokenClaims, error)
}
