package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/plataforma/auth-backend/internal/core/domain"
	"github.com/plataforma/auth-backend/internal/core/ports"
)

const defaultTokenTTL = 30 * time.Minute

// JWTService issues HS256 bearer tokens carrying subject, role and expiry.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTService{secret: []byte(secret), ttl: ttl}
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *JWTService) Issue(subject string, role domain.Role) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature over the full encoded content before decoding
// claims, then validates expiry and the presence of a subject. It never
// touches the user store.
func (s *JWTService) Verify(token string) (*ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		// The library verifies the signature before claim validation, so an
		// expiry failure implies the signature itself was good.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, domain.ErrMissingSubject
	}

	return &ports.TokenClaims{
		Subject:   claims.Subject,
		Role:      domain.Role(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
