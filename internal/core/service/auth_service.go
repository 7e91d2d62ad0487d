package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/plataforma/auth-backend/internal/core/domain"
	"github.com/plataforma/auth-backend/internal/core/ports"
)

// AuthService implements registration, login, self-profile updates and
// permission checks.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         r,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", created.Email).Str("role", string(created.Role)).Msg("user registered")
	created.PasswordHash = ""
	return created, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password collapse into the same ErrInvalidCredentials so the failing
// factor is never revealed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("email", user.Email).Msg("login succeeded")
	user.PasswordHash = ""
	return token, user, nil
}

// CurrentUser resolves the record behind a verified token subject.
func (s *AuthService) CurrentUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies a partial update to the caller's own record. The
// routing layer supplies the authenticated id; no re-authentication here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, input ports.UserUpdateInput) (*domain.User, error) {
	upd, err := buildUpdate(s.hasher, input)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, userID, upd)
}

// CheckPermission reports whether actual satisfies requiredRole under the
// role hierarchy. An unrecognized requiredRole is an error, not a denial.
func (s *AuthService) CheckPermission(requiredRole string, actual domain.Role) (bool, error) {
	required, err := domain.ParseRole(requiredRole)
	if err != nil {
		return false, err
	}
	return domain.RoleSatisfies(required, actual), nil
}

// buildUpdate converts a service-level partial update into its repository
// form, hashing the password when present.
func buildUpdate(hasher ports.PasswordHasher, input ports.UserUpdateInput) (domain.UserUpdate, error) {
	var upd domain.UserUpdate
	upd.Email = input.Email
	if input.Password != nil {
		hash, err := hasher.Hash(*input.Password)
		if err != nil {
			return domain.UserUpdate{}, err
		}
		upd.PasswordHash = &hash
	}
	if input.Role != nil {
		r, err := domain.ParseRole(*input.Role)
		if err != nil {
			return domain.UserUpdate{}, err
		}
		upd.Role = &r
	}
	return upd, nil
}
