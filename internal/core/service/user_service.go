package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/plataforma/auth-backend/internal/core/domain"
	"github.com/plataforma/auth-backend/internal/core/ports"
)

// Default accounts seeded into an empty store. Documented credentials for
// first login; operators are expected to rotate them.
const (
	DefaultAdminEmail       = "admin@example.com"
	DefaultAdminPassword    = "admin123"
	DefaultConsultaEmail    = "consulta@example.com"
	DefaultConsultaPassword = "consulta123"
)

// UserService implements administrator-level user management, bootstrap
// seeding and the dashboard aggregate.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	cache  ports.StatsCache
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, cache ports.StatsCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, cache: cache, logger: logger}
}

// List returns every user record without password hashes.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) Create(ctx context.Context, email, password, role string) (*domain.User, error) {
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
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         r,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	created.PasswordHash = ""
	return created, nil
}

func (s *UserService) Update(ctx context.Context, id int64, input ports.UserUpdateInput) (*domain.User, error) {
	upd, err := buildUpdate(s.hasher, input)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, upd)
}

// Delete removes a user. Administrators cannot delete their own account.
func (s *UserService) Delete(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return domain.ErrSelfDelete
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrUserNotFound
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// Bootstrap seeds the two default accounts into an empty store. Idempotent:
// any existing record makes it a no-op. Called once from the process entry
// point, never from a constructor.
func (s *UserService) Bootstrap(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		email    string
		password string
		role     string
	}{
		{DefaultAdminEmail, DefaultAdminPassword, string(domain.RoleAdministrador)},
		{DefaultConsultaEmail, DefaultConsultaPassword, string(domain.RoleConsulta)},
	}
	for _, d := range defaults {
		if _, err := s.Create(ctx, d.email, d.password, d.role); err != nil {
			// Another instance may have seeded concurrently.
			if errors.Is(err, domain.ErrEmailExists) {
				continue
			}
			return err
		}
		s.logger.Info().Str("email", d.email).Msg("default user seeded")
	}
	return nil
}

// DashboardStats returns the user totals, served from the cache when fresh.
func (s *UserService) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn().Err(err).Msg("stats cache read failed")
	}

	counts, err := s.repo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ports.DashboardStats{
		AdminUsers:    counts[domain.RoleAdministrador],
		ConsultaUsers: counts[domain.RoleConsulta],
	}
	for _, n := range counts {
		stats.TotalUsers += n
	}

	if err := s.cache.Set(ctx, stats); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache write failed")
	}
	return stats, nil
}
