package ports

import (
	"context"

	"github.com/plataforma/auth-backend/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
//
// Email uniqueness is enforced by the storage layer itself: of two racing
// Create calls for the same email exactly one succeeds, the other observes
// domain.ErrEmailExists. FindByEmail is the only operation that returns the
// password hash; every other read scrubs it.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)
}
