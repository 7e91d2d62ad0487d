package ports

import (
	"context"

	"github.com/plataforma/auth-backend/internal/core/domain"
)

// UserUpdateInput carries a partial profile mutation with plaintext password;
// the service layer hashes it before it reaches the repository.
type UserUpdateInput struct {
	Email    *string
	Password *string
	Role     *string
}

type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, input UserUpdateInput) (*domain.User, error)
	CheckPermission(requiredRole string, actual domain.Role) (bool, error)
}
