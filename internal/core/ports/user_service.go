package ports

import (
	"context"

	"github.com/plataforma/auth-backend/internal/core/domain"
)

// DashboardStats is the read-only aggregate served to the dashboard.
type DashboardStats struct {
	TotalUsers    int64 `json:"total_users"`
	AdminUsers    int64 `json:"admin_users"`
	ConsultaUsers int64 `json:"consulta_users"`
}

// UserService covers administrator-level user management plus the
// bootstrap seeding and dashboard aggregates.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, email, password, role string) (*domain.User, error)
	Update(ctx context.Context, id int64, input UserUpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id, actorID int64) error
	Bootstrap(ctx context.Context) error
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}
