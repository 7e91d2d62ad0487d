package service

import (
	"context"
	"sync"
	"time"

	"github.com/plataforma/auth-backend/internal/core/domain"
	"github.com/plataforma/auth-backend/internal/core/ports"
)

// stubUserRepo is an in-memory UserRepository mirroring the storage
// contract: the uniqueness check and the insert happen under one lock, so
// racing creates behave like they do against the unique index.
type stubUserRepo struct {
	mu     sync.Mutex
	lastID int64
	users  map[int64]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.lastID++
	stored := cloneUser(user)
	stored.ID = r.lastID
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := cloneUser(u)
	out.PasswordHash = ""
	return out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out := *u
		out.PasswordHash = ""
		users = append(users, out)
	}
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *upd.Email {
				return nil, domain.ErrEmailExists
			}
		}
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	u.UpdatedAt = time.Now().UTC()

	out := cloneUser(u)
	out.PasswordHash = ""
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) CountByRole(_ context.Context) (map[domain.Role]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[domain.Role]int64)
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}

func updateInput(email, password, role *string) ports.UserUpdateInput {
	return ports.UserUpdateInput{Email: email, Password: password, Role: role}
}

// stubStatsCache records cache traffic for assertions.
type stubStatsCache struct {
	mu    sync.Mutex
	stats *ports.DashboardStats
	gets  int
	sets  int
}

func (c *stubStatsCache) Get(_ context.Context) (*ports.DashboardStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	return c.stats, nil
}

func (c *stubStatsCache) Set(_ context.Context, stats *ports.DashboardStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.stats = stats
	return nil
}
