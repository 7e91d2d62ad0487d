package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/plataforma/auth-backend/internal/core/domain"
)

func newTestUserService(repo *stubUserRepo, cache *stubStatsCache) *UserService {
	return NewUserService(repo, NewBcryptHasher(4), cache, zerolog.Nop())
}

func TestUserService_Bootstrap(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, &stubStatsCache{})

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	users, _ := repo.FindAll(context.Background())
	if len(users) != 2 {
		t.Fatalf("expected 2 seeded users, got %d", len(users))
	}

	admin, err := repo.FindByEmail(context.Background(), DefaultAdminEmail)
	if err != nil || admin.Role != domain.RoleAdministrador {
		t.Fatalf("admin default missing or wrong role: %+v %v", admin, err)
	}
	consulta, err := repo.FindByEmail(context.Background(), DefaultConsultaEmail)
	if err != nil || consulta.Role != domain.RoleConsulta {
		t.Fatalf("consulta default missing or wrong role: %+v %v", consulta, err)
	}

	// Second run is a no-op on a populated store.
	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	users, _ = repo.FindAll(context.Background())
	if len(users) != 2 {
		t.Fatalf("second bootstrap changed the store: %d users", len(users))
	}
}

func TestUserService_Bootstrap_LoginDefaults(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, &stubStatsCache{})
	auth := newTestAuthService(repo)

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	token, _, err := auth.Login(context.Background(), DefaultAdminEmail, DefaultAdminPassword)
	if err != nil {
		t.Fatalf("default admin login failed: %v", err)
	}
	claims, err := auth.tokens.Verify(token)
	if err != nil || claims.Role != domain.RoleAdministrador {
		t.Fatalf("token role mismatch: %+v %v", claims, err)
	}

	if _, _, err := auth.Login(context.Background(), DefaultAdminEmail, "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_ConcurrentCreateSameEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, &stubStatsCache{})

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), "race@example.com", "pass", "CONSULTA")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrEmailExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d conflicts", successes, conflicts)
	}

	count, _ := repo.Count(context.Background())
	if count != 1 {
		t.Fatalf("expected a single record, got %d", count)
	}
}

func TestUserService_Update_EmailConflict(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, &stubStatsCache{})

	a, err := svc.Create(context.Background(), "a@example.com", "pass", "CONSULTA")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "b@example.com", "pass", "CONSULTA"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	taken := "b@example.com"
	if _, err := svc.Update(context.Background(), a.ID, updateInput(&taken, nil, nil)); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	// Updating to the record's own current email is allowed.
	own := "a@example.com"
	updated, err := svc.Update(context.Background(), a.ID, updateInput(&own, nil, nil))
	if err != nil {
		t.Fatalf("update to own email failed: %v", err)
	}
	if !updated.UpdatedAt.After(a.UpdatedAt) {
		t.Fatalf("updated_at not refreshed")
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), &stubStatsCache{})

	role := "CONSULTA"
	if _, err := svc.Update(context.Background(), 42, updateInput(nil, nil, &role)); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, &stubStatsCache{})

	user, err := svc.Create(context.Background(), "gone@example.com", "pass", "CONSULTA")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), user.ID, user.ID+1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("record still present after delete")
	}

	// Deleting a nonexistent id reports not-found and changes nothing.
	if err := svc.Delete(context.Background(), user.ID, user.ID+1); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_Self(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, &stubStatsCache{})

	user, err := svc.Create(context.Background(), "admin2@example.com", "pass", "ADMINISTRADOR")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), user.ID, user.ID); !errors.Is(err, domain.ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), user.ID); err != nil {
		t.Fatalf("record removed despite self-delete guard")
	}
}

func TestUserService_DashboardStats(t *testing.T) {
	repo := newStubUserRepo()
	cache := &stubStatsCache{}
	svc := newTestUserService(repo, cache)

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "extra@example.com", "pass", "CONSULTA"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stats, err := svc.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalUsers != 3 || stats.AdminUsers != 1 || stats.ConsultaUsers != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}

	// Second call is served from the cache.
	again, err := svc.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("cached stats failed: %v", err)
	}
	if *again != *stats {
		t.Fatalf("cached stats differ: %+v vs %+v", again, stats)
	}
	if cache.sets != 1 {
		t.Fatalf("cache rewritten on hit: %d writes", cache.sets)
	}
}

func TestUserService_List_NoHashes(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, &stubStatsCache{})

	if _, err := svc.Create(context.Background(), "x@example.com", "pass", "CONSULTA"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].PasswordHash != "" {
		t.Fatalf("password hash leaked from list")
	}
	if users[0].CreatedAt.After(time.Now().UTC()) {
		t.Fatalf("created_at in the future")
	}
}
