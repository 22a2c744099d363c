package redis_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/salessummary"
	redisinfra "github.com/jhoicas/inventario-dashboard/internal/infrastructure/redis"
)

func newRepo(t *testing.T, ttl time.Duration) (*redisinfra.ViewStateRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisinfra.NewViewStateRepository(client, ttl), mr
}

func toggle(s *entity.ViewState) error {
	s.SidebarCollapsed = !s.SidebarCollapsed
	return nil
}

func TestGet_SinEstadoDevuelveNotFound(t *testing.T) {
	repo, _ := newRepo(t, 0)

	_, err := repo.Get(context.Background(), "c1", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_ParteDelEstadoInicialYPersiste(t *testing.T) {
	repo, mr := newRepo(t, 0)
	ctx := context.Background()
	init := entity.NewViewState("c1", "u1", salessummary.Monthly)

	got, err := repo.Update(ctx, "c1", "u1", init, toggle)
	require.NoError(t, err)
	assert.True(t, got.SidebarCollapsed)
	assert.Equal(t, salessummary.Monthly, got.Granularity)
	assert.False(t, init.SidebarCollapsed, "init no se modifica")
	assert.True(t, mr.Exists("dashboard:view_state:c1:u1"))

	stored, err := repo.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Equal(t, got.SidebarCollapsed, stored.SidebarCollapsed)
	assert.Equal(t, "c1", stored.CompanyID)
	assert.Equal(t, "u1", stored.UserID)
}

func TestUpdate_ClavesAisladasPorUsuario(t *testing.T) {
	repo, _ := newRepo(t, 0)
	ctx := context.Background()

	_, err := repo.Update(ctx, "c1", "u1", nil, toggle)
	require.NoError(t, err)

	_, err = repo.Get(ctx, "c1", "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_AplicaTTL(t *testing.T) {
	repo, mr := newRepo(t, time.Hour)

	_, err := repo.Update(context.Background(), "c1", "u1", nil, toggle)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL("dashboard:view_state:c1:u1"))

	mr.FastForward(2 * time.Hour)
	_, err = repo.Get(context.Background(), "c1", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_ErrorDeMutacionNoEscribe(t *testing.T) {
	repo, mr := newRepo(t, 0)
	boom := errors.New("boom")

	_, err := repo.Update(context.Background(), "c1", "u1", nil, func(*entity.ViewState) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("dashboard:view_state:c1:u1"))
}

func TestUpdate_TogglesConcurrentesNoSePierden(t *testing.T) {
	repo, _ := newRepo(t, 0)
	ctx := context.Background()

	const writers = 4
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "c1", "u1", nil, toggle)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	applied := 0
	for err := range errs {
		if err == nil {
			applied++
			continue
		}
		require.ErrorIs(t, err, domain.ErrConflict)
	}

	state, err := repo.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Equal(t, applied%2 == 1, state.SidebarCollapsed, "cada toggle confirmado se aplica exactamente una vez")
}
