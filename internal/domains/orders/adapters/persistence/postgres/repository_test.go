package postgres

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	herddomain "github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-yakshop/internal/platform/migrations"
)

// openSQLite gives each test its own in-memory database with the production schema.
func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func placed(t *testing.T, customer string, milk float64, skins int64) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(0, customer, 14, milk, skins)
	require.NoError(t, err)
	order.Fulfil(herddomain.Products{Milk: 118881, Wool: 4})
	return order
}

func TestRepository_RoundTripsOrders(t *testing.T) {
	repo := NewRepository(openSQLite(t))
	ctx := context.Background()

	saved, err := repo.Save(ctx, placed(t, "Medvedev", 1200, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Entity.ID)
	assert.False(t, saved.Metadata.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, saved.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartial, fetched.Entity.Status)
	assert.Equal(t, herddomain.Milk(120000), fetched.Entity.Requested.Milk)
	assert.Zero(t, fetched.Entity.Delivered.Milk)
	assert.Equal(t, uint32(3), fetched.Entity.Delivered.Wool)
	assert.Equal(t, uint32(14), fetched.Entity.Day)
}

func TestRepository_UpsertsExistingID(t *testing.T) {
	repo := NewRepository(openSQLite(t))
	ctx := context.Background()

	saved, err := repo.Save(ctx, placed(t, "Medvedev", 1100, 3))
	require.NoError(t, err)

	order := saved.Entity
	order.Fulfil(herddomain.Products{})
	updated, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, saved.Entity.ID, updated.Entity.ID)
	assert.Equal(t, domain.StatusRejected, updated.Entity.Status)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRepository_ListOrderedAndNotFound(t *testing.T) {
	repo := NewRepository(openSQLite(t))
	ctx := context.Background()

	for _, customer := range []string{"a", "b", "c"} {
		_, err := repo.Save(ctx, placed(t, customer, 1, 0))
		require.NoError(t, err)
	}
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, p := range list {
		assert.Equal(t, int64(i+1), p.Entity.ID)
	}

	_, err = repo.GetByID(ctx, 42)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo := NewRepository(openSQLite(t))
	ctx := context.Background()

	keep, err := repo.Save(ctx, placed(t, "a", 1, 0))
	require.NoError(t, err)
	drop, err := repo.Save(ctx, placed(t, "b", 1, 0))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, drop.Entity.ID))
	require.ErrorIs(t, repo.Delete(ctx, drop.Entity.ID), ports.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.Entity.ID, list[0].Entity.ID)
}

func TestRepository_Guards(t *testing.T) {
	var unconfigured *Repository
	_, err := unconfigured.GetByID(context.Background(), 1)
	require.Error(t, err)

	repo := NewRepository(openSQLite(t))
	_, err = repo.Save(context.Background(), nil)
	require.Error(t, err)
	_, err = repo.Save(context.Background(), &domain.Order{Customer: "x", Status: domain.StatusRejected})
	require.ErrorIs(t, err, domain.ErrEmptyOrder)
}
