package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herddomain "github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/ports"
)

func placedOrder(t *testing.T, customer string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(0, customer, 14, 1100, 3)
	require.NoError(t, err)
	order.Fulfil(herddomain.Products{Milk: 118881, Wool: 4})
	return order
}

func TestRepository_AssignsIDsAndTimestamps(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := NewRepository(WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	first, err := repo.Save(ctx, placedOrder(t, "Medvedev"))
	require.NoError(t, err)
	second, err := repo.Save(ctx, placedOrder(t, "Putin"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Entity.ID)
	assert.Equal(t, int64(2), second.Entity.ID)
	assert.Equal(t, fixed, first.Metadata.CreatedAt)
	assert.Equal(t, fixed, first.Metadata.UpdatedAt)

	fetched, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Putin", fetched.Entity.Customer)
	assert.Equal(t, domain.StatusFulfilled, fetched.Entity.Status)
}

func TestRepository_ResaveKeepsCreatedAt(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := NewRepository(WithClock(func() time.Time { return now }))
	ctx := context.Background()

	saved, err := repo.Save(ctx, placedOrder(t, "Medvedev"))
	require.NoError(t, err)

	now = now.Add(time.Hour)
	resaved, err := repo.Save(ctx, saved.Entity)
	require.NoError(t, err)
	assert.Equal(t, saved.Entity.ID, resaved.Entity.ID)
	assert.Equal(t, saved.Metadata.CreatedAt, resaved.Metadata.CreatedAt)
	assert.True(t, resaved.Metadata.UpdatedAt.After(saved.Metadata.UpdatedAt))
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, placedOrder(t, "Medvedev"))
	require.NoError(t, err)
	saved.Entity.Customer = "mutated"

	fetched, err := repo.GetByID(ctx, saved.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Medvedev", fetched.Entity.Customer)
}

func TestRepository_RejectsInvalidOrders(t *testing.T) {
	repo := NewRepository()
	_, err := repo.Save(context.Background(), nil)
	require.Error(t, err)

	_, err = repo.Save(context.Background(), &domain.Order{Customer: "x", Status: domain.StatusRejected})
	require.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestRepository_NotFoundAndList(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 99)
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = repo.Save(ctx, placedOrder(t, "Medvedev"))
	require.NoError(t, err)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRepository_Delete(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, placedOrder(t, "Medvedev"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.Entity.ID))
	_, err = repo.GetByID(ctx, saved.Entity.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, saved.Entity.ID), ports.ErrNotFound)
}
