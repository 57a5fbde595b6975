package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/ports"
)

func TestIdempotencyStore_SaveAndReplay(t *testing.T) {
	store := NewIdempotencyStore()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	missing, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	saved, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k1", RequestHash: "h", OrderID: 1})
	require.NoError(t, err)
	assert.Equal(t, fixed, saved.CreatedAt)

	again, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k1", RequestHash: "h", OrderID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.OrderID)

	found, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "h", found.RequestHash)
}

func TestIdempotencyStore_Conflict(t *testing.T) {
	store := NewIdempotencyStore()
	ctx := context.Background()

	_, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k1", RequestHash: "h", OrderID: 1})
	require.NoError(t, err)

	existing, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k1", RequestHash: "other", OrderID: 2})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.NotNil(t, existing)
	assert.Equal(t, int64(1), existing.OrderID)
}
