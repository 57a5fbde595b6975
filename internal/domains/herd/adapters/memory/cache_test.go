package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/ports"
)

func TestCache_PutAndGet(t *testing.T) {
	cache := NewCache(0)
	ctx := context.Background()
	key := ports.SnapshotKey{Herd: "abc", Days: 13}

	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	report := domain.Report{
		ElapsedDays: 13,
		Stock:       domain.Products{Milk: 110448, Wool: 3},
		Herd:        []domain.YakView{{Name: "Betty-1", AgeDays: 413, LastShavedDays: 400}},
	}
	require.NoError(t, cache.Put(ctx, key, report))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, report, got)

	got.Herd[0].Name = "mutated"
	again, _, _ := cache.Get(ctx, key)
	assert.Equal(t, "Betty-1", again.Herd[0].Name)
}

func TestCache_EvictsOldest(t *testing.T) {
	cache := NewCache(2)
	ctx := context.Background()
	for days := uint32(1); days <= 3; days++ {
		require.NoError(t, cache.Put(ctx, ports.SnapshotKey{Herd: "h", Days: days}, domain.Report{ElapsedDays: uint64(days)}))
	}
	assert.Equal(t, 2, cache.Len())

	_, ok, _ := cache.Get(ctx, ports.SnapshotKey{Herd: "h", Days: 1})
	assert.False(t, ok)
	_, ok, _ = cache.Get(ctx, ports.SnapshotKey{Herd: "h", Days: 3})
	assert.True(t, ok)
}
