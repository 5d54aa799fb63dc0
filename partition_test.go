package assetcache

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPartitionBounds(t *testing.T) {
	tests := []struct {
		name     string
		p        Partition
		n        int
		from, to int
		err      error
	}{
		{"first", Partition{Index: 0, Total: 3, PerInstance: 10}, 30, 0, 10, nil},
		{"last", Partition{Index: 2, Total: 3, PerInstance: 10}, 35, 20, 30, nil},
		{"empty share", Partition{Index: 1, Total: 2, PerInstance: 0}, 0, 0, 0, nil},
		{"infeasible", Partition{Index: 0, Total: 3, PerInstance: 10}, 29, 0, 0, ErrPartitionInfeasible},
		{"index out of range", Partition{Index: 3, Total: 3, PerInstance: 1}, 10, 0, 0, ErrInvalidPartition},
		{"no instances", Partition{Index: 0, Total: 0, PerInstance: 1}, 10, 0, 0, ErrInvalidPartition},
		{"negative share", Partition{Index: 0, Total: 1, PerInstance: -1}, 10, 0, 0, ErrInvalidPartition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := tt.p.Bounds(tt.n)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}

func TestPartitionsAreDisjoint(t *testing.T) {
	ids := assetIDs(1000)
	const total, per = 7, 140

	owner := make(map[string]int)
	for i := 0; i < total; i++ {
		slice, err := Partition{Index: i, Total: total, PerInstance: per}.Slice(ids)
		require.NoError(t, err)
		assert.Len(t, slice, per)
		for _, id := range slice {
			prev, taken := owner[id]
			assert.False(t, taken, "%s owned by %d and %d", id, prev, i)
			owner[id] = i
		}
	}
	assert.Len(t, owner, total*per)
}

func TestPopulate(t *testing.T) {
	ids := assetIDs(90)
	store := newFakeStore(ids...)
	cache := newTestCache()
	p := Partition{Index: 1, Total: 3, PerInstance: 30}

	n, err := Populate(context.Background(), cache, store, p, PopulateOptions{Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	assert.Equal(t, 30, n)
	assert.Equal(t, 30, cache.EstimatedSize())

	sorted := slices.Sorted(slices.Values(ids))
	for i, id := range sorted {
		_, ok := cache.Get(id)
		assert.Equal(t, i >= 30 && i < 60, ok, id)
	}

	n, err = Populate(context.Background(), cache, store, p, PopulateOptions{Concurrency: 2})
	require.NoError(t, err)
	assert.Equal(t, 30, n)
	assert.Equal(t, 30, cache.EstimatedSize(), "repopulating loads the same slice")
}

func TestPopulateFillsCacheToCapacity(t *testing.T) {
	ids := assetIDs(600)
	cache := NewLocalCache(CacheOptions{MaxEntries: 300, Shards: 16})
	p := Partition{Index: 0, Total: 2, PerInstance: 300}

	n, err := Populate(context.Background(), cache, newFakeStore(ids...), p, PopulateOptions{Concurrency: 8})
	require.NoError(t, err)
	assert.Equal(t, 300, n)

	stats := cache.Stats()
	assert.Zero(t, stats.Evictions)
	assert.Equal(t, 300, stats.Size)
	owned, err := p.Slice(slices.Sorted(slices.Values(ids)))
	require.NoError(t, err)
	for _, id := range owned {
		_, ok := cache.Get(id)
		assert.True(t, ok, id)
	}
}

func TestPopulateInfeasible(t *testing.T) {
	store := newFakeStore(assetIDs(10)...)
	cache := newTestCache()

	_, err := Populate(context.Background(), cache, store, Partition{Index: 0, Total: 2, PerInstance: 6}, PopulateOptions{})
	assert.ErrorIs(t, err, ErrPartitionInfeasible)
	assert.Zero(t, cache.EstimatedSize())
	assert.Zero(t, store.getOne.Load())
}

func TestPopulateListingFails(t *testing.T) {
	store := newFakeStore()
	store.allErr = errors.New("store unreachable")
	_, err := Populate(context.Background(), newTestCache(), store, Partition{Total: 1}, PopulateOptions{})
	assert.ErrorContains(t, err, "store unreachable")
}

func TestPopulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Populate(ctx, newTestCache(), newFakeStore(assetIDs(10)...), Partition{Total: 1, PerInstance: 10}, PopulateOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
