package assetcache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrPartitionInfeasible means the store holds fewer ids than the fleet wants to pre-warm.
	ErrPartitionInfeasible = errors.New("partition infeasible")
	// ErrInvalidPartition means the partition coordinates themselves are out of range.
	ErrInvalidPartition = errors.New("invalid partition")
)

const defaultPopulateConcurrency = 8

// Partition is the fleet position of this instance: instance Index of Total
// owns the half-open range [Index*PerInstance, (Index+1)*PerInstance) of the
// lexicographically sorted id set. It is computed once at startup.
type Partition struct {
	Index       int `yaml:"index"`
	Total       int `yaml:"total"`
	PerInstance int `yaml:"perInstance"`
}

func (p Partition) Validate() error {
	if p.Total < 1 {
		return fmt.Errorf("%w: total instances %d", ErrInvalidPartition, p.Total)
	}
	if p.Index < 0 || p.Index >= p.Total {
		return fmt.Errorf("%w: index %d not in [0,%d)", ErrInvalidPartition, p.Index, p.Total)
	}
	if p.PerInstance < 0 {
		return fmt.Errorf("%w: negative per-instance count %d", ErrInvalidPartition, p.PerInstance)
	}
	return nil
}

// Bounds returns the [from, to) range owned by p among n ids.
func (p Partition) Bounds(n int) (from, to int, err error) {
	if err := p.Validate(); err != nil {
		return 0, 0, err
	}
	if p.PerInstance*p.Total > n {
		return 0, 0, fmt.Errorf("%w: %d ids cannot give %d instances %d each",
			ErrPartitionInfeasible, n, p.Total, p.PerInstance)
	}
	from = p.Index * p.PerInstance
	return from, from + p.PerInstance, nil
}

// Slice returns the ids owned by p. sorted must already be in lexicographic order.
func (p Partition) Slice(sorted []string) ([]string, error) {
	from, to, err := p.Bounds(len(sorted))
	if err != nil {
		return nil, err
	}
	return sorted[from:to], nil
}

// PopulateOptions tunes Populate.
type PopulateOptions struct {
	Concurrency int
	Logger      *zap.Logger
}

// Populate pre-warms cache with the partition owned by p. It reads the full id
// set from store, sorts it, and loads every owned record. An infeasible
// partition is returned as ErrPartitionInfeasible and nothing is cached.
// Running it again reloads the same slice.
func Populate(ctx context.Context, cache *LocalCache, store Store, p Partition, opts PopulateOptions) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = defaultPopulateConcurrency
	}
	start := time.Now()

	ids, err := store.AllIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing asset ids: %w", err)
	}
	slices.Sort(ids)
	owned, err := p.Slice(ids)
	if err != nil {
		return 0, err
	}
	logger.Info("populating cache partition",
		zap.Int("index", p.Index), zap.Int("total", p.Total),
		zap.Int("perInstance", p.PerInstance), zap.Int("ids", len(ids)))

	var loaded atomic.Int64
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Concurrency)
	for _, id := range owned {
		eg.Go(func() error {
			if a, ok := store.GetOne(gctx, id); ok {
				cache.Put(id, a)
				loaded.Add(1)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return int(loaded.Load()), err
	}
	if err := ctx.Err(); err != nil {
		return int(loaded.Load()), fmt.Errorf("populating partition: %w", err)
	}

	logger.Info("cache partition populated",
		zap.Int("index", p.Index), zap.Int64("loaded", loaded.Load()),
		zap.Int("cacheSize", cache.EstimatedSize()), zap.Duration("took", time.Since(start)))
	return int(loaded.Load()), nil
}
