// Package assetcache resolves financial-instrument records through a tiered
// lookup and streams the results of large batches back as they complete.
/*
                                hit
   id ──> local cache ─────────────────────────────────> found
              │ miss                      found
              └──> peers (in order) ───────────────────> found, cached
                       │ still missing            found
                       └──> backing store ─────────────> found, cached
                                │ absent
                                └──> omitted from the response
*/
package assetcache

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/smartinsert/assetcache/metrics"
)

const DefaultSubBatchSize = 1000

var (
	tierResolved = metrics.MustRegisterCounterVec("resolver", "assets_total",
		"Assets resolved by the tier they were found in.", "tier")
	subBatchDuration = metrics.MustRegisterHistogram("resolver", "sub_batch_seconds",
		"Time to resolve one sub-batch.", nil)
)

// Store is the backing store as seen by the resolver. Reads never fail:
// unavailable records are reported as absent.
type Store interface {
	GetOne(ctx context.Context, id string) (Asset, bool)
	GetMany(ctx context.Context, ids []string) []Asset
	AllIDs(ctx context.Context) ([]string, error)
	Healthy(ctx context.Context) bool
}

// Options wires a Resolver. Peers may be nil for a single-instance setup and
// Pool may be nil, in which case a small default pool is created.
type Options struct {
	Instance     string
	SubBatchSize int
	Cache        *LocalCache
	Store        Store
	Peers        *PeerFanout
	Pool         *Pool
	Logger       *zap.Logger
}

// Resolver owns the resolution cascade of one instance.
type Resolver struct {
	instance     string
	subBatchSize int
	cache        *LocalCache
	store        Store
	peers        *PeerFanout
	pool         *Pool
	ownsPool     bool
	logger       *zap.Logger
}

func NewResolver(opts Options) (*Resolver, error) {
	if opts.Cache == nil {
		return nil, errors.New("resolver: local cache is required")
	}
	if opts.Store == nil {
		return nil, errors.New("resolver: backing store is required")
	}
	r := &Resolver{
		instance:     opts.Instance,
		subBatchSize: opts.SubBatchSize,
		cache:        opts.Cache,
		store:        opts.Store,
		peers:        opts.Peers,
		pool:         opts.Pool,
		logger:       opts.Logger,
	}
	if r.subBatchSize <= 0 {
		r.subBatchSize = DefaultSubBatchSize
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.pool == nil {
		r.pool = NewPool(PoolOptions{Workers: 4, QueueSize: 64})
		r.ownsPool = true
	}
	return r, nil
}

func (r *Resolver) Instance() string   { return r.instance }
func (r *Resolver) Cache() *LocalCache { return r.cache }

// ResolveBatch splits req.IDs into contiguous sub-batches of at most
// req.SubBatchSize (the configured default when <= 0) and resolves them on the
// worker pool.
// Every sub-batch produces exactly one Result, delivered in completion order;
// the channel is closed once all of them have reported. The channel is
// buffered for every sub-batch, so an abandoned stream never blocks workers.
func (r *Resolver) ResolveBatch(ctx context.Context, req BatchRequest) <-chan Result {
	subBatchSize := req.SubBatchSize
	if subBatchSize <= 0 {
		subBatchSize = r.subBatchSize
	}
	batches := splitBatches(req.IDs, subBatchSize)
	out := make(chan Result, len(batches))
	if len(batches) == 0 {
		close(out)
		return out
	}

	var wg sync.WaitGroup
	wg.Add(len(batches))
	for _, batch := range batches {
		// a full pool runs the sub-batch on this goroutine instead of dropping it
		r.pool.Submit(func() {
			defer wg.Done()
			out <- r.runSubBatch(ctx, batch)
		})
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ResolveLocal is the entry point used by peers: local cache, then backing
// store, and never another fan-out, so lookups cannot bounce around the fleet.
func (r *Resolver) ResolveLocal(ctx context.Context, ids []string) PartialResponse {
	return r.resolve(ctx, ids, false)
}

// Healthy reports whether this instance can serve: the backing store answers
// and the local cache is in place.
func (r *Resolver) Healthy(ctx context.Context) bool {
	return r.cache != nil && r.store.Healthy(ctx)
}

// Close releases the default pool, if the resolver created one.
func (r *Resolver) Close() {
	if r.ownsPool {
		r.pool.Close()
	}
}

// runSubBatch turns a panic into an error result so a failing sub-batch still
// reports and the stream can be closed with an error.
func (r *Resolver) runSubBatch(ctx context.Context, ids []string) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("sub-batch panicked",
				zap.Int("ids", len(ids)), zap.Any("panic", rec), zap.ByteString("stack", debug.Stack()))
			res = Result{Err: fmt.Errorf("resolving sub-batch of %d ids: panic: %v", len(ids), rec)}
		}
	}()
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}
	return Result{Response: r.resolve(ctx, ids, true)}
}

func (r *Resolver) resolve(ctx context.Context, ids []string, fanout bool) PartialResponse {
	start := time.Now()
	defer metrics.ObserveSince(subBatchDuration, start)

	// tier 1: local cache
	found := make([]Asset, 0, len(ids))
	var missing []string
	for _, id := range ids {
		if a, ok := r.cache.Get(id); ok {
			found = append(found, a)
		} else {
			missing = append(missing, id)
		}
	}
	tierResolved.WithLabelValues("local").Add(float64(len(found)))

	// tier 2: peers, skipped for internal calls so lookups never bounce
	if len(missing) > 0 && fanout && r.peers != nil {
		var fromPeers []Asset
		fromPeers, missing = r.peers.Resolve(ctx, missing)
		found = append(found, fromPeers...)
		tierResolved.WithLabelValues("peer").Add(float64(len(fromPeers)))
	}

	// tier 3: backing store; whatever it lacks is left out of the response
	if len(missing) > 0 {
		fromStore := r.store.GetMany(ctx, missing)
		for _, a := range fromStore {
			r.cache.Put(a.ID, a)
		}
		found = append(found, fromStore...)
		tierResolved.WithLabelValues("store").Add(float64(len(fromStore)))
	}

	elapsed := time.Since(start)
	r.logger.Debug("resolved sub-batch",
		zap.Int("requested", len(ids)), zap.Int("found", len(found)),
		zap.Bool("fanout", fanout), zap.Duration("elapsed", elapsed))
	return PartialResponse{
		Assets:    found,
		Found:     len(found),
		Requested: len(ids),
		Instance:  r.instance,
		Elapsed:   elapsed,
	}
}

// splitBatches cuts ids into contiguous chunks of at most size; the last chunk may be shorter.
func splitBatches(ids []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end:end])
	}
	return batches
}
