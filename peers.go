package assetcache

/*
	Peer fan-out: ids missing from the local cache are offered to every sibling
	instance in a fixed order before the backing store is consulted.

	missing ──> peer[0] ──> peer[1] ──> ... ──> still missing ──> backing store
	              │            │
	              └── found ───┴──> local cache

	A peer answers through its internal entry point, which only looks at its own
	cache and store and never fans out again.
*/

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/smartinsert/assetcache/metrics"
)

const (
	defaultPeerTimeout   = 2 * time.Second
	defaultFanoutTimeout = 5 * time.Second
)

var peerCalls = metrics.MustRegisterCounterVec("peer", "calls_total",
	"Internal resolution calls to sibling instances by outcome.", "peer", "outcome")

// Fetcher resolves ids on a sibling instance without further fan-out.
type Fetcher interface {
	FetchInternal(ctx context.Context, ids []string) ([]Asset, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, ids []string) ([]Asset, error)

func (f FetcherFunc) FetchInternal(ctx context.Context, ids []string) ([]Asset, error) {
	return f(ctx, ids)
}

// Peer is one sibling instance in fan-out priority order.
type Peer struct {
	Addr    string
	Fetcher Fetcher
}

// FanoutOptions configures a PeerFanout.
type FanoutOptions struct {
	// PeerTimeout bounds a single peer call.
	PeerTimeout time.Duration
	// Timeout bounds the whole fan-out for one set of ids.
	Timeout time.Duration
	Logger  *zap.Logger
}

// PeerFanout queries peers in order for ids missing locally and fills the
// local cache with whatever they return.
type PeerFanout struct {
	mu    sync.RWMutex
	peers []Peer

	cache         *LocalCache
	peerTimeout   time.Duration
	fanoutTimeout time.Duration
	logger        *zap.Logger
}

func NewPeerFanout(peers []Peer, cache *LocalCache, opts FanoutOptions) *PeerFanout {
	if opts.PeerTimeout <= 0 {
		opts.PeerTimeout = defaultPeerTimeout
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultFanoutTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &PeerFanout{
		peers:         slices.Clone(peers),
		cache:         cache,
		peerTimeout:   opts.PeerTimeout,
		fanoutTimeout: opts.Timeout,
		logger:        opts.Logger,
	}
}

// Peers returns the fan-out order.
func (f *PeerFanout) Peers() []Peer {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.peers)
}

// SetPeers replaces the fan-out order. Resolutions already under way keep the
// list they started with.
func (f *PeerFanout) SetPeers(peers []Peer) {
	peers = slices.Clone(peers)
	f.mu.Lock()
	f.peers = peers
	f.mu.Unlock()
}

// fanoutState is the accumulator of the fold over the peer list.
type fanoutState struct {
	found   []Asset
	missing []string
}

// Resolve offers missing to each peer in turn, shrinking the set as records
// come back. Failing peers contribute nothing. An id listed twice in missing
// yields two records, the same as the cache and store tiers.
func (f *PeerFanout) Resolve(ctx context.Context, missing []string) (found []Asset, stillMissing []string) {
	if f == nil || len(missing) == 0 {
		return nil, missing
	}
	peers := f.Peers()
	if len(peers) == 0 {
		return nil, missing
	}
	ctx, cancel := context.WithTimeout(ctx, f.fanoutTimeout)
	defer cancel()

	state := fanoutState{missing: missing}
	for _, p := range peers {
		// every id answered; later peers are not called
		if len(state.missing) == 0 {
			break
		}
		state = f.step(ctx, state, p)
	}

	// fill the local cache so the next request stops at the first tier
	for _, a := range state.found {
		f.cache.Put(a.ID, a)
	}
	return state.found, state.missing
}

func (f *PeerFanout) step(ctx context.Context, s fanoutState, p Peer) fanoutState {
	if err := ctx.Err(); err != nil {
		peerCalls.WithLabelValues(p.Addr, "skipped").Inc()
		return s
	}
	callCtx, cancel := context.WithTimeout(ctx, f.peerTimeout)
	defer cancel()

	assets, err := p.Fetcher.FetchInternal(callCtx, s.missing)
	if err != nil {
		peerCalls.WithLabelValues(p.Addr, "error").Inc()
		f.logger.Warn("peer fetch failed",
			zap.String("peer", p.Addr), zap.Int("missing", len(s.missing)), zap.Error(err))
		return s
	}
	peerCalls.WithLabelValues(p.Addr, "ok").Inc()

	// index the reply by id; records nobody asked for are dropped
	wanted := make(map[string]struct{}, len(s.missing))
	for _, id := range s.missing {
		wanted[id] = struct{}{}
	}
	byID := make(map[string]Asset, len(assets))
	for _, a := range assets {
		if _, ok := wanted[a.ID]; !ok {
			continue
		}
		if _, dup := byID[a.ID]; !dup {
			byID[a.ID] = a
		}
	}

	// walk the missing list so a repeated id is answered once per occurrence
	next := fanoutState{found: slices.Clip(s.found)}
	for _, id := range s.missing {
		if a, ok := byID[id]; ok {
			next.found = append(next.found, a)
		} else {
			next.missing = append(next.missing, id)
		}
	}
	f.logger.Debug("peer fetch",
		zap.String("peer", p.Addr), zap.Int("asked", len(s.missing)), zap.Int("found", len(s.missing)-len(next.missing)))
	return next
}
