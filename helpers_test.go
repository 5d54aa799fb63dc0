package assetcache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func asset(id string) Asset {
	return Asset{
		ID:          id,
		Name:        "Microsoft Corp BOND",
		Cusip:       "594918104",
		CreatedAt:   time.Date(2025, 2, 3, 4, 5, 6, 7_000_000, time.UTC),
		MarketValue: 412.5,
		Currency:    "USD",
	}
}

func assetIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("ASSET_%06d", i+1)
	}
	return ids
}

// fakeStore is an in-memory Store that counts its calls.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]Asset
	down    bool
	allErr  error
	onMany  func([]string)

	getOne  atomic.Int64
	getMany atomic.Int64
}

func newFakeStore(ids ...string) *fakeStore {
	s := &fakeStore{records: make(map[string]Asset)}
	for _, id := range ids {
		s.records[id] = asset(id)
	}
	return s
}

func (s *fakeStore) GetOne(_ context.Context, id string) (Asset, bool) {
	s.getOne.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return Asset{}, false
	}
	a, ok := s.records[id]
	return a, ok
}

func (s *fakeStore) GetMany(_ context.Context, ids []string) []Asset {
	s.getMany.Add(1)
	if s.onMany != nil {
		s.onMany(ids)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil
	}
	var out []Asset
	for _, id := range ids {
		if a, ok := s.records[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

func (s *fakeStore) AllIDs(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allErr != nil {
		return nil, s.allErr
	}
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *fakeStore) Healthy(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.down
}

func (s *fakeStore) calls() int64 {
	return s.getOne.Load() + s.getMany.Load()
}

// fakePeer serves FetchInternal from a fixed record set.
type fakePeer struct {
	records map[string]Asset
	err     error
	extra   []Asset
	block   bool
	asked   [][]string
	mu      sync.Mutex
}

func newFakePeer(ids ...string) *fakePeer {
	p := &fakePeer{records: make(map[string]Asset)}
	for _, id := range ids {
		p.records[id] = asset(id)
	}
	return p
}

func (p *fakePeer) FetchInternal(ctx context.Context, ids []string) ([]Asset, error) {
	p.mu.Lock()
	p.asked = append(p.asked, append([]string(nil), ids...))
	p.mu.Unlock()
	if p.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if p.err != nil {
		return nil, p.err
	}
	out := append([]Asset(nil), p.extra...)
	for _, id := range ids {
		if a, ok := p.records[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (p *fakePeer) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.asked)
}

func newTestCache() *LocalCache {
	return NewLocalCache(CacheOptions{MaxEntries: 1000, Shards: 4, ExpireAfterAccess: time.Hour, ExpireAfterWrite: time.Hour})
}

func newTestResolver(t *testing.T, store Store, cache *LocalCache, peers ...*fakePeer) *Resolver {
	t.Helper()
	logger := zaptest.NewLogger(t)
	var ps []Peer
	for i, p := range peers {
		ps = append(ps, Peer{Addr: fmt.Sprintf("peer-%d:9090", i), Fetcher: p})
	}
	pool := NewPool(PoolOptions{Workers: 4, MaxWorkers: 8, QueueSize: 16})
	t.Cleanup(pool.Close)
	r, err := NewResolver(Options{
		Instance:     "test-0",
		SubBatchSize: 1000,
		Cache:        cache,
		Store:        store,
		Peers:        NewPeerFanout(ps, cache, FanoutOptions{Logger: logger}),
		Pool:         pool,
		Logger:       logger,
	})
	require.NoError(t, err)
	return r
}

func collect(t *testing.T, results <-chan Result) []PartialResponse {
	t.Helper()
	var out []PartialResponse
	for res := range results {
		require.NoError(t, res.Err)
		out = append(out, res.Response)
	}
	return out
}

func foundIDs(responses []PartialResponse) map[string]bool {
	ids := make(map[string]bool)
	for _, r := range responses {
		for _, a := range r.Assets {
			ids[a.ID] = true
		}
	}
	return ids
}
