package assetcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func fanout(t *testing.T, cache *LocalCache, opts FanoutOptions, peers ...*fakePeer) *PeerFanout {
	ps := make([]Peer, len(peers))
	for i, p := range peers {
		ps[i] = Peer{Addr: string(rune('a'+i)) + ":9090", Fetcher: p}
	}
	opts.Logger = zaptest.NewLogger(t)
	return NewPeerFanout(ps, cache, opts)
}

func idsOf(assets []Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.ID
	}
	return out
}

func TestFanoutInOrder(t *testing.T) {
	first := newFakePeer("A", "B")
	second := newFakePeer("B", "C")
	third := newFakePeer("D")
	cache := newTestCache()
	f := fanout(t, cache, FanoutOptions{}, first, second, third)

	found, missing := f.Resolve(context.Background(), []string{"A", "B", "C", "X"})
	assert.Equal(t, []string{"A", "B", "C"}, idsOf(found))
	assert.Equal(t, []string{"X"}, missing)

	assert.Equal(t, [][]string{{"A", "B", "C", "X"}}, first.asked)
	assert.Equal(t, [][]string{{"C", "X"}}, second.asked)
	assert.Equal(t, [][]string{{"X"}}, third.asked)

	for _, id := range []string{"A", "B", "C"} {
		_, ok := cache.Get(id)
		assert.True(t, ok, id)
	}
}

func TestFanoutStopsWhenNothingIsMissing(t *testing.T) {
	first := newFakePeer("A")
	second := newFakePeer("A")
	f := fanout(t, newTestCache(), FanoutOptions{}, first, second)

	found, missing := f.Resolve(context.Background(), []string{"A"})
	assert.Len(t, found, 1)
	assert.Empty(t, missing)
	assert.Zero(t, second.calls())
}

func TestFanoutSkipsFailingPeers(t *testing.T) {
	down := newFakePeer("A")
	down.err = errors.New("connection refused")
	slow := newFakePeer("A")
	slow.block = true
	up := newFakePeer("A")
	f := fanout(t, newTestCache(), FanoutOptions{PeerTimeout: 20 * time.Millisecond}, down, slow, up)

	start := time.Now()
	found, missing := f.Resolve(context.Background(), []string{"A", "B"})
	assert.Equal(t, []string{"A"}, idsOf(found))
	assert.Equal(t, []string{"B"}, missing)
	assert.Equal(t, 1, slow.calls())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFanoutDeadlineSkipsRemainingPeers(t *testing.T) {
	slow := newFakePeer()
	slow.block = true
	next := newFakePeer("A")
	f := fanout(t, newTestCache(), FanoutOptions{PeerTimeout: time.Second, Timeout: 20 * time.Millisecond}, slow, next)

	found, missing := f.Resolve(context.Background(), []string{"A"})
	assert.Empty(t, found)
	assert.Equal(t, []string{"A"}, missing)
	assert.Zero(t, next.calls())
}

func TestFanoutIgnoresUnrequestedRecords(t *testing.T) {
	p := newFakePeer("A")
	p.extra = []Asset{asset("EVIL"), asset("A")}
	cache := newTestCache()
	f := fanout(t, cache, FanoutOptions{}, p)

	found, missing := f.Resolve(context.Background(), []string{"A"})
	assert.Equal(t, []string{"A"}, idsOf(found), "duplicates and strangers dropped")
	assert.Empty(t, missing)
	_, ok := cache.Get("EVIL")
	assert.False(t, ok)
}

func TestFanoutWithoutPeers(t *testing.T) {
	var nilFanout *PeerFanout
	found, missing := nilFanout.Resolve(context.Background(), []string{"A"})
	assert.Nil(t, found)
	assert.Equal(t, []string{"A"}, missing)

	f := NewPeerFanout(nil, newTestCache(), FanoutOptions{})
	require.Empty(t, f.Peers())
	_, missing = f.Resolve(context.Background(), []string{"A"})
	assert.Equal(t, []string{"A"}, missing)
}

func TestFanoutRepeatedIDsCountEveryOccurrence(t *testing.T) {
	p := newFakePeer("A")
	p.extra = []Asset{asset("A")}
	f := fanout(t, newTestCache(), FanoutOptions{}, p)

	found, missing := f.Resolve(context.Background(), []string{"A", "X", "A"})
	assert.Equal(t, []string{"A", "A"}, idsOf(found))
	assert.Equal(t, []string{"X"}, missing)
}

func TestFanoutSetPeers(t *testing.T) {
	old := newFakePeer("A")
	f := fanout(t, newTestCache(), FanoutOptions{}, old)

	replacement := newFakePeer("A", "B")
	f.SetPeers([]Peer{{Addr: "b:9090", Fetcher: replacement}})
	require.Len(t, f.Peers(), 1)
	assert.Equal(t, "b:9090", f.Peers()[0].Addr)

	found, missing := f.Resolve(context.Background(), []string{"A", "B"})
	assert.Equal(t, []string{"A", "B"}, idsOf(found))
	assert.Empty(t, missing)
	assert.Zero(t, old.calls())
	assert.Equal(t, 1, replacement.calls())

	f.SetPeers(nil)
	_, missing = f.Resolve(context.Background(), []string{"C"})
	assert.Equal(t, []string{"C"}, missing)
}
