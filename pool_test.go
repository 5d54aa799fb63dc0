package assetcache

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillPool occupies the single core worker and the single queue slot of pool
// and returns a function that lets them finish.
func fillPool(t *testing.T, pool *Pool) func() {
	t.Helper()
	gate := make(chan struct{})
	started := make(chan struct{})
	require.True(t, pool.Submit(func() {
		close(started)
		<-gate
	}))
	<-started
	require.True(t, pool.Submit(func() { <-gate }))
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

func TestPoolRunsEverything(t *testing.T) {
	pool := NewPool(PoolOptions{Workers: 4, QueueSize: 8})
	var n atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 1000; i++ {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			n.Add(1)
		})
	}
	wg.Wait()
	pool.Close()
	assert.EqualValues(t, 1000, n.Load())
}

func TestPoolCallerRuns(t *testing.T) {
	pool := NewPool(PoolOptions{Workers: 1, QueueSize: 1})
	defer pool.Close()
	release := fillPool(t, pool)
	defer release()

	before := testutil.ToFloat64(poolInline)
	ran := false
	assert.False(t, pool.Submit(func() { ran = true }))
	assert.True(t, ran, "task ran before Submit returned")
	assert.EqualValues(t, 1, pool.InlineRuns())
	assert.Equal(t, before+1, testutil.ToFloat64(poolInline))
}

func TestPoolBurstWorkers(t *testing.T) {
	pool := NewPool(PoolOptions{Workers: 1, MaxWorkers: 2, QueueSize: 1})
	defer pool.Close()
	release := fillPool(t, pool)
	defer release()

	gate := make(chan struct{})
	started := make(chan struct{})
	assert.True(t, pool.Submit(func() {
		close(started)
		<-gate
	}), "queue full, a burst worker takes the task")
	<-started
	defer close(gate)

	ran := false
	assert.False(t, pool.Submit(func() { ran = true }), "burst capacity used up")
	assert.True(t, ran)
}

func TestPoolAfterClose(t *testing.T) {
	pool := NewPool(PoolOptions{Workers: 2, QueueSize: 2})
	pool.Close()
	pool.Close()

	ran := false
	assert.False(t, pool.Submit(func() { ran = true }))
	assert.True(t, ran)
}
