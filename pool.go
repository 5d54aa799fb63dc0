package assetcache

import (
	"sync"
	"sync/atomic"

	"github.com/smartinsert/assetcache/metrics"
)

var (
	poolQueued = metrics.MustRegisterGauge("pool", "queued_tasks",
		"Sub-batches waiting in the worker queue.")
	poolInline = metrics.MustRegisterCounter("pool", "caller_runs_total",
		"Sub-batches executed on the submitting goroutine because the queue was full.")
)

// Pool runs tasks on a fixed set of core workers fed by a bounded queue. When
// the queue is full it starts burst workers up to MaxWorkers, and once those
// are busy too the task runs on the caller's goroutine. Work is never dropped
// and the queue never grows past its capacity.
type Pool struct {
	tasks    chan func()
	maxBurst int32
	burst    atomic.Int32
	inline   atomic.Uint64

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// PoolOptions sizes a Pool. MaxWorkers below Workers is raised to Workers.
type PoolOptions struct {
	Workers    int
	MaxWorkers int
	QueueSize  int
}

func NewPool(opts PoolOptions) *Pool {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.MaxWorkers < opts.Workers {
		opts.MaxWorkers = opts.Workers
	}
	if opts.QueueSize < 0 {
		opts.QueueSize = 0
	}
	p := &Pool{
		tasks:    make(chan func(), opts.QueueSize),
		maxBurst: int32(opts.MaxWorkers - opts.Workers),
	}
	p.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		poolQueued.Dec()
		task()
	}
}

// Submit hands task to the pool. It returns false when the task was executed
// synchronously by the caller, which happens when the pool is saturated or closed.
func (p *Pool) Submit(task func()) bool {
	p.mu.RLock()
	if !p.closed {
		// 1. queue for a core worker
		poolQueued.Inc()
		select {
		case p.tasks <- task:
			p.mu.RUnlock()
			return true
		default:
			poolQueued.Dec()
		}
		// 2. queue full: start a burst worker while under MaxWorkers
		if p.reserveBurst() {
			p.wg.Add(1)
			go p.burstWorker(task)
			p.mu.RUnlock()
			return true
		}
	}
	p.mu.RUnlock()

	// 3. saturated or closed: run on the caller
	p.inline.Add(1)
	poolInline.Inc()
	task()
	return false
}

func (p *Pool) reserveBurst() bool {
	for {
		n := p.burst.Load()
		if n >= p.maxBurst {
			return false
		}
		if p.burst.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// burstWorker runs its first task and then helps drain the queue until it is
// empty, after which it exits.
func (p *Pool) burstWorker(task func()) {
	defer p.wg.Done()
	defer p.burst.Add(-1)
	task()
	for {
		select {
		case next, ok := <-p.tasks:
			if !ok {
				return
			}
			poolQueued.Dec()
			next()
		default:
			return
		}
	}
}

// InlineRuns counts tasks that fell back to caller execution.
func (p *Pool) InlineRuns() uint64 {
	return p.inline.Load()
}

// Close stops accepting queued work and waits for the workers to drain the queue.
// Submissions after Close run on the caller.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}
