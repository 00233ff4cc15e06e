package server

import (
	"context"
	"sync/atomic"
)

// WorkerPool bounds concurrent request processing. Evaluation and
// legal-move requests are cheap and share a wide semaphore; searches
// burn a core each and get a narrow one.
type WorkerPool struct {
	evalSem   chan struct{}
	searchSem chan struct{}

	queuedEval   int64
	queuedSearch int64
	activeEval   int64
	activeSearch int64
	totalEval    int64
	totalSearch  int64
}

// PoolConfig configures the worker pool.
type PoolConfig struct {
	MaxEvalWorkers   int // Max concurrent evaluations (default: 100)
	MaxSearchWorkers int // Max concurrent searches (default: 4)
}

// DefaultPoolConfig returns a PoolConfig with sensible defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxEvalWorkers:   100,
		MaxSearchWorkers: 4,
	}
}

// NewWorkerPool creates a worker pool with the given configuration.
func NewWorkerPool(config PoolConfig) *WorkerPool {
	if config.MaxEvalWorkers <= 0 {
		config.MaxEvalWorkers = 100
	}
	if config.MaxSearchWorkers <= 0 {
		config.MaxSearchWorkers = 4
	}

	return &WorkerPool{
		evalSem:   make(chan struct{}, config.MaxEvalWorkers),
		searchSem: make(chan struct{}, config.MaxSearchWorkers),
	}
}

// AcquireEval acquires a slot for a cheap operation. Returns an error
// if the context is cancelled while waiting.
func (p *WorkerPool) AcquireEval(ctx context.Context) error {
	atomic.AddInt64(&p.queuedEval, 1)
	defer atomic.AddInt64(&p.queuedEval, -1)

	select {
	case p.evalSem <- struct{}{}:
		atomic.AddInt64(&p.activeEval, 1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseEval releases a cheap operation slot.
func (p *WorkerPool) ReleaseEval() {
	atomic.AddInt64(&p.activeEval, -1)
	atomic.AddInt64(&p.totalEval, 1)
	<-p.evalSem
}

// AcquireSearch acquires a slot for a search. Returns an error if the
// context is cancelled while waiting.
func (p *WorkerPool) AcquireSearch(ctx context.Context) error {
	atomic.AddInt64(&p.queuedSearch, 1)
	defer atomic.AddInt64(&p.queuedSearch, -1)

	select {
	case p.searchSem <- struct{}{}:
		atomic.AddInt64(&p.activeSearch, 1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseSearch releases a search slot.
func (p *WorkerPool) ReleaseSearch() {
	atomic.AddInt64(&p.activeSearch, -1)
	atomic.AddInt64(&p.totalSearch, 1)
	<-p.searchSem
}

// TryAcquireSearch tries to acquire a search slot without blocking.
func (p *WorkerPool) TryAcquireSearch() bool {
	select {
	case p.searchSem <- struct{}{}:
		atomic.AddInt64(&p.activeSearch, 1)
		return true
	default:
		return false
	}
}

// PoolStats reports current pool usage.
type PoolStats struct {
	ActiveEval   int64 `json:"active_eval"`
	ActiveSearch int64 `json:"active_search"`
	QueuedEval   int64 `json:"queued_eval"`
	QueuedSearch int64 `json:"queued_search"`
	TotalEval    int64 `json:"total_eval"`
	TotalSearch  int64 `json:"total_search"`
	MaxEval      int   `json:"max_eval"`
	MaxSearch    int   `json:"max_search"`
}

// Stats returns current pool statistics.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		ActiveEval:   atomic.LoadInt64(&p.activeEval),
		ActiveSearch: atomic.LoadInt64(&p.activeSearch),
		QueuedEval:   atomic.LoadInt64(&p.queuedEval),
		QueuedSearch: atomic.LoadInt64(&p.queuedSearch),
		TotalEval:    atomic.LoadInt64(&p.totalEval),
		TotalSearch:  atomic.LoadInt64(&p.totalSearch),
		MaxEval:      cap(p.evalSem),
		MaxSearch:    cap(p.searchSem),
	}
}
