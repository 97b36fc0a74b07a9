package crawler

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dimos082/website-monitor/internal/repository"
	"github.com/dimos082/website-monitor/internal/scanner"
)

// Scanner is the slice of the engine the pool needs; satisfied by *scanner.Engine.
type Scanner interface {
	Scan(ctx context.Context, seed string, depth int) (*scanner.Result, error)
}

// Pool is injected into scan_service so handlers can queue jobs.
type Pool interface {
	// Start runs background workers until the passed context is cancelled.
	Start(ctx context.Context)
	Enqueue(id uint)
	Shutdown()
}

// New creates a new scan pool with the given repository and engine.
func New(repo repository.ScanRepository, eng Scanner, log *logrus.Logger, workers, buf int) Pool {
	if workers <= 0 {
		workers = 4
	}
	if buf <= 0 {
		buf = 128
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &pool{
		repo:    repo,
		engine:  eng,
		log:     log,
		workers: workers,
		tasks:   make(chan uint, buf),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// pool manages a set of workers that process queued scans.
type pool struct {
	repo    repository.ScanRepository
	engine  Scanner
	log     *logrus.Logger
	workers int
	tasks   chan uint

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start spins up background workers and blocks until ctx is cancelled.
func (p *pool) Start(ctx context.Context) {
	childCtx, cancel := context.WithCancel(ctx)
	p.ctx = childCtx
	defer cancel()

	for i := 0; i < p.workers; i++ {
		w := newWorker(i+1, p.ctx, p.repo, p.engine, p.log)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			w.run(p.tasks)
		}()
	}

	<-p.ctx.Done()
	p.Shutdown()
}

// Enqueue drops a scan-row ID onto the buffered channel.
func (p *pool) Enqueue(id uint) {
	select {
	case <-p.ctx.Done():
	case p.tasks <- id:
	default:
		p.log.WithField("id", id).Warn("scan queue full, dropping")
	}
}

// Shutdown cancels the context, waits for all workers to finish, and then closes the tasks channel.
func (p *pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	close(p.tasks)
}
