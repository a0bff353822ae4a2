// Package scheduler runs the refresh cycle, ingestion followed by clustering, periodically and on demand
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/topicscope/pkg/domain"
)

//go:generate moq -out mocks/ingester.go -pkg mocks -skip-ensure -fmt goimports . Ingester
//go:generate moq -out mocks/clusterer.go -pkg mocks -skip-ensure -fmt goimports . Clusterer
//go:generate moq -out mocks/run_store.go -pkg mocks -skip-ensure -fmt goimports . RunStore

// Ingester pulls new items from sources
type Ingester interface {
	Ingest(ctx context.Context) (int, error)
}

// Clusterer assigns unassigned items to topics
type Clusterer interface {
	Run(ctx context.Context) (domain.RunSummary, error)
}

// RunStore keeps the history of clustering runs
type RunStore interface {
	SaveRun(ctx context.Context, summary domain.RunSummary, runErr error) error
}

// Params holds scheduler dependencies
type Params struct {
	Ingester       Ingester
	Clusterer      Clusterer
	RunStore       RunStore
	UpdateInterval time.Duration
}

// Result is the outcome of one refresh
type Result struct {
	NewItems int
	Summary  domain.RunSummary
}

// Scheduler triggers refreshes on a ticker and on request. Concurrent triggers share
// a single in-flight refresh, so two clustering runs never overlap.
type Scheduler struct {
	ingester       Ingester
	clusterer      Clusterer
	runStore       RunStore
	updateInterval time.Duration

	group  singleflight.Group
	mu     sync.Mutex
	ctx    context.Context // lifetime context, set by Start
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a new scheduler instance
func NewScheduler(p Params) *Scheduler {
	if p.UpdateInterval <= 0 {
		p.UpdateInterval = 30 * time.Minute
	}
	return &Scheduler{
		ingester:       p.Ingester,
		clusterer:      p.Clusterer,
		runStore:       p.RunStore,
		updateInterval: p.UpdateInterval,
	}
}

// Start runs a refresh immediately and then on every tick until ctx is canceled or Stop is called
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	runCtx := s.ctx
	s.mu.Unlock()

	s.wg.Add(1)
	go s.worker(runCtx)
	lgr.Printf("[INFO] scheduler started with update interval %v", s.updateInterval)
}

// Stop cancels the running refresh, if any, and waits for the worker to exit
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) worker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		if _, err := s.RunNow(ctx); err != nil && ctx.Err() == nil {
			lgr.Printf("[WARN] scheduled refresh failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunNow ingests and clusters right away, or joins the refresh already in progress.
// The refresh runs under the scheduler context once started, so a caller giving up
// doesn't abort work shared with other callers.
func (s *Scheduler) RunNow(ctx context.Context) (Result, error) {
	s.mu.Lock()
	runCtx := s.ctx
	s.mu.Unlock()
	if runCtx == nil {
		runCtx = ctx
	}

	ch := s.group.DoChan("refresh", func() (any, error) {
		return s.refresh(runCtx)
	})
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case res := <-ch:
		if res.Shared {
			lgr.Printf("[DEBUG] joined refresh already in progress")
		}
		r, _ := res.Val.(Result)
		return r, res.Err
	}
}

func (s *Scheduler) refresh(ctx context.Context) (Result, error) {
	var res Result
	st := time.Now()

	n, err := s.ingester.Ingest(ctx)
	if err != nil {
		// items ingested earlier are still worth clustering
		lgr.Printf("[WARN] ingestion failed: %v", err)
	}
	res.NewItems = n
	if ctx.Err() != nil {
		return res, ctx.Err()
	}

	summary, runErr := s.clusterer.Run(ctx)
	res.Summary = summary
	if summary.RunID != "" {
		if err := s.runStore.SaveRun(context.WithoutCancel(ctx), summary, runErr); err != nil {
			lgr.Printf("[WARN] can't save run %s: %v", summary.RunID, err)
		}
	}
	if runErr != nil {
		return res, fmt.Errorf("cluster: %w", runErr)
	}

	lgr.Printf("[INFO] refresh done in %v: %d new items, %d topics created, %d items assigned, %d skipped",
		time.Since(st).Round(time.Millisecond), n, summary.TopicsCreated, summary.ItemsAssigned, summary.ItemsSkipped)
	return res, nil
}
