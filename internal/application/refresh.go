package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"rpsboard/internal/models"
)

type RankingRunner interface {
	GenerateRanking(ctx context.Context, scope string, req RankingRequest) (*models.Ranking, error)
}

// RefreshFunc receives the outcome of a refresh that was not superseded.
type RefreshFunc func(ranking *models.Ranking, err error)

type watch struct {
	req      RankingRequest
	onResult RefreshFunc
	cancel   context.CancelFunc
	gen      uint64
}

// Refresher periodically regenerates the rankings of watched scopes. Starting
// a run for a scope cancels that scope's previous run if it is still in
// flight; only the latest run reports a result.
type Refresher struct {
	runner   RankingRunner
	interval time.Duration
	metrics  Metrics
	logger   Logger

	mu      sync.Mutex
	watches map[string]*watch
	wg      sync.WaitGroup
}

func NewRefresher(runner RankingRunner, interval time.Duration, metrics Metrics, logger Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Refresher{
		runner:   runner,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
		watches:  make(map[string]*watch),
	}
}

// Watch registers or replaces the request refreshed for scope. An invalid
// request is rejected with its user error and nothing is scheduled.
func (r *Refresher) Watch(scope string, req RankingRequest, onResult RefreshFunc) error {
	if err := ValidateRankingRequest(req); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.watches[scope]; ok && old.cancel != nil {
		old.cancel()
	}
	r.watches[scope] = &watch{req: req, onResult: onResult}
	return nil
}

func (r *Refresher) Unwatch(scope string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.watches[scope]
	if !ok {
		return false
	}
	if w.cancel != nil {
		w.cancel()
	}
	delete(r.watches, scope)
	return true
}

func (r *Refresher) Watching(scope string) (RankingRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.watches[scope]
	if !ok {
		return RankingRequest{}, false
	}
	return w.req, true
}

func (r *Refresher) Init() error {
	return nil
}

// Run refreshes every watched scope once per interval until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("ranking refresher started, interval %s", r.interval)
	for {
		select {
		case <-ctx.Done():
			r.Stop()
			return
		case <-ticker.C:
			r.RefreshAll(ctx)
		}
	}
}

func (r *Refresher) RefreshAll(ctx context.Context) {
	r.mu.Lock()
	scopes := make([]string, 0, len(r.watches))
	for scope := range r.watches {
		scopes = append(scopes, scope)
	}
	r.mu.Unlock()

	for _, scope := range scopes {
		r.Trigger(ctx, scope)
	}
}

// Trigger starts a run for scope in the background, cancelling the
// previous one. It reports false when scope is not watched.
func (r *Refresher) Trigger(ctx context.Context, scope string) bool {
	r.mu.Lock()
	w, ok := r.watches[scope]
	if !ok {
		r.mu.Unlock()
		return false
	}
	if w.cancel != nil {
		w.cancel()
		r.metrics.IncRefreshCancelled()
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.gen++
	gen, req, onResult := w.gen, w.req, w.onResult
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		ranking, err := r.runner.GenerateRanking(runCtx, scope, req)

		r.mu.Lock()
		current := r.watches[scope] == w && w.gen == gen
		if current {
			w.cancel = nil
		}
		r.mu.Unlock()

		if !current || errors.Is(err, context.Canceled) {
			return
		}
		if err != nil && !IsUserError(err) {
			r.logger.Error("refresh of %q failed: %v", scope, err)
		}
		if onResult != nil {
			onResult(ranking, err)
		}
	}()
	return true
}

// Stop cancels every in-flight run and waits for them to return.
func (r *Refresher) Stop() {
	r.mu.Lock()
	for _, w := range r.watches {
		if w.cancel != nil {
			w.cancel()
		}
	}
	r.mu.Unlock()
	r.wg.Wait()
}
