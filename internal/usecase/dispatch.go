package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/domain"
)

const (
	defaultMaxAttempts     = 2
	defaultEmptyRetryDelay = 1 * time.Second
	defaultErrorRetryDelay = 2 * time.Second
)

// DispatcherConfig holds configuration for the dispatch coordinator
type DispatcherConfig struct {
	MaxAttempts        int
	EmptyRetryDelay    time.Duration
	ErrorRetryDelay    time.Duration
	EnableDebugLogging bool
}

// Dispatcher fans a query out to all eligible marketplace adapters
// concurrently and collects whatever each of them returns. Per-source
// failures are absorbed here; a bad source only lowers the result count.
type Dispatcher struct {
	adapters           []domain.SourceAdapter
	maxAttempts        int
	emptyRetryDelay    time.Duration
	errorRetryDelay    time.Duration
	enableDebugLogging bool
}

// NewDispatcher creates a dispatch coordinator over the given adapters
func NewDispatcher(adapters []domain.SourceAdapter, config DispatcherConfig) *Dispatcher {
	maxAttempts := config.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}

	emptyDelay := config.EmptyRetryDelay
	if emptyDelay == 0 {
		emptyDelay = defaultEmptyRetryDelay
	}

	errorDelay := config.ErrorRetryDelay
	if errorDelay == 0 {
		errorDelay = defaultErrorRetryDelay
	}

	return &Dispatcher{
		adapters:           adapters,
		maxAttempts:        maxAttempts,
		emptyRetryDelay:    emptyDelay,
		errorRetryDelay:    errorDelay,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Sites returns the names of all registered adapters
func (d *Dispatcher) Sites() []string {
	names := make([]string, 0, len(d.adapters))
	for _, adapter := range d.adapters {
		names = append(names, adapter.Name())
	}
	return names
}

// Dispatch queries every adapter except excludeSite (case-insensitive) in
// parallel, one goroutine per source, and concatenates their results in
// completion order. Candidates are re-sorted by price downstream, so the
// merge order carries no meaning. Never returns an error: source failures
// are exhausted inside searchWithRetry.
func (d *Dispatcher) Dispatch(ctx context.Context, query, excludeSite string) []domain.Listing {
	var (
		mu  sync.Mutex
		all []domain.Listing
	)

	g, gctx := errgroup.WithContext(ctx)

	for _, adapter := range d.adapters {
		if strings.EqualFold(adapter.Name(), excludeSite) {
			continue
		}

		adapter := adapter
		g.Go(func() error {
			results := d.searchWithRetry(gctx, adapter, query)
			if len(results) == 0 {
				return nil
			}
			mu.Lock()
			all = append(all, results...)
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors, so Wait only joins them
	_ = g.Wait()

	return all
}

// searchWithRetry invokes a single adapter with a bounded retry policy.
// An empty result retries after a short delay (empty often means a
// transient layout glitch); an error retries after a longer one. After the
// final attempt it returns nil — source errors never reach the caller.
func (d *Dispatcher) searchWithRetry(ctx context.Context, adapter domain.SourceAdapter, query string) []domain.Listing {
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		results, err := adapter.Search(ctx, query)
		if err != nil {
			if attempt == d.maxAttempts {
				log.Printf("[SCRAPE] %s failed after %d attempts: %v", adapter.Name(), d.maxAttempts, err)
				return nil
			}
			if d.enableDebugLogging {
				log.Printf("[SCRAPE] %s attempt %d error: %v", adapter.Name(), attempt, err)
			}
			if !sleepContext(ctx, d.errorRetryDelay) {
				return nil
			}
			continue
		}

		if len(results) > 0 {
			if d.enableDebugLogging {
				log.Printf("[SCRAPE] %s: found %d products", adapter.Name(), len(results))
			}
			return results
		}

		if attempt < d.maxAttempts {
			if !sleepContext(ctx, d.emptyRetryDelay) {
				return nil
			}
		}
	}

	return nil
}

// sleepContext waits for d or until ctx is done, reporting whether the
// full delay elapsed
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
