package workers

import (
	"context"
	"log"
	"time"

	"github.com/comitanigiacomo/presence-analyzer/internal/core/domain"
)

type WarmJob struct {
	Reason string
}

// CacheWarmer reloads the presence index in the background so that a caching
// repository holds a fresh copy before requests arrive.
type CacheWarmer struct {
	repo     domain.PresenceRepository
	interval time.Duration
	jobs     chan WarmJob
	done     chan WarmResult
}

type WarmResult struct {
	Reason string
	Users  int
	Err    error
}

func NewCacheWarmer(repo domain.PresenceRepository, interval time.Duration) *CacheWarmer {
	return &CacheWarmer{
		repo:     repo,
		interval: interval,
		jobs:     make(chan WarmJob, 16),
	}
}

// Results returns a channel receiving the outcome of every processed job.
// It must be called before Start.
func (w *CacheWarmer) Results() <-chan WarmResult {
	if w.done == nil {
		w.done = make(chan WarmResult, 16)
	}
	return w.done
}

func (w *CacheWarmer) Start(ctx context.Context) {
	go func() {
		log.Println("[WARMER] Cache warmer started in background...")

		var tick <-chan time.Time
		if w.interval > 0 {
			ticker := time.NewTicker(w.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-tick:
				w.processJob(ctx, WarmJob{Reason: "interval"})
			case <-ctx.Done():
				log.Println("[WARMER] Cache warmer shutting down...")
				return
			}
		}
	}()
}

func (w *CacheWarmer) Enqueue(reason string) {
	select {
	case w.jobs <- WarmJob{Reason: reason}:
	default:
		log.Printf("[WARMER] Queue full! Dropping warm job (%s)", reason)
	}
}

func (w *CacheWarmer) processJob(ctx context.Context, job WarmJob) {
	idx, err := w.repo.Load(ctx)
	res := WarmResult{Reason: job.Reason, Err: err}

	if err != nil {
		log.Printf("[WARMER] Failed to load presence data (%s): %v", job.Reason, err)
	} else {
		res.Users = len(idx)
		log.Printf("[WARMER] Presence index warmed (%s): %d users", job.Reason, res.Users)
	}

	if w.done != nil {
		select {
		case w.done <- res:
		default:
		}
	}
}
