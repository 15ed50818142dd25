// Package async decouples drop-folder ingestion from capture processing
// with a bounded in-memory queue and a single rate-limited worker, so a
// bulk drop of scans does not saturate the OCR binary.
package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Job is one capture request: a dropped scan awaiting processing.
type Job struct {
	CompanyID   uuid.UUID
	Path        string
	SubmittedAt time.Time
}

// ProcessFunc handles one job. Errors are logged, not retried; a failed
// scan stays in the drop folder for the operator.
type ProcessFunc func(ctx context.Context, companyID uuid.UUID, path string) error

// ErrQueueFull is returned when the queue's buffer is exhausted.
var ErrQueueFull = errors.New("capture queue is full")

// Queue is a bounded FIFO drained by a single worker.
type Queue struct {
	jobs    chan Job
	limiter *rate.Limiter
	process ProcessFunc
	logger  *slog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

// NewQueue builds a queue holding up to size jobs, processed at most
// perSecond jobs per second (0 disables limiting).
func NewQueue(size int, perSecond float64, process ProcessFunc, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	if size <= 0 {
		size = 64
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Queue{
		jobs:    make(chan Job, size),
		limiter: rate.NewLimiter(limit, 1),
		process: process,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Start launches the worker. Safe to call once; the worker exits when the
// context is cancelled or the queue is shut down and drained.
func (q *Queue) Start(ctx context.Context) {
	q.startOnce.Do(func() {
		go q.run(ctx)
	})
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-q.jobs:
			if !ok {
				return
			}
			if err := q.limiter.Wait(ctx); err != nil {
				return
			}
			began := time.Now()
			if err := q.process(ctx, job.CompanyID, job.Path); err != nil {
				q.logger.Error("capture job failed",
					"path", job.Path,
					"company_id", job.CompanyID.String(),
					"error", err,
				)
				continue
			}
			q.logger.Info("capture job done",
				"path", job.Path,
				"queued_ms", began.Sub(job.SubmittedAt).Milliseconds(),
				"elapsed_ms", time.Since(began).Milliseconds(),
			)
		}
	}
}

// Enqueue adds a job without blocking. Returns ErrQueueFull when the
// buffer is exhausted; callers decide whether to drop or retry.
func (q *Queue) Enqueue(_ context.Context, job Job) error {
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now()
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting jobs and waits for the worker to drain what is
// queued, up to the context deadline.
func (q *Queue) Shutdown(ctx context.Context) {
	q.stopOnce.Do(func() {
		close(q.jobs)
	})
	select {
	case <-q.done:
	case <-ctx.Done():
		q.logger.Warn("queue shutdown timed out", "remaining", len(q.jobs))
	}
}
