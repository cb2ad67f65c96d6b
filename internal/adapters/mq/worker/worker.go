// Package worker runs the asynchronous ingestion pipeline: dequeue raw movie
// metadata, enrich it when possible, compute the vibe vector, and upsert the
// record.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/cinesync/cinesync/internal/adapters/mq/queue"
	"github.com/cinesync/cinesync/internal/domain/model"
	"github.com/cinesync/cinesync/internal/domain/vector"
	"github.com/cinesync/cinesync/pkg/logger"
	"github.com/cinesync/cinesync/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	poolShutdownTimeout     = 30 * time.Second
)

// Extractor computes a vibe vector from movie metadata.
type Extractor interface {
	Compute(m model.Movie) vector.Vector
}

// Upserter persists a movie together with its computed vibe vector.
type Upserter interface {
	UpsertMovie(ctx context.Context, m model.Movie, vibe []float64) error
}

// Enricher fills in metadata the submission lacked. Enrichment failures are
// soft: the movie is processed with what it has.
type Enricher interface {
	Runtime(ctx context.Context, id int64) (int, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithName sets the worker name for logging.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithEnricher attaches a metadata enricher. Without one, missing fields
// simply stay missing.
func WithEnricher(e Enricher) Option {
	return func(w *Worker) {
		w.enricher = e
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}

// Worker processes ingestion jobs until stopped.
type Worker struct {
	queue     Queue
	extractor Extractor
	upserter  Upserter
	enricher  Enricher
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a worker with configuration options.
func NewWorker(q Queue, extractor Extractor, upserter Upserter, opts ...Option) *Worker {
	w := &Worker{
		queue:     q,
		extractor: extractor,
		upserter:  upserter,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the worker loop until ctx is canceled, the queue closes, or
// Shutdown is called.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.logger.Error(ctx, "ingestion failed",
					logger.Int64("movieID", job.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker, waiting for the in-flight job.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process handles a single movie: enrich, extract, upsert.
func (w *Worker) process(ctx context.Context, m model.Movie) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerLatency(float64(time.Since(start).Milliseconds()))
	}()

	if w.enricher != nil && m.Runtime == 0 {
		if runtimeMin, err := w.enricher.Runtime(ctx, m.ID); err == nil && runtimeMin > 0 {
			m.Runtime = runtimeMin
		} else if err != nil {
			// Soft signal: extraction degrades the missing runtime to a
			// neutral contribution.
			w.logger.Debug(ctx, "runtime enrichment failed",
				logger.Int64("movieID", m.ID),
				logger.Error(err),
			)
		}
	}

	extractStart := time.Now()
	vibe := w.extractor.Compute(m)
	metrics.RecordVibeComputed(float64(time.Since(extractStart).Milliseconds()))

	if err := w.upserter.UpsertMovie(ctx, m, vibe.Slice()); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "store_error")
		return fmt.Errorf("upsert movie %d: %w", m.ID, err)
	}

	metrics.RecordMovieIngested()
	return nil
}

// Pool manages a fixed set of workers over one queue.
type Pool struct {
	workers []*Worker
	logger  logger.Logger
}

// NewPool creates and sizes a worker pool. A non-positive count falls back
// to a CPU-derived default.
func NewPool(workerCount int, q Queue, extractor Extractor, upserter Upserter, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewWorker(q, extractor, upserter, workerOpts...)
	}
	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Stop shuts the pool down, bounded by poolShutdownTimeout.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), poolShutdownTimeout)
	defer cancel()
	for _, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker shutdown error",
				logger.String("worker", w.name),
				logger.Error(err),
			)
		}
	}
	metrics.UpdateWorkerCount(0)
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}
