// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	ingestqueue "github.com/cinesync/cinesync/internal/adapters/mq/queue"
	workerpool "github.com/cinesync/cinesync/internal/adapters/mq/worker"
	"github.com/cinesync/cinesync/internal/adapters/repository"
	"github.com/cinesync/cinesync/internal/domain/blend"
	"github.com/cinesync/cinesync/internal/domain/dedupe"
	"github.com/cinesync/cinesync/internal/domain/model"
	"github.com/cinesync/cinesync/internal/domain/preference"
	"github.com/cinesync/cinesync/internal/domain/ranking"
	"github.com/cinesync/cinesync/internal/domain/vector"
	"github.com/cinesync/cinesync/internal/domain/vibe"
	"github.com/cinesync/cinesync/pkg/logger"
	"github.com/cinesync/cinesync/pkg/metrics"
)

// Service wires the record store, ingestion pipeline, and recommendation
// engines behind the operations the API exposes.
type Service struct {
	mu sync.RWMutex

	// Core components, built on Start.
	store     repository.Store
	deduper   dedupe.Deduper
	queue     ingestqueue.Queue
	extractor *vibe.Extractor
	pool      *workerpool.Pool
	ranker    *ranking.Engine
	blender   *blend.Engine
	enricher  workerpool.Enricher

	// Configuration.
	workerCount     int
	queueSize       int
	dedupeSize      int
	shardCount      int
	sectionSize     int
	maxCandidates   int
	blendTopSize    int
	blendBucketSize int

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingestion workers.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithQueueSize bounds the ingestion queue.
func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithDedupeSize sets the size of the ingestion idempotency cache.
func WithDedupeSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.dedupeSize = n
		}
	}
}

// WithShardCount sets the record-store shard count.
func WithShardCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.shardCount = n
		}
	}
}

// WithSectionSize caps each home-feed section.
func WithSectionSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sectionSize = n
		}
	}
}

// WithMaxCandidates bounds the candidate pool per ranking request.
func WithMaxCandidates(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxCandidates = n
		}
	}
}

// WithBlendSizes sets the blend top-list and genre-bucket caps.
func WithBlendSizes(top, bucket int) Option {
	return func(s *Service) {
		if top > 0 {
			s.blendTopSize = top
		}
		if bucket > 0 {
			s.blendBucketSize = bucket
		}
	}
}

// WithEnricher attaches the metadata-provider client used to fill missing
// runtimes during ingestion.
func WithEnricher(e workerpool.Enricher) Option {
	return func(s *Service) {
		s.enricher = e
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU() * 2,
		queueSize:       10_000,
		dedupeSize:      100_000,
		shardCount:      8,
		sectionSize:     20,
		maxCandidates:   2_000,
		blendTopSize:    10,
		blendBucketSize: 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommendation service...")

	s.store = repository.NewMemStore(repository.WithShardCount(s.shardCount))
	s.deduper = dedupe.New(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = ingestqueue.NewInMemoryQueue(ingestqueue.WithCapacity(s.queueSize))
	s.extractor = vibe.New()
	s.ranker = ranking.New(ranking.WithSectionSize(s.sectionSize))
	s.blender = blend.New(
		blend.WithTopSize(s.blendTopSize),
		blend.WithBucketSize(s.blendBucketSize),
	)

	var workerOpts []workerpool.Option
	if s.enricher != nil {
		workerOpts = append(workerOpts, workerpool.WithEnricher(s.enricher))
	}
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.extractor, s.store, workerOpts...)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("vibeSchema", s.extractor.SchemaVersion()),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping recommendation service...")

	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "recommendation service stopped")
}

// IngestMovie accepts one raw metadata record for asynchronous processing.
// Returns (accepted, duplicate): a duplicate submission is acknowledged but
// not re-queued; accepted=false means backpressure.
func (s *Service) IngestMovie(ctx context.Context, m model.Movie) (bool, bool) {
	if m.ID <= 0 {
		return false, false
	}
	key := fmt.Sprintf("movie:%d", m.ID)
	if s.deduper.SeenAndRecord(ctx, key) {
		metrics.RecordIngestDuplicate()
		return true, true
	}
	if !s.queue.Enqueue(ctx, m) {
		// Roll back the seen mark so a retry is not treated as a duplicate.
		s.deduper.Unrecord(ctx, key)
		return false, false
	}
	return true, false
}

// SaveQuiz validates and stores a user's explicit quiz vector verbatim.
func (s *Service) SaveQuiz(ctx context.Context, userID string, answers []float64) (vector.Vector, error) {
	v, err := preference.FromQuiz(answers)
	if err != nil {
		return vector.Vector{}, err
	}
	if err := s.store.PutPreference(ctx, userID, v); err != nil {
		return vector.Vector{}, fmt.Errorf("store quiz vector: %w", err)
	}
	metrics.RecordQuizSubmission()
	s.logger.Debug(ctx, "quiz vector stored", logger.String("userID", userID))
	return v, nil
}

// RecordFeedback applies one watch-and-react event to the user's preference
// vector under the per-user lock and returns the event plus the new vector.
func (s *Service) RecordFeedback(ctx context.Context, userID string, movieID int64, rating int, reaction model.Reaction) (model.FeedbackEvent, vector.Vector, error) {
	vibeVec, err := s.store.Vibe(ctx, movieID)
	if err != nil {
		return model.FeedbackEvent{}, vector.Vector{}, fmt.Errorf("movie %d: %w", movieID, err)
	}
	movieVibe, ok := vector.FromSlice(vibeVec)
	if !ok {
		// A stored vector from a different schema version cannot absorb
		// feedback; surface it rather than corrupting the user vector.
		return model.FeedbackEvent{}, vector.Vector{}, ErrVibeDimension
	}

	next, err := s.store.UpdatePreference(ctx, userID, func(old *vector.Vector) (vector.Vector, error) {
		return preference.Apply(old, movieVibe, rating, reaction)
	})
	if err != nil {
		return model.FeedbackEvent{}, vector.Vector{}, err
	}

	event := model.FeedbackEvent{
		EventID:  uuid.New().String(),
		UserID:   userID,
		MovieID:  movieID,
		Rating:   rating,
		Reaction: reaction,
		TS:       time.Now().UTC(),
	}
	metrics.RecordPreferenceUpdate()
	s.logger.Debug(ctx, "preference updated",
		logger.String("userID", userID),
		logger.Int64("movieID", movieID),
		logger.String("eventID", event.EventID),
	)
	return event, next, nil
}

// HomeFeed builds the six ranked sections for one user. A user without a
// preference vector is a precondition failure; an empty candidate pool is
// reported via Feed with no sections, which the API renders explicitly.
func (s *Service) HomeFeed(ctx context.Context, userID string) (ranking.Feed, error) {
	pref, err := s.store.Preference(ctx, userID)
	if err != nil {
		return ranking.Feed{}, fmt.Errorf("user %s: %w", userID, err)
	}
	candidates, err := s.store.Candidates(ctx, s.maxCandidates)
	if err != nil {
		return ranking.Feed{}, fmt.Errorf("fetch candidates: %w", err)
	}

	start := time.Now()
	feed := s.ranker.BuildHomeFeed(pref, candidates)
	metrics.RecordFeedBuild(float64(time.Since(start).Milliseconds()))
	return feed, nil
}

// Blend builds the group ranking for a set of users. Users without a stored
// vector contribute nothing; with no contributing users every candidate
// scores 0.
func (s *Service) Blend(ctx context.Context, userIDs []string) (blend.Result, error) {
	if len(userIDs) == 0 {
		return blend.Result{}, ErrEmptyBlend
	}

	prefs := make([]vector.Vector, 0, len(userIDs))
	for _, id := range userIDs {
		v, err := s.store.Preference(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return blend.Result{}, fmt.Errorf("user %s: %w", id, err)
		}
		prefs = append(prefs, v)
	}

	candidates, err := s.store.Candidates(ctx, s.maxCandidates)
	if err != nil {
		return blend.Result{}, fmt.Errorf("fetch candidates: %w", err)
	}

	result := s.blender.Rank(blend.PrefSlices(prefs), candidates)
	metrics.RecordBlendBuild()
	return result, nil
}

// MovieVibe returns the stored vibe vector for one movie.
func (s *Service) MovieVibe(ctx context.Context, movieID int64) ([]float64, error) {
	v, err := s.store.Vibe(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("movie %d: %w", movieID, err)
	}
	return v, nil
}

// VibeSchemaVersion reports the heuristic-table version in use.
func (s *Service) VibeSchemaVersion() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.extractor == nil {
		return 0
	}
	return s.extractor.SchemaVersion()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}
	if s.started {
		queueLen := s.queue.Len(ctx)
		movies := s.store.MovieCount(ctx)
		users := s.store.UserCount(ctx)

		stats["queueLength"] = queueLen
		stats["totalMovies"] = movies
		stats["totalUsers"] = users
		stats["vibeSchemaVersion"] = s.extractor.SchemaVersion()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalMovies(movies)
		metrics.UpdateTotalUsers(users)
	}
	return stats
}
