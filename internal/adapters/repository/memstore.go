package repository

import (
	"context"
	"sync"
	"time"

	"github.com/cinesync/cinesync/internal/domain/model"
	"github.com/cinesync/cinesync/internal/domain/vector"
	"github.com/cinesync/cinesync/pkg/metrics"
)

// Default store configuration constants.
const defaultShardCount = 8

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithShardCount sets the number of movie shards.
func WithShardCount(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.shardCount = n
		}
	}
}

// movieRecord couples metadata with the vibe vector computed from it.
type movieRecord struct {
	movie model.Movie
	vibe  []float64
}

// movieShard holds a slice of the movie keyspace under its own lock.
type movieShard struct {
	mu      sync.RWMutex
	records map[int64]movieRecord
}

// userRecord guards one user's preference vector. The per-record mutex is
// what serializes read-modify-write preference updates for that user.
type userRecord struct {
	mu  sync.Mutex
	vec vector.Vector
	has bool
}

// MemStore is a sharded in-memory Store implementation.
//
// Movies shard by id to spread write contention from the ingestion workers.
// Insertion order is tracked separately because Candidates must return pairs
// in the order movies were first ingested.
type MemStore struct {
	shardCount int
	shards     []*movieShard

	orderMu sync.RWMutex
	order   []int64 // movie ids in first-insertion order

	usersMu sync.RWMutex
	users   map[string]*userRecord
}

// NewMemStore creates an in-memory store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		shardCount: defaultShardCount,
		users:      make(map[string]*userRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.shards = make([]*movieShard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &movieShard{records: make(map[int64]movieRecord)}
	}
	return s
}

func (s *MemStore) shardFor(id int64) *movieShard {
	idx := int(uint64(id) % uint64(s.shardCount))
	return s.shards[idx]
}

// UpsertMovie stores or overwrites a movie and its vibe vector.
func (s *MemStore) UpsertMovie(_ context.Context, m model.Movie, vibe []float64) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	stored := make([]float64, len(vibe))
	copy(stored, vibe)

	shard := s.shardFor(m.ID)
	shard.mu.Lock()
	_, existed := shard.records[m.ID]
	shard.records[m.ID] = movieRecord{movie: m, vibe: stored}
	shard.mu.Unlock()

	if !existed {
		s.orderMu.Lock()
		s.order = append(s.order, m.ID)
		metrics.UpdateTotalMovies(len(s.order))
		s.orderMu.Unlock()
	}
	return nil
}

// Movie returns the stored metadata for id.
func (s *MemStore) Movie(_ context.Context, id int64) (model.Movie, error) {
	shard := s.shardFor(id)
	shard.mu.RLock()
	rec, ok := shard.records[id]
	shard.mu.RUnlock()
	if !ok {
		return model.Movie{}, ErrNotFound
	}
	return rec.movie, nil
}

// Vibe returns a copy of the stored vibe vector for a movie id.
func (s *MemStore) Vibe(_ context.Context, id int64) ([]float64, error) {
	shard := s.shardFor(id)
	shard.mu.RLock()
	rec, ok := shard.records[id]
	shard.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]float64, len(rec.vibe))
	copy(out, rec.vibe)
	return out, nil
}

// Candidates returns up to n (movie, vibe) pairs in first-insertion order.
func (s *MemStore) Candidates(_ context.Context, n int) ([]model.Candidate, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.orderMu.RLock()
	ids := make([]int64, len(s.order))
	copy(ids, s.order)
	s.orderMu.RUnlock()

	if n > 0 && n < len(ids) {
		ids = ids[:n]
	}

	out := make([]model.Candidate, 0, len(ids))
	for _, id := range ids {
		shard := s.shardFor(id)
		shard.mu.RLock()
		rec, ok := shard.records[id]
		shard.mu.RUnlock()
		if !ok {
			continue
		}
		vibe := make([]float64, len(rec.vibe))
		copy(vibe, rec.vibe)
		out = append(out, model.Candidate{Movie: rec.movie, Vibe: vibe})
	}
	return out, nil
}

// PutPreference stores the vector verbatim, replacing any previous one.
func (s *MemStore) PutPreference(_ context.Context, userID string, v vector.Vector) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	rec := s.userFor(userID)
	rec.mu.Lock()
	rec.vec = v
	rec.has = true
	rec.mu.Unlock()
	return nil
}

// Preference returns the user's current vector, or ErrNotFound.
func (s *MemStore) Preference(_ context.Context, userID string) (vector.Vector, error) {
	s.usersMu.RLock()
	rec, ok := s.users[userID]
	s.usersMu.RUnlock()
	if !ok {
		return vector.Vector{}, ErrNotFound
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if !rec.has {
		return vector.Vector{}, ErrNotFound
	}
	return rec.vec, nil
}

// UpdatePreference applies the closure under the user's lock.
func (s *MemStore) UpdatePreference(_ context.Context, userID string, apply func(old *vector.Vector) (vector.Vector, error)) (vector.Vector, error) {
	rec := s.userFor(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	var old *vector.Vector
	if rec.has {
		prev := rec.vec
		old = &prev
	}
	next, err := apply(old)
	if err != nil {
		return vector.Vector{}, err
	}
	rec.vec = next
	rec.has = true
	return next, nil
}

// userFor returns the record for userID, creating it on first touch.
func (s *MemStore) userFor(userID string) *userRecord {
	s.usersMu.RLock()
	rec, ok := s.users[userID]
	s.usersMu.RUnlock()
	if ok {
		return rec
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	if rec, ok = s.users[userID]; ok {
		return rec
	}
	rec = &userRecord{}
	s.users[userID] = rec
	metrics.UpdateTotalUsers(len(s.users))
	return rec
}

// MovieCount returns the number of ingested movies.
func (s *MemStore) MovieCount(_ context.Context) int {
	s.orderMu.RLock()
	defer s.orderMu.RUnlock()
	return len(s.order)
}

// UserCount returns the number of users with a stored vector.
func (s *MemStore) UserCount(_ context.Context) int {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	n := 0
	for _, rec := range s.users {
		rec.mu.Lock()
		if rec.has {
			n++
		}
		rec.mu.Unlock()
	}
	return n
}
