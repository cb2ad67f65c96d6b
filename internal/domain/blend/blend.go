// Package blend computes multi-user group rankings: one averaged-similarity
// top list plus per-genre buckets.
package blend

import (
	"sort"

	"github.com/cinesync/cinesync/internal/domain/model"
	"github.com/cinesync/cinesync/internal/domain/similarity"
	"github.com/cinesync/cinesync/internal/domain/vector"
)

// Default sizing constants.
const (
	defaultTopSize    = 10
	defaultBucketSize = 20
)

// Entry is one blend-ranked movie.
type Entry struct {
	Movie model.Movie `json:"movie"`
	Score float64     `json:"score"`
}

// Result holds the overall top list and the per-genre buckets.
type Result struct {
	Top     []Entry         `json:"top"`
	ByGenre map[int][]Entry `json:"by_genre"`
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTopSize sets the size of the overall top list.
func WithTopSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topSize = n
		}
	}
}

// WithBucketSize caps each genre bucket.
func WithBucketSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.bucketSize = n
		}
	}
}

// Engine blends several users' preference vectors into one ranking.
// Stateless across calls; safe for concurrent use.
type Engine struct {
	topSize    int
	bucketSize int
}

// New creates a blend engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		topSize:    defaultTopSize,
		bucketSize: defaultBucketSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rank scores every candidate by the arithmetic mean of its cosine
// similarity to each contributing user. Only vectors whose dimension matches
// the candidate's vibe contribute; a candidate with no contributing user
// scores 0. Ties keep candidate-fetch order.
func (e *Engine) Rank(prefs [][]float64, candidates []model.Candidate) Result {
	entries := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, Entry{
			Movie: c.Movie,
			Score: blendScore(prefs, c.Vibe),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	n := e.topSize
	if n > len(entries) {
		n = len(entries)
	}
	top := make([]Entry, n)
	copy(top, entries[:n])

	// Bucket by genre in blend-score order. A movie lands in every genre it
	// belongs to.
	byGenre := make(map[int][]Entry)
	for _, entry := range entries {
		for _, genreID := range entry.Movie.GenreIDs {
			bucket := byGenre[genreID]
			if len(bucket) >= e.bucketSize {
				continue
			}
			byGenre[genreID] = append(bucket, entry)
		}
	}

	return Result{Top: top, ByGenre: byGenre}
}

func blendScore(prefs [][]float64, vibe []float64) float64 {
	if len(vibe) == 0 {
		return 0
	}
	var sum float64
	contributors := 0
	for _, p := range prefs {
		if len(p) != len(vibe) {
			continue
		}
		sum += similarity.Cosine(p, vibe)
		contributors++
	}
	if contributors == 0 {
		return 0
	}
	return sum / float64(contributors)
}

// PrefSlices converts stored preference vectors to the raw slices Rank
// consumes.
func PrefSlices(vectors []vector.Vector) [][]float64 {
	out := make([][]float64, len(vectors))
	for i, v := range vectors {
		out[i] = v.Slice()
	}
	return out
}
