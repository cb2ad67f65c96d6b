// Package ranking builds the differently-biased home-feed sections from a
// user's preference vector and a candidate pool.
//
// Every section is best-effort: candidates with an incompatible vibe
// dimension are dropped before scoring, hard filters fall back to the full
// pool when they match nothing, and ties keep the candidate-fetch order
// (stable sort) so results are deterministic for a given pool.
package ranking

import (
	"sort"
	"time"

	"github.com/cinesync/cinesync/internal/domain/model"
	"github.com/cinesync/cinesync/internal/domain/similarity"
	"github.com/cinesync/cinesync/internal/domain/vector"
)

// Default engine configuration constants.
const (
	defaultSectionSize = 20

	// Trend-adjusted score blends taste with provider popularity.
	trendSimWeight = 0.7
	trendPopWeight = 0.3

	// Comfort section leans on the comfort axis over raw taste.
	comfortAxisWeight = 0.6
	comfortSimWeight  = 0.4

	// Dark-and-moody section scores tone up and optimism down.
	moodToneWeight    = 0.6
	moodOutlookWeight = 0.4

	popularityMin = 0
	popularityMax = 150

	recentWindowYears = 2
	classicsFloorYear = 1990
	classicsAgeYears  = 5
	classicsMinVotes  = 500
)

// Section keys in feed order.
const (
	SectionForYou    = "for_you"
	SectionTrending  = "trending_for_you"
	SectionNew       = "new_releases"
	SectionClassics  = "vetted_classics"
	SectionComfort   = "comfort_picks"
	SectionDarkMoody = "dark_and_moody"
)

var sectionTitles = map[string]string{
	SectionForYou:    "For You",
	SectionTrending:  "Trending For You",
	SectionNew:       "New Releases",
	SectionClassics:  "Vetted Classics",
	SectionComfort:   "Comfort Picks",
	SectionDarkMoody: "Dark and Moody",
}

// ScoredMovie is one ranked entry inside a section.
type ScoredMovie struct {
	Movie      model.Movie `json:"movie"`
	Similarity float64     `json:"similarity"`
	Score      float64     `json:"score"`
}

// Section is one independently ranked slice of the feed. Sections are not
// partitions; the same movie may appear in several of them.
type Section struct {
	Key    string        `json:"key"`
	Title  string        `json:"title"`
	Movies []ScoredMovie `json:"movies"`
}

// Feed is the ordered list of sections returned to the caller.
type Feed struct {
	Sections []Section `json:"sections"`
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSectionSize caps how many movies each section returns.
func WithSectionSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.sectionSize = n
		}
	}
}

// WithNow overrides the clock used for recency and classics windows.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine ranks candidate pools against preference vectors. Stateless across
// calls; safe for concurrent use.
type Engine struct {
	sectionSize int
	now         func() time.Time
}

// New creates a ranking engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		sectionSize: defaultSectionSize,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// scored carries the per-candidate signals every section ranks over.
type scored struct {
	movie      model.Movie
	similarity float64
	comfort    float64 // axis 9 value
	tone       float64 // axis 1 value
	outlook    float64 // axis 7 value
	year       int
	hasYear    bool
}

// BuildHomeFeed produces the six feed sections for one user. An empty
// candidate pool yields an empty feed, never an error.
func (e *Engine) BuildHomeFeed(pref vector.Vector, candidates []model.Candidate) Feed {
	prefSlice := pref[:]

	pool := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Vibe) != vector.Dim {
			// Stale or foreign-schema vector; skip rather than fail.
			continue
		}
		s := scored{
			movie:      c.Movie,
			similarity: similarity.Cosine(prefSlice, c.Vibe),
			comfort:    c.Vibe[vector.AxisChallenge],
			tone:       c.Vibe[vector.AxisTone],
			outlook:    c.Vibe[vector.AxisOutlook],
		}
		s.year, s.hasYear = c.Movie.ReleaseYear()
		pool = append(pool, s)
	}
	if len(pool) == 0 {
		return Feed{}
	}

	currentYear := e.now().Year()

	forYou := e.section(SectionForYou, pool, func(s scored) float64 {
		return s.similarity
	})

	trendScore := func(s scored) float64 {
		return trendSimWeight*s.similarity +
			trendPopWeight*normalizePopularity(s.movie.Popularity)
	}
	trending := e.section(SectionTrending, pool, trendScore)

	recent := filterWithFallback(pool, func(s scored) bool {
		return s.hasYear && s.year >= currentYear-recentWindowYears
	})
	newReleases := e.section(SectionNew, recent, trendScore)

	classics := filterWithFallback(pool, func(s scored) bool {
		return s.hasYear &&
			s.year >= classicsFloorYear &&
			s.year <= currentYear-classicsAgeYears &&
			s.movie.VoteCount >= classicsMinVotes
	})
	vetted := e.section(SectionClassics, classics, func(s scored) float64 {
		return s.similarity
	})

	comfort := e.section(SectionComfort, pool, func(s scored) float64 {
		return comfortAxisWeight*s.comfort + comfortSimWeight*s.similarity
	})

	moody := e.section(SectionDarkMoody, pool, func(s scored) float64 {
		return moodToneWeight*s.tone - moodOutlookWeight*s.outlook
	})
	if len(moody.Movies) == 0 {
		moody.Movies = forYou.Movies
	}

	return Feed{Sections: []Section{forYou, trending, newReleases, vetted, comfort, moody}}
}

// section ranks the pool by score and returns the top entries in a named
// section. Sorting is stable so equal scores keep candidate-fetch order.
func (e *Engine) section(key string, pool []scored, score func(scored) float64) Section {
	type rankedEntry struct {
		scored
		score float64
	}
	rankedPool := make([]rankedEntry, len(pool))
	for i, s := range pool {
		rankedPool[i] = rankedEntry{scored: s, score: score(s)}
	}
	sort.SliceStable(rankedPool, func(i, j int) bool {
		return rankedPool[i].score > rankedPool[j].score
	})

	n := e.sectionSize
	if n > len(rankedPool) {
		n = len(rankedPool)
	}
	movies := make([]ScoredMovie, n)
	for i := 0; i < n; i++ {
		movies[i] = ScoredMovie{
			Movie:      rankedPool[i].movie,
			Similarity: rankedPool[i].similarity,
			Score:      rankedPool[i].score,
		}
	}
	return Section{Key: key, Title: sectionTitles[key], Movies: movies}
}

// filterWithFallback applies a hard filter but falls back to the full pool
// when nothing survives, so restricted sections never come back empty while
// candidates exist.
func filterWithFallback(pool []scored, keep func(scored) bool) []scored {
	out := make([]scored, 0, len(pool))
	for _, s := range pool {
		if keep(s) {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return pool
	}
	return out
}

func normalizePopularity(p float64) float64 {
	if p < popularityMin {
		p = popularityMin
	}
	if p > popularityMax {
		p = popularityMax
	}
	return 2*(p-popularityMin)/(popularityMax-popularityMin) - 1
}
