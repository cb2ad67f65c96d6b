// Package vibe converts raw movie metadata into fixed-dimension vibe vectors.
//
// Extraction is a pure, total function: missing or malformed metadata fields
// contribute 0.0 to their axis instead of failing, so a partial record from
// the provider still yields a usable vector.
package vibe

import (
	"math"
	"strings"

	"github.com/cinesync/cinesync/internal/domain/model"
	"github.com/cinesync/cinesync/internal/domain/vector"
)

// Convex-combination weights per axis. Fixed by design, never data-dependent.
const (
	popularityWeight = 0.6
	voteLogWeight    = 0.4
	keywordWeight    = 0.5
	genreWeight      = 0.5
	paceGenreWeight  = 0.6
	paceRunWeight    = 0.4
	outlookKWWeight  = 0.6
	outlookGenWeight = 0.4
)

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithTables overrides the default heuristic tables. Callers supplying their
// own tables own the schema-version bookkeeping that comes with them.
func WithTables(t Tables) Option {
	return func(e *Extractor) {
		e.tables = t
	}
}

// Extractor computes vibe vectors from movie metadata.
type Extractor struct {
	tables Tables
}

// New creates an extractor with the default tables unless overridden.
func New(opts ...Option) *Extractor {
	e := &Extractor{tables: DefaultTables()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SchemaVersion reports the version of the tables in use. Vectors persisted
// under different versions are not comparable.
func (e *Extractor) SchemaVersion() int {
	return e.tables.Version
}

// Compute derives the 10-axis vibe vector for a movie. Deterministic: the
// same metadata always produces the same vector.
func (e *Extractor) Compute(m model.Movie) vector.Vector {
	t := e.tables
	overview := strings.ToLower(m.Overview)

	var v vector.Vector

	// Axis 0: mainstream(-1) .. arthouse(+1). High popularity and high vote
	// volume both pull toward mainstream.
	v[vector.AxisMainstream] = popularityWeight*(-normalize(m.Popularity, t.PopularityRange)) +
		voteLogWeight*(-normalize(math.Log10(float64(m.VoteCount)+1), t.VoteLogRange))

	// Axis 1: light(-1) .. dark(+1).
	v[vector.AxisTone] = keywordWeight*keywordScore(overview, t.DarkKeywords, t.LightKeywords) +
		genreWeight*genreScore(m.GenreIDs, t.DarkGenres, t.LightGenres)

	// Axis 2: fast-paced(-1) .. slow-burn(+1). Longer runtimes read as slower;
	// an unknown runtime contributes nothing.
	pace := paceGenreWeight * genreScore(m.GenreIDs, t.SlowGenres, t.FastGenres)
	if m.Runtime > 0 {
		pace += paceRunWeight * normalize(float64(m.Runtime), t.RuntimePaceRange)
	}
	v[vector.AxisPace] = pace

	// Axis 3: plot-driven(-1) .. character-driven(+1).
	v[vector.AxisDrive] = keywordWeight*keywordScore(overview, t.CharacterKeywords, t.PlotKeywords) +
		genreWeight*genreScore(m.GenreIDs, t.CharacterGenres, t.PlotGenres)

	// Axis 4: action(-1) .. dialogue(+1).
	v[vector.AxisDialogue] = genreScore(m.GenreIDs, t.DialogueGenres, t.ActionGenres)

	// Axis 5: old(-1) .. new(+1). Unparseable dates stay neutral.
	if year, ok := m.ReleaseYear(); ok {
		v[vector.AxisEra] = normalize(float64(year), t.ReleaseYearRange)
	}

	// Axis 6: realistic(-1) .. fantastical(+1).
	v[vector.AxisFantastical] = genreScore(m.GenreIDs, t.FantasticalGenres, t.RealisticGenres)

	// Axis 7: optimistic scores positive. The axis label lists bleak first,
	// but the stored convention has always been optimistic-positive; changing
	// it would invalidate every persisted vector.
	v[vector.AxisOutlook] = outlookKWWeight*keywordScore(overview, t.OptimisticKeywords, t.BleakKeywords) +
		outlookGenWeight*genreScore(m.GenreIDs, t.OptimisticGenres, t.BleakGenres)

	// Axis 8: short(-1) .. epic(+1).
	if m.Runtime > 0 {
		v[vector.AxisLength] = normalize(float64(m.Runtime), t.RuntimeEpicRange)
	}

	// Axis 9 is derived, not an independent signal: the mean of the comfort
	// qualities (mainstream, light, fast, optimistic, short). Like axis 7 it
	// stores the opposite of the label's pole order: high values mean comfy.
	v[vector.AxisChallenge] = vector.Clamp((-v[vector.AxisMainstream] +
		-v[vector.AxisTone] +
		-v[vector.AxisPace] +
		v[vector.AxisOutlook] +
		-v[vector.AxisLength]) / 5)

	return v.Clamped()
}

// normalize maps value linearly from [r.Min, r.Max] onto [-1, 1], clamping
// out-of-range inputs first. A degenerate range yields 0.
func normalize(value float64, r Range) float64 {
	if r.Max <= r.Min {
		return 0
	}
	if value < r.Min {
		value = r.Min
	}
	if value > r.Max {
		value = r.Max
	}
	return 2*(value-r.Min)/(r.Max-r.Min) - 1
}

// keywordScore counts substring occurrences of the positive- and
// negative-pole keyword lists in the lower-cased synopsis and returns
// (pos-neg)/(pos+neg), or 0 when neither list hits.
func keywordScore(overview string, positive, negative []string) float64 {
	if overview == "" {
		return 0
	}
	pos := countHits(overview, positive)
	neg := countHits(overview, negative)
	if pos+neg == 0 {
		return 0
	}
	return vector.Clamp(float64(pos-neg) / float64(pos+neg))
}

func countHits(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += strings.Count(text, kw)
	}
	return total
}

// genreScore intersects the movie's genre ids with the positive- and
// negative-pole sets and returns (pos-neg)/(pos+neg), or 0 without hits.
func genreScore(ids []int, positive, negative GenreSet) float64 {
	pos, neg := 0, 0
	for _, id := range ids {
		if _, ok := positive[id]; ok {
			pos++
		}
		if _, ok := negative[id]; ok {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0
	}
	return vector.Clamp(float64(pos-neg) / float64(pos+neg))
}
