// Package model contains domain models passed between layers.
package model

import (
	"strconv"
	"time"
)

// Movie represents one metadata record from the ingestion collaborator.
// Fields mirror the TMDB discover/detail payloads; everything except ID is
// optional and the feature extractor degrades missing fields to a neutral
// contribution.
type Movie struct {
	ID          int64 // external metadata-provider identifier
	Title       string
	Overview    string  // free-text synopsis
	GenreIDs    []int   // provider genre taxonomy ids
	ReleaseDate string  // "2006-01-02"; may be empty or malformed
	Popularity  float64 // non-negative provider popularity score
	VoteAverage float64
	VoteCount   int64
	Runtime     int // minutes; 0 means unknown
}

// ReleaseYear parses the year out of ReleaseDate. It reports false when the
// date is absent or unparseable; callers treat that as a soft missing signal.
func (m Movie) ReleaseYear() (int, bool) {
	if len(m.ReleaseDate) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil || y <= 0 {
		return 0, false
	}
	return y, true
}

// Candidate pairs a movie with its stored vibe vector for ranking. Vibe is a
// raw slice rather than a vector.Vector because stored vectors may predate
// the current schema; rankers exclude rather than error on a bad dimension.
type Candidate struct {
	Movie Movie
	Vibe  []float64
}

// Reaction is the implicit-feedback reaction a user records after watching.
type Reaction string

// Recognized reactions.
const (
	ReactionLike    Reaction = "like"
	ReactionMeh     Reaction = "meh"
	ReactionDislike Reaction = "dislike"
)

// Valid reports whether the reaction is one of the recognized values.
func (r Reaction) Valid() bool {
	switch r {
	case ReactionLike, ReactionMeh, ReactionDislike:
		return true
	}
	return false
}

// FeedbackEvent records a single watch-and-react feedback submission.
type FeedbackEvent struct {
	EventID  string // unique id for idempotency
	UserID   string
	MovieID  int64
	Rating   int // 1..5
	Reaction Reaction
	TS       time.Time
}
