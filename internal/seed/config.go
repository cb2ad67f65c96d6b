// Package seed generates synthetic catalog and feedback traffic against a
// running CineSync instance, then verifies that personalized feeds come back.
package seed

import "time"

// Config holds the seed run parameters.
type Config struct {
	BaseURL   string
	NumMovies int
	NumUsers  int
	Feedbacks int // feedback events per user
	Workers   int
	Timeout   time.Duration
	Verbose   bool
}

// Stats collects counters for the final report.
type Stats struct {
	MoviesSubmitted  int
	MoviesAccepted   int
	MoviesDuplicate  int
	MoviesFailed     int
	QuizzesSubmitted int
	FeedbacksSent    int
	FeedbacksFailed  int
	FeedsFetched     int
	FeedsEmpty       int
	Duration         time.Duration
}
