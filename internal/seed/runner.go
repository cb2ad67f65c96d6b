package seed

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cinesync/cinesync/pkg/logger"
)

// Timing constants.
const (
	ingestPollInterval = 250 * time.Millisecond
	ingestWaitBudget   = 2 * time.Minute
)

// Run executes the full seed sequence: ingest a catalog, register users via
// quiz, send rating feedback, then fetch every user's home feed.
func Run(ctx context.Context, cfg *Config) error {
	start := time.Now()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	client := newHTTPClient(cfg.Timeout)
	stats := &Stats{}

	logger.Get().Info(ctx, "starting cinesync seed run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("movies", cfg.NumMovies),
		logger.Int("users", cfg.NumUsers),
		logger.Int("feedbacksPerUser", cfg.Feedbacks),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()))

	movies := generateMovies(rng, cfg.NumMovies)
	if err := submitMovies(ctx, client, cfg, movies, stats); err != nil {
		return err
	}

	if err := waitForIngest(ctx, client, cfg, stats.MoviesAccepted); err != nil {
		return err
	}

	users := generateUsers(rng, cfg.NumUsers)
	if err := submitQuizzes(ctx, client, cfg, users, stats); err != nil {
		return err
	}

	feedback := generateFeedback(rng, users, cfg.NumMovies, cfg.Feedbacks)
	submitFeedback(ctx, client, cfg, feedback, stats)

	verifyFeeds(ctx, client, cfg, users, stats)

	stats.Duration = time.Since(start)
	report(ctx, stats)
	return nil
}

// submitMovies pushes catalog entries concurrently through a worker pool.
func submitMovies(ctx context.Context, client *httpClient, cfg *Config, movies []movieRequest, stats *Stats) error {
	var accepted, duplicate, failed int64
	url := cfg.BaseURL + "/movies"

	jobs := make(chan movieRequest, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				status, _, err := client.postJSON(ctx, url, m)
				switch {
				case err != nil:
					atomic.AddInt64(&failed, 1)
				case status == http.StatusAccepted:
					atomic.AddInt64(&accepted, 1)
				case status == http.StatusOK:
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, m := range movies {
			select {
			case <-ctx.Done():
				return
			case jobs <- m:
			}
		}
	}()

	wg.Wait()

	stats.MoviesSubmitted = len(movies)
	stats.MoviesAccepted = int(atomic.LoadInt64(&accepted))
	stats.MoviesDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.MoviesFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "movies submitted",
		logger.Int("submitted", stats.MoviesSubmitted),
		logger.Int("accepted", stats.MoviesAccepted),
		logger.Int("duplicate", stats.MoviesDuplicate),
		logger.Int("failed", stats.MoviesFailed))

	if stats.MoviesAccepted == 0 {
		return fmt.Errorf("no movies were accepted; is the service reachable at %s?", cfg.BaseURL)
	}
	return nil
}

// waitForIngest polls /stats until the async pipeline has processed the
// accepted movies or the wait budget runs out.
func waitForIngest(ctx context.Context, client *httpClient, cfg *Config, want int) error {
	deadline := time.Now().Add(ingestWaitBudget)
	url := cfg.BaseURL + "/stats"

	for {
		var payload struct {
			TotalMovies int `json:"totalMovies"`
		}
		if _, err := client.getJSON(ctx, url, &payload); err == nil && payload.TotalMovies >= want {
			logger.Get().Info(ctx, "ingest complete", logger.Int("moviesStored", payload.TotalMovies))
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("ingest did not finish within %s", ingestWaitBudget)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ingestPollInterval):
		}
	}
}

func submitQuizzes(ctx context.Context, client *httpClient, cfg *Config, users []userSeed, stats *Stats) error {
	url := cfg.BaseURL + "/quiz"
	for _, u := range users {
		body := map[string]any{"user_id": u.ID, "vector": u.Quiz}
		status, _, err := client.postJSON(ctx, url, body)
		if err != nil || status != http.StatusOK {
			return fmt.Errorf("quiz submission failed for user %s (status %d): %w", u.ID, status, err)
		}
		stats.QuizzesSubmitted++
	}
	logger.Get().Info(ctx, "quizzes submitted", logger.Int("count", stats.QuizzesSubmitted))
	return nil
}

func submitFeedback(ctx context.Context, client *httpClient, cfg *Config, events []feedbackRequest, stats *Stats) {
	url := cfg.BaseURL + "/feedback"
	for _, ev := range events {
		status, _, err := client.postJSON(ctx, url, ev)
		if err != nil || status != http.StatusOK {
			stats.FeedbacksFailed++
			if cfg.Verbose {
				logger.Get().Warn(ctx, "feedback submission failed",
					logger.String("userID", ev.UserID),
					logger.Int64("movieID", ev.MovieID),
					logger.Int("status", status),
					logger.Error(err))
			}
			continue
		}
		stats.FeedbacksSent++
	}
	logger.Get().Info(ctx, "feedback sent",
		logger.Int("sent", stats.FeedbacksSent),
		logger.Int("failed", stats.FeedbacksFailed))
}

// verifyFeeds fetches every user's home feed and checks sections come back.
func verifyFeeds(ctx context.Context, client *httpClient, cfg *Config, users []userSeed, stats *Stats) {
	for _, u := range users {
		var payload struct {
			UserID   string `json:"user_id"`
			Sections []struct {
				Key    string           `json:"key"`
				Title  string           `json:"title"`
				Movies []map[string]any `json:"movies"`
			} `json:"sections"`
		}
		status, err := client.getJSON(ctx, cfg.BaseURL+"/feed/"+u.ID, &payload)
		if err != nil || status != http.StatusOK {
			if cfg.Verbose {
				logger.Get().Warn(ctx, "feed fetch failed",
					logger.String("userID", u.ID),
					logger.Int("status", status),
					logger.Error(err))
			}
			continue
		}
		stats.FeedsFetched++
		if len(payload.Sections) == 0 {
			stats.FeedsEmpty++
		} else if cfg.Verbose {
			logger.Get().Debug(ctx, "feed verified",
				logger.String("userID", u.ID),
				logger.Int("sections", len(payload.Sections)),
				logger.String("firstSection", payload.Sections[0].Key))
		}
	}
	logger.Get().Info(ctx, "feeds fetched",
		logger.Int("fetched", stats.FeedsFetched),
		logger.Int("empty", stats.FeedsEmpty))
}

// report logs the final run statistics.
func report(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "seed run completed",
		logger.String("duration", stats.Duration.Round(time.Millisecond).String()),
		logger.Int("moviesAccepted", stats.MoviesAccepted),
		logger.Int("moviesDuplicate", stats.MoviesDuplicate),
		logger.Int("moviesFailed", stats.MoviesFailed),
		logger.Int("quizzesSubmitted", stats.QuizzesSubmitted),
		logger.Int("feedbacksSent", stats.FeedbacksSent),
		logger.Int("feedbacksFailed", stats.FeedbacksFailed),
		logger.Int("feedsFetched", stats.FeedsFetched),
		logger.Int("feedsEmpty", stats.FeedsEmpty))
}
