package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/cinesync/cinesync/internal/seed"
	"github.com/cinesync/cinesync/pkg/logger"
)

// Default seed parameters.
const (
	defaultNumMovies = 500
	defaultNumUsers  = 20
	defaultFeedbacks = 10
	defaultWorkers   = 2 // multiplier for runtime.NumCPU()
	defaultTimeout   = 30 * time.Second
	defaultRunBudget = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8080", "Base URL of the service")
		numMovies = flag.Int("movies", defaultNumMovies, "Number of movies to generate and ingest")
		numUsers  = flag.Int("users", defaultNumUsers, "Number of users to register via quiz")
		feedbacks = flag.Int("feedbacks", defaultFeedbacks, "Number of feedback events per user")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(false); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunBudget)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:   *baseURL,
		NumMovies: *numMovies,
		NumUsers:  *numUsers,
		Feedbacks: *feedbacks,
		Workers:   *workers,
		Timeout:   *timeout,
		Verbose:   *verbose,
	}

	if err := seed.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "seed run failed", logger.Error(err))
		os.Exit(1)
	}
}
