// Package tmdb implements a thin client for the metadata provider's
// discover and movie-detail endpoints.
//
// The client performs no retries; retry and backoff policy belongs to the
// caller. The recommendation core never talks to this package directly.
package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinesync/cinesync/internal/domain/model"
)

// Sort orders accepted by Discover, matching the provider's API values.
const (
	SortPopularity  = "popularity.desc"
	SortVoteCount   = "vote_count.desc"
	SortReleaseDate = "primary_release_date.desc"
)

const defaultTimeout = 10 * time.Second

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// Client calls the metadata provider.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for the given base URL and API key.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// discoverResponse mirrors the provider's discover payload.
type discoverResponse struct {
	Results []movieResult `json:"results"`
}

type movieResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	GenreIDs    []int   `json:"genre_ids"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
}

// detailResponse mirrors the provider's movie-detail payload. Details embed
// full genre objects instead of ids.
type detailResponse struct {
	movieResult
	Runtime int `json:"runtime"`
	Genres  []struct {
		ID int `json:"id"`
	} `json:"genres"`
}

// Discover fetches one page of the discover listing under the given sort
// order.
func (c *Client) Discover(ctx context.Context, page int, sortBy string) ([]model.Movie, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("page", strconv.Itoa(page))
	q.Set("sort_by", sortBy)
	q.Set("include_adult", "false")

	var resp discoverResponse
	if err := c.get(ctx, "/discover/movie", q, &resp); err != nil {
		return nil, err
	}

	out := make([]model.Movie, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, r.toModel())
	}
	return out, nil
}

// MovieDetails fetches the full record for one movie, including runtime.
func (c *Client) MovieDetails(ctx context.Context, id int64) (model.Movie, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)

	var resp detailResponse
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), q, &resp); err != nil {
		return model.Movie{}, err
	}

	m := resp.toModel()
	m.Runtime = resp.Runtime
	if len(m.GenreIDs) == 0 && len(resp.Genres) > 0 {
		ids := make([]int, len(resp.Genres))
		for i, g := range resp.Genres {
			ids[i] = g.ID
		}
		m.GenreIDs = ids
	}
	return m, nil
}

// Runtime fetches only the runtime for a movie, used by ingestion to enrich
// discover records that lack it.
func (c *Client) Runtime(ctx context.Context, id int64) (int, error) {
	m, err := c.MovieDetails(ctx, id)
	if err != nil {
		return 0, err
	}
	return m.Runtime, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrUnavailable, err)
	}
	return nil
}

func (r movieResult) toModel() model.Movie {
	return model.Movie{
		ID:          r.ID,
		Title:       r.Title,
		Overview:    r.Overview,
		GenreIDs:    r.GenreIDs,
		ReleaseDate: r.ReleaseDate,
		Popularity:  r.Popularity,
		VoteAverage: r.VoteAverage,
		VoteCount:   r.VoteCount,
	}
}
