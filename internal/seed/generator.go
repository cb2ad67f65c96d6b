package seed

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Generation constants.
const (
	maxGenresPerMovie = 3
	minReleaseYear    = 1960
	maxReleaseYear    = 2025
	maxPopularity     = 300.0
	maxVoteCount      = 60000
	minRuntime        = 75
	maxRuntime        = 195
	quizDim           = 10
)

// TMDB genre ids used when fabricating catalog entries.
var genrePool = []int{28, 12, 16, 35, 80, 99, 18, 10751, 14, 36, 27, 10402, 9648, 10749, 878, 53, 10752, 37}

var titleAdjectives = []string{
	"Silent", "Crimson", "Endless", "Broken", "Golden", "Midnight", "Savage",
	"Forgotten", "Electric", "Hollow", "Distant", "Burning", "Frozen", "Last",
}

var titleNouns = []string{
	"Horizon", "Empire", "Garden", "Signal", "Harbor", "Vendetta", "Reckoning",
	"Odyssey", "Paradox", "Kingdom", "Echo", "Covenant", "Mirage", "Frontier",
}

var overviewFragments = []string{
	"a quiet meditation on loss and memory",
	"a relentless chase across a crumbling city",
	"an explosive battle for survival against impossible odds",
	"a tender portrait of an unlikely friendship",
	"a cerebral puzzle that rewards patient viewers",
	"a dark descent into obsession and betrayal",
	"a heartwarming journey of hope and redemption",
	"a sprawling saga spanning three generations",
	"a gritty and bleak account of life on the margins",
	"a whimsical adventure through a magical realm",
}

// movieRequest mirrors the ingestion payload.
type movieRequest struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	GenreIDs    []int   `json:"genre_ids"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
	Runtime     int     `json:"runtime"`
}

// generateMovies fabricates n catalog entries with ids 1..n.
func generateMovies(rng *rand.Rand, n int) []movieRequest {
	movies := make([]movieRequest, 0, n)
	for i := 1; i <= n; i++ {
		year := minReleaseYear + rng.Intn(maxReleaseYear-minReleaseYear+1)
		genres := pickGenres(rng)
		movies = append(movies, movieRequest{
			ID:          int64(i),
			Title:       fmt.Sprintf("%s %s", pick(rng, titleAdjectives), pick(rng, titleNouns)),
			Overview:    fmt.Sprintf("The story of %s.", pick(rng, overviewFragments)),
			GenreIDs:    genres,
			ReleaseDate: fmt.Sprintf("%04d-%02d-%02d", year, 1+rng.Intn(12), 1+rng.Intn(28)),
			Popularity:  rng.Float64() * maxPopularity,
			VoteAverage: 3 + rng.Float64()*7,
			VoteCount:   int64(rng.Intn(maxVoteCount)),
			Runtime:     minRuntime + rng.Intn(maxRuntime-minRuntime),
		})
	}
	return movies
}

func pickGenres(rng *rand.Rand) []int {
	count := 1 + rng.Intn(maxGenresPerMovie)
	seen := make(map[int]struct{}, count)
	out := make([]int, 0, count)
	for len(out) < count {
		g := genrePool[rng.Intn(len(genrePool))]
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

// generateUsers produces user ids and random quiz vectors in [-1, 1].
func generateUsers(rng *rand.Rand, n int) []userSeed {
	users := make([]userSeed, 0, n)
	for i := 0; i < n; i++ {
		vec := make([]float64, quizDim)
		for d := range vec {
			vec[d] = rng.Float64()*2 - 1
		}
		users = append(users, userSeed{ID: uuid.NewString(), Quiz: vec})
	}
	return users
}

type userSeed struct {
	ID   string
	Quiz []float64
}

var reactions = []string{"like", "meh", "dislike"}

type feedbackRequest struct {
	UserID   string `json:"user_id"`
	MovieID  int64  `json:"movie_id"`
	Rating   int    `json:"rating"`
	Reaction string `json:"reaction"`
}

// generateFeedback produces per-user rating events over the seeded catalog.
func generateFeedback(rng *rand.Rand, users []userSeed, numMovies, perUser int) []feedbackRequest {
	events := make([]feedbackRequest, 0, len(users)*perUser)
	for _, u := range users {
		for i := 0; i < perUser; i++ {
			events = append(events, feedbackRequest{
				UserID:   u.ID,
				MovieID:  int64(1 + rng.Intn(numMovies)),
				Rating:   1 + rng.Intn(5),
				Reaction: reactions[rng.Intn(len(reactions))],
			})
		}
	}
	return events
}
