package vibe

// Heuristic tables for the feature extractor. Persisted vibe vectors are only
// comparable when they were computed under the same table version, so any
// edit here must bump Version and trigger re-ingestion.

// GenreSet is a set of metadata-provider genre ids.
type GenreSet map[int]struct{}

// NewGenreSet builds a set from a list of genre ids.
func NewGenreSet(ids ...int) GenreSet {
	s := make(GenreSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Range is a linear normalization window mapped onto [-1, 1].
type Range struct {
	Min float64
	Max float64
}

// Tables bundles every fixed constant the extractor consumes. The provider's
// genre taxonomy stays in here so the axis formulas never reference concrete
// taxonomy ids.
type Tables struct {
	Version int

	PopularityRange  Range // axis 0, popularity term
	VoteLogRange     Range // axis 0, log10(votes+1) term
	RuntimePaceRange Range // axis 2, runtime term
	ReleaseYearRange Range // axis 5
	RuntimeEpicRange Range // axis 8

	// Keyword lists, matched case-insensitively as substrings of the synopsis.
	DarkKeywords       []string
	LightKeywords      []string
	CharacterKeywords  []string
	PlotKeywords       []string
	OptimisticKeywords []string
	BleakKeywords      []string

	// Genre sets, one pair per genre-informed axis.
	DarkGenres        GenreSet
	LightGenres       GenreSet
	SlowGenres        GenreSet
	FastGenres        GenreSet
	CharacterGenres   GenreSet
	PlotGenres        GenreSet
	DialogueGenres    GenreSet
	ActionGenres      GenreSet
	FantasticalGenres GenreSet
	RealisticGenres   GenreSet
	OptimisticGenres  GenreSet
	BleakGenres       GenreSet
}

// TMDB genre ids referenced by the default tables.
const (
	genreAction      = 28
	genreAdventure   = 12
	genreAnimation   = 16
	genreComedy      = 35
	genreCrime       = 80
	genreDocumentary = 99
	genreDrama       = 18
	genreFamily      = 10751
	genreFantasy     = 14
	genreHistory     = 36
	genreHorror      = 27
	genreMusic       = 10402
	genreMystery     = 9648
	genreRomance     = 10749
	genreSciFi       = 878
	genreThriller    = 53
	genreWar         = 10752
	genreWestern     = 37
)

// DefaultTables returns version 1 of the heuristic tables, tuned for the
// TMDB taxonomy.
func DefaultTables() Tables {
	return Tables{
		Version: 1,

		PopularityRange:  Range{Min: 0, Max: 150},
		VoteLogRange:     Range{Min: 0, Max: 4},
		RuntimePaceRange: Range{Min: 80, Max: 170},
		ReleaseYearRange: Range{Min: 1960, Max: 2025},
		RuntimeEpicRange: Range{Min: 80, Max: 180},

		DarkKeywords: []string{
			"dark", "murder", "death", "war", "violence",
			"revenge", "brutal", "haunt", "killer",
		},
		LightKeywords: []string{
			"fun", "love", "friendship", "comedy",
			"heartwarming", "joy", "holiday",
		},
		CharacterKeywords: []string{
			"relationship", "coming of age", "identity",
			"family", "grief", "struggle", "portrait",
		},
		PlotKeywords: []string{
			"heist", "mission", "conspiracy", "scheme",
			"race against", "uncover", "plot",
		},
		OptimisticKeywords: []string{
			"hope", "triumph", "uplifting", "dream",
			"inspire", "redemption", "heartwarming",
		},
		BleakKeywords: []string{
			"tragedy", "loss", "despair", "grief",
			"doomed", "bleak", "dystopia",
		},

		DarkGenres:        NewGenreSet(genreHorror, genreThriller, genreCrime, genreMystery),
		LightGenres:       NewGenreSet(genreComedy, genreFamily, genreAnimation, genreMusic, genreRomance),
		SlowGenres:        NewGenreSet(genreDrama, genreHistory, genreDocumentary),
		FastGenres:        NewGenreSet(genreAction, genreAdventure, genreThriller),
		CharacterGenres:   NewGenreSet(genreDrama, genreRomance),
		PlotGenres:        NewGenreSet(genreAction, genreAdventure, genreThriller, genreMystery, genreCrime),
		DialogueGenres:    NewGenreSet(genreDrama, genreComedy, genreRomance, genreDocumentary),
		ActionGenres:      NewGenreSet(genreAction, genreAdventure, genreWar, genreWestern),
		FantasticalGenres: NewGenreSet(genreFantasy, genreSciFi, genreAnimation, genreHorror),
		RealisticGenres:   NewGenreSet(genreDrama, genreHistory, genreDocumentary, genreCrime),
		OptimisticGenres:  NewGenreSet(genreComedy, genreFamily, genreRomance, genreAnimation, genreMusic),
		BleakGenres:       NewGenreSet(genreHorror, genreDrama, genreWar, genreCrime),
	}
}
