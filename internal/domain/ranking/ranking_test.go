package ranking_test

import (
	"testing"
	"time"

	model "github.com/cinesync/cinesync/internal/domain/model"
	ranking "github.com/cinesync/cinesync/internal/domain/ranking"
	vector "github.com/cinesync/cinesync/internal/domain/vector"
	. "github.com/smartystreets/goconvey/convey"
)

// fixedNow pins the clock so the recency and classics windows are stable.
func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func vibeWith(set func(v *vector.Vector)) []float64 {
	var v vector.Vector
	if set != nil {
		set(&v)
	}
	return v.Slice()
}

func TestBuildHomeFeed(t *testing.T) {
	Convey("Given a ranking engine with a fixed clock", t, func() {
		e := ranking.New(ranking.WithNow(fixedNow))

		Convey("When the candidate pool is empty", func() {
			feed := e.BuildHomeFeed(vector.Zero(), nil)

			Convey("Then the feed has no sections", func() {
				So(feed.Sections, ShouldBeEmpty)
			})
		})

		Convey("When every candidate has a stale vibe dimension", func() {
			feed := e.BuildHomeFeed(vector.Zero(), []model.Candidate{
				{Movie: model.Movie{ID: 1}, Vibe: []float64{1, 2, 3}},
				{Movie: model.Movie{ID: 2}, Vibe: nil},
			})

			Convey("Then they are excluded and the feed is empty", func() {
				So(feed.Sections, ShouldBeEmpty)
			})
		})

		Convey("When a single candidate has negative similarity", func() {
			var pref vector.Vector
			pref[vector.AxisTone] = 1

			only := model.Candidate{
				Movie: model.Movie{ID: 5, Title: "Lone Misfit", ReleaseDate: "2024-01-01"},
				Vibe:  vibeWith(func(v *vector.Vector) { v[vector.AxisTone] = -1 }),
			}

			feed := e.BuildHomeFeed(pref, []model.Candidate{only})

			Convey("Then every section still returns it via fallbacks", func() {
				So(feed.Sections, ShouldHaveLength, 6)
				for _, section := range feed.Sections {
					So(section.Movies, ShouldHaveLength, 1)
					So(section.Movies[0].Movie.ID, ShouldEqual, 5)
				}
			})
		})

		Convey("When the pool holds distinct taste profiles", func() {
			var pref vector.Vector
			pref[vector.AxisTone] = 1 // the user likes it dark

			darkMatch := model.Candidate{
				Movie: model.Movie{ID: 1, Title: "Shadow Play", ReleaseDate: "2010-03-01", Popularity: 5, VoteCount: 10000},
				Vibe:  vibeWith(func(v *vector.Vector) { v[vector.AxisTone] = 1 }),
			}
			lightPopular := model.Candidate{
				Movie: model.Movie{ID: 2, Title: "Summer Smash", ReleaseDate: "2025-01-01", Popularity: 150, VoteCount: 90000},
				Vibe: vibeWith(func(v *vector.Vector) {
					v[vector.AxisTone] = -0.2
					v[vector.AxisOutlook] = 0.6
					v[vector.AxisChallenge] = 1
				}),
			}
			oldClassic := model.Candidate{
				Movie: model.Movie{ID: 3, Title: "Vetted Gem", ReleaseDate: "1995-07-01", Popularity: 20, VoteCount: 5000},
				Vibe: vibeWith(func(v *vector.Vector) {
					v[vector.AxisTone] = 0.5
					v[vector.AxisOutlook] = 0.5
				}),
			}

			feed := e.BuildHomeFeed(pref, []model.Candidate{darkMatch, lightPopular, oldClassic})
			bySection := make(map[string]ranking.Section, len(feed.Sections))
			for _, s := range feed.Sections {
				bySection[s.Key] = s
			}

			Convey("Then the sections come back in feed order", func() {
				keys := make([]string, 0, len(feed.Sections))
				for _, s := range feed.Sections {
					keys = append(keys, s.Key)
				}
				So(keys, ShouldResemble, []string{
					ranking.SectionForYou,
					ranking.SectionTrending,
					ranking.SectionNew,
					ranking.SectionClassics,
					ranking.SectionComfort,
					ranking.SectionDarkMoody,
				})
			})

			Convey("Then for-you ranks by raw similarity", func() {
				movies := bySection[ranking.SectionForYou].Movies
				So(movies[0].Movie.ID, ShouldEqual, 1)
				So(movies[0].Similarity, ShouldBeGreaterThan, movies[1].Similarity)
			})

			Convey("Then new-releases keeps only the recent window", func() {
				movies := bySection[ranking.SectionNew].Movies
				So(movies, ShouldHaveLength, 1)
				So(movies[0].Movie.ID, ShouldEqual, 2)
			})

			Convey("Then vetted-classics applies the age and vote floor", func() {
				movies := bySection[ranking.SectionClassics].Movies
				ids := make([]int64, 0, len(movies))
				for _, m := range movies {
					ids = append(ids, m.Movie.ID)
				}
				// 1995 and 2010 qualify; 2025 is too recent.
				So(ids, ShouldResemble, []int64{1, 3})
			})

			Convey("Then comfort-picks favors the comfy candidate", func() {
				movies := bySection[ranking.SectionComfort].Movies
				So(movies[0].Movie.ID, ShouldEqual, 2)
			})

			Convey("Then dark-and-moody favors dark low-optimism candidates", func() {
				movies := bySection[ranking.SectionDarkMoody].Movies
				So(movies[0].Movie.ID, ShouldEqual, 1)
				So(movies[len(movies)-1].Movie.ID, ShouldEqual, 2)
			})
		})

		Convey("When scores tie", func() {
			candidates := []model.Candidate{
				{Movie: model.Movie{ID: 10}, Vibe: vector.Zero().Slice()},
				{Movie: model.Movie{ID: 11}, Vibe: vector.Zero().Slice()},
				{Movie: model.Movie{ID: 12}, Vibe: vector.Zero().Slice()},
			}

			feed := e.BuildHomeFeed(vector.Zero(), candidates)

			Convey("Then candidate-fetch order is preserved", func() {
				movies := feed.Sections[0].Movies
				So(movies[0].Movie.ID, ShouldEqual, 10)
				So(movies[1].Movie.ID, ShouldEqual, 11)
				So(movies[2].Movie.ID, ShouldEqual, 12)
			})
		})

		Convey("When the pool exceeds the section size", func() {
			small := ranking.New(ranking.WithNow(fixedNow), ranking.WithSectionSize(2))

			candidates := make([]model.Candidate, 5)
			for i := range candidates {
				candidates[i] = model.Candidate{
					Movie: model.Movie{ID: int64(i + 1)},
					Vibe:  vector.Zero().Slice(),
				}
			}

			feed := small.BuildHomeFeed(vector.Zero(), candidates)

			Convey("Then every section is capped", func() {
				for _, section := range feed.Sections {
					So(len(section.Movies), ShouldBeLessThanOrEqualTo, 2)
				}
			})
		})

		Convey("When a mixed pool contains one bad-dimension candidate", func() {
			candidates := []model.Candidate{
				{Movie: model.Movie{ID: 1}, Vibe: vector.Zero().Slice()},
				{Movie: model.Movie{ID: 2}, Vibe: []float64{0.5}},
			}

			feed := e.BuildHomeFeed(vector.Zero(), candidates)

			Convey("Then only the valid candidate is ranked", func() {
				So(feed.Sections[0].Movies, ShouldHaveLength, 1)
				So(feed.Sections[0].Movies[0].Movie.ID, ShouldEqual, 1)
			})
		})
	})
}
