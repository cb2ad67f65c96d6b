package app_test

import (
	"context"
	"testing"
	"time"

	app "github.com/cinesync/cinesync/internal/app"
	model "github.com/cinesync/cinesync/internal/domain/model"
	ranking "github.com/cinesync/cinesync/internal/domain/ranking"
	vector "github.com/cinesync/cinesync/internal/domain/vector"
	"github.com/cinesync/cinesync/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(false); err != nil {
		panic(err)
	}
}

// startService boots a small service instance for one test.
func startService(opts ...app.Option) *app.Service {
	base := []app.Option{
		app.WithWorkerCount(2),
		app.WithQueueSize(64),
	}
	svc := app.New(append(base, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

// ingestAndWait pushes a movie and blocks until it is queryable.
func ingestAndWait(svc *app.Service, m model.Movie) bool {
	ctx := context.Background()
	if accepted, _ := svc.IngestMovie(ctx, m); !accepted {
		return false
	}
	deadline := time.After(2 * time.Second)
	for {
		if _, err := svc.MovieVibe(ctx, m.ID); err == nil {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func quizVector(set func(v []float64)) []float64 {
	v := make([]float64, vector.Dim)
	if set != nil {
		set(v)
	}
	return v
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := app.New()

		Convey("When it has not been started", func() {
			stats := svc.GetStats()

			Convey("Then stats report it stopped", func() {
				So(stats["started"], ShouldBeFalse)
				So(svc.VibeSchemaVersion(), ShouldEqual, 0)
			})
		})

		Convey("When started and stopped", func() {
			So(svc.Start(context.Background()), ShouldBeNil)

			Convey("Then a second start is a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
				So(svc.GetStats()["started"], ShouldBeTrue)
				svc.Stop()
			})

			Convey("Then stop flips the stats", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldBeFalse)
			})
		})
	})
}

func TestIngestMovie(t *testing.T) {
	Convey("Given a running service", t, func() {
		svc := startService()
		ctx := context.Background()

		Reset(svc.Stop)

		Convey("When a movie is submitted", func() {
			accepted, duplicate := svc.IngestMovie(ctx, model.Movie{ID: 1, Title: "First"})

			Convey("Then it is accepted as new", func() {
				So(accepted, ShouldBeTrue)
				So(duplicate, ShouldBeFalse)
			})

			Convey("And a re-submission is a duplicate", func() {
				accepted, duplicate := svc.IngestMovie(ctx, model.Movie{ID: 1, Title: "First again"})
				So(accepted, ShouldBeTrue)
				So(duplicate, ShouldBeTrue)
			})
		})

		Convey("When the id is invalid", func() {
			accepted, duplicate := svc.IngestMovie(ctx, model.Movie{ID: 0})

			Convey("Then the submission is rejected", func() {
				So(accepted, ShouldBeFalse)
				So(duplicate, ShouldBeFalse)
			})
		})

		Convey("When a movie completes the pipeline", func() {
			ok := ingestAndWait(svc, model.Movie{ID: 2, Title: "Processed", Runtime: 120})

			Convey("Then its vibe vector is stored", func() {
				So(ok, ShouldBeTrue)

				v, err := svc.MovieVibe(ctx, 2)
				So(err, ShouldBeNil)
				So(v, ShouldHaveLength, vector.Dim)
			})
		})
	})
}

func TestSaveQuiz(t *testing.T) {
	Convey("Given a running service", t, func() {
		svc := startService()
		ctx := context.Background()

		Reset(svc.Stop)

		Convey("When a valid quiz is saved", func() {
			answers := quizVector(func(v []float64) { v[0] = 0.5 })

			v, err := svc.SaveQuiz(ctx, "user-1", answers)

			Convey("Then the vector is stored verbatim", func() {
				So(err, ShouldBeNil)
				So(v[0], ShouldEqual, 0.5)
			})
		})

		Convey("When the quiz vector is malformed", func() {
			_, err := svc.SaveQuiz(ctx, "user-1", []float64{1, 2})

			Convey("Then the submission is rejected", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestRecordFeedback(t *testing.T) {
	Convey("Given a service with one processed movie", t, func() {
		svc := startService()
		ctx := context.Background()

		Reset(svc.Stop)

		So(ingestAndWait(svc, model.Movie{ID: 1, Title: "Rated", Overview: "a brutal revenge story", GenreIDs: []int{53}}), ShouldBeTrue)

		Convey("When a user reacts to it", func() {
			event, next, err := svc.RecordFeedback(ctx, "user-1", 1, 5, model.ReactionLike)

			Convey("Then the event and updated vector come back", func() {
				So(err, ShouldBeNil)
				So(event.EventID, ShouldNotBeEmpty)
				So(event.UserID, ShouldEqual, "user-1")
				So(event.MovieID, ShouldEqual, 1)
				So(next.InRange(), ShouldBeTrue)
			})

			Convey("And the vector persists for the next feed", func() {
				_, err := svc.HomeFeed(ctx, "user-1")
				So(err, ShouldBeNil)
			})
		})

		Convey("When the movie does not exist", func() {
			_, _, err := svc.RecordFeedback(ctx, "user-1", 404, 5, model.ReactionLike)

			Convey("Then the feedback is rejected", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the rating is invalid", func() {
			_, _, err := svc.RecordFeedback(ctx, "user-1", 1, 9, model.ReactionLike)

			Convey("Then no state is written", func() {
				So(err, ShouldNotBeNil)
				_, feedErr := svc.HomeFeed(ctx, "user-1")
				So(feedErr, ShouldNotBeNil)
			})
		})
	})
}

func TestHomeFeed(t *testing.T) {
	Convey("Given a running service", t, func() {
		svc := startService()
		ctx := context.Background()

		Reset(svc.Stop)

		Convey("When the user has no preference vector", func() {
			_, err := svc.HomeFeed(ctx, "ghost")

			Convey("Then the request fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the user exists but no movies do", func() {
			_, err := svc.SaveQuiz(ctx, "user-1", quizVector(nil))
			So(err, ShouldBeNil)

			feed, err := svc.HomeFeed(ctx, "user-1")

			Convey("Then the feed is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(feed.Sections, ShouldBeEmpty)
			})
		})

		Convey("When movies have been processed", func() {
			So(ingestAndWait(svc, model.Movie{ID: 1, Title: "A", ReleaseDate: "2024-01-01"}), ShouldBeTrue)
			So(ingestAndWait(svc, model.Movie{ID: 2, Title: "B", ReleaseDate: "1995-01-01", VoteCount: 900}), ShouldBeTrue)

			_, err := svc.SaveQuiz(ctx, "user-1", quizVector(func(v []float64) { v[1] = 1 }))
			So(err, ShouldBeNil)

			feed, err := svc.HomeFeed(ctx, "user-1")

			Convey("Then all six sections come back", func() {
				So(err, ShouldBeNil)
				So(feed.Sections, ShouldHaveLength, 6)
				So(feed.Sections[0].Key, ShouldEqual, ranking.SectionForYou)
			})
		})
	})
}

func TestBlend(t *testing.T) {
	Convey("Given a running service", t, func() {
		svc := startService()
		ctx := context.Background()

		Reset(svc.Stop)

		Convey("When no user ids are given", func() {
			_, err := svc.Blend(ctx, nil)

			Convey("Then the request is rejected", func() {
				So(err, ShouldEqual, app.ErrEmptyBlend)
			})
		})

		Convey("When some users are unknown", func() {
			So(ingestAndWait(svc, model.Movie{ID: 1, Title: "Shared"}), ShouldBeTrue)
			_, err := svc.SaveQuiz(ctx, "known", quizVector(func(v []float64) { v[0] = 1 }))
			So(err, ShouldBeNil)

			result, err := svc.Blend(ctx, []string{"known", "ghost"})

			Convey("Then unknown users are skipped rather than failing", func() {
				So(err, ShouldBeNil)
				So(result.Top, ShouldHaveLength, 1)
			})
		})

		Convey("When no contributing user remains", func() {
			So(ingestAndWait(svc, model.Movie{ID: 2, Title: "Unloved"}), ShouldBeTrue)

			result, err := svc.Blend(ctx, []string{"ghost"})

			Convey("Then candidates score zero", func() {
				So(err, ShouldBeNil)
				So(result.Top, ShouldNotBeEmpty)
				So(result.Top[0].Score, ShouldEqual, 0)
			})
		})
	})
}
