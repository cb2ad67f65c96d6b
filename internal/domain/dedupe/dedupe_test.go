package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/cinesync/cinesync/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeduper(t *testing.T) {
	Convey("Given a new deduper", t, func() {
		ctx := context.Background()

		Convey("When created with defaults", func() {
			d := dedupe.New()

			Convey("Then it starts empty", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording ids", func() {
			d := dedupe.New()

			Convey("And the id is new", func() {
				seen := d.SeenAndRecord(ctx, "movie:1")

				Convey("Then it reports unseen and records it", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the id was already recorded", func() {
				d.SeenAndRecord(ctx, "movie:1")
				seen := d.SeenAndRecord(ctx, "movie:1")

				Convey("Then it reports seen without growing", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})
		})

		Convey("When unrecording an id", func() {
			d := dedupe.New()
			d.SeenAndRecord(ctx, "movie:1")
			d.Unrecord(ctx, "movie:1")

			Convey("Then the id can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "movie:1"), ShouldBeFalse)
			})

			Convey("And unrecording an unknown id is a no-op", func() {
				d.Unrecord(ctx, "movie:999")
				So(d.Size(), ShouldBeLessThanOrEqualTo, 1)
			})
		})

		Convey("When the ring overflows its max size", func() {
			d := dedupe.New(dedupe.WithMaxSize(3))

			for i := 0; i < 5; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("movie:%d", i))
			}

			Convey("Then the oldest ids are evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				// movie:0 and movie:1 were evicted, so they read as unseen.
				So(d.SeenAndRecord(ctx, "movie:0"), ShouldBeFalse)
				// movie:4 is still tracked.
				So(d.SeenAndRecord(ctx, "movie:4"), ShouldBeTrue)
			})
		})

		Convey("When hammered concurrently with the same id", func() {
			d := dedupe.New()

			const goroutines = 64
			firsts := make(chan bool, goroutines)
			var wg sync.WaitGroup
			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if !d.SeenAndRecord(ctx, "movie:42") {
						firsts <- true
					}
				}()
			}
			wg.Wait()
			close(firsts)

			Convey("Then exactly one caller wins the record", func() {
				So(len(firsts), ShouldEqual, 1)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}
