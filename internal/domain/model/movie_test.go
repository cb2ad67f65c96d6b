package model_test

import (
	"testing"

	model "github.com/cinesync/cinesync/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReleaseYear(t *testing.T) {
	Convey("Given movies with various release dates", t, func() {
		Convey("When the date is well-formed", func() {
			m := model.Movie{ReleaseDate: "1994-09-23"}

			year, ok := m.ReleaseYear()

			Convey("Then the year parses", func() {
				So(ok, ShouldBeTrue)
				So(year, ShouldEqual, 1994)
			})
		})

		Convey("When the date is empty or malformed", func() {
			cases := []string{"", "not-a-date", "94-09-23"}

			Convey("Then parsing degrades to no signal", func() {
				for _, date := range cases {
					m := model.Movie{ReleaseDate: date}
					_, ok := m.ReleaseYear()
					So(ok, ShouldBeFalse)
				}
			})
		})
	})
}

func TestReactionValid(t *testing.T) {
	Convey("Given reaction values", t, func() {
		Convey("Then the three known reactions validate", func() {
			So(model.ReactionLike.Valid(), ShouldBeTrue)
			So(model.ReactionMeh.Valid(), ShouldBeTrue)
			So(model.ReactionDislike.Valid(), ShouldBeTrue)
		})

		Convey("Then anything else is rejected", func() {
			So(model.Reaction("").Valid(), ShouldBeFalse)
			So(model.Reaction("love").Valid(), ShouldBeFalse)
			So(model.Reaction("LIKE").Valid(), ShouldBeFalse)
		})
	})
}
