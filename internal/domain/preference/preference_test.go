package preference_test

import (
	"testing"

	model "github.com/cinesync/cinesync/internal/domain/model"
	preference "github.com/cinesync/cinesync/internal/domain/preference"
	vector "github.com/cinesync/cinesync/internal/domain/vector"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func TestApply(t *testing.T) {
	Convey("Given the preference update rule", t, func() {
		Convey("When a fresh user loves a movie aligned with axis 0", func() {
			old := vector.Zero()
			var vibe vector.Vector
			vibe[0] = 1

			got, err := preference.Apply(&old, vibe, 5, model.ReactionLike)

			Convey("Then axis 0 steps by the full learning rate", func() {
				So(err, ShouldBeNil)
				So(got[0], ShouldAlmostEqual, 0.15, tolerance)
				for i := 1; i < vector.Dim; i++ {
					So(got[i], ShouldEqual, 0)
				}
			})
		})

		Convey("When the old vector is nil", func() {
			var vibe vector.Vector
			vibe[2] = 0.5

			got, err := preference.Apply(nil, vibe, 5, model.ReactionLike)

			Convey("Then it bootstraps from the zero vector", func() {
				So(err, ShouldBeNil)
				So(got[2], ShouldAlmostEqual, 0.15*0.5, tolerance)
			})
		})

		Convey("When the user dislikes a movie", func() {
			old := vector.Zero()
			var vibe vector.Vector
			vibe[1] = 1

			// rating 1 + dislike: signal = (-1) * (-1) = +1, so the vector
			// moves toward the vibe.
			got, err := preference.Apply(&old, vibe, 1, model.ReactionDislike)

			Convey("Then the signed signal decides the direction", func() {
				So(err, ShouldBeNil)
				So(got[1], ShouldAlmostEqual, 0.15, tolerance)
			})

			Convey("And a high rating with dislike pushes away", func() {
				got, err := preference.Apply(&old, vibe, 5, model.ReactionDislike)
				So(err, ShouldBeNil)
				So(got[1], ShouldAlmostEqual, -0.15, tolerance)
			})
		})

		Convey("When the signal is exactly neutral", func() {
			old := vector.Zero()
			var vibe vector.Vector
			vibe[0] = 1

			got, err := preference.Apply(&old, vibe, 3, model.ReactionLike)

			Convey("Then the floor step still moves the vector", func() {
				So(err, ShouldBeNil)
				So(got[0], ShouldAlmostEqual, 0.05, tolerance)
			})
		})

		Convey("When a meh reaction dampens the rating", func() {
			old := vector.Zero()
			var vibe vector.Vector
			vibe[0] = 1

			got, err := preference.Apply(&old, vibe, 5, model.ReactionMeh)

			Convey("Then the step shrinks with the signal", func() {
				// signal = 1.0 * 0.3, alpha = 0.15 * 0.3
				So(err, ShouldBeNil)
				So(got[0], ShouldAlmostEqual, 0.15*0.3, tolerance)
			})
		})

		Convey("When the old vector is already saturated", func() {
			var old, vibe vector.Vector
			for i := range old {
				old[i] = 1
				vibe[i] = 1
			}

			got, err := preference.Apply(&old, vibe, 5, model.ReactionLike)

			Convey("Then every component stays within [-1, 1]", func() {
				So(err, ShouldBeNil)
				So(got.InRange(), ShouldBeTrue)
				So(got[0], ShouldAlmostEqual, 1, tolerance)
			})
		})

		Convey("When repeated dislikes pile up", func() {
			v := vector.Zero()
			var vibe vector.Vector
			vibe[0] = 1

			for i := 0; i < 200; i++ {
				next, err := preference.Apply(&v, vibe, 5, model.ReactionDislike)
				So(err, ShouldBeNil)
				v = next
			}

			Convey("Then the component converges without escaping the range", func() {
				So(v.InRange(), ShouldBeTrue)
				So(v[0], ShouldBeLessThan, -0.9)
			})
		})

		Convey("When the rating is out of range", func() {
			old := vector.Zero()

			_, errLow := preference.Apply(&old, vector.Zero(), 0, model.ReactionLike)
			_, errHigh := preference.Apply(&old, vector.Zero(), 6, model.ReactionLike)

			Convey("Then the update is rejected", func() {
				So(errLow, ShouldEqual, preference.ErrInvalidRating)
				So(errHigh, ShouldEqual, preference.ErrInvalidRating)
			})
		})

		Convey("When the reaction is unrecognized", func() {
			old := vector.Zero()

			_, err := preference.Apply(&old, vector.Zero(), 4, model.Reaction("loved-it"))

			Convey("Then the update is rejected", func() {
				So(err, ShouldEqual, preference.ErrInvalidReaction)
			})
		})
	})
}

func TestFromQuiz(t *testing.T) {
	Convey("Given quiz submissions", t, func() {
		Convey("When the answers are a valid vector", func() {
			answers := make([]float64, vector.Dim)
			answers[0] = -0.8
			answers[9] = 0.4

			v, err := preference.FromQuiz(answers)

			Convey("Then the vector is stored verbatim", func() {
				So(err, ShouldBeNil)
				So(v[0], ShouldEqual, -0.8)
				So(v[9], ShouldEqual, 0.4)
			})
		})

		Convey("When the answer count is wrong", func() {
			_, err := preference.FromQuiz(make([]float64, vector.Dim+2))

			Convey("Then the submission is rejected", func() {
				So(err, ShouldEqual, preference.ErrInvalidQuizVector)
			})
		})

		Convey("When a component is out of range", func() {
			answers := make([]float64, vector.Dim)
			answers[3] = 1.5

			_, err := preference.FromQuiz(answers)

			Convey("Then the submission is rejected", func() {
				So(err, ShouldEqual, preference.ErrInvalidQuizVector)
			})
		})
	})
}
