package similarity_test

import (
	"testing"

	similarity "github.com/cinesync/cinesync/internal/domain/similarity"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func TestCosine(t *testing.T) {
	Convey("Given pairs of vectors", t, func() {
		Convey("When a non-zero vector is compared with itself", func() {
			v := []float64{0.3, -0.7, 0.1, 0.9}

			Convey("Then similarity is exactly 1", func() {
				So(similarity.Cosine(v, v), ShouldAlmostEqual, 1.0, tolerance)
			})
		})

		Convey("When vectors are orthogonal", func() {
			a := []float64{1, 0}
			b := []float64{0, 1}

			Convey("Then similarity is 0", func() {
				So(similarity.Cosine(a, b), ShouldAlmostEqual, 0, tolerance)
			})
		})

		Convey("When vectors point in opposite directions", func() {
			a := []float64{0.5, -0.5}
			b := []float64{-0.5, 0.5}

			Convey("Then similarity is -1", func() {
				So(similarity.Cosine(a, b), ShouldAlmostEqual, -1.0, tolerance)
			})
		})

		Convey("When the arguments are swapped", func() {
			a := []float64{0.2, 0.4, -0.6}
			b := []float64{-0.1, 0.8, 0.3}

			Convey("Then the result is symmetric", func() {
				So(similarity.Cosine(a, b), ShouldAlmostEqual, similarity.Cosine(b, a), tolerance)
			})
		})

		Convey("When either vector has zero norm", func() {
			zero := []float64{0, 0, 0}
			v := []float64{1, 2, 3}

			Convey("Then similarity degrades to 0 instead of NaN", func() {
				So(similarity.Cosine(zero, v), ShouldEqual, 0)
				So(similarity.Cosine(v, zero), ShouldEqual, 0)
				So(similarity.Cosine(zero, zero), ShouldEqual, 0)
			})
		})

		Convey("When lengths differ or vectors are empty", func() {
			Convey("Then similarity is 0", func() {
				So(similarity.Cosine([]float64{1, 2}, []float64{1, 2, 3}), ShouldEqual, 0)
				So(similarity.Cosine(nil, nil), ShouldEqual, 0)
				So(similarity.Cosine([]float64{}, []float64{}), ShouldEqual, 0)
			})
		})

		Convey("When components are extreme", func() {
			a := []float64{1e150, 0}
			b := []float64{1e150, 0}

			Convey("Then the result stays within [-1, 1]", func() {
				got := similarity.Cosine(a, b)
				So(got, ShouldBeLessThanOrEqualTo, 1)
				So(got, ShouldBeGreaterThanOrEqualTo, -1)
			})
		})
	})
}
