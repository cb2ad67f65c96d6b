// Package vector defines the fixed-dimension vibe/preference vector type
// shared by the extraction, ranking, and learning packages.
package vector

import "math"

// Dim is the number of axes in every vibe and preference vector.
const Dim = 10

// Axis indices. The order is a persisted contract: vectors written under one
// ordering are only comparable to vectors written under the same ordering.
const (
	AxisMainstream  = iota // -1 mainstream .. +1 arthouse
	AxisTone               // -1 light .. +1 dark
	AxisPace               // -1 fast-paced .. +1 slow-burn
	AxisDrive              // -1 plot-driven .. +1 character-driven
	AxisDialogue           // -1 action .. +1 dialogue
	AxisEra                // -1 old .. +1 new
	AxisFantastical        // -1 realistic .. +1 fantastical
	AxisOutlook            // -1 bleak .. +1 optimistic
	AxisLength             // -1 short .. +1 epic
	AxisChallenge          // -1 comfort .. +1 challenging
)

// Vector holds exactly Dim components, each in [-1, 1].
type Vector [Dim]float64

// Zero returns the all-zeroes vector used to bootstrap a user who has no
// explicit quiz vector yet.
func Zero() Vector {
	return Vector{}
}

// FromSlice converts a raw slice into a Vector. It reports false when the
// slice is not exactly Dim long or carries a non-finite component.
func FromSlice(s []float64) (Vector, bool) {
	var v Vector
	if len(s) != Dim {
		return v, false
	}
	for i, c := range s {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return v, false
		}
		v[i] = c
	}
	return v, true
}

// Slice returns the components as a fresh slice for serialization.
func (v Vector) Slice() []float64 {
	out := make([]float64, Dim)
	copy(out, v[:])
	return out
}

// Clamped returns a copy with every component clamped to [-1, 1] and NaN
// components neutralized to 0. Persisted vectors must pass through this.
func (v Vector) Clamped() Vector {
	for i := range v {
		v[i] = Clamp(v[i])
	}
	return v
}

// InRange reports whether every component already lies in [-1, 1].
func (v Vector) InRange() bool {
	for _, c := range v {
		if math.IsNaN(c) || c < -1 || c > 1 {
			return false
		}
	}
	return true
}

// Clamp pins a single component to [-1, 1], mapping NaN to 0.
func Clamp(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x < -1:
		return -1
	case x > 1:
		return 1
	default:
		return x
	}
}
