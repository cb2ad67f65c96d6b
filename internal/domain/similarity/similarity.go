// Package similarity provides the cosine-similarity primitive shared by the
// ranking and blend engines.
package similarity

import "math"

// Cosine returns the cosine similarity of a and b in [-1, 1].
//
// Similarity is a soft signal: a length mismatch, an empty vector, or a zero
// norm returns 0.0 instead of an error so a single bad vector never fails a
// whole ranking request.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) {
		return 0
	}
	// Guard against float drift outside [-1, 1].
	return math.Max(-1, math.Min(1, sim))
}
