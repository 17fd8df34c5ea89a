package encoder

import "math"

// poolEpsilon is the clamp floor for the valid-token count so that a
// sequence whose mask is all zeros after boundary exclusion does not
// divide by zero.
const poolEpsilon = 1e-9

// ExcludeBoundaries returns a copy of the attention mask with the
// sequence-start position and the last valid position zeroed, so that
// the boundary markers do not contribute to pooling.
func ExcludeBoundaries(mask []int64) []int64 {
	out := make([]int64, len(mask))
	copy(out, mask)
	if len(out) == 0 {
		return out
	}
	out[0] = 0
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] == 1 {
			out[i] = 0
			break
		}
	}
	return out
}

// MeanPool averages the token embeddings selected by the mask into a
// single vector: per dimension, the sum of masked token values divided
// by the clamped count of valid tokens.
func MeanPool(tokens [][]float32, mask []int64) []float32 {
	if len(tokens) == 0 {
		return nil
	}
	dim := len(tokens[0])
	pooled := make([]float32, dim)

	var valid float64
	for i, tok := range tokens {
		if i >= len(mask) || mask[i] != 1 {
			continue
		}
		valid++
		for d := 0; d < dim && d < len(tok); d++ {
			pooled[d] += tok[d]
		}
	}

	denom := math.Max(valid, poolEpsilon)
	for d := range pooled {
		pooled[d] = float32(float64(pooled[d]) / denom)
	}
	return pooled
}

// MeanVectors averages a set of equal-width vectors. Used to collapse
// the chunk vectors of a long keyword into one embedding.
func MeanVectors(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}
	if len(vectors) == 1 {
		return vectors[0]
	}
	dim := len(vectors[0])
	out := make([]float32, dim)
	for _, v := range vectors {
		for d := 0; d < dim && d < len(v); d++ {
			out[d] += v[d]
		}
	}
	n := float32(len(vectors))
	for d := range out {
		out[d] /= n
	}
	return out
}

// NormalizeVector normalizes a vector to unit length. A zero vector is
// returned unchanged as a fresh zero vector.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}
	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// Cosine computes the cosine similarity of two vectors, in [-1, 1].
// A zero vector yields similarity 0.
func Cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
