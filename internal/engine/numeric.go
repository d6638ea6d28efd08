package engine

import (
	"math"
	"math/rand"
)

// argmaxRand returns the index of the maximum value, breaking ties
// uniformly at random so an all-zero row carries no directional bias.
func argmaxRand(rng *rand.Rand, values []float64) int {
	best := 0
	bestScore := math.Inf(-1)
	countBest := 0
	for i, v := range values {
		if v > bestScore {
			bestScore = v
			best = i
			countBest = 1
		} else if v == bestScore {
			countBest++
			if rng.Intn(countBest) == 0 {
				best = i
			}
		}
	}
	return best
}

// softmax maps values to positive weights summing to 1, shifted by the
// maximum for numeric stability.
func softmax(values []float64) []float64 {
	m := math.Inf(-1)
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		out[i] = math.Exp(v - m)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// normalizeSum scales values so they sum to 1. A small epsilon keeps an
// all-zero input from dividing by zero.
func normalizeSum(values []float64) []float64 {
	sum := 1e-9
	for _, v := range values {
		sum += v
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / sum
	}
	return out
}

// bucketize maps v to the index of the first threshold it is below;
// values at or above every threshold land in the last bucket.
func bucketize(v float64, thresholds []float64) int {
	for i, t := range thresholds {
		if v < t {
			return i
		}
	}
	return len(thresholds)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
