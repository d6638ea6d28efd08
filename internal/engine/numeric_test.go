package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgmaxRandPicksMaximum(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, 2, argmaxRand(rng, []float64{0.1, -3, 7, 6.9}))
}

func TestArgmaxRandTieBreakIsUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	values := []float64{1, 5, 5, 0, 5}
	tied := []int{1, 2, 4}

	const trials = 9000
	counts := make(map[int]int)
	for i := 0; i < trials; i++ {
		counts[argmaxRand(rng, values)]++
	}

	assert.Len(t, counts, len(tied), "only tied maxima may be selected")
	for _, idx := range tied {
		share := float64(counts[idx]) / trials
		assert.InDelta(t, 1.0/3.0, share, 0.05, "index %d", idx)
	}
}

func TestSoftmaxSumsToOne(t *testing.T) {
	out := softmax([]float64{-2, -1.25, 0.5, 1})
	var sum float64
	for _, v := range out {
		assert.Greater(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, out[3], out[0], "larger input, larger weight")
}

func TestNormalizeSum(t *testing.T) {
	out := normalizeSum([]float64{1, 1, 2})
	assert.InDelta(t, 0.25, out[0], 1e-6)
	assert.InDelta(t, 0.5, out[2], 1e-6)

	zero := normalizeSum([]float64{0, 0})
	assert.Zero(t, zero[0], "all-zero input must not divide by zero")
}

func TestBucketize(t *testing.T) {
	bins := []float64{0.2, 0.4, 0.6, 0.8}
	assert.Equal(t, 0, bucketize(0.0, bins))
	assert.Equal(t, 0, bucketize(0.19, bins))
	assert.Equal(t, 1, bucketize(0.2, bins), "value at a threshold falls in the next bucket")
	assert.Equal(t, 3, bucketize(0.79, bins))
	assert.Equal(t, 4, bucketize(0.8, bins))
	assert.Equal(t, 4, bucketize(99, bins))
}
