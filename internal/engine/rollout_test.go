package engine

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreedyRunStepBudget(t *testing.T) {
	// Goal is 6 diagonal moves away but the budget is 3: the rollout must
	// stop on its own and report failure.
	g := mustGrid(t, []string{
		"111111111",
		"100000001",
		"100000001",
		"100000001",
		"100000001",
		"100000001",
		"111111111",
	})
	params := DefaultEnvParams()
	params.TerminateOnCollision = false
	w, err := NewGridWorld(g, Position{X: 1, Y: 1}, Position{X: 7, Y: 5}, params)
	require.NoError(t, err)

	feat := NewFeaturizer(1, nil, TileNormSoftmax)
	rng := rand.New(rand.NewSource(3))

	total, success := GreedyRun(context.Background(), w, feat, NewQTable(), 3, rng, nil)
	assert.False(t, success)
	assert.Less(t, total, 0.0, "only shaping penalties accrue without the goal bonus")
}

func TestGreedyRunSinkStop(t *testing.T) {
	sink := &recordingSink{stopAfter: 2}
	w := corridorWorld(t)
	feat := NewFeaturizer(1, nil, TileNormSoftmax)
	rng := rand.New(rand.NewSource(3))

	_, success := GreedyRun(context.Background(), w, feat, NewQTable(), 50, rng, sink)
	assert.False(t, success)
	assert.Len(t, sink.subtitles, 2)
}

func TestGreedyRunDoesNotLearn(t *testing.T) {
	w := corridorWorld(t)
	feat := NewFeaturizer(1, nil, TileNormSoftmax)
	rng := rand.New(rand.NewSource(3))

	q := NewQTable()
	s := feat.State(w)
	q.Row(s)[ActionRight] = 10 // steer straight at the goal

	before := append([]float64(nil), q.Row(s)...)
	total, success := GreedyRun(context.Background(), w, feat, q, 10, rng, nil)

	assert.True(t, success)
	assert.Greater(t, total, 0.0)
	assert.Equal(t, before, q.Row(s), "rollout must not touch the table values")
}
