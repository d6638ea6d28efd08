package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func featurizerWorld(t *testing.T, rows []string, start Position) *GridWorld {
	t.Helper()
	g := mustGrid(t, rows)
	w, err := NewGridWorld(g, start, Position{X: g.Width() - 1, Y: g.Height() - 1}, DefaultEnvParams())
	require.NoError(t, err)
	return w
}

func TestQuadrantOffsets(t *testing.T) {
	ul := quadrantOffsets(-1, -1, 1)
	assert.ElementsMatch(t, [][2]int{{0, 0}, {-1, 0}, {0, -1}, {-1, -1}}, ul)

	dr := quadrantOffsets(1, 1, 2)
	assert.Len(t, dr, 9, "radius 2 covers a 3x3 block per quadrant")
	assert.Contains(t, dr, [2]int{2, 2})
	assert.Contains(t, dr, [2]int{0, 0})
}

func TestFeaturizerStrengthsSumToOne(t *testing.T) {
	rows := []string{
		"11111",
		"10001",
		"10101",
		"10001",
		"11111",
	}
	positions := []Position{
		{X: 0, Y: 0}, // corner, three quadrants fully out of bounds
		{X: 2, Y: 2},
		{X: 4, Y: 4},
		{X: 1, Y: 3},
	}
	modes := map[string]NormMode{
		"softmax": TileNormSoftmax,
		"ratio":   TileNormRatio,
	}

	for name, mode := range modes {
		t.Run(name, func(t *testing.T) {
			f := NewFeaturizer(1, nil, mode)
			for _, pos := range positions {
				w := featurizerWorld(t, rows, pos)
				d := f.Debug(w)

				var tileSum, pherSum float64
				for i := 0; i < 4; i++ {
					tileSum += d.TileStrength[i]
					pherSum += d.PherStrength[i]
				}
				assert.InDelta(t, 1.0, tileSum, 1e-6, "tile strengths at (%d,%d)", pos.X, pos.Y)
				assert.InDelta(t, 1.0, pherSum, 1e-6, "pheromone strengths at (%d,%d)", pos.X, pos.Y)
			}
		})
	}
}

func TestFeaturizerRatioModeMixedSignAverages(t *testing.T) {
	// Quadrant tile averages of opposite sign used to cancel to a
	// near-zero sum under ratio normalization, blowing the strengths up
	// instead of summing to 1.
	w := featurizerWorld(t, []string{"001", "011", "100"}, Position{X: 1, Y: 1})
	f := NewFeaturizer(1, nil, TileNormRatio)
	d := f.Debug(w)

	var tileSum float64
	for i := 0; i < 4; i++ {
		assert.GreaterOrEqual(t, d.TileStrength[i], 0.0)
		assert.LessOrEqual(t, d.TileStrength[i], 1.0)
		tileSum += d.TileStrength[i]
	}
	assert.InDelta(t, 1.0, tileSum, 1e-6)
	// The all-free UL quadrant must still look better than the DL one
	// containing two obstacles.
	assert.Greater(t, d.TileStrength[0], d.TileStrength[3])
}

func TestFeaturizerOutOfBoundsSentinels(t *testing.T) {
	// Agent in the top-left corner of an all-free grid: the UL quadrant is
	// the agent cell plus three out-of-bounds cells.
	w := featurizerWorld(t, []string{"000", "000", "000"}, Position{X: 0, Y: 0})
	f := NewFeaturizer(1, nil, TileNormSoftmax)
	d := f.Debug(w)

	assert.InDelta(t, (tileFree+3*tileOutOfBounds)/4, d.TileAvgs[0], 1e-9)
	assert.InDelta(t, 3*pherOutOfBounds/4, d.PherAvgs[0], 1e-9)
	// DR quadrant is fully in bounds and free.
	assert.InDelta(t, tileFree, d.TileAvgs[2], 1e-9)
	assert.InDelta(t, 0.0, d.PherAvgs[2], 1e-9)
}

func TestFeaturizerIsPure(t *testing.T) {
	w := featurizerWorld(t, []string{"010", "000", "010"}, Position{X: 1, Y: 1})
	w.Step(ActionRight)
	f := NewFeaturizer(1, nil, TileNormSoftmax)

	first := f.Debug(w)
	second := f.Debug(w)
	assert.Equal(t, first, second, "featurizing twice must not change anything")
}

func TestFeaturizerPrefersLowPheromone(t *testing.T) {
	w := featurizerWorld(t, []string{"000", "000", "000"}, Position{X: 1, Y: 1})
	// Load pheromone into the UL quadrant only.
	w.Pheromone().Deposit(0, 0, 0.9)
	w.Pheromone().Deposit(1, 0, 0.9)
	w.Pheromone().Deposit(0, 1, 0.9)

	f := NewFeaturizer(1, nil, TileNormSoftmax)
	d := f.Debug(w)

	for q := 1; q < 4; q++ {
		assert.Greater(t, d.PherStrength[q], d.PherStrength[0],
			"quadrant %s should look better than the trodden UL", QuadrantNames[q])
	}
}

func TestFeaturizerStateIsBucketized(t *testing.T) {
	w := featurizerWorld(t, []string{"000", "000", "000"}, Position{X: 1, Y: 1})
	f := NewFeaturizer(1, []float64{0.2, 0.4, 0.6, 0.8}, TileNormSoftmax)
	s := f.State(w)

	for i := 0; i < 4; i++ {
		assert.LessOrEqual(t, s.Tile[i], uint8(4))
		assert.LessOrEqual(t, s.Pher[i], uint8(4))
	}
	// A symmetric all-free neighborhood pools identically in every quadrant.
	assert.Equal(t, s.Tile[0], s.Tile[2])
	assert.Equal(t, s.Pher[1], s.Pher[3])
}
