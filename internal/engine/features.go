package engine

// Quadrant pooling: the cells around the agent are grouped into the four
// sign-quadrants UL, UR, DR, DL. Each quadrant contributes one pooled tile
// signal and one pooled pheromone signal, and the eight discretized values
// form the state key for the Q-table. A raw (x, y) state would neither
// generalize nor fit a tabular learner on non-trivial grids.

// NormMode selects how the pooled tile averages are turned into a
// relative-strength vector summing to 1.
type NormMode int

const (
	// TileNormSoftmax exponentiates the averages before normalizing.
	TileNormSoftmax NormMode = iota
	// TileNormRatio divides each average by the sum of all four.
	TileNormRatio
)

// Pooling sentinels: free and obstacle cells contribute unit values, cells
// beyond the border a strongly negative tile value and the maximum
// pheromone so map edges never look attractive.
const (
	tileFree         = 1.0
	tileObstacle     = -1.0
	tileOutOfBounds  = -2.0
	pherOutOfBounds  = 1.0
	defaultVisionRad = 1
)

var defaultThresholds = []float64{0.2, 0.4, 0.6, 0.8}

var quadrantSigns = [4][2]int{
	{-1, -1}, // UL
	{1, -1},  // UR
	{1, 1},   // DR
	{-1, 1},  // DL
}

// QuadrantNames labels the four pooling quadrants in pooling order.
var QuadrantNames = [4]string{"UL", "UR", "DR", "DL"}

// State is the featurized observation: one bucket per quadrant for tile
// favorability and one for pheromone preference. It is comparable and is
// used verbatim as the Q-table key.
type State struct {
	Tile [4]uint8
	Pher [4]uint8
}

// FeatureDebug exposes the intermediate pooling results for display.
type FeatureDebug struct {
	TileAvgs     [4]float64
	PherAvgs     [4]float64
	TileStrength [4]float64
	PherStrength [4]float64
	State        State
}

// Featurizer pools the local neighborhood of the agent into a State. It is
// stateless apart from its configuration: calling it any number of times
// per step yields the same result for the same world state.
type Featurizer struct {
	radius     int
	thresholds []float64
	tileNorm   NormMode
	quads      [4][][2]int
}

// NewFeaturizer builds a featurizer with the given vision radius (minimum
// 1, the four overlapping 2x2 blocks), bucket thresholds (ascending; nil
// for the defaults), and tile normalization mode.
func NewFeaturizer(radius int, thresholds []float64, tileNorm NormMode) *Featurizer {
	if radius < defaultVisionRad {
		radius = defaultVisionRad
	}
	if len(thresholds) == 0 {
		thresholds = defaultThresholds
	}
	f := &Featurizer{
		radius:     radius,
		thresholds: thresholds,
		tileNorm:   tileNorm,
	}
	for q, signs := range quadrantSigns {
		f.quads[q] = quadrantOffsets(signs[0], signs[1], radius)
	}
	return f
}

// quadrantOffsets lists every offset within the radius whose components
// match the quadrant signs, zero rows and columns included. Radius 1
// yields the 2x2 block containing the agent cell.
func quadrantOffsets(sx, sy, radius int) [][2]int {
	offsets := make([][2]int, 0, (radius+1)*(radius+1))
	for dy := 0; dy <= radius; dy++ {
		for dx := 0; dx <= radius; dx++ {
			offsets = append(offsets, [2]int{sx * dx, sy * dy})
		}
	}
	return offsets
}

// State featurizes the world's current position, grid, and pheromone field.
func (f *Featurizer) State(w *GridWorld) State {
	return f.Debug(w).State
}

// Debug featurizes like State but also returns the pooled averages and
// normalized strengths.
func (f *Featurizer) Debug(w *GridWorld) FeatureDebug {
	pos := w.Position()
	grid := w.Grid()
	pher := w.Pheromone()

	var d FeatureDebug
	for q, offsets := range f.quads {
		var tSum, pSum float64
		for _, off := range offsets {
			x, y := pos.X+off[0], pos.Y+off[1]
			if !grid.InBounds(x, y) {
				tSum += tileOutOfBounds
				pSum += pherOutOfBounds
				continue
			}
			if grid.At(x, y) == CellFree {
				tSum += tileFree
			} else {
				tSum += tileObstacle
			}
			pSum += pher.At(x, y)
		}
		n := float64(len(offsets))
		d.TileAvgs[q] = tSum / n
		d.PherAvgs[q] = pSum / n
	}

	var tileStrength []float64
	switch f.tileNorm {
	case TileNormRatio:
		// Tile averages are mixed-sign (obstacles and out-of-bounds pool
		// negative), so shift them above the out-of-bounds sentinel before
		// ratio-normalizing; the agent's own in-bounds cell keeps every
		// quadrant strictly above the sentinel, so the sum stays positive.
		shifted := make([]float64, len(d.TileAvgs))
		for i, v := range d.TileAvgs {
			shifted[i] = v - tileOutOfBounds
		}
		tileStrength = normalizeSum(shifted)
	default:
		tileStrength = softmax(d.TileAvgs[:])
	}

	// Lower pheromone is better: reciprocal goodness, then normalize.
	goodness := make([]float64, 4)
	for i, p := range d.PherAvgs {
		goodness[i] = 1.0 / (1.0 + p)
	}
	pherStrength := normalizeSum(goodness)

	for i := 0; i < 4; i++ {
		d.TileStrength[i] = tileStrength[i]
		d.PherStrength[i] = pherStrength[i]
		d.State.Tile[i] = uint8(bucketize(tileStrength[i], f.thresholds))
		d.State.Pher[i] = uint8(bucketize(pherStrength[i], f.thresholds))
	}
	return d
}
