package engine

import "gonum.org/v1/gonum/mat"

// PheromoneField tracks a per-cell scalar in [0,1]. Values decay toward 0
// every step and the occupied cell receives a bounded deposit toward 1, so
// heavily revisited cells accumulate pheromone without ever leaving the
// unit interval.
type PheromoneField struct {
	width  int
	height int
	data   *mat.Dense
}

// NewPheromoneField returns a zeroed width x height field.
func NewPheromoneField(width, height int) *PheromoneField {
	return &PheromoneField{
		width:  width,
		height: height,
		data:   mat.NewDense(height, width, nil),
	}
}

// Reset zeroes every cell.
func (p *PheromoneField) Reset() {
	p.data.Zero()
}

// At returns the pheromone level at (x, y).
func (p *PheromoneField) At(x, y int) float64 {
	return p.data.At(y, x)
}

// Decay multiplies every cell by factor. Factors in (0,1) keep the field
// inside [0,1].
func (p *PheromoneField) Decay(factor float64) {
	p.data.Scale(factor, p.data)
}

// Deposit raises the cell at (x, y) by rate*(1-current): a contraction
// toward 1 that never overshoots for rates in [0,1].
func (p *PheromoneField) Deposit(x, y int, rate float64) {
	v := p.data.At(y, x)
	p.data.Set(y, x, v+rate*(1.0-v))
}

// Snapshot copies the field into a row-major [y][x] slice for display.
func (p *PheromoneField) Snapshot() [][]float64 {
	out := make([][]float64, p.height)
	for y := 0; y < p.height; y++ {
		out[y] = make([]float64, p.width)
		for x := 0; x < p.width; x++ {
			out[y][x] = p.data.At(y, x)
		}
	}
	return out
}
