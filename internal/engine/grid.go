package engine

import (
	"fmt"
	"math/rand"
)

// CellKind distinguishes walkable cells from obstacles.
type CellKind uint8

const (
	CellFree CellKind = iota
	CellObstacle
)

const (
	symbolFree     = '0'
	symbolObstacle = '1'
)

// Position is an (x, y) cell coordinate, x in [0,W) and y in [0,H).
type Position struct {
	X int
	Y int
}

// Grid is a rectangular field of cell kinds, immutable after construction.
type Grid struct {
	width  int
	height int
	cells  []CellKind
}

// NewGrid builds a grid from row-major cell kinds. Rows must be non-empty
// and uniform in length.
func NewGrid(rows [][]CellKind) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid must have at least one row and one column")
	}
	width := len(rows[0])
	g := &Grid{
		width:  width,
		height: len(rows),
		cells:  make([]CellKind, 0, width*len(rows)),
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("grid is not rectangular: row %d has %d cells, want %d", y, len(row), width)
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// ParseGrid reads a grid from strings of '0' (free) and '1' (obstacle)
// characters, one string per row.
func ParseGrid(rows []string) (*Grid, error) {
	kinds := make([][]CellKind, len(rows))
	for y, row := range rows {
		kinds[y] = make([]CellKind, len(row))
		for x, c := range []byte(row) {
			switch c {
			case symbolFree:
				kinds[y][x] = CellFree
			case symbolObstacle:
				kinds[y][x] = CellObstacle
			default:
				return nil, fmt.Errorf("grid row %d col %d: unknown cell symbol %q", y, x, c)
			}
		}
	}
	return NewGrid(kinds)
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) is a valid cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the kind of the cell at (x, y). The caller must ensure the
// coordinate is in bounds.
func (g *Grid) At(x, y int) CellKind {
	return g.cells[y*g.width+x]
}

// RandomGrid generates a width x height grid with an obstacle border and a
// random interior where each cell is free with probability freeProb.
func RandomGrid(width, height int, freeProb float64, rng *rand.Rand) (*Grid, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("random grid needs at least 3x3 for a border plus interior, got %dx%d", width, height)
	}
	rows := make([][]CellKind, height)
	for y := 0; y < height; y++ {
		rows[y] = make([]CellKind, width)
		for x := 0; x < width; x++ {
			onBorder := x == 0 || x == width-1 || y == 0 || y == height-1
			if onBorder || rng.Float64() >= freeProb {
				rows[y][x] = CellObstacle
			}
		}
	}
	return NewGrid(rows)
}
