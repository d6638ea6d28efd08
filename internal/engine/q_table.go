package engine

// QTable maps featurized states to per-action value estimates. Rows are
// created lazily as zero vectors the first time a state is seen and are
// never deleted, so initialization stays auditable: a missing row and an
// all-zero row are indistinguishable to readers.
type QTable struct {
	rows map[State][]float64
}

// NewQTable returns an empty table.
func NewQTable() *QTable {
	return &QTable{rows: make(map[State][]float64)}
}

// Row returns the action-value vector for s, creating a zero row on first
// access. The returned slice is the live row; writes through it are how
// the trainer updates the table.
func (q *QTable) Row(s State) []float64 {
	row, ok := q.rows[s]
	if !ok {
		row = make([]float64, NumActions)
		q.rows[s] = row
	}
	return row
}

// MaxValue returns the largest action value at s (0 for unseen states).
func (q *QTable) MaxValue(s State) float64 {
	row, ok := q.rows[s]
	if !ok {
		return 0
	}
	max := row[0]
	for _, v := range row[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Len reports how many states have been materialized.
func (q *QTable) Len() int {
	return len(q.rows)
}
