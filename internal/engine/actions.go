package engine

// Action indexes one of the 8 compass moves, diagonals included.
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionUpLeft
	ActionUpRight
	ActionDownLeft
	ActionDownRight
)

// NumActions is the size of every Q-table row.
const NumActions = 8

var actionDeltas = [NumActions][2]int{
	{0, -1},
	{0, 1},
	{-1, 0},
	{1, 0},
	{-1, -1},
	{1, -1},
	{-1, 1},
	{1, 1},
}

var actionNames = [NumActions]string{"UP", "DOWN", "LEFT", "RIGHT", "UL", "UR", "DL", "DR"}

// Delta returns the (dx, dy) displacement for the action. Unknown indexes
// resolve to no movement rather than panicking.
func (a Action) Delta() (int, int) {
	if a < 0 || a >= NumActions {
		return 0, 0
	}
	d := actionDeltas[a]
	return d[0], d[1]
}

func (a Action) String() string {
	if a < 0 || a >= NumActions {
		return "NONE"
	}
	return actionNames[a]
}
