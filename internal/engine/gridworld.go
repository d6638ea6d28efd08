package engine

import "fmt"

// EnvParams are the reward-shaping and pheromone tunables of a GridWorld.
// Out-of-range pheromone values are replaced by defaults in NewGridWorld;
// see DefaultEnvParams for the canonical configuration.
type EnvParams struct {
	PherDecay       float64 // whole-field multiplicative decay per step, in (0,1)
	PherDeposit     float64 // deposit rate toward 1 at the occupied cell, in (0,1]
	PherPenalty     float64 // reward penalty weight on the occupied cell's pheromone
	ObstaclePenalty float64 // reward for landing on an obstacle cell (negative)
	WallPenalty     float64 // extra reward for attempting to leave the grid (negative)
	GoalBonus       float64 // terminal reward for reaching the goal

	// TerminateOnCollision ends the episode on a wall or obstacle hit in
	// addition to the goal. When false the agent is clamped/penalized and
	// the episode continues (the looser variant).
	TerminateOnCollision bool
}

// DefaultEnvParams returns the canonical shaping configuration.
func DefaultEnvParams() EnvParams {
	return EnvParams{
		PherDecay:            0.97,
		PherDeposit:          0.6,
		PherPenalty:          1.0,
		ObstaclePenalty:      -1.0,
		WallPenalty:          -1.0,
		GoalBonus:            50.0,
		TerminateOnCollision: true,
	}
}

// StepInfo reports how a step ended for diagnostics and termination-reason
// reporting.
type StepInfo struct {
	HitWall     bool
	HitObstacle bool
	ReachedGoal bool
}

// GridWorld owns the static grid, the agent position, and the pheromone
// field. All mutation happens through Reset and Step.
type GridWorld struct {
	grid   *Grid
	start  Position
	goal   Position
	params EnvParams

	pos  Position
	pher *PheromoneField
}

// NewGridWorld validates the grid and endpoints and returns a world
// positioned at start with a zeroed pheromone field.
func NewGridWorld(grid *Grid, start, goal Position, params EnvParams) (*GridWorld, error) {
	if grid == nil {
		return nil, fmt.Errorf("gridworld needs a grid")
	}
	if !grid.InBounds(start.X, start.Y) {
		return nil, fmt.Errorf("start (%d,%d) is outside the %dx%d grid", start.X, start.Y, grid.Width(), grid.Height())
	}
	if !grid.InBounds(goal.X, goal.Y) {
		return nil, fmt.Errorf("goal (%d,%d) is outside the %dx%d grid", goal.X, goal.Y, grid.Width(), grid.Height())
	}
	if params.PherDecay <= 0 || params.PherDecay >= 1 {
		params.PherDecay = DefaultEnvParams().PherDecay
	}
	if params.PherDeposit <= 0 || params.PherDeposit > 1 {
		params.PherDeposit = DefaultEnvParams().PherDeposit
	}
	if params.PherPenalty < 0 {
		params.PherPenalty = 0
	}
	w := &GridWorld{
		grid:   grid,
		start:  start,
		goal:   goal,
		params: params,
		pher:   NewPheromoneField(grid.Width(), grid.Height()),
	}
	w.Reset()
	return w, nil
}

// Reset puts the agent back on start and zeroes the pheromone field.
func (w *GridWorld) Reset() Position {
	w.pos = w.start
	w.pher.Reset()
	return w.pos
}

// Step applies one action: moves the agent (clamping at the border),
// shapes the reward, advances the pheromone dynamics, and reports
// termination.
func (w *GridWorld) Step(action Action) (Position, float64, bool, StepInfo) {
	dx, dy := action.Delta()
	tx, ty := w.pos.X+dx, w.pos.Y+dy

	var info StepInfo
	nx := clampInt(tx, 0, w.grid.Width()-1)
	ny := clampInt(ty, 0, w.grid.Height()-1)
	if nx != tx || ny != ty {
		info.HitWall = true
	}
	w.pos = Position{X: nx, Y: ny}

	var reward float64
	if w.grid.At(nx, ny) == CellObstacle {
		info.HitObstacle = true
		reward += w.params.ObstaclePenalty
	}
	if info.HitWall {
		reward += w.params.WallPenalty
	}

	// Decay the whole field before depositing so the visited cell ends at
	// decay*old + rate*(1 - decay*old).
	w.pher.Decay(w.params.PherDecay)
	w.pher.Deposit(nx, ny, w.params.PherDeposit)
	reward -= w.params.PherPenalty * w.pher.At(nx, ny)

	info.ReachedGoal = w.pos == w.goal
	if info.ReachedGoal {
		reward += w.params.GoalBonus
	}

	done := info.ReachedGoal
	if w.params.TerminateOnCollision && (info.HitWall || info.HitObstacle) {
		done = true
	}
	return w.pos, reward, done, info
}

func (w *GridWorld) Grid() *Grid                { return w.grid }
func (w *GridWorld) Position() Position         { return w.pos }
func (w *GridWorld) Start() Position            { return w.start }
func (w *GridWorld) Goal() Position             { return w.goal }
func (w *GridWorld) Pheromone() *PheromoneField { return w.pher }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
