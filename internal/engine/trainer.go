package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
)

// Config carries every tunable of a training run. NewTrainer replaces
// out-of-range numeric values with defaults; structural problems (bad
// grid, endpoints) surface as errors from NewGridWorld before any episode
// runs.
type Config struct {
	Episodes     int
	MaxSteps     int
	Seed         int64
	Alpha        float64
	Gamma        float64
	Epsilon      float64
	EpsilonMin   float64
	EpsilonDecay float64

	VisionRadius int
	Thresholds   []float64
	TileNorm     NormMode

	// ReportEvery reports step progress to the sink only on every Nth
	// episode.
	ReportEvery int
}

// DefaultConfig returns the canonical training configuration.
func DefaultConfig() Config {
	return Config{
		Episodes:     200,
		MaxSteps:     200,
		Seed:         1,
		Alpha:        0.2,
		Gamma:        0.95,
		Epsilon:      0.4,
		EpsilonMin:   0.01,
		EpsilonDecay: 0.995,
		VisionRadius: 1,
		ReportEvery:  1,
	}
}

// EpisodeStats summarizes one finished training episode.
type EpisodeStats struct {
	Episode     int
	Steps       int
	Reward      float64
	ReachedGoal bool
	Epsilon     float64
}

// Result is what a training run hands back: the learned table plus run
// statistics. Stopped marks a sink- or context-requested early stop; the
// table is still valid and reflects everything learned so far.
type Result struct {
	Q            *QTable
	Episodes     []EpisodeStats
	SuccessCount int
	TotalReward  float64
	TotalSteps   int
	Stopped      bool
}

// Trainer drives epsilon-greedy Q-learning over a GridWorld. It owns the
// random source, the featurizer, and the Q-table under construction; the
// environment is exclusively its own while a run is in flight.
type Trainer struct {
	cfg  Config
	rng  *rand.Rand
	env  *GridWorld
	feat *Featurizer
	sink ProgressSink
}

// NewTrainer validates and sanitizes cfg and binds the trainer to env.
// A nil sink disables progress reporting.
func NewTrainer(cfg Config, env *GridWorld, sink ProgressSink) (*Trainer, error) {
	if env == nil {
		return nil, fmt.Errorf("trainer needs an environment")
	}
	def := DefaultConfig()
	if cfg.Episodes <= 0 {
		cfg.Episodes = def.Episodes
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = def.MaxSteps
	}
	if cfg.Alpha <= 0 || cfg.Alpha > 1 {
		cfg.Alpha = def.Alpha
	}
	if cfg.Gamma <= 0 || cfg.Gamma > 1 {
		cfg.Gamma = def.Gamma
	}
	if cfg.Epsilon <= 0 || cfg.Epsilon > 1 {
		cfg.Epsilon = def.Epsilon
	}
	if cfg.EpsilonMin < 0 || cfg.EpsilonMin > cfg.Epsilon {
		cfg.EpsilonMin = def.EpsilonMin
	}
	if cfg.EpsilonDecay <= 0 || cfg.EpsilonDecay > 1 {
		cfg.EpsilonDecay = def.EpsilonDecay
	}
	if cfg.ReportEvery <= 0 {
		cfg.ReportEvery = 1
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Trainer{
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(seed)),
		env:  env,
		feat: NewFeaturizer(cfg.VisionRadius, cfg.Thresholds, cfg.TileNorm),
		sink: sink,
	}, nil
}

// Env returns the environment the trainer is bound to.
func (t *Trainer) Env() *GridWorld { return t.env }

// Featurizer returns the observation featurizer built from the config.
func (t *Trainer) Featurizer() *Featurizer { return t.feat }

// Train runs the configured number of episodes and returns the learned
// Q-table with run statistics. A cancelled context or a false return from
// the sink stops the run cleanly with the table trained so far.
func (t *Trainer) Train(ctx context.Context) Result {
	res := Result{
		Q:        NewQTable(),
		Episodes: make([]EpisodeStats, 0, t.cfg.Episodes),
	}
	eps := t.cfg.Epsilon

	for ep := 1; ep <= t.cfg.Episodes; ep++ {
		stats, stopped := t.runEpisode(ctx, res.Q, ep, eps)
		res.Episodes = append(res.Episodes, stats)
		res.TotalReward += stats.Reward
		res.TotalSteps += stats.Steps
		if stats.ReachedGoal {
			res.SuccessCount++
		}
		if stopped {
			res.Stopped = true
			return res
		}
		eps = maxFloat(t.cfg.EpsilonMin, eps*t.cfg.EpsilonDecay)
	}

	t.sink.Report("TRAIN", fmt.Sprintf("done: %d/%d episodes reached the goal", res.SuccessCount, t.cfg.Episodes))
	return res
}

func (t *Trainer) runEpisode(ctx context.Context, q *QTable, ep int, eps float64) (EpisodeStats, bool) {
	t.env.Reset()
	s := t.feat.State(t.env)
	stats := EpisodeStats{Episode: ep, Epsilon: eps}
	show := (ep-1)%t.cfg.ReportEvery == 0

	for step := 1; step <= t.cfg.MaxSteps; step++ {
		select {
		case <-ctx.Done():
			return stats, true
		default:
		}

		exploring := t.rng.Float64() < eps
		var a Action
		if exploring {
			a = Action(t.rng.Intn(NumActions))
		} else {
			a = Action(argmaxRand(t.rng, q.Row(s)))
		}

		_, r, done, info := t.env.Step(a)
		s2 := t.feat.State(t.env)
		stats.Reward += r
		stats.Steps = step

		t.updateQ(q, s, a, r, s2, done)

		if show {
			mode := "exploit"
			if exploring {
				mode = "explore"
			}
			subtitle := fmt.Sprintf("ep %d/%d  t %d/%d  a=%s (%s)  r=%.3f  total=%.2f  eps=%.3f",
				ep, t.cfg.Episodes, step, t.cfg.MaxSteps, a, mode, r, stats.Reward, eps)
			details := append(quadrantDetails(t.feat.Debug(t.env)), terminationDetails(done, info)...)
			if !t.sink.Report("TRAIN", subtitle, details...) {
				return stats, true
			}
		}

		s = s2
		if done {
			stats.ReachedGoal = info.ReachedGoal
			break
		}
	}
	return stats, false
}

// updateQ applies one Bellman update. Terminal transitions never
// bootstrap: bestNext stays 0 when done regardless of what the table
// holds for the next state.
func (t *Trainer) updateQ(q *QTable, s State, a Action, r float64, next State, done bool) {
	var bestNext float64
	if !done {
		bestNext = q.MaxValue(next)
	}
	row := q.Row(s)
	row[a] += t.cfg.Alpha * (r + t.cfg.Gamma*bestNext - row[a])
}

// quadrantDetails formats the pooled quadrant strengths as display lines.
func quadrantDetails(d FeatureDebug) []string {
	var tile, pher strings.Builder
	tile.WriteString("tile")
	pher.WriteString("pher")
	for i, name := range QuadrantNames {
		fmt.Fprintf(&tile, "  %s=%.2f", name, d.TileStrength[i])
		fmt.Fprintf(&pher, "  %s=%.2f", name, d.PherStrength[i])
	}
	return []string{tile.String(), pher.String()}
}

func terminationDetails(done bool, info StepInfo) []string {
	if !done {
		return nil
	}
	switch {
	case info.ReachedGoal:
		return []string{"reached goal"}
	case info.HitObstacle:
		return []string{"hit obstacle"}
	case info.HitWall:
		return []string{"hit wall"}
	default:
		return []string{"step budget exhausted"}
	}
}
