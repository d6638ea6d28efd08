package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ant-rl-go/internal/config"
	"ant-rl-go/internal/engine"
	"ant-rl-go/internal/render"
	"ant-rl-go/internal/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "antrl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "antrl",
		Short:         "Tabular Q-learning on a pheromone gridworld",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTrainCmd())
	return root
}

type trainOptions struct {
	envs      config.Envs
	visualize bool
	noChart   bool
	tileRatio bool
	looseEnd  bool
	radius    int
	showEvery int
}

func newTrainCmd() *cobra.Command {
	opts := trainOptions{envs: config.Load(), radius: 1, showEvery: 1}

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train on a random grid, then run a greedy evaluation pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(cmd, opts)
		},
	}

	fs := cmd.Flags()
	e := &opts.envs
	fs.IntVar(&e.Episodes, "episodes", e.Episodes, "number of training episodes")
	fs.IntVar(&e.MaxSteps, "max-steps", e.MaxSteps, "step budget per episode")
	fs.Int64Var(&e.Seed, "seed", e.Seed, "deterministic random seed")
	fs.Float64Var(&e.Alpha, "alpha", e.Alpha, "learning rate (0-1]")
	fs.Float64Var(&e.Gamma, "gamma", e.Gamma, "discount factor (0-1]")
	fs.Float64Var(&e.Epsilon, "epsilon", e.Epsilon, "initial exploration rate")
	fs.Float64Var(&e.EpsilonMin, "epsilon-min", e.EpsilonMin, "exploration floor")
	fs.Float64Var(&e.EpsilonDecay, "epsilon-decay", e.EpsilonDecay, "per-episode epsilon multiplier")
	fs.Float64Var(&e.PherDecay, "pher-decay", e.PherDecay, "pheromone field decay per step")
	fs.Float64Var(&e.PherDeposit, "pher-deposit", e.PherDeposit, "pheromone deposit rate")
	fs.Float64Var(&e.PherPenalty, "pher-penalty", e.PherPenalty, "loop-avoidance penalty weight")
	fs.Float64Var(&e.ObstaclePenalty, "obstacle-penalty", e.ObstaclePenalty, "reward for stepping on an obstacle")
	fs.Float64Var(&e.WallPenalty, "wall-penalty", e.WallPenalty, "extra reward for hitting the border")
	fs.Float64Var(&e.GoalBonus, "goal-bonus", e.GoalBonus, "terminal reward for reaching the goal")
	fs.IntVar(&e.Width, "width", e.Width, "grid width")
	fs.IntVar(&e.Height, "height", e.Height, "grid height")
	fs.Float64Var(&e.FreeProb, "free-prob", e.FreeProb, "probability an interior cell is free")
	fs.IntVar(&e.DelayMs, "delay-ms", e.DelayMs, "render delay per step in milliseconds")
	fs.StringVar(&e.ChartDir, "chart-dir", e.ChartDir, "directory for the reward chart")
	fs.IntVar(&opts.radius, "vision-radius", opts.radius, "featurizer vision radius")
	fs.BoolVar(&opts.visualize, "visualize", false, "render every step to the terminal")
	fs.IntVar(&opts.showEvery, "show-every", opts.showEvery, "render only every Nth episode")
	fs.BoolVar(&opts.noChart, "no-chart", false, "skip writing the reward chart")
	fs.BoolVar(&opts.tileRatio, "tile-ratio", false, "use ratio tile normalization instead of softmax")
	fs.BoolVar(&opts.looseEnd, "no-collision-end", false, "keep episodes running through wall/obstacle hits")
	return cmd
}

func runTrain(cmd *cobra.Command, opts trainOptions) error {
	e := opts.envs
	runID := uuid.NewString()
	log.Printf("[ANTRL] [INFO] run %s: %dx%d grid, %d episodes, seed %d", runID, e.Width, e.Height, e.Episodes, e.Seed)

	gridRng := rand.New(rand.NewSource(e.Seed))
	grid, err := engine.RandomGrid(e.Width, e.Height, e.FreeProb, gridRng)
	if err != nil {
		return err
	}
	start := engine.Position{X: 1, Y: 1}
	goal := engine.Position{X: e.Width - 2, Y: e.Height - 2}

	params := engine.EnvParams{
		PherDecay:            e.PherDecay,
		PherDeposit:          e.PherDeposit,
		PherPenalty:          e.PherPenalty,
		ObstaclePenalty:      e.ObstaclePenalty,
		WallPenalty:          e.WallPenalty,
		GoalBonus:            e.GoalBonus,
		TerminateOnCollision: !opts.looseEnd,
	}
	env, err := engine.NewGridWorld(grid, start, goal, params)
	if err != nil {
		return err
	}

	tileNorm := engine.TileNormSoftmax
	if opts.tileRatio {
		tileNorm = engine.TileNormRatio
	}
	cfg := engine.Config{
		Episodes:     e.Episodes,
		MaxSteps:     e.MaxSteps,
		Seed:         e.Seed,
		Alpha:        e.Alpha,
		Gamma:        e.Gamma,
		Epsilon:      e.Epsilon,
		EpsilonMin:   e.EpsilonMin,
		EpsilonDecay: e.EpsilonDecay,
		VisionRadius: opts.radius,
		TileNorm:     tileNorm,
		ReportEvery:  opts.showEvery,
	}

	var sink engine.ProgressSink
	if opts.visualize {
		sink = render.NewANSIRenderer(env, cmd.OutOrStdout(), time.Duration(e.DelayMs)*time.Millisecond, true)
		defer sink.Close()
	}

	trainer, err := engine.NewTrainer(cfg, env, sink)
	if err != nil {
		return err
	}

	res := trainer.Train(cmd.Context())
	if res.Stopped {
		log.Printf("[ANTRL] [WARN] run %s stopped early after %d episodes", runID, len(res.Episodes))
	}
	log.Printf("[ANTRL] [INFO] run %s: %d/%d episodes reached the goal, %d states learned",
		runID, res.SuccessCount, len(res.Episodes), res.Q.Len())

	if !opts.noChart {
		if err := writeChart(e.ChartDir, runID, res.Episodes); err != nil {
			log.Printf("[ANTRL] [WARN] reward chart not written: %v", err)
		}
	}

	total, success := trainer.Evaluate(cmd.Context(), res.Q)
	log.Printf("[ANTRL] [INFO] run %s greedy rollout: reward %.2f, success %t", runID, total, success)
	return nil
}

func writeChart(dir, runID string, episodes []engine.EpisodeStats) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("reward_%s.html", runID))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := report.WriteRewardChart(f, runID, episodes); err != nil {
		return err
	}
	log.Printf("[ANTRL] [INFO] reward chart written to %s", path)
	return nil
}
