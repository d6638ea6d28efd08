package engine

import (
	"context"
	"fmt"
	"math/rand"
)

// GreedyRun evaluates a learned Q-table: reset, then repeatedly take the
// argmax action (ties broken uniformly at random) until done or the step
// budget runs out. No learning updates happen; the table is only read.
// Success is true only when the episode ended by reaching the goal.
func GreedyRun(ctx context.Context, env *GridWorld, feat *Featurizer, q *QTable, maxSteps int, rng *rand.Rand, sink ProgressSink) (float64, bool) {
	if sink == nil {
		sink = NopSink{}
	}
	env.Reset()
	var total float64

	for step := 1; step <= maxSteps; step++ {
		select {
		case <-ctx.Done():
			return total, false
		default:
		}

		s := feat.State(env)
		a := Action(argmaxRand(rng, q.Row(s)))
		_, r, done, info := env.Step(a)
		total += r

		subtitle := fmt.Sprintf("t %d/%d  a=%s  r=%.3f  total=%.2f", step, maxSteps, a, r, total)
		if !sink.Report("GREEDY", subtitle, terminationDetails(done, info)...) {
			return total, false
		}

		if done {
			if info.ReachedGoal {
				sink.Report("GREEDY", fmt.Sprintf("reached goal in %d steps, total reward %.2f", step, total))
				return total, true
			}
			return total, false
		}
	}
	sink.Report("GREEDY", fmt.Sprintf("step budget exhausted, total reward %.2f", total))
	return total, false
}

// Evaluate runs a greedy rollout on the trainer's own environment and
// featurizer, reusing its random source so a fixed seed makes the whole
// train-then-evaluate sequence reproducible.
func (t *Trainer) Evaluate(ctx context.Context, q *QTable) (float64, bool) {
	return GreedyRun(ctx, t.env, t.feat, q, t.cfg.MaxSteps, t.rng, t.sink)
}
