// Package render draws training progress as colored text. It is an
// optional collaborator: the engine only sees it through the ProgressSink
// interface and runs identically without it.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"

	"ant-rl-go/internal/engine"
)

const clearScreen = "\033[H\033[2J"

// ANSIRenderer paints the grid, the agent, the goal, and a pheromone
// shading to a terminal on every Report call. An optional per-step delay
// paces the run for human viewing.
type ANSIRenderer struct {
	env   *engine.GridWorld
	out   io.Writer
	delay time.Duration
	clear bool
}

// NewANSIRenderer renders env to out. delay is slept inside every Report;
// clear repositions the cursor so frames overwrite each other.
func NewANSIRenderer(env *engine.GridWorld, out io.Writer, delay time.Duration, clear bool) *ANSIRenderer {
	return &ANSIRenderer{env: env, out: out, delay: delay, clear: clear}
}

// Report draws one frame. It always asks the caller to continue; stopping
// is the caller's context's job.
func (r *ANSIRenderer) Report(title, subtitle string, details ...string) bool {
	var b strings.Builder
	if r.clear {
		b.WriteString(clearScreen)
	}
	fmt.Fprintf(&b, "%s  %s\n", aurora.Bold(title), subtitle)
	for _, d := range details {
		fmt.Fprintf(&b, "  %s\n", aurora.Yellow(d))
	}
	r.frame(&b)
	fmt.Fprint(r.out, b.String())
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	return true
}

// Close is a no-op; the renderer owns no resources beyond the writer.
func (r *ANSIRenderer) Close() {}

func (r *ANSIRenderer) frame(b *strings.Builder) {
	grid := r.env.Grid()
	pher := r.env.Pheromone()
	pos := r.env.Position()
	goal := r.env.Goal()

	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			switch {
			case pos.X == x && pos.Y == y:
				fmt.Fprint(b, aurora.White("A").Bold())
			case goal.X == x && goal.Y == y:
				fmt.Fprint(b, aurora.Green("G").Bold())
			case grid.At(x, y) == engine.CellObstacle:
				fmt.Fprint(b, aurora.Red("#"))
			default:
				switch p := pher.At(x, y); {
				case p > 0.5:
					fmt.Fprint(b, aurora.Magenta("o"))
				case p > 0.05:
					fmt.Fprint(b, aurora.Cyan("o"))
				default:
					fmt.Fprint(b, aurora.Blue("."))
				}
			}
		}
		fmt.Fprintln(b)
	}
}
