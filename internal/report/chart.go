// Package report exports training statistics as HTML charts.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"ant-rl-go/internal/engine"
)

// WriteRewardChart renders the per-episode total reward and the epsilon
// schedule of one training run as a line chart.
func WriteRewardChart(w io.Writer, runID string, episodes []engine.EpisodeStats) error {
	if len(episodes) == 0 {
		return fmt.Errorf("no episodes to chart")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "episode reward",
			Subtitle: fmt.Sprintf("run %s", runID),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	labels := make([]string, 0, len(episodes))
	rewards := make([]opts.LineData, 0, len(episodes))
	epsilons := make([]opts.LineData, 0, len(episodes))
	for _, ep := range episodes {
		labels = append(labels, fmt.Sprintf("%d", ep.Episode))
		rewards = append(rewards, opts.LineData{Value: ep.Reward})
		epsilons = append(epsilons, opts.LineData{Value: ep.Epsilon})
	}

	line.SetXAxis(labels)
	line.AddSeries("total reward", rewards)
	line.AddSeries("epsilon", epsilons)

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}
