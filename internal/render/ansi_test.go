package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ant-rl-go/internal/engine"
)

func TestANSIRendererFrame(t *testing.T) {
	grid, err := engine.ParseGrid([]string{
		"111",
		"100",
		"111",
	})
	require.NoError(t, err)
	env, err := engine.NewGridWorld(grid, engine.Position{X: 1, Y: 1}, engine.Position{X: 2, Y: 1}, engine.DefaultEnvParams())
	require.NoError(t, err)

	var out strings.Builder
	r := NewANSIRenderer(env, &out, 0, false)

	cont := r.Report("TRAIN", "ep 1/1", "reached goal")
	assert.True(t, cont, "the renderer never requests a stop")

	s := out.String()
	assert.Contains(t, s, "TRAIN")
	assert.Contains(t, s, "ep 1/1")
	assert.Contains(t, s, "reached goal")
	assert.Contains(t, s, "A", "agent marker")
	assert.Contains(t, s, "G", "goal marker")
	assert.Contains(t, s, "#", "obstacle marker")
	assert.Equal(t, 5, strings.Count(s, "\n"), "header, detail, one line per grid row")
}
