package toolpath

import (
	"math"
	"testing"

	"github.com/paulhankin/mill/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPocketSquare(t *testing.T) {
	tps, err := ComputePocketToolpaths([]paths.Path{rect(0, 0, 10, 10)}, 1, 0.5, Original)
	require.NoError(t, err)
	require.Len(t, tps, 4)

	wantArea := []float64{64, 36, 16, 4}
	for i, tp := range tps {
		checkClosed(t, tp)
		assert.InDelta(t, wantArea[i], tp.Area(), 1e-6, "ring %d", i)
		lo := float64(i + 1)
		assert.Less(t, tp.Start().Dist(paths.Vec2{lo, lo}), paths.MinPointDistance, "ring %d start", i)
	}
	for i := 0; i+1 < len(tps); i++ {
		assert.True(t, tps[i].HasNext(), "ring %d", i)
		assert.Same(t, tps[i+1], tps[i].Next())
	}
	assert.False(t, tps[3].HasNext())
	assert.Nil(t, tps[3].Next())
}

func TestPocketDirection(t *testing.T) {
	tps, err := ComputePocketToolpaths([]paths.Path{rect(0, 0, 10, 10)}, 1, 0.5, Clockwise)
	require.NoError(t, err)
	require.Len(t, tps, 4)
	for _, tp := range tps {
		checkClosed(t, tp)
		assert.Equal(t, Clockwise, tp.Direction())
		assert.Less(t, tp.Area(), 0.0)
	}
	for i := 0; i+1 < len(tps); i++ {
		assert.Same(t, tps[i+1], tps[i].Next())
	}
}

func TestPocketRingsNested(t *testing.T) {
	// Each ring lies inside the one before it.
	tps, err := ComputePocketToolpaths([]paths.Path{rect(0, 0, 20, 12)}, 1, 0.4, Original)
	require.NoError(t, err)
	require.NotEmpty(t, tps)
	for i := 1; i < len(tps); i++ {
		outer := tps[i-1].Path().Edges()
		for _, s := range tps[i].Segments {
			assert.True(t, paths.Contains(outer, paths.Midpoint(s.Geom)), "ring %d escapes ring %d", i, i-1)
		}
		assert.Less(t, math.Abs(tps[i].Area()), math.Abs(tps[i-1].Area()))
	}
}

func TestPocketSmallCircle(t *testing.T) {
	logs := captureLogs(t)
	tps, err := ComputePocketToolpaths([]paths.Path{paths.Circle(paths.Vec2{0, 0}, 1)}, 2, 0.5, Original)
	require.NoError(t, err)
	assert.Empty(t, tps)
	assert.Contains(t, logs.String(), "shape smaller than tool")
}

func TestPocketLayerLimit(t *testing.T) {
	logs := captureLogs(t)
	g := &Generator{ToolRadius: 1, StepOver: 0.5, MaxLayers: 2}
	tps, err := g.Pocket([]paths.Path{rect(0, 0, 10, 10)}, Original)
	require.NoError(t, err)
	assert.Len(t, tps, 2)
	assert.Contains(t, logs.String(), "pocket stopped at layer limit")
}

func TestPocketBadParams(t *testing.T) {
	sq := []paths.Path{rect(0, 0, 10, 10)}
	for _, tc := range []struct {
		desc     string
		r, step  float64
		isRadius bool
	}{
		{"zero radius", 0, 0.5, true},
		{"negative radius", -2, 0.5, true},
		{"zero step", 1, 0, false},
		{"step too big", 1, 1.5, false},
		{"negative step", 1, -0.1, false},
	} {
		_, err := ComputePocketToolpaths(sq, tc.r, tc.step, Original)
		require.Error(t, err, tc.desc)
		if tc.isRadius {
			assert.ErrorIs(t, err, errToolRadius, tc.desc)
		}
	}
	_, err := ComputePocketToolpaths(sq, 1, 1, Original)
	assert.NoError(t, err, "a step of the whole diameter is allowed")
}

func TestRepairLoop(t *testing.T) {
	l := func(x0, y0, x1, y1 float64) run {
		return run{geom: paths.Line{A: paths.Vec2{x0, y0}, B: paths.Vec2{x1, y1}}}
	}
	// A square whose corners fall short of meeting, plus a sliver.
	loop := []run{
		l(0, 0, 9, 0),
		l(10, 1, 10, 10),
		l(10, 10, 10, 10.00001),
		l(10, 10, 0, 10),
		l(0, 10, 0, 0),
	}
	got := repairLoop(loop)
	require.Len(t, got, 4)
	n := len(got)
	for i, s := range got {
		assert.Less(t, s.To().Dist(got[(i+1)%n].From()), 1e-9, "gap after %d", i)
	}
	assert.Less(t, got[0].To().Dist(paths.Vec2{10, 0}), 1e-9)

	// Parallel neighbours are bridged.
	loop = []run{
		l(0, 0, 10, 0),
		l(10, 1, 0, 1),
		l(0, 1, 0, 0),
	}
	got = repairLoop(loop)
	require.Len(t, got, 4)
	assert.Equal(t, paths.Line{A: paths.Vec2{10, 0}, B: paths.Vec2{10, 1}}, got[1])
}
