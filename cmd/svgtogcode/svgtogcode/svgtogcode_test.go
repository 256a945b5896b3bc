package svgtogcode

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulhankin/mill/paths"
	"github.com/paulhankin/mill/toolpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustSize(t *testing.T) {
	b := paths.Bounds{Max: paths.Vec2{200, 100}}
	for _, tc := range []struct {
		desc             string
		sz, paper, delta paths.Vec2
		center           bool
		want             paths.Bounds
		wantErr          bool
	}{
		{desc: "natural size", want: paths.Bounds{Max: paths.Vec2{200, 100}}},
		{desc: "width only", sz: paths.Vec2{50, 0}, want: paths.Bounds{Max: paths.Vec2{50, 25}}},
		{desc: "height only", sz: paths.Vec2{0, 50}, want: paths.Bounds{Max: paths.Vec2{100, 50}}},
		{desc: "offset", sz: paths.Vec2{50, 0}, delta: paths.Vec2{1, 2}, want: paths.Bounds{Min: paths.Vec2{1, 2}, Max: paths.Vec2{51, 27}}},
		{desc: "centered", sz: paths.Vec2{50, 0}, paper: paths.Vec2{100, 100}, center: true, want: paths.Bounds{Min: paths.Vec2{25, 37.5}, Max: paths.Vec2{75, 62.5}}},
		{desc: "wrong aspect", sz: paths.Vec2{50, 50}, wantErr: true},
		{desc: "paper too small", sz: paths.Vec2{50, 0}, paper: paths.Vec2{40, 40}, wantErr: true},
		{desc: "half a paper", paper: paths.Vec2{40, 0}, wantErr: true},
		{desc: "center without paper", center: true, wantErr: true},
	} {
		got, err := adjustSize(tc.sz, tc.paper, tc.delta, tc.center, b)
		if tc.wantErr {
			assert.Error(t, err, tc.desc)
			continue
		}
		require.NoError(t, err, tc.desc)
		assert.Equal(t, tc.want, got, tc.desc)
	}
}

const testSVG = `<svg width="40" height="30" viewBox="0 0 40 30" xmlns="http://www.w3.org/2000/svg">
<path d="M 5 5 L 15 5 L 15 15 L 5 15 Z"/>
<circle cx="30" cy="20" r="4"/>
<line x1="20" y1="2" x2="35" y2="2"/>
</svg>`

func testConfig(op string) *Config {
	return &Config{
		Op:           op,
		ToolDiameter: 2,
		StepOver:     0.5,
		SafeZ:        5,
		Depth:        1,
		FeedRate:     500,
		PlungeRate:   100,
	}
}

func loadTest(t *testing.T) *paths.Paths {
	t.Helper()
	ps, err := paths.FromSVG(strings.NewReader(testSVG))
	require.NoError(t, err)
	require.Len(t, ps.P, 3)
	return ps
}

func TestConvertProfile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, convert(testConfig(OpOutside), loadTest(t), &buf, false))
	g := buf.String()
	assert.True(t, strings.HasPrefix(g, "G21\nG90\n"))
	assert.True(t, strings.HasSuffix(g, "M2\n"))
	assert.Contains(t, g, "G1 Z-1.000 F100")
	// The circle's outside profile is cut with counter-clockwise arcs.
	assert.Contains(t, g, "G3 ")
	assert.NotContains(t, g, "G2 ")
	// Two loops, each started after a rapid move.
	assert.Equal(t, 2, strings.Count(g, "G1 Z-1.000"))
}

func TestConvertPocketTravelsWithoutRetract(t *testing.T) {
	ps := &paths.Paths{
		Bounds: paths.Bounds{Max: paths.Vec2{10, 10}},
		P: []paths.Path{{
			V:      []paths.Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
			Closed: true,
		}},
	}
	var buf bytes.Buffer
	cfg := testConfig(OpPocket)
	cfg.Direction = toolpath.Clockwise
	require.NoError(t, convert(cfg, ps, &buf, false))
	g := buf.String()
	// Four linked rings: one plunge, one retract at the end.
	assert.Equal(t, 1, strings.Count(g, "G1 Z-1.000"))
	assert.Equal(t, 2, strings.Count(g, "G0 Z5.000"))
	assert.Contains(t, g, "G1 X2.000 Y2.000")
}

func TestConvertEngrave(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, convert(testConfig(OpEngrave), loadTest(t), &buf, false))
	g := buf.String()
	// Square, circle and line are each cut in one go.
	assert.Equal(t, 3, strings.Count(g, "G1 Z-1.000"))
	assert.NotContains(t, g, "G3 ")
}

func TestConvertEngraveSplit(t *testing.T) {
	// Splitting may break open paths apart, never the closed shapes.
	cfg := testConfig(OpEngrave)
	cfg.Split = true
	cfg.Reverse = true
	var buf bytes.Buffer
	require.NoError(t, convert(cfg, loadTest(t), &buf, false))
	assert.Equal(t, 3, strings.Count(buf.String(), "G1 Z-1.000"))
}

func TestConvertPreview(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, convert(testConfig(OpInside), loadTest(t), &buf, true))
	s := buf.String()
	assert.True(t, strings.HasPrefix(s, "<svg"))
	assert.Equal(t, 2, strings.Count(s, "<path"))
}

func TestConvertErrors(t *testing.T) {
	cfg := testConfig("drill")
	assert.Error(t, convert(cfg, loadTest(t), &bytes.Buffer{}, false))

	cfg = testConfig(OpInside)
	cfg.ToolDiameter = 0
	assert.Error(t, convert(cfg, loadTest(t), &bytes.Buffer{}, false))

	cfg = testConfig(OpPocket)
	cfg.StepOver = 2
	assert.Error(t, convert(cfg, loadTest(t), &bytes.Buffer{}, false))
}

func TestConvertFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.svg")
	require.NoError(t, os.WriteFile(in, []byte(testSVG), 0o644))
	cfg := testConfig(OpInside)
	cfg.In = in
	cfg.Out = filepath.Join(dir, "out.gcode")
	require.NoError(t, Convert(cfg))
	data, err := os.ReadFile(cfg.Out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "M2")

	cfg.In = ""
	assert.Error(t, Convert(cfg))
}
