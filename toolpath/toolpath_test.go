package toolpath

import (
	"math"
	"testing"

	"github.com/paulhankin/mill/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square returns a counter-clockwise toolpath around the unit square at
// (x, y), starting at its lower left corner.
func square(x, y float64) *Toolpath {
	edges := rect(x, y, x+1, y+1).Edges()
	tp := &Toolpath{}
	for i, e := range edges {
		tp.Segments = append(tp.Segments, Segment{
			Geom:     e,
			Hand:     Left,
			FromConn: Connection(i),
			ToConn:   Connection((i + 1) % len(edges)),
		})
	}
	return tp
}

func TestToolpathOrient(t *testing.T) {
	tp := square(0, 0)
	assert.Equal(t, CounterClockwise, tp.Direction())
	assert.InDelta(t, 1, tp.Area(), 1e-9)

	cw := tp.Orient(Clockwise)
	require.NotSame(t, tp, cw)
	assert.Equal(t, Clockwise, cw.Direction())
	assert.InDelta(t, -1, cw.Area(), 1e-9)
	assert.Equal(t, tp.Start(), cw.Start())
	assert.Same(t, cw, cw.Orient(Clockwise))

	back := cw.Orient(CounterClockwise)
	require.Len(t, back.Segments, 4)
	for i, s := range back.Segments {
		assert.Equal(t, tp.Segments[i].Hand, s.Hand)
		assert.Equal(t, tp.Segments[i].FromConn, s.FromConn)
		assert.True(t, s.From().Dist(tp.Segments[i].From()) < 1e-12)
	}
	for _, s := range cw.Segments {
		assert.Equal(t, Right, s.Hand)
	}
}

func TestToolpathDirectionArcs(t *testing.T) {
	// A full circle made of arcs has no corners, so its direction comes
	// from the arc sweeps alone.
	tp := &Toolpath{}
	for _, e := range paths.Circle(paths.Vec2{0, 0}, 2).Edges() {
		tp.Segments = append(tp.Segments, Segment{Geom: e, Hand: Left})
	}
	assert.InDelta(t, 2*math.Pi, tp.turning(), 1e-9)
	assert.Equal(t, CounterClockwise, tp.Direction())
	cw := tp.Orient(Clockwise)
	assert.InDelta(t, -2*math.Pi, cw.turning(), 1e-9)
	checkClosed(t, cw)
}

func TestToolpathWalk(t *testing.T) {
	tp := square(0, 0)
	var got []paths.Vec2
	tp.Walk(func(s Segment) { got = append(got, s.From()) })
	assert.Equal(t, []paths.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, got)

	tp.Segments[2].Geom = paths.Line{A: paths.Vec2{1, 1.5}, B: paths.Vec2{0, 1}}
	assert.Panics(t, func() { tp.Walk(func(Segment) {}) })
}

func TestToolpathPath(t *testing.T) {
	p := square(2, 3).Path()
	assert.True(t, p.Closed)
	assert.Nil(t, p.Bulge)
	assert.Equal(t, []paths.Vec2{{2, 3}, {3, 3}, {3, 4}, {2, 4}}, p.V)

	r := square(2, 3).Ring(1e-3)
	require.Len(t, r, 5)
	assert.True(t, r.Closed())
}

func TestChain(t *testing.T) {
	a, b, c := square(0, 0), square(5, 0), square(2, 0)
	got := Chain([]*Toolpath{a, b, c}, nil)
	assert.Equal(t, []*Toolpath{a, c, b}, got)
	assert.Same(t, c, a.Next())
	assert.Same(t, b, c.Next())
	assert.False(t, b.HasNext())
}

func TestChainBlocked(t *testing.T) {
	a, b := square(0, 0), square(3, 0)
	wall := []paths.Segment{paths.Line{A: paths.Vec2{2, -5}, B: paths.Vec2{2, 5}}}
	got := Chain([]*Toolpath{a, b}, wall)
	assert.Equal(t, []*Toolpath{a, b}, got)
	assert.False(t, a.HasNext())
	assert.False(t, b.HasNext())
}

func TestChainSkipsBlockedNearest(t *testing.T) {
	// c is nearest to a but walled off, so a links to b instead. c
	// starts a chain of its own.
	a, b, c := square(0, 0), square(0, 4), square(3, 0)
	wall := []paths.Segment{paths.Line{A: paths.Vec2{2, -5}, B: paths.Vec2{2, 2}}}
	got := Chain([]*Toolpath{a, b, c}, wall)
	assert.Equal(t, []*Toolpath{a, b, c}, got)
	assert.Same(t, b, a.Next())
	assert.False(t, b.HasNext())
	assert.False(t, c.HasNext())
}

func TestConnTable(t *testing.T) {
	var ct connTable
	a := ct.add(paths.Vec2{0, 0})
	b := ct.add(paths.Vec2{1, 0})
	c := ct.add(paths.Vec2{2, 0})
	assert.False(t, ct.same(a, b))

	ct.unify(c, b)
	assert.True(t, ct.same(b, c))
	assert.Equal(t, b, ct.find(c))

	ct.unify(c, a)
	assert.True(t, ct.same(a, b))
	assert.Equal(t, a, ct.find(b))
	assert.Equal(t, a, ct.find(c))

	ct.move(a, paths.Vec2{5, 5})
	assert.Equal(t, paths.Vec2{5, 5}, ct.point(a))
	assert.Equal(t, paths.Vec2{1, 0}, ct.point(b))
}

func TestParse(t *testing.T) {
	for _, s := range []string{"inside", "outside"} {
		side, err := ParseSide(s)
		require.NoError(t, err)
		assert.Equal(t, s, side.String())
	}
	_, err := ParseSide("middle")
	assert.Error(t, err)

	for s, want := range map[string]Direction{
		"":                 Original,
		"original":         Original,
		"cw":               Clockwise,
		"clockwise":        Clockwise,
		"ccw":              CounterClockwise,
		"counterclockwise": CounterClockwise,
	} {
		d, err := ParseDirection(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, d, s)
	}
	_, err = ParseDirection("sideways")
	assert.Error(t, err)

	assert.Equal(t, "loops", CheckpointLoops.String())
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
}
