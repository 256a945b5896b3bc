package toolpath

import (
	"testing"

	"github.com/paulhankin/mill/paths"
	"github.com/stretchr/testify/assert"
)

func TestSharedConnectionNeedsMeetingEnds(t *testing.T) {
	e := newEngine(0, nil)
	c0 := e.conns.add(paths.Vec2{0, 0})
	c1 := e.conns.add(paths.Vec2{1, 0})
	c2 := e.conns.add(paths.Vec2{2, 2})
	c3 := e.conns.add(paths.Vec2{1, 1})
	line := func(a, b paths.Vec2, from, to Connection) run {
		return run{geom: paths.Line{A: a, B: b}, hand: Left, dist: 1, from: from, to: to}
	}

	tail := line(paths.Vec2{0, 0}, paths.Vec2{1, 0}, c0, c1)
	// Shares tail's end connection but starts two units away.
	gap := line(paths.Vec2{1, 2}, paths.Vec2{2, 2}, c1, c2)
	// Starts where tail ends, under another connection.
	meets := line(paths.Vec2{1, 0}, paths.Vec2{1, 1}, c3, c2)

	assert.False(t, e.joins(tail, gap))
	assert.True(t, e.joins(tail, meets))

	runs := []run{tail, gap, meets}
	k, flip := e.nextRun(runs, []bool{true, false, false}, tail)
	assert.Equal(t, 2, k)
	assert.False(t, flip)

	k, _ = e.nextRun(runs[:2], []bool{true, false}, tail)
	assert.Equal(t, -1, k)
}

func TestPartitionDropsGappedChain(t *testing.T) {
	e := newEngine(0, nil)
	a := e.conns.add(paths.Vec2{0, 0})
	b := e.conns.add(paths.Vec2{4, 0})
	c := e.conns.add(paths.Vec2{4, 4})
	runs := []run{
		{geom: paths.Line{A: paths.Vec2{0, 0}, B: paths.Vec2{4, 0}}, from: a, to: b},
		{geom: paths.Line{A: paths.Vec2{4, 0}, B: paths.Vec2{4, 4}}, from: b, to: c},
		// Connected to a by handle only: it ends short of the start.
		{geom: paths.Line{A: paths.Vec2{4, 4}, B: paths.Vec2{0, 2}}, from: c, to: a},
	}
	assert.Empty(t, e.partition(runs))

	runs[2].geom = paths.Line{A: paths.Vec2{4, 4}, B: paths.Vec2{0, 0}}
	loops := e.partition(runs)
	if assert.Len(t, loops, 1) {
		assert.Len(t, loops[0], 3)
	}
}
