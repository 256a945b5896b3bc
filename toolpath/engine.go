package toolpath

import (
	"github.com/paulhankin/mill/paths"
)

// splitPoint is a point where an offset segment is crossed, with the
// validity of the parts of the segment just before and just after it.
type splitPoint struct {
	p         paths.Vec2
	fromValid bool
	toValid   bool
	conn      Connection
	seq       int
}

// offsetSegment is one slot of the engine's arena: an edge of the source
// geometry shifted along one of its normals, or a fillet arc added at an
// outside corner.
type offsetSegment struct {
	geom paths.Segment
	src  paths.Segment
	dist float64
	hand Hand

	from, to Connection
	splits   []splitPoint

	// path is the index of the source shape, for diagnostics.
	path int
	// fixed segments belong to earlier pocket layers. They split new
	// segments but are never split or trimmed themselves.
	fixed bool
}

// towards returns the unit vector at p pointing from the segment back
// to the geometry it was offset from.
func (s *offsetSegment) towards(p paths.Vec2) paths.Vec2 {
	return s.geom.LeftNormalAt(p).Scale(-float64(s.hand))
}

// engine holds the state of one generation call. A pocket runs several
// passes over the same engine; the connection table and the history of
// finished loops carry over from pass to pass.
type engine struct {
	conns   connTable
	segs    []offsetSegment
	rings   [][]int
	history []offsetSegment
	seq     int

	miterLimit float64
	observe    func(Checkpoint, []Segment)
}

func newEngine(miterLimit float64, observe func(Checkpoint, []Segment)) *engine {
	if !(miterLimit > 0) {
		miterLimit = DefaultMiterLimit
	}
	return &engine{miterLimit: miterLimit, observe: observe}
}

// beginPass discards the segments of the previous pass.
func (e *engine) beginPass() {
	e.segs = nil
	e.rings = nil
}

// addRing offsets the edges of one closed shape by d along the given
// hand and joins the offsets in order: the end of each offset and the
// start of the following one share a connection. It reports false, adding
// nothing, if any edge cannot be offset that far.
func (e *engine) addRing(edges []paths.Segment, d float64, hand Hand, path int) bool {
	n := len(edges)
	if n == 0 {
		return false
	}
	geoms := make([]paths.Segment, n)
	for i, ed := range edges {
		g, ok := ed.Offset(float64(hand) * d)
		if !ok {
			return false
		}
		geoms[i] = g
	}
	joints := make([]Connection, n)
	for i, g := range geoms {
		joints[i] = e.conns.add(g.To())
	}
	ring := make([]int, n)
	for i, g := range geoms {
		ring[i] = len(e.segs)
		e.segs = append(e.segs, offsetSegment{
			geom: g,
			src:  edges[i],
			dist: d,
			hand: hand,
			from: joints[(i+n-1)%n],
			to:   joints[i],
			path: path,
		})
	}
	e.rings = append(e.rings, ring)
	return true
}

// addShape adds the rings of both hands for one closed shape. A hand
// whose offset would invert is skipped with a warning.
func (e *engine) addShape(edges []paths.Segment, d float64, path int) {
	for _, h := range []Hand{Left, Right} {
		if !e.addRing(edges, d, h, path) {
			Logger().Warn("offset inverts an arc; ring skipped",
				"path", path, "hand", h, "distance", d)
		}
	}
}

func (e *engine) addSplit(s *offsetSegment, p paths.Vec2, fromValid, toValid bool, c Connection) {
	s.splits = append(s.splits, splitPoint{
		p:         p,
		fromValid: fromValid,
		toValid:   toValid,
		conn:      c,
		seq:       e.seq,
	})
	e.seq++
}

// remember adds the segments of finished loops to the history that
// later passes are intersected against.
func (e *engine) remember(loops [][]run) {
	for _, l := range loops {
		for _, r := range l {
			e.history = append(e.history, offsetSegment{
				geom:  r.geom,
				dist:  r.dist,
				hand:  r.hand,
				from:  r.from,
				to:    r.to,
				fixed: true,
			})
		}
	}
}

// pass runs corner resolution, intersection, partitioning and side
// classification over the rings added since beginPass, and returns the
// closed loops on the requested side of boundary.
func (e *engine) pass(boundary []paths.Segment, side Side) [][]run {
	e.emitSegs(CheckpointOffset)
	e.resolveCorners()
	e.emitSegs(CheckpointCorners)
	e.intersectAll()
	runs := e.validRuns()
	e.emitRuns(CheckpointValid, runs)
	inside, outside := classify(runs, boundary)
	e.emitRuns(CheckpointInside, inside)
	e.emitRuns(CheckpointOutside, outside)
	picked := inside
	if side == Outside {
		picked = outside
	}
	loops := e.partition(picked)
	if e.observe != nil {
		var all []run
		for _, l := range loops {
			all = append(all, l...)
		}
		e.emitRuns(CheckpointLoops, all)
	}
	return loops
}

func (e *engine) emitSegs(c Checkpoint) {
	if e.observe == nil {
		return
	}
	out := make([]Segment, len(e.segs))
	for i, s := range e.segs {
		out[i] = Segment{Geom: s.geom, Hand: s.hand, FromConn: e.conns.find(s.from), ToConn: e.conns.find(s.to)}
	}
	e.observe(c, out)
}

func (e *engine) emitRuns(c Checkpoint, runs []run) {
	if e.observe == nil {
		return
	}
	out := make([]Segment, len(runs))
	for i, r := range runs {
		out[i] = e.segment(r)
	}
	e.observe(c, out)
}

func (e *engine) segment(r run) Segment {
	return Segment{Geom: r.geom, Hand: r.hand, FromConn: e.conns.find(r.from), ToConn: e.conns.find(r.to)}
}
