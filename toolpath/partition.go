package toolpath

import (
	"sort"

	"github.com/paulhankin/mill/paths"
)

// clearanceTolerance absorbs rounding when checking that a run keeps the
// offset distance from the boundary.
const clearanceTolerance = 1e-6

// run is a valid piece of an offset segment, between two connections.
type run struct {
	geom     paths.Segment
	hand     Hand
	dist     float64
	from, to Connection
}

func (r run) flipped() run {
	return run{geom: r.geom.Reverse(), hand: -r.hand, dist: r.dist, from: r.to, to: r.from}
}

// validRuns cuts every segment of the pass at its split points and keeps
// the pieces both of whose ends are valid.
func (e *engine) validRuns() []run {
	var out []run
	for i := range e.segs {
		out = e.appendRuns(out, &e.segs[i])
	}
	return out
}

// splitGroup is a group of coincident split points on one segment.
type splitGroup struct {
	p         paths.Vec2
	t         float64
	conn      Connection
	fromValid bool
	toValid   bool
}

func (e *engine) appendRuns(out []run, s *offsetSegment) []run {
	length := s.geom.Length()
	if length < paths.MinPointDistance {
		return out
	}
	if len(s.splits) == 0 {
		return append(out, run{geom: s.geom, hand: s.hand, dist: s.dist, from: s.from, to: s.to})
	}

	type indexed struct {
		sp splitPoint
		t  float64
	}
	sps := make([]indexed, len(s.splits))
	for i, sp := range s.splits {
		sps[i] = indexed{sp: sp, t: s.geom.Param(sp.p)}
	}
	// Splits are appended in construction order, so a stable sort breaks
	// ties by it.
	sort.SliceStable(sps, func(i, j int) bool { return sps[i].t < sps[j].t })

	var groups []splitGroup
	for _, x := range sps {
		if n := len(groups); n > 0 && x.t-groups[n-1].t < paths.MinPointDistance {
			g := &groups[n-1]
			g.fromValid = g.fromValid && x.sp.fromValid
			g.toValid = g.toValid && x.sp.toValid
			e.conns.unify(g.conn, x.sp.conn)
			continue
		}
		groups = append(groups, splitGroup{
			p:         x.sp.p,
			t:         x.t,
			conn:      x.sp.conn,
			fromValid: x.sp.fromValid,
			toValid:   x.sp.toValid,
		})
	}
	// Splits on an end of the segment are the same place as that end.
	if groups[0].t < paths.MinPointDistance {
		e.conns.unify(s.from, groups[0].conn)
	}
	if last := groups[len(groups)-1]; length-last.t < paths.MinPointDistance {
		e.conns.unify(s.to, last.conn)
	}

	g := len(groups)
	for k := 0; k <= g; k++ {
		if k > 0 && !groups[k-1].toValid {
			continue
		}
		if k < g && !groups[k].fromValid {
			continue
		}
		r := run{hand: s.hand, dist: s.dist, from: s.from, to: s.to}
		t0, t1 := 0.0, length
		p0, p1 := s.geom.From(), s.geom.To()
		if k > 0 {
			t0, p0, r.from = groups[k-1].t, groups[k-1].p, groups[k-1].conn
		}
		if k < g {
			t1, p1, r.to = groups[k].t, groups[k].p, groups[k].conn
		}
		if t1-t0 < paths.MinPointDistance {
			continue
		}
		r.geom = s.geom.Resize(p0, p1)
		out = append(out, r)
	}
	return out
}

// classify sorts runs into those inside the boundary and those outside
// it, by the even-odd rule applied to both ends. Runs with one end on
// each side, and runs that pass closer to the boundary than their offset
// distance, are residue and are dropped.
func classify(runs []run, edges []paths.Segment) (inside, outside []run) {
	for _, r := range runs {
		a := paths.Contains(edges, r.geom.From())
		b := paths.Contains(edges, r.geom.To())
		if a != b || !keepsClear(r, edges) {
			continue
		}
		if a {
			inside = append(inside, r)
		} else {
			outside = append(outside, r)
		}
	}
	return inside, outside
}

func keepsClear(r run, edges []paths.Segment) bool {
	m := paths.Midpoint(r.geom)
	for _, ed := range edges {
		if ed.Distance(m) < r.dist-clearanceTolerance {
			return false
		}
	}
	return true
}
