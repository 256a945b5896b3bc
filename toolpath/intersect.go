package toolpath

import "github.com/paulhankin/mill/paths"

// intersectAll splits every pair of segments of the pass where they
// cross, and splits the pass's segments where they cross the history.
func (e *engine) intersectAll() {
	for i := range e.segs {
		for j := i + 1; j < len(e.segs); j++ {
			e.intersectPair(&e.segs[i], &e.segs[j])
		}
		for h := range e.history {
			e.intersectPair(&e.segs[i], &e.history[h])
		}
	}
}

// intersectPair records a split on a (and on b unless b is fixed) at each
// crossing, sharing one new connection. The part of a before the crossing
// is valid if it heads the same way as b's direction back to its source:
// there, a is moving out of the region b's tool keeps clear of.
func (e *engine) intersectPair(a, b *offsetSegment) {
	for _, x := range paths.Intersect(a.geom, b.geom, false) {
		if e.joinedAt(a, b, x) {
			continue
		}
		c := e.conns.add(x)
		av := b.towards(x).Dot(a.geom.DirAt(x)) >= 0
		e.addSplit(a, x, av, !av, c)
		if !b.fixed {
			bv := a.towards(x).Dot(b.geom.DirAt(x)) >= 0
			e.addSplit(b, x, bv, !bv, c)
		}
	}
}

// joinedAt reports whether a and b already share a connection at x,
// such as a mitered joint or a corner hit.
func (e *engine) joinedAt(a, b *offsetSegment, x paths.Vec2) bool {
	for _, ca := range e.connsOf(a) {
		if e.conns.point(ca).Dist(x) >= paths.MinPointDistance {
			continue
		}
		for _, cb := range e.connsOf(b) {
			if e.conns.same(ca, cb) {
				return true
			}
		}
	}
	return false
}

func (e *engine) connsOf(s *offsetSegment) []Connection {
	cs := make([]Connection, 0, 2+len(s.splits))
	cs = append(cs, s.from, s.to)
	for _, sp := range s.splits {
		cs = append(cs, sp.conn)
	}
	return cs
}
