package toolpath

import (
	"sort"

	"github.com/paulhankin/mill/paths"
)

// DefaultMiterLimit is the default limit on how far, in tool radii, a
// mitered corner may reach from the vertex it goes round.
const DefaultMiterLimit = 2.0

// cornerTolerance keeps segments that merely touch the tool disc at a
// corner from counting as blocking it.
const cornerTolerance = 1e-9

func (e *engine) resolveCorners() {
	for _, ring := range e.rings {
		for i, ci := range ring {
			e.resolveCorner(ci, ring[(i+1)%len(ring)])
		}
	}
}

// resolveCorner closes the gap between two consecutive offsets of a ring
// at an outside corner. The tool goes round the source vertex on a fillet
// arc. If another offset segment cuts into the tool disc at the vertex,
// the first such segment in arena order is split where it crosses the
// fillet and the corner is rewired through those points. Otherwise the
// two offsets are extended to meet if that stays within the miter limit,
// and joined by the fillet arc if not.
func (e *engine) resolveCorner(ci, ni int) {
	cur, next := e.segs[ci], e.segs[ni]
	p, q := cur.geom.To(), next.geom.From()
	if p.Dist(q) < paths.MinPointDistance {
		return
	}
	din := cur.src.DirAt(cur.src.To())
	dout := next.src.DirAt(next.src.From())
	if din.Cross(dout)*float64(cur.hand) >= 0 {
		// The edges turn towards this hand: the offsets overlap and
		// intersection trims them. Curved offsets can miss each other,
		// and then the gap is bridged.
		if len(paths.Intersect(cur.geom, next.geom, false)) == 0 {
			e.bridge(ci, ni)
		}
		return
	}
	v := cur.src.To()
	sign := -float64(cur.hand)
	a1 := p.Sub(v).Angle()
	fillet := paths.Arc{
		C:     v,
		R:     cur.dist,
		Start: a1,
		Sweep: paths.PositiveAngle((q.Sub(v).Angle()-a1)*sign) * sign,
	}
	if e.blockCorner(ci, ni, fillet) {
		return
	}
	if m, ok := e.miterPoint(cur.geom, next.geom, v); ok {
		e.segs[ci].geom = cur.geom.Resize(cur.geom.From(), m)
		e.segs[ni].geom = next.geom.Resize(m, next.geom.To())
		e.conns.move(cur.to, m)
		return
	}
	c := e.conns.add(q)
	e.addFillet(&cur, fillet, cur.to, c)
	e.segs[ni].from = c
}

// bridge joins the end of cur to the start of next with a line, so the
// two no longer share a connection across the gap.
func (e *engine) bridge(ci, ni int) {
	cur := e.segs[ci]
	p, q := cur.geom.To(), e.segs[ni].geom.From()
	c := e.conns.add(q)
	e.addFillet(&cur, paths.Line{A: p, B: q}, cur.to, c)
	e.segs[ni].from = c
}

// miterPoint returns where the extensions of a and b meet closest to v,
// if that is ahead of a's end and behind b's start and within the miter
// limit.
func (e *engine) miterPoint(a, b paths.Segment, v paths.Vec2) (paths.Vec2, bool) {
	p, q := a.To(), b.From()
	limit := e.miterLimit * v.Dist(p)
	best, found := paths.Vec2{}, false
	for _, m := range paths.Intersect(a, b, true) {
		if m.Dist(v) > limit {
			continue
		}
		if m.Sub(p).Dot(a.DirAt(p)) < 0 || q.Sub(m).Dot(b.DirAt(q)) < 0 {
			continue
		}
		if !found || m.Dist(v) < best.Dist(v) {
			best, found = m, true
		}
	}
	return best, found
}

// blockCorner looks for an offset segment that cuts into the fillet at
// a corner and rewires the corner through it.
func (e *engine) blockCorner(ci, ni int, fillet paths.Arc) bool {
	v, r := fillet.C, fillet.R
	for k := range e.segs {
		if k == ci || k == ni {
			continue
		}
		o := e.segs[k].geom
		foot, ok := o.Project(v)
		if !ok || foot.Dist(v) >= r-cornerTolerance {
			continue
		}
		hits := paths.Intersect(o, fillet, false)
		if len(hits) == 0 {
			continue
		}
		sort.SliceStable(hits, func(i, j int) bool {
			return fillet.Param(hits[i]) < fillet.Param(hits[j])
		})
		conns := make([]Connection, len(hits))
		for j, h := range hits {
			conns[j] = e.conns.add(h)
			// Entering the tool disc, the part before the hit is clear.
			entering := o.DirAt(h).Dot(h.Sub(v)) < 0
			e.addSplit(&e.segs[k], h, entering, !entering, conns[j])
		}
		last := len(hits) - 1
		e.rewire(ci, ni, fillet, hits[0], conns[0], hits[last], conns[last])
		return true
	}
	return false
}

// rewire replaces the joint between cur and next with two partial fillet
// arcs: one from the end of cur to the first hit, and one from the last
// hit to the start of next. A partial arc of no length becomes a direct
// connection.
func (e *engine) rewire(ci, ni int, fillet paths.Arc, ha paths.Vec2, ca Connection, hb paths.Vec2, cb Connection) {
	cur, next := e.segs[ci], e.segs[ni]
	p, q := cur.geom.To(), next.geom.From()
	if p.Dist(ha) < paths.MinPointDistance {
		e.segs[ci].to = ca
	} else {
		e.addFillet(&cur, fillet.Resize(p, ha), cur.to, ca)
	}
	if hb.Dist(q) < paths.MinPointDistance {
		e.segs[ni].from = cb
	} else {
		c := e.conns.add(q)
		e.addFillet(&cur, fillet.Resize(hb, q), cb, c)
		e.segs[ni].from = c
	}
}

// addFillet appends a joining segment, usually a fillet arc, going round
// the end vertex of cur's source edge.
func (e *engine) addFillet(cur *offsetSegment, arc paths.Segment, from, to Connection) {
	v := cur.src.To()
	e.segs = append(e.segs, offsetSegment{
		geom: arc,
		src:  paths.Line{A: v, B: v},
		dist: cur.dist,
		hand: cur.hand,
		from: from,
		to:   to,
		path: cur.path,
	})
}
