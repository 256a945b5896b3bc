package paths

import "math"

// A Segment is a directed edge of a path: a Line or an Arc.
type Segment interface {
	From() Vec2
	To() Vec2
	Length() float64

	// DirAt returns the unit direction of travel at p, which
	// should lie on the segment.
	DirAt(p Vec2) Vec2
	// LeftNormalAt returns the unit normal to the left of the
	// direction of travel at p.
	LeftNormalAt(p Vec2) Vec2

	// Reverse returns the same segment traversed the other way.
	Reverse() Segment
	// Split cuts the segment in two at p.
	Split(p Vec2) (Segment, Segment)
	// Resize returns the part of the segment's line or circle that
	// runs from a to b, keeping the direction of travel.
	Resize(a, b Vec2) Segment
	// Offset returns a copy shifted by d along the left normal
	// (negative d shifts right). It fails if the copy would invert.
	Offset(d float64) (Segment, bool)

	// Project returns the foot of the perpendicular from p, if it
	// lies within the segment.
	Project(p Vec2) (Vec2, bool)
	// Distance returns the distance from p to the nearest point of
	// the segment.
	Distance(p Vec2) float64
	// Param returns how far along the segment p (assumed to lie on
	// it) is from the start.
	Param(p Vec2) float64
	// IsWindingMatch reports whether the segment crosses the ray
	// running from p in the +x direction an odd number of times.
	IsWindingMatch(p Vec2) bool

	// Flatten returns points along the segment, excluding From and
	// including To, such that the polyline is within tol of it.
	Flatten(tol float64) []Vec2
}

// Contains reports whether p lies inside the region bounded by the
// given edges, using the even-odd rule.
func Contains(edges []Segment, p Vec2) bool {
	in := false
	for _, e := range edges {
		if e.IsWindingMatch(p) {
			in = !in
		}
	}
	return in
}

// Midpoint returns the point halfway along s.
func Midpoint(s Segment) Vec2 {
	switch s := s.(type) {
	case Line:
		return s.A.Lerp(s.B, 0.5)
	case Arc:
		return s.point(s.Start + s.Sweep/2)
	}
	return s.From().Lerp(s.To(), 0.5)
}

// Intersect returns the points where a and b cross. Parallel lines and
// concentric arcs never intersect. When extend is set, the extents of
// the segments are ignored and their full lines or circles are used.
func Intersect(a, b Segment, extend bool) []Vec2 {
	switch a := a.(type) {
	case Line:
		switch b := b.(type) {
		case Line:
			return intersectLines(a, b, extend)
		case Arc:
			return intersectLineArc(a, b, extend)
		}
	case Arc:
		switch b := b.(type) {
		case Line:
			return intersectLineArc(b, a, extend)
		case Arc:
			return intersectArcs(a, b, extend)
		}
	}
	return nil
}

func intersectLines(a, b Line, extend bool) []Vec2 {
	d1 := a.B.Sub(a.A)
	d2 := b.B.Sub(b.A)
	l1, l2 := d1.Len(), d2.Len()
	den := d1.Cross(d2)
	if l1 == 0 || l2 == 0 || math.Abs(den) <= epsilon*l1*l2 {
		return nil
	}
	w := b.A.Sub(a.A)
	t := w.Cross(d2) / den
	u := w.Cross(d1) / den
	if !extend {
		if t*l1 < -epsilon || t*l1 > l1+epsilon || u*l2 < -epsilon || u*l2 > l2+epsilon {
			return nil
		}
		t = math.Max(0, math.Min(1, t))
	}
	return []Vec2{a.A.Add(d1.Scale(t))}
}

func intersectLineArc(l Line, c Arc, extend bool) []Vec2 {
	d := l.B.Sub(l.A)
	ll := d.Len()
	if ll == 0 {
		return nil
	}
	f := l.A.Sub(c.C)
	qa := d.Dot(d)
	qb := 2 * f.Dot(d)
	qc := f.Dot(f) - c.R*c.R
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		if disc < -epsilon*qa {
			return nil
		}
		disc = 0
	}
	sq := math.Sqrt(disc)
	ts := []float64{(-qb - sq) / (2 * qa)}
	if sq > 0 {
		ts = append(ts, (-qb+sq)/(2*qa))
	}
	var r []Vec2
	for _, t := range ts {
		if !extend && (t*ll < -epsilon || t*ll > ll+epsilon) {
			continue
		}
		p := l.A.Add(d.Scale(t))
		if !extend && !c.containsAngle(p.Sub(c.C).Angle()) {
			continue
		}
		r = append(r, p)
	}
	return r
}

func intersectArcs(a, b Arc, extend bool) []Vec2 {
	dv := b.C.Sub(a.C)
	d := dv.Len()
	if d < epsilon {
		return nil
	}
	if d > a.R+b.R+epsilon || d < math.Abs(a.R-b.R)-epsilon {
		return nil
	}
	x := (d*d + a.R*a.R - b.R*b.R) / (2 * d)
	h2 := a.R*a.R - x*x
	if h2 < 0 {
		h2 = 0
	}
	h := math.Sqrt(h2)
	u := dv.Scale(1 / d)
	m := a.C.Add(u.Scale(x))
	cands := []Vec2{m.Add(u.LeftNormal().Scale(h))}
	if h > epsilon {
		cands = append(cands, m.Add(u.RightNormal().Scale(h)))
	}
	if extend {
		return cands
	}
	var r []Vec2
	for _, p := range cands {
		if a.containsAngle(p.Sub(a.C).Angle()) && b.containsAngle(p.Sub(b.C).Angle()) {
			r = append(r, p)
		}
	}
	return r
}
