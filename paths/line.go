package paths

import "math"

// Line is a straight segment from A to B.
type Line struct {
	A, B Vec2
}

func (l Line) From() Vec2       { return l.A }
func (l Line) To() Vec2         { return l.B }
func (l Line) Length() float64  { return l.A.Dist(l.B) }
func (l Line) Reverse() Segment { return Line{A: l.B, B: l.A} }

func (l Line) DirAt(Vec2) Vec2 { return l.B.Sub(l.A).Unit() }

func (l Line) LeftNormalAt(p Vec2) Vec2 { return l.DirAt(p).LeftNormal() }

func (l Line) Split(p Vec2) (Segment, Segment) {
	return Line{A: l.A, B: p}, Line{A: p, B: l.B}
}

func (l Line) Resize(a, b Vec2) Segment { return Line{A: a, B: b} }

func (l Line) Offset(d float64) (Segment, bool) {
	if l.Length() == 0 {
		return l, false
	}
	n := l.DirAt(l.A).LeftNormal().Scale(d)
	return Line{A: l.A.Add(n), B: l.B.Add(n)}, true
}

// at returns the line parameter of the foot of the perpendicular from p,
// where 0 is A and 1 is B.
func (l Line) at(p Vec2) float64 {
	d := l.B.Sub(l.A)
	dd := d.Dot(d)
	if dd == 0 {
		return 0
	}
	return p.Sub(l.A).Dot(d) / dd
}

func (l Line) Project(p Vec2) (Vec2, bool) {
	t := l.at(p)
	ll := l.Length()
	if ll == 0 || t*ll < -epsilon || t*ll > ll+epsilon {
		return Vec2{}, false
	}
	t = math.Max(0, math.Min(1, t))
	return l.A.Lerp(l.B, t), true
}

func (l Line) Distance(p Vec2) float64 {
	t := math.Max(0, math.Min(1, l.at(p)))
	return p.Dist(l.A.Lerp(l.B, t))
}

func (l Line) Param(p Vec2) float64 {
	return p.Sub(l.A).Dot(l.DirAt(p))
}

func (l Line) IsWindingMatch(p Vec2) bool {
	if (l.A[1] > p[1]) == (l.B[1] > p[1]) {
		return false
	}
	x := l.A[0] + (p[1]-l.A[1])*(l.B[0]-l.A[0])/(l.B[1]-l.A[1])
	return x > p[0]
}

func (l Line) Flatten(float64) []Vec2 { return []Vec2{l.B} }
