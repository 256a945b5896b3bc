package paths

import (
	"math"
	"sort"
)

// Arc is a circular segment around C with radius R. It starts at angle
// Start and turns through Sweep radians; positive sweeps run
// counter-clockwise. |Sweep| is at most 2pi.
type Arc struct {
	C     Vec2
	R     float64
	Start float64
	Sweep float64
}

// ArcFromBulge returns the arc from a to b with the given bulge
// (tan of a quarter of the sweep).
func ArcFromBulge(a, b Vec2, bulge float64) Arc {
	chord := b.Sub(a)
	c := chord.Len()
	u := chord.Scale(1 / c)
	h := c / 2 * (1 - bulge*bulge) / (2 * bulge)
	center := a.Lerp(b, 0.5).Add(u.LeftNormal().Scale(h))
	return Arc{
		C:     center,
		R:     c / 2 * (1 + bulge*bulge) / (2 * math.Abs(bulge)),
		Start: a.Sub(center).Angle(),
		Sweep: 4 * math.Atan(bulge),
	}
}

// Clockwise reports whether the arc turns clockwise.
func (a Arc) Clockwise() bool { return a.Sweep < 0 }

// Center returns the centre of the arc's circle.
func (a Arc) Center() Vec2 { return a.C }

func (a Arc) point(t float64) Vec2 { return a.C.Add(Polar(a.R, t)) }

func (a Arc) From() Vec2      { return a.point(a.Start) }
func (a Arc) To() Vec2        { return a.point(a.Start + a.Sweep) }
func (a Arc) Length() float64 { return a.R * math.Abs(a.Sweep) }

func (a Arc) Reverse() Segment {
	return Arc{C: a.C, R: a.R, Start: a.Start + a.Sweep, Sweep: -a.Sweep}
}

func (a Arc) sign() float64 {
	if a.Sweep < 0 {
		return -1
	}
	return 1
}

// turned returns how far, in radians, angle t is from the start of
// the arc, measured in its direction of travel, in [0, 2pi).
func (a Arc) turned(t float64) float64 {
	d := PositiveAngle((t - a.Start) * a.sign())
	if d > 2*math.Pi-epsilon/a.R && math.Abs(a.Sweep) < 2*math.Pi-epsilon/a.R {
		d = 0
	}
	return d
}

func (a Arc) containsAngle(t float64) bool {
	return a.turned(t) <= math.Abs(a.Sweep)+epsilon/a.R
}

func (a Arc) DirAt(p Vec2) Vec2 {
	t := p.Sub(a.C).Angle()
	return Vec2{-math.Sin(t), math.Cos(t)}.Scale(a.sign())
}

func (a Arc) LeftNormalAt(p Vec2) Vec2 { return a.DirAt(p).LeftNormal() }

func (a Arc) Split(p Vec2) (Segment, Segment) {
	return a.Resize(a.From(), p), a.Resize(p, a.To())
}

func (a Arc) Resize(from, to Vec2) Segment {
	start := from.Sub(a.C).Angle()
	d := PositiveAngle((to.Sub(a.C).Angle() - start) * a.sign())
	if d > 2*math.Pi-epsilon/a.R {
		d = 0
	}
	return Arc{C: a.C, R: a.R, Start: start, Sweep: d * a.sign()}
}

func (a Arc) Offset(d float64) (Segment, bool) {
	r := a.R - d*a.sign()
	if r < MinPointDistance {
		return a, false
	}
	return Arc{C: a.C, R: r, Start: a.Start, Sweep: a.Sweep}, true
}

func (a Arc) Project(p Vec2) (Vec2, bool) {
	v := p.Sub(a.C)
	if v.Len() < epsilon {
		return Vec2{}, false
	}
	t := v.Angle()
	if !a.containsAngle(t) {
		return Vec2{}, false
	}
	return a.point(t), true
}

func (a Arc) Distance(p Vec2) float64 {
	v := p.Sub(a.C)
	if v.Len() >= epsilon && a.containsAngle(v.Angle()) {
		return math.Abs(v.Len() - a.R)
	}
	return math.Min(p.Dist(a.From()), p.Dist(a.To()))
}

func (a Arc) Param(p Vec2) float64 {
	return a.R * a.turned(p.Sub(a.C).Angle())
}

// IsWindingMatch splits the arc at its top and bottom so that each
// piece is monotone in y, and counts the crossings of the pieces.
func (a Arc) IsWindingMatch(p Vec2) bool {
	cuts := []float64{0}
	for _, t := range []float64{math.Pi / 2, -math.Pi / 2} {
		if d := a.turned(t); d > 0 && d < math.Abs(a.Sweep) {
			cuts = append(cuts, d)
		}
	}
	sort.Float64s(cuts)
	cuts = append(cuts, math.Abs(a.Sweep))
	odd := false
	for i := 0; i+1 < len(cuts); i++ {
		s := a.point(a.Start + cuts[i]*a.sign())
		e := a.point(a.Start + cuts[i+1]*a.sign())
		if (s[1] > p[1]) == (e[1] > p[1]) {
			continue
		}
		dy := p[1] - a.C[1]
		dx := math.Sqrt(math.Max(0, a.R*a.R-dy*dy))
		mid := a.Start + (cuts[i]+cuts[i+1])/2*a.sign()
		x := a.C[0] + dx
		if math.Cos(mid) < 0 {
			x = a.C[0] - dx
		}
		if x > p[0] {
			odd = !odd
		}
	}
	return odd
}

func (a Arc) Flatten(tol float64) []Vec2 {
	n := 1
	if tol > 0 && tol < a.R {
		step := 2 * math.Acos(1-tol/a.R)
		n = int(math.Ceil(math.Abs(a.Sweep) / step))
	}
	if n < 1 {
		n = 1
	}
	r := make([]Vec2, 0, n)
	for i := 1; i <= n; i++ {
		r = append(r, a.point(a.Start+a.Sweep*float64(i)/float64(n)))
	}
	return r
}
