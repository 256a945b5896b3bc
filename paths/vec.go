package paths

import "math"

// Vec2 is a 2-dimensional vector.
type Vec2 [2]float64

// epsilon is the tolerance used for geometric predicates.
const epsilon = 1e-9

// Add returns v+w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v[0] + w[0], v[1] + w[1]} }

// Sub returns v-w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v[0] - w[0], v[1] - w[1]} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v[0] * s, v[1] * s} }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 { return v[0]*w[0] + v[1]*w[1] }

// Cross returns the z component of the cross product of v and w.
func (v Vec2) Cross(w Vec2) float64 { return v[0]*w[1] - v[1]*w[0] }

// Len returns the length of v.
func (v Vec2) Len() float64 { return math.Hypot(v[0], v[1]) }

// Dist returns the distance between v and w.
func (v Vec2) Dist(w Vec2) float64 { return vec2dist(v, w) }

// Angle returns the direction of v in radians, in (-pi, pi].
func (v Vec2) Angle() float64 { return math.Atan2(v[1], v[0]) }

// Unit returns v scaled to length 1. The zero vector is returned as is.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v[0] / l, v[1] / l}
}

// LeftNormal returns v rotated a quarter turn counter-clockwise.
func (v Vec2) LeftNormal() Vec2 { return Vec2{-v[1], v[0]} }

// RightNormal returns v rotated a quarter turn clockwise.
func (v Vec2) RightNormal() Vec2 { return Vec2{v[1], -v[0]} }

// Lerp returns the point a fraction s of the way from v to w.
func (v Vec2) Lerp(w Vec2, s float64) Vec2 {
	return Vec2{v[0]*(1-s) + w[0]*s, v[1]*(1-s) + w[1]*s}
}

// Polar returns the point at distance r from the origin in direction a.
func Polar(r, a float64) Vec2 {
	return Vec2{r * math.Cos(a), r * math.Sin(a)}
}

// NormalizeAngle maps a into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// PositiveAngle maps a into [0, 2pi).
func PositiveAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
