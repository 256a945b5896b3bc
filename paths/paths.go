// Package paths provides tools for manipulating 2d paths consisting
// of line segments and circular arcs.
package paths

import "math"

// MinPointDistance is the distance below which two points are treated
// as the same place.
const MinPointDistance = 1e-4

// A Path is a contiguous series of edges, from the first point in the
// V slice to the last. A closed path has an extra edge from the last
// point back to the first.
type Path struct {
	V []Vec2

	// Closed is set when the path returns to its first point.
	Closed bool

	// Bulge optionally has one entry per edge. A non-zero bulge makes
	// the edge a circular arc whose sweep is 4*atan(bulge); positive
	// values sweep counter-clockwise.
	Bulge []float64
}

// Bounds describes an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec2
}

// Paths is a set of paths, along with a view bounds.
type Paths struct {
	Bounds Bounds
	P      []Path
}

// IsClosed reports whether the path encloses an area: it is marked
// closed, or its last vertex repeats the first, and it has at least
// three distinct vertices.
func (p Path) IsClosed() bool {
	n := len(p.V)
	if n > 1 && p.V[0].Dist(p.V[n-1]) < MinPointDistance {
		n--
	} else if !p.Closed {
		return false
	}
	distinct := 0
	for i := 0; i < n; i++ {
		if i == 0 || p.V[i].Dist(p.V[i-1]) >= MinPointDistance {
			distinct++
		}
	}
	return distinct >= 3
}

func (p Path) bulge(i int) float64 {
	if i < len(p.Bulge) {
		return p.Bulge[i]
	}
	return 0
}

// Edges returns the edges of the path as segments. Zero-length edges
// are dropped. For closed paths the closing edge is included (unless
// the last vertex already repeats the first).
func (p Path) Edges() []Segment {
	n := len(p.V)
	closed := p.IsClosed()
	if closed && n > 1 && p.V[0].Dist(p.V[n-1]) < MinPointDistance {
		n--
	}
	var edges []Segment
	add := func(i, j int) {
		a, b := p.V[i], p.V[j]
		if a.Dist(b) < MinPointDistance {
			return
		}
		if bg := p.bulge(i); bg != 0 {
			edges = append(edges, ArcFromBulge(a, b, bg))
			return
		}
		edges = append(edges, Line{A: a, B: b})
	}
	for i := 0; i+1 < n; i++ {
		add(i, i+1)
	}
	if closed && n > 2 {
		add(n-1, 0)
	}
	return edges
}

// Reversed returns the path traversed the other way. Arcs keep their
// shape: their bulges are negated and moved with their edges.
func (p Path) Reversed() Path {
	n := len(p.V)
	r := Path{V: make([]Vec2, n), Closed: p.Closed}
	for i, v := range p.V {
		r.V[n-1-i] = v
	}
	if len(p.Bulge) == 0 {
		return r
	}
	r.Bulge = make([]float64, n)
	for j := 0; j+1 < n; j++ {
		r.Bulge[j] = -p.bulge(n - 2 - j)
	}
	if n > 0 {
		r.Bulge[n-1] = -p.bulge(n - 1)
	}
	return r
}

// Flatten returns a polyline copy of the path with every arc replaced
// by line segments that stay within tol of it.
func (p Path) Flatten(tol float64) Path {
	if len(p.Bulge) == 0 {
		return Path{V: append([]Vec2{}, p.V...), Closed: p.Closed}
	}
	edges := p.Edges()
	if len(edges) == 0 {
		return Path{V: append([]Vec2{}, p.V...), Closed: p.Closed}
	}
	r := Path{V: []Vec2{edges[0].From()}}
	for _, e := range edges {
		r.V = append(r.V, e.Flatten(tol)...)
	}
	if p.IsClosed() {
		r.V = r.V[:len(r.V)-1]
		r.Closed = true
	}
	return r
}

// Circle returns a closed path made of four quarter arcs, traversed
// counter-clockwise starting at the rightmost point.
func Circle(c Vec2, r float64) Path {
	q := math.Tan(math.Pi / 8)
	return Path{
		V: []Vec2{
			{c[0] + r, c[1]},
			{c[0], c[1] + r},
			{c[0] - r, c[1]},
			{c[0], c[1] - r},
		},
		Closed: true,
		Bulge:  []float64{q, q, q, q},
	}
}

// boundsTolerance is how closely arcs are followed when measuring bounds.
const boundsTolerance = 0.01

// TightenBounds adjusts the bounds to exactly contain the paths.
// If there are no paths, the bounds are set to zero.
func (ps *Paths) TightenBounds() {
	inf := math.Inf(1)
	min := Vec2{inf, inf}
	max := Vec2{-inf, -inf}
	i := 0
	for _, p := range ps.P {
		for _, v := range p.Flatten(boundsTolerance).V {
			i++
			min[0] = math.Min(min[0], v[0])
			min[1] = math.Min(min[1], v[1])
			max[0] = math.Max(max[0], v[0])
			max[1] = math.Max(max[1], v[1])
		}
	}
	if i == 0 {
		ps.Bounds = Bounds{}
		return
	}
	ps.Bounds = Bounds{
		Min: min,
		Max: max,
	}
}

// Transform resizes all paths so that the rectangle forming the
// current bounds is the size of the new bounds. The bounds
// are also updated to the new bounds.
// Arcs stay circular only when the scale is the same in x and y.
func (ps *Paths) Transform(nb Bounds) {
	ob := ps.Bounds
	for _, p := range ps.P {
		for i, v := range p.V {
			x, y := v[0], v[1]
			x -= ob.Min[0]
			x /= ob.Max[0] - ob.Min[0]
			x *= nb.Max[0] - nb.Min[0]
			x += nb.Min[0]

			y -= ob.Min[1]
			y /= ob.Max[1] - ob.Min[1]
			y *= nb.Max[1] - nb.Min[1]
			y += nb.Min[1]
			p.V[i] = [2]float64{x, y}
		}
	}
	ps.Bounds = nb
}

// Split separates the closed paths, which enclose an area, from the
// open ones.
func (ps *Paths) Split() (closed, open []Path) {
	for _, p := range ps.P {
		if p.IsClosed() {
			closed = append(closed, p)
		} else {
			open = append(open, p)
		}
	}
	return closed, open
}

// move adds a new (initially empty) path starting at x,
// unless the last path already ends at x.
func (ps *Paths) move(x Vec2) {
	if len(ps.P) == 0 {
		ps.P = append(ps.P, Path{V: []Vec2{x}})
		return
	}
	p := &ps.P[len(ps.P)-1]
	if len(p.V) > 0 && p.V[len(p.V)-1] == x {
		return
	}
	ps.P = append(ps.P, Path{V: []Vec2{x}})
}

// line extends the last path with an edge that goes to x.
func (ps *Paths) line(x Vec2) {
	p := &ps.P[len(ps.P)-1]
	p.V = append(p.V, x)
}
