package toolpath

import (
	"fmt"
	"math"

	"github.com/paulhankin/mill/paths"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Segment is one piece of cut geometry in a toolpath.
type Segment struct {
	// Geom is a paths.Line or a paths.Arc.
	Geom paths.Segment
	// Hand is the normal of the source edge that the cut was offset
	// along, relative to the direction of travel.
	Hand Hand
	// FromConn and ToConn identify the joints at each end.
	FromConn, ToConn Connection
}

func (s Segment) From() paths.Vec2 { return s.Geom.From() }
func (s Segment) To() paths.Vec2   { return s.Geom.To() }

func (s Segment) flipped() Segment {
	return Segment{Geom: s.Geom.Reverse(), Hand: -s.Hand, FromConn: s.ToConn, ToConn: s.FromConn}
}

// A Toolpath is a closed loop of segments, each starting where the
// previous one ends. Pockets link their toolpaths with Next into
// sequences that can be cut without retracting the tool.
type Toolpath struct {
	Segments []Segment

	dir  Direction
	next *Toolpath
}

// HasNext reports whether the tool can travel straight on to another
// toolpath after this one.
func (t *Toolpath) HasNext() bool { return t.next != nil }

// Next returns the toolpath to travel to after this one, or nil.
func (t *Toolpath) Next() *Toolpath { return t.next }

// Start returns the point the loop starts (and ends) at.
func (t *Toolpath) Start() paths.Vec2 { return t.Segments[0].From() }

// End returns the point the loop ends at.
func (t *Toolpath) End() paths.Vec2 { return t.Segments[len(t.Segments)-1].To() }

// Direction returns the direction the loop turns in overall.
func (t *Toolpath) Direction() Direction {
	if t.dir == Original {
		if t.turning() > 0 {
			t.dir = CounterClockwise
		} else {
			t.dir = Clockwise
		}
	}
	return t.dir
}

// turning sums the turns around the loop: the sweep of each arc and the
// change of heading at each joint.
func (t *Toolpath) turning() float64 {
	sum := 0.0
	n := len(t.Segments)
	for i, s := range t.Segments {
		if a, ok := s.Geom.(paths.Arc); ok {
			sum += a.Sweep
		}
		nx := t.Segments[(i+1)%n].Geom
		d1 := s.Geom.DirAt(s.Geom.To())
		d2 := nx.DirAt(nx.From())
		sum += paths.NormalizeAngle(d2.Angle() - d1.Angle())
	}
	return sum
}

// Orient returns the toolpath traversed in direction d. If d is Original,
// or the toolpath already goes that way, it is returned unchanged.
// Otherwise a reversed copy is returned.
func (t *Toolpath) Orient(d Direction) *Toolpath {
	if d == Original || t.Direction() == d {
		return t
	}
	n := len(t.Segments)
	r := &Toolpath{Segments: make([]Segment, n), dir: d}
	for i, s := range t.Segments {
		r.Segments[n-1-i] = s.flipped()
	}
	return r
}

// Walk calls fn for each segment in order. It panics if a segment does
// not start where the previous one ended.
func (t *Toolpath) Walk(fn func(Segment)) {
	n := len(t.Segments)
	for i, s := range t.Segments {
		nx := t.Segments[(i+1)%n]
		if d := s.To().Dist(nx.From()); d >= paths.MinPointDistance {
			panic(fmt.Sprintf("toolpath: segment %d ends at %v but segment %d starts at %v", i, s.To(), (i+1)%n, nx.From()))
		}
		fn(s)
	}
}

// Path returns the loop as a closed path, with arcs given as bulges.
func (t *Toolpath) Path() paths.Path {
	p := paths.Path{Closed: true}
	arcs := false
	for _, s := range t.Segments {
		p.V = append(p.V, s.From())
		b := 0.0
		if a, ok := s.Geom.(paths.Arc); ok {
			b = math.Tan(a.Sweep / 4)
			arcs = true
		}
		p.Bulge = append(p.Bulge, b)
	}
	if !arcs {
		p.Bulge = nil
	}
	return p
}

// Ring returns the loop as a closed polygon, following arcs to within tol.
func (t *Toolpath) Ring(tol float64) orb.Ring {
	start := t.Start()
	r := orb.Ring{orb.Point(start)}
	for _, s := range t.Segments {
		for _, v := range s.Geom.Flatten(tol) {
			r = append(r, orb.Point(v))
		}
	}
	r[len(r)-1] = r[0]
	return r
}

// areaTolerance is how closely arcs are followed when measuring loops.
const areaTolerance = 1e-3

// Area returns the signed area enclosed by the loop: positive when it
// runs counter-clockwise.
func (t *Toolpath) Area() float64 {
	return planar.Area(t.Ring(areaTolerance))
}

// Bound returns the bounding box of the loop.
func (t *Toolpath) Bound() orb.Bound {
	return t.Ring(areaTolerance).Bound().Pad(areaTolerance)
}

func (e *engine) toolpaths(loops [][]run) []*Toolpath {
	tps := make([]*Toolpath, len(loops))
	for i, l := range loops {
		t := &Toolpath{Segments: make([]Segment, len(l))}
		for j, r := range l {
			t.Segments[j] = e.segment(r)
		}
		tps[i] = t
	}
	return tps
}

func orientAll(tps []*Toolpath, d Direction) []*Toolpath {
	out := make([]*Toolpath, len(tps))
	for i, t := range tps {
		out[i] = t.Orient(d)
	}
	return out
}
