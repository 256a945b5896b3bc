package toolpath

import (
	"errors"
	"fmt"

	"github.com/paulhankin/mill/paths"
)

// DefaultMaxLayers caps the number of rings a pocket may have.
const DefaultMaxLayers = 10000

// A Generator computes toolpaths for a round tool.
type Generator struct {
	// ToolRadius is the radius of the cutter. It must be positive.
	ToolRadius float64
	// StepOver is the fraction of the tool diameter that successive
	// pocket rings are apart, in (0, 1].
	StepOver float64
	// MiterLimit limits, in multiples of the tool radius, how far a
	// mitered corner may reach from its vertex. Zero means
	// DefaultMiterLimit.
	MiterLimit float64
	// MaxLayers caps the rings of a pocket. Zero means DefaultMaxLayers.
	MaxLayers int

	// Observe, if set, is called with the segments at each stage of
	// each pass.
	Observe func(Checkpoint, []Segment)
}

var errToolRadius = errors.New("tool radius must be positive")

// ComputeProfileToolpaths returns the loops that cut along the given
// side of the closed paths in ps with a tool of the given radius.
func ComputeProfileToolpaths(ps []paths.Path, toolRadius float64, side Side, dir Direction) ([]*Toolpath, error) {
	g := &Generator{ToolRadius: toolRadius}
	return g.Profile(ps, side, dir)
}

// Profile returns the loops that cut along the given side of the closed
// paths in ps, oriented in direction dir. Open paths are ignored.
func (g *Generator) Profile(ps []paths.Path, side Side, dir Direction) ([]*Toolpath, error) {
	if !(g.ToolRadius > 0) {
		return nil, fmt.Errorf("profile: %w (got %v)", errToolRadius, g.ToolRadius)
	}
	if side != Inside && side != Outside {
		return nil, fmt.Errorf("profile: unknown side %v", side)
	}
	e := newEngine(g.MiterLimit, g.Observe)
	tps := e.profile(closedShapes(ps), g.ToolRadius, side)
	return orientAll(tps, dir), nil
}

func (e *engine) profile(shapes [][]paths.Segment, r float64, side Side) []*Toolpath {
	var boundary []paths.Segment
	for i, s := range shapes {
		boundary = append(boundary, s...)
		e.addShape(s, r, i)
	}
	tps := e.toolpaths(e.pass(boundary, side))
	if side == Inside {
		warnUncut(shapes, tps)
	}
	return tps
}

// closedShapes returns the edges of each closed path in ps.
func closedShapes(ps []paths.Path) [][]paths.Segment {
	var shapes [][]paths.Segment
	for i, p := range ps {
		if !p.IsClosed() {
			Logger().Debug("open path not offset", "path", i, "points", len(p.V))
			continue
		}
		shapes = append(shapes, p.Edges())
	}
	return shapes
}

// warnUncut logs a warning for each shape that has no loop inside it.
// Holes (shapes inside an odd number of others) are not checked.
func warnUncut(shapes [][]paths.Segment, tps []*Toolpath) {
	for i, s := range shapes {
		depth := 0
		for j, o := range shapes {
			if i != j && paths.Contains(o, s[0].From()) {
				depth++
			}
		}
		if depth%2 == 1 {
			continue
		}
		cut := false
		for _, t := range tps {
			if paths.Contains(s, t.Start()) {
				cut = true
				break
			}
		}
		if !cut {
			Logger().Warn("shape smaller than tool; nothing cut inside it", "path", i)
		}
	}
}
