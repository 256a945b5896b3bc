package toolpath

import (
	"fmt"

	"github.com/paulhankin/mill/paths"
)

// ComputePocketToolpaths returns rings that clear the inside of the
// closed paths in ps, outermost first and chained for travel without
// retracting. Successive rings are toolRadius*2*stepOver apart.
func ComputePocketToolpaths(ps []paths.Path, toolRadius, stepOver float64, dir Direction) ([]*Toolpath, error) {
	g := &Generator{ToolRadius: toolRadius, StepOver: stepOver}
	return g.Pocket(ps, dir)
}

// Pocket returns rings that clear the inside of the closed paths in ps.
// The first layer is the inside profile. Each later layer is offset
// inwards from the one before, until nothing is left. The rings are
// oriented in direction dir and chained with Chain.
func (g *Generator) Pocket(ps []paths.Path, dir Direction) ([]*Toolpath, error) {
	r := g.ToolRadius
	if !(r > 0) {
		return nil, fmt.Errorf("pocket: %w (got %v)", errToolRadius, r)
	}
	if !(g.StepOver > 0 && g.StepOver <= 1) {
		return nil, fmt.Errorf("pocket: step over must be in (0, 1] (got %v)", g.StepOver)
	}
	maxLayers := g.MaxLayers
	if maxLayers <= 0 {
		maxLayers = DefaultMaxLayers
	}
	step := r * 2 * g.StepOver

	e := newEngine(g.MiterLimit, g.Observe)
	shapes := closedShapes(ps)
	var boundary []paths.Segment
	for i, s := range shapes {
		boundary = append(boundary, s...)
		e.addShape(s, r, i)
	}
	layer := e.pass(boundary, Inside)
	tps := e.toolpaths(layer)
	warnUncut(shapes, tps)

	for n := 1; len(layer) > 0; n++ {
		if n >= maxLayers {
			Logger().Warn("pocket stopped at layer limit", "layers", n)
			break
		}
		e.remember(layer)
		e.beginPass()
		var polys []paths.Segment
		for i, l := range layer {
			poly := repairLoop(l)
			if len(poly) < minLoopSegments {
				continue
			}
			polys = append(polys, poly...)
			e.addShape(poly, step, i)
		}
		layer = e.pass(polys, Inside)
		Logger().Debug("pocket layer", "layer", n, "loops", len(layer))
		tps = append(tps, e.toolpaths(layer)...)
	}

	tps = orientAll(tps, dir)
	var rings []paths.Segment
	for _, t := range tps {
		for _, s := range t.Segments {
			rings = append(rings, s.Geom)
		}
	}
	return Chain(tps, rings), nil
}

// repairLoop turns a loop into a closed chain of edges that can be
// offset again. Pieces too short to keep are dropped, and the gaps left
// between neighbours are closed by extending them to meet, or by a
// straight bridge when they never meet.
func repairLoop(l []run) []paths.Segment {
	var segs []paths.Segment
	for _, r := range l {
		if r.geom.Length() >= paths.MinPointDistance {
			segs = append(segs, r.geom)
		}
	}
	n := len(segs)
	if n < minLoopSegments {
		return segs
	}
	var out []paths.Segment
	for i := range segs {
		cur, next := segs[i], segs[(i+1)%n]
		p, q := cur.To(), next.From()
		if p.Dist(q) < paths.MinPointDistance {
			out = append(out, cur)
			continue
		}
		gap := p.Lerp(q, 0.5)
		best, found := paths.Vec2{}, false
		for _, m := range paths.Intersect(cur, next, true) {
			if !found || m.Dist(gap) < best.Dist(gap) {
				best, found = m, true
			}
		}
		if found && best.Dist(gap) < p.Dist(q) {
			out = append(out, cur.Resize(cur.From(), best))
			if i+1 < n {
				segs[i+1] = next.Resize(best, next.To())
			} else {
				out[0] = out[0].Resize(best, out[0].To())
			}
			continue
		}
		out = append(out, cur, paths.Line{A: p, B: q})
	}
	return out
}
