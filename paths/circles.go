package paths

import (
	"bytes"
	"fmt"
	"io"
	"math"

	mt "github.com/rustyoz/Mtransform"
	"github.com/rustyoz/svg"
)

// CirclesFromSVG reads the circle elements of an SVG file, including
// those nested in (transformed) groups, as closed paths made of arcs.
func CirclesFromSVG(r io.Reader) ([]Path, error) {
	s, err := svg.ParseSvgFromReader(r, "", 1.0)
	if err != nil {
		return nil, err
	}
	root := mt.Identity()
	if s.Transform != nil {
		root = *s.Transform
	}
	var out []Path
	for _, e := range s.Elements {
		if c, ok := e.(*svg.Circle); ok {
			if out, err = appendCircle(out, root, c); err != nil {
				return nil, err
			}
		}
	}
	for i := range s.Groups {
		if out, err = appendGroupCircles(out, root, &s.Groups[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func circlesFromRaw(raw []byte) ([]Path, error) {
	return CirclesFromSVG(bytes.NewReader(raw))
}

// appendGroupCircles reparses the group transform itself, since the
// svg package only understands a single translate or matrix.
func appendGroupCircles(out []Path, xf mt.Transform, g *svg.Group) ([]Path, error) {
	if g.TransformString != "" {
		own, err := parseSVGXForm(g.TransformString)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.ID, err)
		}
		xf = mt.MultiplyTransforms(xf, mt.Transform(own.M))
	}
	var err error
	for _, e := range g.Elements {
		switch e := e.(type) {
		case *svg.Circle:
			out, err = appendCircle(out, xf, e)
		case *svg.Group:
			out, err = appendGroupCircles(out, xf, e)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func appendCircle(out []Path, xf mt.Transform, c *svg.Circle) ([]Path, error) {
	if c.Radius <= 0 {
		return out, nil
	}
	if c.Transform != "" {
		own, err := parseSVGXForm(c.Transform)
		if err != nil {
			return nil, fmt.Errorf("circle %q: %w", c.ID, err)
		}
		xf = mt.MultiplyTransforms(xf, mt.Transform(own.M))
	}
	x, y := xf.Apply(c.Cx, c.Cy)
	// Only uniform scales keep a circle circular; use the mean scale.
	scale := math.Sqrt(math.Abs(xf[0][0]*xf[1][1] - xf[0][1]*xf[1][0]))
	return append(out, Circle(Vec2{x, y}, c.Radius*scale)), nil
}
