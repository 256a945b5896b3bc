// Package svgtogcode provides the functionality for the
// svgtogcode binary as a library.
package svgtogcode

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/paulhankin/mill/gcode"
	"github.com/paulhankin/mill/paths"
	"github.com/paulhankin/mill/toolpath"
	"github.com/paulmach/orb"
)

// Operations that Convert can perform on the shapes in the input.
const (
	OpInside  = "inside"
	OpOutside = "outside"
	OpPocket  = "pocket"
	OpEngrave = "engrave"
)

type Config struct {
	In  string
	Out string

	Delta     paths.Vec2
	Size      paths.Vec2
	PaperSize paths.Vec2
	Center    bool

	// Tight fits the drawing itself, rather than its page, to Size.
	Tight bool

	Op           string
	ToolDiameter float64
	StepOver     float64
	Direction    toolpath.Direction

	SafeZ      float64
	Depth      float64
	FeedRate   int
	PlungeRate int

	// Split and Reverse control how engraved paths are ordered
	// (-split and -reverse).
	Split   bool
	Reverse bool

	Simplify float64
}

func adjustSize(sz, ps, delta paths.Vec2, center bool, b paths.Bounds) (paths.Bounds, error) {
	ow := b.Max[0] - b.Min[0]
	oh := b.Max[1] - b.Min[1]
	if !(ow > 0 && oh > 0) {
		return paths.Bounds{}, fmt.Errorf("image has no area (%g,%g)", ow, oh)
	}
	if sz[0] == 0 && sz[1] == 0 {
		sz[0] = ow
		sz[1] = oh
	} else if sz[1] == 0 {
		sz[1] = sz[0] * oh / ow
	} else if sz[0] == 0 {
		sz[0] = sz[1] * ow / oh
	}

	if !(math.Abs(sz[0]/sz[1]-ow/oh) < 1e-3) {
		return paths.Bounds{}, fmt.Errorf("target image size %g,%g not compatible with image size %g,%g", sz[0], sz[1], ow, oh)
	}

	if ps[0] != 0 || ps[1] != 0 {
		if ps[0] == 0 || ps[1] == 0 {
			return paths.Bounds{}, fmt.Errorf("paper size %g,%g doesn't make sense", ps[0], ps[1])
		}

		if sz[0] > ps[0] || sz[1] > ps[1] {
			return paths.Bounds{}, fmt.Errorf("paper size %g,%g is smaller than image %g,%g", ps[0], ps[1], sz[0], sz[1])
		}
	}

	if center {
		if ps[0] == 0 {
			return paths.Bounds{}, fmt.Errorf("must set -paper to use -center")
		}
		delta[0] += (ps[0] - sz[0]) / 2
		delta[1] += (ps[1] - sz[1]) / 2
	}

	return paths.Bounds{
		Min: paths.Vec2{delta[0], delta[1]},
		Max: paths.Vec2{sz[0] + delta[0], sz[1] + delta[1]},
	}, nil
}

func load(name string) (*paths.Paths, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return paths.FromSVG(f)
}

// Convert reads the SVG file cfg.In, computes toolpaths for cfg.Op and
// writes them to cfg.Out: as G-code, or as an SVG preview if the output
// name ends in ".svg".
func Convert(cfg *Config) error {
	if cfg.In == "" {
		return fmt.Errorf("input file must be specified")
	}

	ps, err := load(cfg.In)
	if err != nil {
		return err
	}
	if cfg.Tight {
		ps.TightenBounds()
	}

	bounds, err := adjustSize(cfg.Size, cfg.PaperSize, cfg.Delta, cfg.Center, ps.Bounds)
	if err != nil {
		return err
	}
	ps.Transform(bounds)

	out, err := os.Create(cfg.Out)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer out.Close()

	if err := convert(cfg, ps, out, filepath.Ext(cfg.Out) == ".svg"); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func convert(cfg *Config, ps *paths.Paths, w io.Writer, preview bool) error {
	if cfg.Op == OpEngrave {
		engrave(cfg, ps)
		if preview {
			return ps.SVG(w)
		}
		return writeEngraving(cfg, ps, w)
	}

	tps, err := cut(cfg, ps)
	if err != nil {
		return err
	}
	slog.Info("toolpaths computed", "op", cfg.Op, "loops", len(tps))
	if preview {
		return previewToolpaths(ps, tps, w)
	}
	return writeToolpaths(cfg, tps, w)
}

// cut computes the toolpaths for a profile or pocket operation on the
// closed shapes of ps.
func cut(cfg *Config, ps *paths.Paths) ([]*toolpath.Toolpath, error) {
	closed, open := ps.Split()
	if len(open) > 0 {
		slog.Warn("open paths ignored", "op", cfg.Op, "count", len(open))
	}
	g := &toolpath.Generator{
		ToolRadius: cfg.ToolDiameter / 2,
		StepOver:   cfg.StepOver,
	}
	switch cfg.Op {
	case OpPocket:
		return g.Pocket(closed, cfg.Direction)
	case OpInside, OpOutside:
		side, err := toolpath.ParseSide(cfg.Op)
		if err != nil {
			return nil, err
		}
		return g.Profile(closed, side, cfg.Direction)
	}
	return nil, fmt.Errorf("unknown operation %q", cfg.Op)
}

// engrave prepares every path for cutting along its line: clipped to
// the bounds, simplified and ordered to keep travel short.
func engrave(cfg *Config, ps *paths.Paths) {
	ps.Clip(ps.Bounds)
	if cfg.Simplify > 0 {
		ps.Simplify(cfg.Simplify)
	}
	ps.Sort(&paths.SortConfig{
		Split:   cfg.Split,
		Reverse: cfg.Reverse,
	})
}

func newWriter(cfg *Config, w io.Writer) *gcode.Writer {
	return gcode.NewWriter(w, &gcode.Config{
		SafeZ:      cfg.SafeZ,
		CutZ:       -cfg.Depth,
		FeedRate:   cfg.FeedRate,
		PlungeRate: cfg.PlungeRate,
	})
}

// arcTolerance is how closely engraved arcs are followed.
const arcTolerance = 0.01

func writeEngraving(cfg *Config, ps *paths.Paths, w io.Writer) error {
	gw := newWriter(cfg, w)
	gw.Preamble()
	for _, p := range ps.P {
		closed := p.IsClosed()
		p = p.Flatten(arcTolerance)
		for i, v := range p.V {
			if i == 0 {
				gw.Move(v[0], v[1])
			} else {
				gw.Line(v[0], v[1])
			}
		}
		if closed && len(p.V) > 0 {
			gw.Line(p.V[0][0], p.V[0][1])
		}
	}
	gw.Postamble()
	if err := gw.Flush(); err != nil {
		return fmt.Errorf("failed to write gcode: %w", err)
	}
	return nil
}

// writeToolpaths cuts each loop in turn. The tool stays down to travel
// from a loop to the one linked after it.
func writeToolpaths(cfg *Config, tps []*toolpath.Toolpath, w io.Writer) error {
	gw := newWriter(cfg, w)
	gw.Preamble()
	var prev *toolpath.Toolpath
	for _, tp := range tps {
		start := tp.Start()
		if prev != nil && prev.Next() == tp {
			gw.Line(start[0], start[1])
		} else {
			gw.Move(start[0], start[1])
		}
		tp.Walk(func(s toolpath.Segment) {
			to := s.To()
			if a, ok := s.Geom.(paths.Arc); ok {
				c := a.Center()
				gw.Arc(to[0], to[1], c[0], c[1], a.Clockwise())
				return
			}
			gw.Line(to[0], to[1])
		})
		prev = tp
	}
	gw.Postamble()
	if err := gw.Flush(); err != nil {
		return fmt.Errorf("failed to write gcode: %w", err)
	}
	return nil
}

// previewToolpaths draws the loops, with the view grown to fit loops
// that run outside the image.
func previewToolpaths(ps *paths.Paths, tps []*toolpath.Toolpath, w io.Writer) error {
	view := orb.Bound{Min: orb.Point(ps.Bounds.Min), Max: orb.Point(ps.Bounds.Max)}
	out := &paths.Paths{}
	for _, tp := range tps {
		view = view.Union(tp.Bound())
		out.P = append(out.P, tp.Path())
	}
	out.Bounds = paths.Bounds{Min: paths.Vec2(view.Min), Max: paths.Vec2(view.Max)}
	return out.SVG(w)
}
