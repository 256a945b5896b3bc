package paths

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/JoshVarga/svgparser"
	"golang.org/x/net/html/charset"
)

func parseBounds(e *svgparser.Element) (Bounds, error) {
	width, werr := strconv.ParseFloat(e.Attributes["width"], 64)
	height, herr := strconv.ParseFloat(e.Attributes["height"], 64)
	if werr != nil {
		return Bounds{}, werr
	}
	if herr != nil {
		return Bounds{}, herr
	}
	// TODO: parse view box
	return Bounds{
		Max: Vec2{float64(width), float64(height)},
	}, nil
}

func parseLine(ps *Paths, xform *svgXform, e *svgparser.Element) error {
	var ferr error
	pf := func(s string) float64 {
		if ferr != nil {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		ferr = err
		return f
	}
	x1 := pf(e.Attributes["x1"])
	x2 := pf(e.Attributes["x2"])
	y1 := pf(e.Attributes["y1"])
	y2 := pf(e.Attributes["y2"])
	ps.move(xform.Apply(Vec2{x1, y1}))
	ps.line(xform.Apply(Vec2{x2, y2}))
	return ferr
}

type xformScannerState int

const (
	xfsName xformScannerState = 1 + iota
	xfsBra
	xfsMaybeComma
	xfsArg
)

func parseFloats(a []string) ([]float64, error) {
	var r []float64
	for _, x := range a {
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, f)
	}
	return r, nil
}

func svgXformTranslate(x, y float64) *svgXform {
	return &svgXform{
		M: [3][3]float64{
			{1, 0, x},
			{0, 1, y},
			{0, 0, 1},
		},
	}
}

func svgXformScale(x, y float64) *svgXform {
	return &svgXform{
		M: [3][3]float64{
			{x, 0, 0},
			{0, y, 0},
			{0, 0, 1},
		},
	}
}

func parseSingleXform(name string, args []string) (*svgXform, error) {
	switch name {
	case "translate":
		fa, err := parseFloats(args)
		if err != nil {
			return nil, err
		}
		if len(fa) != 1 && len(fa) != 2 {
			return nil, fmt.Errorf("translate should have one or two parameters: got %s", args)
		}
		if len(fa) == 1 {
			fa = append(fa, 0)
		}
		return svgXformTranslate(fa[0], fa[1]), nil
	case "scale":
		fa, err := parseFloats(args)
		if err != nil {
			return nil, err
		}
		if len(fa) != 1 && len(fa) != 2 {
			return nil, fmt.Errorf("scale should have one or two parameters: got %s", args)
		}
		if len(fa) == 1 {
			fa = append(fa, fa[0])
		}
		return svgXformScale(fa[0], fa[1]), nil
	case "matrix":
		fa, err := parseFloats(args)
		if err != nil {
			return nil, err
		}
		if len(fa) != 6 {
			return nil, fmt.Errorf("matrix should have six parameters: got %s", args)
		}
		return &svgXform{
			M: [3][3]float64{
				{fa[0], fa[2], fa[4]},
				{fa[1], fa[3], fa[5]},
				{0, 0, 1},
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown transform function %q", name)
	}
}

func parseSVGXForm(x string) (*svgXform, error) {
	var s scanner.Scanner
	xf := svgIdentity
	s.Init(strings.NewReader(x))
	state := xfsName
	fname := ""
	var args []string
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		switch state {
		case xfsName:
			if tok != scanner.Ident {
				return nil, fmt.Errorf("failed to parse transform: expected transform name, but got %q", s.TokenText())
			}
			fname = s.TokenText()
			state = xfsBra
		case xfsBra:
			if tok != '(' {
				return nil, fmt.Errorf("failed to parse transform: expected (, but got %q", s.TokenText())
			}
			state = xfsArg
		case xfsMaybeComma:
			if tok == ',' {
				continue
			}
			fallthrough
		case xfsArg:
			if tok == ')' {
				newxform, err := parseSingleXform(fname, args)
				if err != nil {
					return nil, err
				}
				xf = xf.Compose(newxform)
				state = xfsName
				args = nil
			} else if tok == scanner.Float || tok == scanner.Int {
				args = append(args, s.TokenText())
				state = xfsMaybeComma
			} else {
				return nil, fmt.Errorf("unexpected token %q parsing transform %q", s.TokenText(), x)
			}
		}
	}
	if state != xfsName {
		return nil, fmt.Errorf("failed to parse transform: %q", x)
	}
	return xf, nil
}

// pathTokens splits SVG path data into command letters and numbers.
func pathTokens(d string) []string {
	var b strings.Builder
	for _, r := range d {
		switch {
		case strings.ContainsRune("MmLlHhVvZz", r):
			b.WriteString(" ")
			b.WriteRune(r)
			b.WriteString(" ")
		case r == ',':
			b.WriteString(" ")
		default:
			b.WriteRune(r)
		}
	}
	return strings.Fields(b.String())
}

// parsePath understands absolute and relative moveto, lineto,
// horizontal and vertical lineto, and closepath commands.
func parsePath(ps *Paths, xf *svgXform, e *svgparser.Element) error {
	var cmd byte
	var args []float64
	var cur, start Vec2
	open := false
	var cp *Path
	want := func(c byte) int {
		switch c {
		case 'H', 'h', 'V', 'v':
			return 1
		}
		return 2
	}
	emit := func() {
		rel := cmd >= 'a'
		var next Vec2
		switch cmd {
		case 'M', 'm', 'L', 'l':
			next = Vec2{args[0], args[1]}
			if rel {
				next = cur.Add(next)
			}
		case 'H', 'h':
			next = Vec2{args[0], cur[1]}
			if rel {
				next[0] += cur[0]
			}
		case 'V', 'v':
			next = Vec2{cur[0], args[0]}
			if rel {
				next[1] += cur[1]
			}
		}
		if cmd == 'M' || cmd == 'm' {
			ps.P = append(ps.P, Path{V: []Vec2{xf.Apply(next)}})
			cp = &ps.P[len(ps.P)-1]
			start = next
			open = true
			// Subsequent pairs are implicit linetos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		} else {
			cp.V = append(cp.V, xf.Apply(next))
		}
		cur = next
		args = args[:0]
	}
	for _, t := range pathTokens(e.Attributes["d"]) {
		if len(t) == 1 && strings.Contains("MmLlHhVvZz", t) {
			if len(args) != 0 {
				return fmt.Errorf("got stray component before %s", t)
			}
			cmd = t[0]
			if cmd == 'Z' || cmd == 'z' {
				if !open {
					return fmt.Errorf("closepath with no current path")
				}
				cp.Closed = true
				cur = start
				open = false
			}
			continue
		}
		x, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return err
		}
		if cmd == 0 || cmd == 'Z' || cmd == 'z' {
			return fmt.Errorf("path data %q has no command", t)
		}
		if cmd != 'M' && cmd != 'm' && cp == nil {
			return fmt.Errorf("path must start with moveto")
		}
		if cmd != 'M' && cmd != 'm' && !open {
			// Drawing after a closepath starts a new subpath at its start.
			ps.P = append(ps.P, Path{V: []Vec2{xf.Apply(start)}})
			cp = &ps.P[len(ps.P)-1]
			open = true
		}
		args = append(args, x)
		if len(args) == want(cmd) {
			emit()
		}
	}
	if len(args) != 0 {
		return fmt.Errorf("got stray component in path")
	}
	return nil
}

func parsePoints(xf *svgXform, s string) ([]Vec2, error) {
	fs, err := parseFloats(strings.Fields(strings.ReplaceAll(s, ",", " ")))
	if err != nil {
		return nil, err
	}
	if len(fs)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates in points %q", s)
	}
	var r []Vec2
	for i := 0; i < len(fs); i += 2 {
		r = append(r, xf.Apply(Vec2{fs[i], fs[i+1]}))
	}
	return r, nil
}

func parsePoly(ps *Paths, xf *svgXform, e *svgparser.Element, closed bool) error {
	vs, err := parsePoints(xf, e.Attributes["points"])
	if err != nil {
		return err
	}
	if len(vs) < 2 {
		return nil
	}
	ps.P = append(ps.P, Path{V: vs, Closed: closed})
	return nil
}

func parseRect(ps *Paths, xf *svgXform, e *svgparser.Element) error {
	var vals [4]float64
	for i, k := range []string{"x", "y", "width", "height"} {
		a, ok := e.Attributes[k]
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return err
		}
		vals[i] = f
	}
	x, y, w, h := vals[0], vals[1], vals[2], vals[3]
	if w <= 0 || h <= 0 {
		return nil
	}
	ps.P = append(ps.P, Path{
		V: []Vec2{
			xf.Apply(Vec2{x, y}),
			xf.Apply(Vec2{x + w, y}),
			xf.Apply(Vec2{x + w, y + h}),
			xf.Apply(Vec2{x, y + h}),
		},
		Closed: true,
	})
	return nil
}

type svgXform struct {
	M [3][3]float64
}

func (xf *svgXform) Compose(xf2 *svgXform) *svgXform {
	var a svgXform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				a.M[i][k] += xf.M[i][j] * xf2.M[j][k]
			}
		}
	}
	return &a
}

func (xf *svgXform) Apply(v Vec2) Vec2 {
	x := [3]float64{v[0], v[1], 1.0}
	var r [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i] += xf.M[i][j] * x[j]
		}
	}
	return Vec2{r[0] / r[2], r[1] / r[2]}
}

var svgIdentity = &svgXform{
	M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
}

func parsePaths(p *Paths, xform *svgXform, e *svgparser.Element) error {
	for _, c := range e.Children {
		switch c.Name {
		case "g":
			gxf, err := parseSVGXForm(c.Attributes["transform"])
			if err != nil {
				return err
			}
			xf2 := xform.Compose(gxf)
			if err := parsePaths(p, xf2, c); err != nil {
				return err
			}
		case "path":
			if err := parsePath(p, xform, c); err != nil {
				return err
			}
		case "line":
			if err := parseLine(p, xform, c); err != nil {
				return err
			}
		case "polyline":
			if err := parsePoly(p, xform, c, false); err != nil {
				return err
			}
		case "polygon":
			if err := parsePoly(p, xform, c, true); err != nil {
				return err
			}
		case "rect":
			if err := parseRect(p, xform, c); err != nil {
				return err
			}
		case "circle":
			// read by CirclesFromSVG
		case "defs", "title", "desc", "metadata":
			continue
		default:
			fmt.Fprintf(os.Stderr, "unknown child node type %q\n", c.Name)
		}
	}
	return nil
}

// FromSVG parses an SVG file, extracting paths. Closed shapes
// (polygons, rects, circles, and paths ending in Z) come back as closed
// paths.
// This provides only limited SVG parsing support, and
// will fail or produce incorrect results if the SVG file
// uses features that it doesn't understand.
func FromSVG(r io.Reader) (p *Paths, rerr error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = charset.NewReaderLabel
	elt, err := svgparser.DecodeFirst(decoder)
	if err != nil {
		return nil, err
	}
	if err := elt.Decode(decoder); err != nil && err != io.EOF {
		return nil, err
	}
	bs, err := parseBounds(elt)
	if err != nil {
		return nil, err
	}
	p = &Paths{Bounds: bs}
	if err := parsePaths(p, svgIdentity, elt); err != nil {
		return nil, err
	}
	circles, err := circlesFromRaw(raw)
	if err != nil {
		return nil, err
	}
	p.P = append(p.P, circles...)
	return p, nil
}

var (
	svgh = `<svg height="%d" width="%d" viewBox="%d %d %d %d" version="1.1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`
)

// svgArcTolerance is how closely arcs are followed in SVG output.
const svgArcTolerance = 0.01

// SVG writes an SVG file that contains black strokes along the paths.
func (ps *Paths) SVG(w io.Writer) error {
	var werr error
	bi := bufio.NewWriter(w)
	wr := func(f string, args ...interface{}) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bi, f, args...)
	}
	wr(svgh, int(ps.Bounds.Max[1]), int(ps.Bounds.Max[0]), int(ps.Bounds.Min[0]), int(ps.Bounds.Min[1]), int(ps.Bounds.Max[0]-ps.Bounds.Min[0]), int(ps.Bounds.Max[1]-ps.Bounds.Min[1]))
	wr("\n")
	wr("<g fill=\"none\" stroke=\"black\" stroke-width=\"0.1\">\n")
	for _, p := range ps.P {
		if len(p.V) == 0 {
			continue
		}
		fp := p.Flatten(svgArcTolerance)
		wr(`<path d="`)
		for i, v := range fp.V {
			if i == 0 {
				wr("M %.2f, %.2f", v[0], v[1])
			} else {
				wr(" %.2f, %.2f", v[0], v[1])
			}
		}
		if p.IsClosed() {
			wr(" Z")
		}
		wr("\"/>\n")
	}
	wr("</g>")
	wr("</svg>")
	if werr == nil {
		werr = bi.Flush()
	}
	return werr
}
