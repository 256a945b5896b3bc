// Package gcode writes G-code for a 3-axis router cutting 2d toolpaths
// at a fixed depth.
package gcode

import (
	"bufio"
	"fmt"
	"io"
)

// Config describes the cut.
type Config struct {
	// SafeZ is the height the tool travels at between cuts (mm).
	SafeZ float64
	// CutZ is the height the tool cuts at, usually negative (mm).
	CutZ float64
	// FeedRate is the cutting speed (mm/min).
	FeedRate int
	// PlungeRate is the speed the tool moves down into the work (mm/min).
	PlungeRate int
}

// A Writer emits G-code. The first write error is kept and returned by
// Flush; later writes are dropped.
type Writer struct {
	cfg  Config
	w    *bufio.Writer
	err  error
	down bool
	x, y float64
}

func NewWriter(w io.Writer, cfg *Config) *Writer {
	return &Writer{cfg: *cfg, w: bufio.NewWriter(w)}
}

func (gw *Writer) wr(f string, args ...interface{}) {
	if gw.err != nil {
		return
	}
	_, gw.err = fmt.Fprintf(gw.w, f, args...)
}

// Preamble sets millimetre units and absolute coordinates, and lifts
// the tool clear of the work.
func (gw *Writer) Preamble() {
	gw.wr("G21\n")
	gw.wr("G90\n")
	gw.wr("G0 Z%.3f\n", gw.cfg.SafeZ)
	gw.down = false
}

func (gw *Writer) retract() {
	if gw.down {
		gw.wr("G0 Z%.3f\n", gw.cfg.SafeZ)
		gw.down = false
	}
}

func (gw *Writer) plunge() {
	if !gw.down {
		gw.wr("G1 Z%.3f F%d\n", gw.cfg.CutZ, gw.cfg.PlungeRate)
		gw.down = true
	}
}

// Move lifts the tool, travels to (x, y) and plunges to cutting depth.
func (gw *Writer) Move(x, y float64) {
	gw.retract()
	gw.wr("G0 X%.3f Y%.3f\n", x, y)
	gw.x, gw.y = x, y
	gw.plunge()
}

// Line cuts in a straight line to (x, y).
func (gw *Writer) Line(x, y float64) {
	gw.plunge()
	gw.wr("G1 X%.3f Y%.3f F%d\n", x, y, gw.cfg.FeedRate)
	gw.x, gw.y = x, y
}

// Arc cuts a circular arc to (x, y) around the centre (cx, cy). The
// centre is given in absolute coordinates.
func (gw *Writer) Arc(x, y, cx, cy float64, clockwise bool) {
	gw.plunge()
	code := 3
	if clockwise {
		code = 2
	}
	gw.wr("G%d X%.3f Y%.3f I%.3f J%.3f F%d\n", code, x, y, cx-gw.x, cy-gw.y, gw.cfg.FeedRate)
	gw.x, gw.y = x, y
}

// Postamble lifts the tool and ends the program.
func (gw *Writer) Postamble() {
	gw.retract()
	gw.wr("M2\n")
}

// Flush writes any buffered output and returns the first error seen.
func (gw *Writer) Flush() error {
	if gw.err != nil {
		return gw.err
	}
	return gw.w.Flush()
}
