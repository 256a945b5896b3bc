// Command svgtogcode reads closed shapes from an SVG file and writes
// G-code that cuts round them, inside them, or clears them out.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/paulhankin/mill/cmd/svgtogcode/svgtogcode"
	"github.com/paulhankin/mill/paths"
	"github.com/paulhankin/mill/toolpath"
)

type flagSizeValue struct {
	X, Y float64
}

func (fs *flagSizeValue) String() string {
	return fmt.Sprintf("%.2f,%.2f", fs.X, fs.Y)
}

func parseSizePart(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (fs *flagSizeValue) Set(s string) error {
	var err error
	parts := strings.Split(s, ",")
	if len(parts) == 1 {
		fs.X, err = parseSizePart(parts[0])
		return err
	}
	if len(parts) > 2 {
		return fmt.Errorf("can't parse %q as size", s)
	}
	if fs.X, err = parseSizePart(parts[0]); err != nil {
		return err
	}
	if fs.Y, err = parseSizePart(parts[1]); err != nil {
		return err
	}
	return nil
}

func (fs *flagSizeValue) vec() paths.Vec2 { return paths.Vec2{fs.X, fs.Y} }

// flags
var (
	flagIn  string
	flagOut string

	flagDelta     flagSizeValue
	flagSize      flagSizeValue
	flagPaperSize flagSizeValue
	flagCenter    bool
	flagTight     bool

	flagOp        string
	flagTool      float64
	flagStepOver  float64
	flagDirection string

	flagSafeZ    float64
	flagDepth    float64
	flagFeedRate int
	flagPlunge   int

	flagSimplify float64
	flagSplit    bool
	flagReverse  bool
	flagVerbose  bool
)

func init() {
	flag.StringVar(&flagIn, "in", "", "svg input file")
	flag.StringVar(&flagOut, "out", "out.gcode", "gcode output file (.svg for a preview)")
	flag.Var(&flagDelta, "offset", "displacement of 0,0 from machine origin")
	flag.Var(&flagSize, "size", "target size of image (mm)")
	flag.Var(&flagPaperSize, "paper", "size of the stock (mm)")
	flag.BoolVar(&flagCenter, "center", false, "if set, center image on the stock")
	flag.BoolVar(&flagTight, "tight", false, "if set, size the drawing by its contents rather than its page")
	flag.StringVar(&flagOp, "op", svgtogcode.OpOutside, "operation: inside, outside, pocket or engrave")
	flag.Float64Var(&flagTool, "tool", 3.175, "tool diameter (mm)")
	flag.Float64Var(&flagStepOver, "stepover", 0.4, "pocket step over, as a fraction of the tool diameter")
	flag.StringVar(&flagDirection, "dir", "original", "loop direction: original, cw or ccw")
	flag.Float64Var(&flagSafeZ, "safez", 5, "height to travel at (mm)")
	flag.Float64Var(&flagDepth, "depth", 1, "depth to cut at (mm)")
	flag.IntVar(&flagFeedRate, "feed", 800, "feed rate when cutting (mm/min)")
	flag.IntVar(&flagPlunge, "plunge", 200, "feed rate when plunging (mm/min)")
	flag.Float64Var(&flagSimplify, "simplify", 0, "if positive, simplify engraved paths to this tolerance (mm)")
	flag.BoolVar(&flagSplit, "split", false, "if set, engraved paths may be split to shorten travel")
	flag.BoolVar(&flagReverse, "reverse", false, "if set, engraved paths may be cut backwards")
	flag.BoolVar(&flagVerbose, "v", false, "log progress")
}

func main() {
	fail := func(s string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, s+"\n", args...)
		os.Exit(2)
	}

	flag.Parse()
	if flagIn == "" {
		fail("must specify -in <svg file>")
	}

	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	toolpath.SetLogger(logger)

	dir, err := toolpath.ParseDirection(flagDirection)
	if err != nil {
		fail("bad -dir: %v", err)
	}

	err = svgtogcode.Convert(&svgtogcode.Config{
		In:           flagIn,
		Out:          flagOut,
		Delta:        flagDelta.vec(),
		Size:         flagSize.vec(),
		PaperSize:    flagPaperSize.vec(),
		Center:       flagCenter,
		Tight:        flagTight,
		Op:           flagOp,
		ToolDiameter: flagTool,
		StepOver:     flagStepOver,
		Direction:    dir,
		SafeZ:        flagSafeZ,
		Depth:        flagDepth,
		FeedRate:     flagFeedRate,
		PlungeRate:   flagPlunge,
		Split:        flagSplit,
		Reverse:      flagReverse,
		Simplify:     flagSimplify,
	})
	if err != nil {
		fail("%v", err)
	}
}
