// Package toolpath turns closed 2d shapes into closed, directed loops of
// cut geometry for a round tool: inside and outside profiles, and pockets
// made of concentric rings chained for retract-free travel.
//
// Each closed input edge is offset by the tool radius along both normals.
// The offsets of one shape are joined into rings, outside corners are
// mitered or filleted, and every pair of offset segments is intersected.
// An intersection marks each side of each segment valid or invalid; the
// valid runs on the requested side of the input are chained into loops.
package toolpath

import "fmt"

// Hand says which normal of its source edge an offset segment was
// shifted along.
type Hand int

const (
	Left  Hand = 1
	Right Hand = -1
)

func (h Hand) String() string {
	switch h {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Hand(%d)", int(h))
}

// Side is the side of the input boundary to cut on.
type Side int

const (
	Inside Side = iota
	Outside
)

func (s Side) String() string {
	switch s {
	case Inside:
		return "inside"
	case Outside:
		return "outside"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// ParseSide parses "inside" or "outside".
func ParseSide(s string) (Side, error) {
	switch s {
	case "inside":
		return Inside, nil
	case "outside":
		return Outside, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

// Direction is the travel direction of a loop. Original leaves loops
// the way they were generated.
type Direction int

const (
	Original Direction = iota
	Clockwise
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case Original:
		return "original"
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection parses "original", "cw" or "ccw".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "original", "":
		return Original, nil
	case "cw", "clockwise":
		return Clockwise, nil
	case "ccw", "counterclockwise":
		return CounterClockwise, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Checkpoint names a stage of generation that can be observed.
type Checkpoint int

const (
	// CheckpointOffset: the raw offset rings.
	CheckpointOffset Checkpoint = iota
	// CheckpointCorners: offset rings after corners are mitered or filleted.
	CheckpointCorners
	// CheckpointValid: the valid runs left after intersection.
	CheckpointValid
	// CheckpointInside: valid runs inside the boundary.
	CheckpointInside
	// CheckpointOutside: valid runs outside the boundary.
	CheckpointOutside
	// CheckpointLoops: the segments of the closed loops.
	CheckpointLoops
)

var checkpointNames = [...]string{"offset", "corners", "valid", "inside", "outside", "loops"}

func (c Checkpoint) String() string {
	if c >= 0 && int(c) < len(checkpointNames) {
		return checkpointNames[c]
	}
	return fmt.Sprintf("Checkpoint(%d)", int(c))
}
