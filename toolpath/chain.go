package toolpath

import (
	"sort"

	"github.com/paulhankin/mill/paths"
	"github.com/paulmach/orb"
)

// Chain orders rings for cutting and links them so the tool can travel
// from the end of one straight to the start of the next without
// retracting. From the end of each ring it moves to the nearest unvisited
// ring whose start can be reached by a straight line that crosses none
// of the boundary segments. When no ring can be reached that way, a new
// chain starts at the first unvisited ring. The rings are returned in
// visiting order.
func Chain(rings []*Toolpath, boundary []paths.Segment) []*Toolpath {
	visited := make([]bool, len(rings))
	out := make([]*Toolpath, 0, len(rings))
	bounds := make([]orb.Bound, len(boundary))
	for i, s := range boundary {
		bounds[i] = segmentBound(s)
	}
	for first := range rings {
		if visited[first] {
			continue
		}
		cur := rings[first]
		visited[first] = true
		out = append(out, cur)
		for {
			k := nearestReachable(rings, visited, cur.End(), boundary, bounds)
			if k < 0 {
				break
			}
			cur.next = rings[k]
			cur = rings[k]
			visited[k] = true
			out = append(out, cur)
		}
	}
	return out
}

func nearestReachable(rings []*Toolpath, visited []bool, from paths.Vec2, boundary []paths.Segment, bounds []orb.Bound) int {
	var cands []int
	for i := range rings {
		if !visited[i] {
			cands = append(cands, i)
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return from.Dist(rings[cands[i]].Start()) < from.Dist(rings[cands[j]].Start())
	})
	for _, k := range cands {
		if clearPath(from, rings[k].Start(), boundary, bounds) {
			return k
		}
	}
	return -1
}

// clearPath reports whether the line from a to b crosses no boundary
// segment, ignoring touches at a and b themselves.
func clearPath(a, b paths.Vec2, boundary []paths.Segment, bounds []orb.Bound) bool {
	if a.Dist(b) < paths.MinPointDistance {
		return true
	}
	l := paths.Line{A: a, B: b}
	lb := segmentBound(l)
	for i, s := range boundary {
		if !lb.Intersects(bounds[i]) {
			continue
		}
		for _, x := range paths.Intersect(l, s, false) {
			if x.Dist(a) >= paths.MinPointDistance && x.Dist(b) >= paths.MinPointDistance {
				return false
			}
		}
	}
	return true
}

// segmentBound returns a box around s, padded so that touching segments
// overlap.
func segmentBound(s paths.Segment) orb.Bound {
	ls := orb.LineString{orb.Point(s.From())}
	for _, v := range s.Flatten(areaTolerance) {
		ls = append(ls, orb.Point(v))
	}
	return ls.Bound().Pad(2 * areaTolerance)
}
