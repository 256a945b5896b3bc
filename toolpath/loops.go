package toolpath

import "github.com/paulhankin/mill/paths"

// minLoopSegments is the fewest segments a closed loop may have.
const minLoopSegments = 3

// partition chains runs into closed loops. Each chain grows from the
// first unused run by following connections, falling back to matching
// coordinates (in either direction) when no run continues by identity.
// A chain that cannot be closed is dropped.
func (e *engine) partition(runs []run) [][]run {
	used := make([]bool, len(runs))
	var loops [][]run
	for s := range runs {
		if used[s] {
			continue
		}
		used[s] = true
		chain := []run{runs[s]}
		for {
			tail := chain[len(chain)-1]
			if len(chain) >= minLoopSegments && e.joins(tail, chain[0]) {
				break
			}
			k, flip := e.nextRun(runs, used, tail)
			if k < 0 {
				break
			}
			used[k] = true
			r := runs[k]
			if flip {
				r = r.flipped()
			}
			chain = append(chain, r)
		}
		if loop, ok := e.closeChain(chain); ok {
			loops = append(loops, loop)
		}
	}
	return loops
}

// joins reports whether b can follow a. A shared connection is not
// enough on its own: the ends must also meet.
func (e *engine) joins(a, b run) bool {
	return a.geom.To().Dist(b.geom.From()) < paths.MinPointDistance
}

// nextRun finds the unused run that continues tail. It returns -1 if
// there is none, and whether the run must be flipped to continue it.
func (e *engine) nextRun(runs []run, used []bool, tail run) (int, bool) {
	for k, r := range runs {
		if !used[k] && e.conns.same(tail.to, r.from) && e.joins(tail, r) {
			return k, false
		}
	}
	end := tail.geom.To()
	for k, r := range runs {
		if used[k] {
			continue
		}
		if end.Dist(r.geom.From()) < paths.MinPointDistance {
			return k, false
		}
		if end.Dist(r.geom.To()) < paths.MinPointDistance {
			return k, true
		}
	}
	return -1, false
}

// closeChain finds the longest closed stretch of a chain, preferring the
// one that starts earliest.
func (e *engine) closeChain(chain []run) ([]run, bool) {
	for i := 0; i < len(chain); i++ {
		for j := len(chain) - 1; j-i+1 >= minLoopSegments; j-- {
			if e.joins(chain[j], chain[i]) {
				return chain[i : j+1], true
			}
		}
	}
	return nil, false
}
