package paths

func simplifyPath(v []Vec2, tol float64) []Vec2 {
	if len(v) < 3 {
		return v
	}
	chord := Line{A: v[0], B: v[len(v)-1]}
	worst := 0
	worstD := 0.0
	for i := 1; i < len(v)-1; i++ {
		d := chord.Distance(v[i])
		if d > worstD {
			worst = i
			worstD = d
		}
	}
	if worstD <= tol {
		return []Vec2{v[0], v[len(v)-1]}
	}
	if worst <= 0 || worst >= len(v)-1 {
		panic("simply the worst")
	}
	lefts := simplifyPath(v[:worst+1], tol)
	rights := simplifyPath(v[worst:], tol)
	return append(lefts, rights[1:]...)
}

// Simplify removes points from paths, with the guarantee that
// all removed points are within the given tolerance (distance)
// from the new path. Paths containing arcs are left alone, and
// paths marked closed stay closed.
func (ps *Paths) Simplify(tol float64) {
	for i, p := range ps.P {
		if len(p.Bulge) > 0 || len(p.V) < 3 {
			continue
		}
		if !p.Closed {
			ps.P[i].V = simplifyPath(p.V, tol)
			continue
		}
		ring := append(append([]Vec2{}, p.V...), p.V[0])
		s := simplifyPath(ring, tol)
		if len(s) < 4 {
			// Too small to survive as an area; keep it as it was.
			continue
		}
		ps.P[i].V = s[:len(s)-1]
	}
}
