package toolpath

import "github.com/paulhankin/mill/paths"

// A Connection marks a point where segments join. Two connections are the
// same place only if they are the same handle or have been unified, never
// because their coordinates agree.
type Connection int

// connTable owns the connections of one generation run. Unified
// connections form sets in a union-find forest.
type connTable struct {
	parent []Connection
	pt     []paths.Vec2
}

func (t *connTable) add(p paths.Vec2) Connection {
	c := Connection(len(t.parent))
	t.parent = append(t.parent, c)
	t.pt = append(t.pt, p)
	return c
}

func (t *connTable) find(c Connection) Connection {
	for t.parent[c] != c {
		t.parent[c] = t.parent[t.parent[c]]
		c = t.parent[c]
	}
	return c
}

// unify makes a and b the same connection. The lower handle becomes the
// representative so results don't depend on argument order.
func (t *connTable) unify(a, b Connection) {
	ra, rb := t.find(a), t.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	t.parent[rb] = ra
}

func (t *connTable) same(a, b Connection) bool {
	return t.find(a) == t.find(b)
}

func (t *connTable) point(c Connection) paths.Vec2 {
	return t.pt[c]
}

func (t *connTable) move(c Connection, p paths.Vec2) {
	t.pt[c] = p
}
