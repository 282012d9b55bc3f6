package voronoi

import "math"

// handle addresses a boundary record in the arena.
type handle int32

const noHandle handle = -1

type liveness uint8

const (
	alive liveness = iota
	dead
)

// halfedge is one boundary of the beach line: the point where two adjacent
// arcs meet, sliding along edge. Sentinels have no edge.
type halfedge struct {
	edge  *edge
	side  side
	state liveness

	left  handle
	right handle

	// событие круга этой границы, живое пока pending
	pending bool
	vertex  Site
	ystar   float64
	qnext   handle
}

// arena owns every boundary of one sweep. Records are never freed, dead
// ones are only unlinked.
type arena struct {
	nodes []halfedge
}

func (a *arena) alloc(e *edge, s side) handle {
	a.nodes = append(a.nodes, halfedge{
		edge:  e,
		side:  s,
		left:  noHandle,
		right: noHandle,
		ystar: math.Inf(1),
		qnext: noHandle,
	})
	return handle(len(a.nodes) - 1)
}

// at must not be held across alloc: the backing slice may move.
func (a *arena) at(h handle) *halfedge {
	return &a.nodes[h]
}

// beachLine is the ordered list of boundaries between the two sentinels,
// with a hash over x that remembers a recently visited boundary per bucket.
type beachLine struct {
	a *arena

	leftEnd  handle
	rightEnd handle

	hash   []handle
	xmin   float64
	deltax float64
}

func newBeachLine(a *arena, xmin, xmax float64, nsites int) *beachLine {
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	size := int(2 * math.Sqrt(float64(nsites+4)))

	bl := &beachLine{
		a:      a,
		hash:   make([]handle, size),
		xmin:   xmin,
		deltax: xmax - xmin,
	}
	for i := range bl.hash {
		bl.hash[i] = noHandle
	}

	bl.leftEnd = a.alloc(nil, sideLeft)
	bl.rightEnd = a.alloc(nil, sideLeft)
	a.at(bl.leftEnd).right = bl.rightEnd
	a.at(bl.rightEnd).left = bl.leftEnd

	bl.hash[0] = bl.leftEnd
	bl.hash[size-1] = bl.rightEnd
	return bl
}

// insert splices h right after the boundary after.
func (bl *beachLine) insert(after, h handle) {
	n := bl.a.at(h)
	prev := bl.a.at(after)

	n.left = after
	n.right = prev.right
	bl.a.at(prev.right).left = h
	prev.right = h
}

// delete unlinks h and tombstones it; hash buckets still pointing at it
// notice on their next lookup.
func (bl *beachLine) delete(h handle) {
	n := bl.a.at(h)
	bl.a.at(n.left).right = n.right
	bl.a.at(n.right).left = n.left
	n.state = dead
}

func (bl *beachLine) left(h handle) handle  { return bl.a.at(h).left }
func (bl *beachLine) right(h handle) handle { return bl.a.at(h).right }

func (bl *beachLine) bucket(x float64) int {
	if bl.deltax <= 0 {
		return 0
	}
	b := int((x - bl.xmin) / bl.deltax * float64(len(bl.hash)))
	if b < 0 {
		b = 0
	}
	if b >= len(bl.hash) {
		b = len(bl.hash) - 1
	}
	return b
}

// cached returns the boundary remembered for bucket b, evicting it if it
// died since.
func (bl *beachLine) cached(b int) handle {
	if b < 0 || b >= len(bl.hash) {
		return noHandle
	}
	h := bl.hash[b]
	if h == noHandle || bl.a.at(h).state == alive {
		return h
	}
	bl.hash[b] = noHandle
	return noHandle
}

// locate returns the rightmost boundary whose arc lies at or left of p: the
// new site splits the arc just right of it.
func (bl *beachLine) locate(p Site) handle {
	b := bl.bucket(p.X)

	// ищем в хеше ближайшую живую границу, расходясь от нужной корзины в обе стороны
	h := bl.cached(b)
	for i := 1; h == noHandle; i++ {
		if h = bl.cached(b - i); h != noHandle {
			break
		}
		h = bl.cached(b + i)
	}

	if h == bl.leftEnd || (h != bl.rightEnd && bl.isRightOf(h, p)) {
		h = bl.right(h)
		for h != bl.rightEnd && bl.isRightOf(h, p) {
			h = bl.right(h)
		}
		h = bl.left(h)
	} else {
		h = bl.left(h)
		for h != bl.leftEnd && !bl.isRightOf(h, p) {
			h = bl.left(h)
		}
	}

	// крайние корзины всегда держат концы линии
	if b > 0 && b < len(bl.hash)-1 {
		bl.hash[b] = h
	}
	invariant(h != bl.rightEnd, "locate ended on the right sentinel for site %d", p.Index)
	return h
}

// leftRegion is the site whose arc lies left of h; bottom for sentinels.
func (bl *beachLine) leftRegion(h handle, bottom Site) Site {
	n := bl.a.at(h)
	if n.edge == nil {
		return bottom
	}
	if n.side == sideLeft {
		return n.edge.reg[0]
	}
	return n.edge.reg[1]
}

// rightRegion is the site whose arc lies right of h; bottom for sentinels.
func (bl *beachLine) rightRegion(h handle, bottom Site) Site {
	n := bl.a.at(h)
	if n.edge == nil {
		return bottom
	}
	if n.side == sideLeft {
		return n.edge.reg[1]
	}
	return n.edge.reg[0]
}

// isRightOf reports whether p lies right of the arc boundary h. The
// branches follow Fortune's formulation: the a == 1 lines take a cheap
// test first and fall back to the exact quadratic only when it cannot
// decide.
func (bl *beachLine) isRightOf(h handle, p Site) bool {
	n := bl.a.at(h)
	e := n.edge
	top := e.reg[1]

	rightOfSite := p.X > top.X
	if rightOfSite && n.side == sideLeft {
		return true
	}
	if !rightOfSite && n.side == sideRight {
		return false
	}

	var above bool
	if e.a == 1.0 {
		dyp := p.Y - top.Y
		dxp := p.X - top.X
		fast := false
		if (!rightOfSite && e.b < 0.0) || (rightOfSite && e.b >= 0.0) {
			above = dyp >= e.b*dxp
			fast = above
		} else {
			above = p.X+p.Y*e.b > e.c
			if e.b < 0.0 {
				above = !above
			}
			if !above {
				fast = true
			}
		}
		if !fast {
			dxs := top.X - e.reg[0].X
			above = e.b*(dxp*dxp-dyp*dyp) < dxs*dyp*(1.0+2.0*dxp/dxs+e.b*e.b)
			if e.b < 0.0 {
				above = !above
			}
		}
	} else { // e.b == 1
		yl := e.c - e.a*p.X
		t1 := p.Y - yl
		t2 := p.X - top.X
		t3 := yl - top.Y
		above = t1*t1 > t2*t2+t3*t3
	}

	if n.side == sideLeft {
		return above
	}
	return !above
}

// intersect returns where the bisectors of two adjacent boundaries cross,
// if that point is a vertex the sweep has yet to reach.
func (bl *beachLine) intersect(h1, h2 handle) (Site, bool) {
	n1, n2 := bl.a.at(h1), bl.a.at(h2)
	e1, e2 := n1.edge, n2.edge
	if e1 == nil || e2 == nil {
		return Site{}, false
	}

	// у обоих один и тот же верхний сайт: новой вершины нет
	if e1.reg[1].Index == e2.reg[1].Index {
		return Site{}, false
	}

	d := e1.a*e2.b - e1.b*e2.a
	if equalWithEpsilon(d, 0.0) {
		return Site{}, false
	}

	xint := (e1.c*e2.b - e2.c*e1.b) / d
	yint := (e2.c*e1.a - e1.c*e2.a) / d

	n, e := n1, e1
	if !e1.reg[1].less(e2.reg[1]) {
		n, e = n2, e2
	}

	rightOfSite := xint >= e.reg[1].X
	if (rightOfSite && n.side == sideLeft) || (!rightOfSite && n.side == sideRight) {
		return Site{}, false
	}

	return Site{X: xint, Y: yint, Index: Unbounded}, true
}

// each visits the live boundaries left to right, sentinels excluded.
func (bl *beachLine) each(fn func(h handle)) {
	for h := bl.right(bl.leftEnd); h != bl.rightEnd; h = bl.right(h) {
		fn(h)
	}
}
