package voronoi

import "math"

// side of a bisector a boundary stands for.
type side int8

const (
	sideLeft side = iota
	sideRight
)

func (s side) opposite() side { return sideRight - s }

func (s side) String() string {
	if s == sideLeft {
		return "left"
	}
	return "right"
}

// edge is the bisector a*x + b*y = c of reg[0] and reg[1]. ep holds the
// vertices closing it on each side, nil while that side is unbounded.
type edge struct {
	a, b, c float64
	reg     [2]Site
	ep      [2]*Site
	id      int

	emitted bool
}

// counter hands out sequential ids. Each sweep owns one.
type counter int

func (c *counter) next() int {
	n := int(*c)
	*c++
	return n
}

// bisect builds the perpendicular bisector of s1 and s2. The line is scaled
// so that the coefficient of the dominant axis is exactly 1, which keeps
// near vertical and near horizontal bisectors well conditioned.
func bisect(s1, s2 Site, ids *counter) *edge {
	e := &edge{reg: [2]Site{s1, s2}}

	dx := s2.X - s1.X
	dy := s2.Y - s1.Y
	adx := math.Abs(dx)
	ady := math.Abs(dy)

	e.c = s1.X*dx + s1.Y*dy + (dx*dx+dy*dy)*0.5
	if adx > ady {
		e.a = 1.0
		e.b = dy / dx
		e.c /= dx
	} else if ady > 0 {
		e.b = 1.0
		e.a = dx / dy
		e.c /= dy
	} else {
		// coincident sites: the sweep skips them, this only keeps the
		// line finite if one slips through
		e.b = 1.0
		e.c = s1.Y
	}

	e.id = ids.next()
	return e
}

// setEndpoint closes side s of the edge with v and reports whether both
// ends are now fixed.
func (e *edge) setEndpoint(s side, v Site) bool {
	vv := v
	e.ep[s] = &vv
	return e.ep[s.opposite()] != nil
}

func (e *edge) line() Line {
	return Line{A: e.a, B: e.b, C: e.c}
}

func (e *edge) record() Edge {
	ret := Edge{Bisector: e.id, Left: Unbounded, Right: Unbounded}
	if e.ep[sideLeft] != nil {
		ret.Left = e.ep[sideLeft].Index
	}
	if e.ep[sideRight] != nil {
		ret.Right = e.ep[sideRight].Index
	}
	return ret
}
