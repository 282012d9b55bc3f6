package voronoi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onLine(t *testing.T, e *edge, x, y float64) {
	t.Helper()
	assert.InDelta(t, e.c, e.a*x+e.b*y, 1e-9, "(%v, %v) not on %v*x + %v*y = %v", x, y, e.a, e.b, e.c)
}

func TestBisectNormalisation(t *testing.T) {
	var ids counter

	// wide: x coefficient fixed to 1
	e := bisect(Site{X: 0, Y: 0}, Site{X: 10, Y: 2}, &ids)
	assert.Equal(t, 1.0, e.a)
	assert.InDelta(t, 0.2, e.b, 1e-12)
	onLine(t, e, 5, 1)

	// tall: y coefficient fixed to 1
	e = bisect(Site{X: 0, Y: 0}, Site{X: 5, Y: 10}, &ids)
	assert.Equal(t, 1.0, e.b)
	assert.InDelta(t, 0.5, e.a, 1e-12)
	assert.InDelta(t, 6.25, e.c, 1e-12)
	onLine(t, e, 2.5, 5)

	assert.Equal(t, 2, int(ids))
}

func TestBisectIsEquidistant(t *testing.T) {
	var ids counter
	s1 := Site{X: -3, Y: 7}
	s2 := Site{X: 4, Y: -1}
	e := bisect(s1, s2, &ids)

	// walk along the line and check both sites stay equally far
	for _, x := range []float64{-100, -1, 0, 3, 250} {
		var p Site
		if e.b != 0 {
			p = Site{X: x, Y: (e.c - e.a*x) / e.b}
		} else {
			p = Site{X: e.c / e.a, Y: x}
		}
		assert.InDelta(t, p.distance(s1), p.distance(s2), 1e-9)
	}
}

func TestBisectOrderIndependent(t *testing.T) {
	var ids counter
	s1 := Site{X: 1, Y: 2, Index: 0}
	s2 := Site{X: 7, Y: 3, Index: 1}

	e1 := bisect(s1, s2, &ids)
	e2 := bisect(s2, s1, &ids)
	assert.InDelta(t, e1.a, e2.a, 1e-12)
	assert.InDelta(t, e1.b, e2.b, 1e-12)
	assert.InDelta(t, e1.c, e2.c, 1e-12)
	assert.Equal(t, 0, e1.id)
	assert.Equal(t, 1, e2.id)
}

func TestBisectCoincident(t *testing.T) {
	var ids counter
	e := bisect(Site{X: 1, Y: 1}, Site{X: 1, Y: 1}, &ids)
	for _, f := range []float64{e.a, e.b, e.c} {
		require.False(t, math.IsNaN(f) || math.IsInf(f, 0))
	}
}

func TestSetEndpoint(t *testing.T) {
	var ids counter
	e := bisect(Site{X: 0, Y: 0, Index: 0}, Site{X: 2, Y: 0, Index: 1}, &ids)

	rec := e.record()
	assert.Equal(t, Edge{Bisector: 0, Left: Unbounded, Right: Unbounded}, rec)

	assert.False(t, e.setEndpoint(sideRight, Site{X: 1, Y: 5, Index: 3}))
	assert.Equal(t, Edge{Bisector: 0, Left: Unbounded, Right: 3}, e.record())

	assert.True(t, e.setEndpoint(sideLeft, Site{X: 1, Y: -5, Index: 4}))
	assert.Equal(t, Edge{Bisector: 0, Left: 4, Right: 3}, e.record())
	assert.True(t, e.record().Bounded())
}

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, sideRight, sideLeft.opposite())
	assert.Equal(t, sideLeft, sideRight.opposite())
	assert.Equal(t, "left", sideLeft.String())
}
