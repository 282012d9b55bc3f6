package voronoi_test

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/0x0FACED/go-voronoi/pkg/logger"
	"github.com/0x0FACED/go-voronoi/pkg/voronoi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/floats/scalar"
)

func randomPoints(seed int64, n int) []voronoi.Vertex {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]voronoi.Vertex, n)
	for i := range pts {
		pts[i] = voronoi.Vertex{X: rng.Float64() * 1000, Y: rng.Float64() * 1000}
	}
	return pts
}

func cross(o, a, b voronoi.Vertex) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// hullSize counts the corners of the convex hull, collinear points excluded.
func hullSize(pts []voronoi.Vertex) int {
	p := append([]voronoi.Vertex(nil), pts...)
	sort.Slice(p, func(i, j int) bool {
		if p[i].X != p[j].X {
			return p[i].X < p[j].X
		}
		return p[i].Y < p[j].Y
	})

	hull := make([]voronoi.Vertex, 0, 2*len(p))
	for _, v := range p {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], v) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, v)
	}
	lower := len(hull) + 1
	for i := len(p) - 2; i >= 0; i-- {
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p[i]) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p[i])
	}
	return len(hull) - 1
}

func sortedTriangle(t voronoi.Triangle) voronoi.Triangle {
	s := t[:]
	sort.Ints(s)
	return voronoi.Triangle{s[0], s[1], s[2]}
}

func triangleSet(ts []voronoi.Triangle, mapIndex func(int) int) []voronoi.Triangle {
	ret := make([]voronoi.Triangle, len(ts))
	for i, t := range ts {
		ret[i] = sortedTriangle(voronoi.Triangle{mapIndex(t[0]), mapIndex(t[1]), mapIndex(t[2])})
	}
	sort.Slice(ret, func(i, j int) bool {
		for k := 0; k < 3; k++ {
			if ret[i][k] != ret[j][k] {
				return ret[i][k] < ret[j][k]
			}
		}
		return false
	})
	return ret
}

func sortedVertices(vs []voronoi.Vertex) []voronoi.Vertex {
	ret := append([]voronoi.Vertex(nil), vs...)
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].X != ret[j].X {
			return ret[i].X < ret[j].X
		}
		return ret[i].Y < ret[j].Y
	})
	return ret
}

func TestTwoPoints(t *testing.T) {
	res, err := voronoi.Compute([]voronoi.Vertex{{X: 0, Y: 0}, {X: 10, Y: 0}})
	require.NoError(t, err)

	d := res.Diagram
	assert.Empty(t, d.Vertices)
	assert.Empty(t, res.Triangles)
	require.Equal(t, []voronoi.Line{{A: 1, B: 0, C: 5}}, d.Bisectors)
	require.Equal(t, []voronoi.Edge{{Bisector: 0, Left: voronoi.Unbounded, Right: voronoi.Unbounded}}, d.Edges)
	assert.False(t, d.Edges[0].Bounded())
}

func TestTriangle(t *testing.T) {
	res, err := voronoi.Compute([]voronoi.Vertex{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}})
	require.NoError(t, err)

	d := res.Diagram
	require.Len(t, d.Vertices, 1)
	assert.InDelta(t, 5, d.Vertices[0].X, 1e-12)
	assert.InDelta(t, 3.75, d.Vertices[0].Y, 1e-12)

	require.Len(t, d.Bisectors, 3)
	require.Len(t, d.Edges, 3)
	for _, e := range d.Edges {
		assert.False(t, e.Bounded())
		assert.True(t, e.Left == 0 || e.Right == 0, "edge %+v does not meet the vertex", e)
	}

	require.Len(t, res.Triangles, 1)
	assert.Equal(t, voronoi.Triangle{0, 1, 2}, sortedTriangle(res.Triangles[0]))
}

func TestCollinearRow(t *testing.T) {
	res, err := voronoi.Compute(voronoi.PointsOf([][2]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}}))
	require.NoError(t, err)

	d := res.Diagram
	assert.Empty(t, d.Vertices)
	assert.Empty(t, res.Triangles)
	require.Equal(t, []voronoi.Line{
		{A: 1, B: 0, C: 0.5},
		{A: 1, B: 0, C: 1.5},
		{A: 1, B: 0, C: 2.5},
	}, d.Bisectors)
	require.Len(t, d.Edges, 3)
	for _, e := range d.Edges {
		assert.False(t, e.Bounded())
	}
}

func TestCollinearColumn(t *testing.T) {
	res, err := voronoi.Compute(voronoi.PointsOf([][2]float32{{2, 0}, {2, 1}, {2, 2}, {2, 3}}))
	require.NoError(t, err)

	d := res.Diagram
	assert.Empty(t, d.Vertices)
	assert.Empty(t, res.Triangles)
	require.Len(t, d.Bisectors, 3)
	require.Len(t, d.Edges, 3)

	ys := make([]float64, 0, 3)
	for _, l := range d.Bisectors {
		assert.Zero(t, l.A)
		assert.Equal(t, 1.0, l.B)
		ys = append(ys, l.C)
	}
	sort.Float64s(ys)
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, ys)
}

func TestDuplicatePoints(t *testing.T) {
	log := logger.New(logger.WithColor(false))
	res, err := voronoi.Compute([]voronoi.Vertex{{X: 0, Y: 0}, {X: 0, Y: 0}}, voronoi.WithLogger(log))
	require.NoError(t, err)

	assert.Empty(t, res.Diagram.Vertices)
	assert.Empty(t, res.Diagram.Bisectors)
	assert.Empty(t, res.Diagram.Edges)
	assert.Empty(t, res.Triangles)
	assert.Contains(t, log.Raw(), "duplicate site skipped")
}

func TestDuplicatesInTriangle(t *testing.T) {
	res, err := voronoi.Compute([]voronoi.Vertex{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 0}, {X: 5, Y: 10}, {X: 10, Y: 0}})
	require.NoError(t, err)

	require.Len(t, res.Diagram.Vertices, 1)
	require.Len(t, res.Diagram.Bisectors, 3)
	require.Len(t, res.Triangles, 1)
	// coincident points answer to the first of their indices
	assert.Equal(t, voronoi.Triangle{0, 1, 3}, sortedTriangle(res.Triangles[0]))
}

func TestSinglePoint(t *testing.T) {
	res, err := voronoi.Compute([]voronoi.Vertex{{X: 3, Y: 4}})
	require.NoError(t, err)

	assert.Empty(t, res.Diagram.Vertices)
	assert.Empty(t, res.Diagram.Bisectors)
	assert.Empty(t, res.Diagram.Edges)
	assert.Empty(t, res.Triangles)
}

func TestInvalidInput(t *testing.T) {
	_, err := voronoi.Compute([]voronoi.Vertex{})
	assert.ErrorIs(t, err, voronoi.ErrNoPoints)

	_, err = voronoi.ComputeVoronoiDiagram([]voronoi.Vertex{
		{X: 0, Y: 0},
		{X: math.NaN(), Y: 1},
		{X: 2, Y: 2},
		{X: 3, Y: math.Inf(-1)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, voronoi.ErrNonFinite)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), "point 1")
	assert.Contains(t, err.Error(), "point 3")
}

func TestCircumcenters(t *testing.T) {
	for _, tc := range []struct {
		name string
		pts  []voronoi.Vertex
	}{
		{"random", randomPoints(1, 300)},
		{"grid", gridPoints(7, 5)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res, err := voronoi.Compute(tc.pts)
			require.NoError(t, err)
			require.Len(t, res.Triangles, len(res.Diagram.Vertices))

			for i, tr := range res.Triangles {
				v := res.Diagram.Vertices[i]
				r0 := math.Hypot(v.X-tc.pts[tr[0]].X, v.Y-tc.pts[tr[0]].Y)
				for _, k := range tr[1:] {
					r := math.Hypot(v.X-tc.pts[k].X, v.Y-tc.pts[k].Y)
					assert.True(t, scalar.EqualWithinAbsOrRel(r0, r, 1e-9, 1e-6),
						"vertex %d %v: radius %v vs %v", i, v, r0, r)
				}
			}
		})
	}
}

func gridPoints(cols, rows int) []voronoi.Vertex {
	pts := make([]voronoi.Vertex, 0, cols*rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			pts = append(pts, voronoi.Vertex{X: float64(j), Y: float64(i)})
		}
	}
	return pts
}

func TestEulerCounts(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		pts := randomPoints(seed, 200)
		res, err := voronoi.Compute(pts)
		require.NoError(t, err)

		n, h := len(pts), hullSize(pts)
		assert.Len(t, res.Triangles, 2*n-2-h, "seed %d", seed)
		assert.Len(t, res.Diagram.Vertices, 2*n-2-h, "seed %d", seed)
		assert.Len(t, res.Diagram.Edges, 3*n-3-h, "seed %d", seed)
		assert.Len(t, res.Diagram.Bisectors, 3*n-3-h, "seed %d", seed)
	}
}

func TestPermutationInvariance(t *testing.T) {
	pts := randomPoints(7, 150)
	perm := rand.New(rand.NewSource(8)).Perm(len(pts))
	shuffled := make([]voronoi.Vertex, len(pts))
	for i, j := range perm {
		shuffled[i] = pts[j]
	}

	a, err := voronoi.Compute(pts)
	require.NoError(t, err)
	b, err := voronoi.Compute(shuffled)
	require.NoError(t, err)

	identity := func(i int) int { return i }
	assert.Equal(t, triangleSet(a.Triangles, identity), triangleSet(b.Triangles, func(i int) int { return perm[i] }))

	va, vb := sortedVertices(a.Diagram.Vertices), sortedVertices(b.Diagram.Vertices)
	require.Len(t, vb, len(va))
	for i := range va {
		assert.InDelta(t, va[i].X, vb[i].X, 1e-6)
		assert.InDelta(t, va[i].Y, vb[i].Y, 1e-6)
	}
	require.Len(t, b.Diagram.Bisectors, len(a.Diagram.Bisectors))
	assert.Empty(t, unmatchedLines(a.Diagram.Bisectors, b.Diagram.Bisectors))
	assert.Empty(t, unmatchedLines(b.Diagram.Bisectors, a.Diagram.Bisectors))
}

// unmatchedLines returns the lines of want with no counterpart in got, each
// line of got matching at most once.
func unmatchedLines(want, got []voronoi.Line) []voronoi.Line {
	used := make([]bool, len(got))
	var ret []voronoi.Line
	for _, w := range want {
		found := false
		for i, g := range got {
			if used[i] {
				continue
			}
			if scalar.EqualWithinAbsOrRel(w.A, g.A, 1e-9, 1e-6) &&
				scalar.EqualWithinAbsOrRel(w.B, g.B, 1e-9, 1e-6) &&
				scalar.EqualWithinAbsOrRel(w.C, g.C, 1e-9, 1e-6) {
				used[i], found = true, true
				break
			}
		}
		if !found {
			ret = append(ret, w)
		}
	}
	return ret
}

func TestEdgesLieOnBisectors(t *testing.T) {
	res, err := voronoi.Compute(randomPoints(5, 250))
	require.NoError(t, err)

	d := res.Diagram
	var bounded int
	for _, e := range d.Edges {
		l := d.Bisectors[e.Bisector]
		for _, end := range []int{e.Left, e.Right} {
			if end == voronoi.Unbounded {
				continue
			}
			assert.True(t, scalar.EqualWithinAbsOrRel(l.Eval(d.Vertices[end]), 0, 1e-6, 1e-9),
				"edge %+v: residual %v", e, l.Eval(d.Vertices[end]))
		}
		if e.Bounded() {
			bounded++
		}
	}
	assert.NotZero(t, bounded)
}

func TestDelaunayOnly(t *testing.T) {
	pts := randomPoints(9, 50)
	tris, err := voronoi.ComputeDelaunayTriangulation(pts)
	require.NoError(t, err)
	assert.Len(t, tris, 2*len(pts)-2-hullSize(pts))
	for _, tr := range tris {
		for _, k := range tr {
			assert.True(t, k >= 0 && k < len(pts))
		}
	}
}

type countingObserver struct {
	sites, vertices, bisectors, edges, triangles int
}

func (c *countingObserver) Site(voronoi.Site)         { c.sites++ }
func (c *countingObserver) Vertex(voronoi.Site)       { c.vertices++ }
func (c *countingObserver) Bisector(voronoi.Line)     { c.bisectors++ }
func (c *countingObserver) Edge(voronoi.Edge)         { c.edges++ }
func (c *countingObserver) Triangle(voronoi.Triangle) { c.triangles++ }

func TestObservers(t *testing.T) {
	pts := randomPoints(3, 40)
	counts := &countingObserver{}
	trace := logger.New(logger.WithLevel(zapcore.DebugLevel), logger.WithColor(false))

	res, err := voronoi.Compute(pts, voronoi.WithObserver(counts), voronoi.WithObserver(voronoi.NewTraceObserver(trace)), voronoi.WithObserver(nil))
	require.NoError(t, err)

	assert.Equal(t, len(pts), counts.sites)
	assert.Equal(t, len(res.Diagram.Vertices), counts.vertices)
	assert.Equal(t, len(res.Diagram.Bisectors), counts.bisectors)
	assert.Equal(t, len(res.Diagram.Edges), counts.edges)
	assert.Equal(t, len(res.Triangles), counts.triangles)

	raw := trace.Raw()
	for _, tag := range []string{"[out] site", "[out] vertex", "[out] bisector", "[out] edge", "[out] triangle"} {
		assert.Contains(t, raw, tag)
	}
}

func TestSweepTrace(t *testing.T) {
	log := logger.New(logger.WithLevel(zapcore.DebugLevel), logger.WithColor(false))
	_, err := voronoi.Compute(randomPoints(4, 10), voronoi.WithLogger(log))
	require.NoError(t, err)

	raw := log.Raw()
	assert.Contains(t, raw, "[sweep] started")
	assert.Contains(t, raw, "[sweep-circle] vertex")
	assert.Contains(t, raw, "[sweep] finished")
}

func TestConcurrentRuns(t *testing.T) {
	pts := randomPoints(11, 300)
	want, err := voronoi.Compute(pts)
	require.NoError(t, err)

	const workers = 8
	results := make([]*voronoi.Result, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = voronoi.Compute(pts)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}

func BenchmarkCompute(b *testing.B) {
	pts := randomPoints(1, 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := voronoi.Compute(pts); err != nil {
			b.Fatal(err)
		}
	}
}
