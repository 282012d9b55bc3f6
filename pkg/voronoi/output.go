package voronoi

import (
	"github.com/0x0FACED/go-voronoi/pkg/logger"
	"go.uber.org/zap"
)

// Unbounded marks the open end of a Voronoi edge.
const Unbounded = -1

// Line is a bisector a*x + b*y = c.
type Line struct {
	A, B, C float64
}

// Eval returns the residual a*x + b*y - c of v against the line.
func (l Line) Eval(v Vertex) float64 {
	return l.A*v.X + l.B*v.Y - l.C
}

// Edge is a Voronoi edge: the bisector it lies on and the indices of the
// vertices closing it, Unbounded for an open end.
type Edge struct {
	Bisector int
	Left     int
	Right    int
}

// Bounded reports whether both ends are vertices.
func (e Edge) Bounded() bool {
	return e.Left != Unbounded && e.Right != Unbounded
}

// Triangle holds the input indices of the three sites around a vertex.
type Triangle [3]int

// Observer receives everything the sweep produces, in emission order.
type Observer interface {
	Site(s Site)
	Vertex(v Site)
	Bisector(l Line)
	Edge(e Edge)
	Triangle(t Triangle)
}

// accumulator collects the results returned by the entry points.
type accumulator struct {
	vertices  []Vertex
	bisectors []Line
	edges     []Edge
	triangles []Triangle
}

func (a *accumulator) Site(Site)           {}
func (a *accumulator) Vertex(v Site)       { a.vertices = append(a.vertices, v.Vertex()) }
func (a *accumulator) Bisector(l Line)     { a.bisectors = append(a.bisectors, l) }
func (a *accumulator) Edge(e Edge)         { a.edges = append(a.edges, e) }
func (a *accumulator) Triangle(t Triangle) { a.triangles = append(a.triangles, t) }

type observers []Observer

func (o observers) Site(s Site) {
	for _, ob := range o {
		ob.Site(s)
	}
}

func (o observers) Vertex(v Site) {
	for _, ob := range o {
		ob.Vertex(v)
	}
}

func (o observers) Bisector(l Line) {
	for _, ob := range o {
		ob.Bisector(l)
	}
}

func (o observers) Edge(e Edge) {
	for _, ob := range o {
		ob.Edge(e)
	}
}

func (o observers) Triangle(t Triangle) {
	for _, ob := range o {
		ob.Triangle(t)
	}
}

type traceObserver struct {
	log *logger.ZapLogger
}

// NewTraceObserver logs every emitted record at debug level.
func NewTraceObserver(log *logger.ZapLogger) Observer {
	return traceObserver{log: log}
}

func (t traceObserver) Site(s Site) {
	t.log.Debug("[out] site", zap.Int("index", s.Index), zap.Float64("x", s.X), zap.Float64("y", s.Y))
}

func (t traceObserver) Vertex(v Site) {
	t.log.Debug("[out] vertex", zap.Int("index", v.Index), zap.Float64("x", v.X), zap.Float64("y", v.Y))
}

func (t traceObserver) Bisector(l Line) {
	t.log.Debug("[out] bisector", zap.Float64("a", l.A), zap.Float64("b", l.B), zap.Float64("c", l.C))
}

func (t traceObserver) Edge(e Edge) {
	t.log.Debug("[out] edge", zap.Int("bisector", e.Bisector), zap.Int("left", e.Left), zap.Int("right", e.Right))
}

func (t traceObserver) Triangle(tr Triangle) {
	t.log.Debug("[out] triangle", zap.Ints("sites", tr[:]))
}
