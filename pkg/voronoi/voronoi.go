// Package voronoi computes the Voronoi diagram of a set of points and the
// dual Delaunay triangulation with Fortune's sweep-line algorithm.
//
// The beach line is a doubly linked list of arc boundaries indexed by a
// hash over x, pending circle events sit in a bucketed queue over y. Every
// call owns its own state.
package voronoi

import (
	"github.com/0x0FACED/go-voronoi/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var (
	ErrNoPoints  = errors.New("voronoi: no points")
	ErrNonFinite = errors.New("voronoi: non-finite coordinate")
)

// Diagram is a Voronoi diagram. Vertices are in emission order, Bisectors in
// creation order; Edge.Bisector indexes Bisectors and Edge.Left/Right index
// Vertices.
type Diagram struct {
	Vertices  []Vertex
	Bisectors []Line
	Edges     []Edge
}

// Result bundles a diagram with its dual triangulation.
type Result struct {
	Diagram   *Diagram
	Triangles []Triangle
}

type options struct {
	log       *logger.ZapLogger
	observers observers
}

type Option func(*options)

// WithLogger traces the sweep. Debug level logs every event.
func WithLogger(l *logger.ZapLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithObserver hands every emitted record to ob as well.
func WithObserver(ob Observer) Option {
	return func(o *options) {
		if ob != nil {
			o.observers = append(o.observers, ob)
		}
	}
}

// Compute runs the sweep over points and returns the diagram together with
// the triangulation.
func Compute[P XY](points []P, opts ...Option) (*Result, error) {
	vs, err := validate(points)
	if err != nil {
		return nil, err
	}

	o := options{log: logger.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	acc := &accumulator{}
	out := append(observers{acc}, o.observers...)

	newSweep(newSiteList(vs), out, o.log).run()

	return &Result{
		Diagram: &Diagram{
			Vertices:  acc.vertices,
			Bisectors: acc.bisectors,
			Edges:     acc.edges,
		},
		Triangles: acc.triangles,
	}, nil
}

// ComputeVoronoiDiagram returns the Voronoi diagram of points.
func ComputeVoronoiDiagram[P XY](points []P, opts ...Option) (*Diagram, error) {
	r, err := Compute(points, opts...)
	if err != nil {
		return nil, err
	}
	return r.Diagram, nil
}

// ComputeDelaunayTriangulation returns the Delaunay triangles of points as
// index triples into points. Coincident points are reported once, under
// the first of their indices.
func ComputeDelaunayTriangulation[P XY](points []P, opts ...Option) ([]Triangle, error) {
	r, err := Compute(points, opts...)
	if err != nil {
		return nil, err
	}
	return r.Triangles, nil
}

// validate rejects empty input and reports every point with a NaN or
// infinite coordinate.
func validate[P XY](points []P) ([]Vertex, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	var err error
	vs := make([]Vertex, len(points))
	for i, p := range points {
		x, y := p.XY()
		if !isFinite(x) || !isFinite(y) {
			err = multierr.Append(err, errors.Wrapf(ErrNonFinite, "point %d (%v, %v)", i, x, y))
			continue
		}
		vs[i] = Vertex{X: x, Y: y}
	}
	if err != nil {
		return nil, err
	}
	return vs, nil
}
