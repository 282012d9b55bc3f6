package voronoi

import (
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats/scalar"
)

const epsilon = 1e-9

// XY is implemented by anything that can be fed to the sweep as a point.
type XY interface {
	XY() (x, y float64)
}

// Vertex is a point of the plane: an input station or a Voronoi vertex.
type Vertex struct {
	X float64
	Y float64
}

func (v Vertex) XY() (float64, float64) { return v.X, v.Y }

// PointsOf builds vertices from raw coordinate pairs of any float type.
func PointsOf[T constraints.Float](coords [][2]T) []Vertex {
	ret := make([]Vertex, len(coords))
	for i, c := range coords {
		ret[i] = Vertex{X: float64(c[0]), Y: float64(c[1])}
	}
	return ret
}

// Site is a point taking part in the sweep. Input sites keep the index the
// point had in the caller's slice; vertex sites get their emission index.
type Site struct {
	X     float64
	Y     float64
	Index int
}

func (s Site) Vertex() Vertex { return Vertex{s.X, s.Y} }

// less orders sites the way the sweep meets them: by y, then by x.
func (s Site) less(o Site) bool {
	if s.Y != o.Y {
		return s.Y < o.Y
	}
	return s.X < o.X
}

func (s Site) sameAs(o Site) bool {
	return s.X == o.X && s.Y == o.Y
}

func (s Site) distance(o Site) float64 {
	return math.Hypot(s.X-o.X, s.Y-o.Y)
}

// Bounding Box
type BoundingBox struct {
	Xl, Xr, Yt, Yb float64
}

// Create new Bounding Box
func NewBoundingBox(xl, xr, yt, yb float64) BoundingBox {
	return BoundingBox{xl, xr, yt, yb}
}

// Dx is the width of the box.
func (b BoundingBox) Dx() float64 { return b.Xr - b.Xl }

// Dy is the height of the box.
func (b BoundingBox) Dy() float64 { return b.Yb - b.Yt }

// Contains reports whether v lies in the box, borders included up to epsilon.
func (b BoundingBox) Contains(v Vertex) bool {
	return !lessThanWithEpsilon(v.X, b.Xl) && !greaterThanWithEpsilon(v.X, b.Xr) &&
		!lessThanWithEpsilon(v.Y, b.Yt) && !greaterThanWithEpsilon(v.Y, b.Yb)
}

// Grow returns the box enlarged by margin on every side.
func (b BoundingBox) Grow(margin float64) BoundingBox {
	return BoundingBox{b.Xl - margin, b.Xr + margin, b.Yt - margin, b.Yb + margin}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func equalWithEpsilon(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, epsilon)
}

func lessThanWithEpsilon(a, b float64) bool {
	return b-a > epsilon
}

func greaterThanWithEpsilon(a, b float64) bool {
	return a-b > epsilon
}
