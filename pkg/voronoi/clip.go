package voronoi

import "math"

// Segment is the visible part of a Voronoi edge inside a bounding box.
type Segment struct {
	Va       Vertex
	Vb       Vertex
	Bisector int
}

// Segments clips every edge of the diagram to bbox. Open ends are extended
// to the box along their bisector first; edges missing the box and
// degenerate pieces are dropped.
func (d *Diagram) Segments(bbox BoundingBox) []Segment {
	ret := make([]Segment, 0, len(d.Edges))
	for _, e := range d.Edges {
		seg, ok := d.connectEdge(e, bbox)
		if !ok || !seg.clip(bbox) ||
			(equalWithEpsilon(seg.Va.X, seg.Vb.X) && equalWithEpsilon(seg.Va.Y, seg.Vb.Y)) {
			continue
		}
		ret = append(ret, seg)
	}
	return ret
}

func (d *Diagram) vertex(i int) *Vertex {
	if i == Unbounded {
		return nil
	}
	return &d.Vertices[i]
}

// connectEdge turns e into a finite segment. For lines normalised on x
// (a == 1) the ends are ordered by y, otherwise by x; which stored end is
// the low one depends on the sign of b, the way the sweep orients them.
func (d *Diagram) connectEdge(e Edge, bbox BoundingBox) (Segment, bool) {
	l := d.Bisectors[e.Bisector]
	left, right := d.vertex(e.Left), d.vertex(e.Right)
	seg := Segment{Bisector: e.Bisector}

	if left != nil && right != nil {
		seg.Va, seg.Vb = *left, *right
		return seg, true
	}

	s1, s2 := left, right
	if l.A == 1.0 && l.B >= 0.0 {
		s1, s2 = right, left
	}

	if l.A == 1.0 {
		y1, y2 := bbox.Yt, bbox.Yb
		if s1 != nil {
			if s1.Y > y2 {
				return seg, false
			}
			y1 = s1.Y
		}
		if s2 != nil {
			if s2.Y < y1 {
				return seg, false
			}
			y2 = s2.Y
		}
		seg.Va = Vertex{l.C - l.B*y1, y1}
		seg.Vb = Vertex{l.C - l.B*y2, y2}
	} else {
		x1, x2 := bbox.Xl, bbox.Xr
		if s1 != nil {
			if s1.X > x2 {
				return seg, false
			}
			x1 = s1.X
		}
		if s2 != nil {
			if s2.X < x1 {
				return seg, false
			}
			x2 = s2.X
		}
		seg.Va = Vertex{x1, l.C - l.A*x1}
		seg.Vb = Vertex{x2, l.C - l.A*x2}
	}

	// keep the sweep's vertices exact instead of recomputing them
	if s1 != nil {
		seg.Va = *s1
	}
	if s2 != nil {
		seg.Vb = *s2
	}
	return seg, true
}

// clip is Liang-Barsky clipping of seg against bbox. A point
// Va + t*(Vb - Va) is inside a border while p*t <= q.
func (seg *Segment) clip(bbox BoundingBox) bool {
	dx := seg.Vb.X - seg.Va.X
	dy := seg.Vb.Y - seg.Va.Y
	borders := [4][2]float64{
		{-dx, seg.Va.X - bbox.Xl}, // left
		{dx, bbox.Xr - seg.Va.X},  // right
		{-dy, seg.Va.Y - bbox.Yt}, // top
		{dy, bbox.Yb - seg.Va.Y},  // bottom
	}

	t0, t1 := 0.0, 1.0
	for _, b := range borders {
		p, q := b[0], b[1]
		if p == 0 {
			// параллельно границе: либо целиком снаружи, либо граница не мешает
			if q < 0 {
				return false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = math.Min(t1, r)
		}
	}

	a := seg.Va
	if t1 < 1 {
		seg.Vb = Vertex{a.X + t1*dx, a.Y + t1*dy}
	}
	if t0 > 0 {
		seg.Va = Vertex{a.X + t0*dx, a.Y + t0*dy}
	}
	return true
}
