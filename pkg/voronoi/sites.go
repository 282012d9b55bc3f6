package voronoi

import (
	"math"
	"sort"
)

// siteList holds the input sites in sweep order.
type siteList struct {
	sites  []Site
	box    BoundingBox
	cursor int
}

type sitesByY []Site

func (s sitesByY) Len() int           { return len(s) }
func (s sitesByY) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s sitesByY) Less(i, j int) bool { return s[i].less(s[j]) }

func newSiteList(points []Vertex) *siteList {
	l := &siteList{sites: make([]Site, len(points))}

	xmin, ymin := math.Inf(1), math.Inf(1)
	xmax, ymax := math.Inf(-1), math.Inf(-1)
	for i, p := range points {
		l.sites[i] = Site{X: p.X, Y: p.Y, Index: i}
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}
	if len(points) == 0 {
		xmin, xmax, ymin, ymax = 0, 0, 0, 0
	}
	l.box = NewBoundingBox(xmin, xmax, ymin, ymax)

	// стабильная сортировка, чтобы дубликаты шли в порядке ввода (берется первый индекс)
	sort.Stable(sitesByY(l.sites))
	return l
}

func (l *siteList) len() int { return len(l.sites) }

func (l *siteList) bounds() BoundingBox { return l.box }

// next pulls the following site, ok is false once the list is exhausted.
func (l *siteList) next() (s Site, ok bool) {
	if l.cursor >= len(l.sites) {
		return Site{}, false
	}
	s = l.sites[l.cursor]
	l.cursor++
	return s, true
}

func (l *siteList) reset() { l.cursor = 0 }
