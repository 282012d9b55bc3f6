package voronoi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func drain(l *siteList) []Site {
	var ret []Site
	for s, ok := l.next(); ok; s, ok = l.next() {
		ret = append(ret, s)
	}
	return ret
}

func TestSiteListOrder(t *testing.T) {
	l := newSiteList([]Vertex{{3, 1}, {0, 2}, {1, 1}, {3, 1}, {-2, 0}})
	require.Equal(t, 5, l.len())
	require.Equal(t, NewBoundingBox(-2, 3, 0, 2), l.bounds())

	got := drain(l)
	require.Equal(t, []Site{
		{X: -2, Y: 0, Index: 4},
		{X: 1, Y: 1, Index: 2},
		{X: 3, Y: 1, Index: 0},
		{X: 3, Y: 1, Index: 3},
		{X: 0, Y: 2, Index: 1},
	}, got)

	_, ok := l.next()
	require.False(t, ok)

	l.reset()
	require.Equal(t, got, drain(l))
}

func TestSiteListEmpty(t *testing.T) {
	l := newSiteList(nil)
	require.Equal(t, 0, l.len())
	require.Equal(t, BoundingBox{}, l.bounds())
	_, ok := l.next()
	require.False(t, ok)
}
