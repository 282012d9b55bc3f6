package voronoi

import "math"

// eventQueue holds the pending circle events. Buckets split [ymin, ymax]
// evenly, each one a list sorted by (ystar, vertex.x) threaded through the
// boundaries' qnext links.
type eventQueue struct {
	a *arena

	heads  []handle
	count  int
	minIdx int

	ymin   float64
	deltay float64
}

func newEventQueue(a *arena, ymin, ymax float64, nsites int) *eventQueue {
	size := int(4 * math.Sqrt(float64(nsites)))
	if size < 1 {
		size = 1
	}
	q := &eventQueue{
		a:      a,
		heads:  make([]handle, size),
		ymin:   ymin,
		deltay: ymax - ymin,
	}
	for i := range q.heads {
		q.heads[i] = noHandle
	}
	return q
}

func (q *eventQueue) len() int    { return q.count }
func (q *eventQueue) empty() bool { return q.count == 0 }

// bucket maps an event key to its bucket.
func (q *eventQueue) bucket(ystar float64) int {
	b := 0
	if q.deltay > 0 {
		b = int((ystar - q.ymin) / q.deltay * float64(len(q.heads)))
	}
	if b < 0 {
		b = 0
	}
	if b >= len(q.heads) {
		b = len(q.heads) - 1
	}
	return b
}

// after reports whether event h fires after event o.
func (q *eventQueue) after(h, o handle) bool {
	n, m := q.a.at(h), q.a.at(o)
	if n.ystar != m.ystar {
		return n.ystar > m.ystar
	}
	return n.vertex.X > m.vertex.X
}

// insert schedules v as the circle event of boundary h, firing when the
// sweep reaches v.Y + offset.
func (q *eventQueue) insert(h handle, v Site, offset float64) {
	n := q.a.at(h)
	invariant(!n.pending, "boundary %d already owns a live event", h)

	n.pending = true
	n.vertex = v
	n.ystar = v.Y + offset

	b := q.bucket(n.ystar)
	// округление может дать ключ чуть ниже уже снятого события, курсор идет за ним
	if b < q.minIdx {
		q.minIdx = b
	}
	prev, next := noHandle, q.heads[b]
	for next != noHandle && q.after(h, next) {
		prev = next
		next = q.a.at(next).qnext
	}

	n.qnext = next
	if prev == noHandle {
		q.heads[b] = h
	} else {
		q.a.at(prev).qnext = h
	}
	q.count++
}

// delete cancels the event owned by h, if any.
func (q *eventQueue) delete(h handle) {
	n := q.a.at(h)
	if !n.pending {
		return
	}

	b := q.bucket(n.ystar)
	if q.heads[b] == h {
		q.heads[b] = n.qnext
	} else {
		prev := q.heads[b]
		for prev != noHandle && q.a.at(prev).qnext != h {
			prev = q.a.at(prev).qnext
		}
		invariant(prev != noHandle, "event of boundary %d missing from bucket %d", h, b)
		q.a.at(prev).qnext = n.qnext
	}

	n.pending = false
	n.qnext = noHandle
	q.count--
}

func (q *eventQueue) advance() {
	for q.heads[q.minIdx] == noHandle {
		q.minIdx++
	}
}

// min peeks at the next event as a site (vertex.x, ystar), comparable
// with the next input site.
func (q *eventQueue) min() Site {
	invariant(q.count > 0, "min on an empty event queue")
	q.advance()
	n := q.a.at(q.heads[q.minIdx])
	return Site{X: n.vertex.X, Y: n.ystar}
}

// popMin removes the earliest event and returns its boundary and vertex.
func (q *eventQueue) popMin() (handle, Site) {
	invariant(q.count > 0, "pop on an empty event queue")
	q.advance()

	h := q.heads[q.minIdx]
	n := q.a.at(h)
	q.heads[q.minIdx] = n.qnext

	n.pending = false
	n.qnext = noHandle
	q.count--
	return h, n.vertex
}
