package voronoi

import (
	"github.com/0x0FACED/go-voronoi/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type eventKind int

const (
	siteEvent eventKind = iota
	circleEvent
	done
)

func (k eventKind) String() string {
	switch k {
	case siteEvent:
		return "site"
	case circleEvent:
		return "circle"
	default:
		return "done"
	}
}

// Состояние одного прогона алгоритма Форчуна. Ничего общего между прогонами,
// поэтому их можно гонять параллельно.
type sweep struct {
	sites *siteList
	arena *arena
	beach *beachLine
	queue *eventQueue

	// самый нижний сайт, его область лежит под обоими концами пляжной линии
	bottom Site

	edges     []*edge
	edgeIDs   counter
	vertexIDs counter

	out   Observer
	log   *logger.ZapLogger
	debug bool
}

func newSweep(sites *siteList, out Observer, log *logger.ZapLogger) *sweep {
	box := sites.bounds()
	a := &arena{nodes: make([]halfedge, 0, 2*sites.len()+2)}
	return &sweep{
		sites: sites,
		arena: a,
		beach: newBeachLine(a, box.Xl, box.Xr, sites.len()),
		queue: newEventQueue(a, box.Yt, box.Yb, sites.len()),
		out:   out,
		log:   log,
		debug: log.Enabled(zapcore.DebugLevel),
	}
}

// run consumes all site and circle events and reports the results to the
// observer.
func (s *sweep) run() {
	s.log.Info("[sweep] started", zap.Int("sites", s.sites.len()))

	s.sites.reset()
	bottom, ok := s.sites.next()
	if !ok {
		s.log.Info("[sweep] no sites")
		return
	}
	s.bottom = bottom
	s.out.Site(bottom)

	next, more := s.nextSite(bottom)
	var iterations int
	// основной цикл: site event, если точка раньше ближайшего круга, иначе circle event
	for {
		kind := s.nextEvent(next, more)
		if s.debug {
			s.log.Debug("[sweep] event", zap.Int("iteration", iterations), zap.Stringer("kind", kind), zap.Int("pending", s.queue.len()))
		}
		iterations++

		switch kind {
		case siteEvent:
			s.handleSite(next)
			next, more = s.nextSite(next)
		case circleEvent:
			s.handleCircle()
		default:
			s.finish()
			s.log.Info("[sweep] finished",
				zap.Int("iterations", iterations),
				zap.Int("bisectors", int(s.edgeIDs)),
				zap.Int("vertices", int(s.vertexIDs)))
			return
		}
	}
}

// nextSite pulls the site following prev, skipping points that coincide
// with it: they share its region and have no bisector.
func (s *sweep) nextSite(prev Site) (Site, bool) {
	for {
		site, ok := s.sites.next()
		if !ok {
			return Site{}, false
		}
		if !site.sameAs(prev) {
			return site, true
		}
		s.log.Warn("[sweep] duplicate site skipped", zap.Int("index", site.Index), zap.Int("same_as", prev.Index))
	}
}

func (s *sweep) nextEvent(site Site, haveSite bool) eventKind {
	if haveSite && (s.queue.empty() || site.less(s.queue.min())) {
		return siteEvent
	}
	if !s.queue.empty() {
		return circleEvent
	}
	return done
}

func (s *sweep) newEdge(s1, s2 Site) *edge {
	e := bisect(s1, s2, &s.edgeIDs)
	s.edges = append(s.edges, e)
	if s.debug {
		s.log.Debug("[sweep] bisector", zap.Int("id", e.id), zap.Int("left", s1.Index), zap.Int("right", s2.Index),
			zap.Float64("a", e.a), zap.Float64("b", e.b), zap.Float64("c", e.c))
	}
	s.out.Bisector(e.line())
	return e
}

func (s *sweep) emitEdge(e *edge) {
	if e.emitted {
		return
	}
	e.emitted = true
	s.out.Edge(e.record())
}

// closeEdge fixes the end of h's bisector on h's side at v.
func (s *sweep) closeEdge(h handle, v Site) {
	n := s.arena.at(h)
	if n.edge.setEndpoint(n.side, v) {
		s.emitEdge(n.edge)
	}
}

func (s *sweep) schedule(h handle, v Site, from Site) {
	s.queue.insert(h, v, from.distance(v))
	if s.debug {
		s.log.Debug("[sweep] circle event scheduled", zap.Int32("boundary", int32(h)),
			zap.Float64("x", v.X), zap.Float64("y", v.Y), zap.Float64("ystar", s.arena.at(h).ystar))
	}
}

func (s *sweep) handleSite(site Site) {
	s.out.Site(site)

	if site.Y == s.bottom.Y {
		s.handleFirstRow(site)
		return
	}

	lbnd := s.beach.locate(site)
	rbnd := s.beach.right(lbnd)

	bot := s.beach.rightRegion(lbnd, s.bottom)
	if s.debug {
		s.log.Debug("[sweep-site] arc split", zap.Int("site", site.Index), zap.Int("arc", bot.Index))
	}
	e := s.newEdge(bot, site)

	bisector := s.arena.alloc(e, sideLeft)
	s.beach.insert(lbnd, bisector)

	// дугу, которую закрывало событие lbnd, только что разрезали, событие уже не наступит
	s.queue.delete(lbnd)
	if p, ok := s.beach.intersect(lbnd, bisector); ok {
		s.schedule(lbnd, p, site)
	}

	lbnd = bisector
	bisector = s.arena.alloc(e, sideRight)
	s.beach.insert(lbnd, bisector)

	if p, ok := s.beach.intersect(bisector, rbnd); ok {
		s.schedule(bisector, p, site)
	}
}

// handleFirstRow adds a site level with the lowest one. Such sites arrive
// left to right and every arc is still a vertical ray, so the new arc goes
// right of the last one, behind a single boundary on a vertical bisector.
func (s *sweep) handleFirstRow(site Site) {
	last := s.beach.left(s.beach.rightEnd)
	prev := s.beach.rightRegion(last, s.bottom)

	e := s.newEdge(prev, site)
	h := s.arena.alloc(e, sideLeft)
	s.beach.insert(last, h)
}

func (s *sweep) handleCircle() {
	lbnd, v := s.queue.popMin()
	llbnd := s.beach.left(lbnd)
	rbnd := s.beach.right(lbnd)
	rrbnd := s.beach.right(rbnd)
	invariant(s.arena.at(lbnd).state == alive, "circle event fired on dead boundary %d", lbnd)
	invariant(rbnd != s.beach.rightEnd, "circle event of boundary %d has no right neighbour", lbnd)

	bot := s.beach.leftRegion(lbnd, s.bottom)
	top := s.beach.rightRegion(rbnd, s.bottom)
	mid := s.beach.rightRegion(lbnd, s.bottom)
	s.out.Triangle(Triangle{bot.Index, top.Index, mid.Index})

	v.Index = s.vertexIDs.next()
	s.out.Vertex(v)
	if s.debug {
		s.log.Debug("[sweep-circle] vertex", zap.Int("index", v.Index), zap.Float64("x", v.X), zap.Float64("y", v.Y),
			zap.Ints("sites", []int{bot.Index, top.Index, mid.Index}))
	}

	s.closeEdge(lbnd, v)
	s.closeEdge(rbnd, v)

	// дуга mid исчезла, вместе с ней все события, где она участвовала
	s.beach.delete(lbnd)
	s.queue.delete(rbnd)
	s.beach.delete(rbnd)
	s.queue.delete(llbnd)

	// новое ребро всегда строим снизу вверх, иначе меняем сторону
	pm := sideLeft
	if bot.Y > top.Y {
		bot, top = top, bot
		pm = sideRight
	}

	e := s.newEdge(bot, top)
	bisector := s.arena.alloc(e, pm)
	s.beach.insert(llbnd, bisector)
	if e.setEndpoint(pm.opposite(), v) {
		s.emitEdge(e)
	}

	if p, ok := s.beach.intersect(llbnd, bisector); ok {
		s.schedule(llbnd, p, bot)
	}
	if p, ok := s.beach.intersect(bisector, rrbnd); ok {
		s.schedule(bisector, p, bot)
	}
}

// finish reports the bisectors still on the beach line: they have at least
// one open end. First-row bisectors have a single boundary, once it is gone
// their remaining end stays open without anything left to report them.
func (s *sweep) finish() {
	s.beach.each(func(h handle) {
		s.emitEdge(s.arena.at(h).edge)
	})
	for _, e := range s.edges {
		s.emitEdge(e)
	}
}

// invariant panics when an internal consistency check fails. A failure is
// a bug in the sweep, never a property of the input.
func invariant(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(errors.Errorf("voronoi: invariant violated: "+format, args...))
	}
}
