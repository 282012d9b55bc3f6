package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/0x0FACED/go-voronoi/pkg/logger"
	"github.com/0x0FACED/go-voronoi/pkg/voronoi"
	"github.com/0x0FACED/go-voronoi/static"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const (
	maxSide     = 5000
	maxStations = 2000
	// above this many stations the page log keeps info lines only
	traceLimit = 200
)

type server struct {
	cfg Config
	log *logger.ZapLogger

	// rand.Rand не потокобезопасен, а хендлер крутится в горутине на каждое соединение
	mu  sync.Mutex
	rng *rand.Rand
}

func newServer(cfg Config, log *logger.ZapLogger) *server {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &server{cfg: cfg, log: log, rng: rand.New(rand.NewSource(seed))}
}

// stations generates the stations of one request.
func (s *server) stations(req request) []Station {
	if !req.random {
		return generateFixStations(req.stations, req.width, req.height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return generateRandStations(s.rng, req.stations, req.width, req.height)
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.diagramHandler)
	return mux
}

type request struct {
	width, height int
	stations      int
	random        bool
	delaunay      bool
}

func formInt(r *http.Request, key string, def int) (int, error) {
	v := r.FormValue(key)
	if v == "" {
		return def, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, errors.Wrapf(err, "field %q", key)
	}
	return n, nil
}

// parseRequest reads the form of a POST; a GET gets the configured defaults.
func (s *server) parseRequest(r *http.Request) (request, error) {
	req := request{
		width:    s.cfg.Width,
		height:   s.cfg.Height,
		stations: s.cfg.Stations,
		random:   s.cfg.Random,
		delaunay: true,
	}
	if r.Method != http.MethodPost {
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return req, errors.Wrap(err, "parse form")
	}

	var err error
	if req.width, err = formInt(r, "width", req.width); err != nil {
		return req, err
	}
	if req.height, err = formInt(r, "height", req.height); err != nil {
		return req, err
	}
	if req.stations, err = formInt(r, "stations", req.stations); err != nil {
		return req, err
	}
	req.random = cast.ToBool(r.FormValue("random"))
	req.delaunay = cast.ToBool(r.FormValue("delaunay"))

	if req.width <= 0 || req.width > maxSide || req.height <= 0 || req.height > maxSide {
		return req, errors.Errorf("area %dx%d out of range", req.width, req.height)
	}
	if req.stations < 1 || req.stations > maxStations {
		return req, errors.Errorf("station count %d out of range", req.stations)
	}
	return req, nil
}

// http handler for the page with the diagram and the input form
func (s *server) diagramHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		s.log.Warn("[app] bad request", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stations := s.stations(req)

	var trace *logger.ZapLogger
	if req.stations > traceLimit {
		trace = logger.New(logger.WithLevel(zap.InfoLevel))
	} else {
		trace = logger.New()
	}

	start := time.Now()
	res, err := voronoi.Compute(stations, voronoi.WithLogger(trace))
	if err != nil {
		s.log.Error("[app] sweep failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.log.Info("[app] diagram built",
		zap.Int("stations", len(stations)),
		zap.Int("vertices", len(res.Diagram.Vertices)),
		zap.Int("edges", len(res.Diagram.Edges)),
		zap.Int("triangles", len(res.Triangles)),
		zap.Duration("took", time.Since(start)))

	bbox := voronoi.NewBoundingBox(0, float64(req.width), 0, float64(req.height))
	scatter := voronoiToEcharts(stations, res, bbox, req.delaunay)

	fmt.Fprintln(w, static.Head)
	if err := scatter.Render(w); err != nil {
		s.log.Error("[app] chart render failed", zap.Error(err))
	}
	// вставляем логи прогона в HTML
	fmt.Fprintln(w, static.LogsOpen)
	fmt.Fprintln(w, trace.Logs())
	fmt.Fprintln(w, static.Tail)
}
