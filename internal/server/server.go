// Package server exposes a loaded scene over HTTP for inspection.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	sceneio "scene-graph/io"
	"scene-graph/scene"
)

// Server serves read-only views of a scene. World queries refresh cached
// matrices, so every request holds the scene lock.
type Server struct {
	mu     sync.Mutex
	name   string
	roots  []*scene.Node
	logger *slog.Logger

	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	nodes       prometheus.Gauge
	propagation prometheus.Histogram
}

// WorldTransform is the body of GET /nodes/{name}.
type WorldTransform struct {
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	Kind       string     `json:"kind"`
	Position   [3]float64 `json:"position"`
	Quaternion [4]float64 `json:"quaternion"`
	Scale      [3]float64 `json:"scale"`
	Direction  [3]float64 `json:"direction"`
}

func New(name string, roots []*scene.Node, logger *slog.Logger) *Server {
	s := &Server{
		name:     name,
		roots:    roots,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scenegraph_http_requests_total",
				Help: "Total number of inspection requests",
			},
			[]string{"route", "code"},
		),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scenegraph_nodes",
			Help: "Number of nodes in the served scene",
		}),
		propagation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scenegraph_propagation_seconds",
			Help:    "Duration of full world matrix passes",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	s.registry.MustRegister(s.requests, s.nodes, s.propagation)

	count := 0
	for _, r := range roots {
		r.Traverse(func(*scene.Node) { count++ })
	}
	s.nodes.Set(float64(count))
	return s
}

// Handler returns the router:
//
//	GET /scene         snapshot of every root
//	GET /nodes/{name}  world transform of the first node with that name
//	GET /metrics       prometheus metrics
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/scene", s.handleScene)
	r.Get("/nodes/{name}", s.handleNode)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	start := time.Now()
	for _, root := range s.roots {
		root.UpdateMatrixWorld(false)
	}
	s.propagation.Observe(time.Since(start).Seconds())
	f := sceneio.NewSceneFile(s.name, s.roots...)
	s.mu.Unlock()

	s.writeJSON(w, "scene", http.StatusOK, f)
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	defer s.mu.Unlock()

	var node *scene.Node
	for _, root := range s.roots {
		if node = root.ObjectByName(name); node != nil {
			break
		}
	}
	if node == nil {
		s.requests.WithLabelValues("node", "404").Inc()
		http.Error(w, "node not found", http.StatusNotFound)
		return
	}

	s.writeJSON(w, "node", http.StatusOK, WorldTransform{
		Name:       node.Name,
		Path:       node.Path(),
		Kind:       node.Kind().String(),
		Position:   sceneio.Vec3ToArray(node.WorldPosition()),
		Quaternion: sceneio.QuatToArray(node.WorldQuaternion()),
		Scale:      sceneio.Vec3ToArray(node.WorldScale()),
		Direction:  sceneio.Vec3ToArray(node.WorldDirection()),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, route string, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encode failed", "route", route, "error", err)
	}
	s.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
