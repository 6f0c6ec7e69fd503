// Package server exposes the route planner over HTTP.
//
// # Endpoints
//
//	POST /v1/routes          plan a route (planner.Request in, planner.Report out)
//	GET  /v1/vertices/{id}   look up a location
//	GET  /healthz            liveness and dataset summary
//	GET  /metrics            Prometheus metrics, when a handler is configured
//
// Every response carries an X-Request-ID header. A client-supplied UUID is
// echoed back; otherwise a new one is generated. Errors are JSON objects of
// the form {"error": {"code": "...", "message": "..."}} with a status code
// derived from the error code.
//
// Planning requests are served one at a time.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/staragarcia/routeplanner/pkg/buildinfo"
	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
	"github.com/staragarcia/routeplanner/pkg/planner"
)

// maxBodyBytes bounds the size of a request body.
const maxBodyBytes = 1 << 20

// Server serves the HTTP API for one planner.
type Server struct {
	planner *planner.Planner
	logger  *log.Logger
	metrics http.Handler
	mu      sync.Mutex // serializes planning
}

// New creates a server for p. metrics is mounted at /metrics when non-nil.
// If logger is nil, log.Default() is used.
func New(p *planner.Planner, logger *log.Logger, metrics http.Handler) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{planner: p, logger: logger, metrics: metrics}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.health)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/routes", s.planRoute)
		r.Get("/vertices/{id}", s.getVertex)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, rperrors.New(rperrors.ErrCodeUnsupported, "no route for %s %s", r.Method, r.URL.Path), http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, rperrors.New(rperrors.ErrCodeUnsupported, "method %s not allowed", r.Method), http.StatusMethodNotAllowed)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) planRoute(w http.ResponseWriter, r *http.Request) {
	var req planner.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, rperrors.Wrap(rperrors.ErrCodeInvalidInput, err, "invalid request body"), 0)
		return
	}

	s.mu.Lock()
	report, err := s.planner.Plan(r.Context(), req)
	s.mu.Unlock()
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type vertexResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name,omitempty"`
	Code     string `json:"code,omitempty"`
	Parking  bool   `json:"parking"`
	Outgoing int    `json:"outgoing"`
	Incoming int    `json:"incoming"`
}

func (s *Server) getVertex(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, rperrors.New(rperrors.ErrCodeInvalidInput, "location id %q is not a number", raw), 0)
		return
	}
	g := s.planner.Graph
	v, ok := g.Vertex(id)
	if !ok {
		writeError(w, r, rperrors.New(rperrors.ErrCodeVertexNotFound, "location %d does not exist", id), 0)
		return
	}
	writeJSON(w, http.StatusOK, vertexResponse{
		ID:       v.ID,
		Name:     v.Name,
		Code:     v.Code,
		Parking:  v.Parking,
		Outgoing: len(g.Outgoing(id)),
		Incoming: len(g.Incoming(id)),
	})
}

type healthResponse struct {
	Status   string `json:"status"`
	Vertices int    `json:"vertices"`
	Edges    int    `json:"edges"`
	Parking  int    `json:"parking"`
	Graph    string `json:"graph"`
	Version  string `json:"version"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	g := s.planner.Graph
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Vertices: g.VertexCount(),
		Edges:    g.EdgeCount(),
		Parking:  g.ParkingCount(),
		Graph:    s.planner.GraphHash,
		Version:  buildinfo.Get().Version,
	})
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes err as JSON. A zero status derives one from the error
// code.
func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	if status == 0 {
		status = rperrors.HTTPStatus(err)
	}
	code := rperrors.GetCode(err)
	if code == "" {
		code = rperrors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      string(code),
		Message:   planner.ErrorMessage(err),
		RequestID: RequestIDFrom(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
