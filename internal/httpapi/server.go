package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mesh-intelligence/corkboard/pkg/board"
	"github.com/mesh-intelligence/corkboard/pkg/resource"
)

// Server serves the task CRUD API.
type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	store     resource.Store[*board.Task]
	validator resource.Validator[*board.Task]
}

// New builds a Server over the given store and validator.
func New(store resource.Store[*board.Task], validator resource.Validator[*board.Task], logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		store:     store,
		validator: validator,
	}
	s.registerRoutes()
	return s
}

// Start listens on the configured address and serves until the listener
// fails.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Handler returns the full handler chain, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /tasks", s.handleCreateTask)
	s.mux.HandleFunc("GET /tasks", s.handleBatchGetTasks)
	s.mux.HandleFunc("GET /tasks/all", s.handleListTasks)
	s.mux.HandleFunc("GET /tasks/health", s.handleHealth)
	s.mux.HandleFunc("GET /tasks/{id}", s.handleGetTask)
	s.mux.HandleFunc("PUT /tasks/{id}", s.handleUpdateTask)
	s.mux.HandleFunc("PATCH /tasks/{id}", s.handlePatchTask)
	s.mux.HandleFunc("DELETE /tasks/{id}", s.handleDeleteTask)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
