package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/nhle/todoist/internal/model"
	"github.com/nhle/todoist/internal/todo"
)

// TodoService is the store contract the boundary exposes over HTTP.
// *todo.Service is the production implementation.
type TodoService interface {
	List(ctx context.Context) ([]model.Todo, error)
	Get(ctx context.Context, id int64) (model.Todo, error)
	Create(ctx context.Context, in todo.CreateInput) (model.Todo, error)
	Update(ctx context.Context, id int64, in todo.UpdateInput) (model.Todo, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Server routes todo API requests to the service.
type Server struct {
	service        TodoService
	logger         *log.Logger
	requestTimeout time.Duration
	mux            *http.ServeMux
}

// NewServer builds the route table for the todo API. requestTimeout bounds
// a single request; zero means the 10 second default.
func NewServer(service TodoService, logger *log.Logger, requestTimeout time.Duration) *Server {
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	s := &Server{
		service:        service,
		logger:         logger,
		requestTimeout: requestTimeout,
		mux:            http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /api/todos", s.handleListTodos)
	s.mux.HandleFunc("POST /api/todos", s.handleCreateTodo)
	s.mux.HandleFunc("GET /api/todos/{id}", s.handleGetTodo)
	s.mux.HandleFunc("PUT /api/todos/{id}", s.handleUpdateTodo)
	s.mux.HandleFunc("DELETE /api/todos/{id}", s.handleDeleteTodo)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withMiddleware(s.mux, s.logger, s.requestTimeout).ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
