package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nhle/todoist/internal/model"
	"github.com/nhle/todoist/internal/todo"
)

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.service.List(r.Context())
	if err != nil {
		s.logger.Printf("listing todos: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch todos")
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	found, err := s.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Todo not found")
			return
		}
		s.logger.Printf("getting todo %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch todo")
		return
	}
	writeJSON(w, http.StatusOK, found)
}

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.service.Create(r.Context(), todo.CreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, todo.ErrTitleRequired) || errors.Is(err, todo.ErrTitleTooLong) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Printf("creating todo: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create todo")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type updateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.service.Update(r.Context(), id, todo.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		if errors.Is(err, todo.ErrTitleTooLong) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Todo not found")
			return
		}
		s.logger.Printf("updating todo %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update todo")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	removed, err := s.service.Delete(r.Context(), id)
	if err != nil {
		s.logger.Printf("deleting todo %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete todo")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "Todo not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseID reads the {id} path segment. A non-numeric id is a 404, matching
// the routing boundary's treatment of unknown paths.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Todo not found")
		return 0, false
	}
	return id, true
}
