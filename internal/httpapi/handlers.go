package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mesh-intelligence/corkboard/pkg/board"
)

// listResponse is the wire shape for GET /tasks/all.
type listResponse struct {
	Tasks []*board.Task `json:"tasks"`
	Count int           `json:"count"`
}

// handleCreateTask creates a task, or replaces an existing one when the
// caller supplies an ID that is already stored (upsert). A fresh
// creation answers 201, a replace answers 200.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var task board.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.ValidateRecord(&task); err != nil {
		s.writeValidationFailure(w, err)
		return
	}
	if err := board.Canonicalize(&task); err != nil {
		s.logger.Error("canonicalizing validated task", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	if task.ID != "" && s.store.Exists(task.ID) {
		updated, ok := s.store.Update(task.ID, &task)
		if !ok {
			// Deleted between Exists and Update; fall through to create.
			s.writeJSON(w, http.StatusCreated, s.store.Create(&task))
			return
		}
		s.writeJSON(w, http.StatusOK, updated)
		return
	}

	// A caller-supplied ID that does not exist yet creates with that ID.
	s.writeJSON(w, http.StatusCreated, s.store.Create(&task))
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	s.writeJSON(w, http.StatusOK, task)
}

// handleBatchGetTasks resolves GET /tasks?ids=a,b,c. The ids parameter
// accepts both repeated parameters and comma-separated values.
func (s *Server) handleBatchGetTasks(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query()["ids"]
	if len(raw) == 0 {
		s.writeError(w, http.StatusBadRequest, "Missing required parameter: ids")
		return
	}

	var ids []string
	for _, v := range raw {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	s.writeJSON(w, http.StatusOK, s.store.BatchGet(ids))
}

// handleListTasks resolves GET /tasks/all with optional filter query
// parameters. Every query parameter becomes a filter entry; the store
// ignores keys it does not recognize.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			filters[strings.ToLower(key)] = values[0]
		}
	}

	tasks := s.store.ListAll(filters)
	s.writeJSON(w, http.StatusOK, listResponse{Tasks: tasks, Count: len(tasks)})
}

// handleUpdateTask replaces a task wholesale. It never creates.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var task board.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.ValidateRecord(&task); err != nil {
		s.writeValidationFailure(w, err)
		return
	}
	if err := board.Canonicalize(&task); err != nil {
		s.logger.Error("canonicalizing validated task", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	updated, ok := s.store.Update(r.PathValue("id"), &task)
	if !ok {
		s.writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handlePatchTask(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.ValidatePatch(patch); err != nil {
		s.writeValidationFailure(w, err)
		return
	}

	patched, found, err := s.store.Patch(r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if !found {
		s.writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	s.writeJSON(w, http.StatusOK, patched)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(r.PathValue("id")) {
		s.writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "UP",
		"service": "corkboard",
	})
}
