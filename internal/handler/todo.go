package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tasklist/tasklist-go/internal/metrics"
	"github.com/tasklist/tasklist-go/internal/middleware"
	"github.com/tasklist/tasklist-go/internal/model"
	"github.com/tasklist/tasklist-go/internal/service"
)

// TodoHandler handles HTTP requests for todo operations. Every route expects
// middleware.RequireUser to have run.
type TodoHandler struct {
	service *service.TodoService
	metrics metrics.Recorder
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService, rec metrics.Recorder) *TodoHandler {
	return &TodoHandler{service: svc, metrics: rec}
}

func (h *TodoHandler) owner(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
	}
	return user, ok
}

// HandleCreate handles POST /todos requests.
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req model.CreateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := h.service.Create(r.Context(), owner, req)
	h.metrics.RecordTodoOp("create", outcome(err))
	if err != nil {
		writeServiceError(w, r, "create todo", err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

// HandleList handles GET /todos?status= requests.
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	resp, err := h.service.List(r.Context(), owner, r.URL.Query().Get("status"))
	h.metrics.RecordTodoOp("list", outcome(err))
	if err != nil {
		writeServiceError(w, r, "list todos", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PUT /todos/{id} requests.
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req model.UpdateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := h.service.Update(r.Context(), owner, chi.URLParam(r, "id"), req)
	h.metrics.RecordTodoOp("update", outcome(err))
	if err != nil {
		writeServiceError(w, r, "update todo", err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// HandleDelete handles DELETE /todos/{id} requests.
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	err := h.service.Delete(r.Context(), owner, chi.URLParam(r, "id"))
	h.metrics.RecordTodoOp("delete", outcome(err))
	if err != nil {
		writeServiceError(w, r, "delete todo", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("todo deleted successfully"))
}
