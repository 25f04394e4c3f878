package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/taskflow/internal/auth"
	"github.com/sakif/taskflow/internal/repository"
	"github.com/sakif/taskflow/internal/service"
	"github.com/sakif/taskflow/internal/validation"
)

// TaskHandler serves /api/tasks.
type TaskHandler struct {
	tasks  *service.TaskService
	logger *slog.Logger
}

func NewTaskHandler(tasks *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

// HandleList returns one page of the user's tasks, filtered by query params.
//
// HTTP: GET /api/tasks?projectId=&status=&priority=&deadlineFrom=&deadlineTo=&page=&limit=
//
// All filters are optional and combine conjunctively. page and limit that are
// absent, non-numeric, or non-positive silently fall back to the defaults —
// a listing endpoint shouldn't 400 over a malformed page number.
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	q := r.URL.Query()

	filter := repository.TaskFilter{
		ProjectID:    q.Get("projectId"),
		Status:       q.Get("status"),
		Priority:     q.Get("priority"),
		DeadlineFrom: q.Get("deadlineFrom"),
		DeadlineTo:   q.Get("deadlineTo"),
	}

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.tasks.List(r.Context(), userID, filter, page, limit)
	if err != nil {
		writeError(w, h.logger, err, "task", "Failed to fetch tasks")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleGet returns a single task with its project embedded.
//
// HTTP: GET /api/tasks/{id}
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	task, err := h.tasks.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(w, h.logger, err, "task", "Failed to fetch task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// HandleCreate validates and saves a new task.
//
// HTTP: POST /api/tasks
// BODY: {"title": "...", "projectId": "...", "description"?, "status"?,
//        "priority"?, "deadline"?}
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, h.logger, err, "task", "Failed to create task")
		return
	}

	in, errs := validation.ParseTask(body)
	if errs != nil {
		writeValidationErrors(w, "task", errs)
		return
	}

	task, err := h.tasks.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, h.logger, err, "task", "Failed to create task")
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// HandleUpdate applies a partial update and returns the updated task.
//
// HTTP: PUT /api/tasks/{id}
//
// Only the fields present in the body change. An explicit null clears
// description or deadline; null on any other field is a validation error.
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, h.logger, err, "task", "Failed to update task")
		return
	}

	patch, errs := validation.ParseTaskPatch(body)
	if errs != nil {
		writeValidationErrors(w, "task", errs)
		return
	}

	task, err := h.tasks.Update(r.Context(), r.PathValue("id"), userID, patch)
	if err != nil {
		writeError(w, h.logger, err, "task", "Failed to update task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// HandleDelete removes a task.
//
// HTTP: DELETE /api/tasks/{id}
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.tasks.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, h.logger, err, "task", "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
