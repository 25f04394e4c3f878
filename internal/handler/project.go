// Package handler contains the HTTP layer: decode the request, call the
// service, encode the response. No business rules live here — a handler that
// knows more than status codes is a handler doing the service's job.
package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/taskflow/internal/auth"
	"github.com/sakif/taskflow/internal/service"
	"github.com/sakif/taskflow/internal/validation"
)

// ProjectHandler serves /api/projects.
type ProjectHandler struct {
	projects *service.ProjectService
	logger   *slog.Logger
}

func NewProjectHandler(projects *service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

// HandleList returns all of the user's projects.
//
// HTTP: GET /api/projects
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	projects, err := h.projects.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "project", "Failed to fetch projects")
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

// HandleGet returns a single project by id.
//
// HTTP: GET /api/projects/{id}
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	project, err := h.projects.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(w, h.logger, err, "project", "Failed to fetch project")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// HandleCreate validates and saves a new project.
//
// HTTP: POST /api/projects
// BODY: {"name": "...", "description"?: "..."}
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, h.logger, err, "project", "Failed to create project")
		return
	}

	in, errs := validation.ParseProject(body)
	if errs != nil {
		writeValidationErrors(w, "project", errs)
		return
	}

	project, err := h.projects.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, h.logger, err, "project", "Failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// HandleDelete removes a project and all of its tasks.
//
// HTTP: DELETE /api/projects/{id}
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.projects.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, h.logger, err, "project", "Failed to delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
