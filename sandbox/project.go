package sandbox

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hairizuanbinnoorazman/bizadmin/client"
	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"github.com/hairizuanbinnoorazman/bizadmin/project"
)

// ProjectHandler handles project-related requests.
type ProjectHandler struct {
	projectStore project.Store
	clientStore  client.Store
	logger       logger.Logger
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectStore project.Store, clientStore client.Store, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectStore: projectStore,
		clientStore:  clientStore,
		logger:       log,
	}
}

// List handles listing projects, honoring the status, clientId and search
// query parameters.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := project.FiltersFromQuery(r.URL.Query())

	projects, err := h.projectStore.List(r.Context(), filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	respond(w, http.StatusOK, envelope{"projects": projects})
}

// Stats handles the aggregate counts.
func (h *ProjectHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.projectStore.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count projects")
		return
	}

	respond(w, http.StatusOK, envelope{"stats": stats})
}

// ByClient handles listing the projects of one client.
func (h *ProjectHandler) ByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := client.ParseID(mux.Vars(r)["clientId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client ID")
		return
	}

	projects, err := h.projectStore.List(r.Context(), project.Filters{ClientID: clientID})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	respond(w, http.StatusOK, envelope{"projects": projects})
}

// Clients handles listing the clients projects can be assigned to.
func (h *ProjectHandler) Clients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientStore.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list clients")
		return
	}

	respond(w, http.StatusOK, envelope{"clients": clients})
}

// GetByID handles getting a single project by ID.
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	proj, err := h.projectStore.GetByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "failed to get project")
		return
	}

	respond(w, http.StatusOK, envelope{"project": proj})
}

// Create handles creating a new project.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req project.CreateRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == "" {
		req.Status = project.StatusPending
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.clientExists(w, r, req.ClientID) {
		return
	}

	proj := &project.Project{
		ClientID:    req.ClientID,
		ProjectName: req.ProjectName,
		Description: req.Description,
		Status:      req.Status,
	}
	if err := h.projectStore.Create(r.Context(), proj); err != nil {
		h.respondStoreError(w, err, "failed to create project")
		return
	}

	respond(w, http.StatusCreated, envelope{
		"project": proj,
		"message": "project created",
	})
}

// Update handles updating a project.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req project.UpdateInput
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.IsEmpty() {
		respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ClientID != nil && !h.clientExists(w, r, *req.ClientID) {
		return
	}

	h.update(w, r, id, req.Setters()...)
}

// UpdateStatus handles changing only the status of a project.
func (h *ProjectHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req project.StatusRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.update(w, r, id, project.SetStatus(req.Status))
}

// Delete handles soft deleting a project.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.projectStore.Delete(r.Context(), id); err != nil {
		h.respondStoreError(w, err, "failed to delete project")
		return
	}

	respondMessage(w, "project deleted successfully")
}

func (h *ProjectHandler) update(w http.ResponseWriter, r *http.Request, id string, setters ...project.UpdateSetter) {
	if err := h.projectStore.Update(r.Context(), id, setters...); err != nil {
		h.respondStoreError(w, err, "failed to update project")
		return
	}

	updated, err := h.projectStore.GetByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "failed to get updated project")
		return
	}

	respond(w, http.StatusOK, envelope{"project": updated})
}

func (h *ProjectHandler) clientExists(w http.ResponseWriter, r *http.Request, clientID int) bool {
	if _, err := h.clientStore.GetByID(r.Context(), clientID); err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			respondError(w, http.StatusBadRequest, "client not found")
			return false
		}
		respondError(w, http.StatusInternalServerError, "failed to check client")
		return false
	}
	return true
}

func (h *ProjectHandler) respondStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		respondError(w, http.StatusNotFound, "project not found")
	case errors.Is(err, project.ErrInvalidProjectName),
		errors.Is(err, project.ErrInvalidClient),
		errors.Is(err, project.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
