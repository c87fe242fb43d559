package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tutorialhub/backend/internal/models"
)

// TutorialsService is the interface that wraps methods for tutorials business logic.
type TutorialsService interface {
	// Method Create validates and stores a new tutorial using the configured repository.
	//
	// Title is required; published is always false on creation.
	// If validation fails or some error occurs during creation, the error will be returned together with "nil" value.
	Create(ctx context.Context, req *models.CreateTutorialRequest) (*models.Tutorial, error)
	// Method GetAll retrieves a list of all tutorials using the configured repository.
	//
	// "titleFilter" parameter, when non-empty, restricts the result to tutorials whose
	// title contains the given substring (case-insensitive).
	// If some error occurs during data retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context, titleFilter string) ([]models.Tutorial, error)
	// Method GetPublished retrieves all tutorials with published=true using the configured repository.
	//
	// If some error occurs during data retrieval, the error will be returned together with "nil" value.
	GetPublished(ctx context.Context) ([]models.Tutorial, error)
	// Method GetByID retrieves a tutorial by its id using the configured repository.
	//
	// "idParam" is the raw id path parameter. Malformed and unknown ids both yield
	// a "tutorial not found" error.
	GetByID(ctx context.Context, idParam string) (*models.Tutorial, error)
	// Method Update merges the supplied fields into an existing tutorial using the configured repository.
	//
	// Only non-nil fields of "req" are applied. The updated document is returned.
	Update(ctx context.Context, idParam string, req *models.UpdateTutorialRequest) (*models.Tutorial, error)
	// Method Delete removes a tutorial by its id using the configured repository.
	Delete(ctx context.Context, idParam string) error
	// Method DeleteAll removes every tutorial and reports the removed count.
	DeleteAll(ctx context.Context) (int64, error)
}

// TutorialsHandler handles HTTP requests for tutorials
type TutorialsHandler struct {
	BaseHandler
	service TutorialsService
}

// NewTutorialsHandler creates a new tutorials handler
func NewTutorialsHandler(svc TutorialsService, logger *zap.Logger) *TutorialsHandler {
	return &TutorialsHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all tutorials handler routes
func (h *TutorialsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/tutorials", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.GetAll)
		r.Delete("/", h.DeleteAll)
		r.Get("/published", h.GetPublished)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles POST /api/tutorials
// @Summary Create a tutorial
// @Description Create a new tutorial with the given title and description. New tutorials are unpublished.
// @Tags tutorials
// @Accept json
// @Produce json
// @Param tutorial body models.CreateTutorialRequest true "Tutorial creation request"
// @Success 201 {object} models.Tutorial
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/tutorials [post]
func (h *TutorialsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTutorialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tutorial, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if strings.Contains(err.Error(), "title is required") {
			h.respondError(w, http.StatusBadRequest, "title is required")
			return
		}
		h.logger.Error("failed to create tutorial", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to create tutorial")
		return
	}

	h.respondJSON(w, http.StatusCreated, tutorial)
}

// GetAll handles GET /api/tutorials
// @Summary List tutorials
// @Description Get all tutorials, optionally filtered by a case-insensitive title substring
// @Tags tutorials
// @Accept json
// @Produce json
// @Param title query string false "Title substring filter"
// @Success 200 {array} models.Tutorial
// @Failure 500 {object} map[string]string
// @Router /api/tutorials [get]
func (h *TutorialsHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	titleFilter := r.URL.Query().Get("title")

	tutorials, err := h.service.GetAll(r.Context(), titleFilter)
	if err != nil {
		h.logger.Error("failed to get tutorials", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get tutorials")
		return
	}
	if tutorials == nil {
		tutorials = []models.Tutorial{}
	}

	h.respondJSON(w, http.StatusOK, tutorials)
}

// GetPublished handles GET /api/tutorials/published
// @Summary List published tutorials
// @Description Get all tutorials with the published flag set
// @Tags tutorials
// @Accept json
// @Produce json
// @Success 200 {array} models.Tutorial
// @Failure 500 {object} map[string]string
// @Router /api/tutorials/published [get]
func (h *TutorialsHandler) GetPublished(w http.ResponseWriter, r *http.Request) {
	tutorials, err := h.service.GetPublished(r.Context())
	if err != nil {
		h.logger.Error("failed to get published tutorials", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get published tutorials")
		return
	}
	if tutorials == nil {
		tutorials = []models.Tutorial{}
	}

	h.respondJSON(w, http.StatusOK, tutorials)
}

// GetByID handles GET /api/tutorials/{id}
// @Summary Get tutorial by id
// @Description Get a single tutorial by its id
// @Tags tutorials
// @Accept json
// @Produce json
// @Param id path string true "Tutorial id"
// @Success 200 {object} models.Tutorial
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/tutorials/{id} [get]
func (h *TutorialsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")

	tutorial, err := h.service.GetByID(r.Context(), idParam)
	if err != nil {
		// Check if error is "tutorial not found" (may be wrapped)
		if strings.Contains(err.Error(), "tutorial not found") {
			h.respondError(w, http.StatusNotFound, "tutorial not found")
			return
		}
		h.logger.Error("failed to get tutorial by id", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get tutorial")
		return
	}

	h.respondJSON(w, http.StatusOK, tutorial)
}

// Update handles PUT /api/tutorials/{id}
// @Summary Update a tutorial
// @Description Merge the supplied fields (title, description, published) into an existing tutorial
// @Tags tutorials
// @Accept json
// @Produce json
// @Param id path string true "Tutorial id"
// @Param tutorial body models.UpdateTutorialRequest true "Fields to update"
// @Success 200 {object} models.Tutorial
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/tutorials/{id} [put]
func (h *TutorialsHandler) Update(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")

	var req models.UpdateTutorialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tutorial, err := h.service.Update(r.Context(), idParam, &req)
	if err != nil {
		if strings.Contains(err.Error(), "tutorial not found") {
			h.respondError(w, http.StatusNotFound, "tutorial not found")
			return
		}
		if strings.Contains(err.Error(), "title cannot be empty") {
			h.respondError(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		h.logger.Error("failed to update tutorial", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to update tutorial")
		return
	}

	h.respondJSON(w, http.StatusOK, tutorial)
}

// Delete handles DELETE /api/tutorials/{id}
// @Summary Delete a tutorial
// @Description Delete a single tutorial by its id
// @Tags tutorials
// @Accept json
// @Produce json
// @Param id path string true "Tutorial id"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/tutorials/{id} [delete]
func (h *TutorialsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), idParam); err != nil {
		if strings.Contains(err.Error(), "tutorial not found") {
			h.respondError(w, http.StatusNotFound, "tutorial not found")
			return
		}
		h.logger.Error("failed to delete tutorial", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to delete tutorial")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll handles DELETE /api/tutorials
// @Summary Delete all tutorials
// @Description Remove every tutorial from the collection
// @Tags tutorials
// @Accept json
// @Produce json
// @Success 200 {object} models.DeleteAllResponse
// @Failure 500 {object} map[string]string
// @Router /api/tutorials [delete]
func (h *TutorialsHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.DeleteAll(r.Context())
	if err != nil {
		h.logger.Error("failed to delete all tutorials", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to delete tutorials")
		return
	}

	h.respondJSON(w, http.StatusOK, models.DeleteAllResponse{DeletedCount: count})
}
