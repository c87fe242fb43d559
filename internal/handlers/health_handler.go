package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// HealthHandler reports process and document store health
type HealthHandler struct {
	BaseHandler
	client *mongo.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(client *mongo.Client, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		client:      client,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers the health check route
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Check)
}

// Check handles GET /healthz
// @Summary Health check
// @Description Report whether the service and its document store are reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Ping(r.Context(), readpref.Primary()); err != nil {
		h.logger.Error("health check failed", zap.Error(err))
		h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
