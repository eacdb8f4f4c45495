package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dante4567/openwebui-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the unauthenticated health probe.
type HealthHandler struct {
	reporter *service.HealthReporter
	log      *slog.Logger
}

// NewHealthHandler returns a new HealthHandler.
func NewHealthHandler(reporter *service.HealthReporter, log *slog.Logger) *HealthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HealthHandler{reporter: reporter, log: log}
}

// Health godoc
// @Summary      Service health
// @Tags         system
// @Produce      json
// @Success      200  {object}  service.Health
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.reporter.Report(requestContext(c)))
}
