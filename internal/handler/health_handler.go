package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cha17/gowra-sub000/pkg/database"
	"github.com/Cha17/gowra-sub000/pkg/response"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	db *database.PostgresDB
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ok"}))
}

// Ready handles GET /ready; fails when the database is unreachable
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, response.Error("NOT_READY", "Database is unreachable"))
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ready"}))
}
