package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

type HealthHandler struct {
	postgres CheckFunc
	redis    CheckFunc
}

// NewHealthHandler takes a nil redis check when Redis is not configured.
func NewHealthHandler(postgres, redis CheckFunc) *HealthHandler {
	return &HealthHandler{postgres: postgres, redis: redis}
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready fails only when postgres is unreachable; redis is reported.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	status := http.StatusOK

	if err := h.postgres(ctx); err != nil {
		_ = c.Error(err)
		checks["postgres"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		checks["postgres"] = "up"
	}

	if h.redis != nil {
		if err := h.redis(ctx); err != nil {
			_ = c.Error(err)
			checks["redis"] = "down"
		} else {
			checks["redis"] = "up"
		}
	}

	body := gin.H{"status": "ok", "checks": checks}
	if status != http.StatusOK {
		body["status"] = "unavailable"
	}
	c.JSON(status, body)
}
