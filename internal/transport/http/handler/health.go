package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gotodo/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"uptime_sec": int(time.Since(h.app.StartedAt).Seconds()),
	})
}
