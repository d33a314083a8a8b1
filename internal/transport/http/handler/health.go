package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ModelStatus is the read-only view of the model handle the health
// endpoint needs.
type ModelStatus interface {
	Loaded() bool
}

type HealthHandler struct {
	model ModelStatus
}

func NewHealthHandler(model ModelStatus) *HealthHandler {
	return &HealthHandler{model: model}
}

// Check reports process liveness and whether the model is loaded. It
// never runs inference.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"model_loaded": h.model.Loaded(),
		"timestamp":    time.Now().Format(time.RFC3339),
	})
}
