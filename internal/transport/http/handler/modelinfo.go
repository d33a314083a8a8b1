package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/inference"
	"github.com/AyushmanGupta21/lung-cancer-classification/internal/transport/http/response"
)

// ModelDescriber exposes the static model description.
type ModelDescriber interface {
	Info() (inference.Info, error)
}

type ModelInfoHandler struct {
	model ModelDescriber
}

func NewModelInfoHandler(model ModelDescriber) *ModelInfoHandler {
	return &ModelInfoHandler{model: model}
}

// Info serves shape and parameter-count metadata from the loaded
// handle. It does not depend on any request image.
func (h *ModelInfoHandler) Info(c *gin.Context) {
	info, err := h.model.Info()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Model not loaded")
		return
	}
	response.OK(c, gin.H{"model_info": info})
}
