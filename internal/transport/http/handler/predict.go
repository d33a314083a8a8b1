package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/diagnosis"
	"github.com/AyushmanGupta21/lung-cancer-classification/internal/transport/http/response"
)

const maxUploadSize = 10 << 20 // 10 MB

// Analyzer is the pipeline slice the HTTP layer drives.
type Analyzer interface {
	Analyze(data []byte) (*diagnosis.Result, error)
}

type PredictHandler struct {
	service Analyzer
}

func NewPredictHandler(service Analyzer) *PredictHandler {
	return &PredictHandler{service: service}
}

// predictResponse flattens the result fields next to the success flag.
type predictResponse struct {
	Success bool `json:"success"`
	*diagnosis.Result
}

// Predict accepts a multipart upload in field "file" and answers with
// the diagnosis result.
func (h *PredictHandler) Predict(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if file.Filename == "" || file.Size == 0 {
		response.Error(c, http.StatusBadRequest, "No file selected")
		return
	}
	if file.Size > maxUploadSize {
		response.Error(c, http.StatusBadRequest, "File too large (max 10MB)")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to read upload")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to read upload")
		return
	}

	result, err := h.service.Analyze(data)
	if err != nil {
		writeAnalyzeError(c, err)
		return
	}

	c.JSON(http.StatusOK, predictResponse{Success: true, Result: result})
}

// writeAnalyzeError picks the status deterministically from the error
// type instead of matching message strings.
func writeAnalyzeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, diagnosis.ErrModelNotLoaded):
		response.Error(c, http.StatusInternalServerError, "Model not loaded")
	case diagnosis.CallerError(err):
		response.Error(c, http.StatusBadRequest, "Unsupported or corrupt image file")
	default:
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}
