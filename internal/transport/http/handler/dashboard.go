package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/diagnosis"
	"github.com/AyushmanGupta21/lung-cancer-classification/internal/session"
	"github.com/AyushmanGupta21/lung-cancer-classification/internal/transport/http/response"
)

const sessionCookie = "session_id"

// allowedExtensions mirrors the dashboard's upload filter.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// DashboardHandler serves the interactive front-end's actions: run an
// analysis, fetch the session's last result, download the text report.
type DashboardHandler struct {
	service Analyzer
	store   session.Store
}

func NewDashboardHandler(service Analyzer, store session.Store) *DashboardHandler {
	return &DashboardHandler{service: service, store: store}
}

// Analyze runs the pipeline on the uploaded image and stores the result
// in the caller's session slot, overwriting the previous one. On
// failure the previous result is left untouched.
func (h *DashboardHandler) Analyze(c *gin.Context) {
	sessionID := h.sessionID(c)

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if file.Filename == "" || file.Size == 0 {
		response.Error(c, http.StatusBadRequest, "No file selected")
		return
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); !allowedExtensions[ext] {
		response.Error(c, http.StatusBadRequest, "Unsupported file type (png, jpg, jpeg, webp)")
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

	if err := h.store.Save(c.Request.Context(), sessionID, result); err != nil {
		log.Printf("save session result failed: %v", err)
	}

	c.JSON(http.StatusOK, predictResponse{Success: true, Result: result})
}

// Result returns the session's last analysis, if any.
func (h *DashboardHandler) Result(c *gin.Context) {
	result, ok, err := h.store.Get(c.Request.Context(), h.sessionID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to read session state")
		return
	}
	if !ok {
		response.Error(c, http.StatusNotFound, "No analysis yet")
		return
	}
	c.JSON(http.StatusOK, predictResponse{Success: true, Result: result})
}

// Report downloads the plain-text summary of the session's last
// analysis.
func (h *DashboardHandler) Report(c *gin.Context) {
	result, ok, err := h.store.Get(c.Request.Context(), h.sessionID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to read session state")
		return
	}
	if !ok {
		response.Error(c, http.StatusNotFound, "No analysis yet")
		return
	}

	filename := diagnosis.ReportFilename(result.Timestamp)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(diagnosis.Report(result)))
}

// sessionID returns the caller's session cookie, minting one on first
// contact.
func (h *DashboardHandler) sessionID(c *gin.Context) string {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		id = uuid.New().String()
		c.SetCookie(sessionCookie, id, 24*60*60, "/", "", false, true)
	}
	return id
}
