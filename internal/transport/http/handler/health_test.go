package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/inference"
)

type fakeModel struct {
	loaded bool
	info   inference.Info
}

func (f *fakeModel) Loaded() bool { return f.loaded }

func (f *fakeModel) Info() (inference.Info, error) {
	if !f.loaded {
		return inference.Info{}, inference.ErrNotLoaded
	}
	return f.info, nil
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/health", NewHealthHandler(&fakeModel{loaded: true}).Check)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, "healthy", got["status"])
	assert.Equal(t, true, got["model_loaded"])

	ts, ok := got["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestHealthCheckModelDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/health", NewHealthHandler(&fakeModel{loaded: false}).Check)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Health stays 200; the flag carries the model state.
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, false, got["model_loaded"])
}

func TestModelInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	model := &fakeModel{
		loaded: true,
		info: inference.Info{
			InputShape:  []int64{1, 150, 150, 3},
			OutputShape: []int64{1, 3},
			TotalParams: 3463811,
			Classes:     []string{"Adenocarcinoma", "Normal", "Squamous Cell Carcinoma"},
			ImageSize:   150,
		},
	}
	router := gin.New()
	router.GET("/api/model-info", NewModelInfoHandler(model).Info)

	req := httptest.NewRequest(http.MethodGet, "/api/model-info", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, true, got["success"])

	info, ok := got["model_info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3463811), info["total_params"])
	assert.Equal(t, float64(150), info["image_size"])
	assert.Len(t, info["classes"], 3)
}

func TestModelInfoNotLoaded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/model-info", NewModelInfoHandler(&fakeModel{loaded: false}).Info)

	req := httptest.NewRequest(http.MethodGet, "/api/model-info", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "Model not loaded", got["error"])
}
