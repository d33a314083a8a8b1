// Package diagnosis turns raw model output into the diagnosis result
// both front-ends serve, and orchestrates the per-request pipeline.
package diagnosis

import (
	"time"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/taxonomy"
)

// ImageInfo echoes the uploaded image's original geometry, not the
// resized model input.
type ImageInfo struct {
	OriginalWidth  int    `json:"original_width"`
	OriginalHeight int    `json:"original_height"`
	Format         string `json:"format"`
}

// Result is the per-request diagnosis value. It is created fresh for
// every analysis and never persisted beyond the dashboard's session
// slot.
type Result struct {
	PredictedClass string             `json:"predicted_class"`
	Confidence     float64            `json:"confidence"`
	Probabilities  map[string]float64 `json:"probabilities"`
	ClassInfo      taxonomy.Info      `json:"class_info"`
	PredictionTime float64            `json:"prediction_time"`
	ImageInfo      ImageInfo          `json:"image_info"`
	Timestamp      time.Time          `json:"timestamp"`
}
