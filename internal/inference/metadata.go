package inference

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metadata is the side-car description shipped next to the ONNX
// artifact. The exporter writes it at conversion time; shapes recorded
// here back up the artifact's own description when the latter is
// unavailable or dynamic.
type Metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	TotalParams int64    `json:"total_params"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}

func readMetadata(path string) (Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("read metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, fmt.Errorf("parse metadata: %w", err)
	}
	return meta, nil
}
