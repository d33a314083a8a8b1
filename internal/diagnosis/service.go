package diagnosis

import (
	"errors"
	"log"
	"time"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/preprocess"
)

// ErrModelNotLoaded is returned when an analysis is requested while the
// process holds no usable model.
var ErrModelNotLoaded = errors.New("model not loaded")

// Predictor is the slice of the model handle the service drives.
type Predictor interface {
	Loaded() bool
	Predict(t *preprocess.Tensor) ([]float32, error)
}

// Service runs the full pipeline for one uploaded image. It is
// stateless across requests; the only shared collaborator is the model
// handle.
type Service struct {
	model Predictor
}

func NewService(model Predictor) *Service {
	return &Service{model: model}
}

// Analyze takes raw upload bytes through preprocess, predict, and
// format. The loaded guard runs before any decoding: with no usable
// model there is nothing to do with the bytes.
func (s *Service) Analyze(data []byte) (*Result, error) {
	if !s.model.Loaded() {
		return nil, ErrModelNotLoaded
	}

	tensor, meta, err := preprocess.Prepare(data)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	probs, err := s.model.Predict(tensor)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	result, err := Format(probs)
	if err != nil {
		return nil, err
	}
	result.PredictionTime = round3(elapsed.Seconds())
	result.ImageInfo = ImageInfo{
		OriginalWidth:  meta.Width,
		OriginalHeight: meta.Height,
		Format:         meta.Format,
	}
	result.Timestamp = time.Now()

	log.Printf("prediction: %s (%.2f%%) in %.3fs",
		result.PredictedClass, result.Confidence, result.PredictionTime)
	return result, nil
}

// CallerError reports whether err was caused by the caller's input
// rather than the server, so handlers can answer 400 instead of 500.
func CallerError(err error) bool {
	var decodeErr *preprocess.DecodeError
	return errors.As(err, &decodeErr)
}
