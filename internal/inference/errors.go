package inference

import (
	"errors"
	"fmt"
)

var (
	// ErrArtifactMissing means the model file is absent at the
	// configured path. Startup must not proceed past it.
	ErrArtifactMissing = errors.New("model artifact not found")

	// ErrNotLoaded means a prediction was requested against a handle
	// whose load never succeeded.
	ErrNotLoaded = errors.New("model not loaded")
)

// LoadError wraps a deserialization or session-creation failure.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load model: %v", e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// InferenceError wraps a failed forward pass, either a shape mismatch
// or an internal runtime failure. The pass is all-or-nothing; there are
// no partial results and no retries.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string { return fmt.Sprintf("inference: %v", e.Err) }
func (e *InferenceError) Unwrap() error { return e.Err }
