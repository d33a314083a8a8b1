package inference

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/preprocess"
	"github.com/AyushmanGupta21/lung-cancer-classification/internal/taxonomy"
)

type fakeSession struct {
	runs      int
	destroyed bool
}

func (s *fakeSession) Run(inputs, outputs []ort.Value) error { s.runs++; return nil }
func (s *fakeSession) Destroy() error                        { s.destroyed = true; return nil }

// stubRuntime swaps the onnxruntime seams so load paths run without the
// shared library, restoring them when the test ends.
func stubRuntime(t *testing.T, describe func(string) ([]ort.InputOutputInfo, []ort.InputOutputInfo, error)) *int {
	t.Helper()

	sessions := 0
	origInit, origDescribe, origNew := initRuntime, describeModel, newSession
	initRuntime = func(string) error { return nil }
	describeModel = describe
	newSession = func(string, []string, []string) (session, error) {
		sessions++
		return &fakeSession{}, nil
	}
	t.Cleanup(func() {
		initRuntime, describeModel, newSession = origInit, origDescribe, origNew
	})
	return &sessions
}

func writeArtifact(t *testing.T, metadata string) (modelPath, metadataPath string) {
	t.Helper()
	dir := t.TempDir()
	modelPath = filepath.Join(dir, "model.onnx")
	metadataPath = filepath.Join(dir, "model_metadata.json")
	require.NoError(t, os.WriteFile(modelPath, []byte("onnx bytes"), 0o644))
	require.NoError(t, os.WriteFile(metadataPath, []byte(metadata), 0o644))
	return modelPath, metadataPath
}

const validMetadata = `{
	"input_shape": [1, 150, 150, 3],
	"output_shape": [1, 3],
	"total_params": 3463811,
	"classes": ["Adenocarcinoma", "Normal", "Squamous Cell Carcinoma"],
	"image_size": 150
}`

func introspectionUnavailable(string) ([]ort.InputOutputInfo, []ort.InputOutputInfo, error) {
	return nil, nil, errors.New("introspection unavailable")
}

func TestEnsureLoadedMissingArtifact(t *testing.T) {
	stubRuntime(t, introspectionUnavailable)

	m := New(filepath.Join(t.TempDir(), "nope.onnx"), "irrelevant.json", "")
	err := m.EnsureLoaded()
	require.ErrorIs(t, err, ErrArtifactMissing)
	assert.False(t, m.Loaded())
}

func TestEnsureLoadedIdempotent(t *testing.T) {
	sessions := stubRuntime(t, introspectionUnavailable)
	modelPath, metadataPath := writeArtifact(t, validMetadata)

	m := New(modelPath, metadataPath, "")
	for i := 0; i < 5; i++ {
		require.NoError(t, m.EnsureLoaded())
	}

	assert.Equal(t, 1, m.loads, "deserialization must happen once")
	assert.Equal(t, 1, *sessions)
	assert.True(t, m.Loaded())
}

func TestLoadFallsBackToMetadataShapes(t *testing.T) {
	stubRuntime(t, introspectionUnavailable)
	modelPath, metadataPath := writeArtifact(t, validMetadata)

	m := New(modelPath, metadataPath, "")
	require.NoError(t, m.EnsureLoaded())

	info, err := m.Info()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 150, 150, 3}, info.InputShape)
	assert.Equal(t, []int64{1, 3}, info.OutputShape)
	assert.Equal(t, int64(3463811), info.TotalParams)
	assert.Equal(t, taxonomy.Names(), info.Classes)
	assert.Equal(t, preprocess.TargetSize, info.ImageSize)
}

func TestLoadPrefersModelSelfDescription(t *testing.T) {
	stubRuntime(t, func(string) ([]ort.InputOutputInfo, []ort.InputOutputInfo, error) {
		return []ort.InputOutputInfo{{Name: "input_1", Dimensions: ort.NewShape(1, 150, 150, 3)}},
			[]ort.InputOutputInfo{{Name: "dense_2", Dimensions: ort.NewShape(1, 3)}},
			nil
	})
	modelPath, metadataPath := writeArtifact(t, validMetadata)

	m := New(modelPath, metadataPath, "")
	require.NoError(t, m.EnsureLoaded())

	assert.Equal(t, []string{"input_1"}, m.inputNames)
	assert.Equal(t, []string{"dense_2"}, m.outputNames)
}

func TestLoadDynamicDimensionsFallBack(t *testing.T) {
	stubRuntime(t, func(string) ([]ort.InputOutputInfo, []ort.InputOutputInfo, error) {
		// Batch dimension is dynamic; the declared metadata wins.
		return []ort.InputOutputInfo{{Name: "input_1", Dimensions: ort.NewShape(-1, 150, 150, 3)}},
			[]ort.InputOutputInfo{{Name: "dense_2", Dimensions: ort.NewShape(-1, 3)}},
			nil
	})
	modelPath, metadataPath := writeArtifact(t, validMetadata)

	m := New(modelPath, metadataPath, "")
	require.NoError(t, m.EnsureLoaded())

	info, err := m.Info()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 150, 150, 3}, info.InputShape)
	assert.Equal(t, []string{"input_1"}, m.inputNames)
}

func TestLoadChecksTaxonomyWidth(t *testing.T) {
	stubRuntime(t, introspectionUnavailable)
	modelPath, metadataPath := writeArtifact(t, `{
		"input_shape": [1, 150, 150, 3],
		"output_shape": [1, 5],
		"total_params": 1,
		"classes": [],
		"image_size": 150
	}`)

	m := New(modelPath, metadataPath, "")
	err := m.EnsureLoaded()
	require.Error(t, err)

	var mismatch *taxonomy.MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Want)
	assert.Equal(t, 5, mismatch.Got)
	assert.False(t, m.Loaded())
}

func TestLoadBadMetadata(t *testing.T) {
	stubRuntime(t, introspectionUnavailable)
	modelPath, metadataPath := writeArtifact(t, "{not json")

	m := New(modelPath, metadataPath, "")
	err := m.EnsureLoaded()
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestPredictNotLoaded(t *testing.T) {
	m := New("whatever.onnx", "whatever.json", "")
	_, err := m.Predict(&preprocess.Tensor{Shape: []int64{1, 150, 150, 3}})
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestPredictShapeMismatch(t *testing.T) {
	stubRuntime(t, introspectionUnavailable)
	modelPath, metadataPath := writeArtifact(t, validMetadata)

	m := New(modelPath, metadataPath, "")
	require.NoError(t, m.EnsureLoaded())

	_, err := m.Predict(&preprocess.Tensor{Shape: []int64{1, 224, 224, 3}})
	require.Error(t, err)

	var infErr *InferenceError
	assert.ErrorAs(t, err, &infErr)
}
