// Package inference owns the process-wide model handle: one lazy,
// memoized load of the ONNX artifact and a stateless forward pass per
// request.
package inference

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/preprocess"
	"github.com/AyushmanGupta21/lung-cancer-classification/internal/taxonomy"
)

// session is the slice of the ONNX dynamic session the model uses.
type session interface {
	Run(inputs, outputs []ort.Value) error
	Destroy() error
}

// Seams over the onnxruntime package, swapped out in tests that run
// without the shared runtime library.
var (
	initRuntime   = defaultInitRuntime
	describeModel = ort.GetInputOutputInfo
	newSession    = defaultNewSession
)

func defaultInitRuntime(libPath string) error {
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if ort.IsInitialized() {
		return nil
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("onnx init environment: %w", err)
	}
	return nil
}

func defaultNewSession(modelPath string, inputNames, outputNames []string) (session, error) {
	return ort.NewDynamicAdvancedSession(modelPath, inputNames, outputNames, nil)
}

// Info is the static model description served by the model-info
// endpoint.
type Info struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	TotalParams int64    `json:"total_params"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}

// Model wraps exactly one loaded inference session. It is created at
// process start, loaded at most once, never reloaded, and shared by
// reference across every request. Forward passes do not mutate it.
type Model struct {
	modelPath    string
	metadataPath string
	libPath      string

	mu     sync.Mutex
	loaded bool
	loads  int

	sess        session
	inputNames  []string
	outputNames []string
	inputShape  []int64
	outputShape []int64
	meta        Metadata
}

// New creates an unloaded handle. Call EnsureLoaded before serving.
func New(modelPath, metadataPath, onnxLibPath string) *Model {
	return &Model{
		modelPath:    modelPath,
		metadataPath: metadataPath,
		libPath:      onnxLibPath,
	}
}

// EnsureLoaded loads the artifact on first call and is a cheap no-op on
// every call after a success. Safe to call from any goroutine.
func (m *Model) EnsureLoaded() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded {
		return nil
	}
	return m.load()
}

// load runs under m.mu.
func (m *Model) load() error {
	stat, err := os.Stat(m.modelPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrArtifactMissing, m.modelPath)
	}
	if err != nil {
		return &LoadError{Err: err}
	}

	meta, err := readMetadata(m.metadataPath)
	if err != nil {
		return &LoadError{Err: err}
	}

	if err := initRuntime(m.libPath); err != nil {
		return &LoadError{Err: err}
	}

	log.Printf("loading model %s (%.2f MB)", m.modelPath, float64(stat.Size())/(1<<20))
	start := time.Now()

	inputNames, outputNames, inputShape, outputShape, err := resolveShapes(m.modelPath, meta)
	if err != nil {
		return &LoadError{Err: err}
	}

	sess, err := newSession(m.modelPath, inputNames, outputNames)
	if err != nil {
		return &LoadError{Err: err}
	}

	// Finalization: the session can already run forward passes; before
	// accepting traffic, pin the reported metadata and check the output
	// width against the class table.
	width := int(outputShape[len(outputShape)-1])
	if width != taxonomy.Count() {
		sess.Destroy()
		return &taxonomy.MismatchError{Want: taxonomy.Count(), Got: width}
	}

	m.sess = sess
	m.inputNames = inputNames
	m.outputNames = outputNames
	m.inputShape = inputShape
	m.outputShape = outputShape
	m.meta = meta
	m.loaded = true
	m.loads++

	log.Printf("model loaded in %.2fs, input=%v output=%v params=%d",
		time.Since(start).Seconds(), inputShape, outputShape, meta.TotalParams)
	return nil
}

// resolveShapes asks the artifact to describe its own tensors and falls
// back to the side-car metadata only when the artifact cannot: the
// introspection call failing or reporting dynamic dimensions. Any other
// failure surfaces as a load error instead of a silent fallback.
func resolveShapes(modelPath string, meta Metadata) (inputNames, outputNames []string, inputShape, outputShape []int64, err error) {
	inputNames = []string{"input"}
	outputNames = []string{"output"}

	inputs, outputs, infoErr := describeModel(modelPath)
	if infoErr == nil && len(inputs) > 0 && len(outputs) > 0 {
		inputNames = []string{inputs[0].Name}
		outputNames = []string{outputs[0].Name}
		in := []int64(inputs[0].Dimensions)
		out := []int64(outputs[0].Dimensions)
		if concrete(in) && concrete(out) {
			return inputNames, outputNames, in, out, nil
		}
	}

	if len(meta.InputShape) == 0 || len(meta.OutputShape) == 0 {
		return nil, nil, nil, nil,
			fmt.Errorf("model shapes unavailable: introspection gave %v and metadata declares none", infoErr)
	}
	return inputNames, outputNames, meta.InputShape, meta.OutputShape, nil
}

func concrete(shape []int64) bool {
	if len(shape) == 0 {
		return false
	}
	for _, d := range shape {
		if d <= 0 {
			return false
		}
	}
	return true
}

// Predict runs one forward pass over a prepared tensor and returns the
// raw per-class probability vector. Each call owns its input and output
// tensors, so concurrent calls share only the session itself, which the
// runtime treats as read-only during inference.
func (m *Model) Predict(t *preprocess.Tensor) ([]float32, error) {
	m.mu.Lock()
	loaded := m.loaded
	sess := m.sess
	inputShape := m.inputShape
	outputShape := m.outputShape
	m.mu.Unlock()

	if !loaded {
		return nil, ErrNotLoaded
	}
	if !shapeEqual(t.Shape, inputShape) {
		return nil, &InferenceError{Err: fmt.Errorf("input shape %v, model expects %v", t.Shape, inputShape)}
	}

	input, err := ort.NewTensor(ort.NewShape(t.Shape...), t.Data)
	if err != nil {
		return nil, &InferenceError{Err: err}
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(outputShape...))
	if err != nil {
		return nil, &InferenceError{Err: err}
	}
	defer output.Destroy()

	if err := sess.Run([]ort.Value{input}, []ort.Value{output}); err != nil {
		return nil, &InferenceError{Err: err}
	}

	raw := output.GetData()
	probs := make([]float32, len(raw))
	copy(probs, raw)
	return probs, nil
}

// Loaded reports whether the handle holds a usable session.
func (m *Model) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Info returns the static model description, or ErrNotLoaded.
func (m *Model) Info() (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		return Info{}, ErrNotLoaded
	}
	return Info{
		InputShape:  m.inputShape,
		OutputShape: m.outputShape,
		TotalParams: m.meta.TotalParams,
		Classes:     taxonomy.Names(),
		ImageSize:   preprocess.TargetSize,
	}, nil
}

// Close releases the session. Only for process shutdown; the handle is
// never reloaded.
func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil
	}
	err := m.sess.Destroy()
	m.sess = nil
	m.loaded = false
	return err
}

func shapeEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
