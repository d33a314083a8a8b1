// Package preprocess converts uploaded image bytes into the normalized
// tensor the classifier was trained on.
package preprocess

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Model input geometry. 150x150 RGB is fixed by the trained network's
// input layer.
const (
	TargetSize = 150
	Channels   = 3
)

// DecodeError reports an upload whose bytes are not a supported image
// encoding. It is a caller-input failure, not a server one.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode image: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// ImageMeta echoes the uploaded image's geometry as it was before
// resizing.
type ImageMeta struct {
	Width  int
	Height int
	Format string
}

// Tensor is a normalized NHWC batch of one image, ready for inference.
type Tensor struct {
	Data  []float32
	Shape []int64
}

// Prepare decodes raw upload bytes and produces the [1,150,150,3]
// float32 tensor with values scaled to [0,1]. The resize is a direct
// stretch, not aspect-preserving, because the training pipeline
// stretched as well. An alpha channel, if present, is dropped rather
// than blended.
func Prepare(raw []byte) (*Tensor, ImageMeta, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ImageMeta{}, &DecodeError{Err: err}
	}

	bounds := img.Bounds()
	meta := ImageMeta{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: strings.ToUpper(format),
	}

	dst := image.NewNRGBA(image.Rect(0, 0, TargetSize, TargetSize))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	data := make([]float32, TargetSize*TargetSize*Channels)
	i := 0
	for y := 0; y < TargetSize; y++ {
		for x := 0; x < TargetSize; x++ {
			px := dst.NRGBAAt(x, y)
			data[i] = float32(px.R) / 255.0
			data[i+1] = float32(px.G) / 255.0
			data[i+2] = float32(px.B) / 255.0
			i += Channels
		}
	}

	return &Tensor{
		Data:  data,
		Shape: []int64{1, TargetSize, TargetSize, Channels},
	}, meta, nil
}
