package reader

import (
	"bytes"
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// ImageFile is a scanned report image ready to be passed to the OCR engine.
type ImageFile struct {
	data   []byte
	format string
	width  int
	height int
}

// OpenImage reads and validates a raster image file. PNG, JPEG and TIFF are
// supported.
func OpenImage(path string) (*ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", path, err)
	}
	return NewImage(data)
}

// NewImage validates in-memory raster data. PNG, JPEG and TIFF are supported.
func NewImage(data []byte) (*ImageFile, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return &ImageFile{data: data, format: format, width: cfg.Width, height: cfg.Height}, nil
}

// Data returns the raw image bytes.
func (f *ImageFile) Data() []byte { return f.data }

// Format returns the detected encoding, such as "png" or "tiff".
func (f *ImageFile) Format() string { return f.format }

// Bounds returns the pixel dimensions of the image.
func (f *ImageFile) Bounds() (width, height int) { return f.width, f.height }
