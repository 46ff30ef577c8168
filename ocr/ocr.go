//go:build ocr

// Package ocr provides OCR (Optical Character Recognition) capabilities
// for extracting text fragments from scanned lab-report images.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
	_ "golang.org/x/image/tiff"

	"github.com/tsawler/labtract/model"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeFragments performs OCR on image data (PNG, TIFF, JPEG) and
// returns word-level fragments with page-normalized bounding boxes.
// Box coordinates range 0-1 with the origin at the bottom-left of the
// page. Recognition runs as a single call per page so fragment
// ordering is never interleaved.
func (c *Client) RecognizeFragments(imageData []byte, page int) ([]model.OcrFragment, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to read image dimensions: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image has no area (%dx%d)", cfg.Width, cfg.Height)
	}

	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	width := float64(cfg.Width)
	height := float64(cfg.Height)

	fragments := make([]model.OcrFragment, 0, len(boxes))
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		if word == "" {
			continue
		}
		// Tesseract boxes are in pixel coordinates with a top-left
		// origin; flip to the recognizer-normalized bottom-left form.
		fragments = append(fragments, model.OcrFragment{
			Text: word,
			Box: model.NewBBox(
				float64(b.Box.Min.X)/width,
				1-float64(b.Box.Max.Y)/height,
				float64(b.Box.Dx())/width,
				float64(b.Box.Dy())/height,
			),
			Page: page,
		})
	}
	return fragments, nil
}

// RecognizeImage performs OCR on image data and returns the recognized
// text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
// See gosseract.PageSegMode constants for available modes.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}
