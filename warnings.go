package labtract

import (
	"fmt"
	"strings"
)

// WarningCode classifies a non-fatal extraction issue.
type WarningCode string

const (
	// WarnPageEmpty indicates a page contributed no usable text.
	WarnPageEmpty WarningCode = "page-empty"
	// WarnOCRFailed indicates OCR recognition failed for a page.
	WarnOCRFailed WarningCode = "ocr-failed"
	// WarnCancelled indicates processing stopped early because the
	// context was cancelled; results cover the completed pages only.
	WarnCancelled WarningCode = "cancelled"
)

// Warning describes a non-fatal issue encountered during extraction.
// Extraction succeeded but results may be incomplete.
type Warning struct {
	Code    WarningCode
	Page    int // 1-indexed page number, 0 when not page-scoped
	Message string
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("[%s] page %d: %s", w.Code, w.Page, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatWarnings renders a warning list as a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
