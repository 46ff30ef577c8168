package model

import (
	"math"
	"strings"
	"unicode"
)

// NotAvailable is the sentinel used for absent unit and reference-range
// strings.
const NotAvailable = "N/A"

// LabResult represents one extracted laboratory test record.
type LabResult struct {
	// Name is the analyte name, cleaned of surrounding and internal
	// excess whitespace. Always non-empty with at least one letter.
	Name string

	// Value is the numeric test result. Never NaN or infinite.
	Value float64

	// Unit is the unit string as it appeared in the source, or
	// NotAvailable when none was recognized.
	Unit string

	// ReferenceRange is the opaque reference-range text from the
	// source (e.g. "70-100" or "<5.7"), or NotAvailable. It is passed
	// through unmodified; interpreting it belongs to the caller.
	ReferenceRange string

	// Provenance is a free-text note about how the record was derived,
	// such as the source date context or "fallback parsing".
	Provenance string
}

// Valid reports whether the record satisfies the output invariants:
// a usable name and a finite value.
func (r LabResult) Valid() bool {
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return false
	}
	name := strings.TrimSpace(r.Name)
	if len(name) < 2 {
		return false
	}
	for _, c := range name {
		if unicode.IsLetter(c) {
			return true
		}
	}
	return false
}

// RawLine is a single line of document text with its position in
// reading order. Ordering is significant and is preserved through
// line reconstruction.
type RawLine struct {
	Text  string
	Index int
}

// IsEmpty returns true if the line has no text content
func (l RawLine) IsEmpty() bool {
	return strings.TrimSpace(l.Text) == ""
}

// OcrFragment is a single recognized token from an OCR engine, with a
// page-normalized bounding box. Fragments belong to exactly one page
// and are consumed entirely by geometric line reconstruction; they are
// never exposed downstream of it.
type OcrFragment struct {
	Text string
	Box  BBox
	Page int
}
