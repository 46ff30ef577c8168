// Package labtract provides a fluent API for extracting structured
// laboratory-test results from the messy text of lab reports: PDF
// printouts, HTML portals, and OCR output from scanned pages.
//
// Basic usage:
//
//	results, warnings, err := labtract.Open("report.pdf").Results()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", labtract.FormatWarnings(warnings))
//	}
//
// With options:
//
//	results, _, err := labtract.FromLines(lines).
//	    ExtraAnalytes("Homocysteine", "Lipoprotein(a)").
//	    Lookahead(6).
//	    Results()
//
// For advanced use cases, the lower-level pattern, repair, and layout
// packages are also available.
package labtract

import (
	"github.com/tsawler/labtract/model"
)

// Page is one report page supplied to FromPages: Lines for native text
// pages, Fragments for pre-recognized OCR pages, Image for raster
// pages that still need recognition. Lines take precedence when they
// hold any non-blank text; otherwise the page falls back to Fragments,
// then Image.
type Page struct {
	Lines     []string
	Fragments []model.OcrFragment
	Image     []byte
}

// Open opens a report file and returns an Extractor for fluent
// configuration. The format is detected from the filename extension,
// falling back to magic-byte sniffing. PDF, HTML and raster image
// files are supported.
//
// Example:
//
//	results, warnings, err := labtract.Open("report.pdf").Results()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromLines creates an Extractor over already-extracted report lines,
// in document order.
//
// Example:
//
//	results, _, err := labtract.FromLines(lines).Results()
func FromLines(lines []string) *Extractor {
	return &Extractor{
		pages:   []Page{{Lines: lines}},
		options: defaultOptions(),
	}
}

// FromFragments creates an Extractor over positioned OCR word
// fragments from a single scanned page. Fragment order does not
// matter; lines are reconstructed geometrically.
//
// Example:
//
//	results, _, err := labtract.FromFragments(fragments).Results()
func FromFragments(fragments []model.OcrFragment) *Extractor {
	return &Extractor{
		pages:   []Page{{Fragments: fragments}},
		options: defaultOptions(),
	}
}

// FromPages creates an Extractor over a mixed sequence of pages.
// Results follow page order regardless of how pages are processed.
//
// Example:
//
//	results, warnings, err := labtract.FromPages(pages).Results()
func FromPages(pages []Page) *Extractor {
	return &Extractor{
		pages:   append([]Page(nil), pages...),
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	r := labtract.Must(reader.Open("report.pdf"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResults is a helper that wraps a call to Results() and panics if
// the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	results := labtract.MustResults(labtract.Open("report.pdf").Results())
func MustResults[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
