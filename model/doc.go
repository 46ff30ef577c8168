// Package model provides the value types shared by the labtract
// extraction pipeline.
//
// This package defines the user-facing data structures produced and
// consumed by the pipeline stages. All extraction operations ultimately
// produce these types, making them the primary API for consuming
// extracted lab results.
//
// # Records
//
// The [LabResult] type is the output record: one recognized analyte
// with its numeric value, unit, optional reference range, and a
// free-text provenance note for auditability:
//
//	result := model.LabResult{Name: "ALT", Value: 31, Unit: "U/L"}
//
// # Input Types
//
// The pipeline consumes either of two input shapes:
//
//   - [RawLine] - a text line with its document-order index, from
//     native document text extraction
//   - [OcrFragment] - a recognized word with a page-normalized
//     bounding box, from an OCR engine; fragments are consumed
//     entirely by line reconstruction and never exposed downstream
//
// # Geometry
//
// Geometric primitives support fragment grouping:
//
//   - [BBox] - bounding box in normalized page coordinates
//   - [Point] - 2D point
package model
