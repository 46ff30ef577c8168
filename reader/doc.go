// Package reader provides page-level access to lab report PDF files and
// scanned report images. The PDF reader surfaces positioned native text as
// ordered lines and flags pages that carry no extractable text, which is the
// signal that OCR is required. The image reader validates raster files before
// they are handed to the OCR engine.
package reader
