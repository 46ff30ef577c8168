// Package layout reconstructs reading-order text lines from OCR word
// fragments.
//
// OCR engines emit individual recognized words with page-normalized
// bounding boxes, in no particular order. The [Reconstructor] groups
// fragments into text rows by vertical proximity, orders rows top to
// bottom and words left to right, and joins each row into a single
// text line:
//
//	rec := layout.NewReconstructor()
//	lines := rec.Reconstruct(fragments)
//
// Reconstruction is inherently approximate: two real rows may merge,
// or one row may split, when a scan is skewed or word boxes are noisy.
// Downstream stages tolerate both outcomes rather than treating them
// as failures.
package layout
