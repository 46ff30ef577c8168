// Package repair merges fragmented text lines back into logical
// records.
//
// OCR output and some native extractors split one logical row across
// several physical lines: a date torn in half, an analyte name on its
// own line, a trailing unit token. The [Merger] walks the line
// sequence in document order and stitches such fragments together
// using forward look-ahead and a single backward merge, so that the
// pattern cascade downstream sees whole records wherever possible.
//
// The merged sequence is always shorter than or equal in length to the
// input, and document order is preserved.
package repair
