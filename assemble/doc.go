// Package assemble normalizes accepted pattern candidates into the
// final LabResult record shape.
//
// The assembler fills the "N/A" sentinels for absent unit and
// reference-range text, builds the provenance note (date context,
// abnormal flag, or the fallback marker), and re-checks the numeric
// invariants one last time before a record is emitted. Results are
// appended in document order; duplicate detection belongs to the
// caller.
package assemble
