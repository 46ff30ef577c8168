// Package resolve assembles lab records that span adjacent lines.
//
// When the single-line cascade fails at a cursor position, the
// [Resolver] tries three shapes in order against the following lines:
//
//  1. a bare date, then a name line, then a value line (3 lines)
//  2. a date+name line, then a value line (2 lines)
//  3. a name-only line, then a value line (2 lines)
//
// Each resolution reports exactly how many lines it consumed so that
// the caller's cursor advances correctly; consuming the wrong count
// would silently corrupt downstream line indexing.
package resolve
