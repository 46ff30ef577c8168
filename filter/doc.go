// Package filter provides the acceptance gate between pattern matching
// and result assembly.
//
// Structural matching alone is too permissive for lab reports: a date
// fragment like "15/" parses as a perfectly well-formed value with a
// unit. The [Plausibility] gate applies two independent checks - a
// date-component rejection on the (value, unit) pair and a validity
// check on the cleaned analyte name - and both must pass before a
// candidate becomes a result.
//
// The date heuristic trades recall for precision: a legitimate
// low-magnitude value with a degenerate unit is occasionally rejected,
// which is a documented limitation.
package filter
