// Package pattern implements the structural template catalog and the
// cascade parser at the center of the extraction pipeline.
//
// # Template Catalog
//
// Each [Template] is a data record: a compiled matcher with named
// capture groups, plus the semantic roles it requires and the roles it
// may optionally capture. Captured groups are routed by role lookup,
// never by positional index, and a template is never accepted with
// fewer captured groups than its declared roles require - the guard in
// [Template.Apply] precedes any group access.
//
// # Cascade
//
// The [Parser] tries templates in fixed priority order, from the most
// specific shape (date + name + value + unit) to the least. The first
// template whose match survives the plausibility filter wins the line.
// When no template matches, a deliberately permissive free-text
// fallback scans for any numeric substring; because the fallback is
// the primary source of false positives, the filter is mandatory on
// that path.
package pattern
