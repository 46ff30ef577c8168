package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Boundaries for the date-component rejection heuristic. These are
// empirically tuned, not domain truths; the scenario tests lock in the
// defaults.
const (
	maxDayMonth = 31
	minYear     = 1900
	maxYear     = 2030

	// maxShortUnitLen is the unit length at or below which a value in
	// a day/month or year range is presumed to be a date fragment.
	maxShortUnitLen = 2

	// minNameLen is the minimum cleaned analyte name length.
	minNameLen = 2
)

// dateSeparators are the single characters that, standing alone as a
// "unit", mark the match as a torn date rather than a measurement.
const dateSeparators = `/-.\|`

// Plausibility decides whether a structurally valid match is a
// believable lab result.
type Plausibility struct {
	analytes map[string]struct{}
}

// NewPlausibility creates a gate seeded with the built-in analyte
// keyword set.
func NewPlausibility() *Plausibility {
	p := &Plausibility{analytes: make(map[string]struct{}, len(knownAnalytes))}
	for _, a := range knownAnalytes {
		p.analytes[strings.ToUpper(a)] = struct{}{}
	}
	return p
}

// AddAnalytes extends the known-analyte keyword set. Matching is
// case-insensitive.
func (p *Plausibility) AddAnalytes(names ...string) {
	for _, n := range names {
		n = strings.ToUpper(strings.TrimSpace(n))
		if n != "" {
			p.analytes[n] = struct{}{}
		}
	}
}

// AcceptValue reports whether a (value, unit) pair is plausible as a
// measurement rather than a date component or noise.
func (p *Plausibility) AcceptValue(value float64, unit string) bool {
	unit = strings.TrimSpace(unit)

	// A lone separator "unit" is the tail of a torn date.
	if len(unit) == 1 && strings.ContainsAny(unit, dateSeparators) {
		return false
	}

	// Short or absent units make day/month and year magnitudes suspect.
	// Only whole numbers are treated as possible date components; a
	// fractional value such as 2.5 passes even with no unit.
	if len(unit) <= maxShortUnitLen {
		if value >= 1 && value <= maxDayMonth && value == float64(int(value)) {
			return false
		}
		if value >= minYear && value <= maxYear && value == float64(int(value)) {
			return false
		}
	}

	// A unit made of nothing but digits and separators is date debris,
	// not a unit. Symbols such as "%" stay valid.
	if isDateDebris(unit) {
		return false
	}

	return true
}

// AcceptName reports whether a cleaned analyte name is usable: at
// least minNameLen characters with at least one letter.
func (p *Plausibility) AcceptName(name string) bool {
	name = CleanName(name)
	return len(name) >= minNameLen && containsLetter(name)
}

// IsKnownAnalyte reports whether any word of name appears in the
// analyte keyword set. This is a preference signal used to choose
// between fallback name candidates, never an acceptance requirement.
func (p *Plausibility) IsKnownAnalyte(name string) bool {
	upper := strings.ToUpper(CleanName(name))
	if _, ok := p.analytes[upper]; ok {
		return true
	}
	for _, word := range strings.Fields(upper) {
		word = strings.Trim(word, ".,:;()")
		if _, ok := p.analytes[word]; ok {
			return true
		}
	}
	return false
}

// CleanName normalizes an analyte name candidate: folds OCR
// compatibility forms, replaces control characters, and collapses
// internal whitespace.
func CleanName(name string) string {
	name = norm.NFKC.String(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, name)
	return strings.Join(strings.Fields(name), " ")
}

// isDateDebris reports whether s is non-empty and consists solely of
// digits and date separator characters.
func isDateDebris(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && !strings.ContainsRune(dateSeparators, r) {
			return false
		}
	}
	return true
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
