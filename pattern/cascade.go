package pattern

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/labtract/filter"
)

// FallbackSource is the provenance note attached to candidates
// recovered by the free-text fallback scan.
const FallbackSource = "fallback parsing"

// Candidate is one plausible lab-result extraction from a single line,
// prior to assembly. Unit, Flag, Range and Date are empty when the
// winning template did not capture them.
type Candidate struct {
	Name   string
	Value  float64
	Unit   string
	Flag   string
	Range  string
	Date   string
	Source string // template name or FallbackSource
}

// Parser runs the template cascade over single lines.
type Parser struct {
	catalog []Template
	gate    *filter.Plausibility
}

// NewParser creates a cascade parser using the default catalog and the
// given plausibility gate.
func NewParser(gate *filter.Plausibility) *Parser {
	return &Parser{catalog: Catalog(), gate: gate}
}

var fallbackValueRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// dateScrubRe removes full date tokens before the fallback numeric
// scan so a date's own digits cannot masquerade as a value.
var dateScrubRe = regexp.MustCompile(reDate)

// ParseLine runs the cascade over one line. Templates that cannot
// yield a full record on their own (no name or no value role) are
// skipped here; they exist for the multi-line resolvers. Returns the
// first accepted candidate, or false when the line yields nothing.
func (p *Parser) ParseLine(text string) (Candidate, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Candidate{}, false
	}

	for _, tmpl := range p.catalog {
		if !tmpl.Requires(RoleName) || !tmpl.Requires(RoleValue) {
			continue
		}
		caps, ok := tmpl.Apply(text)
		if !ok {
			continue
		}
		cand, ok := p.buildCandidate(tmpl.Name, caps)
		if !ok {
			continue
		}
		return cand, true
	}

	return p.parseFallback(text)
}

// ParseValueLine matches a line expected to carry only the value part
// of a record (value+unit+flag, value+unit, value+flag, or bare
// value), for the multi-line resolvers. The plausibility gate on the
// (value, unit) pair still applies. Falls back to the first number
// found on the line.
func (p *Parser) ParseValueLine(text string) (Candidate, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Candidate{}, false
	}

	for _, tmpl := range p.catalog {
		if tmpl.Requires(RoleName) || !tmpl.Requires(RoleValue) {
			continue
		}
		caps, ok := tmpl.Apply(text)
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(caps[RoleValue], 64)
		if err != nil {
			continue
		}
		unit := strings.TrimSpace(caps[RoleUnit])
		flag := strings.TrimSpace(caps[RoleFlag])
		if flag == "" && isFlagToken(unit) {
			// An H/L flag with no unit in front of it matches the
			// unit group; reroute it before the gate sees it.
			flag, unit = unit, ""
		}
		if !p.gate.AcceptValue(value, unit) {
			continue
		}
		return Candidate{
			Value:  value,
			Unit:   unit,
			Flag:   flag,
			Range:  strings.TrimSpace(caps[RoleRange]),
			Source: tmpl.Name,
		}, true
	}

	// First number found, with no unit claim.
	scrubbed := scrubDates(text)
	if loc := fallbackValueRe.FindStringIndex(scrubbed); loc != nil {
		value, err := strconv.ParseFloat(scrubbed[loc[0]:loc[1]], 64)
		if err == nil && p.gate.AcceptValue(value, "") {
			return Candidate{Value: value, Source: FallbackSource}, true
		}
	}
	return Candidate{}, false
}

// MatchNameOnly reports whether the line is purely name-shaped, and
// returns the cleaned name.
func (p *Parser) MatchNameOnly(text string) (string, bool) {
	for _, tmpl := range p.catalog {
		if tmpl.Name != "name only" {
			continue
		}
		caps, ok := tmpl.Apply(strings.TrimSpace(text))
		if !ok {
			return "", false
		}
		name := filter.CleanName(caps[RoleName])
		if !p.gate.AcceptName(name) {
			return "", false
		}
		return name, true
	}
	return "", false
}

// buildCandidate routes captures into a candidate and applies the
// plausibility gate. A value that fails to parse as a float is a
// non-match, not an error: the matcher classes guarantee digits, but
// the guard stays.
func (p *Parser) buildCandidate(source string, caps Captures) (Candidate, bool) {
	value, err := strconv.ParseFloat(caps[RoleValue], 64)
	if err != nil {
		return Candidate{}, false
	}

	name := filter.CleanName(caps[RoleName])
	unit := strings.TrimSpace(caps[RoleUnit])
	flag := strings.TrimSpace(caps[RoleFlag])
	if flag == "" && isFlagToken(unit) {
		flag, unit = unit, ""
	}

	if !p.gate.AcceptValue(value, unit) || !p.gate.AcceptName(name) {
		return Candidate{}, false
	}

	return Candidate{
		Name:   name,
		Value:  value,
		Unit:   unit,
		Flag:   flag,
		Range:  strings.TrimSpace(caps[RoleRange]),
		Date:   strings.TrimSpace(caps[RoleDate]),
		Source: source,
	}, true
}

// parseFallback is the last-resort free-text scan: any numeric
// substring, preceding text as the name candidate, the first token
// after the number as the unit candidate. Intentionally permissive,
// so the plausibility gate is mandatory here.
func (p *Parser) parseFallback(text string) (Candidate, bool) {
	scrubbed := scrubDates(text)

	loc := fallbackValueRe.FindStringIndex(scrubbed)
	if loc == nil {
		return Candidate{}, false
	}

	value, err := strconv.ParseFloat(scrubbed[loc[0]:loc[1]], 64)
	if err != nil {
		return Candidate{}, false
	}

	name := p.fallbackName(scrubbed[:loc[0]])

	var unit, flag string
	after := strings.Fields(scrubbed[loc[1]:])
	if len(after) > 0 {
		if isFlagToken(after[0]) {
			flag = after[0]
		} else {
			unit = strings.Trim(after[0], ".,:;")
		}
	}

	if !p.gate.AcceptValue(value, unit) || !p.gate.AcceptName(name) {
		return Candidate{}, false
	}

	return Candidate{
		Name:   name,
		Value:  value,
		Unit:   unit,
		Flag:   flag,
		Source: FallbackSource,
	}, true
}

// fallbackName picks the analyte name out of the free text preceding a
// number. The whole prefix wins when it contains a known analyte
// keyword; otherwise the last two words are the likeliest name and the
// rest is treated as noise.
func (p *Parser) fallbackName(prefix string) string {
	name := filter.CleanName(strings.Trim(prefix, " \t.,:;-*#|~[]"))
	words := strings.Fields(name)
	if len(words) > 2 && !p.gate.IsKnownAnalyte(name) {
		name = strings.Join(words[len(words)-2:], " ")
	}
	return name
}

func isFlagToken(s string) bool {
	switch s {
	case "H", "L", "HIGH", "LOW", "High", "Low":
		return true
	}
	return false
}

// scrubDates blanks out date tokens while preserving offsets.
func scrubDates(text string) string {
	return dateScrubRe.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Repeat(" ", len(m))
	})
}
