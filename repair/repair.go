package repair

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/labtract/model"
)

// Look-ahead budgets for forward merging. A bare date remnant may be
// the start of a record spread across several lines; a line that
// already carries a full date needs less help.
const (
	bareDateLookahead    = 4
	partialDateLookahead = 3
)

var (
	// dateRe matches a full date token (e.g. 05/01/2025, 5-1-25).
	dateRe = regexp.MustCompile(`\b\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}\b`)

	// bareDateRe matches a 1-2 digit day/month remnant, optionally
	// with a trailing separator, standing alone on a line.
	bareDateRe = regexp.MustCompile(`^\d{1,2}[/.\-]?$`)

	// nameRe matches a name-shaped token: at least 3 letters in a row.
	nameRe = regexp.MustCompile(`[A-Za-z]{3,}`)

	// valueRe matches a value-shaped token.
	valueRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

	// unitFlagRe matches a line that is nothing but a unit or an H/L
	// flag token. Such lines are absorbed outright during forward
	// merging.
	unitFlagRe = regexp.MustCompile(`^(?:[A-Za-z%][A-Za-z0-9%/^.\-]{0,15}|[HL]|HIGH|LOW|High|Low)$`)

	spaceRe = regexp.MustCompile(`\s+`)
)

// Merger reconstructs fragmented lines
type Merger struct {
	bareLookahead    int
	partialLookahead int
}

// NewMerger creates a Merger with the default look-ahead budgets.
func NewMerger() *Merger {
	return &Merger{
		bareLookahead:    bareDateLookahead,
		partialLookahead: partialDateLookahead,
	}
}

// NewMergerWithLookahead creates a Merger whose bare-date forward merge
// may consume up to n following lines. The partial-date budget scales
// down by one, with a floor of one line.
func NewMergerWithLookahead(n int) *Merger {
	if n < 1 {
		n = 1
	}
	partial := n - 1
	if partial < 1 {
		partial = 1
	}
	return &Merger{bareLookahead: n, partialLookahead: partial}
}

// Normalize folds OCR compatibility forms (full-width digits, ligature
// glyphs) to their canonical text and collapses runs of whitespace.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Merge post-processes an ordered line sequence, merging lines that
// appear to be pieces of one logical record. The result preserves
// document order and is never longer than the input. The Index of a
// merged line is the Index of its first constituent.
func (m *Merger) Merge(lines []model.RawLine) []model.RawLine {
	if len(lines) == 0 {
		return nil
	}

	// Normalize once on entry; every classifier below assumes it.
	work := make([]model.RawLine, 0, len(lines))
	for _, l := range lines {
		text := Normalize(l.Text)
		if text == "" {
			continue
		}
		work = append(work, model.RawLine{Text: text, Index: l.Index})
	}

	var out []model.RawLine
	i := 0
	for i < len(work) {
		line := work[i]

		hasDate := dateRe.MatchString(line.Text)
		hasName := nameRe.MatchString(line.Text)
		hasValue := hasValueToken(line.Text)

		switch {
		case hasDate && hasName && hasValue:
			// Already a complete record shape.
			out = append(out, line)
			i++

		case bareDateRe.MatchString(line.Text):
			merged, consumed := m.mergeForward(work, i, m.bareLookahead, false)
			if consumed > 1 {
				out = append(out, merged)
				i += consumed
			} else {
				out = append(out, line)
				i++
			}

		case hasDate:
			merged, consumed := m.mergeForward(work, i, m.partialLookahead, true)
			if consumed > 1 {
				out = append(out, merged)
				i += consumed
			} else {
				out = append(out, line)
				i++
			}

		case hasName && !hasValue && len(out) > 0:
			// Name-only line with no preceding date on it: try folding
			// it back into the last emitted line.
			combined := out[len(out)-1].Text + " " + line.Text
			if isComplete(combined) {
				out[len(out)-1].Text = combined
				i++
			} else {
				out = append(out, line)
				i++
			}

		default:
			out = append(out, line)
			i++
		}
	}

	return out
}

// mergeForward concatenates up to budget lines after start until the
// combined text satisfies date+name+value. absorbUnits additionally
// swallows bare unit/flag lines without re-testing. Returns the merged
// line and the number of input lines consumed; consumed == 1 means the
// attempt was abandoned.
func (m *Merger) mergeForward(lines []model.RawLine, start, budget int, absorbUnits bool) (model.RawLine, int) {
	combined := lines[start].Text
	consumed := 1

	for j := start + 1; j < len(lines) && j <= start+budget; j++ {
		next := lines[j].Text
		if endsWithSeparator(combined) {
			// A trailing date separator means the next piece continues
			// the same token: join without a space so "05/" + "01/2025"
			// becomes a recognizable date.
			combined = combined + next
		} else {
			combined = combined + " " + next
		}
		consumed++

		if absorbUnits && unitFlagRe.MatchString(next) {
			// A stray unit or flag token belongs to this record
			// regardless of what is still missing.
			continue
		}
		if isComplete(combined) {
			return model.RawLine{Text: combined, Index: lines[start].Index}, consumed
		}
	}

	if isComplete(combined) {
		return model.RawLine{Text: combined, Index: lines[start].Index}, consumed
	}
	return lines[start], 1
}

func endsWithSeparator(s string) bool {
	if s == "" {
		return false
	}
	switch s[len(s)-1] {
	case '/', '-', '.':
		return true
	}
	return false
}

// hasValueToken reports whether text carries a numeric token that is
// not part of a date. The date's own digits must not satisfy the
// value classifier, or date-only lines would look complete.
func hasValueToken(text string) bool {
	return valueRe.MatchString(dateRe.ReplaceAllString(text, ""))
}

// isComplete reports whether text carries a date, a name, and a value.
func isComplete(text string) bool {
	return dateRe.MatchString(text) &&
		nameRe.MatchString(text) &&
		hasValueToken(text)
}
