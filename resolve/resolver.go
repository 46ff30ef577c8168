package resolve

import (
	"regexp"
	"strings"

	"github.com/tsawler/labtract/filter"
	"github.com/tsawler/labtract/model"
	"github.com/tsawler/labtract/pattern"
)

var (
	bareDateRe = regexp.MustCompile(`^\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}$`)
	dateRe     = regexp.MustCompile(`\b\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}\b`)
	nameTailRe = regexp.MustCompile(`[A-Za-z][A-Za-z0-9 .\-'()#/]*$`)
	digitRe    = regexp.MustCompile(`\d`)
)

// Resolution is a resolved multi-line record: the candidate plus the
// exact number of input lines it consumed.
type Resolution struct {
	Candidate pattern.Candidate
	Consumed  int
}

// Resolver assembles records from 2-3 adjacent lines.
type Resolver struct {
	parser *pattern.Parser
	gate   *filter.Plausibility
}

// NewResolver creates a resolver sharing the cascade parser and
// plausibility gate with the single-line path.
func NewResolver(parser *pattern.Parser, gate *filter.Plausibility) *Resolver {
	return &Resolver{parser: parser, gate: gate}
}

// Resolve tries the multi-line shapes at cursor position pos. It
// returns the resolution and true on success; on failure the caller
// should skip one line and move on.
func (r *Resolver) Resolve(lines []model.RawLine, pos int) (Resolution, bool) {
	if pos < 0 || pos >= len(lines) {
		return Resolution{}, false
	}

	if res, ok := r.resolveDateNameValue(lines, pos); ok {
		return res, ok
	}
	if res, ok := r.resolveDateNamePair(lines, pos); ok {
		return res, ok
	}
	return r.resolveNameValuePair(lines, pos)
}

// resolveDateNameValue handles the three-line shape: a bare date, a
// name-shaped line, then a line carrying the value.
func (r *Resolver) resolveDateNameValue(lines []model.RawLine, pos int) (Resolution, bool) {
	if pos+2 >= len(lines) {
		return Resolution{}, false
	}

	date := strings.TrimSpace(lines[pos].Text)
	if !bareDateRe.MatchString(date) {
		return Resolution{}, false
	}

	name, ok := r.parser.MatchNameOnly(lines[pos+1].Text)
	if !ok {
		return Resolution{}, false
	}

	value, ok := r.parser.ParseValueLine(lines[pos+2].Text)
	if !ok {
		return Resolution{}, false
	}

	cand := value
	cand.Name = name
	cand.Date = date
	cand.Source = "date/name/value lines"
	if !r.accept(cand) {
		return Resolution{}, false
	}
	return Resolution{Candidate: cand, Consumed: 3}, true
}

// resolveDateNamePair handles the two-line shape: a line with both a
// date and a name, followed by the value line.
func (r *Resolver) resolveDateNamePair(lines []model.RawLine, pos int) (Resolution, bool) {
	if pos+1 >= len(lines) {
		return Resolution{}, false
	}

	head := strings.TrimSpace(lines[pos].Text)
	date := dateRe.FindString(head)
	if date == "" {
		return Resolution{}, false
	}

	// The name is whatever name-shaped text follows the date; a line
	// that already carries its own value belongs to the cascade, not
	// to pairing.
	rest := strings.TrimSpace(strings.Replace(head, date, "", 1))
	if rest == "" || digitRe.MatchString(rest) {
		return Resolution{}, false
	}
	name := filter.CleanName(nameTailRe.FindString(rest))
	if !r.gate.AcceptName(name) {
		return Resolution{}, false
	}

	value, ok := r.parser.ParseValueLine(lines[pos+1].Text)
	if !ok {
		return Resolution{}, false
	}

	cand := value
	cand.Name = name
	cand.Date = date
	cand.Source = "date+name/value lines"
	if !r.accept(cand) {
		return Resolution{}, false
	}
	return Resolution{Candidate: cand, Consumed: 2}, true
}

// resolveNameValuePair handles the common two-line OCR layout where
// the analyte name and its value land on separate rows with no date.
func (r *Resolver) resolveNameValuePair(lines []model.RawLine, pos int) (Resolution, bool) {
	if pos+1 >= len(lines) {
		return Resolution{}, false
	}

	name, ok := r.parser.MatchNameOnly(lines[pos].Text)
	if !ok {
		return Resolution{}, false
	}

	value, ok := r.parser.ParseValueLine(lines[pos+1].Text)
	if !ok {
		return Resolution{}, false
	}

	cand := value
	cand.Name = name
	cand.Source = "name/value lines"
	if !r.accept(cand) {
		return Resolution{}, false
	}
	return Resolution{Candidate: cand, Consumed: 2}, true
}

func (r *Resolver) accept(cand pattern.Candidate) bool {
	return r.gate.AcceptValue(cand.Value, cand.Unit) && r.gate.AcceptName(cand.Name)
}
