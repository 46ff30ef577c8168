package assemble

import (
	"math"
	"strings"

	"github.com/tsawler/labtract/model"
	"github.com/tsawler/labtract/pattern"
)

// Build normalizes an accepted candidate into a LabResult. It returns
// false when the candidate violates an output invariant; upstream
// parsing already guarantees a finite value and a usable name, but the
// assembler is the last line of defense and re-checks both.
func Build(cand pattern.Candidate) (model.LabResult, bool) {
	if math.IsNaN(cand.Value) || math.IsInf(cand.Value, 0) {
		return model.LabResult{}, false
	}

	result := model.LabResult{
		Name:           strings.TrimSpace(cand.Name),
		Value:          cand.Value,
		Unit:           orNA(cand.Unit),
		ReferenceRange: orNA(cand.Range),
		Provenance:     provenance(cand),
	}

	if !result.Valid() {
		return model.LabResult{}, false
	}
	return result, true
}

// provenance builds the free-text audit note: the source date context
// when one was captured, the abnormal flag when present, and the
// template or fallback that produced the match.
func provenance(cand pattern.Candidate) string {
	var parts []string
	if cand.Date != "" {
		parts = append(parts, cand.Date)
	}
	if cand.Flag != "" {
		parts = append(parts, "flag "+cand.Flag)
	}
	if cand.Source != "" {
		parts = append(parts, cand.Source)
	}
	return strings.TrimSpace(strings.Join(parts, "; "))
}

func orNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.NotAvailable
	}
	return s
}
