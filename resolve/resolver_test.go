package resolve

import (
	"testing"

	"github.com/tsawler/labtract/filter"
	"github.com/tsawler/labtract/model"
	"github.com/tsawler/labtract/pattern"
)

func newTestResolver() *Resolver {
	gate := filter.NewPlausibility()
	return NewResolver(pattern.NewParser(gate), gate)
}

func makeLines(texts ...string) []model.RawLine {
	lines := make([]model.RawLine, len(texts))
	for i, t := range texts {
		lines[i] = model.RawLine{Text: t, Index: i}
	}
	return lines
}

func TestResolve_DateNameValueTriple(t *testing.T) {
	r := newTestResolver()
	lines := makeLines("05/01/2025", "Glucose", "95 mg/dL")

	res, ok := r.Resolve(lines, 0)
	if !ok {
		t.Fatal("Expected the triple shape to resolve")
	}
	if res.Consumed != 3 {
		t.Errorf("Expected exactly 3 lines consumed, got %d", res.Consumed)
	}
	c := res.Candidate
	if c.Name != "Glucose" || c.Value != 95.0 || c.Unit != "mg/dL" {
		t.Errorf("Unexpected candidate: %+v", c)
	}
	if c.Date != "05/01/2025" {
		t.Errorf("Expected date context, got %q", c.Date)
	}
}

func TestResolve_TripleValueLineSubPatterns(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name      string
		valueLine string
		value     float64
		unit      string
		flag      string
	}{
		{"value unit flag", "95 mg/dL H", 95, "mg/dL", "H"},
		{"value unit", "95 mg/dL", 95, "mg/dL", ""},
		{"value flag", "116.00 H", 116.00, "", "H"},
		{"bare value", "116.00", 116.00, "", ""},
		{"first number fallback", "reading 116.00 confirmed", 116.00, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := makeLines("05/01/2025", "Glucose", tt.valueLine)
			res, ok := r.Resolve(lines, 0)
			if !ok {
				t.Fatal("Expected resolution")
			}
			if res.Consumed != 3 {
				t.Errorf("Consumed = %d, want 3", res.Consumed)
			}
			c := res.Candidate
			if c.Value != tt.value || c.Unit != tt.unit || c.Flag != tt.flag {
				t.Errorf("Got value=%v unit=%q flag=%q", c.Value, c.Unit, c.Flag)
			}
		})
	}
}

func TestResolve_DateNamePair(t *testing.T) {
	r := newTestResolver()
	lines := makeLines("05/01/2025 Creatinine", "1.1 mg/dL")

	res, ok := r.Resolve(lines, 0)
	if !ok {
		t.Fatal("Expected the date+name/value pair to resolve")
	}
	if res.Consumed != 2 {
		t.Errorf("Expected exactly 2 lines consumed, got %d", res.Consumed)
	}
	c := res.Candidate
	if c.Name != "Creatinine" || c.Value != 1.1 || c.Unit != "mg/dL" {
		t.Errorf("Unexpected candidate: %+v", c)
	}
	if c.Date != "05/01/2025" {
		t.Errorf("Expected date context, got %q", c.Date)
	}
}

func TestResolve_NameValuePair(t *testing.T) {
	r := newTestResolver()
	lines := makeLines("AST", "116.00 H")

	res, ok := r.Resolve(lines, 0)
	if !ok {
		t.Fatal("Expected the name/value pair to resolve")
	}
	if res.Consumed != 2 {
		t.Errorf("Expected exactly 2 lines consumed, got %d", res.Consumed)
	}
	c := res.Candidate
	if c.Name != "AST" || c.Value != 116.00 {
		t.Errorf("Unexpected candidate: %+v", c)
	}
	if c.Unit != "" {
		t.Errorf("Flag must not land in the unit, got %q", c.Unit)
	}
	if c.Flag != "H" {
		t.Errorf("Expected flag H, got %q", c.Flag)
	}
}

func TestResolve_BareDateWithNoFollowersFails(t *testing.T) {
	r := newTestResolver()
	lines := makeLines("12/25/2024")

	if _, ok := r.Resolve(lines, 0); ok {
		t.Error("A lone date must not resolve")
	}
}

func TestResolve_DateThenNoiseFails(t *testing.T) {
	r := newTestResolver()
	lines := makeLines("12/25/2024", "~~~~", "no numbers here")

	if _, ok := r.Resolve(lines, 0); ok {
		t.Error("Date followed by noise must not resolve")
	}
}

func TestResolve_ValueLineDateFragmentRejected(t *testing.T) {
	r := newTestResolver()
	// The "value" line is really a date remnant; the gate must veto it.
	lines := makeLines("AST", "12")

	if _, ok := r.Resolve(lines, 0); ok {
		t.Error("A day-range value with no unit must not resolve")
	}
}

func TestResolve_OutOfRangeCursor(t *testing.T) {
	r := newTestResolver()
	lines := makeLines("AST", "116.00")

	if _, ok := r.Resolve(lines, 5); ok {
		t.Error("Out-of-range cursor must not resolve")
	}
	if _, ok := r.Resolve(lines, -1); ok {
		t.Error("Negative cursor must not resolve")
	}
}
