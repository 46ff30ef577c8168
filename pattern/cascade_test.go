package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/labtract/filter"
)

func newTestParser() *Parser {
	return NewParser(filter.NewPlausibility())
}

func TestParseLine_DateNameValueUnit(t *testing.T) {
	p := newTestParser()

	cand, ok := p.ParseLine("05/01/2025 ALT 31.00 U/L")
	require.True(t, ok)
	assert.Equal(t, "ALT", cand.Name)
	assert.Equal(t, 31.00, cand.Value)
	assert.Equal(t, "U/L", cand.Unit)
	assert.Equal(t, "05/01/2025", cand.Date)
	assert.Equal(t, "date name value unit", cand.Source)
}

func TestParseLine_NameColonValueWithRange(t *testing.T) {
	p := newTestParser()

	cand, ok := p.ParseLine("Glucose: 95 mg/dL (70-100)")
	require.True(t, ok)
	assert.Equal(t, "Glucose", cand.Name)
	assert.Equal(t, 95.0, cand.Value)
	assert.Equal(t, "mg/dL", cand.Unit)
	assert.Equal(t, "70-100", cand.Range)
}

func TestParseLine_NameValueUnitRange(t *testing.T) {
	p := newTestParser()

	cand, ok := p.ParseLine("Hemoglobin 13.5 g/dL 12.0-15.5")
	require.True(t, ok)
	assert.Equal(t, "Hemoglobin", cand.Name)
	assert.Equal(t, 13.5, cand.Value)
	assert.Equal(t, "g/dL", cand.Unit)
	assert.Equal(t, "12.0-15.5", cand.Range)
}

func TestParseLine_FlagNotMistakenForUnit(t *testing.T) {
	p := newTestParser()

	cand, ok := p.ParseLine("AST 116.00 H")
	require.True(t, ok)
	assert.Equal(t, "AST", cand.Name)
	assert.Equal(t, 116.00, cand.Value)
	assert.Empty(t, cand.Unit, "H is a flag, not a unit")
	assert.Equal(t, "H", cand.Flag)
}

func TestParseLine_DateOnlyYieldsNothing(t *testing.T) {
	p := newTestParser()

	_, ok := p.ParseLine("12/25/2024")
	assert.False(t, ok, "a bare date must not produce a result")
}

func TestParseLine_DateFragmentRejected(t *testing.T) {
	p := newTestParser()

	// "15/" parses structurally but the filter must reject it.
	_, ok := p.ParseLine("Collected 15/")
	assert.False(t, ok)
}

func TestParseLine_FallbackRecoversNoisyLine(t *testing.T) {
	p := newTestParser()

	cand, ok := p.ParseLine("** Creatinine ... 1.1 mg/dL [ref]")
	require.True(t, ok)
	assert.Equal(t, FallbackSource, cand.Source)
	assert.Equal(t, 1.1, cand.Value)
	assert.Equal(t, "mg/dL", cand.Unit)
	assert.Contains(t, cand.Name, "Creatinine")
}

func TestParseLine_FallbackPrefersKnownAnalytePrefix(t *testing.T) {
	p := newTestParser()

	cand, ok := p.ParseLine("| Total Serum Cholesterol ~ 180 mg/dL")
	require.True(t, ok)
	assert.Contains(t, cand.Name, "Cholesterol")
}

func TestParseLine_NoDigitsNoResult(t *testing.T) {
	p := newTestParser()

	for _, line := range []string{"", "   ", "Patient Name: John", "REPORT SUMMARY", "~~~///~~~"} {
		if _, ok := p.ParseLine(line); ok {
			t.Errorf("Line %q should yield no result", line)
		}
	}
}

func TestParseValueLine(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name     string
		line     string
		ok       bool
		value    float64
		unit     string
		flag     string
	}{
		{"value unit flag", "95 mg/dL H", true, 95, "mg/dL", "H"},
		{"value unit", "95 mg/dL", true, 95, "mg/dL", ""},
		{"value flag", "116.00 H", true, 116.00, "", "H"},
		{"bare value", "116.00", true, 116.00, "", ""},
		{"first number fallback", "result was 116.00 today", true, 116.00, "", ""},
		{"date-like value rejected", "12", false, 0, "", ""},
		{"no number", "pending", false, 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, ok := p.ParseValueLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.value, cand.Value)
			assert.Equal(t, tt.unit, cand.Unit)
			assert.Equal(t, tt.flag, cand.Flag)
		})
	}
}

func TestMatchNameOnly(t *testing.T) {
	p := newTestParser()

	name, ok := p.MatchNameOnly("Glucose")
	require.True(t, ok)
	assert.Equal(t, "Glucose", name)

	_, ok = p.MatchNameOnly("Glucose 95")
	assert.False(t, ok, "a line with a value is not name-only")

	_, ok = p.MatchNameOnly("a")
	assert.False(t, ok, "too short after cleaning")
}

func TestParseLine_Idempotent(t *testing.T) {
	p := newTestParser()
	line := "05/01/2025 ALT 31.00 U/L"

	first, ok1 := p.ParseLine(line)
	second, ok2 := p.ParseLine(line)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}
