package filter

import "testing"

func TestAcceptValue_DateRejection(t *testing.T) {
	p := NewPlausibility()

	tests := []struct {
		name  string
		value float64
		unit  string
		want  bool
	}{
		{"separator unit slash", 15, "/", false},
		{"separator unit dash", 3, "-", false},
		{"separator unit backslash", 7, `\`, false},
		{"separator unit pipe", 9, "|", false},
		{"bare day magnitude", 12, "", false},
		{"bare month magnitude", 5, "", false},
		{"day with short unit", 31, "mg", false},
		{"year magnitude", 2025, "", false},
		{"old year magnitude", 1987, "", false},
		{"digits only unit", 95, "03", false},
		{"separator soup unit", 95, "//", false},
		{"digit separator mix unit", 95, "1/2", false},
		{"percent unit", 41, "%", true},
		{"percent unit low value", 5.2, "%", true},
		{"real value with unit", 31, "U/L", true},
		{"real value no unit above day range", 116, "", true},
		{"decimal value short unit", 7.5, "", true},
		{"value outside year range", 2500, "", true},
		{"low value with real unit", 5, "mmol/L", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.AcceptValue(tt.value, tt.unit); got != tt.want {
				t.Errorf("AcceptValue(%v, %q) = %v, want %v", tt.value, tt.unit, got, tt.want)
			}
		})
	}
}

func TestAcceptName(t *testing.T) {
	p := NewPlausibility()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"normal", "Glucose", true},
		{"abbreviation", "ALT", true},
		{"letter and digit", "B12", true},
		{"single char", "A", false},
		{"digits only", "123", false},
		{"empty", "", false},
		{"whitespace", "  \t ", false},
		{"control chars around name", "\x01AST\x02", true},
		{"messy internal spacing", "White   Blood\tCells", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.AcceptName(tt.in); got != tt.want {
				t.Errorf("AcceptName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsKnownAnalyte(t *testing.T) {
	p := NewPlausibility()

	if !p.IsKnownAnalyte("glucose") {
		t.Error("Expected glucose to be known (case-insensitive)")
	}
	if !p.IsKnownAnalyte("Serum Creatinine") {
		t.Error("Expected word-level match for Serum Creatinine")
	}
	if p.IsKnownAnalyte("Frobnicase") {
		t.Error("Did not expect Frobnicase to be known")
	}
}

func TestAddAnalytes(t *testing.T) {
	p := NewPlausibility()
	if p.IsKnownAnalyte("Troponin") {
		t.Fatal("Troponin should not be in the default set for this test")
	}

	p.AddAnalytes("troponin")
	if !p.IsKnownAnalyte("TROPONIN") {
		t.Error("Expected added analyte to match case-insensitively")
	}
}

func TestCleanName(t *testing.T) {
	got := CleanName("  White \x00 Blood   Cells ")
	if got != "White Blood Cells" {
		t.Errorf("CleanName returned %q", got)
	}
}
