package layout

import (
	"reflect"
	"testing"

	"github.com/tsawler/labtract/model"
)

// makeFragment creates a test OCR fragment at a normalized position
func makeFragment(text string, x, y float64) model.OcrFragment {
	return model.OcrFragment{
		Text: text,
		Box:  model.NewBBox(x, y, 0.05, 0.02),
	}
}

func lineTexts(lines []model.RawLine) []string {
	var out []string
	for _, l := range lines {
		out = append(out, l.Text)
	}
	return out
}

func TestReconstruct_Empty(t *testing.T) {
	rec := NewReconstructor()
	if got := rec.Reconstruct(nil); got != nil {
		t.Errorf("Expected nil for empty input, got %v", got)
	}
}

func TestReconstruct_SingleRow(t *testing.T) {
	rec := NewReconstructor()
	fragments := []model.OcrFragment{
		makeFragment("31.00", 0.5, 0.801),
		makeFragment("ALT", 0.3, 0.8),
		makeFragment("05/01/2025", 0.1, 0.799),
		makeFragment("U/L", 0.7, 0.8),
	}

	lines := rec.Reconstruct(fragments)
	want := []string{"05/01/2025 ALT 31.00 U/L"}
	if !reflect.DeepEqual(lineTexts(lines), want) {
		t.Errorf("Expected %v, got %v", want, lineTexts(lines))
	}
}

func TestReconstruct_TwoRowsTopFirst(t *testing.T) {
	rec := NewReconstructor()
	// Second row given first; Y=0.4 row must come after Y=0.8 row.
	fragments := []model.OcrFragment{
		makeFragment("Glucose", 0.1, 0.4),
		makeFragment("95", 0.4, 0.4),
		makeFragment("AST", 0.1, 0.8),
		makeFragment("116.00", 0.4, 0.8),
	}

	lines := rec.Reconstruct(fragments)
	want := []string{"AST 116.00", "Glucose 95"}
	if !reflect.DeepEqual(lineTexts(lines), want) {
		t.Errorf("Expected %v, got %v", want, lineTexts(lines))
	}

	for i, line := range lines {
		if line.Index != i {
			t.Errorf("Line %d: expected index %d, got %d", i, i, line.Index)
		}
	}
}

func TestReconstruct_RowToleranceSplits(t *testing.T) {
	rec := NewReconstructor()
	// 0.1 apart is beyond the 0.08 row tolerance: two lines.
	fragments := []model.OcrFragment{
		makeFragment("WBC", 0.1, 0.70),
		makeFragment("7.5", 0.1, 0.60),
	}

	lines := rec.Reconstruct(fragments)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %v", len(lines), lineTexts(lines))
	}
}

func TestReconstruct_JitterStaysOneRow(t *testing.T) {
	rec := NewReconstructor()
	// Vertical jitter well inside the row tolerance: one line.
	fragments := []model.OcrFragment{
		makeFragment("Hemoglobin", 0.1, 0.502),
		makeFragment("13.5", 0.4, 0.50),
		makeFragment("g/dL", 0.6, 0.498),
	}

	lines := rec.Reconstruct(fragments)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d: %v", len(lines), lineTexts(lines))
	}
	if lines[0].Text != "Hemoglobin 13.5 g/dL" {
		t.Errorf("Unexpected line text: %q", lines[0].Text)
	}
}

func TestReconstruct_SkipsBlankFragments(t *testing.T) {
	rec := NewReconstructor()
	fragments := []model.OcrFragment{
		makeFragment("  ", 0.05, 0.5),
		makeFragment("RBC", 0.1, 0.5),
		makeFragment("4.7", 0.4, 0.5),
	}

	lines := rec.Reconstruct(fragments)
	if len(lines) != 1 || lines[0].Text != "RBC 4.7" {
		t.Errorf("Expected single line \"RBC 4.7\", got %v", lineTexts(lines))
	}
}

func TestReconstruct_CustomConfig(t *testing.T) {
	rec := NewReconstructorWithConfig(Config{SortTolerance: 0.3, RowTolerance: 0.2})
	fragments := []model.OcrFragment{
		makeFragment("Sodium", 0.1, 0.55),
		makeFragment("140", 0.4, 0.40),
	}

	// With a 0.2 row tolerance the 0.15 gap merges into one line.
	lines := rec.Reconstruct(fragments)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line with loose tolerance, got %d", len(lines))
	}
}
