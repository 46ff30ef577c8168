package model

import (
	"math"
	"testing"
)

func TestBBoxEdges(t *testing.T) {
	b := NewBBox(0.1, 0.2, 0.3, 0.05)

	if b.Left() != 0.1 {
		t.Errorf("Left: expected 0.1, got %f", b.Left())
	}
	if math.Abs(b.Right()-0.4) > 1e-9 {
		t.Errorf("Right: expected 0.4, got %f", b.Right())
	}
	if b.Bottom() != 0.2 {
		t.Errorf("Bottom: expected 0.2, got %f", b.Bottom())
	}
	if b.Top() != 0.25 {
		t.Errorf("Top: expected 0.25, got %f", b.Top())
	}
}

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(0.1, 0.1, 0.2, 0.1)
	b := NewBBox(0.5, 0.15, 0.1, 0.1)

	u := a.Union(b)
	if u.Left() != 0.1 || math.Abs(u.Right()-0.6) > 1e-9 {
		t.Errorf("Union horizontal extent wrong: %+v", u)
	}
	if u.Bottom() != 0.1 || u.Top() != 0.25 {
		t.Errorf("Union vertical extent wrong: %+v", u)
	}
}

func TestBBoxIntersects(t *testing.T) {
	a := NewBBox(0, 0, 0.5, 0.5)
	b := NewBBox(0.4, 0.4, 0.5, 0.5)
	c := NewBBox(0.6, 0.6, 0.1, 0.1)

	if !a.Intersects(b) {
		t.Error("Expected a and b to intersect")
	}
	if a.Intersects(c) {
		t.Error("Expected a and c not to intersect")
	}
}

func TestLabResultValid(t *testing.T) {
	tests := []struct {
		name   string
		result LabResult
		want   bool
	}{
		{"normal", LabResult{Name: "ALT", Value: 31}, true},
		{"nan value", LabResult{Name: "ALT", Value: math.NaN()}, false},
		{"infinite value", LabResult{Name: "ALT", Value: math.Inf(1)}, false},
		{"short name", LabResult{Name: "A", Value: 1}, false},
		{"no letters", LabResult{Name: "12", Value: 1}, false},
		{"letter and digit", LabResult{Name: "B12", Value: 400}, true},
		{"whitespace name", LabResult{Name: "   ", Value: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRawLineIsEmpty(t *testing.T) {
	if !(RawLine{Text: " \t "}).IsEmpty() {
		t.Error("Expected whitespace-only line to be empty")
	}
	if (RawLine{Text: "Glucose"}).IsEmpty() {
		t.Error("Expected non-empty line")
	}
}
