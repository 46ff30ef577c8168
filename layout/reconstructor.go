package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/labtract/model"
)

// Config holds configuration for line reconstruction. All tolerances
// are fractions of normalized page height.
type Config struct {
	// SortTolerance is the Y-distance band within which two fragments
	// are treated as vertically equal during the initial reading-order
	// sort (default: 0.15).
	SortTolerance float64

	// RowTolerance is the tighter Y-distance from the running row
	// anchor within which a fragment joins the current line
	// (default: 0.08).
	RowTolerance float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		SortTolerance: 0.15,
		RowTolerance:  0.08,
	}
}

// Reconstructor groups OCR fragments into reading-order text lines
type Reconstructor struct {
	config Config
}

// NewReconstructor creates a reconstructor with default configuration
func NewReconstructor() *Reconstructor {
	return &Reconstructor{config: DefaultConfig()}
}

// NewReconstructorWithConfig creates a reconstructor with custom configuration
func NewReconstructorWithConfig(config Config) *Reconstructor {
	return &Reconstructor{config: config}
}

// Reconstruct orders fragments top to bottom, groups them into rows,
// and returns one RawLine per row with fragment text joined by single
// spaces. Line indices are assigned in reading order starting at 0.
func (r *Reconstructor) Reconstruct(fragments []model.OcrFragment) []model.RawLine {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]model.OcrFragment, len(fragments))
	copy(sorted, fragments)

	// Sort by Y descending (top of page first). Fragments whose
	// vertical positions fall within the sort tolerance band are
	// treated as the same row and ordered left to right instead.
	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := sorted[i].Box.Y - sorted[j].Box.Y
		if absFloat(yDiff) > r.config.SortTolerance {
			return yDiff > 0
		}
		return sorted[i].Box.X < sorted[j].Box.X
	})

	var lines []model.RawLine
	var row []model.OcrFragment
	anchorY := 0.0

	flush := func() {
		if len(row) == 0 {
			return
		}
		// Within a row the sort above is only approximate; order the
		// final row strictly left to right before joining.
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].Box.X < row[j].Box.X
		})
		var sb strings.Builder
		for i, frag := range row {
			text := strings.TrimSpace(frag.Text)
			if text == "" {
				continue
			}
			if i > 0 && sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(text)
		}
		if sb.Len() > 0 {
			lines = append(lines, model.RawLine{Text: sb.String(), Index: len(lines)})
		}
		row = nil
	}

	for _, frag := range sorted {
		if len(row) == 0 {
			row = append(row, frag)
			anchorY = frag.Box.Y
			continue
		}

		if absFloat(frag.Box.Y-anchorY) <= r.config.RowTolerance {
			row = append(row, frag)
		} else {
			flush()
			row = append(row, frag)
			anchorY = frag.Box.Y
		}
	}
	flush()

	return lines
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
