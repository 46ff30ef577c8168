package reader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/labtract/model"
)

// defaultLineTolerance is the vertical distance, in points, within which two
// text pieces are treated as belonging to the same line when the pieces carry
// no usable font size.
const defaultLineTolerance = 2.0

// Reader provides page-level access to a lab report PDF. Pages are numbered
// from 1. The caller must call Close when finished.
type Reader struct {
	file *os.File
	pdf  *pdf.Reader
	path string
}

// Open opens the PDF file at the given path.
func Open(path string) (*Reader, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	return &Reader{file: f, pdf: r, path: path}, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() int {
	return r.pdf.NumPage()
}

// PageLines extracts the native text of a page as ordered lines. Text pieces
// are grouped into lines by vertical position, with pieces in each line sorted
// left to right. Pages with no native text return an empty slice and no error.
func (r *Reader) PageLines(pageNum int) ([]model.RawLine, error) {
	if pageNum < 1 || pageNum > r.pdf.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", pageNum, r.pdf.NumPage())
	}
	page := r.pdf.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}
	content := page.Content()
	return assembleLines(content.Text), nil
}

// NeedsOCR reports whether a page has no extractable native text and must be
// rasterized and recognized instead.
func (r *Reader) NeedsOCR(pageNum int) (bool, error) {
	lines, err := r.PageLines(pageNum)
	if err != nil {
		return false, err
	}
	for _, line := range lines {
		if !line.IsEmpty() {
			return false, nil
		}
	}
	return true, nil
}

// assembleLines groups positioned text pieces into reading-order lines.
// PDF coordinates have the origin at the bottom left, so larger Y values
// come first.
func assembleLines(pieces []pdf.Text) []model.RawLine {
	kept := pieces[:0:0]
	for _, p := range pieces {
		if strings.TrimSpace(p.S) != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Y != kept[j].Y {
			return kept[i].Y > kept[j].Y
		}
		return kept[i].X < kept[j].X
	})

	var rows [][]pdf.Text
	anchorY := kept[0].Y
	current := []pdf.Text{kept[0]}
	for _, p := range kept[1:] {
		if anchorY-p.Y > lineTolerance(p) {
			rows = append(rows, current)
			current = []pdf.Text{p}
			anchorY = p.Y
			continue
		}
		current = append(current, p)
	}
	rows = append(rows, current)

	lines := make([]model.RawLine, 0, len(rows))
	for i, row := range rows {
		sort.SliceStable(row, func(a, b int) bool { return row[a].X < row[b].X })
		lines = append(lines, model.RawLine{Text: joinRow(row), Index: i})
	}
	return lines
}

func lineTolerance(p pdf.Text) float64 {
	if p.FontSize > 0 {
		return p.FontSize * 0.5
	}
	return defaultLineTolerance
}

// joinRow concatenates the pieces of a line, inserting a space where the
// horizontal gap between adjacent pieces suggests a word boundary.
func joinRow(row []pdf.Text) string {
	var b strings.Builder
	for i, p := range row {
		if i > 0 {
			prev := row[i-1]
			gap := p.X - (prev.X + prev.W)
			if gap > gapThreshold(prev) && !strings.HasSuffix(b.String(), " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(p.S)
	}
	return strings.TrimSpace(b.String())
}

func gapThreshold(p pdf.Text) float64 {
	if p.FontSize > 0 {
		return p.FontSize * 0.2
	}
	return 1.0
}
