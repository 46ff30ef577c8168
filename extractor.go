package labtract

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/tsawler/labtract/assemble"
	"github.com/tsawler/labtract/filter"
	"github.com/tsawler/labtract/format"
	"github.com/tsawler/labtract/htmlreport"
	"github.com/tsawler/labtract/layout"
	"github.com/tsawler/labtract/model"
	"github.com/tsawler/labtract/ocr"
	"github.com/tsawler/labtract/pattern"
	"github.com/tsawler/labtract/reader"
	"github.com/tsawler/labtract/repair"
	"github.com/tsawler/labtract/resolve"
)

// Extractor provides a fluent interface for extracting lab results from
// report pages. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method
// chaining.
type Extractor struct {
	// Source (one of)
	filename string
	pages    []Page

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during configuration
	warnings []Warning
}

// Diagnostics carries the results of one extraction run together with
// its intermediate state, for callers that need to see what the
// pipeline did with their report.
type Diagnostics struct {
	// Results in document order, identical to what Results() returns.
	Results []model.LabResult

	// Text is the repaired report text, one line per row.
	Text string

	// Unmatched holds the repaired lines that yielded no result.
	Unmatched []model.RawLine

	// Trace is a per-line processing log, populated only when the
	// extractor was configured with WithTrace.
	Trace []string
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This ensures immutability: each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		pages:    e.pages,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// ExtraAnalytes adds analyte names to the known set consulted when the
// fallback parser picks a name from a noisy line. Multiple calls are
// cumulative.
//
// Example:
//
//	results, _, err := labtract.FromLines(lines).
//	    ExtraAnalytes("Homocysteine", "Lipoprotein(a)").
//	    Results()
func (e *Extractor) ExtraAnalytes(names ...string) *Extractor {
	newExt := e.clone()
	newExt.options.extraAnalytes = append(newExt.options.extraAnalytes, names...)
	return newExt
}

// LayoutConfig overrides the geometric tolerances used to reconstruct
// lines from OCR fragments.
//
// Example:
//
//	cfg := layout.Config{SortTolerance: 0.2, RowTolerance: 0.1}
//	results, _, err := labtract.FromFragments(frags).LayoutConfig(cfg).Results()
func (e *Extractor) LayoutConfig(config layout.Config) *Extractor {
	newExt := e.clone()
	newExt.options.layoutConfig = config
	newExt.options.layoutConfigSet = true
	return newExt
}

// Lookahead sets how many following lines a fragmented date remnant may
// absorb during line repair. Values below one are clamped to one.
//
// Example:
//
//	results, _, err := labtract.FromLines(lines).Lookahead(6).Results()
func (e *Extractor) Lookahead(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		n = 1
	}
	newExt.options.lookahead = n
	return newExt
}

// WithTrace enables the per-line processing trace in Diagnostics().
//
// Example:
//
//	diag, _, err := labtract.FromLines(lines).WithTrace().Diagnostics()
//	for _, entry := range diag.Trace {
//	    fmt.Println(entry)
//	}
func (e *Extractor) WithTrace() *Extractor {
	newExt := e.clone()
	newExt.options.trace = true
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Results extracts lab results from the configured source, in document
// order. Returns the results, any warnings encountered during
// processing, and an error if the source could not be read. Content
// that fails to parse is never an error; unparseable lines are skipped.
//
// Example:
//
//	results, warnings, err := labtract.Open("report.pdf").Results()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", labtract.FormatWarnings(warnings))
//	}
func (e *Extractor) Results() ([]model.LabResult, []Warning, error) {
	return e.ResultsContext(context.Background())
}

// ResultsContext is Results with cancellation. Pages are processed
// concurrently; cancellation is honored between pages, and results from
// pages that completed before cancellation are returned with a
// WarnCancelled warning rather than an error.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	results, warnings, err := labtract.FromPages(pages).ResultsContext(ctx)
func (e *Extractor) ResultsContext(ctx context.Context) ([]model.LabResult, []Warning, error) {
	diag, warnings, err := e.run(ctx)
	if err != nil {
		return nil, warnings, err
	}
	return diag.Results, warnings, nil
}

// Diagnostics extracts results and returns them together with the
// repaired text, the unmatched lines, and the processing trace when
// WithTrace was set.
//
// Example:
//
//	diag, _, err := labtract.FromLines(lines).Diagnostics()
//	for _, line := range diag.Unmatched {
//	    fmt.Println("skipped:", line.Text)
//	}
func (e *Extractor) Diagnostics() (*Diagnostics, []Warning, error) {
	return e.run(context.Background())
}

// ============================================================================
// Pipeline
// ============================================================================

// run executes the full pipeline: source loading, per-page line
// production, repair, parsing, and assembly.
func (e *Extractor) run(ctx context.Context) (*Diagnostics, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	warnings := append([]Warning(nil), e.warnings...)

	pages, err := e.loadPages(&warnings)
	if err != nil {
		return nil, warnings, err
	}

	// Each page produces its lines independently. Results are keyed by
	// page index so output order never depends on scheduling.
	perPage := make([][]model.RawLine, len(pages))
	var wg sync.WaitGroup
	var mu sync.Mutex
	cancelled := false

	for i := range pages {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			lines, pageWarnings := e.pageLines(pages[idx], idx)
			perPage[idx] = lines
			if len(pageWarnings) > 0 {
				mu.Lock()
				warnings = append(warnings, pageWarnings...)
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if cancelled {
		warnings = append(warnings, Warning{
			Code:    WarnCancelled,
			Message: "context cancelled; results cover completed pages only",
		})
	}

	// Concatenate in page order with sequential indices.
	var all []model.RawLine
	for _, pl := range perPage {
		for _, l := range pl {
			all = append(all, model.RawLine{Text: l.Text, Index: len(all)})
		}
	}

	diag := e.extract(all)
	return diag, warnings, nil
}

// extract runs repair, the pattern cascade, the multi-line resolvers,
// and assembly over an ordered line sequence.
func (e *Extractor) extract(lines []model.RawLine) *Diagnostics {
	merged := e.merger().Merge(lines)

	gate := filter.NewPlausibility()
	gate.AddAnalytes(e.options.extraAnalytes...)
	parser := pattern.NewParser(gate)
	resolver := resolve.NewResolver(parser, gate)

	diag := &Diagnostics{}

	texts := make([]string, len(merged))
	for i, l := range merged {
		texts[i] = l.Text
	}
	diag.Text = strings.Join(texts, "\n")

	i := 0
	for i < len(merged) {
		line := merged[i]

		if cand, ok := parser.ParseLine(line.Text); ok {
			if rec, built := assemble.Build(cand); built {
				diag.Results = append(diag.Results, rec)
				e.trace(diag, "line %d: %s = %g via %s", line.Index, rec.Name, rec.Value, cand.Source)
				i++
				continue
			}
		}

		if res, ok := resolver.Resolve(merged, i); ok {
			if rec, built := assemble.Build(res.Candidate); built {
				diag.Results = append(diag.Results, rec)
				e.trace(diag, "line %d: %s = %g via %s (%d lines)",
					line.Index, rec.Name, rec.Value, res.Candidate.Source, res.Consumed)
				i += res.Consumed
				continue
			}
		}

		diag.Unmatched = append(diag.Unmatched, line)
		e.trace(diag, "line %d: unmatched: %q", line.Index, line.Text)
		i++
	}

	return diag
}

func (e *Extractor) trace(diag *Diagnostics, formatStr string, args ...any) {
	if e.options.trace {
		diag.Trace = append(diag.Trace, fmt.Sprintf(formatStr, args...))
	}
}

func (e *Extractor) merger() *repair.Merger {
	if e.options.lookahead > 0 {
		return repair.NewMergerWithLookahead(e.options.lookahead)
	}
	return repair.NewMerger()
}

func (e *Extractor) reconstructor() *layout.Reconstructor {
	if e.options.layoutConfigSet {
		return layout.NewReconstructorWithConfig(e.options.layoutConfig)
	}
	return layout.NewReconstructor()
}

// pageLines produces the ordered lines of one page. Native lines win
// only when they hold actual text; a page whose Lines are all blank
// falls through to its fragment or image source. OCR failures are
// warnings, not errors; the page then contributes zero lines.
func (e *Extractor) pageLines(pg Page, idx int) ([]model.RawLine, []Warning) {
	switch {
	case hasText(pg.Lines):
		out := make([]model.RawLine, 0, len(pg.Lines))
		for i, s := range pg.Lines {
			out = append(out, model.RawLine{Text: s, Index: i})
		}
		return out, nil

	case pg.Fragments != nil:
		return e.reconstructor().Reconstruct(pg.Fragments), nil

	case pg.Image != nil:
		client, err := ocr.New()
		if err != nil {
			return nil, []Warning{{Code: WarnOCRFailed, Page: idx + 1, Message: err.Error()}}
		}
		defer client.Close()

		fragments, err := client.RecognizeFragments(pg.Image, idx)
		if err != nil {
			return nil, []Warning{{Code: WarnOCRFailed, Page: idx + 1, Message: err.Error()}}
		}
		return e.reconstructor().Reconstruct(fragments), nil
	}

	return nil, nil
}

// hasText reports whether any line contains non-whitespace content.
func hasText(lines []string) bool {
	for _, s := range lines {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

// loadPages resolves the configured source into a page sequence. For
// in-memory sources this is the supplied pages; for Open this reads the
// file through the matching collaborator.
func (e *Extractor) loadPages(warnings *[]Warning) ([]Page, error) {
	if e.filename == "" {
		return e.pages, nil
	}

	f := format.Detect(e.filename)
	if f == format.Unknown {
		sniffed, err := sniffFormat(e.filename)
		if err != nil {
			return nil, err
		}
		f = sniffed
	}

	switch f {
	case format.PDF:
		return e.loadPDF(warnings)

	case format.HTML:
		r, err := htmlreport.Open(e.filename)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		lines := r.Lines()
		texts := make([]string, len(lines))
		for i, l := range lines {
			texts[i] = l.Text
		}
		return []Page{{Lines: texts}}, nil

	case format.Image:
		img, err := reader.OpenImage(e.filename)
		if err != nil {
			return nil, err
		}
		return []Page{{Image: img.Data()}}, nil

	default:
		return nil, fmt.Errorf("unsupported file format for %s", e.filename)
	}
}

// loadPDF reads native text per page. A page with no extractable text
// is recorded as a warning; rasterizing PDF pages for OCR is outside
// this reader's scope, so such pages contribute zero lines.
func (e *Extractor) loadPDF(warnings *[]Warning) ([]Page, error) {
	r, err := reader.Open(e.filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	pages := make([]Page, 0, r.PageCount())
	for p := 1; p <= r.PageCount(); p++ {
		lines, err := r.PageLines(p)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", p, err)
		}

		texts := make([]string, 0, len(lines))
		for _, l := range lines {
			if !l.IsEmpty() {
				texts = append(texts, l.Text)
			}
		}
		if len(texts) == 0 {
			*warnings = append(*warnings, Warning{
				Code:    WarnPageEmpty,
				Page:    p,
				Message: "no extractable text",
			})
		}
		pages = append(pages, Page{Lines: texts})
	}
	return pages, nil
}

// sniffFormat reads the leading bytes of a file and detects its format
// from magic numbers.
func sniffFormat(filename string) (format.Format, error) {
	file, err := os.Open(filename)
	if err != nil {
		return format.Unknown, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer file.Close()

	magic := make([]byte, 512)
	n, _ := file.Read(magic)
	return format.DetectFromMagic(magic[:n]), nil
}
