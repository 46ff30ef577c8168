// Package htmlreport extracts the visible text of an HTML lab report as
// ordered lines. Block-level elements become one line each, and table rows
// are flattened so a row of name, value, unit and range cells reads as a
// single line.
package htmlreport

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/labtract/model"
)

// Reader provides line-oriented access to an HTML report.
type Reader struct {
	doc   *html.Node
	title string
	lines []string
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{doc: doc}
	reader.extractTitle(doc)

	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	reader.collectLines(body)

	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close for HTML (no file handles kept)
	return nil
}

// Title returns the document title, if any.
func (r *Reader) Title() string { return r.title }

// Lines returns the report content as ordered lines.
func (r *Reader) Lines() []model.RawLine {
	lines := make([]model.RawLine, len(r.lines))
	for i, text := range r.lines {
		lines[i] = model.RawLine{Text: text, Index: i}
	}
	return lines
}

func (r *Reader) extractTitle(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "title" {
		r.title = getTextContent(n)
		return
	}
	for c := n.FirstChild; c != nil && r.title == ""; c = c.NextSibling {
		r.extractTitle(c)
	}
}

// collectLines walks the DOM emitting one line per block-level element.
func (r *Reader) collectLines(n *html.Node) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6", "p", "li", "blockquote", "pre":
			r.appendLine(getTextContent(n))
			return

		case "div":
			if !isBlockContainer(n) {
				r.appendLine(getTextContent(n))
				return
			}
			// Container div; recurse into its block children.

		case "table":
			r.collectTableLines(n)
			return

		case "br", "hr":
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.collectLines(c)
	}
}

// collectTableLines flattens each table row into one line, cells separated
// by single spaces.
func (r *Reader) collectTableLines(table *html.Node) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					if text := getTextContent(c); text != "" {
						cells = append(cells, text)
					}
				}
			}
			r.appendLine(strings.Join(cells, " "))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
}

func (r *Reader) appendLine(text string) {
	text = strings.TrimSpace(text)
	if text != "" {
		r.lines = append(r.lines, text)
	}
}

// shouldSkipElement returns true if the element carries no report content.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// isBlockContainer returns true if the element has block-level children.
func isBlockContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "div", "p", "ul", "ol", "table", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre":
				return true
			}
		}
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.Join(strings.Fields(result.String()), " ")
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}
