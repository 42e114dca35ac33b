// Package export renders a structured document (plus optional per-section
// summaries) to the formats downstream tooling consumes: Markdown, HTML,
// JSON, and a BibTeX skeleton of the parsed reference list.
package export

import (
	"fmt"
	"strings"

	"github.com/paperlens/paperlens/internal/paper"
)

// Format names an output renderer.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatBibTeX   Format = "bibtex"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMarkdown, "markdown":
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatBibTeX, "bib":
		return FormatBibTeX, nil
	}
	return "", fmt.Errorf("unknown export format: %q (want md, html, json, or bibtex)", s)
}

// Render dispatches to the renderer for the given format.
func Render(format Format, doc *paper.StructuredDocument, summaries map[paper.SectionLabel]string) (string, error) {
	switch format {
	case FormatMarkdown:
		return Markdown(doc, summaries), nil
	case FormatHTML:
		return HTML(doc, summaries), nil
	case FormatJSON:
		return JSON(doc, summaries)
	case FormatBibTeX:
		return BibTeX(doc.References), nil
	}
	return "", fmt.Errorf("unknown export format: %q", format)
}

// sectionTitle renders a label as a human heading.
func sectionTitle(label paper.SectionLabel) string {
	if label == "" {
		return ""
	}
	s := string(label)
	return strings.ToUpper(s[:1]) + s[1:]
}

// citationLine renders one resolved citation as a compact summary line.
func citationLine(c paper.ResolvedCitation) string {
	ids := make([]string, 0, len(c.Matched))
	for _, e := range c.Matched {
		ids = append(ids, fmt.Sprintf("[%d]", e.ID))
	}
	target := strings.Join(ids, " ")
	if target == "" {
		target = "-"
	}
	return fmt.Sprintf("%s -> %s (%s, confidence %.2f)",
		c.Marker.Surface, target, c.Status, c.Confidence)
}
