package export

import (
	"fmt"
	"strings"

	"github.com/paperlens/paperlens/internal/paper"
)

// Markdown renders the document as a Markdown report: per-section
// summaries when available (full text otherwise), the reference list, and
// the citation map with status and confidence.
func Markdown(doc *paper.StructuredDocument, summaries map[paper.SectionLabel]string) string {
	var parts []string
	parts = append(parts, "# Summary: "+doc.Title)

	for _, label := range paper.BodyLabels {
		sec := doc.Section(label)
		if sec == nil {
			continue
		}
		text := summaries[label]
		if text == "" {
			text = strings.TrimSpace(sec.Text)
		}
		if text == "" {
			continue
		}
		parts = append(parts, "## "+sectionTitle(label), text)
	}

	if len(doc.References) > 0 {
		parts = append(parts, "## References")
		var refs []string
		for _, e := range doc.References {
			refs = append(refs, fmt.Sprintf("%d. %s", e.ID, strings.Join(strings.Fields(e.RawText), " ")))
		}
		parts = append(parts, strings.Join(refs, "\n"))
	}

	if len(doc.Citations) > 0 {
		parts = append(parts, "## Citations")
		var lines []string
		for _, c := range doc.Citations {
			lines = append(lines, "- "+citationLine(c))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n") + "\n"
}
