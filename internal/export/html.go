package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/paperlens/paperlens/internal/paper"
)

// HTML renders the document as a minimal standalone page.
func HTML(doc *paper.StructuredDocument, summaries map[paper.SectionLabel]string) string {
	var b strings.Builder
	title := html.EscapeString(doc.Title)

	b.WriteString("<!DOCTYPE html>\n<html>\n<head><title>Summary: ")
	b.WriteString(title)
	b.WriteString("</title></head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", title)

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
		fmt.Fprintf(&b, "<h2>%s</h2>\n<p>%s</p>\n", sectionTitle(label), html.EscapeString(text))
	}

	if len(doc.References) > 0 {
		b.WriteString("<h2>References</h2>\n<ol>\n")
		for _, e := range doc.References {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(strings.Join(strings.Fields(e.RawText), " ")))
		}
		b.WriteString("</ol>\n")
	}

	if len(doc.Citations) > 0 {
		b.WriteString("<h2>Citations</h2>\n<ul>\n")
		for _, c := range doc.Citations {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(citationLine(c)))
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}
