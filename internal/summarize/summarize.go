// Package summarize produces per-section extractive summaries of a
// structured document. The baseline is deliberately simple: the first N
// well-formed sentences of each body section.
package summarize

import (
	"strings"

	"github.com/paperlens/paperlens/internal/paper"
)

// DefaultMaxSentences caps a section summary when the caller passes 0.
const DefaultMaxSentences = 3

// Document summarizes every body section of a structured document.
// Title, references, and unclassified sections are skipped. Sections the
// segmenter never found are simply absent from the map.
func Document(doc *paper.StructuredDocument, maxSentences int) map[paper.SectionLabel]string {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	out := make(map[paper.SectionLabel]string)
	for _, sec := range doc.Sections {
		if !isBodyLabel(sec.Label) {
			continue
		}
		summary := Extractive(sec.Text, maxSentences)
		if summary == "" {
			continue
		}
		// Repeated labels (two results sections, say) keep the first span.
		if _, ok := out[sec.Label]; !ok {
			out[sec.Label] = summary
		}
	}
	return out
}

// Extractive takes the first maxSentences sentences of a text.
func Extractive(text string, maxSentences int) string {
	text = strings.TrimSpace(text)
	if text == "" || maxSentences <= 0 {
		return ""
	}
	sentences := splitSentences(strings.Join(strings.Fields(text), " "))
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}
	return strings.Join(sentences, " ")
}

// splitSentences does basic boundary splitting on terminal punctuation
// followed by a space, dropping ultra-short fragments.
func splitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		cur.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && (i+1 == len(runes) || runes[i+1] == ' ') {
			s := strings.TrimSpace(cur.String())
			if len(s) > 1 {
				sentences = append(sentences, s)
			}
			cur.Reset()
		}
	}
	if s := strings.TrimSpace(cur.String()); len(s) > 1 {
		sentences = append(sentences, s)
	}
	return sentences
}

func isBodyLabel(label paper.SectionLabel) bool {
	for _, l := range paper.BodyLabels {
		if l == label {
			return true
		}
	}
	return false
}
