package engine

import (
	"strings"

	"github.com/paperlens/paperlens/internal/paper"
)

// Options tunes the structuring pipeline. The zero value is usable; every
// field falls back to a default.
type Options struct {
	// Title overrides the title derived from the block stream (extractors
	// usually know it from file metadata).
	Title string

	// HeadingMaxLen is the length gate for heading candidates, in runes.
	HeadingMaxLen int

	// Lexicon is the heading lexicon; nil means the built-in one.
	Lexicon *Lexicon

	// SummarySentences caps per-section extractive summaries when the
	// caller uses the summarize package; the engine itself ignores it.
	SummarySentences int
}

const defaultHeadingMaxLen = 120

// paragraphMinLen is the length, in runes, above which a pre-heading block
// is considered paragraph-like and eligible to be the abstract.
const paragraphMinLen = 160

func (o Options) withDefaults() Options {
	if o.HeadingMaxLen <= 0 {
		o.HeadingMaxLen = defaultHeadingMaxLen
	}
	if o.Lexicon == nil {
		o.Lexicon = NewLexicon()
	}
	return o
}

// Segment classifies the block stream into labeled, contiguous,
// non-overlapping sections that together cover every block. A block opens a
// new section when it is short, carries the extractor's style flag, and its
// normalized text lands on a lexicon label. Once a references heading is
// seen, every remaining block belongs to the references section: reference
// entries themselves must never be mistaken for headings.
//
// When no block ever matches a heading the entire stream becomes one
// "other" section. That is a valid degraded output, not an error.
func Segment(blocks []paper.TextBlock, opts Options) []paper.Section {
	opts = opts.withDefaults()
	if len(blocks) == 0 {
		return nil
	}

	isHeading := func(b paper.TextBlock) (paper.SectionLabel, bool) {
		text := strings.TrimSpace(b.Text)
		if text == "" || !b.Styled {
			return "", false
		}
		if len([]rune(text)) >= opts.HeadingMaxLen {
			return "", false
		}
		return opts.Lexicon.Match(text)
	}

	firstHeading := -1
	for i, b := range blocks {
		if _, ok := isHeading(b); ok {
			firstHeading = i
			break
		}
	}
	if firstHeading == -1 {
		return []paper.Section{spanSection(paper.LabelOther, blocks)}
	}

	var sections []paper.Section

	// Front matter: first block is the title; the remainder before the
	// first heading is the abstract when its first block reads like a
	// paragraph, otherwise it stays unclassified.
	if firstHeading > 0 {
		sections = append(sections, spanSection(paper.LabelTitle, blocks[:1]))
		if firstHeading > 1 {
			front := blocks[1:firstHeading]
			label := paper.LabelOther
			if len([]rune(strings.TrimSpace(front[0].Text))) >= paragraphMinLen {
				label = paper.LabelAbstract
			}
			sections = append(sections, spanSection(label, front))
		}
	}

	cur := firstHeading
	curLabel, _ := isHeading(blocks[cur])
	inReferences := curLabel == paper.LabelReferences

	for i := firstHeading + 1; i < len(blocks); i++ {
		if inReferences {
			continue
		}
		label, ok := isHeading(blocks[i])
		if !ok {
			continue
		}
		sections = append(sections, spanSection(curLabel, blocks[cur:i]))
		cur, curLabel = i, label
		if label == paper.LabelReferences {
			inReferences = true
		}
	}
	sections = append(sections, spanSection(curLabel, blocks[cur:]))

	return sections
}

// spanSection builds a section covering a run of blocks, joining their text
// with newlines so the concatenation of all sections reproduces the stream.
func spanSection(label paper.SectionLabel, blocks []paper.TextBlock) paper.Section {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(b.Text)
	}
	return paper.Section{
		Label:      label,
		StartOrder: blocks[0].Order,
		EndOrder:   blocks[len(blocks)-1].Order,
		Text:       sb.String(),
	}
}
