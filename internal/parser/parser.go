// Package parser turns raw document bytes into the ordered text block
// stream the structuring engine consumes. Each extractor owns one input
// format; the engine itself never sees a file.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/paperlens/paperlens/internal/paper"
)

// Extractor converts raw document bytes into an ordered block stream.
// The returned title may be empty when the format carries no metadata;
// callers fall back to the filename.
type Extractor interface {
	Extract(r io.Reader, filename string) (blocks []paper.TextBlock, title string, err error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".docx": true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// headingLike is the style heuristic for formats without explicit styling
// (plain text, PDF output): short, no terminal punctuation, and starting
// with an uppercase letter or a section number.
func headingLike(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	runes := []rune(line)
	if len(runes) > 80 {
		return false
	}
	switch runes[len(runes)-1] {
	case '.', '!', '?', ',', ';':
		return false
	}
	first := runes[0]
	return unicode.IsUpper(first) || unicode.IsDigit(first)
}

// blocksFromText converts raw extracted text into blocks: blank lines close
// a block, and a heading-like line becomes its own styled block so section
// headings survive even when the source has no blank-line structure.
// Returns the blocks and the next free order value.
func blocksFromText(text string, page, startOrder int) ([]paper.TextBlock, int) {
	var blocks []paper.TextBlock
	order := startOrder
	var cur strings.Builder

	flush := func(styled bool) {
		t := strings.TrimSpace(cur.String())
		cur.Reset()
		if t == "" {
			return
		}
		blocks = append(blocks, paper.TextBlock{Text: t, Page: page, Order: order, Styled: styled})
		order++
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush(false)
			continue
		}
		if headingLike(trimmed) {
			flush(false)
			cur.WriteString(trimmed)
			flush(true)
			continue
		}
		if cur.Len() > 0 {
			cur.WriteString("\n")
		}
		cur.WriteString(line)
	}
	flush(false)
	return blocks, order
}
