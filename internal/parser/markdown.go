package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/paperlens/paperlens/internal/paper"
)

// MarkdownExtractor handles Markdown files using goldmark. Headings become
// styled blocks; everything else is body text in document order.
type MarkdownExtractor struct{}

func (p *MarkdownExtractor) Extract(r io.Reader, filename string) ([]paper.TextBlock, string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var blocks []paper.TextBlock
	title := ""
	order := 0

	add := func(t string, styled bool) {
		t = strings.TrimSpace(t)
		if t == "" {
			return
		}
		blocks = append(blocks, paper.TextBlock{Text: t, Order: order, Styled: styled})
		order++
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			heading := string(node.Text(src))
			if node.Level == 1 && title == "" {
				title = heading
			}
			add(heading, true)
		default:
			add(nodeText(n, src), false)
		}
	}

	return blocks, title, nil
}

// nodeText gets the text content of a goldmark AST node.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	// Also handle inline children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(nodeText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
