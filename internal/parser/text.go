package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/paperlens/paperlens/internal/paper"
)

// TextExtractor handles plain text files.
type TextExtractor struct{}

func (p *TextExtractor) Extract(r io.Reader, filename string) ([]paper.TextBlock, string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sb strings.Builder
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}

	blocks, _ := blocksFromText(sb.String(), 0, 0)
	return blocks, "", nil
}
