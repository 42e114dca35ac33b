package parser

import (
	"strings"
	"testing"
)

func TestTextExtractor_ParagraphSplitting(t *testing.T) {
	input := "the first paragraph runs across line one\nand continues on line two.\n\nthe second paragraph.\n\nthe third paragraph."
	p := &TextExtractor{}
	blocks, _, err := p.Extract(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %+v", len(blocks), blocks)
	}
	for i, b := range blocks {
		if b.Order != i {
			t.Errorf("block[%d].Order = %d, want %d", i, b.Order, i)
		}
		if b.Styled {
			t.Errorf("block[%d] unexpectedly styled", i)
		}
	}
}

func TestTextExtractor_HeadingLineBecomesStyledBlock(t *testing.T) {
	input := "Introduction\nthe body of the introduction follows on the next line\nand keeps going."
	p := &TextExtractor{}
	blocks, _, err := p.Extract(strings.NewReader(input), "paper.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %+v", len(blocks), blocks)
	}
	if !blocks[0].Styled || blocks[0].Text != "Introduction" {
		t.Errorf("block[0] = %+v, want styled Introduction", blocks[0])
	}
	if blocks[1].Styled {
		t.Errorf("body block unexpectedly styled: %+v", blocks[1])
	}
}

func TestTextExtractor_EmptyInput(t *testing.T) {
	p := &TextExtractor{}
	blocks, _, err := p.Extract(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("expected 0 blocks for empty input, got %d", len(blocks))
	}
}

func TestTextExtractor_MonotonicOrders(t *testing.T) {
	input := "Abstract\n\nsome abstract text that spans a line.\n\nMethods\n\nmethod details here."
	p := &TextExtractor{}
	blocks, _, err := p.Extract(strings.NewReader(input), "doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(blocks); i++ {
		if blocks[i].Order <= blocks[i-1].Order {
			t.Fatalf("orders not strictly increasing at %d: %+v", i, blocks)
		}
	}
}

func TestHeadingLike(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Introduction", true},
		{"2. Methods", true},
		{"References", true},
		{"a lowercase line", false},
		{"This sentence ends with a period.", false},
		{"", false},
		{"[1] Smith, J. (2020). A paper.", false},
		{strings.Repeat("Long heading ", 10), false},
	}
	for _, tc := range cases {
		if got := headingLike(tc.in); got != tc.want {
			t.Errorf("headingLike(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestForFile(t *testing.T) {
	cases := []struct {
		filename string
		ok       bool
	}{
		{"paper.pdf", true},
		{"paper.txt", true},
		{"paper.md", true},
		{"paper.html", true},
		{"paper.docx", true},
		{"paper.csv", false},
		{"paper", false},
	}
	for _, tc := range cases {
		_, err := ForFile(tc.filename)
		if tc.ok && err != nil {
			t.Errorf("ForFile(%q) unexpected error: %v", tc.filename, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ForFile(%q) expected error", tc.filename)
		}
		if got := IsSupportedExtension(tc.filename); got != tc.ok {
			t.Errorf("IsSupportedExtension(%q) = %v, want %v", tc.filename, got, tc.ok)
		}
	}
}
