package summarize

import (
	"strings"
	"testing"

	"github.com/paperlens/paperlens/internal/paper"
)

func TestExtractive_FirstNSentences(t *testing.T) {
	text := "First sentence. Second sentence! Third sentence? Fourth sentence."
	got := Extractive(text, 3)
	want := "First sentence. Second sentence! Third sentence?"
	if got != want {
		t.Errorf("Extractive = %q, want %q", got, want)
	}
}

func TestExtractive_FewerSentencesThanCap(t *testing.T) {
	got := Extractive("Only one sentence here.", 5)
	if got != "Only one sentence here." {
		t.Errorf("Extractive = %q", got)
	}
}

func TestExtractive_CollapsesWhitespace(t *testing.T) {
	got := Extractive("Spread over\nseveral   lines. Second one.", 1)
	if got != "Spread over several lines." {
		t.Errorf("Extractive = %q", got)
	}
}

func TestExtractive_Empty(t *testing.T) {
	if got := Extractive("", 3); got != "" {
		t.Errorf("Extractive(\"\") = %q, want empty", got)
	}
	if got := Extractive("   ", 3); got != "" {
		t.Errorf("Extractive(whitespace) = %q, want empty", got)
	}
}

func TestExtractive_NoTerminalPunctuation(t *testing.T) {
	got := Extractive("a fragment without punctuation", 2)
	if got != "a fragment without punctuation" {
		t.Errorf("Extractive = %q", got)
	}
}

func TestDocument_SkipsNonBodySections(t *testing.T) {
	doc := &paper.StructuredDocument{
		Sections: []paper.Section{
			{Label: paper.LabelTitle, Text: "A Title"},
			{Label: paper.LabelAbstract, Text: "The abstract sentence. Another abstract sentence."},
			{Label: paper.LabelMethods, Text: "We did things. Carefully. With rigor."},
			{Label: paper.LabelReferences, Text: "[1] Smith, J. (2020)."},
			{Label: paper.LabelOther, Text: "Unclassified text."},
		},
	}
	got := Document(doc, 2)
	if len(got) != 2 {
		t.Fatalf("expected summaries for 2 sections, got %d: %v", len(got), got)
	}
	if _, ok := got[paper.LabelTitle]; ok {
		t.Error("title section should not be summarized")
	}
	if _, ok := got[paper.LabelReferences]; ok {
		t.Error("references section should not be summarized")
	}
	if got[paper.LabelAbstract] != "The abstract sentence. Another abstract sentence." {
		t.Errorf("abstract summary = %q", got[paper.LabelAbstract])
	}
	if got[paper.LabelMethods] != "We did things. Carefully." {
		t.Errorf("methods summary = %q", got[paper.LabelMethods])
	}
}

func TestDocument_DefaultCap(t *testing.T) {
	text := strings.Repeat("A sentence. ", 10)
	doc := &paper.StructuredDocument{
		Sections: []paper.Section{{Label: paper.LabelResults, Text: text}},
	}
	got := Document(doc, 0)
	if got[paper.LabelResults] != "A sentence. A sentence. A sentence." {
		t.Errorf("summary = %q", got[paper.LabelResults])
	}
}
