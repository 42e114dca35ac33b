package engine

import (
	"strings"
	"testing"

	"github.com/paperlens/paperlens/internal/paper"
)

// mkBlocks builds a stream with consecutive orders. Styled marks headings.
func mkBlocks(specs ...blockSpec) []paper.TextBlock {
	blocks := make([]paper.TextBlock, len(specs))
	for i, s := range specs {
		blocks[i] = paper.TextBlock{Text: s.text, Order: i, Styled: s.styled}
	}
	return blocks
}

type blockSpec struct {
	text   string
	styled bool
}

func body(s string) blockSpec    { return blockSpec{text: s} }
func heading(s string) blockSpec { return blockSpec{text: s, styled: true} }

var longAbstract = "This paper studies citation resolution in scholarly documents. " +
	"We present a multi-stage pipeline with explicit failure semantics and " +
	"evaluate it on a corpus of extracted PDF text blocks."

func samplePaper() []paper.TextBlock {
	return mkBlocks(
		body("A Study of Citation Graphs"),
		body(longAbstract),
		heading("1 Introduction"),
		body("Prior work on citation analysis [1] established the field."),
		heading("2 Methods"),
		body("We apply the approach of Smith (2020) to extracted text."),
		heading("3 Results"),
		body("Accuracy improved over baselines [2,3]."),
		heading("Conclusion"),
		body("We conclude that structure matters (Doe, 2019)."),
		heading("References"),
		body("[1] Smith, J. (2020). Citation graphs. Journal of Documents."),
		body("[2] Doe, A. (2019). Structure extraction. Proc. DocEng."),
		body("[3] Lee, K. (2021). Reference parsing. Journal of IR."),
	)
}

func TestSegment_LabelsAndOrder(t *testing.T) {
	sections := Segment(samplePaper(), Options{})

	want := []paper.SectionLabel{
		paper.LabelTitle,
		paper.LabelAbstract,
		paper.LabelBackground,
		paper.LabelMethods,
		paper.LabelResults,
		paper.LabelConclusion,
		paper.LabelReferences,
	}
	if len(sections) != len(want) {
		t.Fatalf("expected %d sections, got %d: %+v", len(want), len(sections), sections)
	}
	for i, w := range want {
		if sections[i].Label != w {
			t.Errorf("section[%d] label = %q, want %q", i, sections[i].Label, w)
		}
	}
}

func TestSegment_ContiguousNoGapsNoOverlap(t *testing.T) {
	blocks := samplePaper()
	sections := Segment(blocks, Options{})

	if sections[0].StartOrder != blocks[0].Order {
		t.Errorf("first section starts at %d, want %d", sections[0].StartOrder, blocks[0].Order)
	}
	last := sections[len(sections)-1]
	if last.EndOrder != blocks[len(blocks)-1].Order {
		t.Errorf("last section ends at %d, want %d", last.EndOrder, blocks[len(blocks)-1].Order)
	}
	for i := 1; i < len(sections); i++ {
		if sections[i].StartOrder != sections[i-1].EndOrder+1 {
			t.Errorf("gap or overlap between section %d (end %d) and %d (start %d)",
				i-1, sections[i-1].EndOrder, i, sections[i].StartOrder)
		}
	}
}

func TestSegment_RoundTripText(t *testing.T) {
	blocks := samplePaper()
	sections := Segment(blocks, Options{})

	var fromSections []string
	for _, s := range sections {
		fromSections = append(fromSections, s.Text)
	}
	var fromBlocks []string
	for _, b := range blocks {
		fromBlocks = append(fromBlocks, b.Text)
	}
	got := strings.Join(fromSections, "\n")
	want := strings.Join(fromBlocks, "\n")
	if got != want {
		t.Errorf("section text does not round-trip the block stream\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSegment_ReferencesTerminatesBodySegmentation(t *testing.T) {
	blocks := mkBlocks(
		heading("Introduction"),
		body("Intro text."),
		heading("References"),
		body("[1] Smith, J. (2020). A paper."),
		// A reference entry that looks like a heading must stay inside
		// the references section.
		heading("Methods"),
		body("[2] Doe, A. (2019). Another paper."),
	)
	sections := Segment(blocks, Options{})
	last := sections[len(sections)-1]
	if last.Label != paper.LabelReferences {
		t.Fatalf("last section = %q, want references", last.Label)
	}
	if last.EndOrder != blocks[len(blocks)-1].Order {
		t.Errorf("references section ends at %d, want %d", last.EndOrder, blocks[len(blocks)-1].Order)
	}
	for _, s := range sections {
		if s.Label == paper.LabelMethods {
			t.Error("heading-like reference entry opened a methods section")
		}
	}
}

func TestSegment_NoHeadingsDegradesToSingleOther(t *testing.T) {
	blocks := mkBlocks(
		body("Just some text."),
		body("More text without any structure."),
	)
	sections := Segment(blocks, Options{})
	if len(sections) != 1 {
		t.Fatalf("expected a single section, got %d", len(sections))
	}
	s := sections[0]
	if s.Label != paper.LabelOther {
		t.Errorf("label = %q, want other", s.Label)
	}
	if s.StartOrder != 0 || s.EndOrder != 1 {
		t.Errorf("span = [%d,%d], want [0,1]", s.StartOrder, s.EndOrder)
	}
}

func TestSegment_ShortFrontMatterIsOtherNotAbstract(t *testing.T) {
	blocks := mkBlocks(
		body("A Title"),
		body("Keywords: citations, parsing"), // too short to be an abstract
		heading("Introduction"),
		body("Text."),
	)
	sections := Segment(blocks, Options{})
	if sections[0].Label != paper.LabelTitle {
		t.Errorf("section[0] = %q, want title", sections[0].Label)
	}
	if sections[1].Label != paper.LabelOther {
		t.Errorf("section[1] = %q, want other", sections[1].Label)
	}
}

func TestSegment_HeadingStartsStream(t *testing.T) {
	blocks := mkBlocks(
		heading("Abstract"),
		body(longAbstract),
	)
	sections := Segment(blocks, Options{})
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Label != paper.LabelAbstract {
		t.Errorf("label = %q, want abstract", sections[0].Label)
	}
}

func TestSegment_LongStyledBlockIsNotAHeading(t *testing.T) {
	long := strings.Repeat("Results of the experiment ", 10)
	blocks := mkBlocks(
		heading("Introduction"),
		blockSpec{text: long, styled: true},
		body("More text."),
	)
	sections := Segment(blocks, Options{})
	for _, s := range sections {
		if s.Label == paper.LabelResults {
			t.Error("long styled block was treated as a results heading")
		}
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	if got := Segment(nil, Options{}); got != nil {
		t.Errorf("expected nil for empty input, got %+v", got)
	}
}
