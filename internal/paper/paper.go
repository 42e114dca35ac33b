// Package paper defines the value types shared by the structuring engine:
// text blocks from the extractors, labeled sections, parsed reference
// entries, detected citation markers, and the resolved document aggregate.
// None of these carry behavior beyond construction; they are built once by
// the pipeline and immutable afterwards.
package paper

// TextBlock is one reading-order fragment of extracted document text.
type TextBlock struct {
	Text   string `json:"text"`
	Page   int    `json:"page"`   // 0-based page index (0 if N/A)
	Order  int    `json:"order"`  // monotonic reading order
	Styled bool   `json:"styled"` // extractor-level flag: visually distinct from body text
}

// SectionLabel is the canonical name of a document section.
type SectionLabel string

const (
	LabelTitle      SectionLabel = "title"
	LabelAbstract   SectionLabel = "abstract"
	LabelBackground SectionLabel = "background"
	LabelMethods    SectionLabel = "methods"
	LabelResults    SectionLabel = "results"
	LabelConclusion SectionLabel = "conclusion"
	LabelReferences SectionLabel = "references"
	LabelOther      SectionLabel = "other"
)

// BodyLabels lists the labels that carry summarizable prose, in reading order.
var BodyLabels = []SectionLabel{
	LabelAbstract,
	LabelBackground,
	LabelMethods,
	LabelResults,
	LabelConclusion,
}

// Section is a labeled contiguous span of the block stream.
type Section struct {
	Label      SectionLabel `json:"label"`
	StartOrder int          `json:"start_order"`
	EndOrder   int          `json:"end_order"`
	Text       string       `json:"text"`
}

// ReferenceStyle hints at how a reference entry was written.
type ReferenceStyle string

const (
	RefStyleNumeric    ReferenceStyle = "numeric"
	RefStyleAuthorYear ReferenceStyle = "author_year"
	RefStyleUnknown    ReferenceStyle = "unknown"
)

// ReferenceEntry is one parsed item from the reference list. ID is the
// entry's 1-based position in the list, not the (possibly malformed) number
// printed in the source text; numeric markers join against ID.
type ReferenceEntry struct {
	ID        int            `json:"id"`
	RawText   string         `json:"raw_text"`
	Authors   []string       `json:"authors,omitempty"` // surname tokens, citation order
	Year      int            `json:"year,omitempty"`    // 0 when not found
	StyleHint ReferenceStyle `json:"style_hint"`
}

// CitationStyle identifies the surface form of an in-text marker.
type CitationStyle string

const (
	CiteNumeric      CitationStyle = "numeric"
	CiteNumericMulti CitationStyle = "numeric_multi"
	CiteAuthorYear   CitationStyle = "author_year"
	CiteNarrative    CitationStyle = "narrative"
)

// CitationMarker is one in-text citation occurrence. Keys holds the
// extracted join keys: integer ids as strings for numeric styles, or
// "surname|year" tokens for author-year and narrative styles. Repeated
// citations of the same source yield distinct markers at distinct offsets.
type CitationMarker struct {
	Surface      string        `json:"surface"`
	SectionLabel SectionLabel  `json:"section"`
	Offset       int           `json:"offset"` // rune offset within the section text
	Style        CitationStyle `json:"style"`
	Keys         []string      `json:"keys"`
}

// ResolutionStatus classifies how well a marker matched the reference list.
type ResolutionStatus string

const (
	StatusResolved   ResolutionStatus = "resolved"
	StatusAmbiguous  ResolutionStatus = "ambiguous"
	StatusUnresolved ResolutionStatus = "unresolved"
)

// ResolvedCitation pairs a marker with the entries it denotes, 1:1 with the
// detected markers. Confidence is the fraction of the marker's keys that
// matched exactly one entry; callers decide their own tolerance thresholds.
type ResolvedCitation struct {
	Marker     CitationMarker   `json:"marker"`
	Matched    []ReferenceEntry `json:"matched_entries"`
	Status     ResolutionStatus `json:"status"`
	Confidence float64          `json:"confidence"`
}

// StructuredDocument is the complete structured representation of one
// document, handed to summarization and export as-is.
type StructuredDocument struct {
	Title      string             `json:"title"`
	Sections   []Section          `json:"sections"`
	References []ReferenceEntry   `json:"references"`
	Citations  []ResolvedCitation `json:"citations"`
}

// Section returns the section carrying the given label, or nil.
func (d *StructuredDocument) Section(label SectionLabel) *Section {
	for i := range d.Sections {
		if d.Sections[i].Label == label {
			return &d.Sections[i]
		}
	}
	return nil
}

// Reference returns the entry with the given id, or nil.
func (d *StructuredDocument) Reference(id int) *ReferenceEntry {
	for i := range d.References {
		if d.References[i].ID == id {
			return &d.References[i]
		}
	}
	return nil
}
