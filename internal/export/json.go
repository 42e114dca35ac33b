package export

import (
	"encoding/json"
	"fmt"

	"github.com/paperlens/paperlens/internal/paper"
)

// Report is the JSON export envelope: the full structured document plus
// the optional per-section summaries.
type Report struct {
	Document  *paper.StructuredDocument     `json:"document"`
	Summaries map[paper.SectionLabel]string `json:"summaries,omitempty"`
}

// JSON renders the document and summaries as indented JSON.
func JSON(doc *paper.StructuredDocument, summaries map[paper.SectionLabel]string) (string, error) {
	out, err := json.MarshalIndent(Report{Document: doc, Summaries: summaries}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(out) + "\n", nil
}
