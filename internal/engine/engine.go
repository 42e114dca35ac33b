// Package engine is the document structuring and citation resolution core:
// section segmentation, reference-list parsing, citation marker detection,
// and marker-to-entry resolution. It is a stateless function set over
// explicit inputs; processing N documents in parallel needs no locking.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/paperlens/paperlens/internal/paper"
)

// Input-contract failures. These are the only conditions that abort a
// document; everything else degrades into the output (unresolved markers,
// empty reference lists, a single catch-all section).
var (
	ErrEmptyStream    = errors.New("text block stream is empty")
	ErrOrderViolation = errors.New("text block order is not strictly increasing")
)

// Build runs the full pipeline over one block stream and assembles the
// structured document. Each stage consumes the complete, immutable output
// of the previous one, so the pipeline is synchronous by construction.
//
// Cancellation is whole-document: when ctx is done between stages the
// partial result is discarded and ctx.Err() returned, never a half-built
// document.
func Build(ctx context.Context, blocks []paper.TextBlock, opts Options) (*paper.StructuredDocument, error) {
	if err := checkContract(blocks); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	sections := Segment(blocks, opts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var refs []paper.ReferenceEntry
	for _, sec := range sections {
		if sec.Label == paper.LabelReferences {
			refs = ParseReferences(sec)
			break
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	markers := DetectMarkers(sections)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	citations := Resolve(markers, refs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := &paper.StructuredDocument{
		Title:      opts.Title,
		Sections:   sections,
		References: refs,
		Citations:  citations,
	}
	if doc.Title == "" {
		doc.Title = deriveTitle(sections, blocks)
	}
	return doc, nil
}

func checkContract(blocks []paper.TextBlock) error {
	if len(blocks) == 0 {
		return fmt.Errorf("input contract: %w", ErrEmptyStream)
	}
	for i := 1; i < len(blocks); i++ {
		if blocks[i].Order <= blocks[i-1].Order {
			return fmt.Errorf("input contract: block %d (order %d after %d): %w",
				i, blocks[i].Order, blocks[i-1].Order, ErrOrderViolation)
		}
	}
	return nil
}

func deriveTitle(sections []paper.Section, blocks []paper.TextBlock) string {
	for _, sec := range sections {
		if sec.Label == paper.LabelTitle {
			return firstLine(sec.Text)
		}
	}
	return firstLine(blocks[0].Text)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
