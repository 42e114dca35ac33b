package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/paperlens/paperlens/internal/paper"
)

// refLineNum matches numbered reference lines: "[1] Foo", "1. Foo", "1) Foo".
var refLineNum = regexp.MustCompile(`^\s*(?:\[(\d{1,3})\]|(\d{1,3})[.)])\s+(.+)$`)

// refYear matches a plausible publication year, optionally with a
// disambiguating letter suffix ("2020a").
var refYear = regexp.MustCompile(`\b(1[5-9]\d{2}|20\d{2})[a-z]?\b`)

// refParenYear detects an author-year style entry by its parenthesized year.
var refParenYear = regexp.MustCompile(`\(\s*(1[5-9]\d{2}|20\d{2})[a-z]?\s*\)`)

// refSurname matches surnames in the author prefix of an entry: a
// capitalized token followed (optionally via Vancouver-style initials) by a
// comma, or one introduced by "and"/"&" before the year.
var (
	refSurnameComma = regexp.MustCompile(`([A-Z][A-Za-z'’-]+)(?:\s+[A-Z]{1,3})?\s*,`)
	refSurnameConj  = regexp.MustCompile(`(?:\band\b|&)\s+([A-Z][A-Za-z'’-]+)`)
)

// ParseReferences splits a references section into discrete entries.
// Split strategies, in priority order: leading numeric line markers,
// blank-line paragraph boundaries, hanging-indent boundaries, and finally
// the whole section as a single entry. Entry IDs are the 1-based sequence
// positions, deliberately decoupled from the numbers printed in the source,
// which may be missing or inconsistent.
//
// Parsing never fails: an entry whose authors or year cannot be extracted
// still exists with those fields unset.
func ParseReferences(sec paper.Section) []paper.ReferenceEntry {
	lines := strings.Split(sec.Text, "\n")
	lines = dropReferencesHeading(lines)

	segments, numbered := splitNumbered(lines)
	if !numbered {
		segments = splitParagraphs(lines)
	}
	if len(segments) == 0 {
		return nil
	}

	entries := make([]paper.ReferenceEntry, 0, len(segments))
	for _, seg := range segments {
		raw := strings.TrimSpace(seg)
		if raw == "" {
			continue
		}
		entries = append(entries, buildEntry(len(entries)+1, raw, numbered))
	}
	return entries
}

// dropReferencesHeading removes a leading line that is itself the section
// heading ("References", "Bibliography", ...) so it does not become entry 1.
func dropReferencesHeading(lines []string) []string {
	for len(lines) > 0 {
		head := strings.TrimSpace(lines[0])
		if head == "" {
			lines = lines[1:]
			continue
		}
		if label, ok := NewLexicon().Match(head); ok && label == paper.LabelReferences {
			return lines[1:]
		}
		break
	}
	return lines
}

// splitNumbered groups lines into entries that start at numbered markers.
// Returns numbered=false when fewer than two lines carry markers, in which
// case the caller falls back to layout-based splitting.
func splitNumbered(lines []string) ([]string, bool) {
	markers := 0
	for _, line := range lines {
		if refLineNum.MatchString(line) {
			markers++
		}
	}
	if markers < 2 {
		return nil, false
	}

	var segments []string
	var cur strings.Builder
	started := false
	for _, line := range lines {
		if refLineNum.MatchString(line) {
			if started && strings.TrimSpace(cur.String()) != "" {
				segments = append(segments, cur.String())
			}
			cur.Reset()
			started = true
		}
		if !started {
			continue // stray text before the first marker
		}
		if cur.Len() > 0 {
			cur.WriteString("\n")
		}
		cur.WriteString(line)
	}
	if started && strings.TrimSpace(cur.String()) != "" {
		segments = append(segments, cur.String())
	}
	return segments, true
}

// splitParagraphs splits on blank lines; when that yields a single block it
// retries on hanging indents (flush-left lines start entries, indented
// lines continue them). A single unsplittable block degrades to one entry.
func splitParagraphs(lines []string) []string {
	var segments []string
	var cur strings.Builder
	flush := func() {
		if strings.TrimSpace(cur.String()) != "" {
			segments = append(segments, cur.String())
		}
		cur.Reset()
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if cur.Len() > 0 {
			cur.WriteString("\n")
		}
		cur.WriteString(line)
	}
	flush()

	if len(segments) > 1 {
		return segments
	}
	if indented := splitHangingIndent(lines); len(indented) > 1 {
		return indented
	}
	return segments
}

func splitHangingIndent(lines []string) []string {
	indentedAny := false
	for _, line := range lines {
		if strings.TrimSpace(line) != "" && line != strings.TrimLeft(line, " \t") {
			indentedAny = true
			break
		}
	}
	if !indentedAny {
		return nil
	}

	var segments []string
	var cur strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		flushLeft := line == strings.TrimLeft(line, " \t")
		if flushLeft && cur.Len() > 0 {
			segments = append(segments, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n")
		}
		cur.WriteString(line)
	}
	if strings.TrimSpace(cur.String()) != "" {
		segments = append(segments, cur.String())
	}
	return segments
}

func buildEntry(id int, raw string, numbered bool) paper.ReferenceEntry {
	body := raw
	if m := refLineNum.FindStringSubmatch(strings.SplitN(raw, "\n", 2)[0]); m != nil {
		// Strip the printed marker; keep any continuation lines.
		parts := strings.SplitN(raw, "\n", 2)
		body = m[3]
		if len(parts) == 2 {
			body += "\n" + parts[1]
		}
	}

	entry := paper.ReferenceEntry{
		ID:        id,
		RawText:   raw,
		Authors:   extractSurnames(body),
		StyleHint: paper.RefStyleUnknown,
	}
	if m := refYear.FindStringSubmatch(body); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			entry.Year = y
		}
	}
	switch {
	case numbered:
		entry.StyleHint = paper.RefStyleNumeric
	case refParenYear.MatchString(body):
		entry.StyleHint = paper.RefStyleAuthorYear
	}
	return entry
}

// extractSurnames pulls surname tokens from the author prefix of an entry:
// the text before the first year (or the first 100 runes when no year is
// present). "et al" is never an author.
func extractSurnames(body string) []string {
	prefix := body
	if loc := refYear.FindStringIndex(body); loc != nil {
		prefix = body[:loc[0]]
	} else {
		runes := []rune(body)
		if len(runes) > 100 {
			prefix = string(runes[:100])
		}
	}

	type hit struct {
		pos  int
		name string
	}
	var hits []hit
	for _, m := range refSurnameComma.FindAllStringSubmatchIndex(prefix, -1) {
		hits = append(hits, hit{pos: m[2], name: prefix[m[2]:m[3]]})
	}
	for _, m := range refSurnameConj.FindAllStringSubmatchIndex(prefix, -1) {
		hits = append(hits, hit{pos: m[2], name: prefix[m[2]:m[3]]})
	}
	// Keep source order; the two regexes scan independently.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	var authors []string
	seen := make(map[int]bool)
	for _, h := range hits {
		if seen[h.pos] {
			continue
		}
		seen[h.pos] = true
		if strings.EqualFold(h.name, "al") || strings.EqualFold(h.name, "et") {
			continue
		}
		authors = append(authors, h.name)
	}
	return authors
}
