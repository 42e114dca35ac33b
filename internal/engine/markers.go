package engine

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/paperlens/paperlens/internal/paper"
)

// Detection runs one independent regex pass per citation style, in a fixed
// order, and never lets a later pass reconsider a span an earlier pass
// claimed. Numeric patterns go first so a bracketed number is not
// mis-parsed as part of a name. A deliberately simple design: the styles
// are close to disjoint in practice, and a combined grammar would buy
// little for what it costs.

// bracketBlock matches numeric citation blocks: [1], [1,3], [2-4], [2–4, 7].
var bracketBlock = regexp.MustCompile(`\[([0-9]+[0-9,\-–\s]*)\]`)

// parenYearBlock matches a parenthesized run containing a year, the raw
// material for author-year extraction.
var parenYearBlock = regexp.MustCompile(`\(([^()]*\b\d{4}[^()]*)\)`)

// authorYearPair pulls one "Surname, 2020" pair (tolerating "et al." and a
// "&"-joined second surname) out of a parenthesized block.
var authorYearPair = regexp.MustCompile(
	`([A-Z][A-Za-z'’-]+)(?:\s+et\s+al\.?|\s*&\s*[A-Z][A-Za-z'’-]+)?\s*,\s*((?:19|20)\d{2})[a-z]?`)

// narrativeCite matches "Surname (2020)" and "Surname et al. (2020)"
// outside parentheses.
var narrativeCite = regexp.MustCompile(
	`([A-Z][A-Za-z'’-]+)(?:\s+et\s+al\.?)?\s*\(\s*((?:19|20)\d{2})[a-z]?\s*\)`)

// DetectMarkers scans every non-references section for in-text citation
// markers. Output is ordered by section position, then by offset within the
// section. Each occurrence yields its own marker, so repeated citations of
// one source stay distinct.
func DetectMarkers(sections []paper.Section) []paper.CitationMarker {
	var markers []paper.CitationMarker
	for _, sec := range sections {
		if sec.Label == paper.LabelReferences {
			continue
		}
		markers = append(markers, detectInSection(sec)...)
	}
	return markers
}

type span struct{ start, end int }

func (s span) overlaps(o span) bool { return s.start < o.end && o.start < s.end }

func detectInSection(sec paper.Section) []paper.CitationMarker {
	text := sec.Text
	var claimed []span
	var markers []paper.CitationMarker

	claim := func(s span, m paper.CitationMarker) {
		claimed = append(claimed, s)
		markers = append(markers, m)
	}
	free := func(s span) bool {
		for _, c := range claimed {
			if s.overlaps(c) {
				return false
			}
		}
		return true
	}

	// Pass 1: numeric and numeric-multi.
	for _, loc := range bracketBlock.FindAllStringSubmatchIndex(text, -1) {
		s := span{loc[0], loc[1]}
		ids := expandNumericBlock(text[loc[2]:loc[3]])
		if len(ids) == 0 {
			continue
		}
		style := paper.CiteNumeric
		if len(ids) > 1 {
			style = paper.CiteNumericMulti
		}
		claim(s, paper.CitationMarker{
			Surface:      text[s.start:s.end],
			SectionLabel: sec.Label,
			Offset:       utf8.RuneCountInString(text[:s.start]),
			Style:        style,
			Keys:         ids,
		})
	}

	// Pass 2: author-year inside parentheses.
	for _, loc := range parenYearBlock.FindAllStringSubmatchIndex(text, -1) {
		s := span{loc[0], loc[1]}
		if !free(s) {
			continue
		}
		keys := extractAuthorYearKeys(text[loc[2]:loc[3]])
		if len(keys) == 0 {
			continue
		}
		claim(s, paper.CitationMarker{
			Surface:      text[s.start:s.end],
			SectionLabel: sec.Label,
			Offset:       utf8.RuneCountInString(text[:s.start]),
			Style:        paper.CiteAuthorYear,
			Keys:         keys,
		})
	}

	// Pass 3: narrative "Surname (2020)".
	for _, loc := range narrativeCite.FindAllStringSubmatchIndex(text, -1) {
		s := span{loc[0], loc[1]}
		if !free(s) {
			continue
		}
		surname := text[loc[2]:loc[3]]
		year := text[loc[4]:loc[5]]
		claim(s, paper.CitationMarker{
			Surface:      text[s.start:s.end],
			SectionLabel: sec.Label,
			Offset:       utf8.RuneCountInString(text[:s.start]),
			Style:        paper.CiteNarrative,
			Keys:         []string{surname + "|" + year},
		})
	}

	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].Offset < markers[j].Offset
	})
	return markers
}

// expandNumericBlock turns the inside of a bracket block into individual id
// strings: "1,3, 5-7" becomes ["1","3","5","6","7"]. Ranges expand with
// sanity bounds (ids 1..999, span under 500); a malformed range degrades to
// whichever endpoints parse. Duplicates keep their first occurrence.
func expandNumericBlock(block string) []string {
	block = strings.ReplaceAll(block, "–", "-")
	var ids []string
	seen := make(map[int]bool)
	add := func(n int) {
		if n < 1 || n > 999 || seen[n] {
			return
		}
		seen[n] = true
		ids = append(ids, strconv.Itoa(n))
	}

	for _, piece := range strings.Split(block, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		lo, hi, ok := strings.Cut(piece, "-")
		if !ok {
			if n, err := strconv.Atoi(piece); err == nil {
				add(n)
			}
			continue
		}
		start, errLo := strconv.Atoi(strings.TrimSpace(lo))
		end, errHi := strconv.Atoi(strings.TrimSpace(hi))
		if errLo == nil && errHi == nil && start <= end && end-start < 500 {
			for n := start; n <= end; n++ {
				add(n)
			}
			continue
		}
		if errLo == nil {
			add(start)
		}
		if errHi == nil {
			add(end)
		}
	}
	return ids
}

// extractAuthorYearKeys splits a parenthesized block into "surname|year"
// keys. Semicolons separate distinct citations; within each part the pair
// regex picks up comma-jammed lists too. The surname kept is always the
// first author's.
func extractAuthorYearKeys(block string) []string {
	var keys []string
	for _, part := range strings.Split(block, ";") {
		for _, m := range authorYearPair.FindAllStringSubmatch(part, -1) {
			keys = append(keys, m[1]+"|"+m[2])
		}
	}
	return keys
}
