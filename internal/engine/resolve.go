package engine

import (
	"strconv"
	"strings"

	"github.com/paperlens/paperlens/internal/paper"
)

// Resolve maps every detected marker to the reference entries it denotes,
// producing exactly one ResolvedCitation per marker, in marker order. It is
// a pure function of its inputs: no randomness, no lookups, identical input
// always yields identical output.
//
// Duplicate author+year pairs in the reference list are surfaced as
// ambiguous with every candidate included. Guessing which entry was meant
// (say, the earliest-listed) would hide a real property of the document.
func Resolve(markers []paper.CitationMarker, entries []paper.ReferenceEntry) []paper.ResolvedCitation {
	byID := make(map[int]paper.ReferenceEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	resolved := make([]paper.ResolvedCitation, 0, len(markers))
	for _, m := range markers {
		switch m.Style {
		case paper.CiteNumeric, paper.CiteNumericMulti:
			resolved = append(resolved, resolveNumeric(m, byID))
		default:
			resolved = append(resolved, resolveAuthorYear(m, entries))
		}
	}
	return resolved
}

func resolveNumeric(m paper.CitationMarker, byID map[int]paper.ReferenceEntry) paper.ResolvedCitation {
	rc := paper.ResolvedCitation{Marker: m}
	if len(m.Keys) == 0 {
		rc.Status = paper.StatusUnresolved
		return rc
	}

	matched := 0
	for _, key := range m.Keys {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if e, ok := byID[id]; ok {
			rc.Matched = append(rc.Matched, e)
			matched++
		}
	}

	rc.Confidence = float64(matched) / float64(len(m.Keys))
	switch {
	case matched == len(m.Keys):
		rc.Status = paper.StatusResolved
	case matched == 0:
		rc.Status = paper.StatusUnresolved
	default:
		// Only a multi marker can land here: some ids matched, some did not.
		rc.Status = paper.StatusAmbiguous
	}
	return rc
}

func resolveAuthorYear(m paper.CitationMarker, entries []paper.ReferenceEntry) paper.ResolvedCitation {
	rc := paper.ResolvedCitation{Marker: m}
	if len(m.Keys) == 0 {
		rc.Status = paper.StatusUnresolved
		return rc
	}

	exactTokens := 0
	sawMulti := false
	sawAny := false
	included := make(map[int]bool)

	for _, key := range m.Keys {
		surname, yearStr, ok := strings.Cut(key, "|")
		if !ok {
			continue
		}
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			continue
		}

		var hits []paper.ReferenceEntry
		for _, e := range entries {
			if e.Year != year || len(e.Authors) == 0 {
				continue
			}
			if strings.EqualFold(e.Authors[0], surname) {
				hits = append(hits, e)
			}
		}

		switch {
		case len(hits) == 0:
			// Token contributes nothing; the confidence ratio is the penalty.
		case len(hits) == 1:
			exactTokens++
			sawAny = true
		default:
			sawMulti = true
			sawAny = true
		}
		for _, h := range hits {
			if !included[h.ID] {
				included[h.ID] = true
				rc.Matched = append(rc.Matched, h)
			}
		}
	}

	rc.Confidence = float64(exactTokens) / float64(len(m.Keys))
	switch {
	case sawMulti:
		rc.Status = paper.StatusAmbiguous
	case !sawAny:
		rc.Status = paper.StatusUnresolved
	case exactTokens == len(m.Keys):
		rc.Status = paper.StatusResolved
	default:
		rc.Status = paper.StatusAmbiguous
	}
	return rc
}
