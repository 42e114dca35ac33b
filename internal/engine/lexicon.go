package engine

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/paperlens/paperlens/internal/paper"
)

// Lexicon maps canonical section labels to the heading aliases that denote
// them. Matching is a pure scoring function: a heading candidate either
// lands on a best label or on none, so the segmenter stays a single
// testable unit.
type Lexicon struct {
	aliases map[paper.SectionLabel][]string
}

var defaultAliases = map[paper.SectionLabel][]string{
	paper.LabelAbstract: {"abstract"},
	paper.LabelBackground: {
		"background", "introduction", "related work",
		"literature review", "prior work",
	},
	paper.LabelMethods: {
		"methods", "method", "materials and methods",
		"methodology", "experimental setup",
	},
	paper.LabelResults: {"results", "findings", "evaluation", "experiments"},
	paper.LabelConclusion: {
		"conclusion", "conclusions", "discussion",
		"discussion and conclusion", "discussion and conclusions",
		"concluding remarks",
	},
	paper.LabelReferences: {
		"references", "bibliography", "works cited", "literature cited",
	},
}

// keyword fallbacks, checked with substring containment after the alias
// tiers miss. Order matters: abstract before background so that
// "structured abstract" does not land on background via "introduction".
var keywordFallbacks = []struct {
	keyword string
	label   paper.SectionLabel
}{
	{"abstract", paper.LabelAbstract},
	{"introduction", paper.LabelBackground},
	{"background", paper.LabelBackground},
	{"method", paper.LabelMethods},
	{"materials", paper.LabelMethods},
	{"result", paper.LabelResults},
	{"finding", paper.LabelResults},
	{"conclusion", paper.LabelConclusion},
	{"discussion", paper.LabelConclusion},
	{"reference", paper.LabelReferences},
	{"bibliograph", paper.LabelReferences},
}

// matchOrder fixes the label iteration order so that score ties break the
// same way on every run.
var matchOrder = []paper.SectionLabel{
	paper.LabelAbstract,
	paper.LabelBackground,
	paper.LabelMethods,
	paper.LabelResults,
	paper.LabelConclusion,
	paper.LabelReferences,
}

// fuzzyThreshold is the minimum normalized similarity for the fuzzy tier.
// Tolerates one or two characters of PDF extraction noise in a typical
// heading without letting arbitrary short lines through.
const fuzzyThreshold = 0.84

// NewLexicon returns the built-in lexicon.
func NewLexicon() *Lexicon {
	aliases := make(map[paper.SectionLabel][]string, len(defaultAliases))
	for label, names := range defaultAliases {
		aliases[label] = append([]string(nil), names...)
	}
	return &Lexicon{aliases: aliases}
}

// Extend adds aliases for a label. The built-in aliases are never removed.
func (l *Lexicon) Extend(label paper.SectionLabel, names ...string) {
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		l.aliases[label] = append(l.aliases[label], name)
	}
}

// ExtendFromYAML merges extra aliases from a YAML document shaped like:
//
//	background: ["motivation", "state of the art"]
//	methods: ["study design"]
//
// Unknown labels are rejected so a typo in a config file surfaces early.
func (l *Lexicon) ExtendFromYAML(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read lexicon: %w", err)
	}
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse lexicon yaml: %w", err)
	}
	for key, names := range raw {
		label := paper.SectionLabel(strings.ToLower(strings.TrimSpace(key)))
		if _, ok := defaultAliases[label]; !ok {
			return fmt.Errorf("lexicon yaml: unknown section label %q", key)
		}
		l.Extend(label, names...)
	}
	return nil
}

// headingNumberPrefix strips decimal ("3.", "12)") and roman-numeral
// ("IV.", "ii)") prefixes from heading candidates.
var headingNumberPrefix = regexp.MustCompile(`^(?:\d{1,2}|[IVXLCDMivxlcdm]{1,6})\s*[.)]?\s+`)

// normalizeHeading lowercases a candidate, strips numbering prefixes and
// trailing punctuation, and collapses whitespace.
func normalizeHeading(s string) string {
	s = strings.TrimSpace(s)
	s = headingNumberPrefix.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	s = strings.TrimRight(s, " .:;")
	return strings.Join(strings.Fields(s), " ")
}

// Match scores a heading candidate against the lexicon and returns the best
// label, or ok=false when no label clears the bar. Tiers, best first:
// exact alias match, fuzzy alias match (normalized edit similarity),
// keyword containment.
func (l *Lexicon) Match(text string) (paper.SectionLabel, bool) {
	norm := normalizeHeading(text)
	if norm == "" {
		return "", false
	}

	best := paper.SectionLabel("")
	bestScore := 0.0
	for _, label := range matchOrder {
		for _, alias := range l.aliases[label] {
			score := similarity(norm, alias)
			if score > bestScore {
				best, bestScore = label, score
			}
		}
	}
	if bestScore >= fuzzyThreshold {
		return best, true
	}

	for _, kf := range keywordFallbacks {
		if strings.Contains(norm, kf.keyword) {
			return kf.label, true
		}
	}
	return "", false
}

// similarity is 1 - levenshtein/maxlen, so 1.0 means an exact match.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes edit distance with a rolling single-row table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cur := row[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			m := prev + cost
			if row[j]+1 < m {
				m = row[j] + 1
			}
			if row[j-1]+1 < m {
				m = row[j-1] + 1
			}
			row[j] = m
			prev = cur
		}
	}
	return row[len(b)]
}
