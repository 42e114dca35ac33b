package export

import (
	"fmt"
	"strings"

	"github.com/paperlens/paperlens/internal/paper"
)

// BibTeX renders parsed reference entries as @misc skeletons. Only the
// fields the reference parser actually recovers are emitted; the raw entry
// text goes into a note so nothing is lost.
func BibTeX(entries []paper.ReferenceEntry) string {
	var out []string
	for _, e := range entries {
		out = append(out, bibTeXEntry(e))
	}
	return strings.Join(out, "\n")
}

func bibTeXEntry(e paper.ReferenceEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@misc{%s,\n", citeKey(e))
	if len(e.Authors) > 0 {
		fmt.Fprintf(&b, "  author = {%s},\n", strings.Join(e.Authors, " and "))
	}
	if e.Year > 0 {
		fmt.Fprintf(&b, "  year = {%d},\n", e.Year)
	}
	fmt.Fprintf(&b, "  note = {%s},\n", escapeLatex(strings.Join(strings.Fields(e.RawText), " ")))
	b.WriteString("}\n")
	return b.String()
}

// citeKey derives a stable citation key: first author surname plus year
// when known, the entry id otherwise.
func citeKey(e paper.ReferenceEntry) string {
	if len(e.Authors) > 0 && e.Year > 0 {
		return fmt.Sprintf("%s%d", strings.ToLower(e.Authors[0]), e.Year)
	}
	return fmt.Sprintf("ref%d", e.ID)
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
