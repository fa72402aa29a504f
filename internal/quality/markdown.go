package quality

import (
	"fmt"
	"strings"
)

var dimensionTitles = map[Dimension]string{
	Clarity:       "Clarity",
	Specificity:   "Specificity",
	Completeness:  "Completeness",
	Structure:     "Structure",
	Actionability: "Actionability",
}

// Markdown renders r as a human-readable report.
func Markdown(r Report) string {
	var b strings.Builder
	b.WriteString("# Prompt quality report\n\n")
	fmt.Fprintf(&b, "## Overall: %.1f/10 (grade %s)\n\n", r.Overall, r.Grade)

	b.WriteString("## Scores\n\n")
	for _, s := range r.Scores {
		title, ok := dimensionTitles[s.Dimension]
		if !ok {
			title = string(s.Dimension)
		}
		fmt.Fprintf(&b, "### %s: %.1f/10\n%s\n\n", title, s.Score, s.Explanation)
	}

	if len(r.Strengths) > 0 {
		b.WriteString("## Strengths\n\n")
		for _, s := range r.Strengths {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	if len(r.Improvements) > 0 {
		b.WriteString("## Improvements\n\n")
		for i, s := range r.Improvements {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
