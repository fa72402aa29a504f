// Package recommend ranks catalog templates against a classified request.
package recommend

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/promptforge/promptforge/internal/catalog"
	"github.com/promptforge/promptforge/internal/classify"
)

const (
	// MaxRecommendations caps the result of Recommend.
	MaxRecommendations = 3

	previewRunes = 300
	ellipsis     = "..."
)

// Generic improvement suggestions.
const (
	ImproveClarify     = "clarify your requirement"
	ImproveSpecific    = "add more specific requirements"
	ImproveKeywords    = "add technical keywords"
	improveGapTemplate = "add: %s"
)

var (
	detailedMarkers = []string{"detailed", "comprehensive", "详细", "全面"}
	simpleMarkers   = []string{"simple", "basic", "简单"}
)

// Recommendation is one ranked template suggestion.
type Recommendation struct {
	TemplateID   string   `json:"template_id"`
	TemplateName string   `json:"template_name"`
	Score        float64  `json:"score"`
	Reasons      []string `json:"reasons"`
	Improvements []string `json:"improvements"`
	Preview      string   `json:"preview"`
}

// Recommend returns at most MaxRecommendations templates from cat, highest
// score first. Equal scores keep candidate order.
func Recommend(c classify.Classification, cat *catalog.Catalog) []Recommendation {
	improvements := improvements(c)
	var recs []Recommendation
	for _, t := range candidates(c, cat) {
		recs = append(recs, Recommendation{
			TemplateID:   t.ID,
			TemplateName: t.Name,
			Score:        score(t, c),
			Reasons:      reasons(t, c),
			Improvements: append([]string(nil), improvements...),
			Preview:      preview(t, c, cat),
		})
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

// candidates merges the task-type and tool matches keyed by display name. A
// name keeps the slot of its first occurrence and the template of its last.
func candidates(c classify.Classification, cat *catalog.Catalog) []catalog.Template {
	all := append(cat.FilterByTaskType(c.TaskType), cat.FilterByTool(c.Tool)...)
	slot := make(map[string]int, len(all))
	var out []catalog.Template
	for _, t := range all {
		if i, ok := slot[t.Name]; ok {
			out[i] = t
			continue
		}
		slot[t.Name] = len(out)
		out = append(out, t)
	}
	return out
}

func score(t catalog.Template, c classify.Classification) float64 {
	s := 0.0
	if t.TaskType == c.TaskType {
		s += 0.4
	}
	if t.Tool == c.Tool || t.Tool == catalog.ToolGeneral {
		s += 0.3
	}
	desc := strings.ToLower(t.Description)
	switch {
	case c.Complexity == classify.ComplexityComplex && containsAny(desc, detailedMarkers):
		s += 0.2
	case c.Complexity == classify.ComplexitySimple && containsAny(desc, simpleMarkers):
		s += 0.2
	}
	s = max(0, min(1, s))
	return s * (0.5 + 0.5*c.Confidence)
}

func reasons(t catalog.Template, c classify.Classification) []string {
	out := []string{}
	if t.TaskType == c.TaskType {
		out = append(out, fmt.Sprintf("matches your task type: %s", c.TaskType))
	}
	switch {
	case t.Tool == c.Tool && t.Tool != catalog.ToolGeneral:
		out = append(out, fmt.Sprintf("optimized for %s", c.Tool))
	case t.Tool == catalog.ToolGeneral:
		out = append(out, "works with any AI assistant")
	}
	if c.LanguageKnown() {
		out = append(out, fmt.Sprintf("supports %s", c.Language))
	}
	if c.Complexity == classify.ComplexityComplex {
		out = append(out, "provides detailed implementation guidance")
	}
	return out
}

func improvements(c classify.Classification) []string {
	out := []string{}
	for _, gap := range c.MissingInfo {
		out = append(out, fmt.Sprintf(improveGapTemplate, gap))
	}
	if c.Confidence < 0.5 {
		out = append(out, ImproveClarify)
	}
	if c.Complexity == classify.ComplexitySimple {
		out = append(out, ImproveSpecific)
	}
	if len(c.Keywords) == 0 {
		out = append(out, ImproveKeywords)
	}
	return out
}

// preview renders t with filler values and truncates the result. If the
// render fails the raw body is truncated instead.
func preview(t catalog.Template, c classify.Classification, cat *catalog.Catalog) string {
	bindings := make(map[string]string, len(t.Variables))
	for _, v := range t.Variables {
		bindings[v] = filler(v, c)
	}
	text, err := cat.Render(t.ID, bindings)
	if err != nil {
		text = t.Body
	}
	return truncate(text, previewRunes) + ellipsis
}

func filler(name string, c classify.Classification) string {
	switch {
	case strings.Contains(name, "language"):
		return c.Language
	case strings.Contains(name, "description"):
		return "example feature description"
	case strings.Contains(name, "code"):
		return "// example code"
	default:
		return "example " + name
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
