package classify

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"sigs.k8s.io/yaml"

	"github.com/promptforge/promptforge/internal/catalog"
)

//go:embed markers.yaml
var defaultMarkers []byte

// ErrInvalidTables is returned when a marker document is malformed.
var ErrInvalidTables = errors.New("invalid marker tables")

// TaskMarkers holds the synonym groups that indicate one task type.
type TaskMarkers struct {
	TaskType catalog.TaskType `json:"task_type"`
	Markers  [][]string       `json:"markers"`
}

// LanguageMarkers maps a language label to the substrings that reveal it.
type LanguageMarkers struct {
	Name    string   `json:"name"`
	Markers []string `json:"markers"`
}

// ToolMarkers maps a tool to the substrings that reveal it.
type ToolMarkers struct {
	Tool    catalog.Tool `json:"tool"`
	Markers []string     `json:"markers"`
}

// GapRule flags Label as missing when none of Markers appears in the text.
type GapRule struct {
	Label   string   `json:"label"`
	Markers []string `json:"markers"`
}

// GapRules are the missing-information checks per task type, run in order.
type GapRules map[catalog.TaskType][]GapRule

// Tables is the data the classifier runs on. Nothing in the algorithm
// refers to a concrete entry of these tables.
type Tables struct {
	TaskTypes      []TaskMarkers     `json:"task_types"`
	Languages      []LanguageMarkers `json:"languages"`
	Tools          []ToolMarkers     `json:"tools"`
	Keywords       []string          `json:"keywords"`
	TechnicalTerms []string          `json:"technical_terms"`
	Gaps           GapRules          `json:"gaps"`
}

// DefaultTables returns the built-in marker tables.
func DefaultTables() Tables {
	t, err := ParseTables(defaultMarkers)
	if err != nil {
		panic("classify: invalid built-in markers: " + err.Error())
	}
	return t
}

// LoadTables reads marker tables from a YAML or JSON file.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading markers file: %w", err)
	}
	return ParseTables(data)
}

// ParseTables decodes and validates a marker document. Markers are case
// folded so that matching only has to fold the input.
func ParseTables(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.UnmarshalStrict(data, &t); err != nil {
		return Tables{}, fmt.Errorf("%w: %w", ErrInvalidTables, err)
	}
	if err := t.validate(); err != nil {
		return Tables{}, err
	}
	t.fold()
	return t, nil
}

func (t *Tables) validate() error {
	seen := make(map[catalog.TaskType]bool)
	for _, tm := range t.TaskTypes {
		if !tm.TaskType.Valid() {
			return fmt.Errorf("%w: %w: %q", ErrInvalidTables, catalog.ErrUnknownTaskType, tm.TaskType)
		}
		if seen[tm.TaskType] {
			return fmt.Errorf("%w: task type %q listed twice", ErrInvalidTables, tm.TaskType)
		}
		seen[tm.TaskType] = true
		for i, group := range tm.Markers {
			if len(group) == 0 {
				return fmt.Errorf("%w: task type %q: marker group %d is empty", ErrInvalidTables, tm.TaskType, i)
			}
		}
	}
	for _, l := range t.Languages {
		if strings.TrimSpace(l.Name) == "" || l.Name == LanguageUnspecified {
			return fmt.Errorf("%w: invalid language label %q", ErrInvalidTables, l.Name)
		}
	}
	for _, tm := range t.Tools {
		if !tm.Tool.Valid() {
			return fmt.Errorf("%w: %w: %q", ErrInvalidTables, catalog.ErrUnknownTool, tm.Tool)
		}
	}
	for tt, rules := range t.Gaps {
		if !tt.Valid() {
			return fmt.Errorf("%w: gaps: %w: %q", ErrInvalidTables, catalog.ErrUnknownTaskType, tt)
		}
		for _, r := range rules {
			if r.Label == "" {
				return fmt.Errorf("%w: gaps for %q: empty label", ErrInvalidTables, tt)
			}
		}
	}
	return nil
}

func (t *Tables) fold() {
	for i := range t.TaskTypes {
		for j := range t.TaskTypes[i].Markers {
			t.TaskTypes[i].Markers[j] = foldAll(t.TaskTypes[i].Markers[j])
		}
	}
	for i := range t.Languages {
		t.Languages[i].Markers = foldAll(t.Languages[i].Markers)
	}
	for i := range t.Tools {
		t.Tools[i].Markers = foldAll(t.Tools[i].Markers)
	}
	t.Keywords = foldAll(t.Keywords)
	t.TechnicalTerms = foldAll(t.TechnicalTerms)
	for tt, rules := range t.Gaps {
		for i := range rules {
			rules[i].Markers = foldAll(rules[i].Markers)
		}
		t.Gaps[tt] = rules
	}
}

// clone deep-copies every table so a Classifier never shares slices with
// the caller.
func (t Tables) clone() Tables {
	out := Tables{
		TaskTypes:      make([]TaskMarkers, len(t.TaskTypes)),
		Languages:      make([]LanguageMarkers, len(t.Languages)),
		Tools:          make([]ToolMarkers, len(t.Tools)),
		Keywords:       slices.Clone(t.Keywords),
		TechnicalTerms: slices.Clone(t.TechnicalTerms),
		Gaps:           make(GapRules, len(t.Gaps)),
	}
	for i, tm := range t.TaskTypes {
		groups := make([][]string, len(tm.Markers))
		for j, g := range tm.Markers {
			groups[j] = slices.Clone(g)
		}
		out.TaskTypes[i] = TaskMarkers{TaskType: tm.TaskType, Markers: groups}
	}
	for i, l := range t.Languages {
		out.Languages[i] = LanguageMarkers{Name: l.Name, Markers: slices.Clone(l.Markers)}
	}
	for i, tl := range t.Tools {
		out.Tools[i] = ToolMarkers{Tool: tl.Tool, Markers: slices.Clone(tl.Markers)}
	}
	for tt, rules := range t.Gaps {
		copied := make([]GapRule, len(rules))
		for i, r := range rules {
			copied[i] = GapRule{Label: r.Label, Markers: slices.Clone(r.Markers)}
		}
		out.Gaps[tt] = copied
	}
	return out
}

// fold applies Unicode case folding. A cases.Caser carries state, so each
// call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

func foldAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = fold(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// containsWord reports whether any marker occurs in text without an ASCII
// letter or digit directly beside an alphanumeric end of the marker.
func containsWord(text string, markers []string) bool {
	for _, m := range markers {
		for from := 0; from < len(text); {
			i := strings.Index(text[from:], m)
			if i < 0 {
				break
			}
			start, end := from+i, from+i+len(m)
			if boundary(text, start-1, m[0]) && boundary(text, end, m[len(m)-1]) {
				return true
			}
			from = start + 1
		}
	}
	return false
}

// boundary reports whether the byte at text[i] may sit next to a marker
// whose edge byte is edge.
func boundary(text string, i int, edge byte) bool {
	if i < 0 || i >= len(text) || !isASCIIAlnum(edge) {
		return true
	}
	return !isASCIIAlnum(text[i])
}

func isASCIIAlnum(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || '0' <= b && b <= '9'
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
