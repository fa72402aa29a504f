// Package classify infers what a programming request is about: its task
// type, language, target AI tool, keywords, complexity and the information
// it leaves out.
package classify

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/promptforge/promptforge/internal/catalog"
)

// LanguageUnspecified is reported when no language marker matches. It is not
// a language.
const LanguageUnspecified = "unspecified"

// GapLanguage is reported when the request names no programming language.
const GapLanguage = "programming language"

// FallbackConfidence is the confidence of the default classification when no
// task-type marker matches.
const FallbackConfidence = 0.3

const maxKeywords = 10

// Complexity is a coarse estimate of how involved a request is.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// Classification is the result of analyzing one request.
type Classification struct {
	TaskType    catalog.TaskType `json:"task_type"`
	Confidence  float64          `json:"confidence"`
	Language    string           `json:"language"`
	Tool        catalog.Tool     `json:"tool"`
	Keywords    []string         `json:"keywords"`
	Complexity  Complexity       `json:"complexity"`
	MissingInfo []string         `json:"missing_info"`
}

// LanguageKnown reports whether a language was detected.
func (c Classification) LanguageKnown() bool {
	return c.Language != "" && c.Language != LanguageUnspecified
}

// Classifier analyzes requests against a fixed set of marker tables. It
// holds no mutable state and is safe for concurrent use.
type Classifier struct {
	tables Tables
	tasks  map[catalog.TaskType][][]string
}

// New returns a classifier over tables produced by ParseTables or
// DefaultTables. The tables are copied.
func New(t Tables) *Classifier {
	t = t.clone()
	tasks := make(map[catalog.TaskType][][]string, len(t.TaskTypes))
	for _, tm := range t.TaskTypes {
		tasks[tm.TaskType] = tm.Markers
	}
	return &Classifier{tables: t, tasks: tasks}
}

// Default returns a classifier over the built-in tables.
func Default() *Classifier {
	return New(DefaultTables())
}

// WithGapRules returns a copy of c that additionally runs rules for
// taskType. The receiver is not modified.
func (c *Classifier) WithGapRules(taskType catalog.TaskType, rules ...GapRule) *Classifier {
	t := c.tables.clone()
	for _, r := range rules {
		r.Markers = foldAll(r.Markers)
		t.Gaps[taskType] = append(t.Gaps[taskType], r)
	}
	return &Classifier{tables: t, tasks: c.tasks}
}

// Analyze classifies text. It never fails: text without recognizable markers
// yields the fallback classification.
func (c *Classifier) Analyze(text string) Classification {
	folded := fold(text)
	tokens := tokenize(folded)

	taskType, confidence := c.taskType(folded)
	language := c.language(folded)
	return Classification{
		TaskType:    taskType,
		Confidence:  confidence,
		Language:    language,
		Tool:        c.tool(folded),
		Keywords:    c.keywords(tokens),
		Complexity:  c.complexity(text, tokens),
		MissingInfo: c.missingInfo(folded, taskType, language),
	}
}

// taskType scores each task type by the number of its marker groups that
// occur in text. Ties go to the earliest task type in enumeration order.
func (c *Classifier) taskType(text string) (catalog.TaskType, float64) {
	best, bestCount := catalog.TaskCodeGeneration, 0
	for _, tt := range catalog.TaskTypes() {
		count := 0
		for _, group := range c.tasks[tt] {
			if containsAny(text, group) {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = tt, count
		}
	}
	if bestCount == 0 {
		return catalog.TaskCodeGeneration, FallbackConfidence
	}
	return best, min(1.0, float64(bestCount)/float64(len(c.tasks[best])))
}

func (c *Classifier) language(text string) string {
	for _, l := range c.tables.Languages {
		if containsWord(text, l.Markers) {
			return l.Name
		}
	}
	return LanguageUnspecified
}

func (c *Classifier) tool(text string) catalog.Tool {
	for _, t := range c.tables.Tools {
		if containsAny(text, t.Markers) {
			return t.Tool
		}
	}
	return catalog.ToolGeneral
}

// keywords keeps allow-listed tokens longer than three runes, in scan order.
// A token that recurs is reported each time.
func (c *Classifier) keywords(tokens []string) []string {
	out := []string{}
	for _, tok := range tokens {
		if len(out) == maxKeywords {
			break
		}
		if utf8.RuneCountInString(tok) > 3 && slices.Contains(c.tables.Keywords, tok) {
			out = append(out, tok)
		}
	}
	return out
}

func (c *Classifier) complexity(original string, tokens []string) Complexity {
	length := utf8.RuneCountInString(original)
	terms := 0
	for _, tok := range tokens {
		if slices.Contains(c.tables.TechnicalTerms, tok) {
			terms++
		}
	}
	switch {
	case length < 50 && terms == 0:
		return ComplexitySimple
	case length < 200 && terms <= 2:
		return ComplexityMedium
	default:
		return ComplexityComplex
	}
}

func (c *Classifier) missingInfo(text string, taskType catalog.TaskType, language string) []string {
	missing := []string{}
	if language == LanguageUnspecified {
		missing = append(missing, GapLanguage)
	}
	for _, r := range c.tables.Gaps[taskType] {
		if !containsAny(text, r.Markers) {
			missing = append(missing, r.Label)
		}
	}
	return missing
}

// tokenize splits text into maximal runs of letters, marks, digits and
// underscores.
func tokenize(text string) []string {
	var tokens []string
	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}
