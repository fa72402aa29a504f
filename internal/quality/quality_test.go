package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structuredPrompt = `# Task
Please generate a report about our API usage.

## Requirements
1. Use 3 sections
2. Keep it under 500 words
3. Include 2 charts

## Output format
- Markdown with tables`

func findRule(t *testing.T, d Dimension, name string) rule {
	t.Helper()
	for _, dim := range dimensions {
		if dim.name != d {
			continue
		}
		for _, r := range dim.rules {
			if r.name == name {
				return r
			}
		}
	}
	t.Fatalf("no rule %q in %s", name, d)
	return rule{}
}

func scoreOf(t *testing.T, r Report, d Dimension) float64 {
	t.Helper()
	s, ok := r.Score(d)
	require.True(t, ok, "missing dimension %s", d)
	return s.Score
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{10, "A+"},
		{9.0, "A+"},
		{8.99, "A"},
		{8.5, "A"},
		{8.0, "A-"},
		{7.5, "B+"},
		{7.0, "B"},
		{6.5, "B-"},
		{6.0, "C+"},
		{5.5, "C"},
		{5.0, "C-"},
		{4.99, "D"},
		{0, "D"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.score), "Grade(%v)", tt.score)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	a := Evaluate(structuredPrompt, "generate a report about API usage")
	b := Evaluate(structuredPrompt, "generate a report about API usage")
	assert.Equal(t, a, b)
}

func TestStructuredBeatsUnstructured(t *testing.T) {
	structured := Evaluate(structuredPrompt, "")
	plain := Evaluate("Write some code for me.", "")

	assert.Greater(t, scoreOf(t, structured, Structure), scoreOf(t, plain, Structure))
	assert.Greater(t, scoreOf(t, structured, Specificity), scoreOf(t, plain, Specificity))
	assert.Equal(t, 9.5, scoreOf(t, structured, Structure))
	assert.Equal(t, 7.5, scoreOf(t, structured, Specificity))
}

func TestEvaluateEmpty(t *testing.T) {
	r := Evaluate("", "")
	require.Len(t, r.Scores, 5)
	assert.Equal(t, 3.0, scoreOf(t, r, Clarity))
	assert.Equal(t, 4.0, scoreOf(t, r, Specificity))
	assert.Equal(t, 5.0, scoreOf(t, r, Completeness))
	assert.Equal(t, 5.0, scoreOf(t, r, Structure))
	assert.Equal(t, 5.0, scoreOf(t, r, Actionability))
	assert.Equal(t, 4.4, r.Overall)
	assert.Equal(t, "D", r.Grade)
	assert.Empty(t, r.Strengths)
	assert.Len(t, r.Improvements, maxImprovements)
	assert.Equal(t, "add more detail and context", r.Improvements[0])
}

func TestEvaluateScoresInRange(t *testing.T) {
	prompts := []string{
		"",
		structuredPrompt,
		strings.Repeat("please create and verify the API output format ", 200),
		"首先创建任务，然后生成输出，最后检查质量标准和背景。例如：步骤1 步骤2 步骤3",
	}
	for _, p := range prompts {
		r := Evaluate(p, p)
		for _, s := range r.Scores {
			assert.GreaterOrEqual(t, s.Score, 0.0)
			assert.LessOrEqual(t, s.Score, 10.0)
		}
		assert.LessOrEqual(t, len(r.Improvements), maxImprovements)
	}
}

func TestStrengths(t *testing.T) {
	r := Evaluate(structuredPrompt, "")
	require.NotEmpty(t, r.Strengths)
	assert.True(t, strings.HasPrefix(r.Strengths[0], "structure: well organized with headers"))
}

func TestClarityRules(t *testing.T) {
	length := findRule(t, Clarity, "length")
	assert.Equal(t, -1.0, length.apply(newInput("short prompt", "")).delta)
	assert.Equal(t, 1.0, length.apply(newInput(strings.Repeat("word ", 60), "")).delta)
	assert.Equal(t, -0.5, length.apply(newInput(strings.Repeat("word ", 501), "")).delta)

	jargon := findRule(t, Clarity, "jargon")
	assert.Equal(t, outcome{}, jargon.apply(newInput("plain words only", "")))
	assert.Equal(t, 0.5, jargon.apply(newInput("Use the JWT token; explain it", "")).delta)
	o := jargon.apply(newInput("call getUserName", ""))
	assert.Zero(t, o.delta)
	assert.NotEmpty(t, o.suggestion)
}

func TestCompletenessRules(t *testing.T) {
	components := findRule(t, Completeness, "components")
	o := components.apply(newInput("task: output the result to a quality standard given this context", ""))
	assert.Equal(t, 3.0, o.delta)
	assert.Empty(t, o.suggestion)

	o = components.apply(newInput("do it", ""))
	assert.Zero(t, o.delta)
	assert.Equal(t, "add the missing components: task description, output requirement, quality standard, context", o.suggestion)

	overlapRule := findRule(t, Completeness, "requirement overlap")
	assert.Equal(t, outcome{}, overlapRule.apply(newInput("anything", "too short")))
	assert.Equal(t, 1.0, overlapRule.apply(newInput("write a blog post about ai", "write a blog post")).delta)
	assert.Equal(t, 0.5, overlapRule.apply(newInput("write something", "write one two three four five six seven")).delta)
	assert.NotEmpty(t, overlapRule.apply(newInput("unrelated", "write a blog post about ai")).suggestion)
}

func TestSpecificityRules(t *testing.T) {
	numbers := findRule(t, Specificity, "numbers")
	tests := []struct {
		prompt string
		want   float64
	}{
		{"write a summary", -1.0},
		{"write 2 paragraphs", 0.5},
		{"write 2 paragraphs of 100 words", 0.5},
		{"write 2 paragraphs of 100 words with 3 quotes", 1.5},
		{"用３个例子", 0.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, numbers.apply(newInput(tt.prompt, "")).delta, tt.prompt)
	}
	assert.NotEmpty(t, numbers.apply(newInput("no digits", "")).suggestion)
	assert.Empty(t, numbers.apply(newInput("1 2 3", "")).suggestion)

	examples := findRule(t, Specificity, "examples")
	assert.Equal(t, 1.0, examples.apply(newInput("For example, a CSV row", "")).delta)
	assert.NotEmpty(t, examples.apply(newInput("a CSV row", "")).suggestion)

	format := findRule(t, Specificity, "format")
	assert.Equal(t, 1.0, format.apply(newInput("answer in JSON format", "")).delta)

	constraints := findRule(t, Specificity, "constraints")
	assert.Equal(t, 0.5, constraints.apply(newInput("avoid global state", "")).delta)
	assert.Equal(t, outcome{}, constraints.apply(newInput("anything goes", "")))
}

func TestStructureHeaders(t *testing.T) {
	headers := findRule(t, Structure, "headers")
	tests := []struct {
		name   string
		prompt string
		want   float64
	}{
		{"none", "plain text
more text", 0},
		{"one", "# Task
write it", 1.0},
		{"two", "# Task
## Output", 1.0},
		{"three", "# Task
## Output
## Constraints", 2.0},
		{"indented", "  # Task
  ## Output
	## Constraints", 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, headers.apply(newInput(tt.prompt, "")).delta)
		})
	}
	assert.Equal(t, "organize the content under headers", headers.apply(newInput("plain", "")).suggestion)
}

func TestStructureLists(t *testing.T) {
	lists := findRule(t, Structure, "lists")
	assert.Equal(t, 1.5, lists.apply(newInput("- a\n* b\n1. c\n2) d", "")).delta)
	assert.Equal(t, 0.5, lists.apply(newInput("  - indented item", "")).delta)
	assert.Zero(t, lists.apply(newInput("-not a list\n1.nope", "")).delta)
}

func TestActionabilityRules(t *testing.T) {
	steps := findRule(t, Actionability, "steps")
	assert.Equal(t, 1.5, steps.apply(newInput("第一步 准备 步骤2 完成 Step 3 ship", "")).delta)
	assert.Equal(t, 0.5, steps.apply(newInput("1. only one", "")).delta)

	verbs := findRule(t, Actionability, "action verbs")
	assert.Equal(t, 2.0, verbs.apply(newInput("Create, design and implement", "")).delta)
	assert.Equal(t, 1.0, verbs.apply(newInput("分析一下", "")).delta)
}

func TestMarkdown(t *testing.T) {
	md := Markdown(Evaluate("", ""))
	assert.True(t, strings.HasPrefix(md, "# Prompt quality report\n"))
	assert.Contains(t, md, "## Overall: 4.4/10 (grade D)")
	assert.Contains(t, md, "### Clarity: 3.0/10")
	assert.Contains(t, md, "1. add more detail and context")
	assert.NotContains(t, md, "## Strengths")

	md = Markdown(Evaluate(structuredPrompt, ""))
	assert.Contains(t, md, "## Strengths\n\n- structure: ")
}
