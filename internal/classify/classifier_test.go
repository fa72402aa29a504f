package classify

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/promptforge/internal/catalog"
)

func TestAnalyzeEmpty(t *testing.T) {
	got := Default().Analyze("")
	assert.Equal(t, catalog.TaskCodeGeneration, got.TaskType)
	assert.Equal(t, FallbackConfidence, got.Confidence)
	assert.Equal(t, LanguageUnspecified, got.Language)
	assert.Equal(t, catalog.ToolGeneral, got.Tool)
	assert.Equal(t, ComplexitySimple, got.Complexity)
	assert.Contains(t, got.MissingInfo, GapLanguage)
	assert.Empty(t, got.Keywords)
}

func TestAnalyzeNoMarkersFallsBack(t *testing.T) {
	for _, text := range []string{"hello there", "今天天气很好", "1234 5678", "   "} {
		got := Default().Analyze(text)
		assert.Equal(t, catalog.TaskCodeGeneration, got.TaskType, text)
		assert.Equal(t, 0.3, got.Confidence, text)
	}
}

func TestAnalyzePythonCSV(t *testing.T) {
	for _, text := range []string{
		"我想用Python创建一个函数来处理CSV文件",
		"Create a Python function that parses CSV files",
	} {
		t.Run(text, func(t *testing.T) {
			got := Default().Analyze(text)
			assert.Equal(t, "Python", got.Language)
			assert.Equal(t, catalog.TaskCodeGeneration, got.TaskType)
			assert.Greater(t, got.Confidence, 0.3)
			assert.Equal(t, []string{"input parameters", "return value"}, got.MissingInfo)
		})
	}
}

func TestAnalyzeTaskTypes(t *testing.T) {
	tests := []struct {
		text string
		want catalog.TaskType
	}{
		{"Please review this code and check the error handling quality", catalog.TaskCodeReview},
		{"修复这个bug，程序运行时崩溃了", catalog.TaskBugFixing},
		{"Refactor and simplify this legacy module", catalog.TaskRefactoring},
		{"Explain how does this sorting logic work", catalog.TaskCodeExplanation},
		{"Design a RESTful API with endpoints for orders", catalog.TaskAPIDesign},
		{"为订单系统设计数据库表结构和索引", catalog.TaskDatabaseDesign},
		{"Write unit tests with pytest and mock the network", catalog.TaskTesting},
		{"Update the README and add docstring comments", catalog.TaskDocumentation},
		{"优化这段代码的性能，减少内存占用", catalog.TaskOptimization},
		{"Plan a microservice architecture for high availability", catalog.TaskArchitectureDesign},
		{"Deploy the service with Docker and Kubernetes", catalog.TaskDeployment},
	}
	c := Default()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Analyze(tt.text).TaskType)
		})
	}
}

func TestAnalyzeTieGoesToEarlierTaskType(t *testing.T) {
	tables := DefaultTables()
	tables.TaskTypes = []TaskMarkers{
		{TaskType: catalog.TaskTesting, Markers: [][]string{{"alpha"}}},
		{TaskType: catalog.TaskCodeReview, Markers: [][]string{{"beta"}}},
	}
	got := New(tables).Analyze("alpha beta")
	assert.Equal(t, catalog.TaskCodeReview, got.TaskType)
	assert.Equal(t, 1.0, got.Confidence)
}

func TestNewCopiesTables(t *testing.T) {
	tables := DefaultTables()
	c := New(tables)
	want := c.Analyze("Write a Rust function to reverse a string")

	for i := range tables.Languages {
		for j := range tables.Languages[i].Markers {
			tables.Languages[i].Markers[j] = "zzz"
		}
	}
	for i := range tables.TaskTypes {
		for j := range tables.TaskTypes[i].Markers {
			for k := range tables.TaskTypes[i].Markers[j] {
				tables.TaskTypes[i].Markers[j][k] = "zzz"
			}
		}
	}
	for tt := range tables.Gaps {
		for i := range tables.Gaps[tt] {
			tables.Gaps[tt][i].Markers = nil
		}
	}
	tables.Keywords[0] = "zzz"

	assert.Equal(t, want, c.Analyze("Write a Rust function to reverse a string"))
	assert.Equal(t, "Rust", want.Language)
}

func TestAnalyzeConfidenceIsGroupRatio(t *testing.T) {
	// One of six code_review groups.
	got := Default().Analyze("please review")
	assert.Equal(t, catalog.TaskCodeReview, got.TaskType)
	assert.InDelta(t, 1.0/6.0, got.Confidence, 1e-9)
}

func TestAnalyzeLanguage(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"a django view", "Python"},
		{"用Golang写一个HTTP服务", "Go"},
		{"an npm package in javascript", "JavaScript"},
		{"a TypeScript interface", "TypeScript"},
		{"Spring Boot controller", "Java"},
		{"write a CPP class", "C++"},
		{"a .NET service", "C#"},
		{"a CLI written in Rust", "Rust"},
		{"Write a Rust function to reverse a string", "Rust"},
		{"Fix the bug in my Rust crate", "Rust"},
		{"Write a Go HTTP server", "Go"},
		{"a small Go program that tails a file", "Go"},
		{"refactor this in Go", "Go"},
		{"Laravel migration", "PHP"},
		{"a Rails model", "Ruby"},
		{"SwiftUI view", "Swift"},
		{"an Android activity in Kotlin", "Kotlin"},
		{"optimize this MySQL query", "SQL"},
		{"an algorithm for scheduling", LanguageUnspecified},
		{"trust me, make it fast", LanguageUnspecified},
		{"a good plan to go ahead", LanguageUnspecified},
		{"swiftly summarize the meeting", LanguageUnspecified},
		{"make me happy", LanguageUnspecified},
	}
	c := Default()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Analyze(tt.text).Language)
		})
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text    string
		markers []string
		want    bool
	}{
		{"write rust", []string{"rust"}, true},
		{"trust", []string{"rust"}, false},
		{"rusty trust rust.", []string{"rust"}, true},
		{"open main.py now", []string{".py"}, true},
		{"用rust写", []string{"用rust"}, true},
		{"abc++ code", []string{"c++"}, false},
		{"c++ code", []string{"c++"}, true},
		{"mysql", []string{"sql"}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsWord(tt.text, tt.markers), "%q in %q", tt.markers, tt.text)
	}
}

func TestAnalyzeTool(t *testing.T) {
	tests := []struct {
		text string
		want catalog.Tool
	}{
		{"prompt for Cursor AI", catalog.ToolCursor},
		{"use GitHub Copilot", catalog.ToolGitHubCopilot},
		{"with CodeWhisperer", catalog.ToolCodeWhisperer},
		{"tabnine completion", catalog.ToolTabnine},
		{"ask ChatGPT", catalog.ToolChatGPT},
		{"Claude should do it", catalog.ToolClaude},
		{"no tool named", catalog.ToolGeneral},
	}
	c := Default()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Analyze(tt.text).Tool)
		})
	}
}

func TestAnalyzeKeywords(t *testing.T) {
	got := Default().Analyze("Write a function and a class; test the database algorithm via the API")
	assert.Equal(t, []string{"function", "class", "test", "database", "algorithm"}, got.Keywords)

	many := strings.Repeat("function ", 15)
	assert.Len(t, Default().Analyze(many).Keywords, 10)
}

func TestAnalyzeComplexity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Complexity
	}{
		{"short plain", "write a hello world program", ComplexitySimple},
		{"short with term", "design an api", ComplexityMedium},
		{"medium length", strings.Repeat("x", 120), ComplexityMedium},
		{"short with many terms", "api database algorithm architecture", ComplexityComplex},
		{"long", strings.Repeat("word ", 50), ComplexityComplex},
		{"term inside word not counted", "apis and databases everywhere", ComplexitySimple},
		{"runes not bytes", strings.Repeat("函", 49), ComplexitySimple},
	}
	c := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Analyze(tt.text).Complexity)
		})
	}
}

func TestAnalyzeMissingInfo(t *testing.T) {
	c := Default()

	got := c.Analyze("Fix the bug in my Python script, error: KeyError")
	assert.Equal(t, catalog.TaskBugFixing, got.TaskType)
	assert.Equal(t, []string{"reproduction steps"}, got.MissingInfo)

	got = c.Analyze("Design a REST API endpoint for users")
	assert.Equal(t, catalog.TaskAPIDesign, got.TaskType)
	assert.Equal(t, []string{GapLanguage, "database", "authentication method"}, got.MissingInfo)

	got = c.Analyze("Explain this Python decorator")
	assert.Equal(t, []string{}, got.MissingInfo)
}

func TestWithGapRules(t *testing.T) {
	base := Default()
	extended := base.WithGapRules(catalog.TaskTesting, GapRule{Label: "test framework", Markers: []string{"PyTest", "jest"}})

	text := "write unit tests for my Python parser"
	assert.Contains(t, extended.Analyze(text).MissingInfo, "test framework")
	assert.NotContains(t, base.Analyze(text).MissingInfo, "test framework")
	assert.NotContains(t, extended.Analyze(text+" using pytest").MissingInfo, "test framework")
}

func TestAnalyzeConcurrent(t *testing.T) {
	c := Default()
	want := c.Analyze("我想用Python创建一个函数来处理CSV文件")
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, c.Analyze("我想用Python创建一个函数来处理CSV文件"))
		}()
	}
	wg.Wait()
}

func TestParseTablesRejectsUnknownTaskType(t *testing.T) {
	_, err := ParseTables([]byte("task_types:\n  - task_type: painting\n    markers: [[brush]]\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTables)
	assert.ErrorIs(t, err, catalog.ErrUnknownTaskType)
}

func TestParseTablesRejectsEmptyGroup(t *testing.T) {
	_, err := ParseTables([]byte("task_types:\n  - task_type: testing\n    markers: [[]]\n"))
	assert.ErrorIs(t, err, ErrInvalidTables)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"hello", "world_1", "我想用python"}, tokenize("hello, world_1! 我想用python"))
	assert.Empty(t, tokenize("  ,.; "))
}
