package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// TaskType is the category of programming activity a request falls into.
type TaskType string

const (
	TaskCodeGeneration     TaskType = "code_generation"
	TaskCodeReview         TaskType = "code_review"
	TaskBugFixing          TaskType = "bug_fixing"
	TaskRefactoring        TaskType = "refactoring"
	TaskCodeExplanation    TaskType = "code_explanation"
	TaskAPIDesign          TaskType = "api_design"
	TaskDatabaseDesign     TaskType = "database_design"
	TaskTesting            TaskType = "testing"
	TaskDocumentation      TaskType = "documentation"
	TaskOptimization       TaskType = "optimization"
	TaskArchitectureDesign TaskType = "architecture_design"
	TaskDeployment         TaskType = "deployment"
)

// Tool is the AI coding assistant a prompt is tuned for.
type Tool string

const (
	ToolCursor        Tool = "cursor"
	ToolGitHubCopilot Tool = "github_copilot"
	ToolCodeWhisperer Tool = "codewhisperer"
	ToolTabnine       Tool = "tabnine"
	ToolChatGPT       Tool = "chatgpt"
	ToolClaude        Tool = "claude"
	// ToolGeneral matches any tool.
	ToolGeneral Tool = "general"
)

var (
	// ErrUnknownTaskType is returned when a string names no task type.
	ErrUnknownTaskType = errors.New("unknown task type")

	// ErrUnknownTool is returned when a string names no tool.
	ErrUnknownTool = errors.New("unknown tool")
)

// taskTypes is the enumeration order. Classifier tie-breaks depend on it.
var taskTypes = []TaskType{
	TaskCodeGeneration,
	TaskCodeReview,
	TaskBugFixing,
	TaskRefactoring,
	TaskCodeExplanation,
	TaskAPIDesign,
	TaskDatabaseDesign,
	TaskTesting,
	TaskDocumentation,
	TaskOptimization,
	TaskArchitectureDesign,
	TaskDeployment,
}

var tools = []Tool{
	ToolCursor,
	ToolGitHubCopilot,
	ToolCodeWhisperer,
	ToolTabnine,
	ToolChatGPT,
	ToolClaude,
	ToolGeneral,
}

// TaskTypes returns every task type in enumeration order.
func TaskTypes() []TaskType {
	out := make([]TaskType, len(taskTypes))
	copy(out, taskTypes)
	return out
}

// Tools returns every tool in enumeration order, general last.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

// Valid reports whether t is a member of the enumeration.
func (t TaskType) Valid() bool {
	for _, v := range taskTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Valid reports whether t is a member of the enumeration.
func (t Tool) Valid() bool {
	for _, v := range tools {
		if v == t {
			return true
		}
	}
	return false
}

// ParseTaskType converts s (case-insensitive, surrounding space ignored) to a TaskType.
func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTaskType, s)
	}
	return t, nil
}

// ParseTool converts s (case-insensitive, surrounding space ignored) to a Tool.
func ParseTool(s string) (Tool, error) {
	t := Tool(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, s)
	}
	return t, nil
}
