// Package generate asks an LLM to write a well-formatted prompt for a
// requirement and grades the result.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/promptforge/promptforge/internal/llm"
	"github.com/promptforge/promptforge/internal/metrics"
	"github.com/promptforge/promptforge/internal/quality"
)

// Format selects the kind of prompt to generate.
type Format string

const (
	FormatStandard    Format = "standard"
	FormatExpertPanel Format = "expert-panel"
	FormatExamples    Format = "examples"
)

const (
	DefaultExperts     = 3
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

var (
	// ErrEmptyRequirement is returned when the requirement is blank.
	ErrEmptyRequirement = errors.New("requirement is empty")

	// ErrUnknownFormat is returned for a format other than the Format constants.
	ErrUnknownFormat = errors.New("unknown prompt format")
)

// Example is one input/output pair for few-shot prompts.
type Example struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// DefaultExamples are used by FormatExamples when the request has none.
var DefaultExamples = []Example{
	{Input: "Write a poem about nature", Output: "The trees sway gently in the breeze..."},
	{Input: "Explain quantum physics", Output: "Quantum physics studies the behavior of matter and energy at the smallest scales..."},
}

// Request describes one generation.
type Request struct {
	Requirement string
	Format      Format
	Examples    []Example
	Experts     int
	Temperature float64
	MaxTokens   int
}

// Result is a generated prompt and its quality grade.
type Result struct {
	Requirement string         `json:"requirement"`
	Format      Format         `json:"format"`
	Provider    string         `json:"provider"`
	Prompt      string         `json:"prompt"`
	Fallback    bool           `json:"fallback"`
	Quality     quality.Report `json:"quality"`
}

// ParseFormat converts s to a Format. The empty string is FormatStandard.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatStandard, nil
	case FormatStandard, FormatExpertPanel, FormatExamples:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Generator writes prompts with an optional LLM. Without one, or when the
// LLM fails, it returns a canned prompt and marks the result as a fallback.
type Generator struct {
	completer llm.Completer
	provider  string
}

// New returns a Generator. completer may be nil.
func New(completer llm.Completer, provider string) *Generator {
	return &Generator{completer: completer, provider: provider}
}

// Generate writes a prompt for req. Only invalid requests and context
// cancellation return an error; LLM failures degrade to the fallback prompt.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	req.Requirement = strings.TrimSpace(req.Requirement)
	if req.Requirement == "" {
		return nil, ErrEmptyRequirement
	}
	format, err := ParseFormat(string(req.Format))
	if err != nil {
		return nil, err
	}
	req.Format = format
	if req.Experts <= 0 {
		req.Experts = DefaultExperts
	}
	if req.Temperature <= 0 {
		req.Temperature = DefaultTemperature
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}
	if format == FormatExamples && len(req.Examples) == 0 {
		req.Examples = DefaultExamples
	}

	system, user, err := buildPrompts(req)
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	res := &Result{Requirement: req.Requirement, Format: format, Provider: g.provider}
	if g.completer != nil {
		out, err := g.completer.Complete(ctx, llm.Request{
			System:      system,
			User:        user,
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		})
		switch {
		case err == nil:
			res.Prompt = strings.TrimSpace(out)
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			log.Printf("generate: %s LLM error, using fallback prompt: %v", g.provider, err)
		}
	}
	if res.Prompt == "" {
		res.Fallback = true
		if res.Prompt, err = renderPrompt("fallback.tmpl", promptData{Requirement: req.Requirement}); err != nil {
			return nil, fmt.Errorf("render fallback: %w", err)
		}
	}

	res.Quality = quality.Evaluate(res.Prompt, req.Requirement)
	metrics.RecordGeneration(string(format), res.Fallback, res.Quality.Overall)
	return res, nil
}

func buildPrompts(req Request) (system, user string, err error) {
	data := promptData{Requirement: req.Requirement, Experts: req.Experts, Examples: req.Examples}
	var prefix string
	switch req.Format {
	case FormatStandard:
		prefix = "standard"
	case FormatExpertPanel:
		prefix = "expert"
	case FormatExamples:
		prefix = "examples"
	}
	if system, err = renderPrompt(prefix+"_system.tmpl", data); err != nil {
		return "", "", err
	}
	if user, err = renderPrompt(prefix+"_user.tmpl", data); err != nil {
		return "", "", err
	}
	return system, user, nil
}

// LoadExamples reads a JSON array of {"input", "output"} objects.
func LoadExamples(path string) ([]Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading examples file: %w", err)
	}
	var examples []Example
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("parsing examples file: %w", err)
	}
	for i, e := range examples {
		if strings.TrimSpace(e.Input) == "" || strings.TrimSpace(e.Output) == "" {
			return nil, fmt.Errorf("examples file: entry %d needs both input and output", i+1)
		}
	}
	return examples, nil
}
