package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/promptforge/internal/llm"
)

type fakeCompleter struct {
	reply string
	err   error
	got   llm.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	f.got = req
	return f.reply, f.err
}

func TestGenerateStandard(t *testing.T) {
	fc := &fakeCompleter{reply: "  # Task\nPlease write a blog post.\n"}
	res, err := New(fc, "openai").Generate(context.Background(), Request{Requirement: "write a blog post"})
	require.NoError(t, err)

	assert.Equal(t, "# Task\nPlease write a blog post.", res.Prompt)
	assert.False(t, res.Fallback)
	assert.Equal(t, FormatStandard, res.Format)
	assert.Equal(t, "openai", res.Provider)
	assert.Contains(t, fc.got.User, "USER REQUIREMENT: write a blog post")
	assert.Contains(t, fc.got.System, "expert prompt engineer")
	assert.Equal(t, DefaultTemperature, fc.got.Temperature)
	assert.Equal(t, DefaultMaxTokens, fc.got.MaxTokens)
	assert.NotEmpty(t, res.Quality.Grade)
}

func TestGenerateExpertPanel(t *testing.T) {
	fc := &fakeCompleter{reply: "panel"}
	_, err := New(fc, "openai").Generate(context.Background(), Request{
		Requirement: "discuss Go generics",
		Format:      FormatExpertPanel,
		Experts:     5,
		Temperature: 0.2,
		MaxTokens:   300,
	})
	require.NoError(t, err)
	assert.Contains(t, fc.got.System, "simulate 5 experts")
	assert.Contains(t, fc.got.User, "simulate 5 experts discussing")
	assert.Equal(t, 0.2, fc.got.Temperature)
	assert.Equal(t, 300, fc.got.MaxTokens)
}

func TestGenerateExamplesDefaults(t *testing.T) {
	fc := &fakeCompleter{reply: "few shot"}
	_, err := New(fc, "openai").Generate(context.Background(), Request{Requirement: "summarize text", Format: FormatExamples})
	require.NoError(t, err)
	assert.Contains(t, fc.got.User, "Example 1:\nInput: Write a poem about nature")
	assert.Contains(t, fc.got.User, "Example 2:\nInput: Explain quantum physics")
}

func TestGenerateFallback(t *testing.T) {
	tests := []struct {
		name      string
		completer llm.Completer
	}{
		{"no completer", nil},
		{"completer error", &fakeCompleter{err: errors.New("401 unauthorized")}},
		{"empty reply", &fakeCompleter{reply: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(tt.completer, "").Generate(context.Background(), Request{Requirement: "explain recursion"})
			require.NoError(t, err)
			assert.True(t, res.Fallback)
			assert.True(t, strings.HasPrefix(res.Prompt, "# Expert Prompt Format"))
			assert.Contains(t, res.Prompt, "explain recursion")
		})
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fc := &fakeCompleter{err: context.Canceled}
	_, err := New(fc, "openai").Generate(ctx, Request{Requirement: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateInvalid(t *testing.T) {
	g := New(nil, "")
	_, err := g.Generate(context.Background(), Request{Requirement: "  "})
	assert.ErrorIs(t, err, ErrEmptyRequirement)

	_, err = g.Generate(context.Background(), Request{Requirement: "x", Format: "haiku"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatStandard, f)

	f, err = ParseFormat("Expert-Panel")
	require.NoError(t, err)
	assert.Equal(t, FormatExpertPanel, f)
}

func TestLoadExamples(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"input":"a","output":"b"}]`), 0o600))
	got, err := LoadExamples(good)
	require.NoError(t, err)
	assert.Equal(t, []Example{{Input: "a", Output: "b"}}, got)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"input":"a"}]`), 0o600))
	_, err = LoadExamples(bad)
	assert.Error(t, err)

	_, err = LoadExamples(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
