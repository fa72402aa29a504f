package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptforge/promptforge/internal/advisor"
	"github.com/promptforge/promptforge/internal/generate"
	"github.com/promptforge/promptforge/internal/store"
)

// isolate points the CLI at a fresh database with no LLM provider and no
// provider keys from the environment.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("PROMPTFORGE_DB_DRIVER", "sqlite3")
	t.Setenv("PROMPTFORGE_DB_DSN", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("PROMPTFORGE_LLM_PROVIDER", "")
	t.Setenv("PROMPTFORGE_LLM_API_KEY", "")
	for _, v := range []string{"OPENAI_API_KEY", "DEEPSEEK_API_KEY", "ANTHROPIC_API_KEY", "GOOGLE_API_KEY"} {
		t.Setenv(v, "")
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeJSON(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "analyze", "--json", "我想用Python创建一个函数来处理CSV文件")
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}
	var advice advisor.Advice
	if err := json.Unmarshal([]byte(out), &advice); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if advice.Classification.TaskType != "code_generation" || advice.Classification.Language != "Python" {
		t.Errorf("classification = %+v", advice.Classification)
	}
	if len(advice.Recommendations) == 0 {
		t.Errorf("recommendations = %+v", advice.Recommendations)
	}
}

func TestAnalyzeText(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "analyze", "review", "this", "go", "code")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "task type:") || !strings.Contains(out, "Tips") {
		t.Errorf("output = %q", out)
	}
}

func TestAnalyzeInputErrors(t *testing.T) {
	isolate(t)
	if _, err := run(t, "", "analyze"); err == nil {
		t.Error("expected an error without input")
	}
	path := filepath.Join(t.TempDir(), "req.txt")
	if err := os.WriteFile(path, []byte("fix the bug"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "analyze", "--file", path, "extra"); err == nil {
		t.Error("expected an error for both --file and arguments")
	}
	if out, err := run(t, "", "analyze", "--file", path); err != nil {
		t.Errorf("analyze --file: %v\n%s", err, out)
	}
}

func TestEvaluateMarkdown(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "evaluate", "--requirement", "sort numbers", "Write a Python function that sorts a list of numbers.")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !strings.HasPrefix(out, "# Prompt quality report") {
		t.Errorf("output = %q", out)
	}
}

func TestGenerateFallbackSavesHistory(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "generate", "--json", "explain recursion")
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	var res generate.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !res.Fallback {
		t.Error("expected fallback without a provider")
	}

	out, err = run(t, "", "history", "list", "--json")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	var entries []store.HistoryEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].Requirement != "explain recursion" {
		t.Fatalf("entries = %+v", entries)
	}

	if out, err := run(t, "", "history", "show", entries[0].ID); err != nil || !strings.Contains(out, "Expert Prompt Format") {
		t.Errorf("history show: %v\n%s", err, out)
	}
	if _, err := run(t, "", "history", "delete", entries[0].ID); err != nil {
		t.Errorf("history delete: %v", err)
	}
	if _, err := run(t, "", "history", "delete", entries[0].ID); err == nil {
		t.Error("expected an error deleting a missing entry")
	}
	if out, err := run(t, "", "history", "clear"); err != nil || !strings.Contains(out, "deleted 0 entries") {
		t.Errorf("history clear: %v\n%s", err, out)
	}
}

func TestGenerateNoSave(t *testing.T) {
	isolate(t)
	if _, err := run(t, "", "generate", "--no-save", "write a poem"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	out, err := run(t, "", "history", "list", "--json")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("history = %s, want empty", out)
	}
}

func TestGenerateBadFormat(t *testing.T) {
	isolate(t)
	if _, err := run(t, "", "generate", "--format", "limerick", "x"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestTemplatesCommands(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "templates", "list", "--task-type", "code_generation")
	if err != nil {
		t.Fatalf("templates list: %v", err)
	}
	if !strings.Contains(out, "function_generation") || strings.Contains(out, "code_review") {
		t.Errorf("list output = %q", out)
	}

	if _, err := run(t, "", "templates", "show", "missing"); err == nil {
		t.Error("expected an error for an unknown template")
	}

	out, err = run(t, "", "templates", "render", "code_review",
		"--set", "language=Go", "--set", "code_content=func f() {}", "--set", "context_info=hot path")
	if err != nil {
		t.Fatalf("templates render: %v", err)
	}
	if !strings.Contains(out, "Review the following Go code.") {
		t.Errorf("render output = %q", out)
	}

	if _, err := run(t, "", "templates", "render", "code_review", "--set", "language=Go"); err == nil {
		t.Error("expected a missing placeholder error")
	}
	if _, err := run(t, "", "templates", "render", "code_review", "--set", "novalue"); err == nil {
		t.Error("expected an error for a malformed --set")
	}
}

func TestParseBindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.yaml")
	if err := os.WriteFile(path, []byte("language: Go\ncode_content: x := 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := parseBindings(path, []string{"language=Rust", "context_info=a=b"})
	if err != nil {
		t.Fatalf("parseBindings: %v", err)
	}
	want := map[string]string{"language": "Rust", "code_content": "x := 1", "context_info": "a=b"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestKeysCommands(t *testing.T) {
	isolate(t)
	key := "sk-" + strings.Repeat("a", 48)

	if _, err := run(t, "", "keys", "set", "openai", "sk-bad"); err == nil {
		t.Error("expected a validation error")
	}
	out, err := run(t, key+"\n", "keys", "set", "openai")
	if err != nil {
		t.Fatalf("keys set: %v", err)
	}
	if strings.Contains(out, key) {
		t.Error("keys set echoed the full key")
	}

	out, err = run(t, "", "keys", "list")
	if err != nil {
		t.Fatalf("keys list: %v", err)
	}
	if !strings.Contains(out, "openai") || !strings.Contains(out, "store") || strings.Contains(out, key) {
		t.Errorf("keys list = %q", out)
	}

	if _, err := run(t, "", "keys", "remove", "openai"); err != nil {
		t.Errorf("keys remove: %v", err)
	}
	if _, err := run(t, "", "keys", "remove", "openai"); err == nil {
		t.Error("expected an error removing a missing key")
	}
}

func TestTokensCommands(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "tokens", "create", "ci", "--expires-in", "1h")
	if err != nil {
		t.Fatalf("tokens create: %v", err)
	}
	if !strings.Contains(out, "pf_") {
		t.Errorf("create output = %q", out)
	}

	out, err = run(t, "", "tokens", "list")
	if err != nil {
		t.Fatalf("tokens list: %v", err)
	}
	if !strings.Contains(out, "ci") || !strings.Contains(out, "active") {
		t.Errorf("list output = %q", out)
	}

	if _, err := run(t, "", "tokens", "revoke", "missing-id"); err == nil {
		t.Error("expected an error revoking a missing token")
	}
}

func TestMigrateAndVersion(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "migrate")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "schema version 3") {
		t.Errorf("migrate output = %q", out)
	}

	out, err = run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "promptforge dev") {
		t.Errorf("version output = %q", out)
	}
}
