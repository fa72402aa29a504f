package generate

import (
	"bytes"
	"embed"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(template.New("prompts").
	Funcs(template.FuncMap{"add": func(a, b int) int { return a + b }}).
	ParseFS(promptFS, "prompts/*.tmpl"))

// promptData holds the variables available in the prompt templates.
type promptData struct {
	Requirement string
	Experts     int
	Examples    []Example
}

// renderPrompt executes the named embedded template with the given data.
func renderPrompt(name string, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
