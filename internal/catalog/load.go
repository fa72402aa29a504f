package catalog

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

type templateFile struct {
	Templates []Template `json:"templates"`
}

// LoadFile reads extra templates from a YAML or JSON document of the form
// {templates: [...]}. Templates that omit variables get them from their body.
func LoadFile(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading templates file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a templates document. See LoadFile.
func Parse(data []byte) ([]Template, error) {
	var doc templateFile
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	for i := range doc.Templates {
		if len(doc.Templates[i].Variables) == 0 {
			doc.Templates[i].Variables = Placeholders(doc.Templates[i].Body)
		}
		if doc.Templates[i].Tool == "" {
			doc.Templates[i].Tool = ToolGeneral
		}
	}
	return doc.Templates, nil
}
