package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingPlaceholder matches every *MissingPlaceholderError.
var ErrMissingPlaceholder = errors.New("missing placeholder binding")

// MissingPlaceholderError names the first placeholder in a template body
// that has no binding.
type MissingPlaceholderError struct {
	TemplateID string
	Name       string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("template %q: no binding for placeholder {%s}", e.TemplateID, e.Name)
}

func (e *MissingPlaceholderError) Is(target error) bool {
	return target == ErrMissingPlaceholder
}

// Render fills every {name} placeholder in the body of template id from
// bindings. {{ and }} render as literal braces. Bindings that the body does
// not reference are ignored.
func (c *Catalog) Render(id string, bindings map[string]string) (string, error) {
	t, ok := c.byID[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return render(t.ID, t.Body, bindings)
}

// Placeholders returns the distinct placeholder names referenced by body,
// in order of first appearance.
func Placeholders(body string) []string {
	var names []string
	seen := make(map[string]bool)
	scan(body, func(lit string) {}, func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})
	return names
}

func render(id, body string, bindings map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(body))
	var missing string
	scan(body, func(lit string) {
		b.WriteString(lit)
	}, func(name string) {
		v, ok := bindings[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return
		}
		b.WriteString(v)
	})
	if missing != "" {
		return "", &MissingPlaceholderError{TemplateID: id, Name: missing}
	}
	return b.String(), nil
}

// scan walks body, reporting literal runs and placeholder names in order.
// A brace that does not open a well-formed placeholder is literal text.
func scan(body string, literal func(string), placeholder func(string)) {
	start := 0
	i := 0
	for i < len(body) {
		switch body[i] {
		case '{':
			if i+1 < len(body) && body[i+1] == '{' {
				literal(body[start:i] + "{")
				i += 2
				start = i
				continue
			}
			end := strings.IndexByte(body[i+1:], '}')
			if end < 0 {
				i++
				continue
			}
			name := body[i+1 : i+1+end]
			if !isIdentifier(name) {
				i++
				continue
			}
			literal(body[start:i])
			placeholder(name)
			i += end + 2
			start = i
		case '}':
			if i+1 < len(body) && body[i+1] == '}' {
				literal(body[start:i] + "}")
				i += 2
				start = i
				continue
			}
			i++
		default:
			i++
		}
	}
	literal(body[start:])
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
