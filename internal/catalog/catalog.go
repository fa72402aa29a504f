// Package catalog is the read-only registry of prompt templates.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a template id is not registered.
	ErrNotFound = errors.New("template not found")

	// ErrInvalidTemplate is returned by New when a template cannot be registered.
	ErrInvalidTemplate = errors.New("invalid template")
)

// Template is a prompt skeleton with named {placeholders}.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TaskType    TaskType `json:"task_type"`
	Tool        Tool     `json:"tool"`
	Body        string   `json:"body"`
	Variables   []string `json:"variables"`
	Tips        []string `json:"tips,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

func (t Template) clone() Template {
	t.Variables = append([]string(nil), t.Variables...)
	t.Tips = append([]string(nil), t.Tips...)
	t.Examples = append([]string(nil), t.Examples...)
	return t
}

// Catalog is an immutable, ordered set of templates. It is safe for
// concurrent use; every accessor returns copies.
type Catalog struct {
	order []string
	byID  map[string]Template
}

// New builds a catalog from templates in registration order.
func New(templates ...Template) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Template, len(templates))}
	for _, t := range templates {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: empty id (name %q)", ErrInvalidTemplate, t.Name)
		}
		if err := ValidateID(id); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTemplate, id, err)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidTemplate, id)
		}
		if !t.TaskType.Valid() {
			return nil, fmt.Errorf("%w: %q: %w: %q", ErrInvalidTemplate, id, ErrUnknownTaskType, t.TaskType)
		}
		if !t.Tool.Valid() {
			return nil, fmt.Errorf("%w: %q: %w: %q", ErrInvalidTemplate, id, ErrUnknownTool, t.Tool)
		}
		t.ID = id
		c.byID[id] = t.clone()
		c.order = append(c.order, id)
	}
	return c, nil
}

// Default returns a catalog holding the built-in templates.
func Default() *Catalog {
	c, err := New(Builtin()...)
	if err != nil {
		panic("catalog: invalid built-in table: " + err.Error())
	}
	return c
}

// Len returns the number of registered templates.
func (c *Catalog) Len() int { return len(c.order) }

// Get returns the template registered under id, or ErrNotFound.
func (c *Catalog) Get(id string) (Template, error) {
	t, ok := c.byID[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return t.clone(), nil
}

// All returns every template in registration order.
func (c *Catalog) All() []Template {
	return c.filter(func(Template) bool { return true })
}

// FilterByTaskType returns the templates tagged with taskType.
func (c *Catalog) FilterByTaskType(taskType TaskType) []Template {
	return c.filter(func(t Template) bool { return t.TaskType == taskType })
}

// FilterByTool returns the templates tagged with tool or with ToolGeneral.
func (c *Catalog) FilterByTool(tool Tool) []Template {
	return c.filter(func(t Template) bool { return t.Tool == tool || t.Tool == ToolGeneral })
}

func (c *Catalog) filter(keep func(Template) bool) []Template {
	var out []Template
	for _, id := range c.order {
		t := c.byID[id]
		if keep(t) {
			out = append(out, t.clone())
		}
	}
	return out
}
