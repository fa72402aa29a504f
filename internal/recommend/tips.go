package recommend

import (
	"fmt"

	"github.com/promptforge/promptforge/internal/catalog"
	"github.com/promptforge/promptforge/internal/classify"
)

// Tips returns general prompt-writing advice for a classified request.
func Tips(c classify.Classification) []string {
	var tips []string
	switch c.Tool {
	case catalog.ToolCursor:
		tips = append(tips, "In Cursor, give project context and the file structure for better results.")
	case catalog.ToolGitHubCopilot:
		tips = append(tips, "Describe the requirement as code comments so Copilot picks up your intent.")
	}
	if c.Complexity == classify.ComplexityComplex {
		tips = append(tips, "Break complex tasks into steps and make each step explicit.")
	}
	if c.LanguageKnown() {
		tips = append(tips, fmt.Sprintf("State the %s version and the frameworks you use.", c.Language))
	}
	return append(tips,
		"Concrete input and output examples noticeably improve accuracy.",
		"Explain where the code will be used and which constraints apply.",
	)
}
