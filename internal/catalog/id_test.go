package catalog

import (
	"errors"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "single letter", id: "a"},
		{name: "single digit", id: "5"},
		{name: "underscores", id: "function_generation"},
		{name: "hyphens", id: "sql-query"},
		{name: "digits and letters", id: "gpt4_review"},

		{name: "empty", id: "", wantErr: ErrIDFormat},
		{name: "uppercase", id: "CodeReview", wantErr: ErrIDFormat},
		{name: "leading underscore", id: "_draft", wantErr: ErrIDFormat},
		{name: "trailing hyphen", id: "review-", wantErr: ErrIDFormat},
		{name: "space", id: "code review", wantErr: ErrIDFormat},
		{name: "slash", id: "code/review", wantErr: ErrIDFormat},
		{name: "period", id: "code.review", wantErr: ErrIDFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateID(%q) = %v, want %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestBuiltinIDsValid(t *testing.T) {
	for _, tmpl := range Builtin() {
		if err := ValidateID(tmpl.ID); err != nil {
			t.Errorf("built-in %q: %v", tmpl.ID, err)
		}
	}
}
