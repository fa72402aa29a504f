package catalog

import (
	"errors"
	"regexp"
)

var (
	// ErrIDFormat is returned for template ids that are not lowercase
	// letters, digits, underscores and hyphens.
	ErrIDFormat = errors.New("template id must contain only lowercase alphanumeric characters, underscores and hyphens, and must start and end with a letter or digit")

	idPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9_\-]*[a-z0-9])?$`)
)

// ValidateID checks that id can be used as a path segment in the template
// API. It does not check uniqueness.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return ErrIDFormat
	}
	return nil
}
