package assets

import (
	"fmt"
	"regexp"
)

// templateName is the shape of a page template name: one path element
// without extension.
var templateName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateTemplateName rejects names that could leave the template
// directory or pick another extension than .html.
func ValidateTemplateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTemplateName)
	}
	if !templateName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTemplateName, name)
	}
	return nil
}
