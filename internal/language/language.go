package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// DefaultCode is used when no result language is configured.
const DefaultCode = "en-US"

// Canonical normalizes a language code to its BCP 47 form.
// Underscore separators are accepted for compatibility with POSIX-style
// locale strings. An empty code resolves to DefaultCode.
func Canonical(code string) (string, error) {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return DefaultCode, nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("parse language code %q: %w", code, err)
	}
	return tag.String(), nil
}
