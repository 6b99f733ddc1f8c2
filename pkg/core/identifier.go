package core

import (
	"fmt"
	"strings"
)

// ValidateIdentifier checks a table, column, or alias name before it is
// interpolated into SQL text. Identifiers cannot be parameterized, so any
// character that could terminate the quoted form is rejected: spaces,
// single quotes, and double quotes. Empty names are rejected too.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidIdentifier)
	}
	if strings.ContainsAny(name, ` '"`) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// QuoteIdentifier wraps a previously validated identifier in double
// quotes, the form used for every table, column, and alias in generated
// SQL.
func QuoteIdentifier(name string) string {
	return `"` + name + `"`
}
