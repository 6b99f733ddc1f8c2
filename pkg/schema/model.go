package schema

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// Attribute is one named field of a model.
type Attribute struct {
	Name  string
	Field Field
}

// Model maps an ordered set of named fields to a table. The attribute
// named "id" is the primary key. Models are immutable once constructed
// and register themselves by name so foreign keys can resolve string
// targets lazily.
type Model struct {
	name   string
	table  string
	attrs  []Attribute
	fields map[string]Field
}

// New builds and registers a model. The table name is the snake_cased
// model name ("QueryTest" becomes "query_test"). Every attribute name is
// validated as an identifier, duplicates are rejected, and an "id"
// attribute is required.
func New(name string, attrs ...Attribute) (*Model, error) {
	if err := core.ValidateIdentifier(name); err != nil {
		return nil, err
	}
	if len(attrs) == 0 {
		return nil, fmt.Errorf("%w: model %s declares no fields", core.ErrTypeMismatch, name)
	}

	m := &Model{
		name:   name,
		table:  snakeCase(name),
		attrs:  attrs,
		fields: make(map[string]Field, len(attrs)),
	}
	for _, a := range attrs {
		if err := core.ValidateIdentifier(a.Name); err != nil {
			return nil, err
		}
		if a.Field == nil {
			return nil, fmt.Errorf("%w: attribute %q has no field", core.ErrTypeMismatch, a.Name)
		}
		if _, dup := m.fields[a.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate attribute %q", core.ErrInvalidIdentifier, a.Name)
		}
		m.fields[a.Name] = a.Field
	}
	if _, ok := m.fields["id"]; !ok {
		return nil, fmt.Errorf("%w: model %s has no id attribute", core.ErrTypeMismatch, name)
	}

	register(m)
	return m, nil
}

// Name returns the declared model name.
func (m *Model) Name() string { return m.name }

// Table returns the bare snake_cased table name.
func (m *Model) Table() string { return m.table }

// SchemaTable returns the schema-qualified quoted table reference, e.g.
// `public."query_test"`.
func (m *Model) SchemaTable() string {
	return DefaultSchema + "." + core.QuoteIdentifier(m.table)
}

// HasColumn reports whether the model declares the named attribute.
func (m *Model) HasColumn(name string) bool {
	_, ok := m.fields[name]
	return ok
}

// Field returns the named attribute's field.
func (m *Model) Field(name string) (Field, bool) {
	f, ok := m.fields[name]
	return f, ok
}

// Attributes returns the declared attributes in order.
func (m *Model) Attributes() []Attribute {
	return m.attrs
}

// snakeCase converts a CamelCase model name to its table form: an
// underscore goes before each upper-case letter that follows a lower-case
// letter or digit, or that precedes a lower-case letter inside an acronym
// run ("HTTPServer" becomes "http_server").
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (nextLower && !unicode.IsLower(runes[i-1])) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
