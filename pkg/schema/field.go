package schema

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// DefaultSchema is the Postgres schema every table lives in.
const DefaultSchema = "public"

// MaxFieldLength is the varchar length used when a CharField does not
// specify one.
const MaxFieldLength = 255

// Field is one typed column descriptor. Implementations are immutable
// after construction; a Field is shared by DDL rendering and by predicate
// validation and must not be mutated once a Model holds it.
type Field interface {
	// Create renders the column definition fragment for the given table
	// and column, plus an optional standalone constraint statement
	// (foreign key, trigger) to execute after CREATE TABLE.
	Create(table, column string) (columnDDL string, constraint string, err error)

	// DBType returns the Postgres type this field renders as.
	DBType() string

	// Nullable reports whether NULL values are allowed.
	Nullable() bool

	// Unique reports whether the column carries a UNIQUE constraint.
	Unique() bool

	// Default returns the declared default value, if any.
	Default() (any, bool)
}

// Option configures a field at construction.
type Option func(*column)

// Null allows NULL values for the column.
func Null() Option {
	return func(c *column) { c.nullable = true }
}

// Unique adds a UNIQUE constraint to the column.
func Unique() Option {
	return func(c *column) { c.unique = true }
}

// Default declares a default value. The value's semantic type is checked
// by the field constructor; string and byte defaults must not contain a
// single quote or backslash because defaults are interpolated as DDL
// literals, never parameterized.
func Default(v any) Option {
	return func(c *column) {
		c.def = v
		c.hasDefault = true
	}
}

// MaxLength sets the length of a CharField. Other kinds ignore it.
func MaxLength(n int) Option {
	return func(c *column) { c.length = n }
}

// AutoNow makes a DateTimeField default to CURRENT_TIMESTAMP and refresh
// itself on every update of the row. Other kinds ignore it.
func AutoNow() Option {
	return func(c *column) { c.autoNow = true }
}

// column carries the state shared by every field kind. Concrete kinds
// embed it and set dbType plus the literal/check hooks for their semantic
// type.
type column struct {
	dbType     string
	nullable   bool
	unique     bool
	def        any
	hasDefault bool
	length     int
	autoNow    bool
	pkCapable  bool

	// check validates a value's semantic type; lit renders a validated
	// value as a DDL literal.
	check func(v any) error
	lit   func(v any) (string, error)
}

func newColumn(dbType string, opts []Option) column {
	c := column{dbType: dbType}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c *column) DBType() string      { return c.dbType }
func (c *column) Nullable() bool      { return c.nullable }
func (c *column) Unique() bool        { return c.unique }
func (c *column) Default() (any, bool) { return c.def, c.hasDefault }

// base gives sibling types in this package access to the embedded state,
// e.g. a foreign key copying its target primary key's type and literal
// renderer.
func (c *column) base() *column { return c }

// checkDefault runs the kind's semantic type check over the declared
// default. Constructors call it once the check hook is installed.
func (c *column) checkDefault() error {
	if !c.hasDefault {
		return nil
	}
	return c.check(c.def)
}

// Create renders `"<col>" <type>[(<len>)] [DEFAULT <literal>] <tail>`.
// The tail is PRIMARY KEY for the id column, else UNIQUE, else NOT NULL,
// else nothing. Kinds with constraint statements override this method.
func (c *column) Create(table, col string) (string, string, error) {
	var lit string
	if c.hasDefault {
		rendered, err := c.lit(c.def)
		if err != nil {
			return "", "", err
		}
		lit = rendered
	}
	ddl, err := c.render(table, col, lit)
	return ddl, "", err
}

// render assembles the column fragment with an already-rendered default
// literal (empty means no default).
func (c *column) render(table, col, defaultLit string) (string, error) {
	if err := core.ValidateIdentifier(table); err != nil {
		return "", err
	}
	if err := core.ValidateIdentifier(col); err != nil {
		return "", err
	}
	if c.dbType == "" {
		return "", fmt.Errorf("%w: field has no database type", core.ErrTypeMismatch)
	}
	if col == "id" && !c.pkCapable {
		return "", fmt.Errorf("%w: %s field cannot be the primary key", core.ErrTypeMismatch, c.dbType)
	}

	var b strings.Builder
	b.WriteString(core.QuoteIdentifier(col))
	b.WriteByte(' ')
	b.WriteString(c.dbType)
	if c.length > 0 {
		fmt.Fprintf(&b, "(%d)", c.length)
	}
	if defaultLit != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(defaultLit)
	}

	switch {
	case col == "id":
		b.WriteString(" PRIMARY KEY")
	case c.unique:
		b.WriteString(" UNIQUE")
	case !c.nullable:
		b.WriteString(" NOT NULL")
	}

	return b.String(), nil
}

// rejectUnsafe refuses literal text that could escape its quoting in DDL.
func rejectUnsafe(s string) error {
	if strings.ContainsAny(s, `'\`) {
		return fmt.Errorf("%w: %q contains a quote or backslash", core.ErrUnsafeDefault, s)
	}
	return nil
}

// quoteLiteral single-quotes an already-vetted string literal.
func quoteLiteral(s string) string {
	return "'" + s + "'"
}
