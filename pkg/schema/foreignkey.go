package schema

import (
	"fmt"

	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// ForeignKeyField references another model's primary key. The target is
// given either as a *Model or as a model name resolved lazily against the
// process registry at DDL-render time, so declaration order between
// models does not matter (forward, self, and circular references work).
type ForeignKeyField struct {
	column
	target     *Model
	targetName string
}

// NewForeignKey constructs a foreign key column for the given target,
// either a *Model or a string model name. A default, if given, must match
// the target primary key's semantic type; with a string target that check
// is deferred until the target can be resolved.
func NewForeignKey(target any, opts ...Option) (*ForeignKeyField, error) {
	f := &ForeignKeyField{column: newColumn("", opts)}
	switch t := target.(type) {
	case *Model:
		if t == nil {
			return nil, fmt.Errorf("%w: foreign key target model is nil", core.ErrTypeMismatch)
		}
		f.target = t
		if err := f.adoptTarget(); err != nil {
			return nil, err
		}
	case string:
		if err := core.ValidateIdentifier(t); err != nil {
			return nil, err
		}
		f.targetName = t
	default:
		return nil, fmt.Errorf("%w: foreign key target must be a *Model or model name, got %T", core.ErrTypeMismatch, target)
	}
	return f, nil
}

// adoptTarget copies the resolved target primary key's type and literal
// hooks onto this column and validates any pending default against them.
func (f *ForeignKeyField) adoptTarget() error {
	pk, ok := f.target.Field("id")
	if !ok {
		return fmt.Errorf("%w: model %s has no primary key", core.ErrUnresolvedReference, f.target.Name())
	}
	base, ok := pk.(interface{ base() *column })
	if !ok {
		return fmt.Errorf("%w: model %s primary key is not a concrete field", core.ErrTypeMismatch, f.target.Name())
	}
	pkc := base.base()
	f.dbType = pkc.dbType
	f.length = pkc.length
	f.check = pkc.check
	f.lit = pkc.lit
	return f.checkDefault()
}

// resolve looks up a string-named target in the registry. Models register
// at declaration, so by render time the target must exist.
func (f *ForeignKeyField) resolve() error {
	if f.target != nil {
		return nil
	}
	m, ok := Lookup(f.targetName)
	if !ok {
		return fmt.Errorf("%w: model %q is not registered", core.ErrUnresolvedReference, f.targetName)
	}
	f.target = m
	return f.adoptTarget()
}

// Create renders the column with the target primary key's type and a
// foreign key constraint statement referencing the target table.
func (f *ForeignKeyField) Create(table, col string) (string, string, error) {
	if err := f.resolve(); err != nil {
		return "", "", err
	}
	ddl, _, err := f.column.Create(table, col)
	if err != nil {
		return "", "", err
	}
	constraint := fmt.Sprintf(
		"ALTER TABLE %s.%q ADD CONSTRAINT %q FOREIGN KEY (%q) REFERENCES %s (%q)",
		DefaultSchema, table, fmt.Sprintf("%s_%s_fkey", table, col), col,
		f.target.SchemaTable(), "id")
	return ddl, constraint, nil
}
