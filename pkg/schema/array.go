package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// ArrayField stores a list of a single element kind. Its database type is
// the element's type suffixed with [], and a default list renders as a
// bracketed literal of the element renderings.
type ArrayField struct {
	column
	elem *column
}

// NewArray constructs an array column whose elements follow the given
// prototype field, e.g. NewArray(mustText(), ...) for text[]. Every
// element of a default list must satisfy the element kind's type check.
func NewArray(elem Field, opts ...Option) (*ArrayField, error) {
	base, ok := elem.(interface{ base() *column })
	if !ok || base.base().check == nil {
		return nil, fmt.Errorf("%w: array element must be a concrete field, got %T", core.ErrTypeMismatch, elem)
	}
	ec := base.base()

	f := &ArrayField{column: newColumn(ec.dbType+"[]", opts), elem: ec}
	f.check = f.checkList
	f.lit = f.listLiteral
	if err := f.checkDefault(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *ArrayField) checkList(v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return fmt.Errorf("%w: array value must be a slice, got %T", core.ErrTypeMismatch, v)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := f.elem.check(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (f *ArrayField) listLiteral(v any) (string, error) {
	if err := f.checkList(v); err != nil {
		return "", err
	}
	rv := reflect.ValueOf(v)
	parts := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		lit, err := f.elem.lit(rv.Index(i).Interface())
		if err != nil {
			return "", err
		}
		parts = append(parts, lit)
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}
