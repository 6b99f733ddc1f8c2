package schema

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// BooleanField stores true/false.
type BooleanField struct {
	column
}

// NewBoolean constructs a boolean column. A default, if given, must be a
// bool.
func NewBoolean(opts ...Option) (*BooleanField, error) {
	f := &BooleanField{column: newColumn("boolean", opts)}
	f.check = checkBool
	f.lit = boolLiteral
	if err := f.checkDefault(); err != nil {
		return nil, err
	}
	return f, nil
}

func checkBool(v any) error {
	if _, ok := v.(bool); !ok {
		return fmt.Errorf("%w: boolean value must be a bool, got %T", core.ErrTypeMismatch, v)
	}
	return nil
}

func boolLiteral(v any) (string, error) {
	if err := checkBool(v); err != nil {
		return "", err
	}
	return strconv.FormatBool(v.(bool)), nil
}

// IntField stores integers.
type IntField struct {
	column
}

// NewInt constructs an integer column. A default, if given, must be an
// int or int64.
func NewInt(opts ...Option) (*IntField, error) {
	f := &IntField{column: newColumn("integer", opts)}
	f.check = checkInt
	f.lit = intLiteral
	if err := f.checkDefault(); err != nil {
		return nil, err
	}
	return f, nil
}

func checkInt(v any) error {
	switch v.(type) {
	case int, int32, int64:
		return nil
	}
	return fmt.Errorf("%w: integer value must be an int, got %T", core.ErrTypeMismatch, v)
}

func intLiteral(v any) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	}
	return "", fmt.Errorf("%w: integer value must be an int, got %T", core.ErrTypeMismatch, v)
}

// FloatField stores double-precision floats.
type FloatField struct {
	column
}

// NewFloat constructs a float column. A default, if given, must be a
// float32 or float64.
func NewFloat(opts ...Option) (*FloatField, error) {
	f := &FloatField{column: newColumn("double precision", opts)}
	f.check = checkFloat
	f.lit = floatLiteral
	if err := f.checkDefault(); err != nil {
		return nil, err
	}
	return f, nil
}

func checkFloat(v any) error {
	switch v.(type) {
	case float32, float64:
		return nil
	}
	return fmt.Errorf("%w: float value must be a float, got %T", core.ErrTypeMismatch, v)
}

func floatLiteral(v any) (string, error) {
	switch n := v.(type) {
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("%w: float value must be a float, got %T", core.ErrTypeMismatch, v)
}
