package schema

import (
	"fmt"

	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// CharField stores bounded text as varchar. The length defaults to
// MaxFieldLength when not set with MaxLength.
type CharField struct {
	column
}

// NewChar constructs a varchar column. A default, if given, must be a
// string free of single quotes and backslashes.
func NewChar(opts ...Option) (*CharField, error) {
	f := &CharField{column: newColumn("varchar", opts)}
	if f.length == 0 {
		f.length = MaxFieldLength
	}
	f.check = checkString
	f.lit = stringLiteral
	if err := f.checkDefault(); err != nil {
		return nil, err
	}
	return f, nil
}

// TextField stores unbounded text.
type TextField struct {
	column
}

// NewText constructs a text column. A default, if given, must be a string
// free of single quotes and backslashes.
func NewText(opts ...Option) (*TextField, error) {
	f := &TextField{column: newColumn("text", opts)}
	f.check = checkString
	f.lit = stringLiteral
	if err := f.checkDefault(); err != nil {
		return nil, err
	}
	return f, nil
}

func checkString(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: string value must be a string, got %T", core.ErrTypeMismatch, v)
	}
	return rejectUnsafe(s)
}

func stringLiteral(v any) (string, error) {
	if err := checkString(v); err != nil {
		return "", err
	}
	return quoteLiteral(v.(string)), nil
}

// ByteField stores raw bytes as bytea.
type ByteField struct {
	column
}

// NewByte constructs a bytea column. A default, if given, must be a
// []byte free of single quotes and backslashes.
func NewByte(opts ...Option) (*ByteField, error) {
	f := &ByteField{column: newColumn("bytea", opts)}
	f.check = checkBytes
	f.lit = byteLiteral
	if err := f.checkDefault(); err != nil {
		return nil, err
	}
	return f, nil
}

func checkBytes(v any) error {
	b, ok := v.([]byte)
	if !ok {
		return fmt.Errorf("%w: byte value must be a []byte, got %T", core.ErrTypeMismatch, v)
	}
	return rejectUnsafe(string(b))
}

func byteLiteral(v any) (string, error) {
	if err := checkBytes(v); err != nil {
		return "", err
	}
	return quoteLiteral(string(v.([]byte))), nil
}
