package core

import "errors"

// Sentinel errors for every contract violation in the schema and query
// layers. All validation failures are raised synchronously at the call
// that violates the contract and wrap one of these, so callers can match
// with errors.Is. Driver-level failures are never wrapped; they propagate
// unchanged.
var (
	// ErrInvalidIdentifier marks a table, column, or alias containing
	// whitespace or a quote character. These positions cannot be
	// parameterized, so the text is rejected outright.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrTypeMismatch marks a default or bound value of the wrong
	// semantic type for its field.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsafeDefault marks a string or byte default containing a single
	// quote or backslash. Defaults are interpolated as DDL literals, never
	// parameterized, so such values are refused at construction.
	ErrUnsafeDefault = errors.New("unsafe default value")

	// ErrUnknownColumn marks a predicate or ordering referencing a column
	// the bound model does not declare.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidOperator marks an unsupported where operator or an
	// operator/value combination that cannot be rendered (= with nil,
	// IS with a non-nil value, IN with a scalar).
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrInvalidQueryState marks a builder protocol violation: closing a
	// group that is not open or empty, re-setting limit/offset, or
	// executing while a group is open.
	ErrInvalidQueryState = errors.New("invalid query state")

	// ErrOutOfRange marks a limit or offset outside its allowed bounds.
	ErrOutOfRange = errors.New("out of range")

	// ErrEmptyUpdate marks an update call with no field values.
	ErrEmptyUpdate = errors.New("no fields to update")

	// ErrImmutablePrimaryKey marks an attempt to update the primary key.
	ErrImmutablePrimaryKey = errors.New("primary key is immutable")

	// ErrUnresolvedReference marks a foreign key whose string-named target
	// model was never registered by DDL-render time.
	ErrUnresolvedReference = errors.New("unresolved model reference")
)
