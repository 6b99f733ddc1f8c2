package schema

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// UUIDField stores UUIDs. It is the only concrete kind that may serve as
// the primary key: models conventionally declare `id` as a UUIDField and
// Model.Create generates a value when none is supplied.
type UUIDField struct {
	column
}

// NewUUID constructs a uuid column. A default, if given, must be a
// uuid.UUID.
func NewUUID(opts ...Option) (*UUIDField, error) {
	f := &UUIDField{column: newColumn("uuid", opts)}
	f.pkCapable = true
	f.check = checkUUID
	f.lit = uuidLiteral
	if err := f.checkDefault(); err != nil {
		return nil, err
	}
	return f, nil
}

func checkUUID(v any) error {
	if _, ok := v.(uuid.UUID); !ok {
		return fmt.Errorf("%w: uuid value must be a uuid.UUID, got %T", core.ErrTypeMismatch, v)
	}
	return nil
}

func uuidLiteral(v any) (string, error) {
	u, ok := v.(uuid.UUID)
	if !ok {
		return "", fmt.Errorf("%w: uuid value must be a uuid.UUID, got %T", core.ErrTypeMismatch, v)
	}
	return u.String(), nil
}
