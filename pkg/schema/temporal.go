package schema

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// Literal layouts for temporal DDL defaults. These are rendered unquoted,
// which Postgres tolerates but standard SQL does not; the shape is kept
// verbatim for compatibility with existing tables.
const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05.000000"
	dateTimeLayout = "2006-01-02 15:04:05.000000"
)

// DateField stores calendar dates.
type DateField struct {
	column
}

// NewDate constructs a date column. A default, if given, must be a
// time.Time; only the date part is rendered.
func NewDate(opts ...Option) (*DateField, error) {
	f := &DateField{column: newColumn("date", opts)}
	f.check = checkTime
	f.lit = temporalLiteral(dateLayout)
	if err := f.checkDefault(); err != nil {
		return nil, err
	}
	return f, nil
}

// TimeField stores time-of-day values.
type TimeField struct {
	column
}

// NewTime constructs a time column. A default, if given, must be a
// time.Time; only the clock part is rendered.
func NewTime(opts ...Option) (*TimeField, error) {
	f := &TimeField{column: newColumn("time", opts)}
	f.check = checkTime
	f.lit = temporalLiteral(timeLayout)
	if err := f.checkDefault(); err != nil {
		return nil, err
	}
	return f, nil
}

// DateTimeField stores timestamps. With AutoNow the column defaults to
// CURRENT_TIMESTAMP and a trigger refreshes it on every update of the
// row; an explicit default is ignored in that case.
type DateTimeField struct {
	column
}

// NewDateTime constructs a timestamp column. A default, if given, must be
// a time.Time.
func NewDateTime(opts ...Option) (*DateTimeField, error) {
	f := &DateTimeField{column: newColumn("timestamp", opts)}
	f.check = checkTime
	f.lit = temporalLiteral(dateTimeLayout)
	if f.autoNow {
		// The database owns the value; an explicit default is ignored.
		f.def, f.hasDefault = nil, false
		return f, nil
	}
	if err := f.checkDefault(); err != nil {
		return nil, err
	}
	return f, nil
}

// Create renders the timestamp column. AutoNow columns default to
// CURRENT_TIMESTAMP and return the trigger statement that keeps the
// column current on UPDATE.
func (f *DateTimeField) Create(table, col string) (string, string, error) {
	if !f.autoNow {
		return f.column.Create(table, col)
	}
	ddl, err := f.render(table, col, "CURRENT_TIMESTAMP")
	if err != nil {
		return "", "", err
	}
	return ddl, autoNowTrigger(table, col), nil
}

// autoNowTrigger installs a plpgsql function and BEFORE UPDATE trigger
// refreshing the column to the current time on every row update. Both
// identifiers are validated before this is called.
func autoNowTrigger(table, col string) string {
	fn := fmt.Sprintf("%s_%s_auto_now", table, col)
	return fmt.Sprintf(
		`CREATE OR REPLACE FUNCTION %q() RETURNS trigger AS $$
BEGIN
  NEW.%q = CURRENT_TIMESTAMP;
  RETURN NEW;
END;
$$ LANGUAGE plpgsql;
CREATE TRIGGER %q BEFORE UPDATE ON %s.%q
FOR EACH ROW EXECUTE FUNCTION %q()`,
		fn, col, fn+"_trigger", DefaultSchema, table, fn)
}

func checkTime(v any) error {
	if _, ok := v.(time.Time); !ok {
		return fmt.Errorf("%w: temporal value must be a time.Time, got %T", core.ErrTypeMismatch, v)
	}
	return nil
}

func temporalLiteral(layout string) func(any) (string, error) {
	return func(v any) (string, error) {
		t, ok := v.(time.Time)
		if !ok {
			return "", fmt.Errorf("%w: temporal value must be a time.Time, got %T", core.ErrTypeMismatch, v)
		}
		return t.Format(layout), nil
	}
}
