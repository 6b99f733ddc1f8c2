package schema

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/leapstack-labs/pgmodel/pkg/core"
	"github.com/leapstack-labs/pgmodel/pkg/query"
)

// Create inserts one row. Unspecified fields take their declared
// defaults; an unspecified id gets a freshly generated UUID. Returns the
// inserted row.
func (m *Model) Create(ctx context.Context, conn core.Conn, values map[string]any) (core.Row, error) {
	if err := m.checkColumns(values); err != nil {
		return nil, err
	}

	var (
		cols         []string
		placeholders []string
		args         []any
	)
	add := func(name string, v any) {
		cols = append(cols, core.QuoteIdentifier(name))
		args = append(args, v)
		placeholders = append(placeholders, "$"+strconv.Itoa(len(args)))
	}

	for _, a := range m.attrs {
		if v, ok := values[a.Name]; ok {
			add(a.Name, v)
			continue
		}
		if d, ok := a.Field.Default(); ok {
			add(a.Name, d)
			continue
		}
		if a.Name == "id" {
			if _, ok := a.Field.(*UUIDField); ok {
				add(a.Name, uuid.New())
			}
		}
	}

	var stmt string
	if len(cols) == 0 {
		stmt = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING *", m.SchemaTable())
	} else {
		stmt = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
			m.SchemaTable(), strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	}

	rows, err := conn.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Get fetches the row with the given primary key, or nil when no row
// matches. A value the driver cannot coerce to the primary key's type
// surfaces as the driver's own error.
func (m *Model) Get(ctx context.Context, conn core.Conn, id any) (core.Row, error) {
	q, err := query.New(m)
	if err != nil {
		return nil, err
	}
	if err := q.Where("id", "=", id); err != nil {
		return nil, err
	}
	return q.First(ctx, conn)
}

// Update sets the given fields on the row with the given primary key and
// returns the updated row, or nil when no row matches. The primary key
// itself cannot be updated.
func (m *Model) Update(ctx context.Context, conn core.Conn, id any, values map[string]any) (core.Row, error) {
	if len(values) == 0 {
		return nil, core.ErrEmptyUpdate
	}
	if _, ok := values["id"]; ok {
		return nil, fmt.Errorf("%w: id cannot be updated", core.ErrImmutablePrimaryKey)
	}
	if err := m.checkColumns(values); err != nil {
		return nil, err
	}

	var (
		sets []string
		args []any
	)
	for _, a := range m.attrs {
		v, ok := values[a.Name]
		if !ok {
			continue
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", core.QuoteIdentifier(a.Name), len(args)))
	}
	args = append(args, id)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING *",
		m.SchemaTable(), strings.Join(sets, ", "), core.QuoteIdentifier("id"), len(args))

	rows, err := conn.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Delete removes the row with the given primary key and returns the
// number of rows removed (0 or 1).
func (m *Model) Delete(ctx context.Context, conn core.Conn, id any) (int64, error) {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", m.SchemaTable(), core.QuoteIdentifier("id"))
	return conn.Exec(ctx, stmt, id)
}

// DeleteWhere bulk-deletes rows matching one predicate built with the
// query machinery (so operator and column validation match Select) and
// returns the number of rows removed.
func (m *Model) DeleteWhere(ctx context.Context, conn core.Conn, column, operator string, values any) (int64, error) {
	q, err := query.New(m)
	if err != nil {
		return 0, err
	}
	if err := q.Where(column, operator, values); err != nil {
		return 0, err
	}
	return conn.Exec(ctx, "DELETE FROM "+m.SchemaTable()+q.WhereSQL(), q.Params()...)
}

// Select returns a fresh query bound to this model for fluent chaining.
func (m *Model) Select(opts ...query.Option) (*query.Query, error) {
	return query.New(m, opts...)
}

// checkColumns rejects value maps naming attributes the model does not
// declare.
func (m *Model) checkColumns(values map[string]any) error {
	for name := range values {
		if !m.HasColumn(name) {
			return fmt.Errorf("%w: %q", core.ErrUnknownColumn, name)
		}
	}
	return nil
}
