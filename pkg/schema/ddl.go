package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// CreateTableSQL renders the CREATE TABLE statement plus the ordered
// constraint statements (foreign keys, auto-now triggers) to execute
// after it.
func (m *Model) CreateTableSQL() (string, []string, error) {
	cols := make([]string, 0, len(m.attrs))
	var constraints []string
	for _, a := range m.attrs {
		colSQL, constraint, err := a.Field.Create(m.table, a.Name)
		if err != nil {
			return "", nil, fmt.Errorf("render column %q: %w", a.Name, err)
		}
		cols = append(cols, colSQL)
		if constraint != "" {
			constraints = append(constraints, constraint)
		}
	}
	stmt := fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", m.SchemaTable(), strings.Join(cols, ",\n  "))
	return stmt, constraints, nil
}

// CreateTable renders and executes the table DDL followed by each
// constraint statement, in declaration order.
func (m *Model) CreateTable(ctx context.Context, conn core.Conn) error {
	stmt, constraints, err := m.CreateTableSQL()
	if err != nil {
		return err
	}
	if _, err := conn.Exec(ctx, stmt); err != nil {
		return err
	}
	for _, c := range constraints {
		if _, err := conn.Exec(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// DropTable removes the model's table if it exists.
func (m *Model) DropTable(ctx context.Context, conn core.Conn) error {
	_, err := conn.Exec(ctx, "DROP TABLE IF EXISTS "+m.SchemaTable())
	return err
}
