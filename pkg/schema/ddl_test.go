package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgmodel/internal/testutil"
	"github.com/leapstack-labs/pgmodel/pkg/core"
)

func TestCreateTableSQL(t *testing.T) {
	name, err := NewChar(MaxLength(100))
	require.NoError(t, err)
	active, err := NewBoolean(Default(true))
	require.NoError(t, err)

	m, err := New("DDLTest",
		Attribute{Name: "id", Field: mustUUID(t)},
		Attribute{Name: "name", Field: name},
		Attribute{Name: "active", Field: active},
	)
	require.NoError(t, err)

	stmt, constraints, err := m.CreateTableSQL()
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE public."ddl_test" (
  "id" uuid PRIMARY KEY,
  "name" varchar(100) NOT NULL,
  "active" boolean DEFAULT true NOT NULL
)`, stmt)
	assert.Empty(t, constraints)
}

func TestCreateTableSQLWithConstraints(t *testing.T) {
	target, err := New("DDLOwner", Attribute{Name: "id", Field: mustUUID(t)})
	require.NoError(t, err)
	fk, err := NewForeignKey(target)
	require.NoError(t, err)
	updated, err := NewDateTime(AutoNow())
	require.NoError(t, err)

	m, err := New("DDLChild",
		Attribute{Name: "id", Field: mustUUID(t)},
		Attribute{Name: "owner", Field: fk},
		Attribute{Name: "updated", Field: updated},
	)
	require.NoError(t, err)

	stmt, constraints, err := m.CreateTableSQL()
	require.NoError(t, err)
	assert.Contains(t, stmt, `"owner" uuid NOT NULL`)
	assert.Contains(t, stmt, `"updated" timestamp DEFAULT CURRENT_TIMESTAMP NOT NULL`)

	// Constraints arrive in declaration order: foreign key, then trigger.
	require.Len(t, constraints, 2)
	assert.Contains(t, constraints[0], "FOREIGN KEY")
	assert.Contains(t, constraints[1], "CREATE TRIGGER")
}

func TestCreateTableSQLPropagatesFieldErrors(t *testing.T) {
	text, err := NewText()
	require.NoError(t, err)

	m, err := New("DDLBroken",
		Attribute{Name: "id", Field: text}, // text cannot be the primary key
	)
	require.NoError(t, err)

	_, _, err = m.CreateTableSQL()
	assert.ErrorIs(t, err, core.ErrTypeMismatch)
}

func TestCreateAndDropTable(t *testing.T) {
	target, err := New("ExecOwner", Attribute{Name: "id", Field: mustUUID(t)})
	require.NoError(t, err)
	fk, err := NewForeignKey(target)
	require.NoError(t, err)

	m, err := New("ExecChild",
		Attribute{Name: "id", Field: mustUUID(t)},
		Attribute{Name: "owner", Field: fk},
	)
	require.NoError(t, err)

	conn := &testutil.FakeConn{}
	require.NoError(t, m.CreateTable(context.Background(), conn))

	require.Len(t, conn.Calls, 2)
	assert.Contains(t, conn.Calls[0].SQL, `CREATE TABLE public."exec_child"`)
	assert.Contains(t, conn.Calls[1].SQL, "ADD CONSTRAINT")

	require.NoError(t, m.DropTable(context.Background(), conn))
	assert.Equal(t, `DROP TABLE IF EXISTS public."exec_child"`, conn.LastCall().SQL)
}
