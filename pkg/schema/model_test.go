package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// mustUUID builds the conventional id attribute for test models.
func mustUUID(t *testing.T) Field {
	t.Helper()
	f, err := NewUUID()
	require.NoError(t, err)
	return f
}

func mustText(t *testing.T, opts ...Option) Field {
	t.Helper()
	f, err := NewText(opts...)
	require.NoError(t, err)
	return f
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "QueryTest", want: "query_test"},
		{in: "Book", want: "book"},
		{in: "already_snake", want: "already_snake"},
		{in: "HTTPServer", want: "http_server"},
		{in: "UserV2", want: "user_v2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, snakeCase(tt.in))
		})
	}
}

func TestNewModel(t *testing.T) {
	m, err := New("ModelTest",
		Attribute{Name: "id", Field: mustUUID(t)},
		Attribute{Name: "name", Field: mustText(t)},
	)
	require.NoError(t, err)

	assert.Equal(t, "ModelTest", m.Name())
	assert.Equal(t, "model_test", m.Table())
	assert.Equal(t, `public."model_test"`, m.SchemaTable())
	assert.True(t, m.HasColumn("name"))
	assert.False(t, m.HasColumn("missing"))

	f, ok := m.Field("id")
	require.True(t, ok)
	assert.Equal(t, "uuid", f.DBType())

	attrs := m.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, "id", attrs[0].Name)
	assert.Equal(t, "name", attrs[1].Name)
}

func TestNewModelValidation(t *testing.T) {
	id := mustUUID(t)
	name := mustText(t)

	_, err := New(`bad"name`, Attribute{Name: "id", Field: id})
	assert.ErrorIs(t, err, core.ErrInvalidIdentifier)

	_, err = New("NoFields")
	assert.ErrorIs(t, err, core.ErrTypeMismatch)

	_, err = New("BadAttr", Attribute{Name: "bad name", Field: id})
	assert.ErrorIs(t, err, core.ErrInvalidIdentifier)

	_, err = New("NilField", Attribute{Name: "id", Field: nil})
	assert.ErrorIs(t, err, core.ErrTypeMismatch)

	_, err = New("DupAttr",
		Attribute{Name: "id", Field: id},
		Attribute{Name: "name", Field: name},
		Attribute{Name: "name", Field: name},
	)
	assert.ErrorIs(t, err, core.ErrInvalidIdentifier)

	_, err = New("NoID", Attribute{Name: "name", Field: name})
	assert.ErrorIs(t, err, core.ErrTypeMismatch)
}

func TestRegistry(t *testing.T) {
	m, err := New("RegistryProbe", Attribute{Name: "id", Field: mustUUID(t)})
	require.NoError(t, err)

	got, ok := Lookup("RegistryProbe")
	require.True(t, ok)
	assert.Same(t, m, got)

	_, ok = Lookup("NeverDeclared")
	assert.False(t, ok)

	assert.Contains(t, Models(), "RegistryProbe")

	// Redeclaring a name replaces the earlier entry.
	m2, err := New("RegistryProbe", Attribute{Name: "id", Field: mustUUID(t)})
	require.NoError(t, err)
	got, _ = Lookup("RegistryProbe")
	assert.Same(t, m2, got)
}
