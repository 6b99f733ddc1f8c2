package core

import "context"

// Row is one database record keyed by column name. Values carry whatever
// the driver decoded them to; callers are expected to know their schema.
type Row map[string]any

// Conn is the execution collaborator: anything that can run a SQL string
// with positional parameters. Implementations must serialize statement
// execution per connection; concurrent queries need distinct Conns.
//
// Driver failures are returned verbatim. There is no retry logic at this
// layer: the caller knows whether a statement is safe to reissue, this
// interface does not.
type Conn interface {
	// Query executes sql and returns every resulting row.
	Query(ctx context.Context, sql string, args ...any) ([]Row, error)

	// Exec executes sql and returns the affected row count.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
}

// Table is what the query builder needs to know about a model: where to
// select from and which columns exist. schema.Model implements it.
type Table interface {
	// SchemaTable returns the schema-qualified, quoted table reference,
	// e.g. `public."query_test"`.
	SchemaTable() string

	// HasColumn reports whether the model declares the named attribute.
	HasColumn(name string) bool
}
