// Package schema turns typed field declarations into safe DDL and maps
// named fields to tables.
//
// A Model is an ordered set of named Fields; the attribute named "id" is
// the table's primary key. Fields validate their default values at
// construction and render column definitions plus optional constraint
// statements at table-creation time. Models register themselves in a
// process-wide registry so foreign keys can name their target before it
// is declared (forward, self, and circular references resolve lazily at
// DDL-render time).
//
// The CRUD methods on Model drive pkg/query for reads and render
// parameterized INSERT/UPDATE/DELETE directly; only defaults are ever
// interpolated into SQL text, and those are validated to be
// injection-free when the field is constructed.
package schema
