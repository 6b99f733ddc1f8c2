// Package core defines the shared language of the pgmodel system.
//
// This package contains:
//   - The execution collaborator contract (Conn) and its row type (Row)
//   - The minimal model contract the query builder depends on (Table)
//   - Identifier validation used before any name reaches SQL text
//   - The sentinel error taxonomy shared by every layer
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
