// Package query assembles parameterized SELECT statements against a
// model.
//
// A Query is built by a sequence of calls (Where, StartLogic/EndLogic,
// AddLogic, Exists, OrderBy, Limit, Offset), executed exactly once with
// All, Count, or First, and then discarded. The generated SQL text and
// the parameter list stay mutually consistent at every step: placeholder
// $n always refers to the n-th parameter, and numbering is global across
// a root query and any subqueries spliced into it, in the order the
// clauses were attached.
//
// A Query is not safe for concurrent mutation; build, execute, and
// discard it within one logical flow. Subqueries share state with their
// parent only through the parameter list: either adopted at construction
// with WithParent, or merged once when the subquery is attached with
// Exists or an IN predicate.
package query
