package query

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// maxLimit is the exclusive upper bound for Limit.
const maxLimit = 1_000_000_000

// ErrModelRequired is returned by New when no model is given.
var ErrModelRequired = errors.New("query: model is required")

// params is the growable parameter list behind a query. A root query
// owns one; subqueries built with WithParent share the parent's, so
// placeholder numbering continues globally without renumbering.
type params struct {
	values []any
}

// Query is a stateful SELECT assembler bound to one model. Build it with
// the mutating methods, execute it once with All, Count, or First, then
// discard it.
type Query struct {
	model   core.Table
	alias   string
	columns []string

	where        strings.Builder
	whereStarted bool
	afterOpen    bool // a group just opened; next fragment is not prefixed
	connector    bool // explicit AND/OR pending; skip the implicit AND
	groups       []int // clause count per open logic group

	params *params

	orderBy   []string
	limit     int
	limitSet  bool
	offset    int
	offsetSet bool
}

// Option configures a Query at construction.
type Option func(*Query) error

// WithAlias gives the table an alias; predicates qualify their columns
// with it.
func WithAlias(alias string) Option {
	return func(q *Query) error {
		if err := core.ValidateIdentifier(alias); err != nil {
			return err
		}
		q.alias = alias
		return nil
	}
}

// WithColumns restricts the projection to the given columns (default *).
func WithColumns(columns ...string) Option {
	return func(q *Query) error {
		for _, col := range columns {
			if !q.model.HasColumn(col) {
				return fmt.Errorf("%w: %q", core.ErrUnknownColumn, col)
			}
		}
		q.columns = columns
		return nil
	}
}

// WithParent makes this query share the parent's parameter list, so its
// placeholders continue the parent's numbering from the moment they are
// rendered. Attach such a subquery (Exists or an IN predicate) before
// adding further parameters to the parent, or the numbering the subquery
// rendered with goes stale.
func WithParent(parent *Query) Option {
	return func(q *Query) error {
		if parent == nil {
			return fmt.Errorf("%w: nil parent query", core.ErrInvalidQueryState)
		}
		q.params = parent.params
		return nil
	}
}

// New binds a fresh query to a model.
func New(model core.Table, opts ...Option) (*Query, error) {
	if model == nil {
		return nil, ErrModelRequired
	}
	q := &Query{model: model, params: &params{}}
	for _, opt := range opts {
		if err := opt(q); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// ColumnRef is a reference to a column of another query, used as a Where
// value to correlate a subquery with its parent. It renders as the other
// query's qualified column and binds no parameter.
type ColumnRef struct {
	query  *Query
	column string
}

// Ref builds a ColumnRef against the given query's model.
func Ref(q *Query, column string) (ColumnRef, error) {
	if q == nil {
		return ColumnRef{}, fmt.Errorf("%w: nil query in column reference", core.ErrInvalidQueryState)
	}
	if !q.model.HasColumn(column) {
		return ColumnRef{}, fmt.Errorf("%w: %q", core.ErrUnknownColumn, column)
	}
	return ColumnRef{query: q, column: column}, nil
}

// qualify renders a column, prefixed with the alias when one is set.
func (q *Query) qualify(column string) string {
	if q.alias != "" {
		return core.QuoteIdentifier(q.alias) + "." + core.QuoteIdentifier(column)
	}
	return core.QuoteIdentifier(column)
}

// placeholder appends v to the shared parameter list and returns its
// positional placeholder.
func (q *Query) placeholder(v any) string {
	q.params.values = append(q.params.values, v)
	return "$" + strconv.Itoa(len(q.params.values))
}

// Where appends one predicate. The column must exist on the bound model
// and the operator must suit the value: = and != refuse nil (use IS /
// IS NOT), IS and IS NOT require nil, and IN / NOT IN take either a list
// or a subquery. A list value binds as one array parameter rendered with
// Any; a subquery's SQL is inlined and its parameters spliced into the
// global numbering.
// A ColumnRef value renders the referenced query's column directly.
func (q *Query) Where(column, operator string, value any) error {
	if !q.model.HasColumn(column) {
		return fmt.Errorf("%w: %q", core.ErrUnknownColumn, column)
	}
	o, err := parseOp(operator)
	if err != nil {
		return err
	}

	lhs := q.qualify(column)

	if value == nil {
		switch o {
		case opIs:
			q.appendClause(lhs + " IS NULL")
			return nil
		case opIsNot:
			q.appendClause(lhs + " IS NOT NULL")
			return nil
		default:
			return fmt.Errorf("%w: %s requires a value; use IS / IS NOT for null", core.ErrInvalidOperator, o.sql())
		}
	}
	if o == opIs || o == opIsNot {
		return fmt.Errorf("%w: %s takes only a null value", core.ErrInvalidOperator, o.sql())
	}

	switch v := value.(type) {
	case *Query:
		if o != opIn && o != opNotIn {
			return fmt.Errorf("%w: a subquery value requires IN or NOT IN", core.ErrInvalidOperator)
		}
		sub, err := q.splice(v)
		if err != nil {
			return err
		}
		q.appendClause(fmt.Sprintf("%s %s (%s)", lhs, o.sql(), sub))
		return nil
	case ColumnRef:
		if o == opIn || o == opNotIn {
			return fmt.Errorf("%w: %s requires a list or subquery", core.ErrInvalidOperator, o.sql())
		}
		q.appendClause(fmt.Sprintf("%s %s %s", lhs, o.sql(), v.query.qualify(v.column)))
		return nil
	}

	if isList(value) {
		// The whole list binds as one array parameter; IN and NOT IN are
		// sugar for = Any / != Any, other operators compare against Any
		// element directly.
		cmp := o.sql()
		switch o {
		case opIn:
			cmp = "="
		case opNotIn:
			cmp = "!="
		}
		q.appendClause(fmt.Sprintf("%s %s Any(%s)", lhs, cmp, q.placeholder(value)))
		return nil
	}
	if o == opIn || o == opNotIn {
		return fmt.Errorf("%w: %s requires a list or subquery, got %T", core.ErrInvalidOperator, o.sql(), value)
	}

	q.appendClause(fmt.Sprintf("%s %s %s", lhs, o.sql(), q.placeholder(value)))
	return nil
}

// isList reports whether v is a slice or array, excluding []byte which is
// a scalar at the SQL level.
func isList(v any) bool {
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// appendClause writes one completed clause into the WHERE text, joined to
// what precedes it with AND unless an explicit connective is pending or a
// group just opened.
func (q *Query) appendClause(fragment string) {
	switch {
	case !q.whereStarted:
		q.where.WriteString(" WHERE ")
		q.whereStarted = true
	case q.afterOpen:
		// first clause of a group sits right after the paren
	case q.connector:
		q.where.WriteString(" ")
	default:
		q.where.WriteString(" AND ")
	}
	q.where.WriteString(fragment)
	q.afterOpen = false
	q.connector = false
	if n := len(q.groups); n > 0 {
		q.groups[n-1]++
	}
}

// StartLogic opens a parenthesized clause group. Clauses inside a group
// join with AND; groups may nest.
func (q *Query) StartLogic() {
	switch {
	case !q.whereStarted:
		q.where.WriteString(" WHERE (")
		q.whereStarted = true
	case q.afterOpen:
		q.where.WriteString("(")
	case q.connector:
		q.where.WriteString(" (")
	default:
		q.where.WriteString(" AND (")
	}
	q.afterOpen = true
	q.connector = false
	q.groups = append(q.groups, 0)
}

// EndLogic closes the innermost open group. Closing with no open group,
// or closing a group holding zero clauses, is a protocol violation.
func (q *Query) EndLogic() error {
	n := len(q.groups)
	if n == 0 {
		return fmt.Errorf("%w: no open logic group", core.ErrInvalidQueryState)
	}
	if q.groups[n-1] == 0 {
		return fmt.Errorf("%w: cannot close an empty logic group", core.ErrInvalidQueryState)
	}
	q.where.WriteString(")")
	q.groups = q.groups[:n-1]
	if n := len(q.groups); n > 0 {
		q.groups[n-1]++ // a closed group counts as one clause of its parent
	}
	q.afterOpen = false
	return nil
}

// AddLogic appends an explicit AND/OR connective between the preceding
// completed clause or group and whatever comes next. Only valid at the
// top level.
func (q *Query) AddLogic(operator string) error {
	op := strings.ToUpper(strings.TrimSpace(operator))
	if op != "AND" && op != "OR" {
		return fmt.Errorf("%w: connective must be AND or OR, got %q", core.ErrInvalidOperator, operator)
	}
	if len(q.groups) > 0 {
		return fmt.Errorf("%w: connectives are implicit inside a logic group", core.ErrInvalidQueryState)
	}
	if !q.whereStarted || q.connector {
		return fmt.Errorf("%w: no preceding clause for %s", core.ErrInvalidQueryState, op)
	}
	q.where.WriteString(" " + op)
	q.connector = true
	return nil
}

// Exists appends an EXISTS clause for the subquery, splicing its
// parameters into the global numbering.
func (q *Query) Exists(sub *Query) error {
	if sub == nil {
		return fmt.Errorf("%w: nil subquery", core.ErrInvalidQueryState)
	}
	spliced, err := q.splice(sub)
	if err != nil {
		return err
	}
	q.appendClause("EXISTS (" + spliced + ")")
	return nil
}

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

// splice inlines a subquery's SQL, continuing placeholder numbering from
// this query's parameter list. A subquery that already shares this
// query's parameter list (built with WithParent) is taken verbatim; a
// standalone one has its placeholders offset and its parameters adopted.
// The subquery is not mutated.
func (q *Query) splice(sub *Query) (string, error) {
	if len(sub.groups) > 0 {
		return "", fmt.Errorf("%w: subquery has an open logic group", core.ErrInvalidQueryState)
	}
	sql := sub.SQL()
	if sub.params == q.params {
		return sql, nil
	}
	if offset := len(q.params.values); offset > 0 {
		sql = placeholderPattern.ReplaceAllStringFunc(sql, func(m string) string {
			n, _ := strconv.Atoi(m[1:])
			return "$" + strconv.Itoa(n+offset)
		})
	}
	q.params.values = append(q.params.values, sub.params.values...)
	return sql, nil
}

// OrderBy adds one ordering entry; direction defaults to ASC when empty.
// Multiple calls compose in insertion order.
func (q *Query) OrderBy(column, direction string) error {
	if !q.model.HasColumn(column) {
		return fmt.Errorf("%w: %q", core.ErrUnknownColumn, column)
	}
	dir := strings.ToUpper(strings.TrimSpace(direction))
	if dir == "" {
		dir = "ASC"
	}
	if dir != "ASC" && dir != "DESC" {
		return fmt.Errorf("%w: direction must be ASC or DESC, got %q", core.ErrInvalidOperator, direction)
	}
	q.orderBy = append(q.orderBy, core.QuoteIdentifier(column)+" "+dir)
	return nil
}

// Limit caps the result set. Callable once; n must be a positive integer
// below one billion.
func (q *Query) Limit(n int) error {
	if q.limitSet {
		return fmt.Errorf("%w: limit already set", core.ErrInvalidQueryState)
	}
	if n <= 0 || n >= maxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d, got %d", core.ErrOutOfRange, maxLimit-1, n)
	}
	q.limit = n
	q.limitSet = true
	return nil
}

// Offset skips the first n rows. Callable once; n must not be negative.
func (q *Query) Offset(n int) error {
	if q.offsetSet {
		return fmt.Errorf("%w: offset already set", core.ErrInvalidQueryState)
	}
	if n < 0 {
		return fmt.Errorf("%w: offset must not be negative, got %d", core.ErrOutOfRange, n)
	}
	q.offset = n
	q.offsetSet = true
	return nil
}

// from renders the FROM target with its alias.
func (q *Query) from() string {
	s := q.model.SchemaTable()
	if q.alias != "" {
		s += " AS " + core.QuoteIdentifier(q.alias)
	}
	return s
}

// head renders the SELECT head with the projected columns.
func (q *Query) head() string {
	cols := "*"
	if len(q.columns) > 0 {
		quoted := make([]string, len(q.columns))
		for i, c := range q.columns {
			quoted[i] = core.QuoteIdentifier(c)
		}
		cols = strings.Join(quoted, ", ")
	}
	return "SELECT " + cols + " FROM " + q.from()
}

// WhereSQL returns the predicate text built so far, including the leading
// WHERE keyword, or the empty string.
func (q *Query) WhereSQL() string { return q.where.String() }

// OrderBySQL returns the ORDER BY text, or the empty string.
func (q *Query) OrderBySQL() string {
	if len(q.orderBy) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(q.orderBy, ", ")
}

// LimitSQL returns the LIMIT text, or the empty string.
func (q *Query) LimitSQL() string {
	if !q.limitSet {
		return ""
	}
	return " LIMIT " + strconv.Itoa(q.limit)
}

// OffsetSQL returns the OFFSET text, or the empty string.
func (q *Query) OffsetSQL() string {
	if !q.offsetSet {
		return ""
	}
	return " OFFSET " + strconv.Itoa(q.offset)
}

// SQL renders the full statement as built so far. While a group is open
// the text is intentionally unbalanced; execution refuses it.
func (q *Query) SQL() string {
	return q.head() + q.WhereSQL() + q.OrderBySQL() + q.LimitSQL() + q.OffsetSQL()
}

// Params returns a copy of the parameter list in placeholder order.
func (q *Query) Params() []any {
	return append([]any(nil), q.params.values...)
}

// finalizable refuses execution while a logic group is open.
func (q *Query) finalizable() error {
	if len(q.groups) > 0 {
		return fmt.Errorf("%w: %d logic group(s) still open", core.ErrInvalidQueryState, len(q.groups))
	}
	return nil
}

// All executes the query and returns every matching row.
func (q *Query) All(ctx context.Context, conn core.Conn) ([]core.Row, error) {
	if err := q.finalizable(); err != nil {
		return nil, err
	}
	return conn.Query(ctx, q.SQL(), q.Params()...)
}

// Count executes a row-count variant of the same predicate set.
func (q *Query) Count(ctx context.Context, conn core.Conn) (int64, error) {
	if err := q.finalizable(); err != nil {
		return 0, err
	}
	rows, err := conn.Query(ctx, "SELECT count(*) FROM "+q.from()+q.WhereSQL(), q.Params()...)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return countValue(rows[0])
}

// First executes with an implicit limit of one and returns the single
// row, or nil when nothing matches.
func (q *Query) First(ctx context.Context, conn core.Conn) (core.Row, error) {
	if err := q.finalizable(); err != nil {
		return nil, err
	}
	sql := q.head() + q.WhereSQL() + q.OrderBySQL() + " LIMIT 1" + q.OffsetSQL()
	rows, err := conn.Query(ctx, sql, q.Params()...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// countValue digs the count out of a row regardless of the driver's
// integer type or the column label it chose.
func countValue(row core.Row) (int64, error) {
	v, ok := row["count"]
	if !ok {
		for _, other := range row {
			v = other
			break
		}
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	}
	return 0, fmt.Errorf("%w: count returned %T", core.ErrTypeMismatch, v)
}
