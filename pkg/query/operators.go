package query

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// op is the closed set of where-clause operators. Keeping it a tagged
// enumeration gives each tag exactly one rendering rule and lets the
// switch in Where stay exhaustive.
type op int

const (
	opEq op = iota
	opNe
	opIs
	opIsNot
	opGt
	opLt
	opGte
	opLte
	opLike
	opIn
	opNotIn
)

var operators = map[string]op{
	"=":      opEq,
	"!=":     opNe,
	"IS":     opIs,
	"IS NOT": opIsNot,
	">":      opGt,
	"<":      opLt,
	">=":     opGte,
	"<=":     opLte,
	"LIKE":   opLike,
	"IN":     opIn,
	"NOT IN": opNotIn,
}

// parseOp maps operator text to its tag. Word operators are matched
// case-insensitively.
func parseOp(s string) (op, error) {
	if o, ok := operators[s]; ok {
		return o, nil
	}
	if o, ok := operators[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return o, nil
	}
	return 0, fmt.Errorf("%w: %q", core.ErrInvalidOperator, s)
}

// sql returns the operator's rendering for a plain right-hand side.
func (o op) sql() string {
	switch o {
	case opEq:
		return "="
	case opNe:
		return "!="
	case opIs:
		return "IS"
	case opIsNot:
		return "IS NOT"
	case opGt:
		return ">"
	case opLt:
		return "<"
	case opGte:
		return ">="
	case opLte:
		return "<="
	case opLike:
		return "LIKE"
	case opIn:
		return "IN"
	case opNotIn:
		return "NOT IN"
	}
	return ""
}
