package engine

import (
	"reflect"
	"strings"

	"github.com/satishbabariya/sheetdb/query/ast"
)

// Matches reports whether row satisfies every entry of the where clause.
// A nil or empty clause matches every row.
func Matches(row ast.Row, where ast.Where) bool {
	for field, cond := range where {
		if !matchCondition(row[field], cond) {
			return false
		}
	}
	return true
}

func matchCondition(value interface{}, cond ast.Condition) bool {
	switch c := cond.(type) {
	case ast.Literal:
		return scalarEquals(value, c.Value)
	case ast.OperatorSet:
		// Operators never match a null field value, ne included:
		// absent data must not satisfy "not equal".
		if value == nil {
			return false
		}
		return matchOps(value, c.Ops)
	default:
		return false
	}
}

// matchOps evaluates every operator in the set against the field value,
// short-circuiting on the first failure. Operators that do not apply to
// the value's type are non-constraining, except eq and ne which always
// apply. Unknown keys never reach here; they are rejected at construction.
func matchOps(value interface{}, ops map[ast.Operator]interface{}) bool {
	for op, operand := range ops {
		switch op {
		case ast.OpEq:
			if !scalarEquals(value, operand) {
				return false
			}
		case ast.OpNe:
			if scalarEquals(value, operand) {
				return false
			}
		case ast.OpGt, ast.OpGte, ast.OpLt, ast.OpLte:
			vf, vok := toFloat(value)
			of, ook := toFloat(operand)
			if !vok || !ook {
				continue
			}
			if !compareNumeric(op, vf, of) {
				return false
			}
		case ast.OpContains, ast.OpStartsWith, ast.OpEndsWith:
			vs, vok := value.(string)
			os, ook := operand.(string)
			if !vok || !ook {
				continue
			}
			if !matchSubstring(op, vs, os) {
				return false
			}
		case ast.OpIn:
			if !memberOf(value, operand) {
				return false
			}
		case ast.OpNotIn:
			if memberOf(value, operand) {
				return false
			}
		}
	}
	return true
}

func compareNumeric(op ast.Operator, v, operand float64) bool {
	switch op {
	case ast.OpGt:
		return v > operand
	case ast.OpGte:
		return v >= operand
	case ast.OpLt:
		return v < operand
	default:
		return v <= operand
	}
}

func matchSubstring(op ast.Operator, v, operand string) bool {
	switch op {
	case ast.OpContains:
		return strings.Contains(v, operand)
	case ast.OpStartsWith:
		return strings.HasPrefix(v, operand)
	default:
		return strings.HasSuffix(v, operand)
	}
}

// scalarEquals is strict equality over scalars: values of different kinds
// are never equal, numbers compare numerically regardless of Go type.
func scalarEquals(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, ok := toFloat(a); ok {
		bf, bok := toFloat(b)
		return bok && af == bf
	}
	return a == b
}

// memberOf reports whether value equals any element of the operand
// sequence. Non-sequence operands match nothing.
func memberOf(value, operand interface{}) bool {
	rv := reflect.ValueOf(operand)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if scalarEquals(value, rv.Index(i).Interface()) {
			return true
		}
	}
	return false
}
