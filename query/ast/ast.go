// Package ast defines the query model: rows, conditions, ordering and options.
package ast

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ErrInvalidQuery is returned when query options are malformed: an
// unrecognized operator key, a negative limit or offset, or a select
// referencing fields the sheet does not have.
var ErrInvalidQuery = errors.New("invalid query")

// Row is a single record: a mapping from field name to a scalar value
// (string, float64, bool or nil). The engine never mutates a Row; every
// transformation produces new rows or new references into the snapshot.
type Row map[string]interface{}

// Operator is a comparison or membership operator usable inside a Condition.
type Operator string

const (
	OpEq         Operator = "eq"
	OpNe         Operator = "ne"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
	OpIn         Operator = "in"
	OpNotIn      Operator = "notIn"
)

// operators is the set of recognized operator keys.
var operators = map[Operator]bool{
	OpEq: true, OpNe: true,
	OpGt: true, OpGte: true, OpLt: true, OpLte: true,
	OpContains: true, OpStartsWith: true, OpEndsWith: true,
	OpIn: true, OpNotIn: true,
}

// Condition is one field's filter: either a literal scalar compared for
// equality, or a set of operator tests that must all hold. The shape is
// decided once at construction, not re-inspected per row.
type Condition interface {
	isCondition()
}

// Literal compares the field value for strict equality. Literal{nil} is
// the only condition a null field value can match.
type Literal struct {
	Value interface{}
}

func (Literal) isCondition() {}

// OperatorSet applies one or more operator tests to the field value.
type OperatorSet struct {
	Ops map[Operator]interface{}
}

func (OperatorSet) isCondition() {}

// Validate rejects operator sets containing unrecognized keys, and in/notIn
// operands that are not sequences. Unknown keys fail the whole query rather
// than being silently ignored.
func (o OperatorSet) Validate() error {
	if len(o.Ops) == 0 {
		return fmt.Errorf("%w: empty operator set", ErrInvalidQuery)
	}
	var unknown []string
	for op, operand := range o.Ops {
		if !operators[op] {
			unknown = append(unknown, string(op))
			continue
		}
		if op == OpIn || op == OpNotIn {
			k := reflect.ValueOf(operand).Kind()
			if k != reflect.Slice && k != reflect.Array {
				return fmt.Errorf("%w: operator %q requires a sequence operand, got %T", ErrInvalidQuery, op, operand)
			}
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unrecognized operators: %s", ErrInvalidQuery, strings.Join(unknown, ", "))
	}
	return nil
}

// NewOperatorSet builds a validated operator-set condition.
func NewOperatorSet(ops map[Operator]interface{}) (Condition, error) {
	c := OperatorSet{Ops: ops}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseCondition turns a dynamically shaped condition into the tagged form:
// a map of operator keys becomes an OperatorSet, anything else a Literal.
// Operator keys are validated here, once.
func ParseCondition(raw interface{}) (Condition, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return Literal{Value: raw}, nil
	}
	ops := make(map[Operator]interface{}, len(m))
	for k, v := range m {
		ops[Operator(k)] = v
	}
	return NewOperatorSet(ops)
}

// Condition constructors for the common single-operator cases.

// Eq matches values strictly equal to v. Unlike Literal{v}, it never
// matches a null field value.
func Eq(v interface{}) Condition { return OperatorSet{Ops: map[Operator]interface{}{OpEq: v}} }

// Ne matches values not equal to v. Null field values never match.
func Ne(v interface{}) Condition { return OperatorSet{Ops: map[Operator]interface{}{OpNe: v}} }

// Gt matches numeric values greater than v.
func Gt(v interface{}) Condition { return OperatorSet{Ops: map[Operator]interface{}{OpGt: v}} }

// Gte matches numeric values greater than or equal to v.
func Gte(v interface{}) Condition { return OperatorSet{Ops: map[Operator]interface{}{OpGte: v}} }

// Lt matches numeric values less than v.
func Lt(v interface{}) Condition { return OperatorSet{Ops: map[Operator]interface{}{OpLt: v}} }

// Lte matches numeric values less than or equal to v.
func Lte(v interface{}) Condition { return OperatorSet{Ops: map[Operator]interface{}{OpLte: v}} }

// Contains matches string values containing the substring v.
func Contains(v string) Condition {
	return OperatorSet{Ops: map[Operator]interface{}{OpContains: v}}
}

// StartsWith matches string values with the prefix v.
func StartsWith(v string) Condition {
	return OperatorSet{Ops: map[Operator]interface{}{OpStartsWith: v}}
}

// EndsWith matches string values with the suffix v.
func EndsWith(v string) Condition {
	return OperatorSet{Ops: map[Operator]interface{}{OpEndsWith: v}}
}

// In matches values equal to any of the candidates.
func In(candidates ...interface{}) Condition {
	return OperatorSet{Ops: map[Operator]interface{}{OpIn: candidates}}
}

// NotIn matches values equal to none of the candidates.
func NotIn(candidates ...interface{}) Condition {
	return OperatorSet{Ops: map[Operator]interface{}{OpNotIn: candidates}}
}

// Where is a conjunctive filter: every entry must hold for a row to match.
// There is no OR, nesting, or whole-clause negation.
type Where map[string]Condition

// Validate checks every operator-set condition in the clause.
func (w Where) Validate() error {
	for field, cond := range w {
		if ops, ok := cond.(OperatorSet); ok {
			if err := ops.Validate(); err != nil {
				return fmt.Errorf("field %q: %w", field, err)
			}
		}
	}
	return nil
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// OrderBy is one sort key. A single key is a one-element specification.
type OrderBy struct {
	Field     string
	Direction Direction
}

// OrderAsc builds an ascending sort key.
func OrderAsc(field string) OrderBy { return OrderBy{Field: field, Direction: Asc} }

// OrderDesc builds a descending sort key.
func OrderDesc(field string) OrderBy { return OrderBy{Field: field, Direction: Desc} }

// Options configures one query. All fields are optional; an absent field is
// a no-op for its pipeline stage. Options are read-only during evaluation.
type Options struct {
	Where   Where
	OrderBy []OrderBy
	Select  []string
	Limit   *int
	Offset  *int
}

// Int returns a pointer to n, for Options.Limit and Options.Offset.
func Int(n int) *int { return &n }

// Validate rejects malformed options before any data is touched. Select
// names are checked later against the sheet schema, which only exists once
// a snapshot has been fetched.
func (o Options) Validate() error {
	if o.Limit != nil && *o.Limit < 0 {
		return fmt.Errorf("%w: limit must be non-negative, got %d", ErrInvalidQuery, *o.Limit)
	}
	if o.Offset != nil && *o.Offset < 0 {
		return fmt.Errorf("%w: offset must be non-negative, got %d", ErrInvalidQuery, *o.Offset)
	}
	for _, k := range o.OrderBy {
		if k.Direction != Asc && k.Direction != Desc {
			return fmt.Errorf("%w: invalid order direction %q for field %q", ErrInvalidQuery, k.Direction, k.Field)
		}
	}
	return o.Where.Validate()
}
