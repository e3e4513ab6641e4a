// Package filter parses the command-line filter expression language into a
// query where clause.
//
//	age > 30 AND name contains "li" AND id in [1, 2]
//
// Expressions are conjunctive only, matching the engine's where semantics.
// The special form `field = null` matches rows where the field is null;
// `field != null` matches rows where it is not.
package filter

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/satishbabariya/sheetdb/query/ast"
)

// filterLexer defines the token types for filter expressions.
var filterLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `\b(AND|contains|startsWith|endsWith|notIn|in|true|false|null)\b`},
	{Name: "Operator", Pattern: `>=|<=|!=|=|>|<`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Comma", Pattern: `,`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// expression is the raw parse tree: one or more conditions joined by AND.
type expression struct {
	Conditions []*condition `parser:"@@ ( 'AND' @@ )*"`
}

type condition struct {
	Field  string     `parser:"@Ident"`
	SymOp  string     `parser:"( @Operator"`
	WordOp string     `parser:"  | @('contains' | 'startsWith' | 'endsWith' | 'notIn' | 'in') )"`
	List   []*operand `parser:"( '[' ( @@ ( ',' @@ )* )? ']'"`
	One    *operand   `parser:"  | @@ )"`
}

type operand struct {
	Str   *string  `parser:"  @String"`
	Num   *float64 `parser:"| @Number"`
	True  bool     `parser:"| @'true'"`
	False bool     `parser:"| @'false'"`
	Null  bool     `parser:"| @'null'"`
}

var parser = participle.MustBuild[expression](
	participle.Lexer(filterLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)

// symbolOps maps expression operators to query operators.
var symbolOps = map[string]ast.Operator{
	"=":          ast.OpEq,
	"!=":         ast.OpNe,
	">":          ast.OpGt,
	">=":         ast.OpGte,
	"<":          ast.OpLt,
	"<=":         ast.OpLte,
	"contains":   ast.OpContains,
	"startsWith": ast.OpStartsWith,
	"endsWith":   ast.OpEndsWith,
	"in":         ast.OpIn,
	"notIn":      ast.OpNotIn,
}

// Parse converts a filter expression into a where clause. An empty or
// blank input yields a nil clause, which matches every row.
func Parse(input string) (ast.Where, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	expr, err := parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ast.ErrInvalidQuery, err)
	}

	where := make(ast.Where, len(expr.Conditions))
	for _, c := range expr.Conditions {
		cond, op, err := c.toCondition()
		if err != nil {
			return nil, err
		}
		if err := mergeCondition(where, c.Field, cond, op); err != nil {
			return nil, err
		}
	}
	return where, nil
}

func (c *condition) toCondition() (ast.Condition, ast.Operator, error) {
	raw := c.SymOp
	if raw == "" {
		raw = c.WordOp
	}
	op := symbolOps[raw]

	if c.List != nil || (c.One == nil && c.List == nil) {
		if op != ast.OpIn && op != ast.OpNotIn {
			return nil, "", fmt.Errorf("%w: operator %q does not take a list operand", ast.ErrInvalidQuery, raw)
		}
		values := make([]interface{}, len(c.List))
		for i, o := range c.List {
			values[i] = o.value()
		}
		return ast.OperatorSet{Ops: map[ast.Operator]interface{}{op: values}}, op, nil
	}

	if op == ast.OpIn || op == ast.OpNotIn {
		return nil, "", fmt.Errorf("%w: operator %q requires a list operand", ast.ErrInvalidQuery, raw)
	}

	v := c.One.value()

	// "= null" means "the field is null": only a literal condition can
	// match a null field value.
	if op == ast.OpEq && v == nil {
		return ast.Literal{Value: nil}, op, nil
	}

	return ast.OperatorSet{Ops: map[ast.Operator]interface{}{op: v}}, op, nil
}

func (o *operand) value() interface{} {
	switch {
	case o.Str != nil:
		return *o.Str
	case o.Num != nil:
		return *o.Num
	case o.True:
		return true
	case o.False:
		return false
	default:
		return nil
	}
}

// mergeCondition folds repeated mentions of one field into a single
// operator set, so `age > 20 AND age < 30` works as expected.
func mergeCondition(where ast.Where, field string, cond ast.Condition, op ast.Operator) error {
	existing, ok := where[field]
	if !ok {
		where[field] = cond
		return nil
	}

	prev, prevOk := existing.(ast.OperatorSet)
	next, nextOk := cond.(ast.OperatorSet)
	if !prevOk || !nextOk {
		return fmt.Errorf("%w: conflicting conditions for field %q", ast.ErrInvalidQuery, field)
	}
	if _, dup := prev.Ops[op]; dup {
		return fmt.Errorf("%w: duplicate operator %q for field %q", ast.ErrInvalidQuery, op, field)
	}
	prev.Ops[op] = next.Ops[op]
	return nil
}
