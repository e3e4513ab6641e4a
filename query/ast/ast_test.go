package ast

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCondition(t *testing.T) {
	t.Run("scalar becomes literal", func(t *testing.T) {
		cond, err := ParseCondition("Alice")
		if err != nil {
			t.Fatalf("ParseCondition failed: %v", err)
		}
		lit, ok := cond.(Literal)
		if !ok {
			t.Fatalf("expected Literal, got %T", cond)
		}
		if lit.Value != "Alice" {
			t.Errorf("expected Alice, got %v", lit.Value)
		}
	})

	t.Run("nil becomes literal nil", func(t *testing.T) {
		cond, err := ParseCondition(nil)
		if err != nil {
			t.Fatalf("ParseCondition failed: %v", err)
		}
		lit, ok := cond.(Literal)
		if !ok {
			t.Fatalf("expected Literal, got %T", cond)
		}
		if lit.Value != nil {
			t.Errorf("expected nil, got %v", lit.Value)
		}
	})

	t.Run("map becomes operator set", func(t *testing.T) {
		cond, err := ParseCondition(map[string]interface{}{"gt": 30, "lte": 40})
		if err != nil {
			t.Fatalf("ParseCondition failed: %v", err)
		}
		ops, ok := cond.(OperatorSet)
		if !ok {
			t.Fatalf("expected OperatorSet, got %T", cond)
		}
		if len(ops.Ops) != 2 {
			t.Errorf("expected 2 operators, got %d", len(ops.Ops))
		}
	})

	t.Run("unknown operator rejected at construction", func(t *testing.T) {
		_, err := ParseCondition(map[string]interface{}{"between": []int{1, 2}})
		if !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("expected ErrInvalidQuery, got %v", err)
		}
	})

	t.Run("all unknown operators reported together", func(t *testing.T) {
		_, err := ParseCondition(map[string]interface{}{
			"between": 1,
			"approx":  2,
			"gt":      3,
		})
		if err == nil {
			t.Fatal("expected error for unknown operators")
		}
		msg := err.Error()
		if !strings.Contains(msg, "approx") || !strings.Contains(msg, "between") {
			t.Errorf("expected both unknown operators in %q", msg)
		}
		if strings.Contains(msg, `"gt"`) {
			t.Errorf("gt is valid and should not be reported: %q", msg)
		}
	})
}

func TestOperatorSetValidate(t *testing.T) {
	t.Run("empty set rejected", func(t *testing.T) {
		err := OperatorSet{Ops: map[Operator]interface{}{}}.Validate()
		if !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("expected ErrInvalidQuery, got %v", err)
		}
	})

	t.Run("in requires a sequence", func(t *testing.T) {
		err := OperatorSet{Ops: map[Operator]interface{}{OpIn: "Alice"}}.Validate()
		if !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("expected ErrInvalidQuery, got %v", err)
		}
	})

	t.Run("notIn requires a sequence", func(t *testing.T) {
		err := OperatorSet{Ops: map[Operator]interface{}{OpNotIn: 42}}.Validate()
		if !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("expected ErrInvalidQuery, got %v", err)
		}
	})

	t.Run("valid set passes", func(t *testing.T) {
		err := OperatorSet{Ops: map[Operator]interface{}{
			OpGte: 18,
			OpIn:  []interface{}{18.0, 21.0},
		}}.Validate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"empty options", Options{}, false},
		{"negative limit", Options{Limit: Int(-1)}, true},
		{"negative offset", Options{Offset: Int(-3)}, true},
		{"zero limit", Options{Limit: Int(0)}, false},
		{"valid order", Options{OrderBy: []OrderBy{OrderAsc("age")}}, false},
		{"bad direction", Options{OrderBy: []OrderBy{{Field: "age", Direction: "down"}}}, true},
		{"bad where", Options{Where: Where{"age": OperatorSet{Ops: map[Operator]interface{}{"near": 1}}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("expected ErrInvalidQuery, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConditionConstructors(t *testing.T) {
	if got := In("a", "b").(OperatorSet).Ops[OpIn].([]interface{}); len(got) != 2 {
		t.Errorf("In: expected 2 candidates, got %d", len(got))
	}
	if got := Gt(30).(OperatorSet).Ops[OpGt]; got != 30 {
		t.Errorf("Gt: expected 30, got %v", got)
	}
	if got := Contains("li").(OperatorSet).Ops[OpContains]; got != "li" {
		t.Errorf("Contains: expected li, got %v", got)
	}
}
