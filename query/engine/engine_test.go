package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/satishbabariya/sheetdb/query/ast"
)

type staticSource struct {
	rows []ast.Row
	err  error
}

func (s *staticSource) Rows(ctx context.Context) ([]ast.Row, error) {
	return s.rows, s.err
}

func people() *staticSource {
	return &staticSource{rows: []ast.Row{
		{"name": "Alice", "age": 25.0, "city": "Oslo"},
		{"name": "Bob", "age": 30.0, "city": "Bergen"},
		{"name": "Charlie", "age": 35.0, "city": "Oslo"},
		{"name": "David", "age": 28.0, "city": "Bergen"},
	}}
}

func TestFindMany(t *testing.T) {
	ctx := context.Background()
	e := New(people())

	t.Run("no options returns everything", func(t *testing.T) {
		rows, err := e.FindMany(ctx, ast.Options{})
		if err != nil {
			t.Fatalf("FindMany failed: %v", err)
		}
		if len(rows) != 4 {
			t.Errorf("expected 4 rows, got %d", len(rows))
		}
	})

	t.Run("filter", func(t *testing.T) {
		rows, err := e.FindMany(ctx, ast.Options{
			Where: ast.Where{"age": ast.Gt(30)},
		})
		if err != nil {
			t.Fatalf("FindMany failed: %v", err)
		}
		if len(rows) != 1 || rows[0]["name"] != "Charlie" {
			t.Errorf("expected Charlie, got %v", rows)
		}
	})

	t.Run("order then paginate", func(t *testing.T) {
		rows, err := e.FindMany(ctx, ast.Options{
			OrderBy: []ast.OrderBy{ast.OrderAsc("age")},
			Offset:  ast.Int(1),
			Limit:   ast.Int(1),
		})
		if err != nil {
			t.Fatalf("FindMany failed: %v", err)
		}
		if len(rows) != 1 || rows[0]["name"] != "David" {
			t.Errorf("expected David (second youngest), got %v", rows)
		}
	})

	t.Run("full pipeline", func(t *testing.T) {
		rows, err := e.FindMany(ctx, ast.Options{
			Where:   ast.Where{"city": ast.Literal{Value: "Bergen"}},
			OrderBy: []ast.OrderBy{ast.OrderDesc("age")},
			Select:  []string{"name"},
		})
		if err != nil {
			t.Fatalf("FindMany failed: %v", err)
		}
		got := make([]string, len(rows))
		for i, r := range rows {
			got[i] = r["name"].(string)
			if len(r) != 1 {
				t.Errorf("select should keep only name, got %v", r)
			}
		}
		if !reflect.DeepEqual(got, []string{"Bob", "David"}) {
			t.Errorf("expected [Bob David], got %v", got)
		}
	})

	t.Run("in membership", func(t *testing.T) {
		rows, err := e.FindMany(ctx, ast.Options{
			Where: ast.Where{"name": ast.In("Alice", "Bob")},
		})
		if err != nil {
			t.Fatalf("FindMany failed: %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("expected 2 rows, got %d", len(rows))
		}
	})

	t.Run("idempotent across calls", func(t *testing.T) {
		opts := ast.Options{
			Where:   ast.Where{"city": ast.Literal{Value: "Oslo"}},
			OrderBy: []ast.OrderBy{ast.OrderAsc("age")},
		}
		a, err := e.FindMany(ctx, opts)
		if err != nil {
			t.Fatalf("FindMany failed: %v", err)
		}
		b, err := e.FindMany(ctx, opts)
		if err != nil {
			t.Fatalf("FindMany failed: %v", err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("same options over same snapshot must give same rows: %v vs %v", a, b)
		}
	})

	t.Run("empty source yields empty non-nil slice", func(t *testing.T) {
		empty := New(&staticSource{})
		rows, err := empty.FindMany(ctx, ast.Options{Select: []string{"anything"}})
		if err != nil {
			t.Fatalf("FindMany failed: %v", err)
		}
		if rows == nil || len(rows) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", rows)
		}
	})

	t.Run("invalid options rejected before fetch", func(t *testing.T) {
		failing := New(&staticSource{err: errors.New("should not be reached")})
		_, err := failing.FindMany(ctx, ast.Options{Limit: ast.Int(-1)})
		if !errors.Is(err, ast.ErrInvalidQuery) {
			t.Fatalf("expected ErrInvalidQuery, got %v", err)
		}
	})

	t.Run("source error surfaces", func(t *testing.T) {
		boom := errors.New("fetch blew up")
		failing := New(&staticSource{err: boom})
		_, err := failing.FindMany(ctx, ast.Options{})
		if !errors.Is(err, boom) {
			t.Fatalf("expected source error, got %v", err)
		}
	})
}

func TestFindUnique(t *testing.T) {
	ctx := context.Background()
	e := New(people())

	t.Run("exactly one", func(t *testing.T) {
		row, err := e.FindUnique(ctx, ast.Options{
			Where: ast.Where{"name": ast.Literal{Value: "Alice"}},
		})
		if err != nil {
			t.Fatalf("FindUnique failed: %v", err)
		}
		if row["age"] != 25.0 {
			t.Errorf("unexpected row: %v", row)
		}
	})

	t.Run("no match is nil, nil", func(t *testing.T) {
		row, err := e.FindUnique(ctx, ast.Options{
			Where: ast.Where{"name": ast.Literal{Value: "Zoe"}},
		})
		if err != nil || row != nil {
			t.Errorf("expected nil, nil; got %v, %v", row, err)
		}
	})

	t.Run("multiple matches fail", func(t *testing.T) {
		_, err := e.FindUnique(ctx, ast.Options{
			Where: ast.Where{"city": ast.Literal{Value: "Oslo"}},
		})
		if !errors.Is(err, ErrMultipleResults) {
			t.Fatalf("expected ErrMultipleResults, got %v", err)
		}
	})

	t.Run("pagination can restore uniqueness", func(t *testing.T) {
		row, err := e.FindUnique(ctx, ast.Options{
			Where: ast.Where{"city": ast.Literal{Value: "Oslo"}},
			Limit: ast.Int(1),
		})
		if err != nil {
			t.Fatalf("FindUnique failed: %v", err)
		}
		if row == nil {
			t.Fatal("expected a row")
		}
	})
}

func TestFindFirstLast(t *testing.T) {
	ctx := context.Background()
	e := New(people())

	opts := ast.Options{OrderBy: []ast.OrderBy{ast.OrderAsc("age")}}

	first, err := e.FindFirst(ctx, opts)
	if err != nil {
		t.Fatalf("FindFirst failed: %v", err)
	}
	if first["name"] != "Alice" {
		t.Errorf("expected Alice first, got %v", first)
	}

	last, err := e.FindLast(ctx, opts)
	if err != nil {
		t.Fatalf("FindLast failed: %v", err)
	}
	if last["name"] != "Charlie" {
		t.Errorf("expected Charlie last, got %v", last)
	}

	none := ast.Options{Where: ast.Where{"name": ast.Literal{Value: "Zoe"}}}
	if row, err := e.FindFirst(ctx, none); err != nil || row != nil {
		t.Errorf("FindFirst on empty result: got %v, %v", row, err)
	}
	if row, err := e.FindLast(ctx, none); err != nil || row != nil {
		t.Errorf("FindLast on empty result: got %v, %v", row, err)
	}
}

func TestCount(t *testing.T) {
	ctx := context.Background()
	e := New(people())

	n, err := e.Count(ctx, ast.Options{Where: ast.Where{"city": ast.Literal{Value: "Bergen"}}})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}

	// Count sees the same pipeline as FindMany, pagination included.
	n, err = e.Count(ctx, ast.Options{Limit: ast.Int(3)})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected limit to bound the count, got %d", n)
	}
}

func TestDropIncompletePolicy(t *testing.T) {
	ctx := context.Background()
	src := &staticSource{rows: []ast.Row{
		{"name": "Alice", "age": 25.0},
		{"name": "Bob", "age": nil},
	}}

	e := New(src)
	rows, err := e.FindMany(ctx, ast.Options{OrderBy: []ast.OrderBy{ast.OrderAsc("age")}})
	if err != nil {
		t.Fatalf("FindMany failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("default policy should drop the incomplete row, got %d rows", len(rows))
	}

	e.SetDropIncompleteRows(false)
	rows, err = e.FindMany(ctx, ast.Options{OrderBy: []ast.OrderBy{ast.OrderAsc("age")}})
	if err != nil {
		t.Fatalf("FindMany failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("policy off should keep the incomplete row, got %d rows", len(rows))
	}

	// Without orderBy the policy is irrelevant either way.
	e.SetDropIncompleteRows(true)
	rows, err = e.FindMany(ctx, ast.Options{})
	if err != nil {
		t.Fatalf("FindMany failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("unordered queries keep incomplete rows, got %d", len(rows))
	}
}
