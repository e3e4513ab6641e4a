package commands

import (
	"testing"

	"github.com/satishbabariya/sheetdb/query/ast"
)

func TestParseOrderBy(t *testing.T) {
	t.Run("bare field is ascending", func(t *testing.T) {
		got, err := parseOrderBy([]string{"age"})
		if err != nil {
			t.Fatalf("parseOrderBy failed: %v", err)
		}
		if len(got) != 1 || got[0] != ast.OrderAsc("age") {
			t.Errorf("unexpected keys: %v", got)
		}
	})

	t.Run("explicit directions", func(t *testing.T) {
		got, err := parseOrderBy([]string{"city:asc", "age:desc"})
		if err != nil {
			t.Fatalf("parseOrderBy failed: %v", err)
		}
		if got[0] != ast.OrderAsc("city") || got[1] != ast.OrderDesc("age") {
			t.Errorf("unexpected keys: %v", got)
		}
	})

	t.Run("bad direction rejected", func(t *testing.T) {
		if _, err := parseOrderBy([]string{"age:down"}); err == nil {
			t.Error("expected an error for an unknown direction")
		}
	})

	t.Run("missing field rejected", func(t *testing.T) {
		if _, err := parseOrderBy([]string{":asc"}); err == nil {
			t.Error("expected an error for a missing field")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := parseOrderBy(nil)
		if err != nil || got != nil {
			t.Errorf("expected nil, nil; got %v, %v", got, err)
		}
	})
}
