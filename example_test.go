package sheetdb_test

import (
	"context"
	"fmt"

	"github.com/satishbabariya/sheetdb"
	"github.com/satishbabariya/sheetdb/query/ast"
)

type memorySource struct {
	rows []ast.Row
}

func (s memorySource) Rows(ctx context.Context) ([]ast.Row, error) {
	return s.rows, nil
}

func Example() {
	src := memorySource{rows: []ast.Row{
		{"name": "Alice", "age": 25.0},
		{"name": "Bob", "age": 30.0},
		{"name": "Charlie", "age": 35.0},
	}}
	client := sheetdb.New(src)

	rows, err := client.FindMany(context.Background(), ast.Options{
		Where:   ast.Where{"age": ast.Gt(25)},
		OrderBy: []ast.OrderBy{ast.OrderAsc("age")},
		Select:  []string{"name"},
	})
	if err != nil {
		panic(err)
	}
	for _, row := range rows {
		fmt.Println(row["name"])
	}
	// Output:
	// Bob
	// Charlie
}
