package source

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/satishbabariya/sheetdb/query/ast"
)

// DecodeCSV reads a CSV sheet export into rows. The first record is the
// header and defines the field set; every row of one sheet shares it.
// Cells are typed on the way in: empty cells become nil, "true"/"false"
// become booleans, numeric text becomes float64, everything else stays a
// string.
func DecodeCSV(r io.Reader) ([]ast.Row, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return []ast.Row{}, nil
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Cause: err}
	}

	rows := []ast.Row{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Line: line, Cause: err}
		}
		row := make(ast.Row, len(header))
		for i, field := range header {
			row[field] = decodeCell(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeCell(cell string) interface{} {
	if cell == "" {
		return nil
	}
	switch cell {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}
