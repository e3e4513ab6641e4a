// Package ui renders CLI output: styled messages, result tables and
// markdown help.
package ui

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/satishbabariya/sheetdb/query/ast"
)

var (
	// Colors
	SuccessColor = lipgloss.Color("#00FF88")
	WarningColor = lipgloss.Color("#FFB800")
	ErrorColor   = lipgloss.Color("#FF4444")

	// Styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	nullText = color.New(color.FgHiBlack).Sprint("null")
)

// PrintSuccess prints a success message
func PrintSuccess(msg string) {
	fmt.Println(SuccessStyle.Render("✓ " + msg))
}

// PrintWarning prints a warning message
func PrintWarning(msg string) {
	fmt.Println(WarningStyle.Render("! " + msg))
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ "+msg))
}

// RenderRows prints rows as a table. Columns follow the select order when
// one was given, otherwise the sheet's field names sorted alphabetically.
func RenderRows(selected []string, rows []ast.Row) error {
	if len(rows) == 0 {
		pterm.Info.Println("no rows")
		return nil
	}

	columns := selected
	if len(columns) == 0 {
		for f := range rows[0] {
			columns = append(columns, f)
		}
		sort.Strings(columns)
	}

	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, columns)
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = formatValue(row[col])
		}
		data = append(data, cells)
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// RenderMarkdown renders markdown to the terminal
func RenderMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Println(out)
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return nullText
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
