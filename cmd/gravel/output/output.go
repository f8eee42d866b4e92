// Package output renders CLI messages and rows.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Out receives everything the package prints.
var Out io.Writer = os.Stdout

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")
	colorCode    = lipgloss.Color("#A78BFA")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	codeStyle    = lipgloss.NewStyle().Foreground(colorCode)
)

func line(icon string, style lipgloss.Style, format string, args ...any) {
	_, _ = fmt.Fprintf(Out, "%s %s\n", style.Render(icon), fmt.Sprintf(format, args...))
}

// Success prints a success message
func Success(format string, args ...any) { line("✓", successStyle, format, args...) }

// Warning prints a warning message
func Warning(format string, args ...any) { line("⚠", warningStyle, format, args...) }

// Error prints an error message
func Error(format string, args ...any) { line("✗", errorStyle, format, args...) }

// Info prints an info message
func Info(format string, args ...any) { line("ℹ", infoStyle, format, args...) }

// Muted prints a muted message
func Muted(format string, args ...any) {
	_, _ = fmt.Fprintln(Out, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Section prints a section header
func Section(title string) {
	_, _ = fmt.Fprintf(Out, "\n%s\n%s\n", primaryStyle.Render(title), mutedStyle.Render(strings.Repeat("═", lipgloss.Width(title))))
}

// SQL prints a generated statement.
func SQL(stmt string) {
	_, _ = fmt.Fprintln(Out, codeStyle.Render(stmt))
}

// JSON prints v as indented JSON.
func JSON(v any) error {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Record prints one row as a two-column field/value table, in column order.
func Record(cols []string, row map[string]any) {
	t := table.NewWriter()
	t.SetOutputMirror(Out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"field", "value"})
	for _, col := range cols {
		t.AppendRow(table.Row{col, FormatValue(row[col])})
	}
	t.Render()
}

// Rows prints rows as a table with one column per entry of cols.
func Rows(cols []string, rows []map[string]any) {
	if len(rows) == 0 {
		Muted("(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(Out)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(cols))
		for i, col := range cols {
			r[i] = FormatValue(row[col])
		}
		t.AppendRow(r)
	}

	t.Render()
	Muted("(%d rows)", len(rows))
}

// FormatValue renders a column value for display.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return fmt.Sprintf("%.6f", x)
	default:
		return fmt.Sprint(x)
	}
}
