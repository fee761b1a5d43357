// Package formatter renders normalized query results for display.
package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rediwo/redi-query/types"
)

// Format selects an output layout
type Format string

const (
	FormatTable  Format = "table"
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatRecord Format = "record"
)

// Render formats a result in the requested output format. Mutation results
// render as an affected-rows line regardless of format.
func Render(result *types.Result, format Format) (string, error) {
	if !result.IsSelect {
		if result.LastInsertID != "" {
			return fmt.Sprintf("Affected rows: %d, Last insert ID: %s", result.AffectedRows, result.LastInsertID), nil
		}
		return fmt.Sprintf("Affected rows: %d", result.AffectedRows), nil
	}

	switch format {
	case FormatTable:
		return renderTable(result), nil
	case FormatCSV:
		return renderCSV(result)
	case FormatJSON:
		return renderJSON(result)
	case FormatRecord:
		return renderRecord(result), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

// cellString renders a single value; NULLs display as "NULL"
func cellString(val any) string {
	if val == nil {
		return "NULL"
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", val)
}

func renderTable(result *types.Result) string {
	if len(result.Columns) == 0 {
		return "(No results)"
	}

	widths := make([]int, len(result.Columns))
	for i, col := range result.Columns {
		widths[i] = len(col)
	}
	for _, row := range result.Rows {
		for i, val := range row {
			if l := len(cellString(val)); l > widths[i] {
				widths[i] = l
			}
		}
	}

	var sep strings.Builder
	sep.WriteString("+")
	for _, w := range widths {
		sep.WriteString(strings.Repeat("-", w+2))
		sep.WriteString("+")
	}

	formatRow := func(cells []string) string {
		var b strings.Builder
		b.WriteString("|")
		for i, cell := range cells {
			fmt.Fprintf(&b, " %-*s |", widths[i], cell)
		}
		return b.String()
	}

	lines := []string{sep.String(), formatRow(result.Columns), sep.String()}
	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, val := range row {
			cells[i] = cellString(val)
		}
		lines = append(lines, formatRow(cells))
	}
	lines = append(lines, sep.String())
	lines = append(lines, fmt.Sprintf("(%d %s)", len(result.Rows), plural("row", len(result.Rows))))

	return strings.Join(lines, "\n")
}

func renderRecord(result *types.Result) string {
	if len(result.Columns) == 0 || len(result.Rows) == 0 {
		return "(No results)"
	}

	maxLen := 0
	for _, col := range result.Columns {
		if len(col) > maxLen {
			maxLen = len(col)
		}
	}

	var lines []string
	for n, row := range result.Rows {
		lines = append(lines, fmt.Sprintf("*************************** %d. row ***************************", n+1))
		for i, col := range result.Columns {
			lines = append(lines, fmt.Sprintf("%*s: %s", maxLen, col, cellString(row[i])))
		}
	}
	lines = append(lines, fmt.Sprintf("(%d %s)", len(result.Rows), plural("row", len(result.Rows))))

	return strings.Join(lines, "\n")
}

func renderCSV(result *types.Result) (string, error) {
	if len(result.Columns) == 0 {
		return "", nil
	}

	var out strings.Builder
	w := csv.NewWriter(&out)
	if err := w.Write(result.Columns); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	for _, row := range result.Rows {
		record := make([]string, len(row))
		for i, val := range row {
			if val != nil {
				record[i] = cellString(val)
			}
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return strings.TrimRight(out.String(), "\n"), nil
}

func renderJSON(result *types.Result) (string, error) {
	if len(result.Columns) == 0 {
		return "[]", nil
	}

	records := make([]map[string]any, 0, len(result.Rows))
	for _, row := range result.Rows {
		record := make(map[string]any, len(result.Columns))
		for i, col := range result.Columns {
			val := row[i]
			switch val.(type) {
			case nil, string, bool, int, int32, int64, float32, float64:
				record[col] = val
			default:
				record[col] = fmt.Sprintf("%v", val)
			}
		}
		records = append(records, record)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(data), nil
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
