package shell

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	sfcore "github.com/natserract/sfcli/pkg/salesforce/core"
)

// renderRecords prints query results as a table with the requested field
// order, plus a row-count footer.
func renderRecords(w io.Writer, cols []string, records []sfcore.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "\n  (0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, record := range records {
		row := make(table.Row, len(cols))
		for i, col := range cols {
			row[i] = formatValue(record[col])
		}
		t.AppendRow(row)
	}

	fmt.Fprintln(w)
	t.Render()
	fmt.Fprintf(w, "  (%d rows)\n", len(records))
}

func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", v)
}
