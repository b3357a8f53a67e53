package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/exec"
)

// renderResult formats a query result as a markdown table per selected
// column — id/value/time datums, sorted by column name for a stable
// rendering order — mirroring the teacher's own single-relation
// FormatRelation (datalog/executor/table_formatter.go), adapted here
// since coldb's Result is a set of independently-sized column slices
// rather than one joined relation.
func renderResult(result *exec.Result) string {
	if len(result.Columns) == 0 {
		return "_no columns selected_\n"
	}

	cols := make([]coldb.ColumnName, 0, len(result.Columns))
	for c := range result.Columns {
		cols = append(cols, c)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].String() < cols[j].String() })

	sb := &strings.Builder{}
	for _, col := range cols {
		renderColumn(sb, col, result.Columns[col])
	}
	return sb.String()
}

func renderColumn(sb *strings.Builder, col coldb.ColumnName, rows []exec.Row) {
	fmt.Fprintf(sb, "### %s\n\n", col)
	if len(rows) == 0 {
		sb.WriteString("_no rows_\n\n")
		return
	}

	alignment := []tw.Align{tw.AlignNone, tw.AlignNone, tw.AlignNone}
	table := tablewriter.NewTable(sb,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"id", "value", "time"})
	for _, r := range rows {
		table.Append([]string{
			fmt.Sprintf("%d", r.ID),
			r.Value.String(),
			fmt.Sprintf("%d", r.Time),
		})
	}
	table.Render()
	fmt.Fprintf(sb, "\n_%d row(s)_\n\n", len(rows))
}
