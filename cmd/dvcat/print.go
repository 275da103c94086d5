package main

import (
	"fmt"
	"io"
	"strings"

	jsonv2 "github.com/go-json-experiment/json"

	"github.com/fulldump/dataview/service"
	"github.com/fulldump/dataview/utils"
)

func printRows(w io.Writer, page service.RowsPage, groupingLevels int) error {

	for _, row := range page.Rows {
		var line string
		switch row.Kind {
		case service.RowKindGroup:
			marker := "-"
			if row.Collapsed {
				marker = "+"
			}
			line = fmt.Sprintf("%s%s %s (%d)", indent(row.Level), marker, row.Title, row.Count)
		case service.RowKindTotals:
			line = indent(row.Level+1) + "= " + formatTotals(row.Totals)
		default:
			b, err := jsonv2.Marshal(row.Item, jsonv2.Deterministic(true))
			if err != nil {
				return fmt.Errorf("print row %d: %w", row.Row, err)
			}
			line = indent(groupingLevels) + string(b)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if page.Paging.PageSize > 0 {
		_, err := fmt.Fprintf(w, "page %d/%d, %d rows\n", page.Paging.PageNum+1, page.Paging.TotalPages, page.Paging.TotalRows)
		return err
	}
	return nil
}

func indent(level int) string {
	return strings.Repeat("  ", level)
}

// formatTotals prints sum(score)=19 avg(score)=9.5, sorted by kind and field.
func formatTotals(totals map[string]map[string]any) string {
	parts := []string{}
	for _, kind := range utils.GetKeys(totals) {
		for _, field := range utils.GetKeys(totals[kind]) {
			v := totals[kind][field]
			if v == nil {
				v = "-"
			}
			parts = append(parts, fmt.Sprintf("%s(%s)=%v", kind, field, v))
		}
	}
	return strings.Join(parts, " ")
}
