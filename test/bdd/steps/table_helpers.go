package steps

import (
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"
)

// tableRows returns each data row of table keyed by its header cells
func tableRows(table *godog.Table) []map[string]string {
	if len(table.Rows) < 2 {
		return nil
	}
	header := table.Rows[0]
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		rows = append(rows, rowValues(header, row))
	}
	return rows
}

func rowValues(header, row *messages.PickleTableRow) map[string]string {
	values := make(map[string]string, len(header.Cells))
	for i, cell := range header.Cells {
		if i < len(row.Cells) {
			values[cell.Value] = row.Cells[i].Value
		}
	}
	return values
}

func cellInt(row map[string]string, column string) (int64, error) {
	v, err := strconv.ParseInt(row[column], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", column, err)
	}
	return v, nil
}
