package plan

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CsvRenderer flattens a month view into CSV for download. Non-working day
// columns carry a "*" marker in the header so the export keeps the calendar
// context of the grid.
type CsvRenderer interface {
	Render(view MonthView) ([]byte, error)
}

type CsvRendererImpl struct{}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

func (r *CsvRendererImpl) Render(view MonthView) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Code", "Name"}
	for _, date := range view.Dates {
		column := strconv.Itoa(date.Day())
		if view.Calendar.IsNonWorking(date) {
			column += "*"
		}
		header = append(header, column)
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, it := range view.Items {
		record := []string{it.Code, it.Name}
		for _, date := range view.Dates {
			if quantity, exists := view.Grid.Quantity(it.Id, date); exists {
				record = append(record, strconv.Itoa(quantity))
			} else {
				record = append(record, "")
			}
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
