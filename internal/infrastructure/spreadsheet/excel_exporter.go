// Package spreadsheet writes the jobs export as an .xlsx workbook.
package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/revops-api/internal/application/analytics"
)

const (
	sheetName  = "Jobs"
	timeLayout = "2006-01-02 15:04"
)

// Columns the header row, in order.
var Columns = []string{
	"Job ID", "Customer Name", "Phone", "Vehicle Number", "Car Model", "Work Description",
	"Estimated Amount", "Advance Paid", "Total Paid", "Remaining", "Status", "Created At", "Completed At",
}

// ExcelExporter implements analytics.JobExporter.
type ExcelExporter struct{}

var _ analytics.JobExporter = (*ExcelExporter)(nil)

// NewExcelExporter builds the exporter.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// ExportJobs writes one header row plus one row per job. Amounts are numeric cells.
func (e *ExcelExporter) ExportJobs(rows []analytics.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(Columns), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("xlsx: header style: %w", err)
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		completed := ""
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format(timeLayout)
		}
		values := []any{
			r.JobID, r.CustomerName, r.Phone, r.VehicleNumber, r.CarModel, r.WorkDescription,
			r.EstimatedAmount.InexactFloat64(), r.AdvancePaid.InexactFloat64(),
			r.TotalPaid.InexactFloat64(), r.Remaining.InexactFloat64(),
			r.Status, r.CreatedAt.Format(timeLayout), completed,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
