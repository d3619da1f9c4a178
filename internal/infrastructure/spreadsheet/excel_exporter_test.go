package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/revops-api/internal/application/analytics"
)

func TestExportJobs_HeaderAndRows(t *testing.T) {
	created := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	out, err := NewExcelExporter().ExportJobs([]analytics.ExportRow{{
		JobID:           "j-1",
		CustomerName:    "Ravi",
		VehicleNumber:   "KA01AB1234",
		EstimatedAmount: decimal.NewFromInt(5000),
		TotalPaid:       decimal.NewFromInt(2000),
		Remaining:       decimal.NewFromInt(3000),
		Status:          "pending",
		CreatedAt:       created,
	}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "j-1", rows[1][0])
	assert.Equal(t, "5000", rows[1][6])
	assert.Equal(t, "3000", rows[1][9])
	assert.Equal(t, "2026-05-01 09:30", rows[1][11])
}

func TestExportJobs_EmptyStillHasHeader(t *testing.T) {
	out, err := NewExcelExporter().ExportJobs(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
