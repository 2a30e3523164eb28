package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/smallbiz/backoffice/internal/application/service"
	"github.com/smallbiz/backoffice/internal/domain/balance"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

func TestExcelWriter_WriteInvoiceList(t *testing.T) {
	due := int64(1767225600) // 2026-01-01
	invoices := []*service.InvoiceWithStatus{
		{
			Invoice: &entity.Invoice{
				ID:            "i1234567891234",
				InvoiceNumber: "INV20260001",
				InvoiceDate:   1764547200, // 2025-12-01
				DueDate:       &due,
				Notes:         "net 30",
			},
			Total:   1500,
			Status:  balance.StatusPartial,
			Summary: balance.ContactSummary{TotalInvoiced: 1500, TotalPaid: 500, Balance: 1000},
		},
		{
			Invoice: &entity.Invoice{
				ID:            "i1234567895678",
				InvoiceNumber: "INV20260002",
				InvoiceDate:   1764633600,
			},
			Total:  250,
			Status: balance.StatusUnpaid,
		},
	}

	var buf bytes.Buffer
	w := NewExcelWriter(zap.NewNop())
	require.NoError(t, w.WriteInvoiceList(invoices, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice Number", header)

	number, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "INV20260001", number)

	dueCell, err := f.GetCellValue(sheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", dueCell)

	status, err := f.GetCellValue(sheet, "E3")
	require.NoError(t, err)
	assert.Equal(t, "unpaid", status)

	// Second invoice has no due date.
	emptyDue, err := f.GetCellValue(sheet, "C3")
	require.NoError(t, err)
	assert.Empty(t, emptyDue)
}

func TestExcelWriter_WriteInvoiceList_Empty(t *testing.T) {
	var buf bytes.Buffer
	w := NewExcelWriter(zap.NewNop())
	require.NoError(t, w.WriteInvoiceList(nil, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
