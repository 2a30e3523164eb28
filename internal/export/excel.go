// Package export renders invoice data into downloadable documents: an Excel
// workbook for the invoice list and a PDF for a single invoice. It consumes
// the service layer's annotated invoices so the figures always match the
// balance calculator.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/smallbiz/backoffice/internal/application/service"
)

// ExcelWriter writes invoice list workbooks
type ExcelWriter struct {
	logger *zap.Logger
}

// NewExcelWriter creates a new Excel writer
func NewExcelWriter(logger *zap.Logger) *ExcelWriter {
	return &ExcelWriter{logger: logger}
}

var excelHeaders = []string{
	"Invoice Number", "Invoice Date", "Due Date", "Total", "Status",
	"Contact Balance", "Notes",
}

// WriteInvoiceList writes one sheet with a header row and one row per
// invoice to w
func (e *ExcelWriter) WriteInvoiceList(invoices []*service.InvoiceWithStatus, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for col, h := range excelHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to set header cell: %w", err)
		}
	}

	for i, inv := range invoices {
		row := i + 2
		dueDate := ""
		if inv.DueDate != nil {
			dueDate = time.Unix(*inv.DueDate, 0).UTC().Format("2006-01-02")
		}

		values := []interface{}{
			inv.InvoiceNumber,
			time.Unix(inv.InvoiceDate, 0).UTC().Format("2006-01-02"),
			dueDate,
			inv.Total,
			inv.Status,
			inv.Summary.Balance,
			inv.Notes,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to set cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		e.logger.Error("Failed to write invoice workbook", zap.Error(err))
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("Invoice workbook written", zap.Int("invoices", len(invoices)))
	return nil
}
