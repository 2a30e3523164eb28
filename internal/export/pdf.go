package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/smallbiz/backoffice/internal/application/service"
	"github.com/smallbiz/backoffice/internal/domain/balance"
	"github.com/smallbiz/backoffice/internal/domain/entity"
)

// PDFWriter renders single invoices as PDF documents
type PDFWriter struct {
	companyName string
	logger      *zap.Logger
}

// NewPDFWriter creates a new PDF writer. companyName appears in the
// document header
func NewPDFWriter(companyName string, logger *zap.Logger) *PDFWriter {
	return &PDFWriter{companyName: companyName, logger: logger}
}

// RenderInvoice renders inv and its billing contact into PDF bytes
func (p *PDFWriter) RenderInvoice(inv *service.InvoiceWithStatus, contact *entity.Contact) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 8, p.companyName)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 24)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 6, fmt.Sprintf("Invoice Number: %s", inv.InvoiceNumber))
	pdf.Cell(60, 6, fmt.Sprintf("Date: %s", formatDate(inv.InvoiceDate)))
	pdf.Ln(6)
	if inv.DueDate != nil {
		pdf.Cell(60, 6, fmt.Sprintf("Due Date: %s", formatDate(*inv.DueDate)))
		pdf.Ln(6)
	}
	pdf.Cell(60, 6, fmt.Sprintf("Status: %s", inv.Status))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Bill To:")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 5, contact.CompanyName)
	pdf.Ln(5)
	if contact.PersonIncharge != "" {
		pdf.Cell(0, 5, contact.PersonIncharge)
		pdf.Ln(5)
	}
	if contact.Email != "" {
		pdf.Cell(0, 5, contact.Email)
		pdf.Ln(5)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.Cell(100, 8, "Description")
	pdf.Cell(25, 8, "Qty")
	pdf.Cell(35, 8, "Unit Price")
	pdf.Cell(40, 8, "Amount")
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.LineItems {
		pdf.Cell(100, 6, item.Description)
		pdf.Cell(25, 6, fmt.Sprintf("%g", item.Quantity))
		pdf.Cell(35, 6, fmt.Sprintf("%.2f", item.UnitPrice))
		pdf.Cell(40, 6, fmt.Sprintf("%.2f", balance.LineItemTotal(item)))
		pdf.Ln(6)
	}

	pdf.Ln(10)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(110, pdf.GetY(), 90, 18, "D")
	pdf.SetFont("Arial", "B", 12)
	pdf.SetX(115)
	pdf.Cell(35, 18, "Total:")
	pdf.Cell(40, 18, fmt.Sprintf("%.2f", inv.Total))
	pdf.Ln(22)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		p.logger.Error("Failed to render invoice PDF",
			zap.String("invoice_id", inv.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func formatDate(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("January 2, 2006")
}
