package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

// PDFExporter renders statements with the built-in Helvetica font.
// The core fonts carry no Arabic glyphs, so the document is always laid out in English.
type PDFExporter struct {
	logger *zap.Logger
}

// NewPDFExporter creates a pdf exporter
func NewPDFExporter(logger *zap.Logger) *PDFExporter {
	return &PDFExporter{logger: logger}
}

// Format implements port.StatementExporter
func (e *PDFExporter) Format() string { return "pdf" }

// ContentType implements port.StatementExporter
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Export implements port.StatementExporter
func (e *PDFExporter) Export(ctx context.Context, doc port.StatementDocument) ([]byte, error) {
	tr := i18n.NewTranslator(i18n.English)
	money := i18n.NewCurrencyFormatter(i18n.English, doc.Currency)

	pdf := gofpdf.New("P", "mm", "A4", "")
	enc := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr.T("statement.title", nil), true)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, enc(doc.Company.CompanyName))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, enc(doc.Company.Address+"  |  "+doc.Company.Phone+"  |  "+doc.Company.Email))
	pdf.Ln(10)

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, enc(tr.T("statement.title", nil)))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, enc(fmt.Sprintf("%s: %s (%s)", tr.T("statement.client", nil), doc.Client.CompanyName, doc.Client.Phone)))
	pdf.Ln(5)
	pdf.Cell(0, 6, enc("Generated: "+doc.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	colW := []float64{26, 76, 26, 26, 28}
	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.SetDrawColor(200, 200, 200)
		for i, key := range []string{"statement.date", "statement.description", "statement.debit", "statement.credit", "statement.balance"} {
			align := "R"
			if i < 2 {
				align = "L"
			}
			ln := 0
			if i == len(colW)-1 {
				ln = 1
			}
			pdf.CellFormat(colW[i], 8, enc(tr.T(key, nil)), "1", ln, align, true, 0, "")
		}
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	if doc.Statement.Empty() {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 8, enc(tr.T("statement.noTransactions", nil)), "1", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	for _, trx := range doc.Statement.Transactions {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			header()
		}
		pdf.CellFormat(colW[0], 8, trx.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], 8, enc(trimTo(trx.LocalizedDescription(i18n.English), 48)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 8, enc(money.FormatCurrency(trx.Debit)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[3], 8, enc(money.FormatCurrency(trx.Credit)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[4], 8, enc(money.FormatCurrency(trx.Balance)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	for _, t := range []struct {
		key   string
		value float64
	}{
		{"statement.totalDebit", doc.Statement.TotalDebit},
		{"statement.totalCredit", doc.Statement.TotalCredit},
		{"statement.netBalance", doc.Statement.NetBalance},
	} {
		pdf.CellFormat(colW[0]+colW[1]+colW[2]+colW[3], 8, enc(tr.T(t.key, nil)), "", 0, "R", false, 0, "")
		pdf.CellFormat(colW[4], 8, enc(money.FormatCurrency(t.value)), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 5, enc(fmt.Sprintf("%s: %s", tr.T("statement.bank", nil), doc.Company.BankName)))
	pdf.Ln(5)
	pdf.Cell(0, 5, enc(fmt.Sprintf("%s: %s", tr.T("statement.iban", nil), doc.Company.IBAN)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		e.logger.Error("Failed to build statement pdf", zap.String("client_id", doc.Client.ID), zap.Error(err))
		return nil, fmt.Errorf("pdf build failed: %w", err)
	}
	return buf.Bytes(), nil
}

func trimTo(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

var _ port.StatementExporter = (*PDFExporter)(nil)
