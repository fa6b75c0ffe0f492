// Package export renders statements and invoice lists as xlsx and pdf documents.
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// #,##0.00
	amountNumFmt = 4
)

// XLSXExporter renders statements and invoice lists as spreadsheets.
// Amounts stay numeric, converted to the requested display currency.
type XLSXExporter struct {
	logger *zap.Logger
}

// NewXLSXExporter creates an xlsx exporter
func NewXLSXExporter(logger *zap.Logger) *XLSXExporter {
	return &XLSXExporter{logger: logger}
}

// Format implements port.StatementExporter
func (e *XLSXExporter) Format() string { return "xlsx" }

// ContentType implements port.StatementExporter
func (e *XLSXExporter) ContentType() string { return xlsxContentType }

// sheetWriter tracks the sheet being filled and remembers the first write error
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col, row int, value interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, value)
}

func (w *sheetWriter) style(fromCol, fromRow, toCol, toRow, styleID int) {
	if w.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, from, to, styleID)
}

// newWorkbook creates a single-sheet workbook named title, right-to-left for Arabic
func newWorkbook(title, lang string) (*sheetWriter, int, int, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", title); err != nil {
		f.Close()
		return nil, 0, 0, fmt.Errorf("failed to name sheet: %w", err)
	}
	if lang == i18n.Arabic {
		rtl := true
		if err := f.SetSheetView(title, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			f.Close()
			return nil, 0, 0, fmt.Errorf("failed to set sheet view: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, 0, 0, fmt.Errorf("failed to create style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
	if err != nil {
		f.Close()
		return nil, 0, 0, fmt.Errorf("failed to create style: %w", err)
	}
	return &sheetWriter{f: f, sheet: title}, bold, amount, nil
}

func (w *sheetWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Export implements port.StatementExporter
func (e *XLSXExporter) Export(ctx context.Context, doc port.StatementDocument) ([]byte, error) {
	tr := i18n.NewTranslator(doc.Lang)
	money := i18n.NewCurrencyFormatter(doc.Lang, doc.Currency)

	w, bold, amount, err := newWorkbook(tr.T("statement.title", nil), tr.Lang())
	if err != nil {
		return nil, err
	}
	defer w.f.Close()

	w.set(1, 1, companyName(doc.Company, tr.Lang()))
	w.set(1, 2, tr.T("statement.title", nil))
	w.set(1, 3, tr.T("statement.client", nil))
	w.set(2, 3, fmt.Sprintf("%s (%s)", doc.Client.CompanyName, doc.Client.Phone))
	w.set(1, 4, tr.T("statement.bank", nil))
	w.set(2, 4, doc.Company.BankName)
	w.set(1, 5, tr.T("statement.iban", nil))
	w.set(2, 5, doc.Company.IBAN)
	w.set(4, 5, money.Code())
	w.style(1, 1, 1, 2, bold)

	const headerRow = 7
	for i, key := range []string{"statement.date", "statement.description", "statement.debit", "statement.credit", "statement.balance"} {
		w.set(i+1, headerRow, tr.T(key, nil))
	}
	w.style(1, headerRow, 5, headerRow, bold)

	row := headerRow + 1
	if doc.Statement.Empty() {
		w.set(1, row, tr.T("statement.noTransactions", nil))
		row++
	}
	for _, trx := range doc.Statement.Transactions {
		w.set(1, row, trx.Date)
		w.set(2, row, trx.LocalizedDescription(tr.Lang()))
		w.set(3, row, money.Convert(trx.Debit))
		w.set(4, row, money.Convert(trx.Credit))
		w.set(5, row, money.Convert(trx.Balance))
		w.style(3, row, 5, row, amount)
		row++
	}

	row++
	totals := []struct {
		key   string
		value float64
	}{
		{"statement.totalDebit", doc.Statement.TotalDebit},
		{"statement.totalCredit", doc.Statement.TotalCredit},
		{"statement.netBalance", doc.Statement.NetBalance},
	}
	for _, t := range totals {
		w.set(4, row, tr.T(t.key, nil))
		w.set(5, row, money.Convert(t.value))
		w.style(4, row, 4, row, bold)
		w.style(5, row, 5, row, amount)
		row++
	}

	if w.err == nil {
		w.err = w.f.SetColWidth(w.sheet, "B", "B", 40)
	}
	data, err := w.bytes()
	if err != nil {
		e.logger.Error("Failed to build statement workbook", zap.String("client_id", doc.Client.ID), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// ExportInvoices implements port.InvoiceExporter
func (e *XLSXExporter) ExportInvoices(ctx context.Context, doc port.InvoiceListDocument) ([]byte, error) {
	tr := i18n.NewTranslator(doc.Lang)
	money := i18n.NewCurrencyFormatter(doc.Lang, doc.Currency)

	w, bold, amount, err := newWorkbook(tr.T("invoice.listTitle", nil), tr.Lang())
	if err != nil {
		return nil, err
	}
	defer w.f.Close()

	headers := []string{
		"invoice.id", "invoice.customer", "invoice.date", "invoice.dueDate",
		"invoice.subtotal", "invoice.shipping", "invoice.tax", "invoice.total", "invoice.status",
	}
	for i, key := range headers {
		w.set(i+1, 1, tr.T(key, nil))
	}
	w.style(1, 1, len(headers), 1, bold)

	for i, inv := range doc.Invoices {
		row := i + 2
		w.set(1, row, inv.ID)
		w.set(2, row, inv.CustomerName)
		w.set(3, row, inv.Date)
		w.set(4, row, inv.DueDate)
		w.set(5, row, money.Convert(inv.Subtotal))
		w.set(6, row, money.Convert(inv.Shipping))
		w.set(7, row, money.Convert(inv.Tax))
		w.set(8, row, money.Convert(inv.Total))
		w.set(9, row, tr.T("invoice.status."+inv.Status.String(), nil))
		w.style(5, row, 8, row, amount)
	}

	data, err := w.bytes()
	if err != nil {
		e.logger.Error("Failed to build invoice workbook", zap.Int("count", len(doc.Invoices)), zap.Error(err))
		return nil, err
	}
	return data, nil
}

func companyName(c entity.CompanySettings, lang string) string {
	if lang == i18n.Arabic && c.CompanyNameAr != "" {
		return c.CompanyNameAr
	}
	return c.CompanyName
}

var (
	_ port.StatementExporter = (*XLSXExporter)(nil)
	_ port.InvoiceExporter   = (*XLSXExporter)(nil)
)
