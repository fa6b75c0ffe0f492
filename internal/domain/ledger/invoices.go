package ledger

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/workflow"
)

var lifecycle = workflow.NewInvoiceLifecycle()

// MarkPaid returns invoices with invoiceID set to Paid.
// When no invoice matches, the input slice itself is returned.
func MarkPaid(invoices []entity.Invoice, invoiceID string) []entity.Invoice {
	idx := indexOfInvoice(invoices, invoiceID)
	if idx < 0 {
		return invoices
	}

	paid, err := workflow.ApplyTrigger(context.Background(), lifecycle, invoices[idx], workflow.TriggerPay, timeNow())
	if err != nil {
		return invoices
	}
	return replaceInvoice(invoices, idx, paid)
}

// ReplaceInvoice returns a copy of invoices with the entry matching updated.ID swapped in.
// A miss returns the input unchanged.
func ReplaceInvoice(invoices []entity.Invoice, updated entity.Invoice) []entity.Invoice {
	idx := indexOfInvoice(invoices, updated.ID)
	if idx < 0 {
		return invoices
	}
	return replaceInvoice(invoices, idx, updated)
}

func replaceInvoice(invoices []entity.Invoice, idx int, inv entity.Invoice) []entity.Invoice {
	out := make([]entity.Invoice, len(invoices))
	copy(out, invoices)
	out[idx] = inv
	return out
}

// FindInvoice looks an invoice up by id
func FindInvoice(invoices []entity.Invoice, invoiceID string) (entity.Invoice, bool) {
	idx := indexOfInvoice(invoices, invoiceID)
	if idx < 0 {
		return entity.Invoice{}, false
	}
	return invoices[idx], true
}

func indexOfInvoice(invoices []entity.Invoice, invoiceID string) int {
	for i, inv := range invoices {
		if inv.ID == invoiceID {
			return i
		}
	}
	return -1
}

// InvoicesForClient returns the client's invoices, newest first
func InvoicesForClient(invoices []entity.Invoice, clientID string) []entity.Invoice {
	out := make([]entity.Invoice, 0)
	for _, inv := range invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return parseDate(out[i].Date).After(parseDate(out[j].Date))
	})
	return out
}

// PayableInvoices lists the invoices a payment can still be recorded against
func PayableInvoices(invoices []entity.Invoice) []entity.Invoice {
	out := make([]entity.Invoice, 0)
	for _, inv := range invoices {
		if !inv.IsPaid() {
			out = append(out, inv)
		}
	}
	return out
}

// IssueInvoice computes the totals of a draft.
// Tax is VAT over subtotal plus shipping, rounded to halalas.
func IssueInvoice(draft entity.InvoiceDraft) entity.Invoice {
	subtotal := decimal.Zero
	for _, item := range draft.Items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromFloat(item.Quantity))
		subtotal = subtotal.Add(line)
	}
	shipping := decimal.NewFromFloat(draft.Shipping)
	tax := subtotal.Add(shipping).Mul(decimal.RequireFromString(entity.VATRate)).Round(2)
	total := subtotal.Add(shipping).Add(tax)

	items := append([]entity.InvoiceItem(nil), draft.Items...)
	inv := entity.Invoice{
		ID:           draft.ID,
		OrderID:      draft.OrderID,
		ClientID:     draft.ClientID,
		CustomerName: draft.CustomerName,
		Date:         draft.Date,
		DueDate:      draft.DueDate,
		Items:        items,
		Subtotal:     subtotal.InexactFloat64(),
		Shipping:     shipping.InexactFloat64(),
		Tax:          tax.InexactFloat64(),
		Total:        total.InexactFloat64(),
	}
	return inv.WithStatus(entity.InvoiceStatusPendingPayment)
}

// ValidateDraft checks the fields an issued invoice cannot do without
func ValidateDraft(draft entity.InvoiceDraft) error {
	errs := entity.ValidationErrors{}
	if draft.ClientID == "" {
		errs.Add("clientId", entity.MsgFieldRequired)
	}
	if len(draft.Items) == 0 {
		errs.Add("items", entity.MsgFieldRequired)
	}
	for _, item := range draft.Items {
		if item.Quantity <= 0 || item.Price < 0 {
			errs.Add("items", entity.MsgInvalidValue)
			break
		}
	}
	if draft.Shipping < 0 {
		errs.Add("shipping", entity.MsgInvalidValue)
	}
	return errs.OrNil()
}

// Summarize computes the accounts dashboard figures.
// The top client is the customer with the highest invoiced total.
func Summarize(invoices []entity.Invoice) entity.InvoiceSummary {
	sales := decimal.Zero
	paid := decimal.Zero
	perClient := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, inv := range invoices {
		total := decimal.NewFromFloat(inv.Total)
		sales = sales.Add(total)
		if inv.IsPaid() {
			paid = paid.Add(total)
		}
		if _, seen := perClient[inv.CustomerName]; !seen {
			order = append(order, inv.CustomerName)
		}
		perClient[inv.CustomerName] = perClient[inv.CustomerName].Add(total)
	}

	top := entity.NotAvailable
	best := decimal.Zero
	for _, name := range order {
		if v := perClient[name]; top == entity.NotAvailable || v.GreaterThan(best) {
			top, best = name, v
		}
	}

	return entity.InvoiceSummary{
		InvoiceCount:  len(invoices),
		TotalSales:    sales.InexactFloat64(),
		TotalPaid:     paid.InexactFloat64(),
		TotalDue:      sales.Sub(paid).InexactFloat64(),
		TopClientName: top,
	}
}
