package ledger

import (
	"sort"
	"time"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/pkg/utils"
)

// ValidatePaymentForm requires an invoice and a finite non-zero amount
func ValidatePaymentForm(form entity.PaymentForm) error {
	errs := entity.ValidationErrors{}
	if form.InvoiceID == "" {
		errs.Add("invoiceId", entity.MsgFieldRequired)
	}
	if utils.ValidateAmount(form.Amount) != nil {
		errs.Add("amount", entity.MsgFieldRequired)
	}
	if form.Method != "" && !form.Method.IsValid() {
		errs.Add("method", entity.MsgInvalidValue)
	}
	return errs.OrNil()
}

// NewPayment builds a confirmed payment from the admin form.
// The client comes from the referenced invoice and is empty when the invoice is unknown.
func NewPayment(invoices []entity.Invoice, form entity.PaymentForm, id string, now time.Time) entity.Payment {
	clientID := ""
	if inv, ok := FindInvoice(invoices, form.InvoiceID); ok {
		clientID = inv.ClientID
	}

	method := form.Method
	if method == "" {
		method = entity.PaymentMethodBankTransfer
	}

	date := form.Date
	if date == "" {
		date = now.Format(entity.DateLayout)
	}

	return entity.Payment{
		ID:        id,
		InvoiceID: form.InvoiceID,
		ClientID:  clientID,
		Date:      date,
		Amount:    form.Amount,
		Method:    method,
		MethodAr:  method.Arabic(),
		Status:    entity.PaymentStatusConfirmed,
	}
}

// RecordPayment appends payment to the log and settles its invoice.
// There is no duplicate check; a second payment for the same invoice is appended too.
func RecordPayment(s State, payment entity.Payment) State {
	payments := make([]entity.Payment, len(s.Payments), len(s.Payments)+1)
	copy(payments, s.Payments)
	payments = append(payments, payment)

	s.Payments = payments
	s.Invoices = MarkPaid(s.Invoices, payment.InvoiceID)
	return s
}

// PaymentsWithCustomer joins each payment with its invoice's customer name, or N/A
func PaymentsWithCustomer(payments []entity.Payment, invoices []entity.Invoice) []entity.PaymentView {
	names := make(map[string]string, len(invoices))
	for _, inv := range invoices {
		names[inv.ID] = inv.CustomerName
	}

	out := make([]entity.PaymentView, 0, len(payments))
	for _, p := range payments {
		name, ok := names[p.InvoiceID]
		if !ok {
			name = entity.NotAvailable
		}
		out = append(out, entity.PaymentView{Payment: p, CustomerName: name})
	}
	return out
}

// PaymentsForClient filters the payment log to one client
func PaymentsForClient(payments []entity.Payment, clientID string) []entity.Payment {
	out := make([]entity.Payment, 0)
	for _, p := range payments {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// DuplicateInvoiceIDs reports invoices that carry more than one payment, sorted.
// It is a report only; recording never consults it.
func DuplicateInvoiceIDs(payments []entity.Payment) []string {
	counts := make(map[string]int)
	for _, p := range payments {
		counts[p.InvoiceID]++
	}

	dups := make([]string, 0)
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	return dups
}
