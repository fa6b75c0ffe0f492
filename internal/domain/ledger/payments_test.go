package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

func TestRecordPayment_SettlesInvoice(t *testing.T) {
	state := State{Invoices: sampleInvoices()}
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	form := entity.PaymentForm{InvoiceID: "INV-1", Amount: 500, Method: entity.PaymentMethodCash}
	require.NoError(t, ValidatePaymentForm(form))

	payment := NewPayment(state.Invoices, form, "PAY-1", now)
	next := RecordPayment(state, payment)

	require.Len(t, next.Payments, 1)
	assert.Empty(t, state.Payments, "input snapshot must not change")

	got := next.Payments[0]
	assert.Equal(t, entity.PaymentStatusConfirmed, got.Status)
	assert.Equal(t, "966500000001", got.ClientID)
	assert.Equal(t, "2024-05-10", got.Date)
	assert.Equal(t, entity.PaymentMethodCash, got.Method)
	assert.Equal(t, "نقداً", got.MethodAr)

	paid := 0
	for i, inv := range next.Invoices {
		if inv.Status == entity.InvoiceStatusPaid && inv.ID == "INV-1" {
			paid++
			continue
		}
		if inv.ID != "INV-1" {
			assert.Equal(t, state.Invoices[i], inv)
		}
	}
	assert.Equal(t, 1, paid)
}

func TestNewPayment_Defaults(t *testing.T) {
	now := time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC)

	payment := NewPayment(sampleInvoices(), entity.PaymentForm{InvoiceID: "MISSING", Amount: 10}, "PAY-2", now)

	assert.Equal(t, "", payment.ClientID, "unknown invoice falls back to an empty client")
	assert.Equal(t, entity.PaymentMethodBankTransfer, payment.Method)
	assert.Equal(t, "2024-01-02", payment.Date)
	assert.Equal(t, entity.PaymentStatusConfirmed, payment.Status)
}

func TestRecordPayment_UnknownInvoiceStillLogged(t *testing.T) {
	state := State{Invoices: sampleInvoices()}
	payment := NewPayment(state.Invoices, entity.PaymentForm{InvoiceID: "MISSING", Amount: 10}, "PAY-3", time.Now())

	next := RecordPayment(state, payment)

	assert.Len(t, next.Payments, 1)
	assert.Equal(t, state.Invoices, next.Invoices)
}

func TestRecordPayment_DuplicatesAreAllowed(t *testing.T) {
	state := State{Invoices: sampleInvoices()}
	form := entity.PaymentForm{InvoiceID: "INV-1", Amount: 500}

	state = RecordPayment(state, NewPayment(state.Invoices, form, "PAY-A", time.Now()))
	state = RecordPayment(state, NewPayment(state.Invoices, form, "PAY-B", time.Now()))

	assert.Len(t, state.Payments, 2)
	assert.Equal(t, []string{"INV-1"}, DuplicateInvoiceIDs(state.Payments))
}

func TestValidatePaymentForm(t *testing.T) {
	tests := []struct {
		name      string
		form      entity.PaymentForm
		wantField string
	}{
		{"missing invoice", entity.PaymentForm{Amount: 10}, "invoiceId"},
		{"zero amount", entity.PaymentForm{InvoiceID: "INV-1"}, "amount"},
		{"NaN amount", entity.PaymentForm{InvoiceID: "INV-1", Amount: math.NaN()}, "amount"},
		{"infinite amount", entity.PaymentForm{InvoiceID: "INV-1", Amount: math.Inf(1)}, "amount"},
		{"negative infinite amount", entity.PaymentForm{InvoiceID: "INV-1", Amount: math.Inf(-1)}, "amount"},
		{"bad method", entity.PaymentForm{InvoiceID: "INV-1", Amount: 1, Method: "Cheque"}, "method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr entity.ValidationErrors
			require.ErrorAs(t, ValidatePaymentForm(tt.form), &verr)
			assert.Contains(t, verr, tt.wantField)
		})
	}
}

func TestPaymentsWithCustomer(t *testing.T) {
	payments := []entity.Payment{
		{ID: "PAY-1", InvoiceID: "INV-2"},
		{ID: "PAY-2", InvoiceID: "GONE"},
	}

	views := PaymentsWithCustomer(payments, sampleInvoices())

	require.Len(t, views, 2)
	assert.Equal(t, "Palm Resort", views[0].CustomerName)
	assert.Equal(t, entity.NotAvailable, views[1].CustomerName)
}

func TestPaymentsForClient(t *testing.T) {
	payments := []entity.Payment{
		{ID: "PAY-1", ClientID: "a"},
		{ID: "PAY-2", ClientID: "b"},
		{ID: "PAY-3", ClientID: "a"},
	}

	got := PaymentsForClient(payments, "a")

	require.Len(t, got, 2)
	assert.Equal(t, "PAY-3", got[1].ID)
}
