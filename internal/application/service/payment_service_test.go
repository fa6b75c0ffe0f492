package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/event"
)

func newPaymentServiceForTest(invoices []entity.Invoice, payments []entity.Payment) (PaymentService, *mockPaymentRepo, *mockInvoiceRepo, *recordingPublisher, *recordingNotifier) {
	paymentRepo := &mockPaymentRepo{payments: payments}
	invoiceRepo := &mockInvoiceRepo{invoices: invoices}
	announcer, pub, notifier := newTestAnnouncer("en")
	svc := NewPaymentService(paymentRepo, invoiceRepo, &mockTxManager{}, &sequenceIDs{}, announcer, &mockLogger{})
	return svc, paymentRepo, invoiceRepo, pub, notifier
}

func TestPaymentService_RecordPayment(t *testing.T) {
	fixedNow(t, "2024-02-01")
	svc, paymentRepo, invoiceRepo, pub, notifier := newPaymentServiceForTest(testInvoices(), []entity.Payment{})

	payment, err := svc.RecordPayment(context.Background(), entity.PaymentForm{InvoiceID: "INV-1", Amount: 115})
	require.NoError(t, err)

	assert.Equal(t, "PAY-0001", payment.ID)
	assert.Equal(t, "C1", payment.ClientID)
	assert.Equal(t, "2024-02-01", payment.Date)
	assert.Equal(t, entity.PaymentMethodBankTransfer, payment.Method)
	assert.Equal(t, entity.PaymentStatusConfirmed, payment.Status)

	assert.Equal(t, []entity.Payment{payment}, paymentRepo.payments)
	assert.Equal(t, entity.InvoiceStatusPaid, invoiceRepo.invoices[0].Status)
	assert.Equal(t, entity.InvoiceStatusPendingConfirmation, invoiceRepo.invoices[1].Status)

	assert.Equal(t, []string{entity.KeyPayments, entity.KeyInvoices}, pub.changedKeys())
	assert.Len(t, pub.ofType(event.TypePaymentRecorded), 1)
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, port.NotifySuccess, notifier.notices[0].kind)
	assert.Contains(t, notifier.notices[0].message, "INV-1")
}

func TestPaymentService_RecordPayment_UnknownInvoice(t *testing.T) {
	svc, paymentRepo, invoiceRepo, pub, _ := newPaymentServiceForTest(testInvoices(), nil)

	payment, err := svc.RecordPayment(context.Background(), entity.PaymentForm{InvoiceID: "INV-404", Amount: 10})
	require.NoError(t, err)

	assert.Empty(t, payment.ClientID)
	assert.Len(t, paymentRepo.payments, 1)
	assert.Zero(t, invoiceRepo.saves)
	assert.Equal(t, []string{entity.KeyPayments}, pub.changedKeys())
}

func TestPaymentService_RecordPayment_DuplicatesAllowed(t *testing.T) {
	svc, paymentRepo, _, _, _ := newPaymentServiceForTest(testInvoices(), nil)
	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, entity.PaymentForm{InvoiceID: "INV-1", Amount: 115})
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, entity.PaymentForm{InvoiceID: "INV-1", Amount: 115, Method: entity.PaymentMethodCash})
	require.NoError(t, err)

	assert.Len(t, paymentRepo.payments, 2)
	assert.NotEqual(t, paymentRepo.payments[0].ID, paymentRepo.payments[1].ID)

	dups, err := svc.DuplicateInvoiceIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-1"}, dups)
}

func TestPaymentService_RecordPayment_Validation(t *testing.T) {
	tests := []struct {
		name  string
		form  entity.PaymentForm
		field string
	}{
		{"missing invoice", entity.PaymentForm{Amount: 10}, "invoiceId"},
		{"zero amount", entity.PaymentForm{InvoiceID: "INV-1"}, "amount"},
		{"unknown method", entity.PaymentForm{InvoiceID: "INV-1", Amount: 5, Method: "Cheque"}, "method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, paymentRepo, _, pub, _ := newPaymentServiceForTest(testInvoices(), nil)

			_, err := svc.RecordPayment(context.Background(), tt.form)

			var verrs entity.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tt.field)
			assert.Zero(t, paymentRepo.saves)
			assert.Empty(t, pub.events)
		})
	}
}

func TestPaymentService_ListWithCustomer(t *testing.T) {
	payments := []entity.Payment{
		{ID: "PAY-1", InvoiceID: "INV-1", ClientID: "C1", Amount: 115},
		{ID: "PAY-2", InvoiceID: "INV-2", ClientID: "C2", Amount: 50},
		{ID: "PAY-3", InvoiceID: "INV-GONE", ClientID: "C1", Amount: 5},
	}
	svc, _, _, _, _ := newPaymentServiceForTest(testInvoices(), payments)
	ctx := context.Background()

	all, err := svc.ListWithCustomer(ctx, entity.AdminUser{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Hotel A", all[0].CustomerName)
	assert.Equal(t, "Cafe B", all[1].CustomerName)
	assert.Equal(t, entity.NotAvailable, all[2].CustomerName)

	own, err := svc.ListWithCustomer(ctx, entity.VipUser{Phone: "C1"})
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "PAY-1", own[0].ID)
	assert.Equal(t, "PAY-3", own[1].ID)
}

func TestPaymentService_PayableInvoices(t *testing.T) {
	svc, _, _, _, _ := newPaymentServiceForTest(testInvoices(), nil)

	payable, err := svc.PayableInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, payable, 2)
	assert.Equal(t, "INV-1", payable[0].ID)
	assert.Equal(t, "INV-2", payable[1].ID)
}
