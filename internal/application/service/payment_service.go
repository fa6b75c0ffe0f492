package service

import (
	"context"
	"fmt"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/event"
	"github.com/garyjia/vip-ledger/internal/domain/ledger"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

// PaymentService records payments against invoices
type PaymentService interface {
	RecordPayment(ctx context.Context, form entity.PaymentForm) (entity.Payment, error)
	List(ctx context.Context) ([]entity.Payment, error)
	ListWithCustomer(ctx context.Context, user entity.User) ([]entity.PaymentView, error)
	PayableInvoices(ctx context.Context) ([]entity.Invoice, error)
	DuplicateInvoiceIDs(ctx context.Context) ([]string, error)
}

type paymentServiceImpl struct {
	paymentRepo port.PaymentRepository
	invoiceRepo port.InvoiceRepository
	txManager   port.TransactionManager
	ids         port.IDGenerator
	announcer   *Announcer
	logger      Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo port.PaymentRepository,
	invoiceRepo port.InvoiceRepository,
	txManager port.TransactionManager,
	ids port.IDGenerator,
	announcer *Announcer,
	logger Logger,
) PaymentService {
	return &paymentServiceImpl{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		txManager:   txManager,
		ids:         ids,
		announcer:   announcer,
		logger:      logger,
	}
}

// RecordPayment appends a confirmed payment and settles its invoice.
// Payments against unknown invoices are still logged; duplicates are not rejected.
func (s *paymentServiceImpl) RecordPayment(ctx context.Context, form entity.PaymentForm) (entity.Payment, error) {
	if err := ledger.ValidatePaymentForm(form); err != nil {
		return entity.Payment{}, err
	}

	var payment entity.Payment
	invoiceSettled := false
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		invoices, err := s.invoiceRepo.Load(ctx)
		if err != nil {
			return err
		}
		payments, err := s.paymentRepo.Load(ctx)
		if err != nil {
			return err
		}

		payment = ledger.NewPayment(invoices, form, "PAY-"+s.ids.NewID(), timeNow())
		next := ledger.RecordPayment(ledger.State{Invoices: invoices, Payments: payments}, payment)

		if err := s.paymentRepo.Save(ctx, next.Payments); err != nil {
			return err
		}
		if _, found := ledger.FindInvoice(invoices, payment.InvoiceID); found {
			invoiceSettled = true
			return s.invoiceRepo.Save(ctx, next.Invoices)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to record payment", "invoice_id", form.InvoiceID, "error", err)
		s.announcer.Notify(ctx, port.NotifyError, "errors.unknownApiError", nil)
		return entity.Payment{}, fmt.Errorf("failed to record payment: %w", err)
	}

	s.logger.Info("Payment recorded",
		"payment_id", payment.ID,
		"invoice_id", payment.InvoiceID,
		"amount", payment.Amount,
		"invoice_settled", invoiceSettled,
	)

	keys := []string{entity.KeyPayments}
	if invoiceSettled {
		keys = append(keys, entity.KeyInvoices)
	}
	s.announcer.Changed(ctx, keys...)
	s.announcer.publish(ctx, event.NewEvent(event.TypePaymentRecorded, payment.ID, map[string]interface{}{
		"invoice_id": payment.InvoiceID,
		"client_id":  payment.ClientID,
		"amount":     payment.Amount,
	}))
	s.announcer.Notify(ctx, port.NotifySuccess, "notify.paymentRecorded", i18n.Vars{
		"amount":    s.announcer.Money(payment.Amount),
		"invoiceId": payment.InvoiceID,
	})
	return payment, nil
}

// List returns the payment log
func (s *paymentServiceImpl) List(ctx context.Context) ([]entity.Payment, error) {
	payments, err := s.paymentRepo.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load payments", "error", err)
		return nil, err
	}
	return payments, nil
}

// ListWithCustomer joins customer names, restricted to the user's own payments for VIPs
func (s *paymentServiceImpl) ListWithCustomer(ctx context.Context, user entity.User) ([]entity.PaymentView, error) {
	scope, err := ScopeFor(user)
	if err != nil {
		return nil, err
	}

	payments, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if !scope.All {
		payments = ledger.PaymentsForClient(payments, scope.ClientID)
	}
	return ledger.PaymentsWithCustomer(payments, invoices), nil
}

// PayableInvoices lists invoices not yet paid
func (s *paymentServiceImpl) PayableInvoices(ctx context.Context) ([]entity.Invoice, error) {
	invoices, err := s.invoiceRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.PayableInvoices(invoices), nil
}

// DuplicateInvoiceIDs reports invoices with more than one payment
func (s *paymentServiceImpl) DuplicateInvoiceIDs(ctx context.Context) ([]string, error) {
	payments, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.DuplicateInvoiceIDs(payments), nil
}
