package workflow

import (
	"context"
	"time"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

type dueDateKey struct{}
type asOfKey struct{}

// WithDueDate attaches the invoice due date and the evaluation date for the overdue guard
func WithDueDate(ctx context.Context, dueDate string, asOf time.Time) context.Context {
	ctx = context.WithValue(ctx, dueDateKey{}, dueDate)
	return context.WithValue(ctx, asOfKey{}, asOf)
}

// pastDue passes when the due date in ctx is strictly before the evaluation date.
// Missing or unparseable due dates never go overdue.
func pastDue(ctx context.Context) bool {
	raw, _ := ctx.Value(dueDateKey{}).(string)
	asOf, ok := ctx.Value(asOfKey{}).(time.Time)
	if raw == "" || !ok {
		return false
	}
	due, err := time.Parse(entity.DateLayout, raw)
	if err != nil {
		return false
	}
	today := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// NewInvoiceLifecycle configures the invoice status transitions.
// Pay is permitted from every status, Paid included, so recording a payment always settles the invoice.
func NewInvoiceLifecycle() StateMachineBuilder {
	b := NewBuilder()

	b.Configure(StatePendingPayment).
		Permit(TriggerPay, StatePaid).
		Permit(TriggerAwaitConfirmation, StatePendingConfirmation).
		PermitIf(TriggerMarkOverdue, StateOverdue, pastDue)

	b.Configure(StatePendingConfirmation).
		Permit(TriggerPay, StatePaid).
		Permit(TriggerRejectTransfer, StatePendingPayment).
		PermitIf(TriggerMarkOverdue, StateOverdue, pastDue)

	b.Configure(StateOverdue).
		Permit(TriggerPay, StatePaid).
		Permit(TriggerAwaitConfirmation, StatePendingConfirmation)

	b.Configure(StatePaid).
		Permit(TriggerPay, StatePaid)

	return b
}

// ApplyTrigger runs trigger against the invoice's current status and returns the updated copy.
// Invoices with a status outside the known set start from Pending Payment.
func ApplyTrigger(ctx context.Context, lifecycle StateMachineBuilder, inv entity.Invoice, trigger Trigger, asOf time.Time) (entity.Invoice, error) {
	start := StateOf(inv.Status)
	if !start.IsValid() {
		start = StatePendingPayment
	}

	machine := lifecycle.Build(start)
	if err := machine.Fire(WithDueDate(ctx, inv.DueDate, asOf), trigger); err != nil {
		return inv, err
	}
	return inv.WithStatus(machine.State().InvoiceStatus()), nil
}
