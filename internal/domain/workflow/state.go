package workflow

import "github.com/garyjia/vip-ledger/internal/domain/entity"

// State is an invoice payment status as seen by the state machine
type State string

const (
	StatePendingPayment      State = State(entity.InvoiceStatusPendingPayment)
	StatePendingConfirmation State = State(entity.InvoiceStatusPendingConfirmation)
	StateOverdue             State = State(entity.InvoiceStatusOverdue)
	StatePaid                State = State(entity.InvoiceStatusPaid)
)

// StateOf converts an invoice status
func StateOf(status entity.InvoiceStatus) State {
	return State(status)
}

// InvoiceStatus converts back to the stored status
func (s State) InvoiceStatus() entity.InvoiceStatus {
	return entity.InvoiceStatus(s)
}

// IsTerminal returns true once the invoice is settled
func (s State) IsTerminal() bool {
	return s == StatePaid
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a known invoice status
func (s State) IsValid() bool {
	return s.InvoiceStatus().IsValid()
}
