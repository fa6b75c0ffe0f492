package workflow

// Trigger represents an event that can cause a status change
type Trigger string

const (
	TriggerPay               Trigger = "pay"
	TriggerAwaitConfirmation Trigger = "await_confirmation"
	TriggerRejectTransfer    Trigger = "reject_transfer"
	TriggerMarkOverdue       Trigger = "mark_overdue"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}

// IsValid reports whether t is a known trigger
func (t Trigger) IsValid() bool {
	switch t {
	case TriggerPay, TriggerAwaitConfirmation, TriggerRejectTransfer, TriggerMarkOverdue:
		return true
	default:
		return false
	}
}
