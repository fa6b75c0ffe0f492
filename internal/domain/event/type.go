package event

// Type identifies the type of domain event
type Type string

const (
	// TypeStorageChanged fires after any collection is saved; subscribers refetch
	TypeStorageChanged   Type = "storage.changed"
	TypePaymentRecorded  Type = "payment.recorded"
	TypeInvoiceIssued    Type = "invoice.issued"
	TypeInvoiceStatus    Type = "invoice.status_changed"
	TypeClientAdded      Type = "client.added"
	TypeClientUpdated    Type = "client.updated"
	TypeClientDeleted    Type = "client.deleted"
	TypeLedgerEntryAdded Type = "ledger.entry_added"
	TypeSettingsUpdated  Type = "settings.updated"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeStorageChanged,
		TypePaymentRecorded,
		TypeInvoiceIssued,
		TypeInvoiceStatus,
		TypeClientAdded,
		TypeClientUpdated,
		TypeClientDeleted,
		TypeLedgerEntryAdded,
		TypeSettingsUpdated:
		return true
	default:
		return false
	}
}
