package port

import "context"

// NotificationKind classifies a user-facing notification
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
)

// Notifier delivers fire-and-forget notifications. Failures are the sink's concern.
type Notifier interface {
	Notify(ctx context.Context, message string, kind NotificationKind)
}

// Confirmer asks the operator to approve a destructive action
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(message string) bool

// Confirm implements Confirmer
func (f ConfirmFunc) Confirm(message string) bool {
	return f(message)
}

// CurrencyFormatter renders amounts for display
type CurrencyFormatter interface {
	FormatCurrency(amount float64) string
}

// StatementExporter renders a statement document
type StatementExporter interface {
	// Format is the file extension produced, e.g. "xlsx"
	Format() string
	ContentType() string
	Export(ctx context.Context, doc StatementDocument) ([]byte, error)
}

// IDGenerator produces unique identifiers
type IDGenerator interface {
	NewID() string
}

// InvoiceExporter renders an invoice list
type InvoiceExporter interface {
	Format() string
	ContentType() string
	ExportInvoices(ctx context.Context, doc InvoiceListDocument) ([]byte, error)
}
