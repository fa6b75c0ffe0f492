package entity

// Storage keys, one JSON blob per collection
const (
	KeyInvoices     = "delta-invoices"
	KeyPayments     = "delta-payments"
	KeyVipClients   = "delta-vip-clients"
	KeyTransactions = "delta-transactions"
	KeyAdminAuth    = "delta-admin-auth"
	KeyVipUsers     = "delta-vip-users"
	KeySessions     = "delta-sessions"
	KeySettings     = "delta-app-settings"
)

// VATRate is the Saudi VAT applied when an invoice is issued
const VATRate = "0.15"

// DateLayout is the wire format of every date field
const DateLayout = "2006-01-02"

// NotAvailable is shown where a lookup found nothing to display
const NotAvailable = "N/A"
