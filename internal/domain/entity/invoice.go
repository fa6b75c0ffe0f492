package entity

// InvoiceStatus is the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPaid                InvoiceStatus = "Paid"
	InvoiceStatusPendingPayment      InvoiceStatus = "Pending Payment"
	InvoiceStatusPendingConfirmation InvoiceStatus = "Pending Confirmation"
	InvoiceStatusOverdue             InvoiceStatus = "Overdue"
)

var invoiceStatusAr = map[InvoiceStatus]string{
	InvoiceStatusPaid:                "مدفوع",
	InvoiceStatusPendingPayment:      "بانتظار الدفع",
	InvoiceStatusPendingConfirmation: "بانتظار التأكيد",
	InvoiceStatusOverdue:             "متأخر",
}

// String returns the status as stored
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses
func (s InvoiceStatus) IsValid() bool {
	_, ok := invoiceStatusAr[s]
	return ok
}

// Arabic returns the Arabic label carried in status_ar
func (s InvoiceStatus) Arabic() string {
	return invoiceStatusAr[s]
}

// InvoiceItem is a single order line on an invoice
type InvoiceItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

// Invoice is a billing document for one order
type Invoice struct {
	ID           string        `json:"id"`
	OrderID      string        `json:"orderId"`
	ClientID     string        `json:"clientId"`
	CustomerName string        `json:"customerName"`
	Date         string        `json:"date"`
	DueDate      string        `json:"dueDate"`
	Items        []InvoiceItem `json:"items"`
	Subtotal     float64       `json:"subtotal"`
	Shipping     float64       `json:"shipping"`
	Tax          float64       `json:"tax"`
	Total        float64       `json:"total"`
	Status       InvoiceStatus `json:"status"`
	StatusAr     string        `json:"status_ar,omitempty"`
}

// WithStatus returns a copy of the invoice carrying status and its Arabic label
func (i Invoice) WithStatus(status InvoiceStatus) Invoice {
	i.Status = status
	i.StatusAr = status.Arabic()
	return i
}

// IsPaid reports whether the invoice is settled
func (i Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// InvoiceDraft carries what is needed to issue a new invoice
type InvoiceDraft struct {
	ID           string        `json:"id"`
	OrderID      string        `json:"orderId"`
	ClientID     string        `json:"clientId"`
	CustomerName string        `json:"customerName"`
	Date         string        `json:"date"`
	DueDate      string        `json:"dueDate"`
	Items        []InvoiceItem `json:"items"`
	Shipping     float64       `json:"shipping"`
}

// InvoiceSummary aggregates the invoice list for the accounts dashboard
type InvoiceSummary struct {
	InvoiceCount  int     `json:"invoiceCount"`
	TotalSales    float64 `json:"totalSales"`
	TotalPaid     float64 `json:"totalPaid"`
	TotalDue      float64 `json:"totalDue"`
	TopClientName string  `json:"topClientName"`
}
