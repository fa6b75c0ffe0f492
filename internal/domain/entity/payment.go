package entity

// PaymentMethod is how a payment was settled
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodCard         PaymentMethod = "Card"
	PaymentMethodUnknown      PaymentMethod = "Unknown"
)

var paymentMethodAr = map[PaymentMethod]string{
	PaymentMethodBankTransfer: "تحويل بنكي",
	PaymentMethodCash:         "نقداً",
	PaymentMethodCard:         "بطاقة",
	PaymentMethodUnknown:      "غير معروف",
}

// IsValid reports whether m is a known method
func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodAr[m]
	return ok
}

// Arabic returns the Arabic label carried in method_ar
func (m PaymentMethod) Arabic() string {
	return paymentMethodAr[m]
}

// PaymentStatus of a recorded payment
type PaymentStatus string

const (
	PaymentStatusConfirmed PaymentStatus = "Confirmed"
	PaymentStatusPending   PaymentStatus = "Pending"
)

// Payment settles an invoice. It is immutable once recorded.
type Payment struct {
	ID        string        `json:"id"`
	InvoiceID string        `json:"invoiceId"`
	ClientID  string        `json:"clientId"`
	Date      string        `json:"date"`
	Amount    float64       `json:"amount"`
	Method    PaymentMethod `json:"method"`
	MethodAr  string        `json:"method_ar,omitempty"`
	Status    PaymentStatus `json:"status"`
}

// PaymentForm is the admin input for a new payment
type PaymentForm struct {
	InvoiceID string        `json:"invoiceId"`
	Amount    float64       `json:"amount"`
	Method    PaymentMethod `json:"method"`
	Date      string        `json:"date"`
}

// PaymentView is a payment joined with the invoice's customer name
type PaymentView struct {
	Payment
	CustomerName string `json:"customerName"`
}
