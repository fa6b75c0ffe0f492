package entity

// VipClient is a wholesale customer keyed by phone number
type VipClient struct {
	ID              string `json:"id"`
	Phone           string `json:"phone"`
	CompanyName     string `json:"companyName"`
	ContactPerson   string `json:"contactPerson"`
	ShippingAddress string `json:"shippingAddress"`
}
