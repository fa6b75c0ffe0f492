package entity

// CompanySettings is the company information printed on statements
type CompanySettings struct {
	CompanyName   string `json:"companyName"`
	CompanyNameAr string `json:"companyNameAr"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	BankName      string `json:"bankName"`
	IBAN          string `json:"iban"`
	AccountNumber string `json:"accountNumber"`
	VATNumber     string `json:"vatNumber"`
}

// DefaultCompanySettings is used for every field not saved yet
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		CompanyName:   "Delta Stars Trading",
		CompanyNameAr: "نجوم دلتا للتجارة",
		Address:       "Jeddah, Saudi Arabia",
		Phone:         "966558828009",
		Email:         "deltastars777@gmail.com",
		BankName:      "Arab Bank",
		IBAN:          "SA4730400108095516770029",
		AccountNumber: "0108095516770029",
	}
}

// Merge overlays the non-empty fields of saved onto s
func (s CompanySettings) Merge(saved CompanySettings) CompanySettings {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	return CompanySettings{
		CompanyName:   pick(s.CompanyName, saved.CompanyName),
		CompanyNameAr: pick(s.CompanyNameAr, saved.CompanyNameAr),
		Address:       pick(s.Address, saved.Address),
		Phone:         pick(s.Phone, saved.Phone),
		Email:         pick(s.Email, saved.Email),
		BankName:      pick(s.BankName, saved.BankName),
		IBAN:          pick(s.IBAN, saved.IBAN),
		AccountNumber: pick(s.AccountNumber, saved.AccountNumber),
		VATNumber:     pick(s.VATNumber, saved.VATNumber),
	}
}
