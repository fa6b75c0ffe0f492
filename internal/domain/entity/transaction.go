package entity

// VipTransaction is one append-only ledger entry.
// Debit is an amount owed, credit an amount paid or credited.
// Balance is the running total stored with the row for display only.
type VipTransaction struct {
	ID            string  `json:"id"`
	ClientID      string  `json:"clientId"`
	Date          string  `json:"date"`
	Description   string  `json:"description"`
	DescriptionAr string  `json:"description_ar,omitempty"`
	DescriptionEn string  `json:"description_en,omitempty"`
	Debit         float64 `json:"debit"`
	Credit        float64 `json:"credit"`
	Balance       float64 `json:"balance"`
}

// LocalizedDescription picks the description for lang, falling back to Description
func (t VipTransaction) LocalizedDescription(lang string) string {
	switch lang {
	case "ar":
		if t.DescriptionAr != "" {
			return t.DescriptionAr
		}
	case "en":
		if t.DescriptionEn != "" {
			return t.DescriptionEn
		}
	}
	return t.Description
}

// StatementOrder selects the presentation order of a statement
type StatementOrder string

const (
	// OrderDateDesc is the admin transaction history view
	OrderDateDesc StatementOrder = "date_desc"
	// OrderInsertion is the client's own statement view
	OrderInsertion StatementOrder = "insertion"
)

// Statement is a client's filtered transactions plus derived totals.
// NetBalance is authoritative; per-row Balance values are not consulted.
type Statement struct {
	ClientID        string           `json:"clientId"`
	Order           StatementOrder   `json:"order"`
	Transactions    []VipTransaction `json:"transactions"`
	TotalDebit      float64          `json:"totalDebit"`
	TotalCredit     float64          `json:"totalCredit"`
	NetBalance      float64          `json:"netBalance"`
	BalanceMismatch bool             `json:"balanceMismatch"`
}

// Empty reports whether the statement has no transactions
func (s Statement) Empty() bool {
	return len(s.Transactions) == 0
}

// LedgerEntry is the admin input for appending a transaction
type LedgerEntry struct {
	ClientID      string  `json:"clientId"`
	Date          string  `json:"date"`
	Description   string  `json:"description"`
	DescriptionAr string  `json:"description_ar"`
	DescriptionEn string  `json:"description_en"`
	Debit         float64 `json:"debit"`
	Credit        float64 `json:"credit"`
}
