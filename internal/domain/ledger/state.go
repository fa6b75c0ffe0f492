// Package ledger holds the invoice, payment, statement and client directory rules.
// Every function takes snapshots and returns new ones; inputs are never modified.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

// State is the full application snapshot the ledger works on
type State struct {
	Invoices     []entity.Invoice
	Payments     []entity.Payment
	Clients      []entity.VipClient
	Transactions []entity.VipTransaction
}

var timeNow = time.Now

func sum(values []float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total
}

// parseDate returns the zero time for dates that don't parse
func parseDate(s string) time.Time {
	if t, err := time.Parse(entity.DateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
