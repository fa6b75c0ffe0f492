package port

import (
	"time"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

// StatementDocument is everything an exporter needs to render one statement
type StatementDocument struct {
	Client      entity.VipClient
	Statement   entity.Statement
	Company     entity.CompanySettings
	Lang        string
	Currency    string
	GeneratedAt time.Time
}

// InvoiceListDocument is an invoice list to render as a spreadsheet
type InvoiceListDocument struct {
	Invoices    []entity.Invoice
	Lang        string
	Currency    string
	GeneratedAt time.Time
}
