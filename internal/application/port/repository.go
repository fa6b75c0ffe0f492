package port

import (
	"context"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

// Each repository persists a whole collection under one key.
// Load never fails on a missing or malformed blob; it returns the collection default.
// Save replaces the stored collection.

// InvoiceRepository persists the invoice list
type InvoiceRepository interface {
	Load(ctx context.Context) ([]entity.Invoice, error)
	Save(ctx context.Context, invoices []entity.Invoice) error
}

// PaymentRepository persists the payment log
type PaymentRepository interface {
	Load(ctx context.Context) ([]entity.Payment, error)
	Save(ctx context.Context, payments []entity.Payment) error
}

// ClientRepository persists the VIP client directory
type ClientRepository interface {
	Load(ctx context.Context) ([]entity.VipClient, error)
	Save(ctx context.Context, clients []entity.VipClient) error
}

// TransactionRepository persists the ledger entries
type TransactionRepository interface {
	Load(ctx context.Context) ([]entity.VipTransaction, error)
	Save(ctx context.Context, transactions []entity.VipTransaction) error
}

// CredentialRepository persists the mock logins and sessions
type CredentialRepository interface {
	LoadAdmin(ctx context.Context) (entity.AdminCredential, bool, error)
	SaveAdmin(ctx context.Context, cred entity.AdminCredential) error
	LoadVipAccounts(ctx context.Context) ([]entity.VipAccount, error)
	SaveVipAccounts(ctx context.Context, accounts []entity.VipAccount) error
	LoadSessions(ctx context.Context) ([]entity.Session, error)
	SaveSessions(ctx context.Context, sessions []entity.Session) error
}

// SettingsRepository persists the company settings
type SettingsRepository interface {
	Load(ctx context.Context) (entity.CompanySettings, error)
	Save(ctx context.Context, settings entity.CompanySettings) error
}

// TransactionManager serializes read-modify-write cycles over the collections
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
