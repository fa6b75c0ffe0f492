package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

// NewInvoiceRepository creates the invoice list repository
func NewInvoiceRepository(store port.KVStore, logger *zap.Logger) port.InvoiceRepository {
	return NewCollection(store, entity.KeyInvoices, SeedInvoices, logger)
}

// NewPaymentRepository creates the payment log repository
func NewPaymentRepository(store port.KVStore, logger *zap.Logger) port.PaymentRepository {
	return NewCollection(store, entity.KeyPayments, SeedPayments, logger)
}

// NewClientRepository creates the VIP directory repository
func NewClientRepository(store port.KVStore, logger *zap.Logger) port.ClientRepository {
	return NewCollection(store, entity.KeyVipClients, SeedClients, logger)
}

// NewTransactionRepository creates the ledger repository
func NewTransactionRepository(store port.KVStore, logger *zap.Logger) port.TransactionRepository {
	return NewCollection(store, entity.KeyTransactions, SeedTransactions, logger)
}

// NewSettingsRepository creates the company settings repository
func NewSettingsRepository(store port.KVStore, logger *zap.Logger) port.SettingsRepository {
	return NewCollection(store, entity.KeySettings, entity.DefaultCompanySettings, logger)
}

// CredentialRepository implements port.CredentialRepository over three collections
type CredentialRepository struct {
	admin    *Collection[entity.AdminCredential]
	accounts *Collection[[]entity.VipAccount]
	sessions *Collection[[]entity.Session]
}

// NewCredentialRepository creates the credential repository
func NewCredentialRepository(store port.KVStore, logger *zap.Logger) port.CredentialRepository {
	return &CredentialRepository{
		admin: NewCollection(store, entity.KeyAdminAuth, func() entity.AdminCredential {
			return entity.AdminCredential{}
		}, logger),
		accounts: NewCollection(store, entity.KeyVipUsers, SeedVipAccounts, logger),
		sessions: NewCollection(store, entity.KeySessions, func() []entity.Session {
			return []entity.Session{}
		}, logger),
	}
}

// LoadAdmin returns the admin credential; found is false until one is saved
func (r *CredentialRepository) LoadAdmin(ctx context.Context) (entity.AdminCredential, bool, error) {
	return r.admin.Lookup(ctx)
}

// SaveAdmin replaces the admin credential
func (r *CredentialRepository) SaveAdmin(ctx context.Context, cred entity.AdminCredential) error {
	return r.admin.Save(ctx, cred)
}

// LoadVipAccounts returns the VIP logins
func (r *CredentialRepository) LoadVipAccounts(ctx context.Context) ([]entity.VipAccount, error) {
	return r.accounts.Load(ctx)
}

// SaveVipAccounts replaces the VIP logins
func (r *CredentialRepository) SaveVipAccounts(ctx context.Context, accounts []entity.VipAccount) error {
	return r.accounts.Save(ctx, accounts)
}

// LoadSessions returns the open sessions
func (r *CredentialRepository) LoadSessions(ctx context.Context) ([]entity.Session, error) {
	return r.sessions.Load(ctx)
}

// SaveSessions replaces the open sessions
func (r *CredentialRepository) SaveSessions(ctx context.Context, sessions []entity.Session) error {
	return r.sessions.Save(ctx, sessions)
}
