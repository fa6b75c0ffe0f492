package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/event"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

// mockInvoiceRepo holds the list in memory and counts saves
type mockInvoiceRepo struct {
	invoices []entity.Invoice
	loadErr  error
	saveErr  error
	saves    int
}

func (m *mockInvoiceRepo) Load(ctx context.Context) ([]entity.Invoice, error) {
	return m.invoices, m.loadErr
}

func (m *mockInvoiceRepo) Save(ctx context.Context, invoices []entity.Invoice) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.invoices = invoices
	return nil
}

type mockPaymentRepo struct {
	payments []entity.Payment
	saveErr  error
	saves    int
}

func (m *mockPaymentRepo) Load(ctx context.Context) ([]entity.Payment, error) {
	return m.payments, nil
}

func (m *mockPaymentRepo) Save(ctx context.Context, payments []entity.Payment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.payments = payments
	return nil
}

type mockClientRepo struct {
	clients []entity.VipClient
	saveErr error
	saves   int
}

func (m *mockClientRepo) Load(ctx context.Context) ([]entity.VipClient, error) {
	return m.clients, nil
}

func (m *mockClientRepo) Save(ctx context.Context, clients []entity.VipClient) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.clients = clients
	return nil
}

type mockTransactionRepo struct {
	transactions []entity.VipTransaction
	saves        int
}

func (m *mockTransactionRepo) Load(ctx context.Context) ([]entity.VipTransaction, error) {
	return m.transactions, nil
}

func (m *mockTransactionRepo) Save(ctx context.Context, transactions []entity.VipTransaction) error {
	m.saves++
	m.transactions = transactions
	return nil
}

type mockSettingsRepo struct {
	settings entity.CompanySettings
	saves    int
}

func (m *mockSettingsRepo) Load(ctx context.Context) (entity.CompanySettings, error) {
	return m.settings, nil
}

func (m *mockSettingsRepo) Save(ctx context.Context, settings entity.CompanySettings) error {
	m.saves++
	m.settings = settings
	return nil
}

type mockCredentialRepo struct {
	admin      entity.AdminCredential
	adminFound bool
	accounts   []entity.VipAccount
	sessions   []entity.Session
	adminSaves int
}

func (m *mockCredentialRepo) LoadAdmin(ctx context.Context) (entity.AdminCredential, bool, error) {
	return m.admin, m.adminFound, nil
}

func (m *mockCredentialRepo) SaveAdmin(ctx context.Context, cred entity.AdminCredential) error {
	m.adminSaves++
	m.admin, m.adminFound = cred, true
	return nil
}

func (m *mockCredentialRepo) LoadVipAccounts(ctx context.Context) ([]entity.VipAccount, error) {
	return m.accounts, nil
}

func (m *mockCredentialRepo) SaveVipAccounts(ctx context.Context, accounts []entity.VipAccount) error {
	m.accounts = accounts
	return nil
}

func (m *mockCredentialRepo) LoadSessions(ctx context.Context) ([]entity.Session, error) {
	return m.sessions, nil
}

func (m *mockCredentialRepo) SaveSessions(ctx context.Context, sessions []entity.Session) error {
	m.sessions = sessions
	return nil
}

// sequenceIDs returns 0001, 0002, ...
type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%04d", g.n)
}

// recordingPublisher keeps every dispatched event
type recordingPublisher struct {
	events []*event.Event
}

func (p *recordingPublisher) Dispatch(ctx context.Context, evt *event.Event) error {
	p.events = append(p.events, evt)
	return nil
}

// changedKeys lists the storage.changed subjects in order
func (p *recordingPublisher) changedKeys() []string {
	keys := make([]string, 0)
	for _, e := range p.events {
		if e.Type == event.TypeStorageChanged {
			keys = append(keys, e.Subject)
		}
	}
	return keys
}

func (p *recordingPublisher) ofType(t event.Type) []*event.Event {
	out := make([]*event.Event, 0)
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type notice struct {
	message string
	kind    port.NotificationKind
}

type recordingNotifier struct {
	notices []notice
}

func (n *recordingNotifier) Notify(ctx context.Context, message string, kind port.NotificationKind) {
	n.notices = append(n.notices, notice{message: message, kind: kind})
}

func newTestAnnouncer(lang string) (*Announcer, *recordingPublisher, *recordingNotifier) {
	pub := &recordingPublisher{}
	notifier := &recordingNotifier{}
	money := i18n.NewCurrencyFormatter(lang, i18n.CurrencySAR)
	return NewAnnouncer(pub, notifier, i18n.NewTranslator(lang), money, &mockLogger{}), pub, notifier
}
