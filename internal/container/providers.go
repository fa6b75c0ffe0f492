// Package container provides dependency injection and lifecycle management
// for the VIP ledger.
package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/application/dispatcher"
	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/application/service"
	"github.com/garyjia/vip-ledger/internal/config"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/event"
	"github.com/garyjia/vip-ledger/internal/i18n"
	"github.com/garyjia/vip-ledger/internal/infrastructure/export"
	infraLark "github.com/garyjia/vip-ledger/internal/infrastructure/external/lark"
	"github.com/garyjia/vip-ledger/internal/infrastructure/idgen"
	"github.com/garyjia/vip-ledger/internal/infrastructure/notify"
	"github.com/garyjia/vip-ledger/internal/infrastructure/persistence/memory"
	"github.com/garyjia/vip-ledger/internal/infrastructure/persistence/redisstore"
	"github.com/garyjia/vip-ledger/internal/infrastructure/persistence/repository"
	"github.com/garyjia/vip-ledger/internal/infrastructure/persistence/sqlite"
	"github.com/garyjia/vip-ledger/internal/infrastructure/persistence/txlock"
	"github.com/garyjia/vip-ledger/internal/infrastructure/storage"
	httpapi "github.com/garyjia/vip-ledger/internal/interfaces/http"
	"github.com/garyjia/vip-ledger/pkg/database"
)

// StoreBundle holds the key-value backend and its transaction manager.
type StoreBundle struct {
	Store     port.KVStore
	TxManager port.TransactionManager
}

// RepositoryBundle groups all repositories for convenient access.
type RepositoryBundle struct {
	Invoices     port.InvoiceRepository
	Payments     port.PaymentRepository
	Clients      port.ClientRepository
	Transactions port.TransactionRepository
	Settings     port.SettingsRepository
	Credentials  port.CredentialRepository
}

// NotifierBundle holds the fan-out notifier and the Lark notifier when enabled.
type NotifierBundle struct {
	Notifier port.Notifier
	Lark     *infraLark.Notifier
}

// ServiceDeps holds everything ProvideServices needs.
type ServiceDeps struct {
	Config    *config.Config
	Repos     *RepositoryBundle
	TxManager port.TransactionManager
	Announcer *service.Announcer
	Storage   port.FileStorage
	Logger    *zap.Logger
}

// ProvideStore opens the configured key-value backend.
// SQLite brings its own transactions; redis and memory serialize through a process lock.
func ProvideStore(ctx context.Context, cfg *config.StoreConfig, logger *zap.Logger) (*StoreBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("store config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		raw, err := database.New(database.Config{Path: cfg.Path}, logger)
		if err != nil {
			return nil, err
		}
		if err := database.NewMigrator(raw, logger).RunEmbedded(); err != nil {
			raw.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		db := sqlite.NewDB(raw.DB, logger)
		return &StoreBundle{Store: db, TxManager: db}, nil

	case config.DriverRedis:
		store, err := redisstore.NewStore(ctx, cfg.RedisURL, cfg.KeyPrefix, logger)
		if err != nil {
			return nil, err
		}
		return &StoreBundle{Store: store, TxManager: txlock.New()}, nil

	case config.DriverMemory:
		logger.Warn("Using in-memory store, data is lost on exit")
		return &StoreBundle{Store: memory.NewStore(), TxManager: txlock.New()}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// ProvideRepositories creates all repositories over one store.
func ProvideRepositories(store port.KVStore, logger *zap.Logger) (*RepositoryBundle, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}

	return &RepositoryBundle{
		Invoices:     repository.NewInvoiceRepository(store, logger),
		Payments:     repository.NewPaymentRepository(store, logger),
		Clients:      repository.NewClientRepository(store, logger),
		Transactions: repository.NewTransactionRepository(store, logger),
		Settings:     repository.NewSettingsRepository(store, logger),
		Credentials:  repository.NewCredentialRepository(store, logger),
	}, nil
}

// ProvideNotifiers always logs notifications and also posts them to Lark when configured.
func ProvideNotifiers(cfg *config.LarkConfig, logger *zap.Logger) *NotifierBundle {
	sinks := notify.Fanout{notify.NewLogNotifier(logger)}
	bundle := &NotifierBundle{}

	if cfg != nil && cfg.Enabled() {
		sdk := infraLark.NewSDKClient(infraLark.Config{
			AppID:     cfg.AppID,
			AppSecret: cfg.AppSecret,
			ChatID:    cfg.ChatID,
		}, logger)
		bundle.Lark = infraLark.NewNotifier(infraLark.NewMessenger(sdk, logger), sdk.GetChatID(), logger)
		sinks = append(sinks, bundle.Lark)
		logger.Info("Lark notifications enabled", zap.String("chat_id", cfg.ChatID))
	}

	bundle.Notifier = sinks
	return bundle
}

// ProvideDispatcher creates the event dispatcher.
func ProvideDispatcher(logger *zap.Logger) dispatcher.Dispatcher {
	return dispatcher.NewDispatcher(dispatcher.WithLogger(&zapLoggerAdapter{logger: logger}))
}

// ProvideAnnouncer builds the announcer for the configured display language and currency.
func ProvideAnnouncer(cfg *config.LocaleConfig, publisher service.EventPublisher, notifier port.Notifier, logger *zap.Logger) *service.Announcer {
	return service.NewAnnouncer(
		publisher,
		notifier,
		i18n.NewTranslator(cfg.Language),
		i18n.NewCurrencyFormatter(cfg.Language, cfg.Currency),
		&zapLoggerAdapter{logger: logger},
	)
}

// ProvideServices creates all application services.
func ProvideServices(deps *ServiceDeps) (*httpapi.Services, error) {
	if deps == nil || deps.Repos == nil {
		return nil, fmt.Errorf("service dependencies are required")
	}

	logger := &zapLoggerAdapter{logger: deps.Logger}
	ids := idgen.NewULID()
	xlsx := export.NewXLSXExporter(deps.Logger)
	pdf := export.NewPDFExporter(deps.Logger)
	repos := deps.Repos

	return &httpapi.Services{
		Auth: service.NewAuthService(repos.Credentials, repos.Clients, deps.TxManager, idgen.UUID{},
			entity.AdminCredential{Email: deps.Config.Auth.AdminEmail, Password: deps.Config.Auth.AdminPassword},
			deps.Announcer, logger),
		Invoices: service.NewInvoiceService(repos.Invoices, repos.Clients, deps.TxManager, ids, xlsx, deps.Announcer, logger),
		Payments: service.NewPaymentService(repos.Payments, repos.Invoices, deps.TxManager, ids, deps.Announcer, logger),
		Clients:  service.NewClientService(repos.Clients, deps.TxManager, deps.Announcer, logger),
		Statements: service.NewStatementService(repos.Transactions, repos.Clients, repos.Settings, deps.TxManager, ids,
			[]port.StatementExporter{xlsx, pdf}, deps.Storage, deps.Announcer, logger),
		Settings: service.NewSettingsService(repos.Settings, deps.TxManager, deps.Announcer, logger),
	}, nil
}

// ProvideStorage creates the export archive.
func ProvideStorage(cfg *config.ExportConfig, logger *zap.Logger) port.FileStorage {
	return storage.NewLocalFileStorage(cfg.OutputDir, logger)
}

// ProvideServer creates the HTTP server and subscribes its SSE broker to store changes.
func ProvideServer(cfg *config.Config, services *httpapi.Services, disp dispatcher.Dispatcher, logger *zap.Logger) *httpapi.Server {
	adapter := &zapLoggerAdapter{logger: logger}
	broker := httpapi.NewBroker(adapter)
	disp.SubscribeNamed(event.TypeStorageChanged, "sse-broker", broker.Handle)

	return httpapi.NewServer(httpapi.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		DefaultLanguage: cfg.Locale.Language,
		DefaultCurrency: cfg.Locale.Currency,
	}, *services, broker, adapter)
}
