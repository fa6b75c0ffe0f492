package container

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/application/dispatcher"
	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/application/service"
	"github.com/garyjia/vip-ledger/internal/config"
	httpapi "github.com/garyjia/vip-ledger/internal/interfaces/http"
)

// Container manages all application dependencies and lifecycle.
// Components start in dependency order and are torn down in reverse.
type Container struct {
	config *config.Config
	logger *zap.Logger

	// Infrastructure
	store        *StoreBundle
	repositories *RepositoryBundle
	notifiers    *NotifierBundle
	fileStorage  port.FileStorage

	// Application
	dispatcher dispatcher.Dispatcher
	announcer  *service.Announcer
	services   *httpapi.Services

	// Interfaces
	server *httpapi.Server

	// Lifecycle
	mu     sync.RWMutex
	ready  atomic.Bool
	closed atomic.Bool
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components; call Start for that.
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components in dependency order:
// 1. Store and repositories
// 2. Notifiers and export storage
// 3. Dispatcher and announcer
// 4. Application services, seeding the admin credential
// 5. HTTP server
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization", zap.String("store", c.config.Store.Driver))

	// Step 1: store and repositories
	store, err := ProvideStore(ctx, &c.config.Store, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	c.store = store

	repos, err := ProvideRepositories(store.Store, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}
	c.repositories = repos
	c.logger.Info("Store initialized")

	// Step 2: notifiers and export storage
	c.notifiers = ProvideNotifiers(&c.config.Lark, c.logger)
	c.fileStorage = ProvideStorage(&c.config.Export, c.logger)

	// Step 3: dispatcher and announcer
	c.dispatcher = ProvideDispatcher(c.logger)
	c.announcer = ProvideAnnouncer(&c.config.Locale, c.dispatcher, c.notifiers.Notifier, c.logger)

	// Step 4: services
	services, err := ProvideServices(&ServiceDeps{
		Config:    c.config,
		Repos:     c.repositories,
		TxManager: c.store.TxManager,
		Announcer: c.announcer,
		Storage:   c.fileStorage,
		Logger:    c.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	if err := services.Auth.Init(ctx); err != nil {
		return fmt.Errorf("failed to seed admin credential: %w", err)
	}
	c.services = services
	c.logger.Info("Application services initialized")

	// Step 5: HTTP server
	c.server = ProvideServer(c.config, c.services, c.dispatcher, c.logger)

	c.ready.Store(true)
	c.logger.Info("Container started successfully")
	return nil
}

// Close shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")
	var errs []error

	if c.server != nil {
		if err := c.server.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop server: %w", err))
		}
	}

	if c.dispatcher != nil {
		if err := c.dispatcher.Close(); err != nil {
			c.logger.Error("Failed to close dispatcher", zap.Error(err))
			errs = append(errs, fmt.Errorf("close dispatcher: %w", err))
		}
	}

	// pending Lark sends finish before the store goes away
	if c.notifiers != nil && c.notifiers.Lark != nil {
		if err := c.notifiers.Lark.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close lark notifier: %w", err))
		}
	}

	if c.store != nil {
		if err := c.store.Store.Close(); err != nil {
			c.logger.Error("Failed to close store", zap.Error(err))
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return errors.Join(errs...)
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components.
func (c *Container) Health(ctx context.Context) *HealthStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	if c.store == nil {
		status.Components["store"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	} else if _, err := c.store.Store.Keys(ctx); err != nil {
		status.Components["store"] = ComponentHealth{Healthy: false, Message: fmt.Sprintf("keys failed: %v", err)}
		status.Overall = false
	} else {
		status.Components["store"] = ComponentHealth{Healthy: true, Message: c.config.Store.Driver}
	}

	if c.dispatcher != nil {
		status.Components["dispatcher"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["dispatcher"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	lark := ComponentHealth{Healthy: true, Message: "disabled"}
	if c.notifiers != nil && c.notifiers.Lark != nil {
		lark.Message = "enabled"
	}
	status.Components["lark"] = lark

	return status
}

// Services returns all application services.
func (c *Container) Services() *httpapi.Services {
	return c.services
}

// Server returns the HTTP server.
func (c *Container) Server() *httpapi.Server {
	return c.server
}

// Dispatcher returns the event dispatcher.
func (c *Container) Dispatcher() dispatcher.Dispatcher {
	return c.dispatcher
}

// Notifier returns the notification sink.
func (c *Container) Notifier() port.Notifier {
	if c.notifiers == nil {
		return nil
	}
	return c.notifiers.Notifier
}

// Announcer returns the announcer shared by the services.
func (c *Container) Announcer() *service.Announcer {
	return c.announcer
}

// FileStorage returns the export archive.
func (c *Container) FileStorage() port.FileStorage {
	return c.fileStorage
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// zapLoggerAdapter adapts zap.Logger to the key-value Logger interfaces of the services.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keysAndValues[i+1].(error); isErr {
			fields = append(fields, zap.NamedError(key, err))
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
