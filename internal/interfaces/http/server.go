// Package http provides HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garyjia/vip-ledger/internal/application/service"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Language used when a request names none
	DefaultLanguage string
	// Currency used for exports when a request names none
	DefaultCurrency string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		DefaultLanguage: "ar",
		DefaultCurrency: "sar",
	}
}

// Services bundles the application services the routes call into
type Services struct {
	Auth       service.AuthService
	Invoices   service.InvoiceService
	Payments   service.PaymentService
	Clients    service.ClientService
	Statements service.StatementService
	Settings   service.SettingsService
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	broker     *Broker
	logger     Logger
}

// NewServer creates a new HTTP server with the given services.
// broker feeds the /api/events stream.
func NewServer(config ServerConfig, services Services, broker *Broker, logger Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	server := &Server{
		config:   config,
		router:   router,
		services: services,
		broker:   broker,
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(metricsMiddleware())
	s.router.Use(languageMiddleware(s.config.DefaultLanguage))
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	h := NewHandlers(s.services, s.config.DefaultCurrency, s.logger)
	auth := authMiddleware(s.services.Auth, s.logger)
	admin := requireAdmin()

	s.router.GET("/health", h.HealthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// DRF-style auth endpoints keep their trailing slashes
	authGroup := s.router.Group("/api/auth")
	{
		authGroup.POST("/token/", h.AdminLogin)
		authGroup.POST("/admin/change-password/", auth, admin, h.ChangeAdminPassword)
		authGroup.POST("/vip/token/", h.VipLogin)
		authGroup.POST("/vip/change-password/", auth, h.ChangeVipPassword)
		authGroup.POST("/vip/reset-password/", h.ResetVipPassword)
		authGroup.POST("/vip/register/", h.RegisterVip)
		authGroup.POST("/vip/check-phone/", h.CheckPhone)
		authGroup.POST("/logout/", auth, h.Logout)
	}

	api := s.router.Group("/api", auth)
	{
		api.GET("/invoices", h.ListInvoices)
		api.GET("/invoices/summary", admin, h.InvoiceSummary)
		api.GET("/invoices/export", h.ExportInvoices)
		api.GET("/invoices/:id", h.GetInvoice)
		api.GET("/invoices/:id/share", h.ShareInvoice)
		api.POST("/invoices", admin, h.IssueInvoice)
		api.POST("/invoices/:id/pay", admin, h.MarkInvoicePaid)
		api.POST("/invoices/:id/transition", admin, h.TransitionInvoice)

		api.GET("/payments", h.ListPayments)
		api.GET("/payments/duplicates", admin, h.DuplicatePayments)
		api.POST("/payments", admin, h.RecordPayment)

		api.GET("/clients", admin, h.ListClients)
		api.POST("/clients", admin, h.AddClient)
		api.PUT("/clients/:id", admin, h.UpdateClient)
		api.DELETE("/clients/:id", admin, h.DeleteClient)
		api.GET("/clients/:id/transactions", admin, h.ClientTransactions)
		api.POST("/clients/:id/transactions", admin, h.AppendTransaction)
		api.GET("/clients/:id/statement/export", h.ExportStatement)

		api.GET("/statement", h.OwnStatement)

		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", admin, h.UpdateSettings)

		api.GET("/events", s.broker.Stream)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")
	s.broker.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
