package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/vip-ledger/internal/application/service"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/workflow"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	services        Services
	defaultCurrency string
	logger          Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, defaultCurrency string, logger Logger) *Handlers {
	return &Handlers{
		services:        services,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

// localizeFields turns message keys into display text
func localizeFields(tr *i18n.Translator, errs entity.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for field, keys := range errs {
		for _, key := range keys {
			out[field] = append(out[field], tr.T("validation."+key, nil))
		}
	}
	return out
}

// fail maps a service error onto the ledger response envelope
func (h *Handlers) fail(c *gin.Context, err error) {
	tr := translator(c)

	var verrs entity.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   tr.T("errors.validation", nil),
			Fields:  localizeFields(tr, verrs),
		})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: tr.T("errors.notFound", nil)})
	case errors.Is(err, workflow.ErrInvalidTransition), errors.Is(err, workflow.ErrGuardFailed):
		c.JSON(http.StatusConflict, Response{Success: false, Error: tr.T("errors.invalidTransition", nil)})
	case errors.Is(err, entity.ErrNotConfirmed):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: tr.T("errors.cancelled", nil)})
	case errors.Is(err, service.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: tr.T("validation.invalidValue", nil)})
	default:
		h.logger.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: tr.T("errors.unknownApiError", nil)})
	}
}

func (h *Handlers) badRequest(c *gin.Context, err error) {
	h.logger.Info("Invalid request body", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   translator(c).T("validation.fillAllFields", nil),
	})
}

func (h *Handlers) forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Success: false,
		Error:   translator(c).T("errors.forbidden", nil),
	})
}
