package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/application/service"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/workflow"
)

type transitionRequest struct {
	Trigger workflow.Trigger `json:"trigger"`
}

// visible reports whether the current user may read rows of clientID
func visible(c *gin.Context, clientID string) (bool, error) {
	scope, err := service.ScopeFor(currentUser(c))
	if err != nil {
		return false, err
	}
	return scope.All || scope.ClientID == clientID, nil
}

func (h *Handlers) currency(c *gin.Context) string {
	if cur := c.Query("currency"); cur != "" {
		return cur
	}
	return h.defaultCurrency
}

func attachment(c *gin.Context, kind string, result *service.ExportResult) {
	exportsTotal.WithLabelValues(kind, strings.TrimPrefix(filepath.Ext(result.Filename), ".")).Inc()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// ListInvoices handles GET /api/invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	invoices, err := h.services.Invoices.ListVisible(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, invoices)
}

// InvoiceSummary handles GET /api/invoices/summary
func (h *Handlers) InvoiceSummary(c *gin.Context) {
	summary, err := h.services.Invoices.Summary(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, summary)
}

// ExportInvoices handles GET /api/invoices/export
func (h *Handlers) ExportInvoices(c *gin.Context) {
	result, err := h.services.Invoices.Export(c.Request.Context(), currentUser(c), translator(c).Lang(), h.currency(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	attachment(c, "invoices", result)
}

// visibleInvoice loads an invoice the current user may read, answering 404 otherwise
func (h *Handlers) visibleInvoice(c *gin.Context) (entity.Invoice, bool) {
	inv, err := h.services.Invoices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return entity.Invoice{}, false
	}
	allowed, err := visible(c, inv.ClientID)
	if err != nil {
		h.fail(c, err)
		return entity.Invoice{}, false
	}
	if !allowed {
		h.fail(c, entity.ErrNotFound)
		return entity.Invoice{}, false
	}
	return inv, true
}

// GetInvoice handles GET /api/invoices/:id
func (h *Handlers) GetInvoice(c *gin.Context) {
	if inv, found := h.visibleInvoice(c); found {
		ok(c, http.StatusOK, inv)
	}
}

// ShareInvoice handles GET /api/invoices/:id/share
func (h *Handlers) ShareInvoice(c *gin.Context) {
	inv, found := h.visibleInvoice(c)
	if !found {
		return
	}
	text, err := h.services.Invoices.ShareText(c.Request.Context(), inv.ID, translator(c).Lang())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"text": text})
}

// IssueInvoice handles POST /api/invoices
func (h *Handlers) IssueInvoice(c *gin.Context) {
	var draft entity.InvoiceDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.badRequest(c, err)
		return
	}
	inv, err := h.services.Invoices.Issue(c.Request.Context(), draft)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, inv)
}

// MarkInvoicePaid handles POST /api/invoices/:id/pay
func (h *Handlers) MarkInvoicePaid(c *gin.Context) {
	if err := h.services.Invoices.MarkPaid(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// TransitionInvoice handles POST /api/invoices/:id/transition
func (h *Handlers) TransitionInvoice(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	inv, err := h.services.Invoices.Transition(c.Request.Context(), c.Param("id"), req.Trigger)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, inv)
}

// ListPayments handles GET /api/payments
func (h *Handlers) ListPayments(c *gin.Context) {
	payments, err := h.services.Payments.ListWithCustomer(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, payments)
}

// DuplicatePayments handles GET /api/payments/duplicates
func (h *Handlers) DuplicatePayments(c *gin.Context) {
	ids, err := h.services.Payments.DuplicateInvoiceIDs(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, ids)
}

// RecordPayment handles POST /api/payments
func (h *Handlers) RecordPayment(c *gin.Context) {
	var form entity.PaymentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		h.badRequest(c, err)
		return
	}
	payment, err := h.services.Payments.RecordPayment(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, payment)
}

// ListClients handles GET /api/clients and GET /api/clients?q=
func (h *Handlers) ListClients(c *gin.Context) {
	clients, err := h.services.Clients.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, clients)
}

// AddClient handles POST /api/clients
func (h *Handlers) AddClient(c *gin.Context) {
	var client entity.VipClient
	if err := c.ShouldBindJSON(&client); err != nil {
		h.badRequest(c, err)
		return
	}
	added, err := h.services.Clients.Add(c.Request.Context(), client)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, added)
}

// UpdateClient handles PUT /api/clients/:id
func (h *Handlers) UpdateClient(c *gin.Context) {
	var client entity.VipClient
	if err := c.ShouldBindJSON(&client); err != nil {
		h.badRequest(c, err)
		return
	}
	client.ID = c.Param("id")
	updated, err := h.services.Clients.Update(c.Request.Context(), client)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, updated)
}

// DeleteClient handles DELETE /api/clients/:id?confirm=true
func (h *Handlers) DeleteClient(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	confirmer := port.ConfirmFunc(func(string) bool { return confirmed })

	if err := h.services.Clients.Delete(c.Request.Context(), c.Param("id"), confirmer); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// ClientTransactions handles GET /api/clients/:id/transactions
func (h *Handlers) ClientTransactions(c *gin.Context) {
	stmt, err := h.services.Statements.AdminStatement(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, stmt)
}

// AppendTransaction handles POST /api/clients/:id/transactions
func (h *Handlers) AppendTransaction(c *gin.Context) {
	var entry entity.LedgerEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		h.badRequest(c, err)
		return
	}
	entry.ClientID = c.Param("id")
	trx, err := h.services.Statements.Append(c.Request.Context(), entry)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, trx)
}

// ExportStatement handles GET /api/clients/:id/statement/export?format=xlsx|pdf
func (h *Handlers) ExportStatement(c *gin.Context) {
	clientID := c.Param("id")
	allowed, err := visible(c, clientID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !allowed {
		h.forbidden(c)
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	result, err := h.services.Statements.Export(c.Request.Context(), service.ExportRequest{
		ClientID: clientID,
		Format:   format,
		Lang:     translator(c).Lang(),
		Currency: h.currency(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	attachment(c, "statement", result)
}

// OwnStatement handles GET /api/statement; admins pass ?clientId=
func (h *Handlers) OwnStatement(c *gin.Context) {
	stmt, err := h.services.Statements.OwnStatement(c.Request.Context(), currentUser(c), c.Query("clientId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, stmt)
}

// GetSettings handles GET /api/settings
func (h *Handlers) GetSettings(c *gin.Context) {
	settings, err := h.services.Settings.Get(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var settings entity.CompanySettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		h.badRequest(c, err)
		return
	}
	saved, err := h.services.Settings.Update(c.Request.Context(), settings)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, saved)
}
