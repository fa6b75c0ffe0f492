package service

import (
	"context"
	"fmt"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/event"
	"github.com/garyjia/vip-ledger/internal/domain/ledger"
	"github.com/garyjia/vip-ledger/internal/domain/workflow"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

// InvoiceService manages the invoice list
type InvoiceService interface {
	List(ctx context.Context) ([]entity.Invoice, error)
	ListForClient(ctx context.Context, clientID string) ([]entity.Invoice, error)
	ListVisible(ctx context.Context, user entity.User) ([]entity.Invoice, error)
	Get(ctx context.Context, invoiceID string) (entity.Invoice, error)
	MarkPaid(ctx context.Context, invoiceID string) error
	Issue(ctx context.Context, draft entity.InvoiceDraft) (entity.Invoice, error)
	Transition(ctx context.Context, invoiceID string, trigger workflow.Trigger) (entity.Invoice, error)
	Summary(ctx context.Context) (entity.InvoiceSummary, error)
	ShareText(ctx context.Context, invoiceID, lang string) (string, error)
	// Export renders the invoices visible to user as a spreadsheet
	Export(ctx context.Context, user entity.User, lang, currency string) (*ExportResult, error)
}

type invoiceServiceImpl struct {
	invoiceRepo port.InvoiceRepository
	clientRepo  port.ClientRepository
	txManager   port.TransactionManager
	ids         port.IDGenerator
	lifecycle   workflow.StateMachineBuilder
	exporter    port.InvoiceExporter
	announcer   *Announcer
	logger      Logger
}

// NewInvoiceService creates a new InvoiceService. exporter may be nil when exports are disabled.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	clientRepo port.ClientRepository,
	txManager port.TransactionManager,
	ids port.IDGenerator,
	exporter port.InvoiceExporter,
	announcer *Announcer,
	logger Logger,
) InvoiceService {
	return &invoiceServiceImpl{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		txManager:   txManager,
		ids:         ids,
		lifecycle:   workflow.NewInvoiceLifecycle(),
		exporter:    exporter,
		announcer:   announcer,
		logger:      logger,
	}
}

// List returns every invoice in stored order
func (s *invoiceServiceImpl) List(ctx context.Context) ([]entity.Invoice, error) {
	invoices, err := s.invoiceRepo.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load invoices", "error", err)
		return nil, err
	}
	return invoices, nil
}

// ListForClient returns one client's invoices, newest first
func (s *invoiceServiceImpl) ListForClient(ctx context.Context, clientID string) ([]entity.Invoice, error) {
	invoices, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.InvoicesForClient(invoices, clientID), nil
}

// ListVisible returns every invoice for admins and the own invoices for a VIP
func (s *invoiceServiceImpl) ListVisible(ctx context.Context, user entity.User) ([]entity.Invoice, error) {
	scope, err := ScopeFor(user)
	if err != nil {
		return nil, err
	}
	if scope.All {
		return s.List(ctx)
	}
	return s.ListForClient(ctx, scope.ClientID)
}

// Get looks one invoice up
func (s *invoiceServiceImpl) Get(ctx context.Context, invoiceID string) (entity.Invoice, error) {
	invoices, err := s.List(ctx)
	if err != nil {
		return entity.Invoice{}, err
	}
	inv, ok := ledger.FindInvoice(invoices, invoiceID)
	if !ok {
		return entity.Invoice{}, fmt.Errorf("invoice %s: %w", invoiceID, entity.ErrNotFound)
	}
	return inv, nil
}

// MarkPaid settles an invoice. An unknown id changes nothing and is not an error.
func (s *invoiceServiceImpl) MarkPaid(ctx context.Context, invoiceID string) error {
	changed := false
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		invoices, err := s.invoiceRepo.Load(ctx)
		if err != nil {
			return err
		}

		if _, found := ledger.FindInvoice(invoices, invoiceID); !found {
			return nil
		}
		changed = true
		return s.invoiceRepo.Save(ctx, ledger.MarkPaid(invoices, invoiceID))
	})
	if err != nil {
		s.logger.Error("Failed to mark invoice paid", "invoice_id", invoiceID, "error", err)
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	if !changed {
		s.logger.Info("Mark paid ignored unknown invoice", "invoice_id", invoiceID)
		return nil
	}

	s.logger.Info("Invoice marked paid", "invoice_id", invoiceID)
	s.announcer.Changed(ctx, entity.KeyInvoices)
	s.announcer.publish(ctx, event.NewEvent(event.TypeInvoiceStatus, invoiceID, map[string]interface{}{
		"status": entity.InvoiceStatusPaid.String(),
	}))
	return nil
}

// Issue computes a draft's totals and appends the invoice as Pending Payment
func (s *invoiceServiceImpl) Issue(ctx context.Context, draft entity.InvoiceDraft) (entity.Invoice, error) {
	if err := ledger.ValidateDraft(draft); err != nil {
		return entity.Invoice{}, err
	}

	var issued entity.Invoice
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if draft.CustomerName == "" {
			clients, err := s.clientRepo.Load(ctx)
			if err != nil {
				return err
			}
			client, ok := ledger.FindClient(clients, draft.ClientID)
			if !ok {
				errs := entity.ValidationErrors{}
				errs.Add("clientId", entity.MsgInvalidValue)
				return errs
			}
			draft.CustomerName = client.CompanyName
		}
		if draft.ID == "" {
			draft.ID = "INV-" + s.ids.NewID()
		}
		if draft.Date == "" {
			draft.Date = today()
		}

		invoices, err := s.invoiceRepo.Load(ctx)
		if err != nil {
			return err
		}
		if _, exists := ledger.FindInvoice(invoices, draft.ID); exists {
			errs := entity.ValidationErrors{}
			errs.Add("id", entity.MsgInvalidValue)
			return errs
		}

		issued = ledger.IssueInvoice(draft)
		updated := make([]entity.Invoice, len(invoices), len(invoices)+1)
		copy(updated, invoices)
		return s.invoiceRepo.Save(ctx, append(updated, issued))
	})
	if err != nil {
		s.logger.Error("Failed to issue invoice", "client_id", draft.ClientID, "error", err)
		return entity.Invoice{}, err
	}

	s.logger.Info("Invoice issued", "invoice_id", issued.ID, "total", issued.Total)
	s.announcer.Changed(ctx, entity.KeyInvoices)
	s.announcer.publish(ctx, event.NewEvent(event.TypeInvoiceIssued, issued.ID, map[string]interface{}{
		"client_id": issued.ClientID,
		"total":     issued.Total,
	}))
	s.announcer.Notify(ctx, port.NotifySuccess, "notify.invoiceIssued", i18n.Vars{
		"invoiceId": issued.ID,
		"customer":  issued.CustomerName,
	})
	return issued, nil
}

// Transition fires a lifecycle trigger on one invoice
func (s *invoiceServiceImpl) Transition(ctx context.Context, invoiceID string, trigger workflow.Trigger) (entity.Invoice, error) {
	if !trigger.IsValid() {
		return entity.Invoice{}, fmt.Errorf("unknown trigger %q: %w", trigger, workflow.ErrInvalidTransition)
	}

	var updated entity.Invoice
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		invoices, err := s.invoiceRepo.Load(ctx)
		if err != nil {
			return err
		}
		current, ok := ledger.FindInvoice(invoices, invoiceID)
		if !ok {
			return fmt.Errorf("invoice %s: %w", invoiceID, entity.ErrNotFound)
		}

		updated, err = workflow.ApplyTrigger(ctx, s.lifecycle, current, trigger, timeNow())
		if err != nil {
			return err
		}
		return s.invoiceRepo.Save(ctx, ledger.ReplaceInvoice(invoices, updated))
	})
	if err != nil {
		s.logger.Error("Invoice transition failed", "invoice_id", invoiceID, "trigger", string(trigger), "error", err)
		return entity.Invoice{}, err
	}

	s.logger.Info("Invoice transitioned", "invoice_id", invoiceID, "trigger", string(trigger), "status", updated.Status.String())
	s.announcer.Changed(ctx, entity.KeyInvoices)
	s.announcer.publish(ctx, event.NewEvent(event.TypeInvoiceStatus, invoiceID, map[string]interface{}{
		"status": updated.Status.String(),
	}))
	s.announcer.Notify(ctx, port.NotifyInfo, "notify.invoiceStatus", i18n.Vars{
		"invoiceId": invoiceID,
		"status":    s.announcer.Translator().T("invoice.status."+updated.Status.String(), nil),
	})
	return updated, nil
}

// Summary computes the dashboard figures
func (s *invoiceServiceImpl) Summary(ctx context.Context) (entity.InvoiceSummary, error) {
	invoices, err := s.List(ctx)
	if err != nil {
		return entity.InvoiceSummary{}, err
	}
	return ledger.Summarize(invoices), nil
}

// ShareText renders a plain-text invoice summary for messaging
func (s *invoiceServiceImpl) ShareText(ctx context.Context, invoiceID, lang string) (string, error) {
	inv, err := s.Get(ctx, invoiceID)
	if err != nil {
		return "", err
	}

	tr := i18n.NewTranslator(lang)
	money := s.announcer.Money
	return tr.T("invoice.share", i18n.Vars{
		"invoiceId": inv.ID,
		"customer":  inv.CustomerName,
		"date":      inv.Date,
		"dueDate":   inv.DueDate,
		"subtotal":  money(inv.Subtotal),
		"shipping":  money(inv.Shipping),
		"tax":       money(inv.Tax),
		"total":     money(inv.Total),
		"status":    tr.T("invoice.status."+inv.Status.String(), nil),
	}), nil
}

// Export renders the invoices visible to user
func (s *invoiceServiceImpl) Export(ctx context.Context, user entity.User, lang, currency string) (*ExportResult, error) {
	if s.exporter == nil {
		return nil, fmt.Errorf("%w: invoice export is not configured", ErrUnsupportedFormat)
	}
	invoices, err := s.ListVisible(ctx, user)
	if err != nil {
		return nil, err
	}

	doc := port.InvoiceListDocument{
		Invoices:    invoices,
		Lang:        i18n.Normalize(lang),
		Currency:    currency,
		GeneratedAt: timeNow(),
	}
	data, err := s.exporter.ExportInvoices(ctx, doc)
	if err != nil {
		s.logger.Error("Failed to render invoices", "count", len(invoices), "error", err)
		return nil, fmt.Errorf("failed to render invoices: %w", err)
	}

	s.logger.Info("Invoices exported", "count", len(invoices), "bytes", len(data))
	return &ExportResult{
		Filename:    fmt.Sprintf("invoices_%s.%s", doc.GeneratedAt.Format("20060102"), s.exporter.Format()),
		ContentType: s.exporter.ContentType(),
		Data:        data,
	}, nil
}
