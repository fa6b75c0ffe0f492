package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/event"
	"github.com/garyjia/vip-ledger/internal/domain/ledger"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

// ErrUnsupportedFormat is returned for an export format without an exporter
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ExportResult is a rendered statement file
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportRequest selects the client and presentation of an export
type ExportRequest struct {
	ClientID string
	Format   string
	Lang     string
	Currency string
}

// StatementService reads and appends ledger transactions
type StatementService interface {
	// Statement filters one client's transactions in the given order
	Statement(ctx context.Context, clientID string, order entity.StatementOrder) (entity.Statement, error)
	// AdminStatement is the transaction history view, newest first
	AdminStatement(ctx context.Context, clientID string) (entity.Statement, error)
	// OwnStatement is a VIP's own statement in insertion order
	OwnStatement(ctx context.Context, user entity.User, clientID string) (entity.Statement, error)
	Append(ctx context.Context, entry entity.LedgerEntry) (entity.VipTransaction, error)
	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
	// SaveExport renders and writes the export through file storage, returning its path
	SaveExport(ctx context.Context, req ExportRequest) (string, error)
}

type statementServiceImpl struct {
	transactionRepo port.TransactionRepository
	clientRepo      port.ClientRepository
	settingsRepo    port.SettingsRepository
	txManager       port.TransactionManager
	ids             port.IDGenerator
	exporters       map[string]port.StatementExporter
	storage         port.FileStorage
	announcer       *Announcer
	logger          Logger
}

// NewStatementService creates a new StatementService. storage may be nil when nothing is saved to disk.
func NewStatementService(
	transactionRepo port.TransactionRepository,
	clientRepo port.ClientRepository,
	settingsRepo port.SettingsRepository,
	txManager port.TransactionManager,
	ids port.IDGenerator,
	exporters []port.StatementExporter,
	storage port.FileStorage,
	announcer *Announcer,
	logger Logger,
) StatementService {
	byFormat := make(map[string]port.StatementExporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}
	return &statementServiceImpl{
		transactionRepo: transactionRepo,
		clientRepo:      clientRepo,
		settingsRepo:    settingsRepo,
		txManager:       txManager,
		ids:             ids,
		exporters:       byFormat,
		storage:         storage,
		announcer:       announcer,
		logger:          logger,
	}
}

// Statement filters one client's transactions
func (s *statementServiceImpl) Statement(ctx context.Context, clientID string, order entity.StatementOrder) (entity.Statement, error) {
	transactions, err := s.transactionRepo.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load transactions", "error", err)
		return entity.Statement{}, err
	}

	stmt := ledger.StatementFor(transactions, clientID, order)
	if stmt.BalanceMismatch {
		s.logger.Info("Stored balance disagrees with derived net balance",
			"client_id", clientID,
			"net_balance", stmt.NetBalance,
		)
	}
	return stmt, nil
}

// AdminStatement returns the history view, newest first
func (s *statementServiceImpl) AdminStatement(ctx context.Context, clientID string) (entity.Statement, error) {
	return s.Statement(ctx, clientID, entity.OrderDateDesc)
}

// OwnStatement returns a VIP's statement in insertion order. Admins name the client explicitly.
func (s *statementServiceImpl) OwnStatement(ctx context.Context, user entity.User, clientID string) (entity.Statement, error) {
	scope, err := ScopeFor(user)
	if err != nil {
		return entity.Statement{}, err
	}
	if !scope.All {
		clientID = scope.ClientID
	}
	return s.Statement(ctx, clientID, entity.OrderInsertion)
}

// Append adds a ledger entry for a directory client
func (s *statementServiceImpl) Append(ctx context.Context, entry entity.LedgerEntry) (entity.VipTransaction, error) {
	if err := ledger.ValidateLedgerEntry(entry); err != nil {
		return entity.VipTransaction{}, err
	}
	if entry.Date == "" {
		entry.Date = today()
	}

	var appended entity.VipTransaction
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		clients, err := s.clientRepo.Load(ctx)
		if err != nil {
			return err
		}
		if _, ok := ledger.FindClient(clients, entry.ClientID); !ok {
			errs := entity.ValidationErrors{}
			errs.Add("clientId", entity.MsgInvalidValue)
			return errs
		}

		transactions, err := s.transactionRepo.Load(ctx)
		if err != nil {
			return err
		}

		var updated []entity.VipTransaction
		updated, appended = ledger.AppendTransaction(transactions, entry, "TRX-"+s.ids.NewID())
		return s.transactionRepo.Save(ctx, updated)
	})
	if err != nil {
		s.logger.Error("Failed to append ledger entry", "client_id", entry.ClientID, "error", err)
		return entity.VipTransaction{}, err
	}

	s.logger.Info("Ledger entry appended",
		"transaction_id", appended.ID,
		"client_id", appended.ClientID,
		"balance", appended.Balance,
	)
	s.announcer.Changed(ctx, entity.KeyTransactions)
	s.announcer.publish(ctx, event.NewEvent(event.TypeLedgerEntryAdded, appended.ID, map[string]interface{}{
		"client_id": appended.ClientID,
		"debit":     appended.Debit,
		"credit":    appended.Credit,
	}))
	s.announcer.Notify(ctx, port.NotifySuccess, "notify.entryAppended", i18n.Vars{"clientId": appended.ClientID})
	return appended, nil
}

// Export renders the client's statement in insertion order
func (s *statementServiceImpl) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	exporter, ok := s.exporters[strings.ToLower(req.Format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}

	clients, err := s.clientRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	client, ok := ledger.FindClient(clients, req.ClientID)
	if !ok {
		return nil, fmt.Errorf("client %s: %w", req.ClientID, entity.ErrNotFound)
	}

	stmt, err := s.Statement(ctx, req.ClientID, entity.OrderInsertion)
	if err != nil {
		return nil, err
	}
	saved, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	doc := port.StatementDocument{
		Client:      client,
		Statement:   stmt,
		Company:     entity.DefaultCompanySettings().Merge(saved),
		Lang:        i18n.Normalize(req.Lang),
		Currency:    req.Currency,
		GeneratedAt: timeNow(),
	}

	data, err := exporter.Export(ctx, doc)
	if err != nil {
		s.logger.Error("Failed to render statement", "client_id", req.ClientID, "format", exporter.Format(), "error", err)
		return nil, fmt.Errorf("failed to render statement: %w", err)
	}

	s.logger.Info("Statement exported", "client_id", req.ClientID, "format", exporter.Format(), "bytes", len(data))
	return &ExportResult{
		Filename:    fmt.Sprintf("statement_%s_%s.%s", client.ID, doc.GeneratedAt.Format("20060102"), exporter.Format()),
		ContentType: exporter.ContentType(),
		Data:        data,
	}, nil
}

// SaveExport renders the statement and writes it through file storage
func (s *statementServiceImpl) SaveExport(ctx context.Context, req ExportRequest) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("file storage is not configured")
	}
	result, err := s.Export(ctx, req)
	if err != nil {
		return "", err
	}
	path, err := s.storage.Save(ctx, result.Filename, result.Data)
	if err != nil {
		s.logger.Error("Failed to save export", "filename", result.Filename, "error", err)
		return "", fmt.Errorf("failed to save export: %w", err)
	}
	return path, nil
}
