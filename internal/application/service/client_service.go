package service

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/event"
	"github.com/garyjia/vip-ledger/internal/domain/ledger"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

// ClientService manages the VIP client directory
type ClientService interface {
	List(ctx context.Context) ([]entity.VipClient, error)
	Search(ctx context.Context, term string) ([]entity.VipClient, error)
	Get(ctx context.Context, clientID string) (entity.VipClient, error)
	Add(ctx context.Context, client entity.VipClient) (entity.VipClient, error)
	Update(ctx context.Context, client entity.VipClient) (entity.VipClient, error)
	Delete(ctx context.Context, clientID string, confirmer port.Confirmer) error
}

type clientServiceImpl struct {
	clientRepo port.ClientRepository
	txManager  port.TransactionManager
	collation  language.Tag
	announcer  *Announcer
	logger     Logger
}

// NewClientService creates a new ClientService. Names sort by the announcer's language.
func NewClientService(
	clientRepo port.ClientRepository,
	txManager port.TransactionManager,
	announcer *Announcer,
	logger Logger,
) ClientService {
	return &clientServiceImpl{
		clientRepo: clientRepo,
		txManager:  txManager,
		collation:  language.Make(announcer.Translator().Lang()),
		announcer:  announcer,
		logger:     logger,
	}
}

// List returns the directory in stored order
func (s *clientServiceImpl) List(ctx context.Context) ([]entity.VipClient, error) {
	clients, err := s.clientRepo.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load clients", "error", err)
		return nil, err
	}
	return clients, nil
}

// Search filters by company name or phone
func (s *clientServiceImpl) Search(ctx context.Context, term string) ([]entity.VipClient, error) {
	clients, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.SearchClients(clients, term), nil
}

// Get looks one client up
func (s *clientServiceImpl) Get(ctx context.Context, clientID string) (entity.VipClient, error) {
	clients, err := s.List(ctx)
	if err != nil {
		return entity.VipClient{}, err
	}
	client, ok := ledger.FindClient(clients, clientID)
	if !ok {
		return entity.VipClient{}, fmt.Errorf("client %s: %w", clientID, entity.ErrNotFound)
	}
	return client, nil
}

// Add validates the client, keys it by phone and re-sorts the directory
func (s *clientServiceImpl) Add(ctx context.Context, client entity.VipClient) (entity.VipClient, error) {
	if err := ledger.ValidateClient(client); err != nil {
		return entity.VipClient{}, err
	}

	var added entity.VipClient
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		clients, err := s.clientRepo.Load(ctx)
		if err != nil {
			return err
		}
		var updated []entity.VipClient
		updated, added = ledger.AddClient(clients, client, s.collation)
		return s.clientRepo.Save(ctx, updated)
	})
	if err != nil {
		s.logger.Error("Failed to add client", "phone", client.Phone, "error", err)
		return entity.VipClient{}, err
	}

	s.logger.Info("Client added", "client_id", added.ID)
	s.announcer.Changed(ctx, entity.KeyVipClients)
	s.announcer.publish(ctx, event.NewEvent(event.TypeClientAdded, added.ID, nil))
	s.announcer.Notify(ctx, port.NotifySuccess, "notify.clientAdded", i18n.Vars{"name": added.CompanyName})
	return added, nil
}

// Update replaces the client with the same id. An unknown id changes nothing.
func (s *clientServiceImpl) Update(ctx context.Context, client entity.VipClient) (entity.VipClient, error) {
	if err := ledger.ValidateClient(client); err != nil {
		return entity.VipClient{}, err
	}

	found := false
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		clients, err := s.clientRepo.Load(ctx)
		if err != nil {
			return err
		}
		if _, found = ledger.FindClient(clients, client.ID); !found {
			return nil
		}
		return s.clientRepo.Save(ctx, ledger.UpdateClient(clients, client))
	})
	if err != nil {
		s.logger.Error("Failed to update client", "client_id", client.ID, "error", err)
		return entity.VipClient{}, err
	}
	if !found {
		s.logger.Info("Update ignored unknown client", "client_id", client.ID)
		return client, nil
	}

	s.logger.Info("Client updated", "client_id", client.ID)
	s.announcer.Changed(ctx, entity.KeyVipClients)
	s.announcer.publish(ctx, event.NewEvent(event.TypeClientUpdated, client.ID, nil))
	s.announcer.Notify(ctx, port.NotifySuccess, "notify.clientUpdated", i18n.Vars{"name": client.CompanyName})
	return client, nil
}

// Delete removes a client after the confirmer approves
func (s *clientServiceImpl) Delete(ctx context.Context, clientID string, confirmer port.Confirmer) error {
	clients, err := s.List(ctx)
	if err != nil {
		return err
	}
	name := clientID
	if c, ok := ledger.FindClient(clients, clientID); ok {
		name = c.CompanyName
	}

	prompt := s.announcer.Translator().T("confirm.deleteClient", i18n.Vars{"name": name})
	if confirmer == nil || !confirmer.Confirm(prompt) {
		s.logger.Info("Client deletion not confirmed", "client_id", clientID)
		return entity.ErrNotConfirmed
	}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		clients, err := s.clientRepo.Load(ctx)
		if err != nil {
			return err
		}
		return s.clientRepo.Save(ctx, ledger.DeleteClient(clients, clientID))
	})
	if err != nil {
		s.logger.Error("Failed to delete client", "client_id", clientID, "error", err)
		return err
	}

	s.logger.Info("Client deleted", "client_id", clientID)
	s.announcer.Changed(ctx, entity.KeyVipClients)
	s.announcer.publish(ctx, event.NewEvent(event.TypeClientDeleted, clientID, nil))
	s.announcer.Notify(ctx, port.NotifyInfo, "notify.clientDeleted", i18n.Vars{"id": clientID})
	return nil
}
