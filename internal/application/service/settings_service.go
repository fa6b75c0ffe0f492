package service

import (
	"context"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/event"
	"github.com/garyjia/vip-ledger/pkg/utils"
)

// SettingsService manages the company details printed on statements
type SettingsService interface {
	Get(ctx context.Context) (entity.CompanySettings, error)
	Update(ctx context.Context, settings entity.CompanySettings) (entity.CompanySettings, error)
}

type settingsServiceImpl struct {
	settingsRepo port.SettingsRepository
	txManager    port.TransactionManager
	announcer    *Announcer
	logger       Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo port.SettingsRepository, txManager port.TransactionManager, announcer *Announcer, logger Logger) SettingsService {
	return &settingsServiceImpl{
		settingsRepo: settingsRepo,
		txManager:    txManager,
		announcer:    announcer,
		logger:       logger,
	}
}

// Get returns the saved settings over the defaults
func (s *settingsServiceImpl) Get(ctx context.Context) (entity.CompanySettings, error) {
	saved, err := s.settingsRepo.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", "error", err)
		return entity.CompanySettings{}, err
	}
	return entity.DefaultCompanySettings().Merge(saved), nil
}

// Update saves the settings; empty fields keep their defaults on the next read
func (s *settingsServiceImpl) Update(ctx context.Context, settings entity.CompanySettings) (entity.CompanySettings, error) {
	if settings.Email != "" && utils.ValidateEmail(settings.Email) != nil {
		errs := entity.ValidationErrors{}
		errs.Add("email", entity.MsgInvalidEmail)
		return entity.CompanySettings{}, errs
	}

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return s.settingsRepo.Save(ctx, settings)
	})
	if err != nil {
		s.logger.Error("Failed to save settings", "error", err)
		return entity.CompanySettings{}, err
	}

	s.logger.Info("Settings saved")
	s.announcer.Changed(ctx, entity.KeySettings)
	s.announcer.publish(ctx, event.NewEvent(event.TypeSettingsUpdated, entity.KeySettings, nil))
	s.announcer.Notify(ctx, port.NotifySuccess, "notify.settingsSaved", nil)
	return entity.DefaultCompanySettings().Merge(settings), nil
}
