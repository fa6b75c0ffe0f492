package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/event"
)

func TestSettingsService_GetMergesDefaults(t *testing.T) {
	repo := &mockSettingsRepo{settings: entity.CompanySettings{BankName: "Riyad Bank"}}
	announcer, _, _ := newTestAnnouncer("en")
	svc := NewSettingsService(repo, &mockTxManager{}, announcer, &mockLogger{})

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Riyad Bank", settings.BankName)
	assert.Equal(t, "SA4730400108095516770029", settings.IBAN)
}

func TestSettingsService_Update(t *testing.T) {
	repo := &mockSettingsRepo{}
	announcer, pub, notifier := newTestAnnouncer("ar")
	svc := NewSettingsService(repo, &mockTxManager{}, announcer, &mockLogger{})
	ctx := context.Background()

	_, err := svc.Update(ctx, entity.CompanySettings{Email: "not-an-email"})
	var verrs entity.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Zero(t, repo.saves)

	saved, err := svc.Update(ctx, entity.CompanySettings{VATNumber: "300000000000003"})
	require.NoError(t, err)
	assert.Equal(t, "300000000000003", saved.VATNumber)
	assert.Equal(t, "Arab Bank", saved.BankName)
	assert.Equal(t, 1, repo.saves)

	assert.Equal(t, []string{entity.KeySettings}, pub.changedKeys())
	assert.Len(t, pub.ofType(event.TypeSettingsUpdated), 1)
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, "تم حفظ الإعدادات.", notifier.notices[0].message)
}
