package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

var testAdmin = entity.AdminCredential{Email: "deltastars777@gmail.com", Password: "Admin123!"}

func newAuthServiceForTest() (AuthService, *mockCredentialRepo, *mockClientRepo) {
	creds := &mockCredentialRepo{
		accounts: []entity.VipAccount{{Phone: "966558828009", Password: "vip", Name: "فندق دلتا التجريبي"}},
	}
	clients := &mockClientRepo{clients: []entity.VipClient{}}
	announcer, _, _ := newTestAnnouncer("en")
	svc := NewAuthService(creds, clients, &mockTxManager{}, &sequenceIDs{}, testAdmin, announcer, &mockLogger{})
	return svc, creds, clients
}

func TestAuthService_Init(t *testing.T) {
	svc, creds, _ := newAuthServiceForTest()
	ctx := context.Background()

	require.NoError(t, svc.Init(ctx))
	require.NoError(t, svc.Init(ctx))

	assert.Equal(t, 1, creds.adminSaves)
	assert.Equal(t, testAdmin, creds.admin)
}

func TestAuthService_AdminLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"exact", "deltastars777@gmail.com", "Admin123!", nil},
		{"email case-insensitive", "DeltaStars777@Gmail.com", "Admin123!", nil},
		{"wrong password", "deltastars777@gmail.com", "admin123!", entity.ErrInvalidCredentials},
		{"wrong email", "someone@gmail.com", "Admin123!", entity.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, creds, _ := newAuthServiceForTest()

			session, err := svc.AdminLogin(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, creds.sessions)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, session.Token)
			assert.Equal(t, entity.UserKindAdmin, session.User.Type)
			assert.Len(t, creds.sessions, 1)
		})
	}
}

func TestAuthService_VipLoginAndResolve(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.VipLogin(ctx, "966558828009", "wrong")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	session, err := svc.VipLogin(ctx, "966558828009", "vip")
	require.NoError(t, err)

	user, ok, err := svc.Resolve(ctx, session.Token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity.VipUser{Phone: "966558828009", Name: "فندق دلتا التجريبي"}, user)

	require.NoError(t, svc.Logout(ctx, session.Token))
	_, ok, err = svc.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = svc.Resolve(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_ChangeAdminPassword(t *testing.T) {
	svc, creds, _ := newAuthServiceForTest()
	ctx := context.Background()

	err := svc.ChangeAdminPassword(ctx, "nope", "NewPass1")
	assert.ErrorIs(t, err, entity.ErrIncorrectPassword)

	var verrs entity.ValidationErrors
	err = svc.ChangeAdminPassword(ctx, "Admin123!", "short")
	require.ErrorAs(t, err, &verrs)

	require.NoError(t, svc.ChangeAdminPassword(ctx, "Admin123!", "NewPass1"))
	assert.Equal(t, "NewPass1", creds.admin.Password)

	_, err = svc.AdminLogin(ctx, "deltastars777@gmail.com", "Admin123!")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
	_, err = svc.AdminLogin(ctx, "deltastars777@gmail.com", "NewPass1")
	assert.NoError(t, err)
}

func TestAuthService_VipPasswords(t *testing.T) {
	svc, creds, _ := newAuthServiceForTest()
	ctx := context.Background()

	assert.ErrorIs(t, svc.ChangeVipPassword(ctx, "966558828009", "bad", "secret1"), entity.ErrIncorrectPassword)
	assert.ErrorIs(t, svc.ChangeVipPassword(ctx, "000", "vip", "secret1"), entity.ErrIncorrectPassword)

	require.NoError(t, svc.ChangeVipPassword(ctx, "966558828009", "vip", "secret1"))
	assert.Equal(t, "secret1", creds.accounts[0].Password)

	assert.ErrorIs(t, svc.ResetVipPassword(ctx, "000", "secret2"), entity.ErrNotFound)
	require.NoError(t, svc.ResetVipPassword(ctx, "966558828009", "secret2"))
	assert.Equal(t, "secret2", creds.accounts[0].Password)
}

func TestAuthService_RegisterVip(t *testing.T) {
	svc, creds, clients := newAuthServiceForTest()
	ctx := context.Background()

	reg := entity.VipRegistration{
		Phone:           "966501112233",
		Password:        "secret1",
		CompanyName:     "Sea View Hotel",
		ContactPerson:   "Omar",
		ShippingAddress: "Jeddah, Corniche Rd 10",
	}

	available, err := svc.CheckPhone(ctx, reg.Phone)
	require.NoError(t, err)
	assert.True(t, available)

	client, err := svc.RegisterVip(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, reg.Phone, client.ID)
	assert.Len(t, creds.accounts, 2)
	assert.Len(t, clients.clients, 1)

	available, err = svc.CheckPhone(ctx, reg.Phone)
	require.NoError(t, err)
	assert.False(t, available)

	_, err = svc.RegisterVip(ctx, reg)
	assert.ErrorIs(t, err, entity.ErrPhoneTaken)

	session, err := svc.VipLogin(ctx, reg.Phone, reg.Password)
	require.NoError(t, err)
	assert.Equal(t, "Sea View Hotel", session.User.Name)
}

func TestAuthService_RegisterVip_ClientSaveFails(t *testing.T) {
	svc, creds, clients := newAuthServiceForTest()
	clients.saveErr = errors.New("disk full")

	_, err := svc.RegisterVip(context.Background(), entity.VipRegistration{
		Phone:           "966501112233",
		Password:        "secret1",
		CompanyName:     "Sea View Hotel",
		ShippingAddress: "Jeddah, Corniche Rd 10",
	})

	require.Error(t, err)
	assert.Len(t, creds.accounts, 1)
	_, loginErr := svc.VipLogin(context.Background(), "966501112233", "secret1")
	assert.ErrorIs(t, loginErr, entity.ErrInvalidCredentials)
}

func TestAuthService_RegisterVip_Validation(t *testing.T) {
	svc, creds, _ := newAuthServiceForTest()

	_, err := svc.RegisterVip(context.Background(), entity.VipRegistration{
		Phone:           "12ab",
		Password:        "123",
		ShippingAddress: "short",
	})

	var verrs entity.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{entity.MsgInvalidPhone}, verrs["phone"])
	assert.Equal(t, []string{entity.MsgPasswordMinLength}, verrs["password"])
	assert.Equal(t, []string{entity.MsgFieldRequired}, verrs["companyName"])
	assert.Equal(t, []string{entity.MsgAddressMinLength}, verrs["shippingAddress"])
	assert.Len(t, creds.accounts, 1)
}
