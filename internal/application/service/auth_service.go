package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/ledger"
	"github.com/garyjia/vip-ledger/internal/i18n"
	"github.com/garyjia/vip-ledger/pkg/utils"
)

// AuthService is the mock login used by the admin console and the VIP portal.
// Passwords are compared as stored; tokens are opaque session ids.
type AuthService interface {
	Init(ctx context.Context) error
	AdminLogin(ctx context.Context, email, password string) (entity.Session, error)
	VipLogin(ctx context.Context, phone, password string) (entity.Session, error)
	ChangeAdminPassword(ctx context.Context, current, next string) error
	ChangeVipPassword(ctx context.Context, phone, current, next string) error
	ResetVipPassword(ctx context.Context, phone, next string) error
	RegisterVip(ctx context.Context, reg entity.VipRegistration) (entity.VipClient, error)
	CheckPhone(ctx context.Context, phone string) (bool, error)
	Resolve(ctx context.Context, token string) (entity.User, bool, error)
	Logout(ctx context.Context, token string) error
}

type authServiceImpl struct {
	credentialRepo port.CredentialRepository
	clientRepo     port.ClientRepository
	txManager      port.TransactionManager
	tokens         port.IDGenerator
	defaultAdmin   entity.AdminCredential
	announcer      *Announcer
	logger         Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	credentialRepo port.CredentialRepository,
	clientRepo port.ClientRepository,
	txManager port.TransactionManager,
	tokens port.IDGenerator,
	defaultAdmin entity.AdminCredential,
	announcer *Announcer,
	logger Logger,
) AuthService {
	return &authServiceImpl{
		credentialRepo: credentialRepo,
		clientRepo:     clientRepo,
		txManager:      txManager,
		tokens:         tokens,
		defaultAdmin:   defaultAdmin,
		announcer:      announcer,
		logger:         logger,
	}
}

// Init writes the default admin credential when none is stored
func (s *authServiceImpl) Init(ctx context.Context) error {
	created := false
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		_, found, err := s.credentialRepo.LoadAdmin(ctx)
		if err != nil || found {
			return err
		}
		created = true
		return s.credentialRepo.SaveAdmin(ctx, s.defaultAdmin)
	})
	if err != nil {
		s.logger.Error("Failed to initialize admin credential", "error", err)
		return fmt.Errorf("failed to initialize admin credential: %w", err)
	}
	if created {
		s.logger.Info("Default admin credential created", "email", s.defaultAdmin.Email)
		s.announcer.Changed(ctx, entity.KeyAdminAuth)
	}
	return nil
}

func (s *authServiceImpl) admin(ctx context.Context) (entity.AdminCredential, error) {
	cred, found, err := s.credentialRepo.LoadAdmin(ctx)
	if err != nil {
		return entity.AdminCredential{}, err
	}
	if !found {
		return s.defaultAdmin, nil
	}
	return cred, nil
}

// AdminLogin matches the email case-insensitively and the password exactly
func (s *authServiceImpl) AdminLogin(ctx context.Context, email, password string) (entity.Session, error) {
	cred, err := s.admin(ctx)
	if err != nil {
		return entity.Session{}, err
	}
	if !strings.EqualFold(strings.TrimSpace(email), cred.Email) || password != cred.Password {
		s.logger.Info("Admin login rejected", "email", email)
		return entity.Session{}, entity.ErrInvalidCredentials
	}
	return s.openSession(ctx, entity.AdminUser{Email: cred.Email})
}

// VipLogin matches a registered phone and password
func (s *authServiceImpl) VipLogin(ctx context.Context, phone, password string) (entity.Session, error) {
	accounts, err := s.credentialRepo.LoadVipAccounts(ctx)
	if err != nil {
		return entity.Session{}, err
	}
	account, ok := findAccount(accounts, phone)
	if !ok || account.Password != password {
		s.logger.Info("VIP login rejected", "phone", phone)
		return entity.Session{}, entity.ErrInvalidCredentials
	}
	return s.openSession(ctx, entity.VipUser{Phone: account.Phone, Name: account.Name})
}

func (s *authServiceImpl) openSession(ctx context.Context, user entity.User) (entity.Session, error) {
	record, err := entity.ToRecord(user)
	if err != nil {
		return entity.Session{}, err
	}
	session := entity.Session{Token: s.tokens.NewID(), User: record}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		sessions, err := s.credentialRepo.LoadSessions(ctx)
		if err != nil {
			return err
		}
		return s.credentialRepo.SaveSessions(ctx, append(sessions, session))
	})
	if err != nil {
		s.logger.Error("Failed to open session", "error", err)
		return entity.Session{}, fmt.Errorf("failed to open session: %w", err)
	}

	s.logger.Info("Session opened", "user_type", string(record.Type))
	return session, nil
}

// ChangeAdminPassword replaces the admin password after checking the current one
func (s *authServiceImpl) ChangeAdminPassword(ctx context.Context, current, next string) error {
	if err := validateNewPassword(next); err != nil {
		return err
	}

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		cred, err := s.admin(ctx)
		if err != nil {
			return err
		}
		if cred.Password != current {
			return entity.ErrIncorrectPassword
		}
		cred.Password = next
		return s.credentialRepo.SaveAdmin(ctx, cred)
	})
	if err != nil {
		s.logger.Error("Admin password change failed", "error", err)
		return err
	}

	s.logger.Info("Admin password changed")
	s.announcer.Changed(ctx, entity.KeyAdminAuth)
	s.announcer.Notify(ctx, port.NotifySuccess, "notify.passwordChanged", nil)
	return nil
}

// ChangeVipPassword replaces a VIP password after checking the current one
func (s *authServiceImpl) ChangeVipPassword(ctx context.Context, phone, current, next string) error {
	if err := validateNewPassword(next); err != nil {
		return err
	}
	return s.updateVipPassword(ctx, phone, next, func(account entity.VipAccount, found bool) error {
		if !found || account.Password != current {
			return entity.ErrIncorrectPassword
		}
		return nil
	})
}

// ResetVipPassword sets a new password without the current one
func (s *authServiceImpl) ResetVipPassword(ctx context.Context, phone, next string) error {
	if err := validateNewPassword(next); err != nil {
		return err
	}
	return s.updateVipPassword(ctx, phone, next, func(_ entity.VipAccount, found bool) error {
		if !found {
			return fmt.Errorf("vip user %s: %w", phone, entity.ErrNotFound)
		}
		return nil
	})
}

func (s *authServiceImpl) updateVipPassword(ctx context.Context, phone, next string, check func(entity.VipAccount, bool) error) error {
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		accounts, err := s.credentialRepo.LoadVipAccounts(ctx)
		if err != nil {
			return err
		}
		account, found := findAccount(accounts, phone)
		if err := check(account, found); err != nil {
			return err
		}

		updated := make([]entity.VipAccount, len(accounts))
		for i, a := range accounts {
			if a.Phone == phone {
				a.Password = next
			}
			updated[i] = a
		}
		return s.credentialRepo.SaveVipAccounts(ctx, updated)
	})
	if err != nil {
		s.logger.Error("VIP password update failed", "phone", phone, "error", err)
		return err
	}

	s.logger.Info("VIP password updated", "phone", phone)
	s.announcer.Changed(ctx, entity.KeyVipUsers)
	s.announcer.Notify(ctx, port.NotifySuccess, "notify.passwordChanged", nil)
	return nil
}

// RegisterVip creates a login and the matching directory entry
func (s *authServiceImpl) RegisterVip(ctx context.Context, reg entity.VipRegistration) (entity.VipClient, error) {
	reg.Phone = strings.TrimSpace(reg.Phone)
	client := entity.VipClient{
		Phone:           reg.Phone,
		CompanyName:     utils.SanitizeString(reg.CompanyName),
		ContactPerson:   utils.SanitizeString(reg.ContactPerson),
		ShippingAddress: reg.ShippingAddress,
	}

	errs := entity.ValidationErrors{}
	if utils.ValidatePhone(reg.Phone) != nil {
		errs.Add("phone", entity.MsgInvalidPhone)
	}
	if utils.ValidatePassword(reg.Password) != nil {
		errs.Add("password", entity.MsgPasswordMinLength)
	}
	if client.CompanyName == "" {
		errs.Add("companyName", entity.MsgFieldRequired)
	}
	if msg := ledger.ValidateShippingAddress(reg.ShippingAddress); msg != "" {
		errs.Add("shippingAddress", msg)
	}
	if errs.HasErrors() {
		return entity.VipClient{}, errs
	}

	var added entity.VipClient
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		accounts, err := s.credentialRepo.LoadVipAccounts(ctx)
		if err != nil {
			return err
		}
		if _, taken := findAccount(accounts, reg.Phone); taken {
			return entity.ErrPhoneTaken
		}

		clients, err := s.clientRepo.Load(ctx)
		if err != nil {
			return err
		}

		// The directory entry goes first so a failed write never leaves a login without a client
		var updated []entity.VipClient
		updated, added = ledger.AddClient(clients, client, language.Make(s.announcer.Translator().Lang()))
		if err := s.clientRepo.Save(ctx, updated); err != nil {
			return err
		}

		account := entity.VipAccount{Phone: reg.Phone, Password: reg.Password, Name: client.CompanyName}
		return s.credentialRepo.SaveVipAccounts(ctx, append(accounts, account))
	})
	if err != nil {
		s.logger.Error("VIP registration failed", "phone", reg.Phone, "error", err)
		return entity.VipClient{}, err
	}

	s.logger.Info("VIP registered", "phone", reg.Phone)
	s.announcer.Changed(ctx, entity.KeyVipUsers, entity.KeyVipClients)
	s.announcer.Notify(ctx, port.NotifySuccess, "notify.registered", i18n.Vars{"name": added.CompanyName})
	return added, nil
}

// CheckPhone reports whether phone is still free to register
func (s *authServiceImpl) CheckPhone(ctx context.Context, phone string) (bool, error) {
	accounts, err := s.credentialRepo.LoadVipAccounts(ctx)
	if err != nil {
		return false, err
	}
	_, taken := findAccount(accounts, strings.TrimSpace(phone))
	return !taken, nil
}

// Resolve maps a session token back to its user
func (s *authServiceImpl) Resolve(ctx context.Context, token string) (entity.User, bool, error) {
	if token == "" {
		return nil, false, nil
	}
	sessions, err := s.credentialRepo.LoadSessions(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, session := range sessions {
		if session.Token != token {
			continue
		}
		user, err := session.User.User()
		if err != nil {
			s.logger.Error("Session holds an unknown user type", "error", err)
			return nil, false, nil
		}
		return user, true, nil
	}
	return nil, false, nil
}

// Logout drops the session for token
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	return s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		sessions, err := s.credentialRepo.LoadSessions(ctx)
		if err != nil {
			return err
		}
		kept := make([]entity.Session, 0, len(sessions))
		for _, session := range sessions {
			if session.Token != token {
				kept = append(kept, session)
			}
		}
		return s.credentialRepo.SaveSessions(ctx, kept)
	})
}

func findAccount(accounts []entity.VipAccount, phone string) (entity.VipAccount, bool) {
	for _, a := range accounts {
		if a.Phone == phone {
			return a, true
		}
	}
	return entity.VipAccount{}, false
}

func validateNewPassword(password string) error {
	if err := utils.ValidatePassword(password); err != nil {
		errs := entity.ValidationErrors{}
		errs.Add("new_password", entity.MsgPasswordMinLength)
		return errs
	}
	return nil
}
