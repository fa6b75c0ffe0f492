package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

// The auth routes answer in the DRF shape the web client expects:
// {"access": ...} on success and {"detail": ...} or {"field": [...]} on failure.

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type vipLoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	Phone           string `json:"phone"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type resetPasswordRequest struct {
	Phone       string `json:"phone"`
	NewPassword string `json:"new_password"`
}

type registerRequest struct {
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	CompanyName     string `json:"company_name"`
	ContactPerson   string `json:"contact_person"`
	ShippingAddress string `json:"shipping_address"`
}

type checkPhoneRequest struct {
	Phone string `json:"phone"`
}

func detail(c *gin.Context, status int, key string) {
	c.JSON(status, gin.H{"detail": translator(c).T(key, nil)})
}

// authFail maps an auth error onto a DRF-style body
func (h *Handlers) authFail(c *gin.Context, err error) {
	var verrs entity.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		body := gin.H{}
		for field, msgs := range localizeFields(translator(c), verrs) {
			body[field] = msgs
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, entity.ErrInvalidCredentials):
		detail(c, http.StatusUnauthorized, "errors.invalidCredentials")
	case errors.Is(err, entity.ErrIncorrectPassword):
		detail(c, http.StatusBadRequest, "errors.incorrectPassword")
	case errors.Is(err, entity.ErrPhoneTaken):
		detail(c, http.StatusBadRequest, "errors.phoneTaken")
	case errors.Is(err, entity.ErrNotFound):
		detail(c, http.StatusNotFound, "errors.userNotFound")
	default:
		h.logger.Error("Auth request failed", "path", c.FullPath(), "error", err)
		detail(c, http.StatusInternalServerError, "errors.unknownApiError")
	}
}

func (h *Handlers) invalidBody(c *gin.Context, err error) {
	h.logger.Info("Invalid auth request body", "path", c.FullPath(), "error", err)
	detail(c, http.StatusBadRequest, "validation.fillAllFields")
}

// AdminLogin handles POST /api/auth/token/
func (h *Handlers) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c, err)
		return
	}
	session, err := h.services.Auth.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": session.Token, "user": session.User})
}

// VipLogin handles POST /api/auth/vip/token/
func (h *Handlers) VipLogin(c *gin.Context) {
	var req vipLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c, err)
		return
	}
	session, err := h.services.Auth.VipLogin(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": session.Token, "name": session.User.Name, "user": session.User})
}

// ChangeAdminPassword handles POST /api/auth/admin/change-password/
func (h *Handlers) ChangeAdminPassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c, err)
		return
	}
	if err := h.services.Auth.ChangeAdminPassword(c.Request.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": translator(c).T("notify.passwordChanged", nil)})
}

// ChangeVipPassword handles POST /api/auth/vip/change-password/.
// A VIP may only change their own password; an admin names the phone.
func (h *Handlers) ChangeVipPassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c, err)
		return
	}

	switch u := currentUser(c).(type) {
	case entity.VipUser:
		if req.Phone != "" && req.Phone != u.Phone {
			detail(c, http.StatusForbidden, "errors.forbidden")
			return
		}
		req.Phone = u.Phone
	case entity.AdminUser:
	default:
		detail(c, http.StatusUnauthorized, "errors.unauthorized")
		return
	}

	if err := h.services.Auth.ChangeVipPassword(c.Request.Context(), req.Phone, req.CurrentPassword, req.NewPassword); err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": translator(c).T("notify.passwordChanged", nil)})
}

// ResetVipPassword handles POST /api/auth/vip/reset-password/
func (h *Handlers) ResetVipPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c, err)
		return
	}
	if err := h.services.Auth.ResetVipPassword(c.Request.Context(), req.Phone, req.NewPassword); err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": translator(c).T("notify.passwordChanged", nil)})
}

// RegisterVip handles POST /api/auth/vip/register/
func (h *Handlers) RegisterVip(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c, err)
		return
	}
	client, err := h.services.Auth.RegisterVip(c.Request.Context(), entity.VipRegistration{
		Phone:           req.Phone,
		Password:        req.Password,
		CompanyName:     req.CompanyName,
		ContactPerson:   req.ContactPerson,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": translator(c).T("notify.registered", i18n.Vars{"name": client.CompanyName}),
		"client":  client,
	})
}

// CheckPhone handles POST /api/auth/vip/check-phone/
func (h *Handlers) CheckPhone(c *gin.Context) {
	var req checkPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c, err)
		return
	}
	available, err := h.services.Auth.CheckPhone(c.Request.Context(), req.Phone)
	if err != nil {
		h.authFail(c, err)
		return
	}
	if !available {
		detail(c, http.StatusBadRequest, "errors.phoneTaken")
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true})
}

// Logout handles POST /api/auth/logout/
func (h *Handlers) Logout(c *gin.Context) {
	if err := h.services.Auth.Logout(c.Request.Context(), c.GetString(ctxToken)); err != nil {
		h.authFail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
