package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/vip-ledger/internal/application/service"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

const (
	ctxUser       = "ledger.user"
	ctxToken      = "ledger.token"
	ctxTranslator = "ledger.translator"
)

// languageMiddleware picks the response language from ?lang= or Accept-Language
func languageMiddleware(fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang == "" {
			lang = c.GetHeader("Accept-Language")
			if i := strings.IndexAny(lang, ",;"); i >= 0 {
				lang = lang[:i]
			}
		}
		if strings.TrimSpace(lang) == "" {
			lang = fallback
		}
		c.Set(ctxTranslator, i18n.NewTranslator(lang))
		c.Next()
	}
}

func translator(c *gin.Context) *i18n.Translator {
	if v, ok := c.Get(ctxTranslator); ok {
		if tr, ok := v.(*i18n.Translator); ok {
			return tr
		}
	}
	return i18n.NewTranslator("")
}

// bearerToken reads the Authorization header, or ?token= for EventSource clients
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return c.Query("token")
}

// authMiddleware resolves the session token into a user
func authMiddleware(auth service.AuthService, logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		user, ok, err := auth.Resolve(c.Request.Context(), token)
		if err != nil {
			logger.Error("Failed to resolve session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
				Success: false,
				Error:   translator(c).T("errors.unknownApiError", nil),
			})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   translator(c).T("errors.unauthorized", nil),
			})
			return
		}
		c.Set(ctxUser, user)
		c.Set(ctxToken, token)
		c.Next()
	}
}

// requireAdmin rejects VIP sessions
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch currentUser(c).(type) {
		case entity.AdminUser:
			c.Next()
		case entity.VipUser:
			c.AbortWithStatusJSON(http.StatusForbidden, Response{
				Success: false,
				Error:   translator(c).T("errors.forbidden", nil),
			})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   translator(c).T("errors.unauthorized", nil),
			})
		}
	}
}

func currentUser(c *gin.Context) entity.User {
	if v, ok := c.Get(ctxUser); ok {
		if u, ok := v.(entity.User); ok {
			return u
		}
	}
	return nil
}
