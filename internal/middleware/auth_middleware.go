package middleware

import (
	"net/http"
	"strings"

	"github.com/bancoriental/unipersonal-backend/internal/errors"
	"github.com/bancoriental/unipersonal-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// Context keys for channel information
const (
	ChannelIDKey = "channel_id"
	OperatorKey  = "operator"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates the channel token issued by the API gateway.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Se requiere autenticación de canal")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid,
				"El formato de autenticación no es válido")
			c.Abort()
			return
		}

		claims, err := util.ValidateChannelToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired,
					"La sesión de canal expiró")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid,
					"El token de canal no es válido")
			}
			c.Abort()
			return
		}

		c.Set(ChannelIDKey, claims.ChannelID)
		c.Set(OperatorKey, claims.Operator)

		log.Debug("Channel authenticated", map[string]interface{}{
			"channel_id": claims.ChannelID,
			"operator":   claims.Operator,
		})

		c.Next()
	}
}

// GetChannelID extracts the channel id from context.
func GetChannelID(c *gin.Context) (int, bool) {
	channelID, exists := c.Get(ChannelIDKey)
	if !exists {
		return 0, false
	}
	return channelID.(int), true
}
