package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"go.uber.org/zap"
)

const UserIDKey = "userID"

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// AuthMiddleware rejects requests without a valid bearer token. The token
// may also arrive as the "token" query parameter, which browsers need for
// websocket upgrades.
func AuthMiddleware(auth Authenticator, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			abortUnauthenticated(c, "authentication required")
			return
		}

		userID, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("rejected token", zap.Error(err), zap.String("path", c.Request.URL.Path))
			abortUnauthenticated(c, "invalid or expired token")
			return
		}

		c.Set(UserIDKey, userID)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.Scope().SetUser(sentry.User{ID: userID})
		}

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return c.Query("token")
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "unauthenticated",
		"message": message,
	})
}

func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(UserIDKey)
	return userID, userID != ""
}
