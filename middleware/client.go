package middleware

import (
	"net/http"
	"time"

	"firstresponse/config"
	"firstresponse/services/session"
	"firstresponse/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientCookie names the cookie that identifies a browser.
const ClientCookie = "fr_client"

const (
	ctxClientID  = "clientID"
	ctxSession   = "session"
	ctxAuthToken = "authToken"
	ctxLogger    = "logger"
	ctxNewClient = "newClient"
)

// ClientIdentity resolves the browser behind a request, issuing a new signed
// client cookie when the presented one is missing or invalid, and scopes the
// session store to it.
func ClientIdentity(backend session.Backend, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		clientID := ""
		if cookie, err := c.Cookie(ClientCookie); err == nil && cookie != "" {
			if id, err := utils.ExtractClientID(cookie); err == nil {
				clientID = id
			} else {
				logger.Debug("Discarding invalid client cookie", zap.Error(err))
			}
		}
		if clientID == "" {
			clientID = uuid.NewString()
			token, err := utils.GenerateClientToken(clientID, ttl)
			if err != nil {
				logger.Error("Failed to sign client cookie", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ClientCookie, token, int(ttl.Seconds()), "/", "", config.IsProduction(), true)
			c.Set(ctxNewClient, true)
		}

		store, err := backend.Scope(clientID)
		if err != nil {
			logger.Error("Failed to open client session", zap.String("client_id", clientID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		c.Set(ctxClientID, clientID)
		c.Set(ctxSession, session.New(store))
		c.Set(ctxLogger, logger.With(zap.String("client_id", clientID)))
		c.Next()
	}
}

// SessionFrom returns the session attached by ClientIdentity.
func SessionFrom(c *gin.Context) *session.Context {
	if v, ok := c.Get(ctxSession); ok {
		if s, ok := v.(*session.Context); ok {
			return s
		}
	}
	return nil
}

func ClientIDFrom(c *gin.Context) string {
	return c.GetString(ctxClientID)
}

// IsNewClient reports whether ClientIdentity issued the client cookie on this
// request.
func IsNewClient(c *gin.Context) bool {
	return c.GetBool(ctxNewClient)
}

// AuthTokenFrom returns the bearer token admitted by SessionGuard.
func AuthTokenFrom(c *gin.Context) string {
	return c.GetString(ctxAuthToken)
}
