package middleware

import (
	"net/http"

	"firstresponse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginPath is where unauthenticated dashboard requests are sent.
const LoginPath = "/login"

// SessionGuard admits a request only when the client holds an auth token.
// Otherwise it redirects to the login page without rendering anything.
func SessionGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFrom(c)
		if sess == nil {
			c.Header("Location", LoginPath)
			c.AbortWithStatus(http.StatusFound)
			return
		}
		token, ok, err := sess.AuthToken(c.Request.Context())
		if err != nil {
			utils.GetLogger().Error("Failed to read session", zap.String("client_id", ClientIDFrom(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if !ok {
			c.Header("Location", LoginPath)
			c.AbortWithStatus(http.StatusFound)
			return
		}
		c.Set(ctxAuthToken, token)
		c.Next()
	}
}
