package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"inventory-api/internal/domain"
)

const (
	requestIDHeader = "X-Request-ID"
	identityKey     = "identity"
	logEntryKey     = "log_entry"
)

type identityCtxKey struct{}

// TokenVerifier turns a bearer token into the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// authMiddleware rejects the request unless it carries a valid
// "Authorization: Bearer <token>" header. On success the identity is
// available through IdentityFromContext and the gin context.
func authMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token format is not 'Bearer <token>'"})
			return
		}

		identity, err := tokens.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}

		c.Set(identityKey, identity)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), identityCtxKey{}, identity))
		c.Set(logEntryKey, logEntry(c, nil).WithField("user_id", identity.ID))
		c.Next()
	}
}

// IdentityFromContext returns the identity attached by the auth guard.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(domain.Identity)
	return identity, ok
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		entry := logger.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
		c.Set(logEntryKey, entry)

		c.Next()

		entry = logEntry(c, logger).WithFields(logrus.Fields{
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request handled")
	}
}

// logEntry returns the request-scoped entry, falling back to logger.
func logEntry(c *gin.Context, logger *logrus.Logger) *logrus.Entry {
	if v, ok := c.Get(logEntryKey); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return logrus.NewEntry(logger)
}
