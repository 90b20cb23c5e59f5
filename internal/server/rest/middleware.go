package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMiddleware reuses an inbound X-Request-ID or mints one, and
// echoes it on the response.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func accessLogMiddleware(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

// authGateMiddleware lets a request through only when the gate verified
// its bearer token; the identity is then available via
// auth.IdentityFromContext.
func authGateMiddleware(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := gate.Evaluate(c.GetHeader(common.AuthorizationHeaderName))
		if !d.Verified() {
			msg := msgTokenInvalid
			if d.Reason == auth.ReasonTokenMissing {
				msg = msgTokenMissing
			}
			respondMessage(c, http.StatusUnauthorized, msg)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), d.Identity))
		c.Next()
	}
}
