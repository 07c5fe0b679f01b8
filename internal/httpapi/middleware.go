package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/internal/session"
)

const (
	sessionCookie = "session_id"
	sessionKey    = "storefront.session"
)

// AccessLog writes one zap line per request.
func AccessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("http request", fields...)
			return
		}
		log.Info("http request", fields...)
	}
}

// Recovery turns a panic into a 500 and logs it.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		log.Error("panic in handler", zap.Any("panic", rec), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{Error: "internal error"})
	})
}

// Sessions loads the visitor's session from the session_id cookie, issuing a new one when the
// cookie is missing or the session has expired. Handlers that change it call saveSession.
func Sessions(store session.Store, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var s *session.Session
		if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
			got, err := store.Get(ctx, id)
			if err != nil {
				fail(c, log, apperr.Remote("load session", err))
				return
			}
			s = got
		}
		if s == nil {
			s = session.New()
			if err := store.Save(ctx, s); err != nil {
				fail(c, log, apperr.Remote("create session", err))
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, s.ID, int(ttl.Seconds()), "/", "", false, true)
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}
