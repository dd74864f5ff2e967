package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"
	"wallet-service/pkg/apperror"
	"wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderRequestID carries the request identifier in both directions.
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxUser      = "user"
	CtxUserEmail = "user_email"
)

// RequestID assigns every request an identifier, reusing a sane inbound one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(response.CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// JWTAuth creates a middleware that resolves the bearer access token to a user.
func JWTAuth(authSvc ports.AuthService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		user, err := authSvc.CurrentUser(c.Request.Context(), tokenStr)
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.HTTPStatus >= http.StatusInternalServerError {
				log.Error().Err(err).Msg("failed to resolve current user")
			}
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxUserEmail, user.Email)
		c.Next()
	}
}

// CurrentUser returns the user stored by JWTAuth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

// bearerToken extracts the credentials of a "Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("request_id", c.GetString(response.CtxRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("request_id", c.GetString(response.CtxRequestID)).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				response.Error(c, apperror.InternalError(nil))
				c.Abort()
			}
		}()
		c.Next()
	}
}
