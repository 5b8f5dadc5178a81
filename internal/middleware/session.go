package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/internal/store"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

const (
	// ContextSessionKey is the gin context key storing the resolved session.
	ContextSessionKey = "currentSession"
	// ContextStoresKey is the gin context key storing the session's store registry.
	ContextStoresKey = "sessionStores"

	// SessionCookie carries the session id for browser clients.
	SessionCookie = "okami_session"
	// SessionHeader carries the session id for non-browser clients.
	SessionHeader = "X-Session-ID"
)

type sessionResolver interface {
	Resolve(ctx context.Context, id string) (*models.Session, error)
}

type registrySource interface {
	For(sessionID, token string) *store.Registry
}

// Session requires a live dashboard session and attaches it together with its stores.
func Session(sessions sessionResolver, hub registrySource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := SessionID(c)
		if id == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}

		session, err := sessions.Resolve(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(ContextSessionKey, session)
		c.Set(ContextStoresKey, hub.For(session.ID, session.Token))
		c.Next()
	}
}

// SessionID reads the session id from the header, the cookie or a bearer token, in that order.
func SessionID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(SessionHeader)); id != "" {
		return id
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// CurrentSession returns the session attached by Session, or nil.
func CurrentSession(c *gin.Context) *models.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, _ := value.(*models.Session)
	return session
}

// Stores returns the store registry attached by Session, or nil.
func Stores(c *gin.Context) *store.Registry {
	value, exists := c.Get(ContextStoresKey)
	if !exists {
		return nil
	}
	registry, _ := value.(*store.Registry)
	return registry
}
