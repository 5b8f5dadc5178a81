package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okami-ct/okami-dashboard/internal/middleware"
	"github.com/okami-ct/okami-dashboard/internal/models"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

type sessionManager interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	Logout(ctx context.Context, id string) error
}

type registryDropper interface {
	Drop(sessionID string)
}

// AuthHandler opens and closes dashboard sessions.
type AuthHandler struct {
	sessions     sessionManager
	hub          registryDropper
	secureCookie bool
	now          func() time.Time
}

// NewAuthHandler constructs AuthHandler. secureCookie marks the session cookie HTTPS only.
func NewAuthHandler(sessions sessionManager, hub registryDropper, secureCookie bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, hub: hub, secureCookie: secureCookie, now: time.Now}
}

// SessionView is what the front end learns about its session. The backend token stays
// on the server.
type SessionView struct {
	SessionID string      `json:"session_id,omitempty"`
	User      models.User `json:"user"`
	Role      string      `json:"role"`
	HomeRoute string      `json:"home_route"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func viewOf(session *models.Session, withID bool) SessionView {
	view := SessionView{
		User:      session.User,
		Role:      string(session.User.Role),
		HomeRoute: session.User.Role.HomeRoute(),
		ExpiresAt: session.ExpiresAt,
	}
	if withID {
		view.SessionID = session.ID
	}
	return view
}

// Login godoc
// @Summary Sign in with the academy credentials
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	session, err := h.sessions.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	maxAge := int(session.ExpiresAt.Sub(h.now()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, session.ID, maxAge, "/", "", h.secureCookie, true)
	response.OK(c, viewOf(session, true))
}

// Logout godoc
// @Summary Close the current session
// @Tags Auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	id := middleware.SessionID(c)
	if id != "" {
		if err := h.sessions.Logout(c.Request.Context(), id); err != nil {
			response.Error(c, err)
			return
		}
		h.hub.Drop(id)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	response.NoContent(c)
}

// Me godoc
// @Summary Current user, role and landing route
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.OK(c, viewOf(session, false))
}
