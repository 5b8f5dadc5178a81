package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okami-ct/okami-dashboard/internal/models"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
)

// SessionRepository persists dashboard sessions.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Me(ctx context.Context, token string) (*models.User, error)
}

// SessionService binds dashboard session ids to backend tokens.
type SessionService struct {
	repo      SessionRepository
	auth      authenticator
	validator *validator.Validate
	logger    *zap.Logger
	ttl       time.Duration
	now       func() time.Time
}

// NewSessionService constructs the session service.
func NewSessionService(repo SessionRepository, auth authenticator, validate *validator.Validate, ttl time.Duration, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionService{repo: repo, auth: auth, validator: validate, logger: logger, ttl: ttl, now: time.Now}
}

// Login authenticates against the backend and opens a session.
func (s *SessionService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid credentials payload")
	}
	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, appErrors.Clone(appErrors.ErrUpstream, "login response did not include a token")
	}

	user := resp.User
	if user.ID == "" || !user.Role.Valid() {
		me, err := s.auth.Me(ctx, resp.Token)
		switch {
		case err != nil:
			s.logger.Warn("unable to load account for new token", zap.Error(err))
		case me != nil:
			user = fillUser(user, *me)
		}
	}
	claims, err := ParseTokenClaims(resp.Token)
	if err != nil {
		s.logger.Warn("unable to read token claims", zap.Error(err))
	} else {
		if !user.Role.Valid() {
			user.Role = claims.Role
		}
		if user.ID == "" {
			user.ID = claims.UserID
		}
		if user.Email == "" {
			user.Email = claims.Email
		}
	}
	if !user.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "account role is not allowed on the dashboard")
	}

	now := s.now().UTC()
	expires := now.Add(s.ttl)
	if claims != nil && claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(expires) {
		expires = claims.ExpiresAt.Time.UTC()
	}
	session := &models.Session{
		ID:        uuid.NewString(),
		Token:     resp.Token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: expires,
	}
	if err := s.repo.Save(ctx, session, expires.Sub(now)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}
	s.logger.Info("session opened", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return session, nil
}

// Resolve returns a live session by id.
func (s *SessionService) Resolve(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, appErrors.ErrUnauthorized
	}
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrSessionNotFound) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if !session.ExpiresAt.IsZero() && s.now().After(session.ExpiresAt) {
		_ = s.repo.Delete(ctx, id)
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
	}
	return session, nil
}

// Logout closes a session.
func (s *SessionService) Logout(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to close session")
	}
	return nil
}

// fillUser completes the empty fields of user from other. An invalid role counts as empty.
func fillUser(user, other models.User) models.User {
	if user.ID == "" {
		user.ID = other.ID
	}
	if user.Name == "" {
		user.Name = other.Name
	}
	if user.Email == "" {
		user.Email = other.Email
	}
	if !user.Role.Valid() {
		user.Role = other.Role
	}
	if user.StudentID == "" {
		user.StudentID = other.StudentID
	}
	if user.TeacherID == "" {
		user.TeacherID = other.TeacherID
	}
	return user
}

// ParseTokenClaims reads the claims of a backend token without verifying its signature.
func ParseTokenClaims(token string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
