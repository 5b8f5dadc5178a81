package service

import (
	"context"
	"net/http"

	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/pkg/apiclient"
)

// AuthService wraps the backend login endpoints.
type AuthService struct {
	api apiClient
}

// NewAuthService constructs the auth service.
func NewAuthService(api apiClient) *AuthService {
	return &AuthService{api: api}
}

// Login exchanges credentials for a backend token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	raw, err := s.api.Do(ctx, http.MethodPost, "auth/login", nil, req)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeEntity[models.LoginResponse](raw)
}

// Me returns the account bound to token.
func (s *AuthService) Me(ctx context.Context, token string) (*models.User, error) {
	raw, err := s.api.Do(apiclient.ContextWithToken(ctx, token), http.MethodGet, "auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeEntity[models.User](raw)
}
