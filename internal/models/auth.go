package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials forwarded to the backend.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is what the backend returns for a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TokenClaims is the subset of the backend's access token the dashboard reads.
type TokenClaims struct {
	UserID string   `json:"id"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
