package dto

import (
	"time"

	"github.com/spec-kit/estate-marketplace/internal/domain"
)

// RegisterRequest payload for new buyer or seller accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountView is the public projection of an account.
type AccountView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      AccountView `json:"user"`
}

// NewAccountView maps a domain account to its public projection.
func NewAccountView(account *domain.Account) AccountView {
	return AccountView{
		ID:     account.ID,
		Name:   account.Name,
		Email:  account.Email,
		Role:   account.Role.String(),
		Status: string(account.Status),
	}
}
