package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/estate-marketplace/internal/auth"
	"github.com/spec-kit/estate-marketplace/internal/config"
	"github.com/spec-kit/estate-marketplace/internal/domain"
	"github.com/spec-kit/estate-marketplace/internal/repository"
	apperrors "github.com/spec-kit/estate-marketplace/pkg/util"
)

// AuthService coordinates registration, login and principal lookup.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, accounts repository.AccountRepository) *AuthService {
	return &AuthService{
		accounts:   accounts,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new buyer or seller account and logs it in immediately.
// Admin accounts are provisioned out of band and cannot be self-registered.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.Account, string, time.Time, error) {
	if role != domain.RoleBuyer && role != domain.RoleSeller {
		return nil, "", time.Time{}, apperrors.NewValidationError("role must be buyer or seller", nil)
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.AccountStatusActive,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(account)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// Login authenticates an account by email and password. requireRole, when
// non-empty, restricts the endpoint to accounts of that role (the seller
// login form talks to a seller-only endpoint).
func (s *AuthService) Login(ctx context.Context, email, password string, requireRole domain.Role) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Account not found")
		}
		return nil, "", time.Time{}, err
	}
	if requireRole != "" && account.Role != requireRole {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Account not found")
	}
	if account.Status == domain.AccountStatusSuspended {
		return nil, "", time.Time{}, apperrors.NewForbidden("Account suspended")
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, exp, err := s.tokenMgr.Issue(account)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// CurrentAccount resolves the account behind a verified principal. A token
// that outlives its account (deleted or suspended) is treated as invalid.
func (s *AuthService) CurrentAccount(ctx context.Context, principal *auth.Principal) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, principal.SubjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("Token is invalid or expired.")
		}
		return nil, err
	}
	if account.Status == domain.AccountStatusSuspended {
		return nil, apperrors.NewUnauthorized("Token is invalid or expired.")
	}
	return account, nil
}

// SetAccountStatus flips moderation status for an account.
func (s *AuthService) SetAccountStatus(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, err
	}
	account.Status = status
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts returns accounts with the given role for admin moderation.
func (s *AuthService) ListAccounts(ctx context.Context, role domain.Role) ([]*domain.Account, error) {
	return s.accounts.ListByRole(ctx, role)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
