package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"solarpulse/backend/services/auth-service/internal/models"
	"solarpulse/backend/services/auth-service/internal/password"
	"solarpulse/backend/services/auth-service/internal/repository"
)

var (
	// ErrEmailInUse is returned when attempting to register a duplicate email.
	ErrEmailInUse = errors.New("auth: email already registered")
	// ErrInvalidCredentials represents login failure.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrAccountDisabled is returned when a deactivated account logs in.
	ErrAccountDisabled = errors.New("auth: account disabled")
	// ErrSessionRevoked is returned for tokens whose session no longer exists.
	ErrSessionRevoked = errors.New("auth: session revoked")
)

// AccountRepository defines storage contract used by the service.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

// SessionStore tracks issued token ids so they can be revoked.
type SessionStore interface {
	Save(ctx context.Context, tokenID, accountID string, ttl time.Duration) error
	Get(ctx context.Context, tokenID string) (string, error)
	Delete(ctx context.Context, tokenID string) error
}

// AuthService contains registration/login logic.
type AuthService struct {
	repo      AccountRepository
	hasher    password.Hasher
	tokenizer *TokenService
	sessions  SessionStore
	logger    *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(repo AccountRepository, hasher password.Hasher, tokenizer *TokenService, sessions SessionStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokenizer: tokenizer,
		sessions:  sessions,
		logger:    logger,
	}
}

// RegisterInput carries the registration payload. The role is never
// taken from the request; every self-registered account is a client.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// Register creates a new client account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.Account, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, errors.New("auth: name required")
	}
	if input.Email == "" {
		return nil, errors.New("auth: email required")
	}
	if input.Password == "" {
		return nil, errors.New("auth: password required")
	}

	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Address:      input.Address,
		Role:         models.RoleClient,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		zap.String("account_id", account.ID), zap.String("email", account.Email))
	return account, nil
}

// Login authenticates an account and produces a JWT backed by a
// server-side session record.
func (s *AuthService) Login(ctx context.Context, email, pass string) (string, *models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || pass == "" {
		return "", nil, ErrInvalidCredentials
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(account.PasswordHash, pass); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !account.IsActive {
		return "", nil, ErrAccountDisabled
	}

	token, tokenID, err := s.tokenizer.GenerateToken(account.ID, account.Role)
	if err != nil {
		return "", nil, err
	}
	if err := s.sessions.Save(ctx, tokenID, account.ID, s.tokenizer.TTL()); err != nil {
		return "", nil, err
	}

	return token, account, nil
}

// Authenticate validates a raw token and checks its session is still
// live. Used by endpoints that require an authenticated caller.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*Claims, error) {
	claims, err := s.tokenizer.ValidateToken(rawToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if _, err := s.sessions.Get(ctx, claims.ID); err != nil {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Profile returns the account for an authenticated caller.
func (s *AuthService) Profile(ctx context.Context, accountID string) (*models.Account, error) {
	return s.repo.GetByID(ctx, accountID)
}

// Logout revokes the session behind the given token id.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	return s.sessions.Delete(ctx, tokenID)
}
