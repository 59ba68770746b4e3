package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"solarpulse/backend/services/auth-service/internal/models"
	"solarpulse/backend/services/auth-service/internal/password"
	"solarpulse/backend/services/auth-service/internal/repository"
)

type fakeAccountRepo struct {
	byEmail map[string]*models.Account
	byID    map[string]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byEmail: make(map[string]*models.Account),
		byID:    make(map[string]*models.Account),
	}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	account.CreatedAt = time.Now()
	f.byEmail[account.Email] = account
	f.byID[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	if account, ok := f.byEmail[email]; ok {
		return account, nil
	}
	return nil, repository.ErrAccountNotFound
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	if account, ok := f.byID[id]; ok {
		return account, nil
	}
	return nil, repository.ErrAccountNotFound
}

type fakeSessionStore struct {
	sessions map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]string)}
}

func (f *fakeSessionStore) Save(_ context.Context, tokenID, accountID string, _ time.Duration) error {
	f.sessions[tokenID] = accountID
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, tokenID string) (string, error) {
	if accountID, ok := f.sessions[tokenID]; ok {
		return accountID, nil
	}
	return "", errors.New("session not found")
}

func (f *fakeSessionStore) Delete(_ context.Context, tokenID string) error {
	delete(f.sessions, tokenID)
	return nil
}

func newTestAuthService() (*AuthService, *fakeAccountRepo, *fakeSessionStore) {
	repo := newFakeAccountRepo()
	sessions := newFakeSessionStore()
	svc := NewAuthService(
		repo,
		password.NewBcryptHasher(bcrypt.MinCost),
		NewTokenService("auth-test-secret", time.Hour),
		sessions,
		zap.NewNop(),
	)
	return svc, repo, sessions
}

func TestRegisterCreatesClientAccount(t *testing.T) {
	svc, _, _ := newTestAuthService()

	account, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ana Solar",
		Email:    "Ana@Example.com",
		Password: "sunny-roof-9",
		Phone:    "+34 600 000 000",
		Address:  "Calle Mayor 1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if account.ID == "" {
		t.Fatal("account id not assigned")
	}
	if account.Email != "ana@example.com" {
		t.Fatalf("email = %q, want lowercased", account.Email)
	}
	if account.Role != models.RoleClient {
		t.Fatalf("role = %q, want client", account.Role)
	}
	if !account.IsActive {
		t.Fatal("new account not active")
	}
	if account.PasswordHash == "sunny-roof-9" {
		t.Fatal("password stored in plaintext")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	input := RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "pw"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(ctx, input); !errors.Is(err, ErrEmailInUse) {
		t.Fatalf("err = %v, want ErrEmailInUse", err)
	}
}

func TestLoginIssuesTokenAndSession(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	account, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, logged, err := svc.Login(ctx, "ana@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != account.ID {
		t.Fatalf("logged account = %q, want %q", logged.ID, account.ID)
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions.sessions))
	}

	claims, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if claims.UserID != account.ID || claims.Role != models.RoleClient {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, err := svc.Login(ctx, "ana@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "ghost@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	svc, repo, _ := newTestAuthService()
	ctx := context.Background()

	account, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	repo.byEmail[account.Email].IsActive = false

	if _, _, err := svc.Login(ctx, "ana@example.com", "pw"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("err = %v, want ErrAccountDisabled", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := svc.Login(ctx, "ana@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if err := svc.Logout(ctx, claims.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("err = %v, want ErrSessionRevoked", err)
	}
}
