package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"solarpulse/backend/services/auth-service/internal/models"
)

// ErrAccountNotFound represents missing account rows.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository handles CRUD for the accounts table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository returns repository instance.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	const query = `
		INSERT INTO accounts (id, name, email, password_hash, phone, address, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Phone,
		account.Address,
		account.Role,
		account.IsActive,
	).Scan(&account.CreatedAt)
}

// GetByEmail fetches an account by email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	const query = `
		SELECT id, name, email, password_hash, phone, address, role, is_active, created_at
		FROM accounts
		WHERE email = $1
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email)))
	return scanAccount(row)
}

// GetByID fetches an account by id.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	const query = `
		SELECT id, name, email, password_hash, phone, address, role, is_active, created_at
		FROM accounts
		WHERE id = $1
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Phone,
		&account.Address,
		&account.Role,
		&account.IsActive,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}
