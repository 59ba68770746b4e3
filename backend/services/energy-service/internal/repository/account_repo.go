package repository

import (
	"context"
	"database/sql"
)

// AccountRepository reads account records maintained by the auth
// service. The energy service only ever counts them.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository returns repository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CountClients returns the number of client accounts, total and active.
func (r *AccountRepository) CountClients(ctx context.Context) (total, active int64, err error) {
	const query = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM accounts
		WHERE role = 'client'
	`
	if err := r.db.QueryRowContext(ctx, query).Scan(&total, &active); err != nil {
		return 0, 0, err
	}
	return total, active, nil
}
