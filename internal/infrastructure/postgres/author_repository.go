package postgres

import (
	"context"
	"errors"

	domain "blogfolio/backend/internal/domain/author"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthorRepository persists accounts in PostgreSQL.
type AuthorRepository struct {
	pool *pgxpool.Pool
}

// NewAuthorRepository constructs a repository.
func NewAuthorRepository(pool *pgxpool.Pool) *AuthorRepository {
	return &AuthorRepository{pool: pool}
}

// Create inserts a new account record.
func (r *AuthorRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
INSERT INTO accounts (id, email, name, surname, date_of_birth, avatar, role, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Email,
		account.Name,
		account.Surname,
		account.DateOfBirth,
		account.Avatar,
		account.Role,
		account.PasswordHash,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return err
	}
	return nil
}

// GetByEmail fetches an account by email.
func (r *AuthorRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
SELECT id, email, name, surname, date_of_birth, avatar, role, password_hash, created_at, updated_at
FROM accounts WHERE email = $1
`
	row := r.pool.QueryRow(ctx, query, email)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetByID retrieves an account by id.
func (r *AuthorRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `
SELECT id, email, name, surname, date_of_birth, avatar, role, password_hash, created_at, updated_at
FROM accounts WHERE id = $1
`
	row := r.pool.QueryRow(ctx, query, id)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

// List returns a page of accounts ordered by creation time, plus the total.
func (r *AuthorRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
SELECT id, email, name, surname, date_of_birth, avatar, role, password_hash, created_at, updated_at
FROM accounts
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// Update modifies an existing account record, password hash included.
func (r *AuthorRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
UPDATE accounts
SET email = $2, name = $3, surname = $4, date_of_birth = $5, avatar = $6, role = $7, password_hash = $8, updated_at = $9
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Email,
		account.Name,
		account.Surname,
		account.DateOfBirth,
		account.Avatar,
		account.Role,
		account.PasswordHash,
		account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an account by id.
func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM accounts WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.Surname,
		&a.DateOfBirth,
		&a.Avatar,
		&a.Role,
		&a.PasswordHash,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
