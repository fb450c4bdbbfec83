// Package memory provides in-memory repository adapters. They back the
// service and HTTP tests and mirror the semantics of the postgres adapters.
package memory

import (
	"context"
	"sort"
	"sync"

	domain "blogfolio/backend/internal/domain/author"
)

// AuthorRepository stores accounts in process memory.
type AuthorRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

var _ domain.Repository = (*AuthorRepository)(nil)

// NewAuthorRepository constructs an empty store.
func NewAuthorRepository() *AuthorRepository {
	return &AuthorRepository{accounts: make(map[string]domain.Account)}
}

// Create inserts a new account, enforcing email uniqueness.
func (r *AuthorRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return domain.ErrEmailExists
		}
	}
	r.accounts[account.ID] = *account
	return nil
}

// GetByEmail fetches an account by email.
func (r *AuthorRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.accounts {
		if account.Email == email {
			copy := account
			return &copy, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByID retrieves an account by id.
func (r *AuthorRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copy := account
	return &copy, nil
}

// List returns a page of accounts ordered by creation time descending.
func (r *AuthorRepository) List(_ context.Context, limit, offset int) ([]*domain.Account, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		all = append(all, account)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]*domain.Account, 0, end-offset)
	for _, account := range all[offset:end] {
		copy := account
		page = append(page, &copy)
	}
	return page, total, nil
}

// Update replaces a stored account, enforcing email uniqueness.
func (r *AuthorRepository) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.accounts {
		if id != account.ID && existing.Email == account.Email {
			return domain.ErrEmailExists
		}
	}
	r.accounts[account.ID] = *account
	return nil
}

// Delete removes an account by id.
func (r *AuthorRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

// StoredHash exposes the persisted password hash for assertions.
func (r *AuthorRepository) StoredHash(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.accounts[id].PasswordHash
}

// Count reports the number of stored accounts.
func (r *AuthorRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}
