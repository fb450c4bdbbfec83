package author

import "context"

// Repository defines persistence operations for accounts.
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	List(ctx context.Context, limit, offset int) ([]*Account, int, error)
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id string) error
}
