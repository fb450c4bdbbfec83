package author

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	domain "blogfolio/backend/internal/domain/author"
	"blogfolio/backend/internal/domain/validation"
	"blogfolio/backend/internal/usecase/auth"
)

// Service provides account management for self-service and admin workflows.
type Service struct {
	repo    domain.Repository
	nowFunc func() time.Time
}

// NewService constructs an author service around the provided repository.
func NewService(repo domain.Repository) *Service {
	return &Service{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// UpdateInput defines the partial-update payload for an account. A non-nil
// Password triggers a re-hash; the plaintext is never stored.
type UpdateInput struct {
	Email       *string `json:"email"`
	Name        *string `json:"name"`
	Surname     *string `json:"surname"`
	DateOfBirth *string `json:"dateOfBirth"`
	Avatar      *string `json:"avatar"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
}

// Get retrieves a single account by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeAccount(account), nil
}

// List returns a page of accounts plus the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*domain.Account, int, error) {
	limit, offset = clampPage(limit, offset)
	accounts, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return sanitizeAccounts(accounts), total, nil
}

// Update modifies the persisted account.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.Account, error) {
	account, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	var violations []string
	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			violations = append(violations, "email must be a valid address")
		} else if email != account.Email {
			if _, err := s.repo.GetByEmail(ctx, email); err == nil {
				return nil, domain.ErrEmailExists
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			account.Email = email
		}
	}
	if input.Name != nil {
		account.Name = strings.TrimSpace(*input.Name)
	}
	if input.Surname != nil {
		account.Surname = strings.TrimSpace(*input.Surname)
	}
	if input.Avatar != nil {
		account.Avatar = strings.TrimSpace(*input.Avatar)
	}
	if input.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *input.DateOfBirth)
		if err != nil {
			violations = append(violations, "dateOfBirth must be a date in YYYY-MM-DD form")
		} else {
			account.DateOfBirth = dob
		}
	}
	if input.Password != nil {
		if *input.Password == "" {
			violations = append(violations, "password cannot be empty")
		} else {
			hash, err := auth.HashPassword(*input.Password)
			if err != nil {
				return nil, err
			}
			account.PasswordHash = hash
		}
	}
	if input.Role != nil {
		role := domain.Role(strings.TrimSpace(strings.ToLower(*input.Role)))
		switch role {
		case domain.RoleAuthor, domain.RoleAdmin:
			account.Role = role
		default:
			return nil, domain.ErrInvalidRole
		}
	}
	if err := validation.Check(violations); err != nil {
		return nil, err
	}

	account.UpdatedAt = s.nowFunc().UTC()
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}

	return sanitizeAccount(account), nil
}

// SetAvatar persists the uploaded avatar URL on the account.
func (s *Service) SetAvatar(ctx context.Context, id, url string) (*domain.Account, error) {
	account, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	account.Avatar = url
	account.UpdatedAt = s.nowFunc().UTC()
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return sanitizeAccount(account), nil
}

// Delete removes the target account.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func sanitizeAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	copy := *a
	copy.PasswordHash = ""
	return &copy
}

func sanitizeAccounts(items []*domain.Account) []*domain.Account {
	out := make([]*domain.Account, 0, len(items))
	for _, item := range items {
		out = append(out, sanitizeAccount(item))
	}
	return out
}
