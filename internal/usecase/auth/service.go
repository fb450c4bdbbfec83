package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	domain "blogfolio/backend/internal/domain/author"
	"blogfolio/backend/internal/domain/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// hashCost is the fixed bcrypt work factor for all stored passwords.
const hashCost = 11

// dateLayout is the wire format for dates of birth.
const dateLayout = "2006-01-02"

// Service coordinates registration and credential verification.
type Service struct {
	accounts domain.Repository
	tokens   TokenManager
	nowFunc  func() time.Time
}

// NewService constructs an auth service.
func NewService(accounts domain.Repository, tokens TokenManager) *Service {
	return &Service{
		accounts: accounts,
		tokens:   tokens,
		nowFunc:  time.Now,
	}
}

// HashPassword applies the one-way, salted transformation used for every
// stored password. Callers must never persist a plaintext password.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// RegisterInput is the payload for author registration.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	DateOfBirth string `json:"dateOfBirth"`
	Avatar      string `json:"avatar"`
}

// Register creates a new author account. The password hash is computed here;
// the returned account carries no hash.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	var violations []string
	if email == "" {
		violations = append(violations, "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		violations = append(violations, "email must be a valid address")
	}
	if input.Password == "" {
		violations = append(violations, "password is required")
	}

	var dob time.Time
	if input.DateOfBirth != "" {
		parsed, err := time.Parse(dateLayout, input.DateOfBirth)
		if err != nil {
			violations = append(violations, "dateOfBirth must be a date in YYYY-MM-DD form")
		} else {
			dob = parsed
		}
	}
	if err := validation.Check(violations); err != nil {
		return nil, err
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		Surname:      strings.TrimSpace(input.Surname),
		DateOfBirth:  dob,
		Avatar:       strings.TrimSpace(input.Avatar),
		Role:         domain.RoleAuthor,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return sanitizeAccount(account), nil
}

// Login validates credentials and returns a signed token plus the account.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (string, *domain.Account, error) {
	account, err := s.verifyCredentials(ctx, creds)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Generate(account.ID, account.Role)
	if err != nil {
		return "", nil, err
	}

	return token, sanitizeAccount(account), nil
}

// VerifyToken validates a bearer token and returns the associated account.
func (s *Service) VerifyToken(ctx context.Context, token string) (*domain.Account, error) {
	identity, err := s.tokens.Validate(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	account, err := s.accounts.GetByID(ctx, identity.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	return sanitizeAccount(account), nil
}

// VerifyBasic resolves an account from email+password credentials. An
// unknown email and a wrong password are indistinguishable to the caller.
func (s *Service) VerifyBasic(ctx context.Context, creds domain.Credentials) (*domain.Account, error) {
	account, err := s.verifyCredentials(ctx, creds)
	if err != nil {
		return nil, err
	}
	return sanitizeAccount(account), nil
}

// EmailTaken reports whether an account with the email already exists.
func (s *Service) EmailTaken(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return false, validation.Check([]string{"email is required"})
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) verifyCredentials(ctx context.Context, creds domain.Credentials) (*domain.Account, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(creds.Password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return account, nil
}

func sanitizeAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	copy := *a
	copy.PasswordHash = ""
	return &copy
}
