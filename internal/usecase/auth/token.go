package auth

import domain "blogfolio/backend/internal/domain/author"

// Identity is the caller resolved from a verified credential.
type Identity struct {
	AccountID string
	Role      domain.Role
}

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	Generate(accountID string, role domain.Role) (string, error)
	Validate(token string) (Identity, error)
}
