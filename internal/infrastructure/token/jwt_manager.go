package token

import (
	"errors"
	"time"

	domain "blogfolio/backend/internal/domain/author"
	usecase "blogfolio/backend/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret indicates the manager was built without a signing secret.
var ErrMissingSecret = errors.New("signing secret is not configured")

// JWTManager issues and validates signed identity tokens.
type JWTManager struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTManager constructs a manager with the provided secret and expiration.
func NewJWTManager(secret string, expiration time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		expiration: expiration,
		issuer:     issuer,
	}
}

// Ensure JWTManager implements the TokenManager interface.
var _ usecase.TokenManager = (*JWTManager)(nil)

// Claims carries the account identity and role plus registered claims.
type Claims struct {
	AccountID string `json:"accountId"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Generate creates a signed JWT for the account.
func (m *JWTManager) Generate(accountID string, role domain.Role) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := time.Now().UTC()
	claims := Claims{
		AccountID: accountID,
		Role:      string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses and validates the token, returning the embedded identity.
func (m *JWTManager) Validate(tokenString string) (usecase.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return usecase.Identity{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return usecase.Identity{}, errors.New("invalid token claims")
	}
	return usecase.Identity{
		AccountID: claims.AccountID,
		Role:      domain.Role(claims.Role),
	}, nil
}
