package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inventory-api/internal/domain"
)

// DefaultTokenTTL is the lifetime of an access token.
const DefaultTokenTTL = 3600 * time.Second

type accessClaims struct {
	User domain.Identity `json:"user"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 access tokens carrying {user:{id}}.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of m that issues and verifies against now.
// m itself is left unchanged.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	clone := *m
	clone.now = now
	return &clone
}

func (m *TokenManager) Issue(userID int64) (string, error) {
	issuedAt := m.now()
	claims := accessClaims{
		User: domain.Identity{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *TokenManager) Verify(token string) (domain.Identity, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return domain.Identity{}, domain.Unauthorized("Token is not valid")
	}
	if claims.User.ID <= 0 {
		return domain.Identity{}, domain.Unauthorized("Token is not valid")
	}
	return claims.User, nil
}
