// Package token issues and verifies the signed bearer tokens that carry a
// request's identity. Tokens are self-contained: subject, role list, issue
// and expiry times, signed with a process-wide symmetric key.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

var (
	// ErrInvalid covers malformed tokens, bad signatures and missing claims.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired is returned once the verifier's clock reaches expiresAt.
	ErrExpired = errors.New("token expired")
)

// Claims is the verified content of a token.
type Claims struct {
	Subject   string
	Roles     []domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService builds a token service around a startup-provided secret. The key
// never changes while the process runs; rotating it invalidates every
// outstanding token, which is acceptable for sessions this short-lived.
func NewService(secret string, ttlSeconds int) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// wireClaims keeps the roles claim untyped: older clients sent a single
// string where current ones send a list, and both must verify.
type wireClaims struct {
	Roles any `json:"roles"`
	jwt.RegisteredClaims
}

func (s *Service) Issue(subject string, roles []domain.Role, now time.Time) (string, error) {
	roleNames := make([]string, len(roles))
	for i, role := range roles {
		roleNames[i] = string(role)
	}

	claims := wireClaims{
		Roles: roleNames,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and expiry against the given clock and
// normalizes the roles claim. It fails closed: a bad signature, a malformed
// token or a missing subject/expiry is ErrInvalid, a past expiry is
// ErrExpired. Individual role entries that do not name a known role are
// dropped rather than failing the whole token.
func (s *Service) Verify(tokenString string, now time.Time) (*Claims, error) {
	claims := &wireClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	if claims.Subject == "" {
		return nil, ErrInvalid
	}

	verified := &Claims{
		Subject: claims.Subject,
		Roles:   normalizeRoles(claims.Roles),
	}
	if claims.IssuedAt != nil {
		verified.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		verified.ExpiresAt = claims.ExpiresAt.Time
	}

	return verified, nil
}

func normalizeRoles(raw any) []domain.Role {
	roles := make([]domain.Role, 0, 4)

	switch v := raw.(type) {
	case string:
		if role, ok := domain.ParseRole(v); ok {
			roles = append(roles, role)
		}
	case []any:
		for _, entry := range v {
			name, ok := entry.(string)
			if !ok {
				continue
			}
			if role, ok := domain.ParseRole(name); ok {
				roles = append(roles, role)
			}
		}
	}

	return roles
}
