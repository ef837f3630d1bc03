package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

const testSecret = "test-secret-not-for-production"

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewService(testSecret, 3600)
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	signed, err := svc.Issue("42", []domain.Role{domain.RoleJobSeeker, domain.RoleEmployer}, issuedAt)
	require.NoError(t, err)

	claims, err := svc.Verify(signed, issuedAt.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.ElementsMatch(t, []domain.Role{domain.RoleJobSeeker, domain.RoleEmployer}, claims.Roles)
	// exp round-trips through a Unix timestamp, so compare instants, not
	// time.Time values
	assert.True(t, claims.ExpiresAt.Equal(issuedAt.Add(time.Hour)))
	assert.True(t, claims.IssuedAt.Equal(issuedAt))
}

func TestVerifyExpiry(t *testing.T) {
	svc := NewService(testSecret, 3600)
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	signed, err := svc.Issue("42", []domain.Role{domain.RoleJobSeeker}, issuedAt)
	require.NoError(t, err)

	// valid right up to the boundary
	_, err = svc.Verify(signed, issuedAt.Add(time.Hour-time.Second))
	require.NoError(t, err)

	// expired at exactly issuedAt+ttl and after
	_, err = svc.Verify(signed, issuedAt.Add(time.Hour))
	assert.ErrorIs(t, err, ErrExpired)
	_, err = svc.Verify(signed, issuedAt.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyTamperedSignature(t *testing.T) {
	svc := NewService(testSecret, 3600)
	now := time.Now()

	signed, err := svc.Issue("42", []domain.Role{domain.RoleStaff}, now)
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	sig[0] ^= 0x01
	parts[2] = base64.RawURLEncoding.EncodeToString(sig)

	_, err = svc.Verify(strings.Join(parts, "."), now)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyWrongKey(t *testing.T) {
	issuer := NewService(testSecret, 3600)
	verifier := NewService("a-different-secret", 3600)
	now := time.Now()

	signed, err := issuer.Issue("42", []domain.Role{domain.RoleStaff}, now)
	require.NoError(t, err)

	_, err = verifier.Verify(signed, now)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewService(testSecret, 3600)

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(tokenString, time.Now())
		assert.ErrorIs(t, err, ErrInvalid)
	}
}

// foreign tokens may carry roles as a bare string instead of a list; both
// encodings must verify to the same role set
func TestVerifyRolesEncodings(t *testing.T) {
	svc := NewService(testSecret, 3600)
	now := time.Now()

	sign := func(roles any) string {
		claims := jwtv5.MapClaims{
			"sub":   "7",
			"roles": roles,
			"iat":   now.Unix(),
			"exp":   now.Add(time.Hour).Unix(),
		}
		signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return signed
	}

	single, err := svc.Verify(sign("EMPLOYER"), now)
	require.NoError(t, err)
	list, err := svc.Verify(sign([]string{"EMPLOYER"}), now)
	require.NoError(t, err)
	assert.Equal(t, single.Roles, list.Roles)
	assert.Equal(t, []domain.Role{domain.RoleEmployer}, single.Roles)
}

func TestVerifyDropsUnknownRoles(t *testing.T) {
	svc := NewService(testSecret, 3600)
	now := time.Now()

	claims := jwtv5.MapClaims{
		"sub":   "7",
		"roles": []any{"EMPLOYER", "SUPERUSER", 12, "STAFF"},
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	verified, err := svc.Verify(signed, now)
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleEmployer, domain.RoleStaff}, verified.Roles)
}

func TestVerifyRequiresSubjectAndExpiry(t *testing.T) {
	svc := NewService(testSecret, 3600)
	now := time.Now()

	noSub := jwtv5.MapClaims{"roles": []string{"STAFF"}, "exp": now.Add(time.Hour).Unix()}
	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, noSub).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(signed, now)
	assert.ErrorIs(t, err, ErrInvalid)

	noExp := jwtv5.MapClaims{"sub": "7", "roles": []string{"STAFF"}}
	signed, err = jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, noExp).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(signed, now)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyRejectsUnsignedAlg(t *testing.T) {
	svc := NewService(testSecret, 3600)
	now := time.Now()

	claims := jwtv5.MapClaims{"sub": "7", "exp": now.Add(time.Hour).Unix()}
	unsigned, err := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, claims).SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(unsigned, now)
	assert.ErrorIs(t, err, ErrInvalid)
}
