package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParse_ValidToken(t *testing.T) {
	parser := NewParser(testSecret)
	userID := uuid.New()

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  userID.String(),
		"name": "김민수",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	principal, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, "김민수", principal.Name)
}

func TestParse_WrongSecret(t *testing.T) {
	parser := NewParser(testSecret)
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	parser := NewParser(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_BadSubject(t *testing.T) {
	parser := NewParser(testSecret)

	for name, claims := range map[string]jwt.MapClaims{
		"missing sub":  {"exp": time.Now().Add(time.Hour).Unix()},
		"non-uuid sub": {"sub": "42", "exp": time.Now().Add(time.Hour).Unix()},
		"empty sub":    {"sub": "", "exp": time.Now().Add(time.Hour).Unix()},
	} {
		token := signToken(t, testSecret, claims)
		_, err := parser.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
}

func TestParse_Garbage(t *testing.T) {
	parser := NewParser(testSecret)
	_, err := parser.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
