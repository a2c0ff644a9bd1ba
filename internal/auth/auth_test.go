package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Test123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Test123!", hash)

	assert.True(t, VerifyPassword("Test123!", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestIssueAndVerifyToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.IssueToken("user@example.com")
	require.NoError(t, err)

	email, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).IssueToken("user@example.com")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.IssueToken("user@example.com")
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
