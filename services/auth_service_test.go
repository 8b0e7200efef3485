package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthServiceLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	auth := NewAuthService(string(hash), "signing-key")

	token, err := auth.Login("s3cret")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Role)

	_, err = auth.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = NewAuthService(string(hash), "other-key").ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthServiceNotConfigured(t *testing.T) {
	_, err := NewAuthService("", "").Login("anything")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestHashAdminKey(t *testing.T) {
	hash, err := HashAdminKey("key")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("key")))
}
