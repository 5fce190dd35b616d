package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	s, err := NewSigner("s3cret")
	require.NoError(t, err)

	token, err := s.GenerateToken("catalog-admin", time.Hour)
	require.NoError(t, err)

	sub, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "catalog-admin", sub)
}

func TestValidateRejectsOtherSecret(t *testing.T) {
	a, _ := NewSigner("one")
	b, _ := NewSigner("two")

	token, err := a.GenerateToken("catalog-admin", time.Hour)
	require.NoError(t, err)

	_, err = b.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateRejectsExpired(t *testing.T) {
	s, _ := NewSigner("s3cret")
	token, err := s.GenerateToken("catalog-admin", -time.Minute)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestNewSignerRequiresSecret(t *testing.T) {
	_, err := NewSigner("")
	assert.Equal(t, ErrNoSecret, err)
}
