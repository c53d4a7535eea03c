package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	service := NewTokenService([]byte("my-secret-key-123123"), time.Hour)

	token, err := service.Issue("admin1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	loginId, err := service.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin1", loginId)

	// Resolving twice yields the same result
	loginId, err = service.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin1", loginId)
}

func TestTokenExpired(t *testing.T) {
	service := NewTokenService([]byte("my-secret-key-123123"), -time.Minute)

	token, err := service.Issue("admin1")
	assert.NoError(t, err)

	// Signature is valid, expiry alone must reject it
	_, err = service.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongKey(t *testing.T) {
	issuer := NewTokenService([]byte("my-secret-key-123123"), time.Hour)
	verifier := NewTokenService([]byte("another-key-entirely"), time.Hour)

	token, err := issuer.Issue("admin1")
	assert.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	service := NewTokenService([]byte("my-secret-key-123123"), time.Hour)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := service.Parse(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken, tokenString)
	}
}
