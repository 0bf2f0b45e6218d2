package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	codec := NewSessionCodec("test-secret", time.Hour)

	token, err := codec.Issue("u-1", "amara@example.com", "Amara")
	require.NoError(t, err)

	email, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "amara@example.com", email)
}

func TestSessionVerify_WrongSecret(t *testing.T) {
	codec := NewSessionCodec("test-secret", time.Hour)
	other := NewSessionCodec("different-secret", time.Hour)

	token, err := codec.Issue("u-1", "amara@example.com", "Amara")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrBadSession)
}

func TestSessionVerify_Expired(t *testing.T) {
	codec := NewSessionCodec("test-secret", -time.Minute)

	token, err := codec.Issue("u-1", "amara@example.com", "Amara")
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrBadSession)
}

func TestSessionVerify_Garbage(t *testing.T) {
	codec := NewSessionCodec("test-secret", time.Hour)

	_, err := codec.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrBadSession)

	_, err = codec.Verify("")
	assert.ErrorIs(t, err, ErrBadSession)
}
