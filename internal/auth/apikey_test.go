package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRoundTrip(t *testing.T) {
	claims := NewAPIKey("u-1", "amara@example.com", "Amara", time.Hour)

	key, err := EncodeAPIKey(claims)
	require.NoError(t, err)

	decoded, err := DecodeAPIKey(key)
	require.NoError(t, err)
	assert.Equal(t, claims, decoded)
	assert.False(t, decoded.Expired(time.Now()))
}

func TestDecodeAPIKey_Garbage(t *testing.T) {
	_, err := DecodeAPIKey("definitely%%not-base64")
	assert.ErrorIs(t, err, ErrBadAPIKey)
}

func TestDecodeAPIKey_NotJSON(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("hello world"))
	_, err := DecodeAPIKey(key)
	assert.ErrorIs(t, err, ErrBadAPIKey)
}

func TestDecodeAPIKey_MissingEmail(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte(`{"id":"u-1","name":"Amara"}`))
	_, err := DecodeAPIKey(key)
	assert.ErrorIs(t, err, ErrBadAPIKey)
}

func TestAPIKeyExpiry(t *testing.T) {
	now := time.Now()

	expired := APIKeyClaims{Email: "a@b.co", ExpiresAt: now.Add(-time.Minute).UnixMilli()}
	assert.True(t, expired.Expired(now))

	live := APIKeyClaims{Email: "a@b.co", ExpiresAt: now.Add(time.Minute).UnixMilli()}
	assert.False(t, live.Expired(now))

	// zero expiry means the key never expires
	forever := APIKeyClaims{Email: "a@b.co"}
	assert.False(t, forever.Expired(now))
}
