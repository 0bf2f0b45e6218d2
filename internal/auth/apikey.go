package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// APIKeyClaims is the payload of the x-api-key token: a base64-encoded JSON
// blob with millisecond timestamps. The token carries no signature, so the
// email claim is only ever used as a lookup key against the user store and
// the remaining fields are never trusted. This scheme is forgeable and is
// therefore disabled in production builds (see Config.Auth.AllowAPIKeyAuth).
type APIKeyClaims struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

var ErrBadAPIKey = errors.New("invalid api key")

// Expired reports whether the key's expiry is in the past at time now.
// A zero ExpiresAt means the key never expires.
func (c APIKeyClaims) Expired(now time.Time) bool {
	return c.ExpiresAt != 0 && now.UnixMilli() > c.ExpiresAt
}

// EncodeAPIKey serializes claims into the wire form carried by x-api-key.
func EncodeAPIKey(c APIKeyClaims) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeAPIKey parses an x-api-key header value. Anything that is not
// base64-encoded JSON with an email claim is rejected.
func DecodeAPIKey(key string) (APIKeyClaims, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return APIKeyClaims{}, ErrBadAPIKey
	}

	var c APIKeyClaims
	if err := json.Unmarshal(raw, &c); err != nil {
		return APIKeyClaims{}, ErrBadAPIKey
	}
	if c.Email == "" {
		return APIKeyClaims{}, ErrBadAPIKey
	}
	return c, nil
}

// NewAPIKey builds claims for a user valid for ttl from now.
func NewAPIKey(id, email, name string, ttl time.Duration) APIKeyClaims {
	now := time.Now()
	return APIKeyClaims{
		ID:        id,
		Email:     email,
		Name:      name,
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: now.Add(ttl).UnixMilli(),
	}
}
