package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/carrylink/carrylink-backend/internal/users"
)

// Identity is the request-scoped authenticated identity. It is always built
// from a fresh user record, never from credential-embedded fields.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// UserDirectory is the read-only user lookup the resolvers need.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*users.User, error)
}

// Resolver inspects a request for one kind of credential. It returns the
// identity on a match, (nil, nil) when it has no opinion, and an error only
// for infrastructure failures (the caller treats those as no identity).
type Resolver interface {
	Resolve(r *http.Request) (*Identity, error)
}

// Chain tries each resolver in order and returns the first identity found.
type Chain []Resolver

func (c Chain) Resolve(r *http.Request) (*Identity, error) {
	for _, res := range c {
		id, err := res.Resolve(r)
		if err != nil {
			return nil, err
		}
		if id != nil {
			return id, nil
		}
	}
	return nil, nil
}

type sessionResolver struct {
	codec *SessionCodec
	dir   UserDirectory
}

// NewSessionResolver resolves the signed auth_token cookie. It takes
// precedence over every other credential in the same request.
func NewSessionResolver(codec *SessionCodec, dir UserDirectory) Resolver {
	return &sessionResolver{codec: codec, dir: dir}
}

func (s *sessionResolver) Resolve(r *http.Request) (*Identity, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	email, err := s.codec.Verify(cookie.Value)
	if err != nil {
		return nil, nil
	}

	u, err := s.dir.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &Identity{ID: u.ID, Email: u.Email, Name: u.Name}, nil
}

type apiKeyResolver struct {
	dir UserDirectory
	now func() time.Time
}

// NewAPIKeyResolver resolves the x-api-key header. Only the email claim is
// used, as a lookup key; the identity comes from the stored user record.
func NewAPIKeyResolver(dir UserDirectory) Resolver {
	return &apiKeyResolver{dir: dir, now: time.Now}
}

func (a *apiKeyResolver) Resolve(r *http.Request) (*Identity, error) {
	key := r.Header.Get("x-api-key")
	if key == "" {
		return nil, nil
	}

	claims, err := DecodeAPIKey(key)
	if err != nil {
		return nil, nil
	}
	if claims.Expired(a.now()) {
		return nil, nil
	}

	u, err := a.dir.GetByEmail(r.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &Identity{ID: u.ID, Email: u.Email, Name: u.Name}, nil
}
