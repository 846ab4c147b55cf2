package session

import (
	"context"
	"log"

	"github.com/google/uuid"

	"surveywizard/internal/cache"
)

// IdentityProvider resolves the opaque visitor id that keys a submission.
type IdentityProvider interface {
	Resolve(ctx context.Context) (string, error)
}

// StaticIdentity returns a fixed id. An empty value means no identity,
// which makes Submit fail before any network call.
type StaticIdentity string

func (s StaticIdentity) Resolve(ctx context.Context) (string, error) {
	return string(s), nil
}

// CachedIdentity mints a fresh uuid whenever the cached one has expired,
// mirroring the browser's short-lived cookie. The server issues its own
// cookie through a separate path; the two ids are never reconciled and
// the service keys the response by whichever id accompanies the
// submission.
type CachedIdentity struct {
	cache cache.IdentityCache
	key   string
}

// NewCachedIdentity creates a provider scoped to one browser context key.
func NewCachedIdentity(c cache.IdentityCache, key string) *CachedIdentity {
	return &CachedIdentity{cache: c, key: key}
}

func (p *CachedIdentity) Resolve(ctx context.Context) (string, error) {
	id, err := p.cache.Get(ctx, p.key)
	if err != nil {
		return "", err
	}
	if id != "" {
		log.Printf("Returning user with ID: %s", id)
		return id, nil
	}

	id = uuid.NewString()
	if err := p.cache.Set(ctx, p.key, id); err != nil {
		return "", err
	}
	log.Printf("New user with ID: %s", id)
	return id, nil
}
