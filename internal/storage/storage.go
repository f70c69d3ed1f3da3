package storage

import "context"

// Keys owned by the stores. Each key has exactly one writer: user, token
// and onboarding belong to the session store (the gateway may delete user
// and token on a 401), favorites belongs to the favorites store.
const (
	KeyUser       = "user"
	KeyToken      = "token"
	KeyOnboarding = "onboarding_completed"
	KeyFavorites  = "favorites"
)

// DefaultNamespace prefixes every key so unrelated data in a shared
// backend cannot collide with ours.
const DefaultNamespace = "dealspot"

// Store is the durable local key/value collaborator. A missing key reads
// as the empty string, not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
