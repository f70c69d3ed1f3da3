package store

import (
	"context"
	"encoding/json"
	"sync"

	"dealspot/client/internal/client"
	"dealspot/client/internal/domain"
	"dealspot/client/internal/storage"
	"dealspot/client/internal/transform"

	log "github.com/sirupsen/logrus"
)

// FavoritesState holds full offer snapshots, keyed by offer id, owned by
// the current session.
type FavoritesState struct {
	Favorites []domain.Offer
	Loading   bool
}

type favoritesEvent interface{ isFavoritesEvent() }

type favoritesPending struct{}

// favoritesToggled flips the offer's presence: remove when present, add
// when absent. Applying it twice is the exact inverse, which is what the
// rollback path relies on.
type favoritesToggled struct{ offer domain.Offer }

type favoritesLoaded struct{ offers []domain.Offer }
type favoritesLoadFailed struct{}

// favoritesCacheLoaded only populates an empty list; a stale cache never
// overwrites an authoritative one.
type favoritesCacheLoaded struct{ offers []domain.Offer }

func (favoritesPending) isFavoritesEvent()     {}
func (favoritesToggled) isFavoritesEvent()     {}
func (favoritesLoaded) isFavoritesEvent()      {}
func (favoritesLoadFailed) isFavoritesEvent()  {}
func (favoritesCacheLoaded) isFavoritesEvent() {}

func reduceFavorites(s FavoritesState, ev favoritesEvent) FavoritesState {
	switch ev := ev.(type) {
	case favoritesPending:
		s.Loading = true
	case favoritesToggled:
		idx := -1
		for i, fav := range s.Favorites {
			if fav.ID == ev.offer.ID {
				idx = i
				break
			}
		}
		next := make([]domain.Offer, 0, len(s.Favorites)+1)
		if idx >= 0 {
			next = append(next, s.Favorites[:idx]...)
			next = append(next, s.Favorites[idx+1:]...)
		} else {
			next = append(next, s.Favorites...)
			next = append(next, ev.offer)
		}
		s.Favorites = next
	case favoritesLoaded:
		s.Loading = false
		s.Favorites = ev.offers
	case favoritesLoadFailed:
		s.Loading = false
	case favoritesCacheLoaded:
		if len(s.Favorites) == 0 {
			s.Favorites = ev.offers
		}
	}
	return s
}

// FavoritesStore implements the optimistic toggle protocol: flip locally
// first, then confirm with the backend, resyncing on success and applying
// the exact inverse on failure.
type FavoritesStore struct {
	notifier
	mu      sync.Mutex
	state   FavoritesState
	svc     client.FavoritesService
	storage storage.Store
}

func NewFavoritesStore(svc client.FavoritesService, st storage.Store) *FavoritesStore {
	return &FavoritesStore{
		svc:     svc,
		storage: st,
	}
}

// Snapshot returns a copy of the current state. The favorites slice is
// shared and must be treated as immutable by callers.
func (f *FavoritesStore) Snapshot() FavoritesState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *FavoritesStore) dispatch(ev favoritesEvent) {
	f.mu.Lock()
	f.state = reduceFavorites(f.state, ev)
	f.mu.Unlock()
	f.broadcast()
}

// Toggle optimistically flips the offer before the network call resolves.
// On backend failure the flip is inverted, restoring the pre-toggle list;
// on success a full reload supersedes the speculative state.
func (f *FavoritesStore) Toggle(ctx context.Context, offer domain.Offer) error {
	f.dispatch(favoritesToggled{offer: offer})

	if err := f.svc.Toggle(ctx, offer.ID); err != nil {
		f.dispatch(favoritesToggled{offer: offer})
		log.Warnf("Toggle for offer %s failed, rolled back: %v", offer.ID, err)
		return err
	}

	// Backend confirmed, resync to ground truth
	if err := f.LoadFromBackend(ctx); err != nil {
		log.Warnf("Favorites resync after toggle failed: %v", err)
	}
	return nil
}

// LoadFromBackend replaces the list with the backend's and mirrors it to
// the local cache. Without a stored token it resolves to an empty list
// without touching the network, avoiding a needless 401.
func (f *FavoritesStore) LoadFromBackend(ctx context.Context) error {
	f.dispatch(favoritesPending{})

	token, err := f.storage.Get(ctx, storage.KeyToken)
	if err != nil {
		log.Warnf("Failed to read token for favorites load: %v", err)
	}
	if token == "" {
		f.dispatch(favoritesLoaded{offers: []domain.Offer{}})
		return nil
	}

	records, err := f.svc.Favorites(ctx)
	if err != nil {
		f.dispatch(favoritesLoadFailed{})
		return err
	}

	offers := transform.Offers(records)
	f.dispatch(favoritesLoaded{offers: offers})

	if raw, err := json.Marshal(offers); err != nil {
		log.Warnf("Failed to encode favorites cache: %v", err)
	} else if err := f.storage.Set(ctx, storage.KeyFavorites, string(raw)); err != nil {
		log.Warnf("Failed to write favorites cache: %v", err)
	}
	return nil
}

// LoadFromStorage reads the offline cache. It only populates state when
// the in-memory list is empty, and a missing or corrupt cache is a no-op.
func (f *FavoritesStore) LoadFromStorage(ctx context.Context) error {
	raw, err := f.storage.Get(ctx, storage.KeyFavorites)
	if err != nil {
		log.Warnf("Failed to read favorites cache: %v", err)
		return nil
	}
	if raw == "" {
		return nil
	}

	var offers []domain.Offer
	if err := json.Unmarshal([]byte(raw), &offers); err != nil {
		log.Warnf("Favorites cache is unreadable, ignoring: %v", err)
		return nil
	}

	f.dispatch(favoritesCacheLoaded{offers: offers})
	return nil
}
