package client

import (
	"context"
	"fmt"

	"dealspot/client/internal/domain"
)

// FavoritesService reads and toggles the current user's favorites.
type FavoritesService interface {
	Favorites(ctx context.Context) ([]domain.OfferRecord, error)
	Toggle(ctx context.Context, offerID string) error
}

type favoritesService struct {
	gateway *Gateway
}

func NewFavoritesService(gateway *Gateway) FavoritesService {
	return &favoritesService{gateway: gateway}
}

func (s *favoritesService) Favorites(ctx context.Context) ([]domain.OfferRecord, error) {
	env, err := s.gateway.Get(ctx, "/users/getfavorites")
	if err != nil {
		return nil, err
	}
	var records []domain.OfferRecord
	if err := env.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	return records, nil
}

func (s *favoritesService) Toggle(ctx context.Context, offerID string) error {
	// The gateway already surfaces isSuccess=false as an error, so a nil
	// return means the backend confirmed the flip.
	_, err := s.gateway.Post(ctx, "/users/togglefavorite", map[string]string{"offerId": offerID})
	return err
}
