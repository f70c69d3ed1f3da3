package client

import (
	"context"
	"fmt"
	"net/url"

	"dealspot/client/internal/domain"
)

// OfferService reads offer listings from the backend. Methods unwrap the
// envelope and hand back wire records untouched; normalization is the
// transform package's job.
type OfferService interface {
	All(ctx context.Context, page, limit int) ([]domain.OfferRecord, *domain.Pagination, error)
	ByID(ctx context.Context, id string) (*domain.OfferRecord, error)
	ByBadge(ctx context.Context, badge string) ([]domain.OfferRecord, error)
	ByCategory(ctx context.Context, categoryID string, page, limit int) ([]domain.OfferRecord, *domain.Pagination, error)
	ByBrand(ctx context.Context, brandID string, lat, long *float64) ([]domain.OfferRecord, error)
	NearMe(ctx context.Context, userID string, maxDistance int) ([]domain.OfferRecord, error)
}

type offerService struct {
	gateway *Gateway
}

func NewOfferService(gateway *Gateway) OfferService {
	return &offerService{gateway: gateway}
}

func (s *offerService) All(ctx context.Context, page, limit int) ([]domain.OfferRecord, *domain.Pagination, error) {
	path := "/offers/getalloffers"
	if page > 0 {
		path = fmt.Sprintf("%s?page=%d&limit=%d", path, page, limit)
	}
	env, err := s.gateway.Get(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	var records []domain.OfferRecord
	if err := env.Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("failed to decode offers: %w", err)
	}
	return records, env.Pagination, nil
}

func (s *offerService) ByID(ctx context.Context, id string) (*domain.OfferRecord, error) {
	env, err := s.gateway.Get(ctx, "/offers/getofferbyid/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var record domain.OfferRecord
	if err := env.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode offer %s: %w", id, err)
	}
	return &record, nil
}

func (s *offerService) ByBadge(ctx context.Context, badge string) ([]domain.OfferRecord, error) {
	env, err := s.gateway.Get(ctx, "/offers/getoffersbybadge/"+url.PathEscape(badge))
	if err != nil {
		return nil, err
	}
	var records []domain.OfferRecord
	if err := env.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode offers for badge %s: %w", badge, err)
	}
	return records, nil
}

func (s *offerService) ByCategory(ctx context.Context, categoryID string, page, limit int) ([]domain.OfferRecord, *domain.Pagination, error) {
	path := fmt.Sprintf("/offers/getoffersbycategoryid/%s?page=%d&limit=%d",
		url.PathEscape(categoryID), page, limit)
	env, err := s.gateway.Get(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	var records []domain.OfferRecord
	if err := env.Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("failed to decode offers for category %s: %w", categoryID, err)
	}
	return records, env.Pagination, nil
}

func (s *offerService) ByBrand(ctx context.Context, brandID string, lat, long *float64) ([]domain.OfferRecord, error) {
	path := "/offers/getoffersbybrand/" + url.PathEscape(brandID)
	if lat != nil && long != nil {
		path = fmt.Sprintf("%s?lat=%v&long=%v", path, *lat, *long)
	}
	env, err := s.gateway.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var records []domain.OfferRecord
	if err := env.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode offers for brand %s: %w", brandID, err)
	}
	return records, nil
}

func (s *offerService) NearMe(ctx context.Context, userID string, maxDistance int) ([]domain.OfferRecord, error) {
	path := "/offers/near-me/" + url.PathEscape(userID)
	if maxDistance > 0 {
		path = fmt.Sprintf("%s?maxDistance=%d", path, maxDistance)
	}
	env, err := s.gateway.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var records []domain.OfferRecord
	if err := env.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode nearby offers: %w", err)
	}
	return records, nil
}
