package client

import (
	"context"
	"fmt"
	"net/url"

	"dealspot/client/internal/domain"
)

// CategoryService reads category reference data.
type CategoryService interface {
	All(ctx context.Context) ([]domain.CategoryRecord, error)
	ByID(ctx context.Context, id string) (*domain.CategoryRecord, error)
}

type categoryService struct {
	gateway *Gateway
}

func NewCategoryService(gateway *Gateway) CategoryService {
	return &categoryService{gateway: gateway}
}

func (s *categoryService) All(ctx context.Context) ([]domain.CategoryRecord, error) {
	env, err := s.gateway.Get(ctx, "/categories/getallcategories")
	if err != nil {
		return nil, err
	}
	var records []domain.CategoryRecord
	if err := env.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return records, nil
}

func (s *categoryService) ByID(ctx context.Context, id string) (*domain.CategoryRecord, error) {
	env, err := s.gateway.Get(ctx, "/categories/getcategorybyid/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var record domain.CategoryRecord
	if err := env.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode category %s: %w", id, err)
	}
	return &record, nil
}

// SubcategoryService reads subcategory reference data.
type SubcategoryService interface {
	All(ctx context.Context) ([]domain.SubcategoryRecord, error)
	ByID(ctx context.Context, id string) (*domain.SubcategoryRecord, error)
	ByCategory(ctx context.Context, categoryID string) ([]domain.SubcategoryRecord, error)
}

type subcategoryService struct {
	gateway *Gateway
}

func NewSubcategoryService(gateway *Gateway) SubcategoryService {
	return &subcategoryService{gateway: gateway}
}

func (s *subcategoryService) All(ctx context.Context) ([]domain.SubcategoryRecord, error) {
	env, err := s.gateway.Get(ctx, "/subcategories/getallsubcategories")
	if err != nil {
		return nil, err
	}
	var records []domain.SubcategoryRecord
	if err := env.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode subcategories: %w", err)
	}
	return records, nil
}

func (s *subcategoryService) ByID(ctx context.Context, id string) (*domain.SubcategoryRecord, error) {
	env, err := s.gateway.Get(ctx, "/subcategories/getsubcategorybyid/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var record domain.SubcategoryRecord
	if err := env.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode subcategory %s: %w", id, err)
	}
	return &record, nil
}

func (s *subcategoryService) ByCategory(ctx context.Context, categoryID string) ([]domain.SubcategoryRecord, error) {
	env, err := s.gateway.Get(ctx, "/subcategories/getsubcategoriesbycategoryid/"+url.PathEscape(categoryID))
	if err != nil {
		return nil, err
	}
	var records []domain.SubcategoryRecord
	if err := env.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode subcategories for category %s: %w", categoryID, err)
	}
	return records, nil
}

// BrandService reads brand reference data.
type BrandService interface {
	All(ctx context.Context) ([]domain.BrandRecord, error)
	AllForApp(ctx context.Context) ([]domain.BrandRecord, error)
	ByID(ctx context.Context, id string) (*domain.BrandRecord, error)
	ByCategory(ctx context.Context, categoryID string) ([]domain.BrandRecord, error)
	ByTags(ctx context.Context, tags []string) ([]domain.BrandRecord, error)
}

type brandService struct {
	gateway *Gateway
}

func NewBrandService(gateway *Gateway) BrandService {
	return &brandService{gateway: gateway}
}

func (s *brandService) All(ctx context.Context) ([]domain.BrandRecord, error) {
	return s.list(ctx, "/brands/getallbrands")
}

func (s *brandService) AllForApp(ctx context.Context) ([]domain.BrandRecord, error) {
	return s.list(ctx, "/brands/getallbrandsforapp")
}

func (s *brandService) ByCategory(ctx context.Context, categoryID string) ([]domain.BrandRecord, error) {
	return s.list(ctx, "/brands/getbrandsbycategoryid/"+url.PathEscape(categoryID))
}

func (s *brandService) list(ctx context.Context, path string) ([]domain.BrandRecord, error) {
	env, err := s.gateway.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var records []domain.BrandRecord
	if err := env.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode brands: %w", err)
	}
	return records, nil
}

func (s *brandService) ByID(ctx context.Context, id string) (*domain.BrandRecord, error) {
	env, err := s.gateway.Get(ctx, "/brands/getbrandbyid/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var record domain.BrandRecord
	if err := env.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode brand %s: %w", id, err)
	}
	return &record, nil
}

func (s *brandService) ByTags(ctx context.Context, tags []string) ([]domain.BrandRecord, error) {
	env, err := s.gateway.Post(ctx, "/brands/getbrandsbytags", map[string][]string{"tags": tags})
	if err != nil {
		return nil, err
	}
	var records []domain.BrandRecord
	if err := env.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode brands for tags: %w", err)
	}
	return records, nil
}

// BannerService reads promotional banners.
type BannerService interface {
	All(ctx context.Context) ([]domain.BannerRecord, error)
	ByID(ctx context.Context, id string) (*domain.BannerRecord, error)
}

type bannerService struct {
	gateway *Gateway
}

func NewBannerService(gateway *Gateway) BannerService {
	return &bannerService{gateway: gateway}
}

func (s *bannerService) All(ctx context.Context) ([]domain.BannerRecord, error) {
	env, err := s.gateway.Get(ctx, "/banners/getallbanners")
	if err != nil {
		return nil, err
	}
	var records []domain.BannerRecord
	if err := env.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode banners: %w", err)
	}
	return records, nil
}

func (s *bannerService) ByID(ctx context.Context, id string) (*domain.BannerRecord, error) {
	env, err := s.gateway.Get(ctx, "/banners/getbannerbyid/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var record domain.BannerRecord
	if err := env.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode banner %s: %w", id, err)
	}
	return &record, nil
}
