package store

import (
	"context"
	"sync"

	"dealspot/client/internal/client"
	"dealspot/client/internal/domain"
	"dealspot/client/internal/repository"
	"dealspot/client/internal/transform"

	log "github.com/sirupsen/logrus"
)

// Cursor tracks pagination for the currently active offer query. Only one
// cursor exists at a time; switching queries resets it.
type Cursor struct {
	Page       int
	TotalPages int
}

type queryKind int

const (
	queryAll queryKind = iota
	queryCategory
	queryBrand
)

// offerQuery identifies which listing the offer slice currently shows.
type offerQuery struct {
	kind queryKind
	ref  string
}

// CatalogState is the catalog slice: the working offer list plus the
// independently-fetched reference data.
type CatalogState struct {
	Offers         []domain.Offer
	TrendingOffers []domain.Offer
	Categories     []domain.Category
	Brands         []domain.Brand
	Banners        []domain.Banner
	Cursor         Cursor
	Loading        bool
	Err            string
}

type catalogEvent interface{ isCatalogEvent() }

type catalogPending struct{}

type catalogOffersReplaced struct {
	offers []domain.Offer
	cursor Cursor
}

type catalogOffersAppended struct {
	offers []domain.Offer
	cursor Cursor
}

type catalogTrendingLoaded struct{ offers []domain.Offer }
type catalogCategoriesLoaded struct{ categories []domain.Category }
type catalogBrandsLoaded struct{ brands []domain.Brand }
type catalogBannersLoaded struct{ banners []domain.Banner }
type catalogFailed struct{ message string }

func (catalogPending) isCatalogEvent()          {}
func (catalogOffersReplaced) isCatalogEvent()   {}
func (catalogOffersAppended) isCatalogEvent()   {}
func (catalogTrendingLoaded) isCatalogEvent()   {}
func (catalogCategoriesLoaded) isCatalogEvent() {}
func (catalogBrandsLoaded) isCatalogEvent()     {}
func (catalogBannersLoaded) isCatalogEvent()    {}
func (catalogFailed) isCatalogEvent()           {}

func reduceCatalog(s CatalogState, ev catalogEvent) CatalogState {
	switch ev := ev.(type) {
	case catalogPending:
		s.Loading = true
		s.Err = ""
	case catalogOffersReplaced:
		s.Loading = false
		s.Offers = ev.offers
		s.Cursor = ev.cursor
	case catalogOffersAppended:
		s.Loading = false
		merged := make([]domain.Offer, 0, len(s.Offers)+len(ev.offers))
		merged = append(merged, s.Offers...)
		merged = append(merged, ev.offers...)
		s.Offers = merged
		s.Cursor = ev.cursor
	case catalogTrendingLoaded:
		s.Loading = false
		s.TrendingOffers = ev.offers
	case catalogCategoriesLoaded:
		s.Loading = false
		s.Categories = ev.categories
	case catalogBrandsLoaded:
		s.Loading = false
		s.Brands = ev.brands
	case catalogBannersLoaded:
		s.Loading = false
		s.Banners = ev.banners
	case catalogFailed:
		// Stale-but-present data beats an empty screen, keep what we have
		s.Loading = false
		s.Err = ev.message
	}
	return s
}

// CatalogStore orchestrates offer, category, brand and banner fetches.
// Every offer-list fetch carries a generation; completions whose
// generation is no longer current are discarded, so a slow superseded
// response can never overwrite a newer listing.
type CatalogStore struct {
	notifier
	mu    sync.Mutex
	state CatalogState
	query offerQuery
	gen   uint64

	offers     client.OfferService
	categories client.CategoryService
	brands     client.BrandService
	banners    client.BannerService
	mirror     repository.OfferRepository
	pageSize   int
}

func NewCatalogStore(
	offers client.OfferService,
	categories client.CategoryService,
	brands client.BrandService,
	banners client.BannerService,
	mirror repository.OfferRepository,
	pageSize int,
) *CatalogStore {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &CatalogStore{
		offers:     offers,
		categories: categories,
		brands:     brands,
		banners:    banners,
		mirror:     mirror,
		pageSize:   pageSize,
	}
}

// Snapshot returns a copy of the current state. Slices are shared and
// must be treated as immutable by callers.
func (c *CatalogStore) Snapshot() CatalogState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// begin starts a new offer-list query: bumps the generation, records the
// active query, and applies the pending transition.
func (c *CatalogStore) begin(q offerQuery) uint64 {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.query = q
	c.state = reduceCatalog(c.state, catalogPending{})
	c.mu.Unlock()
	c.broadcast()
	return gen
}

// apply commits a completion event unless its generation went stale.
func (c *CatalogStore) apply(gen uint64, ev catalogEvent) bool {
	c.mu.Lock()
	if gen != c.gen {
		current := c.gen
		c.mu.Unlock()
		log.Debugf("Discarding stale catalog completion (generation %d, current %d)", gen, current)
		return false
	}
	c.state = reduceCatalog(c.state, ev)
	c.mu.Unlock()
	c.broadcast()
	return true
}

// dispatch commits an event outside the generation guard; used by the
// independent reference-data fetches.
func (c *CatalogStore) dispatch(ev catalogEvent) {
	c.mu.Lock()
	c.state = reduceCatalog(c.state, ev)
	c.mu.Unlock()
	c.broadcast()
}

// FetchAll replaces the offer list with a fresh page of all offers. Page
// values below 1 mean page 1; used for initial load and pull-to-refresh.
func (c *CatalogStore) FetchAll(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	gen := c.begin(offerQuery{kind: queryAll})

	records, pagination, err := c.offers.All(ctx, page, c.pageSize)
	if err != nil {
		c.apply(gen, catalogFailed{message: client.ErrorMessage(err, "Failed to fetch offers")})
		return err
	}

	offers := transform.Offers(records)
	if c.apply(gen, catalogOffersReplaced{offers: offers, cursor: cursorFor(page, pagination)}) {
		c.mirrorOffers(ctx, offers)
	}
	return nil
}

// FetchByCategory replaces the offer list scoped to a category, resetting
// the cursor to the requested page.
func (c *CatalogStore) FetchByCategory(ctx context.Context, categoryID string, page int) error {
	if page < 1 {
		page = 1
	}
	gen := c.begin(offerQuery{kind: queryCategory, ref: categoryID})

	records, pagination, err := c.offers.ByCategory(ctx, categoryID, page, c.pageSize)
	if err != nil {
		c.apply(gen, catalogFailed{message: client.ErrorMessage(err, "Failed to fetch offers")})
		return err
	}

	offers := transform.Offers(records)
	if c.apply(gen, catalogOffersReplaced{offers: offers, cursor: cursorFor(page, pagination)}) {
		c.mirrorOffers(ctx, offers)
	}
	return nil
}

// FetchByBrand replaces the offer list with a brand's full result set.
// Brand listings are not paginated, so the cursor pins to a single page.
func (c *CatalogStore) FetchByBrand(ctx context.Context, brandID string) error {
	gen := c.begin(offerQuery{kind: queryBrand, ref: brandID})

	records, err := c.offers.ByBrand(ctx, brandID, nil, nil)
	if err != nil {
		c.apply(gen, catalogFailed{message: client.ErrorMessage(err, "Failed to fetch offers")})
		return err
	}

	offers := transform.Offers(records)
	if c.apply(gen, catalogOffersReplaced{offers: offers, cursor: Cursor{Page: 1, TotalPages: 1}}) {
		c.mirrorOffers(ctx, offers)
	}
	return nil
}

// LoadMore appends the next page of the currently active query. It is a
// no-op while a fetch is in flight or when the cursor is on the last page.
func (c *CatalogStore) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Loading || c.state.Cursor.Page >= c.state.Cursor.TotalPages {
		c.mu.Unlock()
		return nil
	}
	gen := c.gen // same query, same generation
	next := c.state.Cursor.Page + 1
	q := c.query
	c.state = reduceCatalog(c.state, catalogPending{})
	c.mu.Unlock()
	c.broadcast()

	var (
		records    []domain.OfferRecord
		pagination *domain.Pagination
		err        error
	)
	switch q.kind {
	case queryCategory:
		records, pagination, err = c.offers.ByCategory(ctx, q.ref, next, c.pageSize)
	default:
		records, pagination, err = c.offers.All(ctx, next, c.pageSize)
	}
	if err != nil {
		c.apply(gen, catalogFailed{message: client.ErrorMessage(err, "Failed to load more offers")})
		return err
	}

	offers := transform.Offers(records)
	if c.apply(gen, catalogOffersAppended{offers: offers, cursor: cursorFor(next, pagination)}) {
		c.mirrorOffers(ctx, offers)
	}
	return nil
}

// FetchTrending loads offers carrying the TRENDING badge into their own
// slice, independent of the working offer list.
func (c *CatalogStore) FetchTrending(ctx context.Context) error {
	c.dispatch(catalogPending{})

	records, err := c.offers.ByBadge(ctx, "TRENDING")
	if err != nil {
		c.dispatch(catalogFailed{message: client.ErrorMessage(err, "Failed to fetch trending offers")})
		return err
	}

	c.dispatch(catalogTrendingLoaded{offers: transform.Offers(records)})
	return nil
}

func (c *CatalogStore) FetchCategories(ctx context.Context) error {
	c.dispatch(catalogPending{})

	records, err := c.categories.All(ctx)
	if err != nil {
		c.dispatch(catalogFailed{message: client.ErrorMessage(err, "Failed to fetch categories")})
		return err
	}

	c.dispatch(catalogCategoriesLoaded{categories: transform.Categories(records)})
	return nil
}

func (c *CatalogStore) FetchBrands(ctx context.Context) error {
	c.dispatch(catalogPending{})

	records, err := c.brands.AllForApp(ctx)
	if err != nil {
		c.dispatch(catalogFailed{message: client.ErrorMessage(err, "Failed to fetch brands")})
		return err
	}

	c.dispatch(catalogBrandsLoaded{brands: transform.Brands(records)})
	return nil
}

func (c *CatalogStore) FetchBanners(ctx context.Context) error {
	c.dispatch(catalogPending{})

	records, err := c.banners.All(ctx)
	if err != nil {
		c.dispatch(catalogFailed{message: client.ErrorMessage(err, "Failed to fetch banners")})
		return err
	}

	c.dispatch(catalogBannersLoaded{banners: transform.Banners(records)})
	return nil
}

func (c *CatalogStore) mirrorOffers(ctx context.Context, offers []domain.Offer) {
	if c.mirror == nil || len(offers) == 0 {
		return
	}
	if err := c.mirror.SaveOffers(ctx, offers); err != nil {
		log.Warnf("Failed to mirror %d offers: %v", len(offers), err)
	}
}

// cursorFor derives the cursor from a response. A missing pagination
// object means the listing fit in one page.
func cursorFor(page int, pagination *domain.Pagination) Cursor {
	if pagination == nil {
		return Cursor{Page: page, TotalPages: page}
	}
	cur := Cursor{Page: pagination.Page, TotalPages: pagination.TotalPages}
	if cur.Page < 1 {
		cur.Page = page
	}
	if cur.TotalPages < cur.Page {
		cur.TotalPages = cur.Page
	}
	return cur
}
