// Package transform normalizes backend wire records into the canonical
// client-side shapes. It is total: missing or partially-populated source
// fields degrade to defaults, never to an error.
package transform

import (
	"strconv"

	"dealspot/client/internal/domain"
)

const (
	defaultBadge        = "DEAL"
	unknownBrandName    = "Unknown Brand"
	unknownCategoryName = "Unknown Category"

	defaultBrandIcon = "🏷️"
	brandFallback    = "🏢"
	categoryIcon     = "📦"

	defaultColor   = "#4A90E2"
	brandCardColor = "#FFFFFF"
)

var badgeColors = map[string]string{
	"TRENDING": "#FF6B6B",
	"HOT DEAL": "#FF4444",
	"BOGO":     "#FFA500",
	"50% OFF":  "#9B59B6",
	"FEATURED": "#4A90E2",
}

func badgeColor(badge string) string {
	if color, ok := badgeColors[badge]; ok {
		return color
	}
	return defaultColor
}

// Offer converts one backend offer record into the canonical shape.
func Offer(rec domain.OfferRecord) domain.Offer {
	brandName, brandLogo := resolveBrand(rec.BrandID)
	categoryID, categoryName := resolveCategory(rec.CategoryID)

	badge := rec.Badge
	if badge == "" {
		badge = defaultBadge
	}

	images := []string(rec.ImgURL)
	if images == nil {
		images = []string{}
	}

	return domain.Offer{
		ID:              rec.ID,
		Brand:           brandName,
		BrandIcon:       defaultBrandIcon,
		BrandLogo:       brandLogo,
		BrandColor:      defaultColor,
		Title:           rec.Title,
		Description:     rec.Description,
		Badge:           badge,
		BadgeColor:      badgeColor(rec.Badge),
		Discount:        formatDiscount(rec.DiscountPercentage),
		OriginalPrice:   formatPrice(rec.ActualPrice),
		DiscountedPrice: formatPrice(rec.DiscountedPrice),
		CategoryID:      categoryID,
		CategoryName:    categoryName,
		ExpiryDate:      rec.EndDate,
		PromoCode:       rec.Promocode,
		ImageURL:        rec.ImgURL.Primary(),
		Images:          images,
		IsVerified:      true,
		// Derived here, the backend carries no trending flag
		IsTrending: rec.Badge == "HOT DEAL" || rec.Badge == "TRENDING",
		Links:      rec.Links,
		HasWebsite: rec.HasWebsite,
		IsPhysical: rec.IsPhysical,
		Tags:       rec.Tags,
		Variants:   rec.Variants,
	}
}

// Offers converts a slice of records, preserving order.
func Offers(records []domain.OfferRecord) []domain.Offer {
	offers := make([]domain.Offer, 0, len(records))
	for _, rec := range records {
		offers = append(offers, Offer(rec))
	}
	return offers
}

func Category(rec domain.CategoryRecord) domain.Category {
	name := rec.Name
	if name == "" {
		name = rec.CategoryName
	}
	return domain.Category{
		ID:    rec.ID,
		Name:  name,
		Icon:  categoryIcon,
		Color: defaultColor,
	}
}

func Categories(records []domain.CategoryRecord) []domain.Category {
	categories := make([]domain.Category, 0, len(records))
	for _, rec := range records {
		categories = append(categories, Category(rec))
	}
	return categories
}

func Subcategory(rec domain.SubcategoryRecord) domain.Subcategory {
	name := rec.Name
	if name == "" {
		name = rec.SubCategoryName
	}
	categoryID := rec.CategoryID.Raw
	if rec.CategoryID.Object != nil {
		categoryID = rec.CategoryID.Object.RefID()
	}
	return domain.Subcategory{
		ID:         rec.ID,
		Name:       name,
		CategoryID: categoryID,
	}
}

func Brand(rec domain.BrandRecord) domain.Brand {
	id := rec.ID
	if id == "" {
		id = rec.AltID
	}
	icon := rec.Logo
	if icon == "" {
		icon = brandFallback
	}
	return domain.Brand{
		ID:    id,
		Name:  rec.Name,
		Icon:  icon,
		Color: brandCardColor,
	}
}

func Brands(records []domain.BrandRecord) []domain.Brand {
	brands := make([]domain.Brand, 0, len(records))
	for _, rec := range records {
		brands = append(brands, Brand(rec))
	}
	return brands
}

func Banner(rec domain.BannerRecord) domain.Banner {
	offerID := rec.OfferID.Raw
	if rec.OfferID.Object != nil {
		offerID = rec.OfferID.Object.RefID()
	}
	return domain.Banner{
		ID:       rec.ID,
		Title:    rec.Title,
		ImageURL: rec.ImgURL.Primary(),
		OfferID:  offerID,
	}
}

func Banners(records []domain.BannerRecord) []domain.Banner {
	banners := make([]domain.Banner, 0, len(records))
	for _, rec := range records {
		banners = append(banners, Banner(rec))
	}
	return banners
}

// resolveBrand handles the string-or-object brand reference. A bare string
// is treated as the display name directly (degraded mode, no logo).
func resolveBrand(ref domain.Reference) (name, logo string) {
	if ref.Object != nil {
		name = ref.Object.Name
		if name == "" {
			name = unknownBrandName
		}
		return name, ref.Object.Logo
	}
	if ref.Raw != "" {
		return ref.Raw, ""
	}
	return unknownBrandName, ""
}

// resolveCategory handles the string-or-object category reference. A bare
// string is the category id; the display name is then unknown.
func resolveCategory(ref domain.Reference) (id, name string) {
	if ref.Object != nil {
		name = ref.Object.CategoryName
		if name == "" {
			name = ref.Object.Name
		}
		if name == "" {
			name = unknownCategoryName
		}
		return ref.Object.RefID(), name
	}
	if ref.Raw != "" {
		return ref.Raw, unknownCategoryName
	}
	return "", ""
}

func formatDiscount(pct *float64) string {
	if pct == nil {
		return ""
	}
	return formatNumber(*pct) + "%"
}

func formatPrice(price *float64) string {
	if price == nil {
		return ""
	}
	return formatNumber(*price)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
