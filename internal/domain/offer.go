package domain

// OfferRecord is the backend wire shape of an offer, kept loose on purpose:
// brand and category may be bare ids or populated objects, images may be a
// string or an array, and every optional field may be absent.
type OfferRecord struct {
	ID                 string    `json:"id"`
	BrandID            Reference `json:"brandid"`
	CategoryID         Reference `json:"categoryid"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Status             string    `json:"status"`
	Badge              string    `json:"badge"`
	DiscountPercentage *float64  `json:"discountPercentage"`
	StartDate          string    `json:"startDate"`
	EndDate            string    `json:"endDate"`
	ImgURL             ImageList `json:"imgUrl"`
	ActualPrice        *float64  `json:"actualPrice"`
	DiscountedPrice    *float64  `json:"discountedPrice"`
	HasWebsite         bool      `json:"haswebsite"`
	IsPhysical         bool      `json:"isphysical"`
	Promocode          string    `json:"promocode"`
	Links              []string  `json:"links"`
	Tags               []string  `json:"tags"`
	Variants           []Variant `json:"varints"`
}

type Variant struct {
	ID     string `json:"_id"`
	Size   string `json:"size"`
	Colour string `json:"colour"`
}

// Offer is the canonical client-side shape produced by the transform
// package. Optional string fields are "" when the backend omitted them.
type Offer struct {
	ID              string    `json:"id"`
	Brand           string    `json:"brand"`
	BrandIcon       string    `json:"brandIcon"`
	BrandLogo       string    `json:"brandLogo,omitempty"`
	BrandColor      string    `json:"brandColor"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Badge           string    `json:"badge"`
	BadgeColor      string    `json:"badgeColor"`
	Discount        string    `json:"discount,omitempty"`
	OriginalPrice   string    `json:"originalPrice,omitempty"`
	DiscountedPrice string    `json:"discountedPrice,omitempty"`
	CategoryID      string    `json:"categoryId,omitempty"`
	CategoryName    string    `json:"categoryName,omitempty"`
	ExpiryDate      string    `json:"expiryDate,omitempty"`
	TimeLeft        string    `json:"timeLeft,omitempty"`
	PromoCode       string    `json:"promoCode,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Images          []string  `json:"images"`
	IsVerified      bool      `json:"isVerified"`
	IsTrending      bool      `json:"isTrending"`
	Links           []string  `json:"links,omitempty"`
	HasWebsite      bool      `json:"hasWebsite"`
	IsPhysical      bool      `json:"isPhysical"`
	Tags            []string  `json:"tags,omitempty"`
	Variants        []Variant `json:"variants,omitempty"`
}
