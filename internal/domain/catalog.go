package domain

// Wire shapes for reference data.

type CategoryRecord struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CategoryName string   `json:"categoryName"`
	Description  string   `json:"description"`
	BrandIDs     []string `json:"brandid"`
	IsActive     bool     `json:"isActive"`
}

type SubcategoryRecord struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	SubCategoryName string    `json:"subCategoryName"`
	Description     string    `json:"description"`
	CategoryID      Reference `json:"categoryid"`
	IsActive        bool      `json:"isActive"`
}

type BrandRecord struct {
	ID          string   `json:"id"`
	AltID       string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Logo        string   `json:"logo"`
	Website     string   `json:"website"`
	Tags        []string `json:"tags"`
	IsActive    bool     `json:"isActive"`
}

type BannerRecord struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	ImgURL   ImageList `json:"imgUrl"`
	OfferID  Reference `json:"offerid"`
	IsActive bool      `json:"isActive"`
}

// Canonical client-side shapes.

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

type Subcategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId,omitempty"`
}

type Brand struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Deals int    `json:"deals"`
	Color string `json:"color"`
}

type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl,omitempty"`
	OfferID  string `json:"offerId,omitempty"`
}
