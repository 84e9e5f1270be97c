package content

import (
	"time"

	"github.com/google/uuid"
)

// HeroRequest is the admin form for the hero banner.
type HeroRequest struct {
	TitleEN    string `json:"title_en"`
	TitleHI    string `json:"title_hi"`
	TitleGU    string `json:"title_gu"`
	SubtitleEN string `json:"subtitle_en"`
	SubtitleHI string `json:"subtitle_hi"`
	SubtitleGU string `json:"subtitle_gu"`
}

// ProductRequest is the admin form for creating or replacing a product.
type ProductRequest struct {
	NameEN             string   `json:"name_en"`
	NameHI             string   `json:"name_hi"`
	NameGU             string   `json:"name_gu"`
	DescriptionEN      string   `json:"description_en"`
	DescriptionHI      string   `json:"description_hi"`
	DescriptionGU      string   `json:"description_gu"`
	ShortDescriptionEN string   `json:"short_description_en"`
	ShortDescriptionHI string   `json:"short_description_hi"`
	ShortDescriptionGU string   `json:"short_description_gu"`
	CategoryEN         string   `json:"category_en"`
	CategoryHI         string   `json:"category_hi"`
	CategoryGU         string   `json:"category_gu"`
	UsageSuggestionEN  string   `json:"usage_suggestion_en"`
	UsageSuggestionHI  string   `json:"usage_suggestion_hi"`
	UsageSuggestionGU  string   `json:"usage_suggestion_gu"`
	Price              float64  `json:"price"`
	Currency           string   `json:"currency"`
	ImageURL           string   `json:"image_url"`
	Colors             []string `json:"colors"`
	HeightCM           *float64 `json:"height_cm"`
	WidthCM            *float64 `json:"width_cm"`
	VolumeML           *float64 `json:"volume_ml"`
	StockQuantity      int      `json:"stock_quantity"`
	IsFeatured         bool     `json:"is_featured"`
	IsActive           *bool    `json:"is_active"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	ActiveOnly   bool
	FeaturedOnly bool
	// Category matches case-insensitively as a substring of the category
	// text in Language.
	Category string
	Language Language
}

// CreateThoughtRequest is a visitor submission.
type CreateThoughtRequest struct {
	Name        string `json:"name"`
	ContactNo   string `json:"contact_no"`
	Thought     string `json:"thought"`
	Language    string `json:"language"`
	IsAnonymous bool   `json:"is_anonymous"`
}

type ThoughtListFilters struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type ThoughtPage struct {
	Thoughts   []Thought  `json:"thoughts"`
	Pagination Pagination `json:"pagination"`
}

// ---- public, single-language views ----

type HeroTexts struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type HeroView struct {
	ID           int64                  `json:"id"`
	Title        string                 `json:"title"`
	Subtitle     string                 `json:"subtitle"`
	AllLanguages map[Language]HeroTexts `json:"all_languages"`
}

type ProductTexts struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type ProductView struct {
	ID            uuid.UUID                 `json:"id"`
	Name          string                    `json:"name"`
	Description   string                    `json:"description"`
	Category      string                    `json:"category"`
	Price         float64                   `json:"price"`
	Currency      string                    `json:"currency"`
	ImageURL      string                    `json:"image_url"`
	Colors        []string                  `json:"colors"`
	IsFeatured    bool                      `json:"is_featured"`
	StockQuantity int                       `json:"stock_quantity"`
	AllLanguages  map[Language]ProductTexts `json:"all_languages"`
}

type ActivityView struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	IconURL      string    `json:"icon_url"`
	Category     string    `json:"category"`
	DisplayOrder int       `json:"display_order"`
}

type GalleryView struct {
	ID           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Category     string            `json:"category"`
	Quote        string            `json:"quote"`
	Image        string            `json:"image"`
	Images       []string          `json:"images"`
	Date         *time.Time        `json:"date"`
	DisplayOrder int               `json:"display_order"`
	CreatedAt    time.Time         `json:"created_at"`
	Stats        map[string]string `json:"stats"`
}

// Listing is the public list envelope.
type Listing[T any] struct {
	Data     []T      `json:"data"`
	Language Language `json:"language,omitempty"`
	Total    int      `json:"total"`
}

// NewListing wraps items, never producing a null data array.
func NewListing[T any](items []T, lang Language) Listing[T] {
	if items == nil {
		items = []T{}
	}
	return Listing[T]{Data: items, Language: lang, Total: len(items)}
}
