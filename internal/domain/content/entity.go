// internal/domain/content/entity.go
package content

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultHeroTitle    = "JV HELP"
	DefaultHeroSubtitle = "Heal Help Protect"
	DefaultCurrency     = "INR"
)

type HeroContent struct {
	ID        int64     `json:"id"`
	Title     Localized `json:"title"`
	Subtitle  Localized `json:"subtitle"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID               uuid.UUID `json:"id"`
	Name             Localized `json:"name"`
	Description      Localized `json:"description"`
	ShortDescription Localized `json:"short_description"`
	Category         Localized `json:"category"`
	UsageSuggestion  Localized `json:"usage_suggestion"`
	Price            float64   `json:"price"`
	Currency         string    `json:"currency"`
	ImageURL         string    `json:"image_url"`
	Colors           []string  `json:"colors"`
	HeightCM         *float64  `json:"height_cm"`
	WidthCM          *float64  `json:"width_cm"`
	VolumeML         *float64  `json:"volume_ml"`
	StockQuantity    int       `json:"stock_quantity"`
	IsFeatured       bool      `json:"is_featured"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Activity struct {
	ID           uuid.UUID `json:"id"`
	Title        Localized `json:"title"`
	Description  Localized `json:"description"`
	IconURL      string    `json:"icon_url"`
	Category     string    `json:"category"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
}

type GalleryItem struct {
	ID           uuid.UUID  `json:"id"`
	Title        Localized  `json:"title"`
	Description  Localized  `json:"description"`
	Category     Localized  `json:"category"`
	Quote        Localized  `json:"quote"`
	Image        string     `json:"image"`
	ExtraImages  []string   `json:"extra_images"`
	Date         *time.Time `json:"date"`
	DisplayOrder int        `json:"display_order"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Images returns the cover image followed by the non-empty extras.
func (g *GalleryItem) Images() []string {
	images := make([]string, 0, len(g.ExtraImages)+1)
	if g.Image != "" {
		images = append(images, g.Image)
	}
	for _, img := range g.ExtraImages {
		if img != "" {
			images = append(images, img)
		}
	}
	return images
}

// Thought is a visitor submission.
type Thought struct {
	ID          uuid.UUID `json:"id"`
	Name        *string   `json:"name"`
	ContactNo   *string   `json:"contact_no"`
	Thought     string    `json:"thought"`
	Language    Language  `json:"language"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}

// Public returns a copy safe for the public listing.
func (t Thought) Public() Thought {
	t.ContactNo = nil
	return t
}
