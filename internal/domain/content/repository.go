package content

import (
	"context"

	"github.com/google/uuid"
)

// Repositories return xerrors.ErrNotFound on a miss.

type HeroRepository interface {
	Get(ctx context.Context) (*HeroContent, error)
	Upsert(ctx context.Context, h *HeroContent) error
}

type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) ([]Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ActivityRepository interface {
	ListActive(ctx context.Context) ([]Activity, error)
}

type GalleryRepository interface {
	ListActive(ctx context.Context) ([]GalleryItem, error)
}

type ThoughtRepository interface {
	Create(ctx context.Context, t *Thought) error
	List(ctx context.Context, limit, offset int) ([]Thought, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
