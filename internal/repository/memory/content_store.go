package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"jvhelp-service/internal/domain/content"
	xerrors "jvhelp-service/internal/pkg/errors"
)

// HeroStore implements content.HeroRepository.
type HeroStore struct {
	mu   sync.RWMutex
	hero *content.HeroContent
}

func NewHeroStore() *HeroStore {
	return &HeroStore{}
}

func (s *HeroStore) Get(_ context.Context) (*content.HeroContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.hero == nil {
		return nil, xerrors.ErrNotFound
	}
	clone := *s.hero
	return &clone, nil
}

func (s *HeroStore) Upsert(_ context.Context, h *content.HeroContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h.ID = 1
	h.UpdatedAt = time.Now()
	clone := *h
	s.hero = &clone
	return nil
}

// ProductStore implements content.ProductRepository.
type ProductStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*content.Product
	Err      error
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[uuid.UUID]*content.Product)}
}

func (s *ProductStore) List(_ context.Context, f content.ProductFilter) ([]content.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	needle := strings.ToLower(f.Category)
	out := make([]content.Product, 0, len(s.products))
	for _, p := range s.products {
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.FeaturedOnly && !p.IsFeatured {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Category.Get(f.Language)), needle) {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *ProductStore) FindByID(_ context.Context, id uuid.UUID) (*content.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	p, ok := s.products[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	clone := cloneProduct(p)
	return &clone, nil
}

func (s *ProductStore) Create(_ context.Context, p *content.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	// strictly increasing so listing order is stable
	now := time.Now()
	for _, existing := range s.products {
		if !now.After(existing.CreatedAt) {
			now = existing.CreatedAt.Add(time.Microsecond)
		}
	}
	p.CreatedAt, p.UpdatedAt = now, now
	clone := cloneProduct(p)
	s.products[p.ID] = &clone
	return nil
}

func (s *ProductStore) Update(_ context.Context, p *content.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	existing, ok := s.products[p.ID]
	if !ok {
		return xerrors.ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	clone := cloneProduct(p)
	s.products[p.ID] = &clone
	return nil
}

func (s *ProductStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.products[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func cloneProduct(p *content.Product) content.Product {
	clone := *p
	clone.Colors = append([]string(nil), p.Colors...)
	return clone
}

// ActivityStore implements content.ActivityRepository and
// content.GalleryRepository.
type ActivityStore struct {
	mu         sync.RWMutex
	activities []content.Activity
	gallery    []content.GalleryItem
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

// AddActivity seeds an activity.
func (s *ActivityStore) AddActivity(a content.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	s.activities = append(s.activities, a)
}

// AddGalleryItem seeds a gallery entry.
func (s *ActivityStore) AddGalleryItem(g content.GalleryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	s.gallery = append(s.gallery, g)
}

func (s *ActivityStore) ListActive(_ context.Context) ([]content.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]content.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		if a.IsActive {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

// Gallery adapts the store to content.GalleryRepository.
func (s *ActivityStore) Gallery() content.GalleryRepository {
	return galleryView{s}
}

type galleryView struct{ s *ActivityStore }

func (g galleryView) ListActive(_ context.Context) ([]content.GalleryItem, error) {
	g.s.mu.RLock()
	defer g.s.mu.RUnlock()

	out := make([]content.GalleryItem, 0, len(g.s.gallery))
	for _, item := range g.s.gallery {
		if item.IsActive {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

// ThoughtStore implements content.ThoughtRepository.
type ThoughtStore struct {
	mu       sync.RWMutex
	thoughts []content.Thought
}

func NewThoughtStore() *ThoughtStore {
	return &ThoughtStore{}
}

func (s *ThoughtStore) Create(_ context.Context, t *content.Thought) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	if n := len(s.thoughts); n > 0 && !t.CreatedAt.After(s.thoughts[n-1].CreatedAt) {
		t.CreatedAt = s.thoughts[n-1].CreatedAt.Add(time.Microsecond)
	}
	s.thoughts = append(s.thoughts, *t)
	return nil
}

// List returns newest first.
func (s *ThoughtStore) List(_ context.Context, limit, offset int) ([]content.Thought, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.thoughts)
	out := make([]content.Thought, 0, limit)
	for i := total - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.thoughts[i])
	}
	return out, int64(total), nil
}

func (s *ThoughtStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.thoughts {
		if t.ID == id {
			s.thoughts = append(s.thoughts[:i], s.thoughts[i+1:]...)
			return nil
		}
	}
	return xerrors.ErrNotFound
}
