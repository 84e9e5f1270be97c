package content

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"jvhelp-service/internal/domain/content"
	wstypes "jvhelp-service/internal/domain/websocket"
	"jvhelp-service/internal/pkg/cache"
	xerrors "jvhelp-service/internal/pkg/errors"
	"jvhelp-service/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	channel   wstypes.ChannelType
	eventType wstypes.EventType
	data      any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Broadcast(channel wstypes.ChannelType, eventType wstypes.EventType, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{channel, eventType, data})
}

func (p *recordingPublisher) types() []wstypes.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]wstypes.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.eventType)
	}
	return out
}

type fixture struct {
	svc        *ContentService
	cache      *cache.Memory
	events     *recordingPublisher
	products   *memory.ProductStore
	thoughts   *memory.ThoughtStore
	activities *memory.ActivityStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cache:      cache.NewMemory(),
		events:     &recordingPublisher{},
		products:   memory.NewProductStore(),
		thoughts:   memory.NewThoughtStore(),
		activities: memory.NewActivityStore(),
	}
	f.svc = NewContentService(Repositories{
		Hero:       memory.NewHeroStore(),
		Products:   f.products,
		Activities: f.activities,
		Gallery:    f.activities.Gallery(),
		Thoughts:   f.thoughts,
	}, f.cache, zap.NewNop())
	f.svc.SetPublisher(f.events)
	return f
}

func validProduct() *content.ProductRequest {
	return &content.ProductRequest{
		NameEN:        "Clay Diya",
		NameHI:        "मिट्टी का दीया",
		DescriptionEN: "Hand made lamp",
		CategoryEN:    "Decor",
		Price:         120,
		Colors:        []string{" red ", "", "gold"},
	}
}

func TestHero(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults before first save", func(t *testing.T) {
		f := newFixture(t)
		view, err := f.svc.PublicHero(ctx, content.HI)
		require.NoError(t, err)
		assert.Equal(t, content.DefaultHeroTitle, view.Title)
		assert.Equal(t, content.DefaultHeroSubtitle, view.Subtitle)

		h, err := f.svc.AdminHero(ctx)
		require.NoError(t, err)
		assert.Empty(t, h.Title.EN)
	})

	t.Run("english texts are required", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.UpdateHero(ctx, &content.HeroRequest{TitleEN: "  ", SubtitleEN: "x"}, "admin")
		require.ErrorIs(t, err, xerrors.ErrInvalidInput)
		assert.Equal(t, "English title and subtitle are required", err.Error())
		assert.Empty(t, f.events.types())
	})

	t.Run("update fills languages and refreshes the cache", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.PublicHero(ctx, content.GU)
		require.NoError(t, err)
		assert.Equal(t, 1, f.cache.Len())

		h, err := f.svc.UpdateHero(ctx, &content.HeroRequest{
			TitleEN: "JV Help", TitleHI: "जेवी हेल्प", SubtitleEN: "Heal",
		}, "admin")
		require.NoError(t, err)
		assert.Equal(t, "JV Help", h.Title.GU)
		assert.Equal(t, "Heal", h.Subtitle.HI)
		assert.Equal(t, 0, f.cache.Len())

		view, err := f.svc.PublicHero(ctx, content.HI)
		require.NoError(t, err)
		assert.Equal(t, "जेवी हेल्प", view.Title)
		assert.Equal(t, []wstypes.EventType{wstypes.EventTypeContentUpdated}, f.events.types())
	})
}

func TestProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("create applies defaults", func(t *testing.T) {
		f := newFixture(t)
		p, err := f.svc.CreateProduct(ctx, validProduct(), "admin")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, content.DefaultCurrency, p.Currency)
		assert.Equal(t, []string{"red", "gold"}, p.Colors)
		assert.True(t, p.IsActive)
		assert.Equal(t, "Hand made lamp", p.Description.GU)
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture(t)
		height := -2.0
		cases := map[string]func(r *content.ProductRequest){
			"missing name":       func(r *content.ProductRequest) { r.NameEN = "" },
			"missing desc":       func(r *content.ProductRequest) { r.DescriptionEN = " " },
			"negative price":     func(r *content.ProductRequest) { r.Price = -1 },
			"negative stock":     func(r *content.ProductRequest) { r.StockQuantity = -3 },
			"negative dimension": func(r *content.ProductRequest) { r.HeightCM = &height },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				req := validProduct()
				mutate(req)
				_, err := f.svc.CreateProduct(ctx, req, "admin")
				assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
			})
		}
		all, err := f.svc.AdminProducts(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("public listing hides inactive and filters", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateProduct(ctx, validProduct(), "admin")
		require.NoError(t, err)

		hidden := validProduct()
		inactive := false
		hidden.IsActive = &inactive
		_, err = f.svc.CreateProduct(ctx, hidden, "admin")
		require.NoError(t, err)

		featured := validProduct()
		featured.NameEN = "Brass Bell"
		featured.CategoryEN = "Puja"
		featured.IsFeatured = true
		_, err = f.svc.CreateProduct(ctx, featured, "admin")
		require.NoError(t, err)

		list, err := f.svc.PublicProducts(ctx, content.EN, "", false)
		require.NoError(t, err)
		assert.Equal(t, 2, list.Total)

		list, err = f.svc.PublicProducts(ctx, content.EN, "", true)
		require.NoError(t, err)
		require.Len(t, list.Data, 1)
		assert.Equal(t, "Brass Bell", list.Data[0].Name)

		list, err = f.svc.PublicProducts(ctx, content.HI, "deco", false)
		require.NoError(t, err)
		require.Len(t, list.Data, 1)
		assert.Equal(t, "मिट्टी का दीया", list.Data[0].Name)
		assert.Equal(t, content.HI, list.Language)

		all, err := f.svc.AdminProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("writes invalidate cached listings", func(t *testing.T) {
		f := newFixture(t)
		list, err := f.svc.PublicProducts(ctx, content.EN, "", false)
		require.NoError(t, err)
		assert.Equal(t, 0, list.Total)
		assert.NotNil(t, list.Data)

		p, err := f.svc.CreateProduct(ctx, validProduct(), "admin")
		require.NoError(t, err)
		list, err = f.svc.PublicProducts(ctx, content.EN, "", false)
		require.NoError(t, err)
		assert.Equal(t, 1, list.Total)

		req := validProduct()
		req.NameEN = "Renamed"
		_, err = f.svc.UpdateProduct(ctx, p.ID, req, "admin")
		require.NoError(t, err)
		list, err = f.svc.PublicProducts(ctx, content.EN, "", false)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", list.Data[0].Name)

		require.NoError(t, f.svc.DeleteProduct(ctx, p.ID, "admin"))
		list, err = f.svc.PublicProducts(ctx, content.EN, "", false)
		require.NoError(t, err)
		assert.Equal(t, 0, list.Total)

		assert.Len(t, f.events.types(), 3)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.UpdateProduct(ctx, uuid.New(), validProduct(), "admin")
		assert.ErrorIs(t, err, xerrors.ErrNotFound)
		assert.ErrorIs(t, f.svc.DeleteProduct(ctx, uuid.New(), "admin"), xerrors.ErrNotFound)
	})

	t.Run("store failure is not a client error", func(t *testing.T) {
		f := newFixture(t)
		f.products.Err = errors.New("connection reset")
		_, err := f.svc.PublicProducts(ctx, content.EN, "", false)
		require.Error(t, err)
		assert.False(t, xerrors.Is(err, xerrors.ErrInvalidInput))
		assert.False(t, xerrors.Is(err, xerrors.ErrNotFound))
	})
}

func TestActivitiesAndGallery(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.activities.AddActivity(content.Activity{
		ID: uuid.New(), Title: content.Localized{EN: "Food drive", GU: "ભોજન"}, IsActive: true, DisplayOrder: 1,
	})
	f.activities.AddActivity(content.Activity{ID: uuid.New(), Title: content.Localized{EN: "Hidden"}})
	f.activities.AddGalleryItem(content.GalleryItem{
		ID: uuid.New(), Title: content.Localized{EN: "Camp"}, Image: "a.jpg", ExtraImages: []string{"b.jpg"}, IsActive: true, DisplayOrder: 1,
	})

	acts, err := f.svc.PublicActivities(ctx, content.GU)
	require.NoError(t, err)
	require.Len(t, acts.Data, 1)
	assert.Equal(t, "ભોજન", acts.Data[0].Title)

	gallery, err := f.svc.PublicGallery(ctx, content.EN)
	require.NoError(t, err)
	require.Len(t, gallery.Data, 1)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, gallery.Data[0].Images)
}

func TestThoughts(t *testing.T) {
	ctx := context.Background()

	t.Run("content is required", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.SubmitThought(ctx, &content.CreateThoughtRequest{Thought: "   "})
		require.ErrorIs(t, err, xerrors.ErrInvalidInput)
		assert.Equal(t, "Thought content is required", err.Error())
	})

	t.Run("anonymous drops identity", func(t *testing.T) {
		f := newFixture(t)
		th, err := f.svc.SubmitThought(ctx, &content.CreateThoughtRequest{
			Name: "Asha", ContactNo: "98765", Thought: " be kind ", Language: "xx", IsAnonymous: true,
		})
		require.NoError(t, err)
		assert.Nil(t, th.Name)
		assert.Nil(t, th.ContactNo)
		assert.Equal(t, "be kind", th.Thought)
		assert.Equal(t, content.EN, th.Language)
		assert.Equal(t, []wstypes.EventType{wstypes.EventTypeThoughtCreated}, f.events.types())
	})

	t.Run("public listing redacts contact", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.SubmitThought(ctx, &content.CreateThoughtRequest{
			Name: "Asha", ContactNo: "98765", Thought: "hello", Language: "hi",
		})
		require.NoError(t, err)

		pub, err := f.svc.PublicThoughts(ctx, content.ThoughtListFilters{})
		require.NoError(t, err)
		require.Len(t, pub.Thoughts, 1)
		assert.Nil(t, pub.Thoughts[0].ContactNo)
		require.NotNil(t, pub.Thoughts[0].Name)

		adm, err := f.svc.AdminThoughts(ctx, content.ThoughtListFilters{})
		require.NoError(t, err)
		require.NotNil(t, adm.Thoughts[0].ContactNo)
		assert.Equal(t, "98765", *adm.Thoughts[0].ContactNo)
	})

	t.Run("pagination", func(t *testing.T) {
		f := newFixture(t)
		for i := 0; i < 5; i++ {
			_, err := f.svc.SubmitThought(ctx, &content.CreateThoughtRequest{Thought: string(rune('a' + i))})
			require.NoError(t, err)
		}

		page, err := f.svc.AdminThoughts(ctx, content.ThoughtListFilters{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, content.Pagination{Page: 2, Limit: 2, Total: 5, TotalPages: 3}, page.Pagination)
		require.Len(t, page.Thoughts, 2)
		assert.Equal(t, "c", page.Thoughts[0].Thought)

		page, err = f.svc.AdminThoughts(ctx, content.ThoughtListFilters{Page: -1, Limit: 1000})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Pagination.Page)
		assert.Equal(t, maxPageSize, page.Pagination.Limit)
		assert.Equal(t, "e", page.Thoughts[0].Thought)

		_, err = f.svc.PublicThoughts(ctx, content.ThoughtListFilters{Page: math.MaxInt/2 + 1, Limit: 100})
		assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

		page, err = f.svc.PublicThoughts(ctx, content.ThoughtListFilters{Page: 1000, Limit: 100})
		require.NoError(t, err)
		assert.Empty(t, page.Thoughts)
		assert.Equal(t, int64(5), page.Pagination.Total)
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture(t)
		th, err := f.svc.SubmitThought(ctx, &content.CreateThoughtRequest{Thought: "bye"})
		require.NoError(t, err)

		require.NoError(t, f.svc.DeleteThought(ctx, th.ID, "admin"))
		assert.ErrorIs(t, f.svc.DeleteThought(ctx, th.ID, "admin"), xerrors.ErrNotFound)
		assert.Equal(t, []wstypes.EventType{wstypes.EventTypeThoughtCreated, wstypes.EventTypeThoughtDeleted}, f.events.types())
	})
}
