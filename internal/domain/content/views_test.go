package content

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeroView(t *testing.T) {
	t.Run("missing row falls back to literal defaults", func(t *testing.T) {
		v := DefaultHeroView()
		assert.Equal(t, DefaultHeroTitle, v.Title)
		assert.Equal(t, DefaultHeroSubtitle, v.Subtitle)
		require.Len(t, v.AllLanguages, 3)
	})

	t.Run("hindi falls back to english", func(t *testing.T) {
		h := &HeroContent{
			ID:       1,
			Title:    Localized{EN: "JV Help", GU: "જેવી હેલ્પ"},
			Subtitle: Localized{EN: "Heal"},
		}
		v := h.View(HI)
		assert.Equal(t, "JV Help", v.Title)
		assert.Equal(t, "Heal", v.Subtitle)
		assert.Equal(t, "જેવી હેલ્પ", v.AllLanguages[GU].Title)
	})
}

func TestProductViewNeverNullColors(t *testing.T) {
	p := &Product{ID: uuid.New(), Name: Localized{EN: "Bird feeder"}}
	v := p.View(GU)

	assert.Equal(t, "Bird feeder", v.Name)
	assert.NotNil(t, v.Colors)
}

func TestGalleryImagesAndStats(t *testing.T) {
	g := &GalleryItem{Image: "cover.jpg", ExtraImages: []string{"", "a.jpg", "b.jpg"}, DisplayOrder: 3}

	assert.Equal(t, []string{"cover.jpg", "a.jpg", "b.jpg"}, g.Images())
	assert.Equal(t, map[string]string{"Beneficiaries": "50+", "Response": "24/7", "Recovery Rate": "90%"}, GalleryStats(3))
	assert.Equal(t, "100+", GalleryStats(42)["Beneficiaries"])
	assert.Equal(t, "10", GalleryStats(0)["Locations"])
}

func TestThoughtPublicRedactsContact(t *testing.T) {
	contact := "+91 99999 00000"
	th := Thought{Thought: "Lovely work", ContactNo: &contact}

	assert.Nil(t, th.Public().ContactNo)
	assert.NotNil(t, th.ContactNo)
}

func TestNewListing(t *testing.T) {
	l := NewListing[ActivityView](nil, HI)
	assert.NotNil(t, l.Data)
	assert.Equal(t, 0, l.Total)
	assert.Equal(t, HI, l.Language)
}
