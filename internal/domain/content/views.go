package content

// View renders the hero banner in lang.
func (h *HeroContent) View(lang Language) HeroView {
	all := make(map[Language]HeroTexts, len(Languages))
	for _, l := range Languages {
		all[l] = HeroTexts{Title: h.Title.Get(l), Subtitle: h.Subtitle.Get(l)}
	}
	return HeroView{
		ID:           h.ID,
		Title:        h.Title.Pick(lang, DefaultHeroTitle),
		Subtitle:     h.Subtitle.Pick(lang, DefaultHeroSubtitle),
		AllLanguages: all,
	}
}

// DefaultHeroView is served when no hero row exists yet.
func DefaultHeroView() HeroView {
	return (&HeroContent{}).View(EN)
}

func (p *Product) View(lang Language) ProductView {
	all := make(map[Language]ProductTexts, len(Languages))
	for _, l := range Languages {
		all[l] = ProductTexts{
			Name:        p.Name.Get(l),
			Description: p.Description.Get(l),
			Category:    p.Category.Get(l),
		}
	}
	colors := p.Colors
	if colors == nil {
		colors = []string{}
	}
	return ProductView{
		ID:            p.ID,
		Name:          p.Name.Pick(lang, ""),
		Description:   p.Description.Pick(lang, ""),
		Category:      p.Category.Pick(lang, ""),
		Price:         p.Price,
		Currency:      p.Currency,
		ImageURL:      p.ImageURL,
		Colors:        colors,
		IsFeatured:    p.IsFeatured,
		StockQuantity: p.StockQuantity,
		AllLanguages:  all,
	}
}

func (a *Activity) View(lang Language) ActivityView {
	return ActivityView{
		ID:           a.ID,
		Title:        a.Title.Pick(lang, ""),
		Description:  a.Description.Pick(lang, ""),
		IconURL:      a.IconURL,
		Category:     a.Category,
		DisplayOrder: a.DisplayOrder,
	}
}

func (g *GalleryItem) View(lang Language) GalleryView {
	return GalleryView{
		ID:           g.ID,
		Title:        g.Title.Pick(lang, ""),
		Description:  g.Description.Pick(lang, ""),
		Category:     g.Category.Pick(lang, ""),
		Quote:        g.Quote.Pick(lang, ""),
		Image:        g.Image,
		Images:       g.Images(),
		Date:         g.Date,
		DisplayOrder: g.DisplayOrder,
		CreatedAt:    g.CreatedAt,
		Stats:        GalleryStats(g.DisplayOrder),
	}
}

type galleryStat struct {
	beneficiaries string
	secondLabel   string
	secondValue   string
	thirdLabel    string
	thirdValue    string
}

// Headline figures shown on the gallery cards, indexed by display order.
var galleryStatsTable = []galleryStat{
	{"500+", "Locations", "15", "Success Rate", "95%"},
	{"300+", "Schools", "15", "Success Rate", "95%"},
	{"50+", "Response", "24/7", "Recovery Rate", "90%"},
	{"1000+", "Days", "365", "Organic Feed", "100%"},
	{"200+", "Festivals", "5", "Satisfaction", "100%"},
	{"100+", "Locations", "100+", "Survival Rate", "85%"},
}

var defaultGalleryStat = galleryStat{"100+", "Locations", "10", "Success Rate", "90%"}

// GalleryStats returns the stat block for a gallery card at display order.
func GalleryStats(order int) map[string]string {
	st := defaultGalleryStat
	if order >= 1 && order <= len(galleryStatsTable) {
		st = galleryStatsTable[order-1]
	}
	return map[string]string{
		"Beneficiaries": st.beneficiaries,
		st.secondLabel:  st.secondValue,
		st.thirdLabel:   st.thirdValue,
	}
}
