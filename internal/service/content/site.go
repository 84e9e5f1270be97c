package content

import (
	"context"
	"fmt"

	"jvhelp-service/internal/domain/content"
	"jvhelp-service/internal/pkg/cache"
)

const (
	activitiesCachePrefix = "activities"
	galleryCachePrefix    = "gallery"
)

func (s *ContentService) PublicActivities(ctx context.Context, lang content.Language) (content.Listing[content.ActivityView], error) {
	return cached(ctx, s, cache.Key(activitiesCachePrefix, string(lang)), func() (content.Listing[content.ActivityView], error) {
		items, err := s.repos.Activities.ListActive(ctx)
		if err != nil {
			return content.Listing[content.ActivityView]{}, fmt.Errorf("failed to list activities: %w", err)
		}
		views := make([]content.ActivityView, 0, len(items))
		for i := range items {
			views = append(views, items[i].View(lang))
		}
		return content.NewListing(views, lang), nil
	})
}

func (s *ContentService) PublicGallery(ctx context.Context, lang content.Language) (content.Listing[content.GalleryView], error) {
	return cached(ctx, s, cache.Key(galleryCachePrefix, string(lang)), func() (content.Listing[content.GalleryView], error) {
		items, err := s.repos.Gallery.ListActive(ctx)
		if err != nil {
			return content.Listing[content.GalleryView]{}, fmt.Errorf("failed to list gallery: %w", err)
		}
		views := make([]content.GalleryView, 0, len(items))
		for i := range items {
			views = append(views, items[i].View(lang))
		}
		return content.NewListing(views, lang), nil
	})
}
