package content

import (
	"context"
	"fmt"

	"jvhelp-service/internal/domain/content"
	wstypes "jvhelp-service/internal/domain/websocket"
	"jvhelp-service/internal/pkg/cache"
	xerrors "jvhelp-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const heroCachePrefix = "hero"

// PublicHero renders the hero banner in lang, falling back to the literal
// defaults when nothing has been saved yet.
func (s *ContentService) PublicHero(ctx context.Context, lang content.Language) (content.HeroView, error) {
	return cached(ctx, s, cache.Key(heroCachePrefix, string(lang)), func() (content.HeroView, error) {
		h, err := s.repos.Hero.Get(ctx)
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return content.DefaultHeroView(), nil
		}
		if err != nil {
			return content.HeroView{}, fmt.Errorf("failed to load hero content: %w", err)
		}
		return h.View(lang), nil
	})
}

// AdminHero returns the stored hero texts, or an empty record.
func (s *ContentService) AdminHero(ctx context.Context) (*content.HeroContent, error) {
	h, err := s.repos.Hero.Get(ctx)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return &content.HeroContent{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load hero content: %w", err)
	}
	return h, nil
}

// UpdateHero saves the hero texts. Hindi and Gujarati default to English.
func (s *ContentService) UpdateHero(ctx context.Context, req *content.HeroRequest, by string) (*content.HeroContent, error) {
	title := content.Localized{EN: req.TitleEN, HI: req.TitleHI, GU: req.TitleGU}.Normalize()
	subtitle := content.Localized{EN: req.SubtitleEN, HI: req.SubtitleHI, GU: req.SubtitleGU}.Normalize()
	if title.EN == "" || subtitle.EN == "" {
		return nil, xerrors.Invalid("English title and subtitle are required")
	}

	h := &content.HeroContent{Title: title, Subtitle: subtitle}
	if err := s.repos.Hero.Upsert(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to save hero content: %w", err)
	}

	s.invalidate(ctx, heroCachePrefix)
	s.publish(wstypes.ChannelContent, wstypes.EventTypeContentUpdated, wstypes.ContentEventData{
		Module: "hero-content", Action: "updated", By: by,
	})
	s.logger.Info("hero content updated", zap.String("by", by))
	return h, nil
}
