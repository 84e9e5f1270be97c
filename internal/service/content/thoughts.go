package content

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"jvhelp-service/internal/domain/content"
	wstypes "jvhelp-service/internal/domain/websocket"
	xerrors "jvhelp-service/internal/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxThoughtLength = 2000
	defaultPageSize  = 20
	maxPageSize      = 100
)

// SubmitThought stores a visitor thought. Anonymous posts never keep a name
// or contact number.
func (s *ContentService) SubmitThought(ctx context.Context, req *content.CreateThoughtRequest) (*content.Thought, error) {
	text := strings.TrimSpace(req.Thought)
	if text == "" {
		return nil, xerrors.Invalid("Thought content is required")
	}
	if utf8.RuneCountInString(text) > maxThoughtLength {
		return nil, xerrors.Invalid("Thought must be at most %d characters", maxThoughtLength)
	}

	t := &content.Thought{
		ID:          uuid.New(),
		Thought:     text,
		Language:    content.ParseLanguage(req.Language),
		IsAnonymous: req.IsAnonymous,
	}
	if !req.IsAnonymous {
		t.Name = optional(req.Name)
		t.ContactNo = optional(req.ContactNo)
	}

	if err := s.repos.Thoughts.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save thought: %w", err)
	}

	s.publish(wstypes.ChannelThoughts, wstypes.EventTypeThoughtCreated, t)
	s.logger.Info("thought submitted", zap.String("thought_id", t.ID.String()), zap.Bool("anonymous", t.IsAnonymous))
	return t, nil
}

// PublicThoughts lists thoughts newest first without contact numbers.
func (s *ContentService) PublicThoughts(ctx context.Context, f content.ThoughtListFilters) (*content.ThoughtPage, error) {
	page, err := s.listThoughts(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range page.Thoughts {
		page.Thoughts[i] = page.Thoughts[i].Public()
	}
	return page, nil
}

// AdminThoughts lists thoughts newest first with every field.
func (s *ContentService) AdminThoughts(ctx context.Context, f content.ThoughtListFilters) (*content.ThoughtPage, error) {
	return s.listThoughts(ctx, f)
}

func (s *ContentService) DeleteThought(ctx context.Context, id uuid.UUID, by string) error {
	if err := s.repos.Thoughts.Delete(ctx, id); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete thought: %w", err)
	}

	s.publish(wstypes.ChannelThoughts, wstypes.EventTypeThoughtDeleted, wstypes.ContentEventData{
		Module: "thoughts", Action: "deleted", ID: id.String(), By: by,
	})
	s.logger.Info("thought deleted", zap.String("thought_id", id.String()), zap.String("by", by))
	return nil
}

func (s *ContentService) listThoughts(ctx context.Context, f content.ThoughtListFilters) (*content.ThoughtPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	// keeps the row offset well inside int range
	if f.Page-1 > math.MaxInt32/f.Limit {
		return nil, xerrors.Invalid("page is out of range")
	}

	thoughts, total, err := s.repos.Thoughts.List(ctx, f.Limit, (f.Page-1)*f.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list thoughts: %w", err)
	}
	if thoughts == nil {
		thoughts = []content.Thought{}
	}

	totalPages := int(total) / f.Limit
	if int(total)%f.Limit > 0 {
		totalPages++
	}

	return &content.ThoughtPage{
		Thoughts: thoughts,
		Pagination: content.Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
