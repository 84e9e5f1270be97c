package content

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"jvhelp-service/internal/domain/content"
	wstypes "jvhelp-service/internal/domain/websocket"
	"jvhelp-service/internal/pkg/cache"
	xerrors "jvhelp-service/internal/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const productsCachePrefix = "products"

// PublicProducts lists active products rendered in lang.
func (s *ContentService) PublicProducts(ctx context.Context, lang content.Language, category string, featured bool) (content.Listing[content.ProductView], error) {
	category = strings.TrimSpace(category)
	key := cache.Key(productsCachePrefix, string(lang), strconv.FormatBool(featured), strings.ToLower(category))

	return cached(ctx, s, key, func() (content.Listing[content.ProductView], error) {
		products, err := s.repos.Products.List(ctx, content.ProductFilter{
			ActiveOnly:   true,
			FeaturedOnly: featured,
			Category:     category,
			Language:     lang,
		})
		if err != nil {
			return content.Listing[content.ProductView]{}, fmt.Errorf("failed to list products: %w", err)
		}

		views := make([]content.ProductView, 0, len(products))
		for i := range products {
			views = append(views, products[i].View(lang))
		}
		return content.NewListing(views, lang), nil
	})
}

// AdminProducts lists every product, active or not.
func (s *ContentService) AdminProducts(ctx context.Context) ([]content.Product, error) {
	products, err := s.repos.Products.List(ctx, content.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []content.Product{}
	}
	return products, nil
}

func (s *ContentService) CreateProduct(ctx context.Context, req *content.ProductRequest, by string) (*content.Product, error) {
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.New()

	if err := s.repos.Products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.productsChanged(ctx, "created", p.ID, by)
	return p, nil
}

func (s *ContentService) UpdateProduct(ctx context.Context, id uuid.UUID, req *content.ProductRequest, by string) (*content.Product, error) {
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = id

	if err := s.repos.Products.Update(ctx, p); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.productsChanged(ctx, "updated", id, by)
	return p, nil
}

func (s *ContentService) DeleteProduct(ctx context.Context, id uuid.UUID, by string) error {
	if err := s.repos.Products.Delete(ctx, id); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.productsChanged(ctx, "deleted", id, by)
	return nil
}

func (s *ContentService) productsChanged(ctx context.Context, action string, id uuid.UUID, by string) {
	s.invalidate(ctx, productsCachePrefix)
	s.publish(wstypes.ChannelContent, wstypes.EventTypeContentUpdated, wstypes.ContentEventData{
		Module: "products", Action: action, ID: id.String(), By: by,
	})
	s.logger.Info("product "+action, zap.String("product_id", id.String()), zap.String("by", by))
}

func productFromRequest(req *content.ProductRequest) (*content.Product, error) {
	name := content.Localized{EN: req.NameEN, HI: req.NameHI, GU: req.NameGU}.Normalize()
	description := content.Localized{EN: req.DescriptionEN, HI: req.DescriptionHI, GU: req.DescriptionGU}.Normalize()
	if name.EN == "" || description.EN == "" {
		return nil, xerrors.Invalid("English name and description are required")
	}
	if req.Price < 0 || math.IsNaN(req.Price) || math.IsInf(req.Price, 0) {
		return nil, xerrors.Invalid("price must be a non-negative number")
	}
	if req.StockQuantity < 0 {
		return nil, xerrors.Invalid("stock_quantity must not be negative")
	}
	for _, dim := range []*float64{req.HeightCM, req.WidthCM, req.VolumeML} {
		if dim != nil && *dim < 0 {
			return nil, xerrors.Invalid("dimensions must not be negative")
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = content.DefaultCurrency
	}

	colors := make([]string, 0, len(req.Colors))
	for _, c := range req.Colors {
		if c = strings.TrimSpace(c); c != "" {
			colors = append(colors, c)
		}
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return &content.Product{
		Name:             name,
		Description:      description,
		ShortDescription: content.Localized{EN: req.ShortDescriptionEN, HI: req.ShortDescriptionHI, GU: req.ShortDescriptionGU}.Normalize(),
		Category:         content.Localized{EN: req.CategoryEN, HI: req.CategoryHI, GU: req.CategoryGU}.Normalize(),
		UsageSuggestion:  content.Localized{EN: req.UsageSuggestionEN, HI: req.UsageSuggestionHI, GU: req.UsageSuggestionGU}.Normalize(),
		Price:            req.Price,
		Currency:         currency,
		ImageURL:         strings.TrimSpace(req.ImageURL),
		Colors:           colors,
		HeightCM:         req.HeightCM,
		WidthCM:          req.WidthCM,
		VolumeML:         req.VolumeML,
		StockQuantity:    req.StockQuantity,
		IsFeatured:       req.IsFeatured,
		IsActive:         active,
	}, nil
}
