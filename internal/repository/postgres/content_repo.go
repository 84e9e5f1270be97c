// internal/repository/postgres/content_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"jvhelp-service/internal/domain/content"
	xerrors "jvhelp-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// ========== Hero ==========

type HeroRepository struct {
	db *pgxpool.Pool
}

func NewHeroRepository(db *pgxpool.Pool) *HeroRepository {
	return &HeroRepository{db: db}
}

// Get returns the single hero row.
func (r *HeroRepository) Get(ctx context.Context) (*content.HeroContent, error) {
	query := `
		SELECT id, title_en, title_hi, title_gu, subtitle_en, subtitle_hi, subtitle_gu, updated_at
		FROM hero_content
		ORDER BY id
		LIMIT 1
	`

	var h content.HeroContent
	err := r.db.QueryRow(ctx, query).Scan(
		&h.ID, &h.Title.EN, &h.Title.HI, &h.Title.GU,
		&h.Subtitle.EN, &h.Subtitle.HI, &h.Subtitle.GU, &h.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find hero content: %w", err)
	}
	return &h, nil
}

// Upsert updates the existing hero row or inserts the first one.
func (r *HeroRepository) Upsert(ctx context.Context, h *content.HeroContent) error {
	update := `
		UPDATE hero_content
		SET title_en = $1, title_hi = $2, title_gu = $3,
		    subtitle_en = $4, subtitle_hi = $5, subtitle_gu = $6, updated_at = NOW()
		WHERE id = (SELECT id FROM hero_content ORDER BY id LIMIT 1)
		RETURNING id, updated_at
	`
	args := []any{h.Title.EN, h.Title.HI, h.Title.GU, h.Subtitle.EN, h.Subtitle.HI, h.Subtitle.GU}

	err := r.db.QueryRow(ctx, update, args...).Scan(&h.ID, &h.UpdatedAt)
	if err == nil {
		return nil
	}
	if !isNoRows(err) {
		return fmt.Errorf("failed to update hero content: %w", err)
	}

	insert := `
		INSERT INTO hero_content (title_en, title_hi, title_gu, subtitle_en, subtitle_hi, subtitle_gu)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, updated_at
	`
	if err := r.db.QueryRow(ctx, insert, args...).Scan(&h.ID, &h.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert hero content: %w", err)
	}
	return nil
}

// ========== Products ==========

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `
	id, name_en, name_hi, name_gu, description_en, description_hi, description_gu,
	short_description_en, short_description_hi, short_description_gu,
	category_en, category_hi, category_gu,
	usage_suggestion_en, usage_suggestion_hi, usage_suggestion_gu,
	price, currency, image_url, colors, height_cm, width_cm, volume_ml,
	stock_quantity, is_featured, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*content.Product, error) {
	var p content.Product
	var colors []string
	err := row.Scan(
		&p.ID, &p.Name.EN, &p.Name.HI, &p.Name.GU,
		&p.Description.EN, &p.Description.HI, &p.Description.GU,
		&p.ShortDescription.EN, &p.ShortDescription.HI, &p.ShortDescription.GU,
		&p.Category.EN, &p.Category.HI, &p.Category.GU,
		&p.UsageSuggestion.EN, &p.UsageSuggestion.HI, &p.UsageSuggestion.GU,
		&p.Price, &p.Currency, &p.ImageURL, pq.Array(&colors), &p.HeightCM, &p.WidthCM, &p.VolumeML,
		&p.StockQuantity, &p.IsFeatured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Colors = colors
	return &p, nil
}

// categoryColumn maps a language onto its category column.
func categoryColumn(lang content.Language) string {
	switch lang {
	case content.HI:
		return "category_hi"
	case content.GU:
		return "category_gu"
	default:
		return "category_en"
	}
}

func (r *ProductRepository) List(ctx context.Context, f content.ProductFilter) ([]content.Product, error) {
	var (
		where []string
		args  []any
	)
	if f.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if f.FeaturedOnly {
		where = append(where, "is_featured = TRUE")
	}
	if f.Category != "" {
		args = append(args, "%"+escapeLike(f.Category)+"%")
		where = append(where, fmt.Sprintf("%s ILIKE $%d", categoryColumn(f.Language), len(args)))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var out []content.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return out, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if isNoRows(err) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *content.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query := `
		INSERT INTO products (
			id, name_en, name_hi, name_gu, description_en, description_hi, description_gu,
			short_description_en, short_description_hi, short_description_gu,
			category_en, category_hi, category_gu,
			usage_suggestion_en, usage_suggestion_hi, usage_suggestion_gu,
			price, currency, image_url, colors, height_cm, width_cm, volume_ml,
			stock_quantity, is_featured, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.Name.EN, p.Name.HI, p.Name.GU, p.Description.EN, p.Description.HI, p.Description.GU,
		p.ShortDescription.EN, p.ShortDescription.HI, p.ShortDescription.GU,
		p.Category.EN, p.Category.HI, p.Category.GU,
		p.UsageSuggestion.EN, p.UsageSuggestion.HI, p.UsageSuggestion.GU,
		p.Price, p.Currency, p.ImageURL, pq.Array(p.Colors), p.HeightCM, p.WidthCM, p.VolumeML,
		p.StockQuantity, p.IsFeatured, p.IsActive,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *content.Product) error {
	query := `
		UPDATE products SET
			name_en = $2, name_hi = $3, name_gu = $4,
			description_en = $5, description_hi = $6, description_gu = $7,
			short_description_en = $8, short_description_hi = $9, short_description_gu = $10,
			category_en = $11, category_hi = $12, category_gu = $13,
			usage_suggestion_en = $14, usage_suggestion_hi = $15, usage_suggestion_gu = $16,
			price = $17, currency = $18, image_url = $19, colors = $20,
			height_cm = $21, width_cm = $22, volume_ml = $23,
			stock_quantity = $24, is_featured = $25, is_active = $26,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.Name.EN, p.Name.HI, p.Name.GU, p.Description.EN, p.Description.HI, p.Description.GU,
		p.ShortDescription.EN, p.ShortDescription.HI, p.ShortDescription.GU,
		p.Category.EN, p.Category.HI, p.Category.GU,
		p.UsageSuggestion.EN, p.UsageSuggestion.HI, p.UsageSuggestion.GU,
		p.Price, p.Currency, p.ImageURL, pq.Array(p.Colors), p.HeightCM, p.WidthCM, p.VolumeML,
		p.StockQuantity, p.IsFeatured, p.IsActive,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if isNoRows(err) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ========== Activities & gallery ==========

type ActivityRepository struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) ListActive(ctx context.Context) ([]content.Activity, error) {
	query := `
		SELECT id, title_en, title_hi, title_gu, description_en, description_hi, description_gu,
		       icon_url, category, display_order, is_active
		FROM activities
		WHERE is_active = TRUE
		ORDER BY display_order
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var out []content.Activity
	for rows.Next() {
		var a content.Activity
		if err := rows.Scan(
			&a.ID, &a.Title.EN, &a.Title.HI, &a.Title.GU,
			&a.Description.EN, &a.Description.HI, &a.Description.GU,
			&a.IconURL, &a.Category, &a.DisplayOrder, &a.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return out, nil
}

type GalleryRepository struct {
	db *pgxpool.Pool
}

func NewGalleryRepository(db *pgxpool.Pool) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) ListActive(ctx context.Context) ([]content.GalleryItem, error) {
	query := `
		SELECT id, title_en, title_hi, title_gu, description_en, description_hi, description_gu,
		       category_en, category_hi, category_gu, quote_en, quote_hi, quote_gu,
		       image, extra_images, event_date, display_order, is_active, created_at
		FROM activities_gallery
		WHERE is_active = TRUE
		ORDER BY display_order
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery: %w", err)
	}
	defer rows.Close()

	var out []content.GalleryItem
	for rows.Next() {
		var g content.GalleryItem
		var extra []string
		if err := rows.Scan(
			&g.ID, &g.Title.EN, &g.Title.HI, &g.Title.GU,
			&g.Description.EN, &g.Description.HI, &g.Description.GU,
			&g.Category.EN, &g.Category.HI, &g.Category.GU,
			&g.Quote.EN, &g.Quote.HI, &g.Quote.GU,
			&g.Image, pq.Array(&extra), &g.Date, &g.DisplayOrder, &g.IsActive, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan gallery item: %w", err)
		}
		g.ExtraImages = extra
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate gallery: %w", err)
	}
	return out, nil
}

// ========== Thoughts ==========

type ThoughtRepository struct {
	db *pgxpool.Pool
}

func NewThoughtRepository(db *pgxpool.Pool) *ThoughtRepository {
	return &ThoughtRepository{db: db}
}

func (r *ThoughtRepository) Create(ctx context.Context, t *content.Thought) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	query := `
		INSERT INTO user_thoughts (id, name, contact_no, thought, language, is_anonymous)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, t.ID, t.Name, t.ContactNo, t.Thought, string(t.Language), t.IsAnonymous).
		Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create thought: %w", err)
	}
	return nil
}

// List returns newest first along with the total row count.
func (r *ThoughtRepository) List(ctx context.Context, limit, offset int) ([]content.Thought, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_thoughts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count thoughts: %w", err)
	}

	query := `
		SELECT id, name, contact_no, thought, language, is_anonymous, created_at
		FROM user_thoughts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list thoughts: %w", err)
	}
	defer rows.Close()

	var out []content.Thought
	for rows.Next() {
		var t content.Thought
		var lang string
		if err := rows.Scan(&t.ID, &t.Name, &t.ContactNo, &t.Thought, &lang, &t.IsAnonymous, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan thought: %w", err)
		}
		t.Language = content.ParseLanguage(lang)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate thoughts: %w", err)
	}
	return out, total, nil
}

func (r *ThoughtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_thoughts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete thought: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
