// internal/repository/postgres/principal_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"jvhelp-service/internal/domain/admin"
	xerrors "jvhelp-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PrincipalRepository struct {
	db *pgxpool.Pool
}

func NewPrincipalRepository(db *pgxpool.Pool) *PrincipalRepository {
	return &PrincipalRepository{db: db}
}

const principalColumns = `id, username, password_hash, role, is_active, last_login, created_at, updated_at`

func (r *PrincipalRepository) Create(ctx context.Context, p *admin.Principal) error {
	query := `
		INSERT INTO admin_users (username, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, p.Username, p.PasswordHash, p.Role, p.IsActive).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if isUniqueViolation(err) {
		return xerrors.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create principal: %w", err)
	}
	return nil
}

// FindByUsername matches the username exactly (case-sensitive).
func (r *PrincipalRepository) FindByUsername(ctx context.Context, username string) (*admin.Principal, error) {
	query := `SELECT ` + principalColumns + ` FROM admin_users WHERE username = $1`
	return r.findOne(ctx, query, username)
}

func (r *PrincipalRepository) FindByID(ctx context.Context, id int64) (*admin.Principal, error) {
	query := `SELECT ` + principalColumns + ` FROM admin_users WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *PrincipalRepository) findOne(ctx context.Context, query string, arg any) (*admin.Principal, error) {
	var p admin.Principal
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Username, &p.PasswordHash, &p.Role, &p.IsActive, &p.LastLogin, &p.CreatedAt, &p.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find principal: %w", err)
	}
	return &p, nil
}

func (r *PrincipalRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE admin_users SET last_login = $1 WHERE id = $2`
	return r.execOne(ctx, "update last login", query, at, id)
}

func (r *PrincipalRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE admin_users SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	return r.execOne(ctx, "update password", query, passwordHash, id)
}

func (r *PrincipalRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE admin_users SET is_active = $1, updated_at = NOW() WHERE id = $2`
	return r.execOne(ctx, "update active flag", query, active, id)
}

func (r *PrincipalRepository) List(ctx context.Context) ([]admin.Principal, error) {
	rows, err := r.db.Query(ctx, `SELECT `+principalColumns+` FROM admin_users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list principals: %w", err)
	}
	defer rows.Close()

	var out []admin.Principal
	for rows.Next() {
		var p admin.Principal
		if err := rows.Scan(
			&p.ID, &p.Username, &p.PasswordHash, &p.Role, &p.IsActive, &p.LastLogin, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan principal: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate principals: %w", err)
	}
	return out, nil
}

func (r *PrincipalRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
