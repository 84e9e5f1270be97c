// internal/repository/postgres/session_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"jvhelp-service/internal/domain/admin"
	xerrors "jvhelp-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository stores admin sessions keyed by the unique token_hash.
type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *admin.Session) error {
	query := `
		INSERT INTO admin_sessions (admin_id, token_hash, created_at, expires_at, last_accessed_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		s.PrincipalID, s.TokenHash, s.CreatedAt, s.ExpiresAt, s.LastAccessedAt, s.IPAddress, s.UserAgent,
	).Scan(&s.ID)
	if isUniqueViolation(err) {
		return xerrors.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*admin.Session, error) {
	query := `
		SELECT id, admin_id, token_hash, created_at, expires_at, last_accessed_at,
		       COALESCE(ip_address, ''), COALESCE(user_agent, '')
		FROM admin_sessions
		WHERE token_hash = $1
	`

	var s admin.Session
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&s.ID, &s.PrincipalID, &s.TokenHash, &s.CreatedAt, &s.ExpiresAt, &s.LastAccessedAt,
		&s.IPAddress, &s.UserAgent,
	)
	if isNoRows(err) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepository) Touch(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE admin_sessions SET last_accessed_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM admin_sessions WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return 0, fmt.Errorf("failed to delete session: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SessionRepository) DeleteByPrincipal(ctx context.Context, principalID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM admin_sessions WHERE admin_id = $1`, principalID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete principal sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM admin_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
