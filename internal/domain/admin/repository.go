// internal/domain/admin/repository.go
package admin

import (
	"context"
	"time"
)

// PrincipalRepository persists admin principals. Lookups return
// xerrors.ErrNotFound on a miss.
type PrincipalRepository interface {
	Create(ctx context.Context, p *Principal) error
	FindByUsername(ctx context.Context, username string) (*Principal, error)
	FindByID(ctx context.Context, id int64) (*Principal, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context) ([]Principal, error)
}

// SessionRepository persists sessions keyed by token hash.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	Touch(ctx context.Context, id int64, at time.Time) error
	// DeleteByTokenHash reports how many rows were removed (0 or 1).
	DeleteByTokenHash(ctx context.Context, tokenHash string) (int64, error)
	DeleteByPrincipal(ctx context.Context, principalID int64) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
