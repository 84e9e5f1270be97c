// internal/domain/admin/entity.go
package admin

import "time"

const RoleAdmin = "admin"

// Principal is an administrative operator.
type Principal struct {
	ID           int64      `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLogin    *time.Time `json:"last_login" db:"last_login"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Info returns the public attributes of the principal.
func (p *Principal) Info() PrincipalInfo {
	return PrincipalInfo{ID: p.ID, Username: p.Username, Role: p.Role}
}

// Session is one authenticated admin client. Only the SHA-256 of the bearer
// token is persisted.
type Session struct {
	ID             int64     `db:"id"`
	PrincipalID    int64     `db:"admin_id"`
	TokenHash      string    `db:"token_hash"`
	CreatedAt      time.Time `db:"created_at"`
	ExpiresAt      time.Time `db:"expires_at"`
	LastAccessedAt time.Time `db:"last_accessed_at"`
	IPAddress      string    `db:"ip_address"`
	UserAgent      string    `db:"user_agent"`
}

// ExpiredAt reports whether the session is unusable at t.
func (s *Session) ExpiredAt(t time.Time) bool {
	return !s.ExpiresAt.After(t)
}
