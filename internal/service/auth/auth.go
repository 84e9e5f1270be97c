// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jvhelp-service/internal/domain/admin"
	"jvhelp-service/internal/pkg/credential"
	xerrors "jvhelp-service/internal/pkg/errors"
	"jvhelp-service/internal/pkg/metrics"
	"jvhelp-service/internal/pkg/session"

	"go.uber.org/zap"
)

// DefaultSessionTTL is the absolute lifetime of a session.
const DefaultSessionTTL = 24 * time.Hour

// SessionNotifier is told when sessions end so live sockets can be closed.
type SessionNotifier interface {
	SessionRevoked(tokenHash, reason string)
	PrincipalDisabled(principalID int64, reason string)
}

// AuthService issues, validates and revokes admin sessions.
type AuthService struct {
	principals admin.PrincipalRepository
	sessions   admin.SessionRepository
	hasher     credential.Hasher
	ttl        time.Duration
	notifier   SessionNotifier
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

type Option func(*AuthService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) { s.now = now }
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *AuthService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *AuthService) { s.metrics = m }
}

func NewAuthService(
	principals admin.PrincipalRepository,
	sessions admin.SessionRepository,
	hasher credential.Hasher,
	logger *zap.Logger,
	opts ...Option,
) *AuthService {
	s := &AuthService{
		principals: principals,
		sessions:   sessions,
		hasher:     hasher,
		ttl:        DefaultSessionTTL,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetNotifier attaches the websocket hub once it exists.
func (s *AuthService) SetNotifier(n SessionNotifier) {
	s.notifier = n
}

// SessionTTL is the configured validity window.
func (s *AuthService) SessionTTL() time.Duration {
	return s.ttl
}

// ========== Login ==========

// Authenticate checks credentials and issues a session. Unknown usernames,
// wrong passwords and inactive principals all return ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, req *admin.LoginRequest) (*admin.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, xerrors.Invalid("username and password are required")
	}

	principal, err := s.principals.FindByUsername(ctx, req.Username)
	if err != nil {
		if !xerrors.Is(err, xerrors.ErrNotFound) {
			s.metrics.Login("error")
			return nil, fmt.Errorf("failed to find principal: %w", err)
		}
		// same bcrypt cost as a real comparison
		_ = s.hasher.Compare("", req.Password)
		return nil, s.loginRejected(req, "unknown_username")
	}

	if err := s.hasher.Compare(principal.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, credential.ErrMismatch) {
			s.metrics.Login("error")
			return nil, fmt.Errorf("failed to verify password: %w", err)
		}
		return nil, s.loginRejected(req, "password_mismatch")
	}

	if !principal.IsActive {
		return nil, s.loginRejected(req, "inactive_principal")
	}

	token, err := session.NewToken()
	if err != nil {
		s.metrics.Login("error")
		return nil, err
	}

	now := s.now()
	sess := &admin.Session{
		PrincipalID:    principal.ID,
		TokenHash:      session.Hash(token),
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.ttl),
		LastAccessedAt: now,
		IPAddress:      req.IPAddress,
		UserAgent:      req.UserAgent,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		s.metrics.Login("error")
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.principals.UpdateLastLogin(ctx, principal.ID, now); err != nil {
		s.logger.Warn("failed to update last login", zap.Int64("admin_id", principal.ID), zap.Error(err))
	}

	s.metrics.Login("success")
	s.logger.Info("admin logged in",
		zap.Int64("admin_id", principal.ID),
		zap.String("username", principal.Username),
		zap.String("ip", req.IPAddress),
		zap.Time("expires_at", sess.ExpiresAt),
	)

	return &admin.LoginResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		Admin:     principal.Info(),
	}, nil
}

func (s *AuthService) loginRejected(req *admin.LoginRequest, reason string) error {
	s.metrics.Login("invalid_credentials")
	s.logger.Info("admin login rejected",
		zap.String("username", req.Username),
		zap.String("reason", reason),
		zap.String("ip", req.IPAddress),
	)
	return xerrors.ErrInvalidCredentials
}

// ========== Validation ==========

// Validate resolves a bearer token to its principal. Expired sessions are
// deleted on sight.
func (s *AuthService) Validate(ctx context.Context, token string) (*admin.PrincipalInfo, error) {
	if !session.WellFormed(token) {
		s.metrics.Validation("invalid")
		return nil, xerrors.ErrInvalidToken
	}
	hash := session.Hash(token)

	sess, err := s.sessions.FindByTokenHash(ctx, hash)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			s.metrics.Validation("invalid")
			return nil, xerrors.ErrInvalidToken
		}
		s.metrics.Validation("error")
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	now := s.now()
	if sess.ExpiredAt(now) {
		if n, err := s.sessions.DeleteByTokenHash(ctx, hash); err != nil {
			s.logger.Warn("failed to purge expired session", zap.Int64("session_id", sess.ID), zap.Error(err))
		} else {
			s.metrics.SessionsRevoked("expired", int(n))
		}
		s.metrics.Validation("expired")
		s.logger.Debug("session expired", zap.Int64("session_id", sess.ID), zap.Int64("admin_id", sess.PrincipalID))
		return nil, xerrors.ErrSessionExpired
	}

	principal, err := s.principals.FindByID(ctx, sess.PrincipalID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			s.metrics.Validation("invalid")
			return nil, xerrors.ErrInvalidToken
		}
		s.metrics.Validation("error")
		return nil, fmt.Errorf("failed to find principal: %w", err)
	}
	if !principal.IsActive {
		s.metrics.Validation("inactive")
		return nil, xerrors.ErrInvalidToken
	}

	if err := s.sessions.Touch(ctx, sess.ID, now); err != nil {
		s.logger.Warn("failed to update session last access", zap.Int64("session_id", sess.ID), zap.Error(err))
	}

	s.metrics.Validation("ok")
	info := principal.Info()
	return &info, nil
}

// ========== Logout ==========

// Revoke deletes the session for token. Unknown or malformed tokens are a no-op.
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	if !session.WellFormed(token) {
		return nil
	}
	hash := session.Hash(token)

	n, err := s.sessions.DeleteByTokenHash(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	if n == 0 {
		return nil
	}

	s.metrics.SessionsRevoked("logout", int(n))
	if s.notifier != nil {
		s.notifier.SessionRevoked(hash, "logout")
	}
	return nil
}

// PurgeExpired removes every session whose expiry has passed.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	s.metrics.SessionsRevoked("expired", int(n))
	s.logger.Info("purged expired sessions", zap.Int64("count", n))
	return n, nil
}
