package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"jvhelp-service/internal/domain/admin"
	"jvhelp-service/internal/pkg/credential"
	xerrors "jvhelp-service/internal/pkg/errors"
	"jvhelp-service/internal/pkg/metrics"
	"jvhelp-service/internal/pkg/session"
	"jvhelp-service/internal/repository/memory"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingNotifier struct {
	mu       sync.Mutex
	revoked  []string
	disabled []int64
}

func (n *recordingNotifier) SessionRevoked(tokenHash, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.revoked = append(n.revoked, tokenHash)
}

func (n *recordingNotifier) PrincipalDisabled(id int64, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.disabled = append(n.disabled, id)
}

type fixture struct {
	svc        *AuthService
	principals *memory.PrincipalStore
	sessions   *memory.SessionStore
	clock      *clock
	notifier   *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		principals: memory.NewPrincipalStore(),
		sessions:   memory.NewSessionStore(),
		clock:      &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		notifier:   &recordingNotifier{},
	}
	f.svc = NewAuthService(
		f.principals, f.sessions, credential.NewBcrypt(bcrypt.MinCost), zap.NewNop(),
		WithClock(f.clock.Now),
	)
	f.svc.SetNotifier(f.notifier)

	_, err := f.svc.CreatePrincipal(context.Background(), &admin.CreatePrincipalRequest{
		Username: "admin",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) login(t *testing.T) *admin.LoginResponse {
	t.Helper()
	resp, err := f.svc.Authenticate(context.Background(), &admin.LoginRequest{
		Username:  "admin",
		Password:  "s3cret-pass",
		IPAddress: "10.0.0.1",
		UserAgent: "test-agent",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a session", func(t *testing.T) {
		f := newFixture(t)
		resp := f.login(t)

		assert.True(t, session.WellFormed(resp.Token))
		assert.Equal(t, "admin", resp.Admin.Username)
		assert.Equal(t, admin.RoleAdmin, resp.Admin.Role)

		stored := f.sessions.Sessions()
		require.Len(t, stored, 1)
		assert.Equal(t, session.Hash(resp.Token), stored[0].TokenHash)
		assert.NotEqual(t, resp.Token, stored[0].TokenHash)
		assert.Equal(t, "10.0.0.1", stored[0].IPAddress)
		assert.Equal(t, "test-agent", stored[0].UserAgent)

		p, err := f.principals.FindByUsername(ctx, "admin")
		require.NoError(t, err)
		require.NotNil(t, p.LastLogin)
		assert.Equal(t, f.clock.Now(), *p.LastLogin)
	})

	t.Run("expiry is exactly the validity window", func(t *testing.T) {
		f := newFixture(t)
		for i := 0; i < 5; i++ {
			resp := f.login(t)
			assert.Equal(t, f.clock.Now().Add(24*time.Hour), resp.ExpiresAt)
			f.clock.Advance(time.Minute)
		}
		for _, s := range f.sessions.Sessions() {
			assert.True(t, s.ExpiresAt.After(s.CreatedAt))
			assert.Equal(t, DefaultSessionTTL, s.ExpiresAt.Sub(s.CreatedAt))
		}
	})

	t.Run("tokens are pairwise distinct", func(t *testing.T) {
		f := newFixture(t)
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			tok := f.login(t).Token
			require.False(t, seen[tok])
			seen[tok] = true
		}
		assert.Equal(t, 50, f.sessions.Len())
	})

	t.Run("missing fields are input errors and skip the store", func(t *testing.T) {
		f := newFixture(t)
		f.principals.Err = errors.New("store must not be called")

		_, err := f.svc.Authenticate(ctx, &admin.LoginRequest{Username: "admin"})
		assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
		_, err = f.svc.Authenticate(ctx, &admin.LoginRequest{Password: "x"})
		assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		f := newFixture(t)

		_, errUnknown := f.svc.Authenticate(ctx, &admin.LoginRequest{Username: "unknown_user", Password: "x"})
		_, errWrong := f.svc.Authenticate(ctx, &admin.LoginRequest{Username: "admin", Password: "wrong_password"})

		assert.Equal(t, xerrors.ErrInvalidCredentials, errUnknown)
		assert.Equal(t, xerrors.ErrInvalidCredentials, errWrong)
		assert.Equal(t, 0, f.sessions.Len())
	})

	t.Run("username match is case sensitive", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Authenticate(ctx, &admin.LoginRequest{Username: "Admin", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)
	})

	t.Run("store outage is not reported as bad credentials", func(t *testing.T) {
		f := newFixture(t)
		f.principals.Err = errors.New("connection refused")

		_, err := f.svc.Authenticate(ctx, &admin.LoginRequest{Username: "admin", Password: "s3cret-pass"})
		require.Error(t, err)
		assert.False(t, xerrors.IsAuthFailure(err))
		assert.False(t, xerrors.Is(err, xerrors.ErrInvalidInput))
	})
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token returns public attributes and bumps last access", func(t *testing.T) {
		f := newFixture(t)
		resp := f.login(t)
		f.clock.Advance(time.Hour)

		info, err := f.svc.Validate(ctx, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.Admin, *info)
		assert.Equal(t, f.clock.Now(), f.sessions.Sessions()[0].LastAccessedAt)
	})

	t.Run("unknown and malformed tokens", func(t *testing.T) {
		f := newFixture(t)
		tok, err := session.NewToken()
		require.NoError(t, err)

		for _, token := range []string{"", "not-a-token", tok} {
			_, err := f.svc.Validate(ctx, token)
			assert.ErrorIs(t, err, xerrors.ErrInvalidToken)
		}
	})

	t.Run("expired session is rejected and purged", func(t *testing.T) {
		f := newFixture(t)
		resp := f.login(t)

		f.clock.Advance(24 * time.Hour)
		_, err := f.svc.Validate(ctx, resp.Token)
		assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
		assert.Equal(t, 0, f.sessions.Len())

		// rewinding the clock does not resurrect it
		f.clock.Advance(-25 * time.Hour)
		_, err = f.svc.Validate(ctx, resp.Token)
		assert.ErrorIs(t, err, xerrors.ErrInvalidToken)
	})

	t.Run("expired row fails even if the purge fails", func(t *testing.T) {
		f := newFixture(t)
		resp := f.login(t)
		f.clock.Advance(48 * time.Hour)
		f.sessions.DeleteErr = errors.New("delete failed")

		for i := 0; i < 2; i++ {
			_, err := f.svc.Validate(ctx, resp.Token)
			assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
		}
		assert.Equal(t, 1, f.sessions.Len())
	})

	t.Run("last access failure does not fail the request", func(t *testing.T) {
		f := newFixture(t)
		resp := f.login(t)
		f.sessions.TouchErr = errors.New("write timeout")

		_, err := f.svc.Validate(ctx, resp.Token)
		assert.NoError(t, err)
	})

	t.Run("store outage surfaces as a dependency error", func(t *testing.T) {
		f := newFixture(t)
		resp := f.login(t)
		f.sessions.Err = errors.New("connection reset")

		_, err := f.svc.Validate(ctx, resp.Token)
		require.Error(t, err)
		assert.False(t, xerrors.IsAuthFailure(err))
	})
}

func TestInactivePrincipal(t *testing.T) {
	ctx := context.Background()

	t.Run("flag flipped in the store locks out existing sessions", func(t *testing.T) {
		f := newFixture(t)
		resp := f.login(t)

		require.NoError(t, f.principals.SetActive(ctx, resp.Admin.ID, false))

		_, err := f.svc.Validate(ctx, resp.Token)
		assert.ErrorIs(t, err, xerrors.ErrInvalidToken)

		_, err = f.svc.Authenticate(ctx, &admin.LoginRequest{Username: "admin", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)
	})

	t.Run("deactivation through the service ends sessions", func(t *testing.T) {
		f := newFixture(t)
		f.login(t)
		f.login(t)

		require.NoError(t, f.svc.SetActive(ctx, "admin", false))
		assert.Equal(t, 0, f.sessions.Len())
		assert.Len(t, f.notifier.disabled, 1)

		require.NoError(t, f.svc.SetActive(ctx, "admin", true))
		f.login(t)
	})
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	resp := f.login(t)

	require.NoError(t, f.svc.Revoke(ctx, resp.Token))
	require.NoError(t, f.svc.Revoke(ctx, resp.Token))
	require.NoError(t, f.svc.Revoke(ctx, "never-issued"))

	_, err := f.svc.Validate(ctx, resp.Token)
	assert.ErrorIs(t, err, xerrors.ErrInvalidToken)
	require.Len(t, f.notifier.revoked, 1)
	assert.Equal(t, session.Hash(resp.Token), f.notifier.revoked[0])
}

func TestRevokeCountsOnlyDeletedSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	m := metrics.New()
	WithMetrics(m)(f.svc)

	resp := f.login(t)
	require.NoError(t, f.svc.Revoke(ctx, resp.Token))
	require.NoError(t, f.svc.Revoke(ctx, resp.Token))
	require.NoError(t, f.svc.Revoke(ctx, strings.Repeat("ab", session.TokenBytes)))

	expected := `
# HELP admin_sessions_revoked_total Sessions removed by reason.
# TYPE admin_sessions_revoked_total counter
admin_sessions_revoked_total{reason="logout"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "admin_sessions_revoked_total"))
}

func TestSetPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	old := f.login(t)

	require.NoError(t, f.svc.SetPassword(ctx, "admin", "brand-new-pass"))

	_, err := f.svc.Validate(ctx, old.Token)
	assert.ErrorIs(t, err, xerrors.ErrInvalidToken)

	_, err = f.svc.Authenticate(ctx, &admin.LoginRequest{Username: "admin", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)

	_, err = f.svc.Authenticate(ctx, &admin.LoginRequest{Username: "admin", Password: "brand-new-pass"})
	assert.NoError(t, err)

	assert.ErrorIs(t, f.svc.SetPassword(ctx, "admin", "short"), xerrors.ErrInvalidInput)
	assert.ErrorIs(t, f.svc.SetPassword(ctx, "ghost", "long-enough-pass"), xerrors.ErrNotFound)
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.svc.EnsureBootstrapAdmin(ctx, "", ""))
	require.NoError(t, f.svc.EnsureBootstrapAdmin(ctx, "admin", "ignored-because-exists"))
	require.NoError(t, f.svc.EnsureBootstrapAdmin(ctx, "operator", "operator-pass"))

	list, err := f.svc.ListPrincipals(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "operator", list[1].Username)
}

func TestCreatePrincipalValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CreatePrincipal(ctx, &admin.CreatePrincipalRequest{Username: " padded", Password: "long-enough"})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = f.svc.CreatePrincipal(ctx, &admin.CreatePrincipalRequest{Username: "admin", Password: "long-enough"})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestPurgeExpired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t)
	f.clock.Advance(12 * time.Hour)
	f.login(t)
	f.clock.Advance(13 * time.Hour)

	n, err := f.svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, f.sessions.Len())
}
