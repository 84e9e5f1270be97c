package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"jvhelp-service/internal/config"
	"jvhelp-service/internal/domain/admin"
	"jvhelp-service/internal/pkg/cache"
	"jvhelp-service/internal/pkg/credential"
	"jvhelp-service/internal/pkg/metrics"
	"jvhelp-service/internal/repository/memory"
	contentUsecase "jvhelp-service/internal/service/content"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	testUser     = "admin"
	testPassword = "s3cret-pass"
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

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type testApp struct {
	t          *testing.T
	container  *Container
	clock      *clock
	principals *memory.PrincipalStore
	sessions   *memory.SessionStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a := &testApp{
		t:          t,
		clock:      &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		principals: memory.NewPrincipalStore(),
		sessions:   memory.NewSessionStore(),
	}
	activities := memory.NewActivityStore()

	cfg := config.AppConfig{
		SessionTTL:     24 * time.Hour,
		RequestTimeout: 5 * time.Second,
		BcryptCost:     bcrypt.MinCost,
	}
	a.container = Build(cfg, Dependencies{
		Principals: a.principals,
		Sessions:   a.sessions,
		Content: contentUsecase.Repositories{
			Hero:       memory.NewHeroStore(),
			Products:   memory.NewProductStore(),
			Activities: activities,
			Gallery:    activities.Gallery(),
			Thoughts:   memory.NewThoughtStore(),
		},
		Cache:   cache.NewMemory(),
		Hasher:  credential.NewBcrypt(bcrypt.MinCost),
		Metrics: metrics.New(),
		Clock:   a.clock.Now,
	}, zap.NewNop())

	_, err := a.container.Auth.CreatePrincipal(context.Background(), &admin.CreatePrincipalRequest{
		Username: testUser,
		Password: testPassword,
	})
	require.NoError(t, err)
	return a
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.container.Engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *testApp) login() (string, time.Time) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/admin/login", "", gin.H{"username": testUser, "password": testPassword})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success   bool                `json:"success"`
		Token     string              `json:"token"`
		ExpiresAt time.Time           `json:"expires_at"`
		Admin     admin.PrincipalInfo `json:"admin"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(a.t, resp.Success)
	require.Equal(a.t, testUser, resp.Admin.Username)
	require.Equal(a.t, admin.RoleAdmin, resp.Admin.Role)
	return resp.Token, resp.ExpiresAt
}

func TestLoginDashboardLogout(t *testing.T) {
	a := newTestApp(t)
	token, expiresAt := a.login()
	assert.Len(t, token, 64)
	assert.True(t, a.clock.Now().Add(24*time.Hour).Equal(expiresAt), expiresAt)

	w := a.do(http.MethodGet, "/api/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["modules"], len(admin.DashboardModules))

	w = a.do(http.MethodPost, "/api/admin/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = a.do(http.MethodGet, "/api/admin/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid or expired token"}`, w.Body.String())

	// revoke is idempotent
	w = a.do(http.MethodPost, "/api/admin/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, a.sessions.Len())
}

func TestExpiredSessionIsPurged(t *testing.T) {
	a := newTestApp(t)
	issuedAt := a.clock.Now()
	token, expiresAt := a.login()

	a.clock.Set(expiresAt.Add(time.Second))
	w := a.do(http.MethodGet, "/api/admin/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, a.sessions.Len())

	a.clock.Set(issuedAt)
	w = a.do(http.MethodGet, "/api/admin/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionExpiresExactlyAtDeadline(t *testing.T) {
	a := newTestApp(t)
	token, expiresAt := a.login()

	a.clock.Set(expiresAt.Add(-time.Second))
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/admin/me", token, nil).Code)

	a.clock.Set(expiresAt)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/admin/me", token, nil).Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	a := newTestApp(t)
	_, err := a.container.Auth.CreatePrincipal(context.Background(), &admin.CreatePrincipalRequest{
		Username: "retired", Password: testPassword,
	})
	require.NoError(t, err)
	require.NoError(t, a.container.Auth.SetActive(context.Background(), "retired", false))

	attempts := []gin.H{
		{"username": "nobody", "password": testPassword},
		{"username": testUser, "password": "wrong-password"},
		{"username": "retired", "password": testPassword},
	}
	var bodies []string
	for _, body := range attempts {
		w := a.do(http.MethodPost, "/api/admin/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		bodies = append(bodies, w.Body.String())
	}
	assert.JSONEq(t, `{"error":"invalid credentials"}`, bodies[0])
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[0], bodies[2])
	assert.Equal(t, 0, a.sessions.Len())
}

func TestLoginInputErrors(t *testing.T) {
	a := newTestApp(t)
	for _, body := range []any{
		gin.H{"username": testUser},
		gin.H{"password": testPassword},
		gin.H{"username": "", "password": ""},
		"not an object",
	} {
		w := a.do(http.MethodPost, "/api/admin/login", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"username and password are required"}`, w.Body.String())
	}
}

func TestLoginStoreOutageIsNotACredentialFailure(t *testing.T) {
	a := newTestApp(t)
	a.principals.Err = errors.New("connection refused")

	w := a.do(http.MethodPost, "/api/admin/login", "", gin.H{"username": testUser, "password": testPassword})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestAdminRoutesRequireBearer(t *testing.T) {
	a := newTestApp(t)
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/admin/dashboard"},
		{http.MethodGet, "/api/admin/me"},
		{http.MethodPut, "/api/admin/hero-content"},
		{http.MethodGet, "/api/admin/products"},
		{http.MethodGet, "/api/admin/thoughts"},
		{http.MethodGet, "/api/admin/ws/stats"},
		{http.MethodPost, "/api/admin/logout"},
		{http.MethodGet, "/api/admin/ws"},
	}
	for _, r := range routes {
		w := a.do(r.method, r.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, r.path)
		assert.JSONEq(t, `{"error":"invalid or expired token"}`, w.Body.String(), r.path)
	}
}

func TestDeactivationEndsSessions(t *testing.T) {
	a := newTestApp(t)
	token, _ := a.login()
	require.NoError(t, a.container.Auth.SetActive(context.Background(), testUser, false))

	w := a.do(http.MethodGet, "/api/admin/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHeroContent(t *testing.T) {
	a := newTestApp(t)

	w := a.do(http.MethodGet, "/api/hero-content?lang=gu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "JV HELP", decode(t, w)["title"])

	token, _ := a.login()
	w = a.do(http.MethodPut, "/api/admin/hero-content", token, gin.H{"title_en": "", "subtitle_en": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"English title and subtitle are required"}`, w.Body.String())

	w = a.do(http.MethodPut, "/api/admin/hero-content", token, gin.H{
		"title_en": "JV Help", "title_hi": "जेवी हेल्प", "subtitle_en": "Heal Help Protect",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/api/hero-content?lang=hi", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "जेवी हेल्प", body["title"])
	assert.Equal(t, "Heal Help Protect", body["subtitle"])

	w = a.do(http.MethodGet, "/api/hero-content?lang=xx", "", nil)
	assert.Equal(t, "JV Help", decode(t, w)["title"])
}

func TestProducts(t *testing.T) {
	a := newTestApp(t)
	token, _ := a.login()

	w := a.do(http.MethodPost, "/api/admin/products", token, gin.H{"name_en": "Diya", "price": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"English name and description are required"}`, w.Body.String())

	w = a.do(http.MethodPost, "/api/admin/products", token, gin.H{
		"name_en": "Diya", "description_en": "Clay lamp", "category_en": "Decor", "price": 10, "is_featured": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["data"].(map[string]any)["id"].(string)

	w = a.do(http.MethodGet, "/api/products?lang=hi&featured=true&category=dec", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	assert.Equal(t, float64(1), list["total"])
	assert.Equal(t, "hi", list["language"])

	w = a.do(http.MethodPut, "/api/admin/products/not-a-uuid", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodDelete, "/api/admin/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodDelete, "/api/admin/products/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"product not found"}`, w.Body.String())

	w = a.do(http.MethodGet, "/api/products", "", nil)
	assert.JSONEq(t, `{"data":[],"language":"en","total":0}`, w.Body.String())
}

func TestThoughts(t *testing.T) {
	a := newTestApp(t)

	w := a.do(http.MethodPost, "/api/user-thoughts", "", gin.H{"thought": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Thought content is required"}`, w.Body.String())

	w = a.do(http.MethodPost, "/api/user-thoughts", "", gin.H{
		"name": "Asha", "contact_no": "98765", "thought": "Thank you", "language": "gu",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/api/user-thoughts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "98765")

	token, _ := a.login()
	w = a.do(http.MethodGet, "/api/admin/thoughts?page=1&limit=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "98765")

	var page struct {
		Thoughts []struct {
			ID string `json:"id"`
		} `json:"thoughts"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Thoughts, 1)
	assert.Equal(t, 1, page.Pagination.Total)

	w = a.do(http.MethodGet, "/api/admin/thoughts?page=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, path := range []string{
		"/api/user-thoughts?page=4611686018427387904&limit=100",
		"/api/admin/thoughts?page=9223372036854775807&limit=1",
	} {
		w = a.do(http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.JSONEq(t, `{"error":"page is out of range"}`, w.Body.String())
	}

	w = a.do(http.MethodGet, "/api/user-thoughts?page=500&limit=100", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"thoughts":[]`)

	w = a.do(http.MethodDelete, "/api/admin/thoughts/"+page.Thoughts[0].ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodDelete, "/api/admin/thoughts/"+page.Thoughts[0].ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	a := newTestApp(t)
	w := a.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
