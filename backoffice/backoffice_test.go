package backoffice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardhub/cache"
	"cardhub/common"
	"cardhub/config"
	"cardhub/database"
	"cardhub/models"
	"cardhub/store"
)

type testEnv struct {
	router *gin.Engine
	store  *store.Store
	cache  *cache.Dir
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := common.ConnectDb(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	cfg := &config.Config{}
	cfg.Server.PublicURL = "https://cards.example"
	cfg.QR.CacheMaxAge = time.Hour
	cfg.Backoffice.Emails = []string{"ops@example.com"}

	env := &testEnv{store: store.New(db), cache: cache.New(t.TempDir())}

	router := gin.New()
	router.Use(sessions.Sessions("test-session", cookie.NewStore([]byte("secret"))))
	router.GET("/test/session/:id", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(sessionUserKey, c.Param("id"))
		require.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})
	NewBackofficeModule(env.store, env.cache, cfg).RegisterRoutes(router)
	env.router = router
	return env
}

func (e *testEnv) do(method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signIn creates an account with email and returns a session for it.
func (e *testEnv) signIn(t *testing.T, email string) []*http.Cookie {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, e.store.CreateUser(context.Background(), user))
	w := e.do(http.MethodGet, "/test/session/"+user.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func (e *testEnv) card(t *testing.T, slug string, active bool) *models.BusinessCard {
	t.Helper()
	card := &models.BusinessCard{UserID: "owner", Slug: slug, FullName: "Jane Doe", IsActive: active}
	require.NoError(t, e.store.CreateCard(context.Background(), card))
	return card
}

func TestRequireBackofficeAuth(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodGet, "/$/cards", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	owner := env.signIn(t, "jane@example.com")
	w = env.do(http.MethodGet, "/$/cards", owner)
	assert.Equal(t, http.StatusForbidden, w.Code)

	ops := env.signIn(t, "OPS@example.com")
	w = env.do(http.MethodGet, "/$/cards", ops)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListCards(t *testing.T) {
	env := setupTestRouter(t)
	ops := env.signIn(t, "ops@example.com")
	env.card(t, "jane", true)
	env.card(t, "old-jane", false)

	w := env.do(http.MethodGet, "/$/cards", ops)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []cardRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	urls := []string{rows[0].PublicURL, rows[1].PublicURL}
	assert.ElementsMatch(t, []string{"https://cards.example/c/jane", "https://cards.example/c/old-jane"}, urls)
}

func TestToggleActive(t *testing.T) {
	env := setupTestRouter(t)
	ops := env.signIn(t, "ops@example.com")
	card := env.card(t, "jane", true)

	w := env.do(http.MethodPost, "/$/cards/"+card.ID+"/toggle-active", ops)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"is_active":false}`, w.Body.String())

	stored, err := env.store.GetCard(context.Background(), card.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	// another active card took the slug meanwhile
	env.card(t, "jane", true)
	w = env.do(http.MethodPost, "/$/cards/"+card.ID+"/toggle-active", ops)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(http.MethodPost, "/$/cards/missing/toggle-active", ops)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCache(t *testing.T) {
	env := setupTestRouter(t)
	ops := env.signIn(t, "ops@example.com")

	require.NoError(t, env.cache.Write("images", "a", []byte("1")))
	require.NoError(t, env.cache.Write("images", "b", []byte("2")))

	w := env.do(http.MethodPost, "/$/cache/clear", ops)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"removed":2}`, w.Body.String())

	_, ok := env.cache.Read("images", "a", 0)
	assert.False(t, ok)
}

func TestClearOldCache(t *testing.T) {
	env := setupTestRouter(t)
	ops := env.signIn(t, "ops@example.com")

	require.NoError(t, env.cache.Write("images", "fresh", []byte("1")))
	require.NoError(t, env.cache.Write("images", "stale", []byte("2")))
	stale := env.cache.Path("images", "stale")
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	w := env.do(http.MethodPost, "/$/cache/clear-old", ops)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"removed":1}`, w.Body.String())

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	assert.FileExists(t, env.cache.Path("images", "fresh"))
	assert.DirExists(t, filepath.Dir(stale))

	w = env.do(http.MethodPost, "/$/cache/clear-old?older_than=soon", ops)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
