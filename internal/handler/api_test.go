package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/handler"
	"blogapi/internal/model"
	"blogapi/internal/rate"
	"blogapi/internal/repository"
	"blogapi/internal/router"
	"blogapi/internal/service"
	"blogapi/internal/upload"
	"blogapi/internal/view"
)

type silentMailer struct{}

func (silentMailer) Send(to, subject, html string) bool { return false }

func newTestApp(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()

	gormDB, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.Author{}, &model.Post{}, &model.User{}))

	uploads, err := upload.NewStore(t.TempDir())
	require.NoError(t, err)

	e := echo.New()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	e.Renderer = renderer

	authorRepo := repository.NewAuthorRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	authService := service.NewAuthService(userRepo, jwtService, silentMailer{})
	authorService := service.NewAuthorService(authorRepo)
	postService := service.NewPostService(postRepo, authorRepo, uploads, nil)

	router.Register(
		e,
		cfg,
		rate.NewMemory(),
		userRepo,
		handler.NewBlogHandler(postService, uploads),
		handler.NewAuthorHandler(authorService),
		handler.NewAuthHandler(authService),
		handler.NewViewHandler(postService, authorService, uploads),
		uploads.Dir(),
	)
	return e
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		RateWindow:     time.Minute,
		RateGeneralMax: 1000,
		RateAuthMax:    1000,
	}
}

func doJSON(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestBlogLifecycle(t *testing.T) {
	e := newTestApp(t, testConfig())

	// Create the author.
	rec := doJSON(e, http.MethodPost, "/api/authors", map[string]string{
		"name": "A", "email": "a@x.com", "number": "123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var authorResp struct {
		CreatedAuthor model.Author `json:"createdAuthor"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &authorResp))
	require.NotZero(t, authorResp.CreatedAuthor.ID)

	// Create a post referencing it.
	rec = doJSON(e, http.MethodPost, "/api/blog", map[string]interface{}{
		"title": "Hello", "content": "World", "authorId": authorResp.CreatedAuthor.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var blogResp struct {
		CreatedBlog model.Post `json:"createdBlog"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blogResp))
	require.NotNil(t, blogResp.CreatedBlog.Author)
	assert.Equal(t, "A", blogResp.CreatedBlog.Author.Name)

	// Listing includes the post with its author nested.
	rec = doJSON(e, http.MethodGet, "/api/blog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []model.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)
	require.NotNil(t, posts[0].Author)
	assert.Equal(t, "a@x.com", posts[0].Author.Email)

	// Delete and confirm the listing is empty again.
	rec = doJSON(e, http.MethodDelete, "/api/blog/1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/api/blog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	posts = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	assert.Empty(t, posts)
}

func TestCreateBlogAuthorMissing(t *testing.T) {
	e := newTestApp(t, testConfig())

	rec := doJSON(e, http.MethodPost, "/api/blog", map[string]interface{}{
		"title": "Hello", "content": "World", "authorId": 999,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/api/blog", nil)
	var posts []model.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	assert.Empty(t, posts, "no row may be inserted for a missing author")
}

func TestCreateAuthorDuplicate(t *testing.T) {
	e := newTestApp(t, testConfig())

	rec := doJSON(e, http.MethodPost, "/api/authors", map[string]string{
		"name": "A", "email": "a@x.com", "number": "123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/authors", map[string]string{
		"name": "B", "email": "a@x.com", "number": "456",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestAuthFlow(t *testing.T) {
	e := newTestApp(t, testConfig())

	rec := doJSON(e, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "u@x.com", "password": "secret123", "name": "U",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var reg struct {
		Status string `json:"status"`
		Data   struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.Equal(t, "success", reg.Status)
	require.NotEmpty(t, reg.Data.Token)

	// Duplicate registration is rejected.
	rec = doJSON(e, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "u@x.com", "password": "secret123", "name": "U",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Login with the right and wrong password.
	rec = doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "u@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.Token)

	rec = doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "u@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Profile requires a valid bearer token.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+login.Data.Token)
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code, out.Body.String())
	assert.Contains(t, out.Body.String(), "u@x.com")

	req = httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	out = httptest.NewRecorder()
	e.ServeHTTP(out, req)
	assert.Equal(t, http.StatusUnauthorized, out.Code)

	// Logout is a token-guarded no-op.
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+login.Data.Token)
	out = httptest.NewRecorder()
	e.ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)
}

func TestAuthRouteRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateAuthMax = 2
	e := newTestApp(t, cfg)

	body := map[string]string{"email": "u@x.com", "password": "wrong"}
	for i := 0; i < 2; i++ {
		rec := doJSON(e, http.MethodPost, "/api/auth/login", body)
		assert.NotEqual(t, http.StatusTooManyRequests, rec.Code, "request %d within quota", i+1)
	}

	rec := doJSON(e, http.MethodPost, "/api/auth/login", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// The general API quota is unaffected by the auth window.
	rec = doJSON(e, http.MethodGet, "/api/blog", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestViewListRenders(t *testing.T) {
	e := newTestApp(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/blog-view", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No posts yet")
}
