package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jon4hz/wishwell/internal/database"
	"github.com/jon4hz/wishwell/internal/database/mock"
	"github.com/jon4hz/wishwell/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestUser(t *testing.T, db *mock.MockDB, username, password string, admin bool) *database.User {
	t.Helper()
	user := &database.User{
		Username:     username,
		PasswordHash: hashPassword(t, password),
		IsAdmin:      admin,
	}
	require.NoError(t, db.CreateUser(context.Background(), user))
	return user
}

func newTestRouter(t *testing.T, provider *Provider) *gin.Engine {
	t.Helper()
	router := gin.New()
	tmpl, err := web.Templates()
	require.NoError(t, err)
	router.SetHTMLTemplate(tmpl)
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("wishwell_session", store))
	router.GET("/login", provider.LoginForm)
	router.POST("/login", provider.Login)
	router.GET("/logout", provider.Logout)
	return router
}

// login performs a form login and returns the session cookies.
func login(t *testing.T, router *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	return w.Result().Cookies()
}

func TestAuthenticate(t *testing.T) {
	db := mock.NewMockDB()
	newTestUser(t, db, "alice", "secret", false)
	provider := NewProvider(db)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := provider.Authenticate(context.Background(), "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := provider.Authenticate(context.Background(), "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := provider.Authenticate(context.Background(), "mallory", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginEstablishesSession(t *testing.T) {
	db := mock.NewMockDB()
	newTestUser(t, db, "alice", "secret", false)
	provider := NewProvider(db)
	router := newTestRouter(t, provider)
	router.GET("/protected", provider.RequireAuth(), func(c *gin.Context) {
		user := c.MustGet("user").(*database.User)
		c.String(http.StatusOK, user.Username)
	})

	cookies := login(t, router, "alice", "secret")
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := mock.NewMockDB()
	newTestUser(t, db, "alice", "secret", false)
	provider := NewProvider(db)
	router := newTestRouter(t, provider)

	form := url.Values{"username": {"alice"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestRequireAuthRedirectsWithoutSession(t *testing.T) {
	db := mock.NewMockDB()
	provider := NewProvider(db)
	router := newTestRouter(t, provider)
	router.GET("/protected", provider.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireRole(t *testing.T) {
	db := mock.NewMockDB()
	newTestUser(t, db, "alice", "secret", false)
	newTestUser(t, db, "bob", "secret", true)
	provider := NewProvider(db)
	router := newTestRouter(t, provider)
	router.GET("/admin", provider.RequireAuth(), provider.RequireRole(RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	get := func(cookies []*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("admin allowed", func(t *testing.T) {
		w := get(login(t, router, "bob", "secret"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("regular user denied", func(t *testing.T) {
		w := get(login(t, router, "alice", "secret"))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Access denied")
	})
}

// Role changes must be effective on the next request without re-login.
func TestRoleRevocationTakesEffectImmediately(t *testing.T) {
	db := mock.NewMockDB()
	bob := newTestUser(t, db, "bob", "secret", true)
	provider := NewProvider(db)
	router := newTestRouter(t, provider)
	router.GET("/admin", provider.RequireAuth(), provider.RequireRole(RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	cookies := login(t, router, "bob", "secret")

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	bob.IsAdmin = false

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSuperUserRole(t *testing.T) {
	db := mock.NewMockDB()
	sue := &database.User{
		Username:     "sue",
		PasswordHash: hashPassword(t, "secret"),
		IsSuperUser:  true,
	}
	require.NoError(t, db.CreateUser(context.Background(), sue))
	provider := NewProvider(db)
	router := newTestRouter(t, provider)
	router.GET("/super", provider.RequireAuth(), provider.RequireRole(RoleSuperUser), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/admin", provider.RequireAuth(), provider.RequireRole(RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	cookies := login(t, router, "sue", "secret")

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, get("/super").Code)
	assert.Equal(t, http.StatusForbidden, get("/admin").Code, "superuser status must not imply admin")
}

func TestLogoutClearsSession(t *testing.T) {
	db := mock.NewMockDB()
	newTestUser(t, db, "alice", "secret", false)
	provider := NewProvider(db)
	router := newTestRouter(t, provider)
	router.GET("/protected", provider.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	cookies := login(t, router, "alice", "secret")

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)

	// the cleared cookie replaces the old one
	cleared := w.Result().Cookies()

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, cookie := range cleared {
		req.AddCookie(cookie)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
