package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hostel-backend/models"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[uint]*models.User

func (f fakeUsers) GetByID(id uint) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

const testSecret = "test-secret"

func newTestRouter(users UserLoader, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(testSecret, users))
	handlers := append(extra, func(c *gin.Context) {
		name := "anonymous"
		if u := CurrentUser(c); u != nil {
			name = u.Username
		}
		c.String(http.StatusOK, name)
	})
	r.GET("/bookings/", handlers...)
	return r
}

func token(t *testing.T, id uint) string {
	t.Helper()
	tok, _, err := utils.NewSessionToken(testSecret, id, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestSessionResolvesCookieAndBearer(t *testing.T) {
	users := fakeUsers{1: {ID: 1, Username: "asha", IsActive: true}}
	r := newTestRouter(users)

	req := httptest.NewRequest(http.MethodGet, "/bookings/", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token(t, 1)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "asha", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/bookings/", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, 1))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "asha", w.Body.String())

	for _, cookie := range []string{"garbage", token(t, 2)} {
		req = httptest.NewRequest(http.MethodGet, "/bookings/", nil)
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: cookie})
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "anonymous", w.Body.String())
	}
}

func TestRequireLoginRedirects(t *testing.T) {
	users := fakeUsers{1: {ID: 1, Username: "asha", IsActive: true}}
	r := newTestRouter(users, RequireLogin())

	req := httptest.NewRequest(http.MethodGet, "/bookings/?page=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/accounts/login/?next=%2Fbookings%2F%3Fpage%3D2", w.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/bookings/", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token(t, 1)})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireStaff(t *testing.T) {
	users := fakeUsers{
		1: {ID: 1, Username: "asha", IsActive: true},
		2: {ID: 2, Username: "admin", IsActive: true, IsStaff: true},
	}
	r := newTestRouter(users, RequireLogin(), RequireStaff())

	req := httptest.NewRequest(http.MethodGet, "/bookings/", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token(t, 1)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/bookings/", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token(t, 2)})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

func TestAllowedHosts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AllowedHosts([]string{"localhost", ".onrender.com"}))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	cases := map[string]int{
		"localhost:5000":      http.StatusNoContent,
		"hostel.onrender.com": http.StatusNoContent,
		"onrender.com":        http.StatusNoContent,
		"evil.example.com":    http.StatusBadRequest,
		"notonrender.com":     http.StatusBadRequest,
		"LOCALHOST":           http.StatusNoContent,
	}
	for host, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Host = host
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, host)
	}

	open := gin.New()
	open.Use(AllowedHosts(nil))
	open.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Host = "anything.test"
	w := httptest.NewRecorder()
	open.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
