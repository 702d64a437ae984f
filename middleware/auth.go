package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"hostel-backend/models"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	userKey  = "user"
	LoginURL = "/accounts/login/"
)

// UserLoader resolves the user a session token was issued for.
type UserLoader interface {
	GetByID(id uint) (*models.User, error)
}

// Session attaches the logged-in user, if any, to the request. Invalid or
// stale tokens are ignored and the request continues anonymously.
func Session(secret string, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := sessionToken(c)
		if raw == "" {
			c.Next()
			return
		}
		id, err := utils.ParseSessionToken(secret, raw)
		if err == nil {
			if user, err := users.GetByID(id); err == nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(utils.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// CurrentUser returns the session user or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginURL+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff must run after RequireLogin.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.CanUseAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "staff access required"})
			return
		}
		c.Next()
	}
}
