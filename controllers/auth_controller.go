package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"hostel-backend/middleware"
	"hostel-backend/models"
	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	homeURL               = "/"
	adminURL              = "/admin/"
	passwordChangeDoneURL = "/accounts/password_change/done/"
)

type AuthController struct {
	AuthSvc *services.AuthService
	Secret  string
	TTL     time.Duration
	// Secure marks the session cookie HTTPS-only.
	Secure bool
}

func NewAuthController(svc *services.AuthService, secret string, ttl time.Duration, secure bool) *AuthController {
	return &AuthController{AuthSvc: svc, Secret: secret, TTL: ttl, Secure: secure}
}

// SignupPage (GET /accounts/signup/)
func (ctrl *AuthController) SignupPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form": gin.H{
			"fields": []gin.H{
				{"name": "username", "placeholder": "Username"},
				{"name": "email", "placeholder": "Email ID"},
				{"name": "password1", "placeholder": "Password"},
				{"name": "password2", "placeholder": "Confirm Password"},
			},
		},
	})
}

// Signup (POST /accounts/signup/) registers and logs the new user in.
func (ctrl *AuthController) Signup(c *gin.Context) {
	var in services.SignupInput
	if !bindForm(c, &in) {
		return
	}
	user, err := ctrl.AuthSvc.Signup(in)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctrl.startSession(c, user); err != nil {
		respondError(c, err)
		return
	}
	log.Printf("✅ Registration successful for %s", user.Username)
	c.Redirect(http.StatusFound, homeURL)
}

// LoginPage (GET /accounts/login/)
func (ctrl *AuthController) LoginPage(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		c.Redirect(http.StatusFound, landingFor(user))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"form": gin.H{
			"fields": []gin.H{
				{"name": "username", "placeholder": "Email ID or Username"},
				{"name": "password", "placeholder": "Password"},
			},
		},
		"next": c.Query("next"),
	})
}

// Login (POST /accounts/login/) accepts a username or an email.
func (ctrl *AuthController) Login(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		c.Redirect(http.StatusFound, landingFor(user))
		return
	}
	var in services.LoginInput
	if !bindForm(c, &in) {
		return
	}
	user, err := ctrl.AuthSvc.Authenticate(in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("⚠️ failed login for %q from %s", in.Username, c.ClientIP())
		}
		respondError(c, err)
		return
	}
	if err := ctrl.startSession(c, user); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, landingFor(user))
}

// Logout (POST /accounts/logout/)
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", ctrl.Secure, true)
	c.Redirect(http.StatusFound, homeURL)
}

// PasswordChangePage (GET /accounts/password_change/)
func (ctrl *AuthController) PasswordChangePage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form": gin.H{
			"fields": []string{"old_password", "new_password1", "new_password2"},
		},
	})
}

// ChangePassword (POST /accounts/password_change/)
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var in services.PasswordChangeInput
	if !bindForm(c, &in) {
		return
	}
	user := middleware.CurrentUser(c)
	if err := ctrl.AuthSvc.ChangePassword(user, in); err != nil {
		respondError(c, err)
		return
	}
	log.Printf("✅ Password changed for %s", user.Username)
	c.Redirect(http.StatusFound, passwordChangeDoneURL)
}

// PasswordChangeDone (GET /accounts/password_change/done/)
func (ctrl *AuthController) PasswordChangeDone(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Your password was changed."})
}

func (ctrl *AuthController) startSession(c *gin.Context, user *models.User) error {
	token, _, err := utils.NewSessionToken(ctrl.Secret, user.ID, ctrl.TTL)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, token, int(ctrl.TTL.Seconds()), "/", "", ctrl.Secure, true)
	return nil
}

// landingFor sends staff to the admin area and everyone else home.
func landingFor(user *models.User) string {
	if user.CanUseAdmin() {
		return adminURL
	}
	return homeURL
}
