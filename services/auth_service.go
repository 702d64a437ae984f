package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"hostel-backend/models"
	"hostel-backend/utils"

	"gorm.io/gorm"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type SignupInput struct {
	Username  string `form:"username" json:"username" validate:"required,max=150"`
	Email     string `form:"email" json:"email" validate:"required,email,max=254"`
	Password1 string `form:"password1" json:"password1" validate:"required"`
	Password2 string `form:"password2" json:"password2" validate:"required"`
}

// LoginInput.Username accepts either the username or the account email.
type LoginInput struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// PasswordChangeInput is the logged-in password change form.
type PasswordChangeInput struct {
	OldPassword  string `form:"old_password" json:"old_password" validate:"required"`
	NewPassword1 string `form:"new_password1" json:"new_password1" validate:"required"`
	NewPassword2 string `form:"new_password2" json:"new_password2" validate:"required"`
}

const msgBadLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Signup validates the registration form and creates a regular user.
func (s *AuthService) Signup(in SignupInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	errs := utils.ValidateForm(in)
	if in.Username != "" && !errs.Has("username") {
		if !usernamePattern.MatchString(in.Username) {
			errs.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
		} else {
			var count int64
			if err := s.DB.Model(&models.User{}).Where("LOWER(username) = LOWER(?)", in.Username).Count(&count).Error; err != nil {
				return nil, fmt.Errorf("check username: %w", err)
			}
			if count > 0 {
				errs.Add("username", "A user with that username already exists.")
			}
		}
	}
	if in.Password1 != "" && in.Password2 != "" {
		if in.Password1 != in.Password2 {
			errs.Add("password2", "The two password fields didn't match.")
		} else {
			for _, problem := range utils.PasswordProblems(in.Password2, in.Username, in.Email) {
				errs.Add("password2", problem)
			}
		}
	}
	if !errs.Empty() {
		return nil, errs
	}

	hash, err := utils.HashPassword(in.Password1)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		IsActive: true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			dup := utils.FormErrors{}
			dup.Add("username", "A user with that username already exists.")
			return nil, dup
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate checks credentials and records the login time. Form problems
// come back as utils.FormErrors, wrong credentials as ErrInvalidCredentials
// wrapped in FormErrors so the form can show them inline.
func (s *AuthService) Authenticate(in LoginInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if errs := utils.ValidateForm(in); !errs.Empty() {
		return nil, errs
	}

	var user models.User
	err := s.DB.Where("username = ?", in.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) && strings.Contains(in.Username, "@") {
		err = s.DB.Where("LOWER(email) = LOWER(?)", in.Username).Order("id").First(&user).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, badLogin()
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !utils.VerifyPassword(user.Password, in.Password) {
		return nil, badLogin()
	}
	if !user.IsActive {
		errs := utils.FormErrors{}
		errs.AddNonField("This account is inactive.")
		return nil, errs
	}

	now := time.Now().UTC()
	if err := s.DB.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now
	return &user, nil
}

// ChangePassword checks the current password and stores a new hash. Existing
// sessions stay valid.
func (s *AuthService) ChangePassword(user *models.User, in PasswordChangeInput) error {
	errs := utils.ValidateForm(in)
	if in.OldPassword != "" && !utils.VerifyPassword(user.Password, in.OldPassword) {
		errs.Add("old_password", "Your old password was entered incorrectly. Please enter it again.")
	}
	if in.NewPassword1 != "" && in.NewPassword2 != "" {
		if in.NewPassword1 != in.NewPassword2 {
			errs.Add("new_password2", "The two password fields didn't match.")
		} else {
			for _, problem := range utils.PasswordProblems(in.NewPassword2, user.Username, user.Email) {
				errs.Add("new_password2", problem)
			}
		}
	}
	if !errs.Empty() {
		return errs
	}

	hash, err := utils.HashPassword(in.NewPassword1)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.DB.Model(user).Update("password", hash).Error; err != nil {
		return fmt.Errorf("update password for user %d: %w", user.ID, err)
	}
	return nil
}

// GetByID loads an active user for the session middleware.
func (s *AuthService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("is_active = ?", true).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func badLogin() error {
	errs := utils.FormErrors{}
	errs.AddNonField(msgBadLogin)
	return fmt.Errorf("%w: %w", ErrInvalidCredentials, errs)
}
