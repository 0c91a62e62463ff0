package services

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/app/repositories"
	"github.com/velora-shop/velora/config"
	"github.com/velora-shop/velora/pkg/auth"
	"github.com/velora-shop/velora/pkg/crypt"
	"github.com/velora-shop/velora/pkg/event"
	"github.com/velora-shop/velora/pkg/logger"
)

// EventPasswordResetRequested fires after a reset token has been issued.
// The payload is a PasswordReset value.
const EventPasswordResetRequested = "auth.password_reset_requested"

// PasswordReset carries everything a mailer needs to deliver a reset link.
type PasswordReset struct {
	Name  string
	Email string
	Link  string
}

// resetTTL is how long a password reset link stays valid.
const resetTTL = time.Hour

type resetClaim struct {
	UserID uint  `json:"uid"`
	Exp    int64 `json:"exp"`
}

// RegisterInput carries the fields needed to open an account.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=255"`
	LastName  string `json:"lastName" validate:"required,min=1,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

// AuthService registers accounts and issues tokens.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{users: repositories.NewUserRepository(db)}
}

// Register creates a user with a bcrypt-hashed password and returns a
// signed token. A duplicate email yields ErrDuplicateEmail.
func (s *AuthService) Register(in RegisterInput) (string, models.User, error) {
	taken, err := s.users.ExistsByEmail(in.Email)
	if err != nil {
		return "", models.User{}, fmt.Errorf("auth: check email: %w", err)
	}
	if taken {
		return "", models.User{}, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", models.User{}, fmt.Errorf("auth: hash password: %w", err)
	}

	user := models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
	}
	if err := s.users.Create(&user); err != nil {
		return "", models.User{}, fmt.Errorf("auth: create user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.FullName(), user.IsAdmin)
	if err != nil {
		return "", models.User{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return token, user, nil
}

// ForgotPassword issues an encrypted, time-limited reset token and fires
// EventPasswordResetRequested so the link can be mailed out. An unknown
// email is treated as success so the endpoint cannot be used to probe
// which addresses have accounts.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug("auth: reset requested for unknown email", "email", email)
			return nil
		}
		return fmt.Errorf("auth: lookup user: %w", err)
	}

	token, err := crypt.EncryptJSON(resetClaim{
		UserID: user.ID,
		Exp:    time.Now().Add(resetTTL).Unix(),
	})
	if err != nil {
		return fmt.Errorf("auth: issue reset token: %w", err)
	}

	link := config.PublicURL() + "/reset-password?token=" + url.QueryEscape(token)
	event.Fire(EventPasswordResetRequested, PasswordReset{
		Name:  user.FullName(),
		Email: user.Email,
		Link:  link,
	})
	return nil
}

// ResetPassword verifies the token from ForgotPassword and stores a new
// bcrypt hash. Tampered or expired tokens yield ErrInvalidResetToken.
func (s *AuthService) ResetPassword(token, password string) error {
	var claim resetClaim
	if err := crypt.DecryptJSON(token, &claim); err != nil {
		return ErrInvalidResetToken
	}
	if time.Now().Unix() > claim.Exp {
		return ErrInvalidResetToken
	}

	user, err := s.users.FindByID(claim.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("auth: lookup user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	if err := s.users.UpdatePassword(user.ID, hash); err != nil {
		return fmt.Errorf("auth: update password: %w", err)
	}
	return nil
}

// Login verifies credentials and returns a signed token. A wrong email and
// a wrong password both yield ErrInvalidCredentials so responses don't leak
// which one failed.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, fmt.Errorf("auth: lookup user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.FullName(), user.IsAdmin)
	if err != nil {
		return "", models.User{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return token, user, nil
}
