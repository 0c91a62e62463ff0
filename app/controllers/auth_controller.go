package controllers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/services"
	"github.com/velora-shop/velora/pkg/bind"
	"github.com/velora-shop/velora/pkg/logger"
	"github.com/velora-shop/velora/pkg/response"
)

// AuthController handles registration and login.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{auth: services.NewAuthService(db)}
}

// Register creates an account and returns a token.
// POST /auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.auth.Register(in)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			response.Conflict(w, "Email already registered")
			return
		}
		logger.WithCtx(r.Context()).Error("register failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not register")
		return
	}

	response.Created(w, map[string]interface{}{
		"token": token,
		"name":  user.FullName(),
		"email": user.Email,
	})
}

// Login verifies credentials and returns a token.
// POST /auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.auth.Login(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not log in")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":   token,
		"name":    user.FullName(),
		"email":   user.Email,
		"isAdmin": user.IsAdmin,
	})
}

// ForgotPassword emails a reset link. Always answers 200 so the endpoint
// cannot be used to enumerate accounts.
// POST /auth/forgot-password
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.auth.ForgotPassword(in.Email); err != nil {
		logger.WithCtx(r.Context()).Error("forgot password failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not process request")
		return
	}

	response.Message(w, "If that email has an account, a reset link is on its way")
}

// ResetPassword sets a new password from a valid reset token.
// POST /auth/reset-password
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.auth.ResetPassword(in.Token, in.Password); err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			response.Error(w, http.StatusUnprocessableEntity, "Invalid or expired reset token")
			return
		}
		logger.WithCtx(r.Context()).Error("reset password failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not reset password")
		return
	}

	response.Message(w, "Password updated")
}
