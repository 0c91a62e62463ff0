package services_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-shop/velora/app/services"
	"github.com/velora-shop/velora/pkg/auth"
	"github.com/velora-shop/velora/pkg/event"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	token, user, err := svc.Register(services.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "analytical-engine",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "Ada Lovelace", user.FullName())

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.False(t, claims.Admin)

	_, logged, err := svc.Login("ada@example.com", "analytical-engine")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	in := services.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "analytical-engine",
	}
	_, _, err := svc.Register(in)
	require.NoError(t, err)

	_, _, err = svc.Register(in)
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "grace@example.com")
	svc := services.NewAuthService(db)

	_, _, err := svc.Login("grace@example.com", "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "grace@example.com")
	svc := services.NewAuthService(db)

	t.Cleanup(event.Flush)

	var captured services.PasswordReset
	event.Listen(services.EventPasswordResetRequested, func(payload interface{}) {
		captured, _ = payload.(services.PasswordReset)
	})

	require.NoError(t, svc.ForgotPassword(user.Email))
	require.NotEmpty(t, captured.Link)
	assert.Equal(t, user.Email, captured.Email)

	parsed, err := url.Parse(captured.Link)
	require.NoError(t, err)
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(token, "new-longer-password"))

	_, _, err = svc.Login(user.Email, "correct-horse")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login(user.Email, "new-longer-password")
	assert.NoError(t, err)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	assert.NoError(t, svc.ForgotPassword("ghost@example.com"))
}

func TestResetPasswordRejectsGarbageToken(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	err := svc.ResetPassword("definitely-not-a-token", "new-longer-password")
	assert.ErrorIs(t, err, services.ErrInvalidResetToken)
}
