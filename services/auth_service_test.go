package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-eats/canteen-app/models"
	"github.com/campus-eats/canteen-app/utils"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(setupTestDB(t), utils.NewTokenIssuer("test-secret", time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	as := newAuthService(t)

	res, err := as.Register(ctxBG, RegisterInput{
		Email:     " Priya@Campus.edu ",
		Password:  "secret1",
		FirstName: "Priya",
	})
	require.NoError(t, err)
	assert.Equal(t, "priya@campus.edu", res.User.Email)
	assert.Equal(t, models.RoleStudent, res.User.Role)
	assert.NotEqual(t, "secret1", res.User.Password)

	claims, err := as.Tokens.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)

	_, err = as.Register(ctxBG, RegisterInput{Email: "priya@campus.edu", Password: "another", FirstName: "P"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := as.Login(ctxBG, "PRIYA@campus.edu", "secret1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	profile, err := as.Profile(ctxBG, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Priya", profile.FirstName)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	as := newAuthService(t)
	_, err := as.Register(ctxBG, RegisterInput{Email: "a@b.co", Password: "secret1", FirstName: "A"})
	require.NoError(t, err)

	_, err = as.Login(ctxBG, "a@b.co", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = as.Login(ctxBG, "nobody@b.co", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, KindAuthorization, KindOf(err))
}

func TestRegisterValidation(t *testing.T) {
	as := newAuthService(t)

	_, err := as.Register(ctxBG, RegisterInput{Email: "not-an-email", Password: "secret1", FirstName: "A"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = as.Register(ctxBG, RegisterInput{Email: "a@b.co", Password: "123", FirstName: "A"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = as.Profile(ctxBG, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
