package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-eats/canteen-app/models"
)

func TestRegisterLoginAndProfile(t *testing.T) {
	app := newTestApp(t)

	w, env := app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":      "new@campus.edu",
		"password":   "secret1",
		"first_name": "New",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":      "new@campus.edu",
		"password":   "secret1",
		"first_name": "New",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_taken", env.Code)

	w, env = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "new@campus.edu", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", env.Code)

	w, env = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "new@campus.edu", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, models.RoleStudent, res.User.Role)
	assert.NotContains(t, string(env.Data), "password")

	w, env = app.do(t, http.MethodGet, "/api/auth/me", res.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "new@campus.edu", me.Email)
}

func TestAuthRejectsBadTokens(t *testing.T) {
	app := newTestApp(t)

	w, env := app.do(t, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", env.Code)

	w, _ = app.do(t, http.MethodGet, "/api/admin/my-canteens", app.token(t, "student@test.com"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = app.do(t, http.MethodGet, "/api/admin/my-canteens", app.token(t, "north-admin@admin.com"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var canteens []models.Canteen
	require.NoError(t, json.Unmarshal(env.Data, &canteens))
	require.Len(t, canteens, 1)
	assert.Equal(t, "North Canteen", canteens[0].Name)
}
