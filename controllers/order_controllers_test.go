package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-eats/canteen-app/models"
)

func TestCreateAndGetOrder(t *testing.T) {
	app := newTestApp(t)
	student := app.token(t, "student@test.com")

	order := app.placeNorthOrder(t, student)
	assert.True(t, decimal.NewFromInt(135).Equal(order.TotalAmount))
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Len(t, order.OrderItems, 2)

	w, env := app.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.Order
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, order.OrderNumber, fetched.OrderNumber)
	assert.Len(t, fetched.OrderItems, 2)

	w, env = app.do(t, http.MethodGet, "/api/orders/my-orders", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Len(t, mine, 1)
}

func TestCreateOrderErrors(t *testing.T) {
	app := newTestApp(t)
	student := app.token(t, "student@test.com")
	north := app.canteen(t, "North Canteen")
	chicken := app.menuItem(t, "Chicken Curry")
	require.NoError(t, app.db.Model(&chicken).Update("is_available", false).Error)

	tests := []struct {
		name   string
		token  string
		body   gin.H
		status int
		code   string
	}{
		{"no token", "", gin.H{"canteen_id": north.ID}, http.StatusUnauthorized, "unauthorized"},
		{"empty cart", student, gin.H{"canteen_id": north.ID, "items": []gin.H{}}, http.StatusBadRequest, "empty_cart"},
		{"missing canteen", student, gin.H{"items": []gin.H{{"menu_item_id": 1, "quantity": 1}}}, http.StatusBadRequest, "invalid_input"},
		{"bad quantity", student, gin.H{"canteen_id": north.ID, "items": []gin.H{{"menu_item_id": chicken.ID, "quantity": 0}}}, http.StatusBadRequest, "invalid_quantity"},
		{"unknown item", student, gin.H{"canteen_id": north.ID, "items": []gin.H{{"menu_item_id": 9999, "quantity": 1}}}, http.StatusNotFound, "menu_item_not_found"},
		{"unavailable item", student, gin.H{"canteen_id": north.ID, "items": []gin.H{{"menu_item_id": chicken.ID, "quantity": 1}}}, http.StatusConflict, "item_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := app.do(t, http.MethodPost, "/api/orders", tt.token, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, env.Code)
			assert.False(t, env.Status)
		})
	}

	var count int64
	require.NoError(t, app.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAdminStatusEndpoints(t *testing.T) {
	app := newTestApp(t)
	student := app.token(t, "student@test.com")
	northAdmin := app.token(t, "north-admin@admin.com")
	southAdmin := app.token(t, "south-admin@admin.com")
	order := app.placeNorthOrder(t, student)
	path := fmt.Sprintf("/api/admin/orders/%d/status", order.ID)

	w, _ := app.do(t, http.MethodPatch, path, student, gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := app.do(t, http.MethodPatch, path, southAdmin, gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", env.Code)

	w, env = app.do(t, http.MethodPatch, path, northAdmin, gin.H{"status": "ready"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_transition", env.Code)

	w, env = app.do(t, http.MethodPatch, path, northAdmin, gin.H{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_status", env.Code)

	w, env = app.do(t, http.MethodPatch, path, northAdmin, gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Order
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	w, _ = app.do(t, http.MethodGet, fmt.Sprintf("/api/admin/canteens/%d/orders?status=confirmed", order.CanteenID), northAdmin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = app.do(t, http.MethodPost, fmt.Sprintf("/api/admin/orders/%d/cancel", order.ID), northAdmin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = app.do(t, http.MethodPost, fmt.Sprintf("/api/admin/orders/%d/cancel", order.ID), northAdmin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_transition", env.Code)

	w, env = app.do(t, http.MethodPatch, "/api/admin/orders/abc/status", northAdmin, gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_input", env.Code)
}

func TestGetOrderOfAnotherStudent(t *testing.T) {
	app := newTestApp(t)
	order := app.placeNorthOrder(t, app.token(t, "student@test.com"))

	w, env := app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":      "other@test.com",
		"password":   "secret1",
		"first_name": "Other",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))

	w, env = app.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), res.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", env.Code)

	w, env = app.do(t, http.MethodGet, "/api/orders/9999", res.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "order_not_found", env.Code)
}
