package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-eats/canteen-app/models"
	"github.com/campus-eats/canteen-app/services"
)

func TestPublicMenu(t *testing.T) {
	app := newTestApp(t)
	north := app.canteen(t, "North Canteen")

	w, env := app.do(t, http.MethodGet, "/api/canteens", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var canteens []models.Canteen
	require.NoError(t, json.Unmarshal(env.Data, &canteens))
	assert.Len(t, canteens, 3)

	w, env = app.do(t, http.MethodGet, fmt.Sprintf("/api/canteens/%d/menu", north.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var menu services.CanteenMenu
	require.NoError(t, json.Unmarshal(env.Data, &menu))
	assert.Equal(t, "North Canteen", menu.Canteen.Name)
	assert.Len(t, menu.Categories, 3)

	w, env = app.do(t, http.MethodGet, "/api/canteens/9999/menu", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "canteen_not_found", env.Code)

	w, _ = app.do(t, http.MethodGet, "/api/canteens/zero/menu", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminMenuManagement(t *testing.T) {
	app := newTestApp(t)
	north := app.canteen(t, "North Canteen")
	admin := app.token(t, "north-admin@admin.com")
	southAdmin := app.token(t, "south-admin@admin.com")

	w, env := app.do(t, http.MethodPost, fmt.Sprintf("/api/admin/canteens/%d/categories", north.ID), admin, gin.H{"name": "Desserts", "sort_order": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var category models.MenuCategory
	require.NoError(t, json.Unmarshal(env.Data, &category))

	w, _ = app.do(t, http.MethodPost, fmt.Sprintf("/api/admin/canteens/%d/categories", north.ID), southAdmin, gin.H{"name": "Stolen"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = app.do(t, http.MethodPost, fmt.Sprintf("/api/admin/canteens/%d/menu-items", north.ID), admin, gin.H{
		"category_id": category.ID,
		"name":        "Kheer",
		"price":       "45.00",
		"is_vegan":    false,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item models.MenuItem
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.True(t, item.IsAvailable)
	assert.Equal(t, "45.00", item.Price.StringFixed(2))

	w, env = app.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/menu-items/%d", item.ID), admin, gin.H{"price": 50, "is_available": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.False(t, item.IsAvailable)
	assert.Equal(t, "50.00", item.Price.StringFixed(2))

	w, env = app.do(t, http.MethodGet, fmt.Sprintf("/api/admin/canteens/%d/categories", north.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []models.MenuCategory
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	assert.Len(t, categories, 4)

	w, _ = app.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/menu-items/%d", item.ID), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	app.placeNorthOrder(t, app.token(t, "student@test.com"))
	w, env = app.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/menu-items/%d", app.menuItem(t, "Chai").ID), admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "item_in_use", env.Code)
}
