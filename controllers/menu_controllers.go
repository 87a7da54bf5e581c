package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-eats/canteen-app/services"
	"github.com/campus-eats/canteen-app/utils"
)

type MenuController struct {
	Catalog *services.CatalogService
}

func NewMenuController(catalog *services.CatalogService) *MenuController {
	return &MenuController{Catalog: catalog}
}

// CreateMenuItem adds an item to one of the canteen's categories.
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	canteenID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body services.MenuItemInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := mc.Catalog.CreateMenuItem(c.Request.Context(), user, canteenID, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem applies a partial update; absent fields are left alone.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var patch services.MenuItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := mc.Catalog.UpdateMenuItem(c.Request.Context(), user, itemID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := mc.Catalog.DeleteMenuItem(c.Request.Context(), user, itemID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"menu_item_id": itemID})
}
