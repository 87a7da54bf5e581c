package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-eats/canteen-app/services"
	"github.com/campus-eats/canteen-app/utils"
)

type CanteenController struct {
	Catalog *services.CatalogService
}

func NewCanteenController(catalog *services.CatalogService) *CanteenController {
	return &CanteenController{Catalog: catalog}
}

func (cc *CanteenController) GetAllCanteens(c *gin.Context) {
	canteens, err := cc.Catalog.ListCanteens(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of canteens", canteens)
}

// GetCanteenMenu -> active categories with available items
func (cc *CanteenController) GetCanteenMenu(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	menu, err := cc.Catalog.GetCanteenMenu(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Canteen menu", menu)
}

// GetMyCanteens lists the canteens the admin manages.
func (cc *CanteenController) GetMyCanteens(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	canteens, err := cc.Catalog.ManagedCanteens(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Managed canteens", canteens)
}
