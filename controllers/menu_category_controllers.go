package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-eats/canteen-app/services"
	"github.com/campus-eats/canteen-app/utils"
)

type MenuCategoryController struct {
	Catalog *services.CatalogService
}

func NewMenuCategoryController(catalog *services.CatalogService) *MenuCategoryController {
	return &MenuCategoryController{Catalog: catalog}
}

// GetCategories -> every category of the canteen, including inactive ones
func (mcc *MenuCategoryController) GetCategories(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	canteenID, ok := idParam(c, "id")
	if !ok {
		return
	}

	categories, err := mcc.Catalog.ListCategories(c.Request.Context(), user, canteenID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All menu categories", categories)
}

func (mcc *MenuCategoryController) CreateCategory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	canteenID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body services.CategoryInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := mcc.Catalog.CreateCategory(c.Request.Context(), user, canteenID, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}
