package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campus-eats/canteen-app/models"
)

type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

type CanteenMenu struct {
	Canteen    models.Canteen        `json:"canteen"`
	Categories []models.MenuCategory `json:"categories"`
}

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type MenuItemInput struct {
	CategoryID      uint            `json:"category_id" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url"`
	Price           decimal.Decimal `json:"price"`
	IsAvailable     *bool           `json:"is_available"`
	IsVegetarian    bool            `json:"is_vegetarian"`
	IsVegan         bool            `json:"is_vegan"`
	PreparationTime int             `json:"preparation_time"`
}

// MenuItemPatch carries optional fields; nil leaves the column unchanged.
type MenuItemPatch struct {
	CategoryID      *uint            `json:"category_id"`
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	ImageURL        *string          `json:"image_url"`
	Price           *decimal.Decimal `json:"price"`
	IsAvailable     *bool            `json:"is_available"`
	IsVegetarian    *bool            `json:"is_vegetarian"`
	IsVegan         *bool            `json:"is_vegan"`
	PreparationTime *int             `json:"preparation_time"`
}

// ListCanteens returns active canteens ordered by name.
func (cs *CatalogService) ListCanteens(ctx context.Context) ([]models.Canteen, error) {
	var canteens []models.Canteen
	err := cs.DB.WithContext(ctx).
		Preload("Admin").
		Where("is_active = ?", true).
		Order("name").
		Find(&canteens).Error
	if err != nil {
		return nil, persistence(err)
	}
	return canteens, nil
}

// GetCanteenMenu returns the active categories of a canteen with their available items.
func (cs *CatalogService) GetCanteenMenu(ctx context.Context, canteenID uint) (*CanteenMenu, error) {
	db := cs.DB.WithContext(ctx)

	var canteen models.Canteen
	if err := db.Where("is_active = ?", true).First(&canteen, canteenID).Error; err != nil {
		return nil, notFoundOr(err, ErrCanteenNotFound)
	}

	var categories []models.MenuCategory
	err := db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).Order("name")
		}).
		Where("canteen_id = ? AND is_active = ?", canteenID, true).
		Order("sort_order, name").
		Find(&categories).Error
	if err != nil {
		return nil, persistence(err)
	}

	return &CanteenMenu{Canteen: canteen, Categories: categories}, nil
}

func (cs *CatalogService) GetMenuItem(ctx context.Context, itemID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := cs.DB.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return nil, notFoundOr(err, MenuItemNotFound(itemID))
	}
	return &item, nil
}

// ManagedCanteens lists the canteens actor administers; all of them for a super admin.
func (cs *CatalogService) ManagedCanteens(ctx context.Context, actor models.User) ([]models.Canteen, error) {
	query := cs.DB.WithContext(ctx).Order("name")
	switch actor.Role {
	case models.RoleSuperAdmin:
	case models.RoleCanteenAdmin:
		query = query.Where("admin_id = ?", actor.ID)
	default:
		return nil, ErrForbidden
	}

	var canteens []models.Canteen
	if err := query.Find(&canteens).Error; err != nil {
		return nil, persistence(err)
	}
	return canteens, nil
}

// Authorize returns the canteen when actor may manage it.
func (cs *CatalogService) Authorize(ctx context.Context, actor models.User, canteenID uint) (*models.Canteen, error) {
	var canteen models.Canteen
	if err := cs.DB.WithContext(ctx).First(&canteen, canteenID).Error; err != nil {
		return nil, notFoundOr(err, ErrCanteenNotFound)
	}
	if !canteen.ManagedBy(actor) {
		return nil, ErrForbidden
	}
	return &canteen, nil
}

func (cs *CatalogService) ListCategories(ctx context.Context, actor models.User, canteenID uint) ([]models.MenuCategory, error) {
	if _, err := cs.Authorize(ctx, actor, canteenID); err != nil {
		return nil, err
	}

	var categories []models.MenuCategory
	err := cs.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Where("canteen_id = ?", canteenID).
		Order("sort_order, name").
		Find(&categories).Error
	if err != nil {
		return nil, persistence(err)
	}
	return categories, nil
}

func (cs *CatalogService) CreateCategory(ctx context.Context, actor models.User, canteenID uint, in CategoryInput) (*models.MenuCategory, error) {
	if _, err := cs.Authorize(ctx, actor, canteenID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidInput("category name is required")
	}

	category := models.MenuCategory{
		CanteenID:   canteenID,
		Name:        name,
		Description: in.Description,
		SortOrder:   in.SortOrder,
		IsActive:    true,
	}
	if err := cs.DB.WithContext(ctx).Omit(clause.Associations).Create(&category).Error; err != nil {
		return nil, duplicateOr(err)
	}
	return &category, nil
}

func (cs *CatalogService) CreateMenuItem(ctx context.Context, actor models.User, canteenID uint, in MenuItemInput) (*models.MenuItem, error) {
	if _, err := cs.Authorize(ctx, actor, canteenID); err != nil {
		return nil, err
	}
	if err := cs.checkCategory(ctx, canteenID, in.CategoryID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidInput("item name is required")
	}
	if !in.Price.IsPositive() {
		return nil, invalidInput("price must be positive")
	}
	if in.PreparationTime < 0 {
		return nil, invalidInput("preparation time must not be negative")
	}

	item := models.MenuItem{
		CanteenID:       canteenID,
		CategoryID:      in.CategoryID,
		Name:            name,
		Description:     in.Description,
		ImageURL:        in.ImageURL,
		Price:           in.Price.Round(2),
		IsAvailable:     in.IsAvailable == nil || *in.IsAvailable,
		IsVegetarian:    in.IsVegetarian || in.IsVegan,
		IsVegan:         in.IsVegan,
		PreparationTime: in.PreparationTime,
	}
	if err := cs.DB.WithContext(ctx).Omit(clause.Associations).Create(&item).Error; err != nil {
		return nil, duplicateOr(err)
	}
	return &item, nil
}

// UpdateMenuItem applies a partial update. Orders already placed keep the
// price they captured.
func (cs *CatalogService) UpdateMenuItem(ctx context.Context, actor models.User, itemID uint, patch MenuItemPatch) (*models.MenuItem, error) {
	item, err := cs.GetMenuItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := cs.Authorize(ctx, actor, item.CanteenID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.CategoryID != nil {
		if err := cs.checkCategory(ctx, item.CanteenID, *patch.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *patch.CategoryID
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalidInput("item name is required")
		}
		updates["name"] = name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if patch.Price != nil {
		if !patch.Price.IsPositive() {
			return nil, invalidInput("price must be positive")
		}
		updates["price"] = patch.Price.Round(2)
	}
	if patch.IsAvailable != nil {
		updates["is_available"] = *patch.IsAvailable
	}
	if patch.IsVegetarian != nil {
		updates["is_vegetarian"] = *patch.IsVegetarian
	}
	if patch.IsVegan != nil {
		updates["is_vegan"] = *patch.IsVegan
	}
	if patch.PreparationTime != nil {
		if *patch.PreparationTime < 0 {
			return nil, invalidInput("preparation time must not be negative")
		}
		updates["preparation_time"] = *patch.PreparationTime
	}
	if len(updates) == 0 {
		return item, nil
	}

	if err := cs.DB.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
		return nil, duplicateOr(err)
	}
	return cs.GetMenuItem(ctx, itemID)
}

// DeleteMenuItem removes an item that no order references yet.
func (cs *CatalogService) DeleteMenuItem(ctx context.Context, actor models.User, itemID uint) error {
	item, err := cs.GetMenuItem(ctx, itemID)
	if err != nil {
		return err
	}
	if _, err := cs.Authorize(ctx, actor, item.CanteenID); err != nil {
		return err
	}

	var refs int64
	if err := cs.DB.WithContext(ctx).Model(&models.OrderItem{}).Where("menu_item_id = ?", itemID).Count(&refs).Error; err != nil {
		return persistence(err)
	}
	if refs > 0 {
		return ErrItemInUse
	}

	if err := cs.DB.WithContext(ctx).Delete(&models.MenuItem{}, itemID).Error; err != nil {
		return persistence(err)
	}
	return nil
}

func (cs *CatalogService) checkCategory(ctx context.Context, canteenID, categoryID uint) error {
	var category models.MenuCategory
	if err := cs.DB.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		return notFoundOr(err, ErrCategoryNotFound)
	}
	if category.CanteenID != canteenID {
		return invalidInput("category belongs to another canteen")
	}
	return nil
}

func duplicateOr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	return persistence(err)
}
