package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CanteenID       uint            `gorm:"not null;index" json:"canteen_id"`
	Canteen         Canteen         `gorm:"foreignKey:CanteenID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CategoryID      uint            `gorm:"not null;uniqueIndex:idx_item_category_name" json:"category_id"`
	Category        MenuCategory    `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name            string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_item_category_name" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	ImageURL        string          `gorm:"type:varchar(500)" json:"image_url"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable     bool            `gorm:"not null" json:"is_available"`
	IsVegetarian    bool            `gorm:"not null" json:"is_vegetarian"`
	IsVegan         bool            `gorm:"not null" json:"is_vegan"`
	PreparationTime int             `gorm:"not null;default:15" json:"preparation_time"` // minutes
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
