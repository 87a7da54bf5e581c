package models

import "time"

type MenuCategory struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CanteenID   uint       `gorm:"not null;uniqueIndex:idx_category_canteen_name" json:"canteen_id"`
	Canteen     Canteen    `gorm:"foreignKey:CanteenID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name        string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_canteen_name" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	SortOrder   int        `gorm:"not null;default:0" json:"sort_order"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	Items       []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
