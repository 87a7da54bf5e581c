package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is an immutable line of an order. UnitPrice and TotalPrice are
// copied from the menu item when the order is placed and never re-read.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order           Order           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID      uint            `gorm:"not null;index" json:"menu_item_id"`
	MenuItem        *MenuItem       `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item,omitempty"`
	ItemName        string          `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	SpecialRequests *string         `gorm:"type:text" json:"special_requests,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
