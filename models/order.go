package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentCash   = "cash"
	PaymentOnline = "online"
)

type Order struct {
	ID                      uint            `gorm:"primaryKey" json:"id"`
	OrderNumber             string          `gorm:"type:varchar(32);not null;uniqueIndex" json:"order_number"`
	UserID                  uint            `gorm:"not null;index" json:"user_id"`
	User                    *User           `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`
	CanteenID               uint            `gorm:"not null;index" json:"canteen_id"`
	Canteen                 *Canteen        `gorm:"foreignKey:CanteenID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"canteen,omitempty"`
	TotalAmount             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status                  OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod           string          `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	SpecialInstructions     *string         `gorm:"type:text" json:"special_instructions,omitempty"`
	EstimatedCompletionTime time.Time       `json:"estimated_completion_time"`
	OrderItems              []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt               time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// LineTotal sums the captured line totals of the loaded items.
func (o Order) LineTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.OrderItems {
		sum = sum.Add(item.TotalPrice)
	}
	return sum
}
