package models

import "time"

type Canteen struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Location     string    `gorm:"type:varchar(255)" json:"location"`
	OpeningHours string    `gorm:"type:text" json:"opening_hours"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	AdminID      *uint     `gorm:"index" json:"admin_id,omitempty"`
	Admin        *User     `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"admin,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ManagedBy reports whether user may administer this canteen.
func (c Canteen) ManagedBy(user User) bool {
	if user.Role == RoleSuperAdmin {
		return true
	}
	return user.Role == RoleCanteenAdmin && c.AdminID != nil && *c.AdminID == user.ID
}
