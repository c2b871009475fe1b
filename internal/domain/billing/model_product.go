package billing

import "time"

// Product mirrors a Stripe product. The record is replaced wholesale on every
// product.created / product.updated event.
type Product struct {
	ID          string  `gorm:"type:varchar(191);primaryKey" json:"id"`
	Active      bool    `gorm:"default:false" json:"active"`
	Name        string  `gorm:"type:varchar(200);not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Image       *string `gorm:"type:text" json:"image,omitempty"`
	Metadata    string  `gorm:"type:jsonb;default:'{}'" json:"metadata"`

	Prices []Price `gorm:"foreignKey:ProductID" json:"prices,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
