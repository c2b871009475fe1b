package billing

import "time"

// Price mirrors a Stripe price. Interval fields are nil for one-time prices.
type Price struct {
	ID              string  `gorm:"type:varchar(191);primaryKey" json:"id"`
	ProductID       string  `gorm:"type:varchar(191);not null;index" json:"product_id"`
	Active          bool    `gorm:"default:false" json:"active"`
	Currency        string  `gorm:"type:varchar(3);not null" json:"currency"`
	Type            string  `gorm:"type:varchar(20);not null" json:"type"`
	UnitAmount      *int64  `json:"unit_amount,omitempty"`
	Interval        *string `gorm:"type:varchar(16)" json:"interval,omitempty"`
	IntervalCount   *int64  `json:"interval_count,omitempty"`
	TrialPeriodDays *int64  `json:"trial_period_days,omitempty"`
	Metadata        string  `gorm:"type:jsonb;default:'{}'" json:"metadata"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
