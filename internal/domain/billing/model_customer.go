package billing

import "time"

// Customer links an internal user to the Stripe customer created for them.
// The mapping is created lazily on first checkout and never deleted here.
type Customer struct {
	UserID           uint   `gorm:"primaryKey" json:"user_id"`
	StripeCustomerID string `gorm:"type:varchar(191);not null;uniqueIndex:idx_customers_stripe_customer_id" json:"stripe_customer_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
