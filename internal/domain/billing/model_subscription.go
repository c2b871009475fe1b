package billing

import "time"

// Subscription status values as Stripe reports them.
const (
	SubscriptionStatusActive            = "active"
	SubscriptionStatusTrialing          = "trialing"
	SubscriptionStatusPastDue           = "past_due"
	SubscriptionStatusUnpaid            = "unpaid"
	SubscriptionStatusIncomplete        = "incomplete"
	SubscriptionStatusIncompleteExpired = "incomplete_expired"
	SubscriptionStatusCanceled          = "canceled"
	SubscriptionStatusPaused            = "paused"
)

// Subscription mirrors a Stripe subscription for one user. Every relevant
// webhook event replaces the whole record with the provider's current view;
// rows are never partially patched.
type Subscription struct {
	ID         string `gorm:"type:varchar(191);primaryKey" json:"id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	CustomerID string `gorm:"type:varchar(191);not null;index" json:"customer_id"`
	Status     string `gorm:"type:varchar(32);not null;index" json:"status"`
	PriceID    string `gorm:"type:varchar(191);not null" json:"price_id"`
	Quantity   int64  `gorm:"default:1" json:"quantity"`

	CancelAtPeriodEnd  bool       `gorm:"default:false" json:"cancel_at_period_end"`
	CancelAt           *time.Time `gorm:"type:timestamp;default:null" json:"cancel_at,omitempty"`
	CanceledAt         *time.Time `gorm:"type:timestamp;default:null" json:"canceled_at,omitempty"`
	CurrentPeriodStart *time.Time `gorm:"type:timestamp;default:null" json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	Created            *time.Time `gorm:"type:timestamp;default:null" json:"created,omitempty"`
	EndedAt            *time.Time `gorm:"type:timestamp;default:null" json:"ended_at,omitempty"`
	TrialStart         *time.Time `gorm:"type:timestamp;default:null" json:"trial_start,omitempty"`
	TrialEnd           *time.Time `gorm:"type:timestamp;default:null" json:"trial_end,omitempty"`

	Metadata string `gorm:"type:jsonb;default:'{}'" json:"metadata"`

	Price *Price `gorm:"foreignKey:PriceID" json:"price,omitempty"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
