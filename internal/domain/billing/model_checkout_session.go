package billing

import (
	"encoding/json"
	"time"
)

// CheckoutSession records the outcome of one Stripe checkout session and
// whether it has been fulfilled. The row is created on the first fulfillment
// attempt and the fulfilled flag transitions false→true at most once.
type CheckoutSession struct {
	ID            string `gorm:"type:varchar(191);primaryKey" json:"id"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	PaymentStatus string `gorm:"type:varchar(32);not null" json:"payment_status"`

	Fulfilled       bool       `gorm:"not null;default:false" json:"fulfilled"`
	FulfilledAt     *time.Time `gorm:"type:timestamp;default:null" json:"fulfilled_at,omitempty"`
	FulfillmentData string     `gorm:"type:jsonb;default:'{}'" json:"fulfillment_data"`

	// Snapshot of session attributes at fulfillment time.
	Mode          string `gorm:"type:varchar(20)" json:"mode"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `gorm:"type:varchar(3)" json:"currency"`
	CustomerEmail string `gorm:"type:varchar(200)" json:"customer_email"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// FulfillmentRecord is the structured payload stored in fulfillment_data:
// which business actions ran, when, and any action error that was swallowed.
type FulfillmentRecord struct {
	ActionsPerformed []string  `json:"actions_performed"`
	Timestamp        time.Time `json:"timestamp"`
	Error            *string   `json:"error,omitempty"`
}

// JSON serializes the record for the jsonb column. Marshal cannot fail for
// this shape.
func (r FulfillmentRecord) JSON() string {
	b, _ := json.Marshal(r)
	return string(b)
}

// MetadataJSON serializes provider metadata for a jsonb column, defaulting to
// an empty object.
func MetadataJSON(md map[string]string) string {
	if len(md) == 0 {
		return "{}"
	}
	b, _ := json.Marshal(md)
	return string(b)
}
