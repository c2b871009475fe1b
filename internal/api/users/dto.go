package users

import (
	"time"

	"billing-app/internal/domain/billing"
)

type MeResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SubscriptionView is the dashboard projection of the stored subscription,
// with the derived trial/renewal fields the frontend displays.
type SubscriptionView struct {
	ID                 string         `json:"id"`
	Status             string         `json:"status"`
	Quantity           int64          `json:"quantity"`
	CancelAtPeriodEnd  bool           `json:"cancel_at_period_end"`
	CurrentPeriodEnd   *time.Time     `json:"current_period_end,omitempty"`
	TrialEnd           *time.Time     `json:"trial_end,omitempty"`
	Trialing           bool           `json:"trialing"`
	TrialDaysRemaining *int           `json:"trial_days_remaining,omitempty"`
	DaysUntilRenewal   *int           `json:"days_until_renewal,omitempty"`
	Price              *billing.Price `json:"price,omitempty"`
}

func buildSubscriptionView(sub *billing.Subscription) SubscriptionView {
	return SubscriptionView{
		ID:                 sub.ID,
		Status:             billing.NormalizeStatus(sub.Status),
		Quantity:           sub.Quantity,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		TrialEnd:           sub.TrialEnd,
		Trialing:           sub.IsTrialing(),
		TrialDaysRemaining: sub.TrialDaysRemaining(),
		DaysUntilRenewal:   sub.DaysUntilRenewal(),
		Price:              sub.Price,
	}
}
