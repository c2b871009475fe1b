package stripewebhooks

import (
	"fmt"
	"time"

	"billing-app/internal/domain/billing"

	"github.com/stripe/stripe-go/v75"
)

// reconcileSubscription replaces the stored subscription with Stripe's
// current view. The event payload is not trusted for the full shape; the
// authoritative object is re-fetched from the API.
func (h *Handler) reconcileSubscription(subscriptionID, customerID string) error {
	cust, err := h.Repo.GetCustomerByStripeID(customerID)
	if err != nil {
		return fmt.Errorf("no customer mapping for %s: %w", customerID, err)
	}

	params := &stripe.SubscriptionParams{}
	params.AddExpand("default_payment_method")
	sub, err := h.Stripe.GetSubscription(subscriptionID, params)
	if err != nil {
		return fmt.Errorf("fetch subscription %s: %w", subscriptionID, err)
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return fmt.Errorf("subscription %s missing items/price", subscriptionID)
	}

	item := sub.Items.Data[0]
	quantity := item.Quantity
	if quantity == 0 {
		quantity = 1
	}

	rec := &billing.Subscription{
		ID:                 sub.ID,
		UserID:             cust.UserID,
		CustomerID:         customerID,
		Status:             string(sub.Status),
		PriceID:            item.Price.ID,
		Quantity:           quantity,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		CancelAt:           unixTime(sub.CancelAt),
		CanceledAt:         unixTime(sub.CanceledAt),
		CurrentPeriodStart: unixTime(sub.CurrentPeriodStart),
		CurrentPeriodEnd:   unixTime(sub.CurrentPeriodEnd),
		Created:            unixTime(sub.Created),
		EndedAt:            unixTime(sub.EndedAt),
		TrialStart:         unixTime(sub.TrialStart),
		TrialEnd:           unixTime(sub.TrialEnd),
		Metadata:           billing.MetadataJSON(sub.Metadata),
	}

	if err := h.Repo.UpsertSubscription(rec); err != nil {
		return fmt.Errorf("upsert subscription %s: %w", sub.ID, err)
	}
	return nil
}

// unixTime maps a provider Unix timestamp to calendar time. Zero or negative
// values mean the field is absent, never a sentinel epoch.
func unixTime(ts int64) *time.Time {
	if ts <= 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}
