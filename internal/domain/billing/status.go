package billing

import (
	"math"
	"strings"
	"time"
)

// NormalizeStatus collapses Stripe status variants into the values the rest
// of the app reasons about.
func NormalizeStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "":
		return "none"
	case SubscriptionStatusActive:
		return SubscriptionStatusActive
	case SubscriptionStatusTrialing:
		return SubscriptionStatusTrialing
	case SubscriptionStatusPastDue, SubscriptionStatusUnpaid:
		return SubscriptionStatusPastDue
	case SubscriptionStatusCanceled, SubscriptionStatusIncompleteExpired:
		return SubscriptionStatusCanceled
	default:
		return strings.TrimSpace(s)
	}
}

// IsActiveStatus reports whether a status grants entitlement (trial included).
func IsActiveStatus(status string) bool {
	return status == SubscriptionStatusActive || status == SubscriptionStatusTrialing
}

func (s *Subscription) IsActive() bool {
	if s == nil {
		return false
	}
	return IsActiveStatus(s.Status)
}

func (s *Subscription) IsTrialing() bool {
	if s == nil {
		return false
	}
	return s.Status == SubscriptionStatusTrialing
}

// IsCanceled reports a pending cancellation at period end.
func (s *Subscription) IsCanceled() bool {
	if s == nil {
		return false
	}
	return s.CancelAtPeriodEnd
}

// IsPastDue reports that the subscription requires payment.
func (s *Subscription) IsPastDue() bool {
	if s == nil {
		return false
	}
	return s.Status == SubscriptionStatusPastDue || s.Status == SubscriptionStatusIncomplete
}

// TrialDaysRemaining returns the whole days left in the trial, nil when the
// subscription has no trial end.
func (s *Subscription) TrialDaysRemaining() *int {
	if s == nil || s.TrialEnd == nil {
		return nil
	}
	return daysUntil(*s.TrialEnd)
}

// DaysUntilRenewal returns the whole days until the current period ends, nil
// when the period boundary is unknown.
func (s *Subscription) DaysUntilRenewal() *int {
	if s == nil || s.CurrentPeriodEnd == nil {
		return nil
	}
	return daysUntil(*s.CurrentPeriodEnd)
}

func daysUntil(t time.Time) *int {
	diff := time.Until(t)
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 0 {
		days = 0
	}
	return &days
}
