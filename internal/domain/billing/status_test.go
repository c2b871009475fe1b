package billing

import (
	"testing"
	"time"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "active", want: "active"},
		{in: "trialing", want: "trialing"},
		{in: "past_due", want: "past_due"},
		{in: "unpaid", want: "past_due"},
		{in: "canceled", want: "canceled"},
		{in: "incomplete_expired", want: "canceled"},
		{in: "incomplete", want: "incomplete"},
		{in: "  active  ", want: "active"},
		{in: "", want: "none"},
	}

	for _, tt := range tests {
		if got := NormalizeStatus(tt.in); got != tt.want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsActiveStatus(t *testing.T) {
	for _, status := range []string{"active", "trialing"} {
		if !IsActiveStatus(status) {
			t.Fatalf("expected status %q to be active", status)
		}
	}
	for _, status := range []string{"past_due", "canceled", "incomplete", "paused", ""} {
		if IsActiveStatus(status) {
			t.Fatalf("expected status %q to be inactive", status)
		}
	}
}

func TestSubscriptionHelpersNil(t *testing.T) {
	var sub *Subscription
	if sub.IsActive() || sub.IsTrialing() || sub.IsCanceled() || sub.IsPastDue() {
		t.Fatal("nil subscription must report false everywhere")
	}
	if sub.TrialDaysRemaining() != nil || sub.DaysUntilRenewal() != nil {
		t.Fatal("nil subscription must report no day counts")
	}
}

func TestTrialDaysRemaining(t *testing.T) {
	end := time.Now().Add(72*time.Hour + time.Hour)
	sub := &Subscription{Status: SubscriptionStatusTrialing, TrialEnd: &end}

	days := sub.TrialDaysRemaining()
	if days == nil || *days != 4 {
		t.Fatalf("expected 4 trial days remaining, got %v", days)
	}

	past := time.Now().Add(-24 * time.Hour)
	sub.TrialEnd = &past
	days = sub.TrialDaysRemaining()
	if days == nil || *days != 0 {
		t.Fatalf("expected 0 for an elapsed trial, got %v", days)
	}

	sub.TrialEnd = nil
	if sub.TrialDaysRemaining() != nil {
		t.Fatal("expected nil without a trial end")
	}
}

func TestDaysUntilRenewal(t *testing.T) {
	end := time.Now().Add(30*24*time.Hour + time.Hour)
	sub := &Subscription{Status: SubscriptionStatusActive, CurrentPeriodEnd: &end}

	days := sub.DaysUntilRenewal()
	if days == nil || *days != 31 {
		t.Fatalf("expected 31 days until renewal, got %v", days)
	}
}
