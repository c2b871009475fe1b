package fulfillment

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"billing-app/internal/domain/billing"
	"billing-app/internal/domain/users"
	"billing-app/internal/infra/stripeclient"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// Result is the outcome of one fulfillment attempt. Expected failures
// (unpaid session, unresolvable user, failed write) come back as a structured
// result, not an HTTP error, so the caller can still render a status page.
type Result struct {
	Success          bool   `json:"success"`
	AlreadyFulfilled bool   `json:"already_fulfilled"`
	Error            string `json:"error,omitempty"`
}

// Coordinator fulfills completed checkout sessions at most once per session
// id. Repeated calls with the same id converge to the same outcome.
type Coordinator struct {
	Repo   billing.Repository
	Users  users.Directory
	Stripe stripeclient.Client
}

func NewCoordinator(repo billing.Repository, dir users.Directory, sc stripeclient.Client) *Coordinator {
	return &Coordinator{Repo: repo, Users: dir, Stripe: sc}
}

func (f *Coordinator) Fulfill(sessionID string) Result {
	existing, err := f.Repo.GetCheckoutSession(sessionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Result{Error: err.Error()}
	}
	if existing != nil && existing.Fulfilled {
		log.Printf("session %s already fulfilled at %v", sessionID, existing.FulfilledAt)
		return Result{Success: true, AlreadyFulfilled: true}
	}

	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("line_items")
	params.AddExpand("customer")
	session, err := f.Stripe.GetCheckoutSession(sessionID, params)
	if err != nil {
		return Result{Error: fmt.Sprintf("fetch checkout session: %v", err)}
	}

	// Only fulfill once payment succeeded. Nothing is written here, so a
	// later retry can still succeed.
	if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
		log.Printf("session %s is unpaid, skipping fulfillment", sessionID)
		return Result{Error: "Payment not completed"}
	}

	user, err := f.resolveUser(session)
	if err != nil {
		log.Printf("could not determine user for session %s: %v", sessionID, err)
		return Result{Error: "User not found"}
	}

	record := f.runFulfillmentActions(session, user)

	now := time.Now().UTC()
	cs := &billing.CheckoutSession{
		ID:              sessionID,
		UserID:          user.ID,
		PaymentStatus:   string(session.PaymentStatus),
		Fulfilled:       true,
		FulfilledAt:     &now,
		FulfillmentData: record.JSON(),
		Mode:            string(session.Mode),
		AmountTotal:     session.AmountTotal,
		Currency:        string(session.Currency),
		CustomerEmail:   sessionEmail(session),
	}

	// Conditional upsert: fulfilled only ever becomes true through this
	// write, and only for one caller.
	won, err := f.Repo.MarkCheckoutFulfilled(cs)
	if err != nil {
		return Result{Error: err.Error()}
	}
	if !won {
		return Result{Success: true, AlreadyFulfilled: true}
	}

	log.Printf("session %s fulfilled", sessionID)
	return Result{Success: true}
}

// Status reports the stored fulfillment state, nil when no record exists yet.
func (f *Coordinator) Status(sessionID string) (*billing.CheckoutSession, error) {
	cs, err := f.Repo.GetCheckoutSession(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// resolveUser prefers the user id stamped into checkout metadata at session
// creation and falls back to the payer email.
func (f *Coordinator) resolveUser(session *stripe.CheckoutSession) (*users.User, error) {
	if idStr := session.Metadata["user_id"]; idStr != "" {
		id64, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user_id %q in metadata: %w", idStr, err)
		}
		return f.Users.GetByID(uint(id64))
	}

	if email := sessionEmail(session); email != "" {
		return f.Users.GetByEmail(email)
	}

	return nil, errors.New("session carries no user_id metadata or payer email")
}

// runFulfillmentActions performs the mode-appropriate business actions and
// records what ran. Action failures are annotated into the record instead of
// aborting the flow, so fulfillment bookkeeping is still written.
func (f *Coordinator) runFulfillmentActions(session *stripe.CheckoutSession, user *users.User) billing.FulfillmentRecord {
	record := billing.FulfillmentRecord{
		ActionsPerformed: []string{},
		Timestamp:        time.Now().UTC(),
	}

	switch session.Mode {
	case stripe.CheckoutSessionModeSubscription:
		// The subscription row itself arrives via webhook; the action here
		// is granting the entitlement role.
		if err := f.Users.GrantRole(user.ID, "member"); err != nil {
			msg := fmt.Sprintf("grant member role: %v", err)
			record.Error = &msg
		}
		record.ActionsPerformed = append(record.ActionsPerformed, "subscription_activated")

	case stripe.CheckoutSessionModePayment:
		record.ActionsPerformed = append(record.ActionsPerformed, "payment_processed")
	}

	return record
}

func sessionEmail(session *stripe.CheckoutSession) string {
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		return session.CustomerDetails.Email
	}
	return session.CustomerEmail
}
