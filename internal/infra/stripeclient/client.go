package stripeclient

import (
	"github.com/stripe/stripe-go/v75"
	portalsession "github.com/stripe/stripe-go/v75/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/customer"
	"github.com/stripe/stripe-go/v75/price"
	"github.com/stripe/stripe-go/v75/subscription"
)

// Client is the privileged Stripe handle passed explicitly into handlers, so
// request code never touches package-level Stripe state and tests can swap in
// a fake.
type Client interface {
	GetCheckoutSession(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetSubscription(id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error)
	NewCustomer(params *stripe.CustomerParams) (*stripe.Customer, error)
	NewBillingPortalSession(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error)
	ListActiveRecurringPrices() ([]*stripe.Price, error)
}

type apiClient struct{}

// New configures the stripe-go key once at process start and returns the
// live client.
func New(secretKey string) Client {
	stripe.Key = secretKey
	return &apiClient{}
}

func (*apiClient) GetCheckoutSession(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return checkoutsession.Get(id, params)
}

func (*apiClient) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return checkoutsession.New(params)
}

func (*apiClient) GetSubscription(id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error) {
	return subscription.Get(id, params)
}

func (*apiClient) NewCustomer(params *stripe.CustomerParams) (*stripe.Customer, error) {
	return customer.New(params)
}

func (*apiClient) NewBillingPortalSession(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error) {
	return portalsession.New(params)
}

// ListActiveRecurringPrices walks Stripe's active recurring prices with the
// owning product expanded, for catalog sync.
func (*apiClient) ListActiveRecurringPrices() ([]*stripe.Price, error) {
	params := &stripe.PriceListParams{}
	params.Active = stripe.Bool(true)
	params.Type = stripe.String("recurring")
	params.AddExpand("data.product")

	it := price.List(params)

	var prices []*stripe.Price
	for it.Next() {
		prices = append(prices, it.Price())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}
