package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
)

func TestProductRecord(t *testing.T) {
	rec := ProductRecord(&stripe.Product{
		ID:          "prod_1",
		Active:      true,
		Name:        "Pro",
		Description: "The pro tier",
		Images:      []string{"https://img/1.png", "https://img/2.png"},
		Metadata:    map[string]string{"order": "1"},
	})

	assert.Equal(t, "prod_1", rec.ID)
	assert.True(t, rec.Active)
	assert.Equal(t, "Pro", rec.Name)
	require.NotNil(t, rec.Description)
	assert.Equal(t, "The pro tier", *rec.Description)
	require.NotNil(t, rec.Image)
	assert.Equal(t, "https://img/1.png", *rec.Image)
	assert.JSONEq(t, `{"order":"1"}`, rec.Metadata)
}

func TestProductRecordOptionalFieldsAbsent(t *testing.T) {
	rec := ProductRecord(&stripe.Product{ID: "prod_2", Name: "Basic"})

	assert.Nil(t, rec.Description)
	assert.Nil(t, rec.Image)
	assert.Equal(t, "{}", rec.Metadata)
}

func TestPriceRecordBareProductID(t *testing.T) {
	// an unexpanded price event carries the product as a bare id; stripe-go
	// still surfaces it as Product.ID
	rec, err := PriceRecord(&stripe.Price{
		ID:         "price_1",
		Product:    &stripe.Product{ID: "prod_1"},
		Active:     true,
		Currency:   stripe.CurrencyEUR,
		Type:       stripe.PriceTypeRecurring,
		UnitAmount: 990,
		Recurring: &stripe.PriceRecurring{
			Interval:        stripe.PriceRecurringIntervalMonth,
			IntervalCount:   1,
			TrialPeriodDays: 14,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "prod_1", rec.ProductID)
	assert.Equal(t, "eur", rec.Currency)
	assert.Equal(t, "recurring", rec.Type)
	require.NotNil(t, rec.UnitAmount)
	assert.EqualValues(t, 990, *rec.UnitAmount)
	require.NotNil(t, rec.Interval)
	assert.Equal(t, "month", *rec.Interval)
	require.NotNil(t, rec.IntervalCount)
	assert.EqualValues(t, 1, *rec.IntervalCount)
	require.NotNil(t, rec.TrialPeriodDays)
	assert.EqualValues(t, 14, *rec.TrialPeriodDays)
}

func TestPriceRecordOneTime(t *testing.T) {
	rec, err := PriceRecord(&stripe.Price{
		ID:       "price_2",
		Product:  &stripe.Product{ID: "prod_1"},
		Currency: stripe.CurrencyUSD,
		Type:     stripe.PriceTypeOneTime,
	})
	require.NoError(t, err)

	assert.Nil(t, rec.UnitAmount)
	assert.Nil(t, rec.Interval)
	assert.Nil(t, rec.IntervalCount)
	assert.Nil(t, rec.TrialPeriodDays)
}

func TestPriceRecordMissingProduct(t *testing.T) {
	_, err := PriceRecord(&stripe.Price{ID: "price_3"})
	assert.Error(t, err)
}
