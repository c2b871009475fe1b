package billing

import (
	"fmt"

	"github.com/stripe/stripe-go/v75"
)

// ProductRecord projects a Stripe product onto the mirrored record. Only the
// fields this system stores are extracted; the rest of the provider shape is
// dropped at the boundary.
func ProductRecord(p *stripe.Product) *Product {
	rec := &Product{
		ID:       p.ID,
		Active:   p.Active,
		Name:     p.Name,
		Metadata: MetadataJSON(p.Metadata),
	}
	if p.Description != "" {
		desc := p.Description
		rec.Description = &desc
	}
	if len(p.Images) > 0 {
		img := p.Images[0]
		rec.Image = &img
	}
	return rec
}

// PriceRecord projects a Stripe price onto the mirrored record. The owning
// product may arrive as a bare id or an expanded object; stripe-go normalizes
// both into Product.ID.
func PriceRecord(p *stripe.Price) (*Price, error) {
	if p.Product == nil || p.Product.ID == "" {
		return nil, fmt.Errorf("price %s missing product", p.ID)
	}

	rec := &Price{
		ID:        p.ID,
		ProductID: p.Product.ID,
		Active:    p.Active,
		Currency:  string(p.Currency),
		Type:      string(p.Type),
		Metadata:  MetadataJSON(p.Metadata),
	}
	if p.UnitAmount != 0 {
		amount := p.UnitAmount
		rec.UnitAmount = &amount
	}
	if p.Recurring != nil {
		interval := string(p.Recurring.Interval)
		rec.Interval = &interval
		if p.Recurring.IntervalCount != 0 {
			count := p.Recurring.IntervalCount
			rec.IntervalCount = &count
		}
		if p.Recurring.TrialPeriodDays != 0 {
			days := p.Recurring.TrialPeriodDays
			rec.TrialPeriodDays = &days
		}
	}
	return rec, nil
}
