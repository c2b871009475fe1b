package stripewebhooks

import (
	"fmt"
	"log"

	"billing-app/internal/domain/billing"

	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) upsertProduct(p *stripe.Product) error {
	if err := h.Repo.UpsertProduct(billing.ProductRecord(p)); err != nil {
		return fmt.Errorf("upsert product %s: %w", p.ID, err)
	}
	log.Printf("product %s upserted", p.ID)
	return nil
}

func (h *Handler) upsertPrice(p *stripe.Price) error {
	rec, err := billing.PriceRecord(p)
	if err != nil {
		return err
	}
	if err := h.Repo.UpsertPrice(rec); err != nil {
		return fmt.Errorf("upsert price %s: %w", p.ID, err)
	}
	log.Printf("price %s upserted", p.ID)
	return nil
}
