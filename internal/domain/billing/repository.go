package billing

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides the DB operations used by the webhook reconciler and
// the fulfillment coordinator. All upserts are full-record replacements keyed
// by the entity's natural (provider-issued) identifier, so re-applying the
// same event converges to the same stored state.
type Repository interface {
	UpsertProduct(p *Product) error
	UpsertPrice(p *Price) error
	UpsertSubscription(sub *Subscription) error

	GetCustomerByStripeID(stripeCustomerID string) (*Customer, error)
	GetCustomerByUserID(userID uint) (*Customer, error)
	CreateCustomer(c *Customer) error

	GetPrice(id string) (*Price, error)

	GetCheckoutSession(id string) (*CheckoutSession, error)
	MarkCheckoutFulfilled(cs *CheckoutSession) (bool, error)

	ListActiveProducts() ([]Product, error)
	GetActiveSubscriptionForUser(userID uint) (*Subscription, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) UpsertProduct(p *Product) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"active",
			"name",
			"description",
			"image",
			"metadata",
			"updated_at",
		}),
	}).Create(p).Error
}

func (r *gormRepository) UpsertPrice(p *Price) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_id",
			"active",
			"currency",
			"type",
			"unit_amount",
			"interval",
			"interval_count",
			"trial_period_days",
			"metadata",
			"updated_at",
		}),
	}).Create(p).Error
}

func (r *gormRepository) UpsertSubscription(sub *Subscription) error {
	return r.db.Omit("Price").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"customer_id",
			"status",
			"price_id",
			"quantity",
			"cancel_at_period_end",
			"cancel_at",
			"canceled_at",
			"current_period_start",
			"current_period_end",
			"created",
			"ended_at",
			"trial_start",
			"trial_end",
			"metadata",
			"updated_at",
		}),
	}).Create(sub).Error
}

func (r *gormRepository) GetCustomerByStripeID(stripeCustomerID string) (*Customer, error) {
	var c Customer
	if err := r.db.Where("stripe_customer_id = ?", stripeCustomerID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormRepository) GetCustomerByUserID(userID uint) (*Customer, error) {
	var c Customer
	if err := r.db.Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormRepository) CreateCustomer(c *Customer) error {
	return r.db.Create(c).Error
}

func (r *gormRepository) GetPrice(id string) (*Price, error) {
	var p Price
	if err := r.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) GetCheckoutSession(id string) (*CheckoutSession, error) {
	var cs CheckoutSession
	if err := r.db.Where("id = ?", id).First(&cs).Error; err != nil {
		return nil, err
	}
	return &cs, nil
}

// MarkCheckoutFulfilled writes the fulfilled record with a conditional upsert:
// INSERT ... ON CONFLICT (id) DO UPDATE ... WHERE fulfilled = false. The
// false→true transition therefore happens at most once per session id; a
// caller that loses the race gets (false, nil) and must treat the session as
// already fulfilled.
func (r *gormRepository) MarkCheckoutFulfilled(cs *CheckoutSession) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "checkout_sessions", Name: "fulfilled"}, Value: false},
		}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"payment_status",
			"fulfilled",
			"fulfilled_at",
			"fulfillment_data",
			"mode",
			"amount_total",
			"currency",
			"customer_email",
			"updated_at",
		}),
	}).Create(cs)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRepository) ListActiveProducts() ([]Product, error) {
	var products []Product
	err := r.db.
		Where("active = ?", true).
		Preload("Prices", "active = ?", true).
		Order("name asc").
		Find(&products).Error
	return products, err
}

func (r *gormRepository) GetActiveSubscriptionForUser(userID uint) (*Subscription, error) {
	var sub Subscription
	err := r.db.
		Where("user_id = ? AND status IN ?", userID, []string{SubscriptionStatusActive, SubscriptionStatusTrialing}).
		Preload("Price").
		Preload("Price.Product").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
