package billing

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return gdb, mock
}

func TestGetCustomerByStripeID(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewRepository(gdb)

	rows := sqlmock.NewRows([]string{"user_id", "stripe_customer_id"}).
		AddRow(7, "cus_123")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "customers" WHERE stripe_customer_id = $1`)).
		WillReturnRows(rows)

	cust, err := repo.GetCustomerByStripeID("cus_123")
	if err != nil {
		t.Fatalf("GetCustomerByStripeID returned error: %v", err)
	}
	if cust.UserID != 7 {
		t.Fatalf("unexpected user id: %d", cust.UserID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetCustomerByStripeIDNotFound(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewRepository(gdb)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "customers" WHERE stripe_customer_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "stripe_customer_id"}))

	_, err := repo.GetCustomerByStripeID("cus_missing")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUpsertSubscriptionReplacesWholeRecord(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "subscriptions" .* ON CONFLICT \("id"\) DO UPDATE SET .*"status"=.*"price_id"=`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	end := time.Now().Add(30 * 24 * time.Hour)
	err := repo.UpsertSubscription(&Subscription{
		ID:               "sub_1",
		UserID:           7,
		CustomerID:       "cus_123",
		Status:           SubscriptionStatusActive,
		PriceID:          "price_1",
		Quantity:         1,
		CurrentPeriodEnd: &end,
		Metadata:         "{}",
	})
	if err != nil {
		t.Fatalf("UpsertSubscription returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func markPattern() string {
	return `INSERT INTO "checkout_sessions" .* ON CONFLICT \("id"\) DO UPDATE SET .* WHERE "checkout_sessions"\."fulfilled" = `
}

func fulfilledSession() *CheckoutSession {
	now := time.Now().UTC()
	return &CheckoutSession{
		ID:              "cs_1",
		UserID:          7,
		PaymentStatus:   "paid",
		Fulfilled:       true,
		FulfilledAt:     &now,
		FulfillmentData: `{"actions_performed":["subscription_activated"]}`,
		Mode:            "subscription",
		AmountTotal:     990,
		Currency:        "eur",
		CustomerEmail:   "user@example.com",
	}
}

func TestMarkCheckoutFulfilledWins(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(markPattern()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	won, err := repo.MarkCheckoutFulfilled(fulfilledSession())
	if err != nil {
		t.Fatalf("MarkCheckoutFulfilled returned error: %v", err)
	}
	if !won {
		t.Fatal("expected the conditional upsert to win")
	}
}

func TestMarkCheckoutFulfilledLosesRace(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewRepository(gdb)

	// conflict hit with fulfilled already true: no row is touched
	mock.ExpectBegin()
	mock.ExpectExec(markPattern()).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	won, err := repo.MarkCheckoutFulfilled(fulfilledSession())
	if err != nil {
		t.Fatalf("MarkCheckoutFulfilled returned error: %v", err)
	}
	if won {
		t.Fatal("expected the conditional upsert to lose against a fulfilled row")
	}
}
