package users

import (
	"errors"
	"regexp"
	"testing"

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

func TestGetByEmailIsIndexedLookup(t *testing.T) {
	gdb, mock := newTestDB(t)
	dir := NewDirectory(gdb)

	rows := sqlmock.NewRows([]string{"id", "email", "name", "role"}).
		AddRow(7, "user@example.com", "User", "user")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnRows(rows)

	u, err := dir.GetByEmail("user@example.com")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if u.ID != 7 {
		t.Fatalf("unexpected user id: %d", u.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByEmailNotFound(t *testing.T) {
	gdb, mock := newTestDB(t)
	dir := NewDirectory(gdb)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := dir.GetByEmail("nobody@example.com")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGrantRole(t *testing.T) {
	gdb, mock := newTestDB(t)
	dir := NewDirectory(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET .*"role"=.* WHERE id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := dir.GrantRole(7, "member"); err != nil {
		t.Fatalf("GrantRole returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
