package user

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"hogwarts.org/internal/system"
)

func TestPGStoreFindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "password", "enabled", "roles"}).
		AddRow(int64(2), "harry", "$2a$12$hash", true, "user")
	mock.ExpectQuery("select id, username, password, enabled, roles from users where id").
		WithArgs(int64(2)).WillReturnRows(rows)

	store := NewPGStore(db)
	u, err := store.FindByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if u.Username != "harry" || !u.Enabled || u.Roles != "user" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGStoreFindByIDMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select id, username, password, enabled, roles from users where id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "enabled", "roles"}))

	store := NewPGStore(db)
	_, err = store.FindByID(context.Background(), 42)
	if !system.IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}
	if err.Error() != "Could not find user with Id 42 :(" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestPGStoreCreateReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("insert into users").
		WithArgs("luna", "hash", true, "user").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	store := NewPGStore(db)
	u := User{Username: "luna", Password: "hash", Enabled: true, Roles: "user"}
	if err := store.Create(context.Background(), &u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID != 7 {
		t.Fatalf("id = %d, want 7", u.ID)
	}
}

func TestPGStoreUpdateMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("update users set").
		WithArgs(int64(9), "nobody", "h", false, "user").
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewPGStore(db)
	err = store.Update(context.Background(), User{ID: 9, Username: "nobody", Password: "h", Roles: "user"})
	if !system.IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestPGStoreDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("delete from users where id").
		WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewPGStore(db)
	if err := store.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
