package wizard

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"hogwarts.org/internal/artifact"
	"hogwarts.org/internal/system"
)

func TestPGStoreSaveClaimsArtifacts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("update wizards set name").
		WithArgs(int64(1), "Harry Potter").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("update artifacts set owner_id").
		WithArgs("01CLOAK", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := NewPGStore(db)
	w := Wizard{ID: 1, Name: "Harry Potter", Artifacts: []artifact.Artifact{{ID: "01CLOAK"}}}
	if err := store.Save(context.Background(), w); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGStoreSaveMissingWizardRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("update wizards set name").
		WithArgs(int64(9), "Nobody").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	store := NewPGStore(db)
	err = store.Save(context.Background(), Wizard{ID: 9, Name: "Nobody"})
	if !system.IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGStoreDeleteDisownsFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("update artifacts set owner_id=null").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("delete from wizards").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := NewPGStore(db)
	if err := store.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
