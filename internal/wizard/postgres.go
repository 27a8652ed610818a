package wizard

import (
	"context"
	"database/sql"

	"hogwarts.org/internal/artifact"
	"hogwarts.org/internal/system"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL. Artifact rows are loaded
// through the artifact store so both sides agree on the column shape.
type PGStore struct {
	db        *sql.DB
	artifacts *artifact.PGStore
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db, artifacts: artifact.NewPGStore(db)}
}

func (s *PGStore) FindAll(ctx context.Context) ([]Wizard, error) {
	rows, err := s.db.QueryContext(ctx, `select id, name from wizards order by id asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wizards []Wizard
	for rows.Next() {
		var w Wizard
		if err := rows.Scan(&w.ID, &w.Name); err != nil {
			return nil, err
		}
		wizards = append(wizards, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range wizards {
		owned, err := s.artifacts.FindByOwner(ctx, wizards[i].ID)
		if err != nil {
			return nil, err
		}
		wizards[i].Artifacts = owned
	}
	return wizards, nil
}

func (s *PGStore) FindByID(ctx context.Context, id int64) (Wizard, error) {
	var w Wizard
	err := s.db.QueryRowContext(ctx, `select id, name from wizards where id=$1`, id).
		Scan(&w.ID, &w.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return Wizard{}, system.NotFound("wizard", id)
		}
		return Wizard{}, err
	}
	owned, err := s.artifacts.FindByOwner(ctx, id)
	if err != nil {
		return Wizard{}, err
	}
	w.Artifacts = owned
	return w, nil
}

func (s *PGStore) Create(ctx context.Context, w *Wizard) error {
	return s.db.QueryRowContext(ctx,
		`insert into wizards(name) values($1) returning id`, w.Name).Scan(&w.ID)
}

func (s *PGStore) Save(ctx context.Context, w Wizard) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `update wizards set name=$2 where id=$1`, w.ID, w.Name)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return system.NotFound("wizard", w.ID)
	}
	for _, a := range w.Artifacts {
		if _, err := tx.ExecContext(ctx,
			`update artifacts set owner_id=$2 where id=$1`, a.ID, w.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`update artifacts set owner_id=null where owner_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `delete from wizards where id=$1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return system.NotFound("wizard", id)
	}
	return tx.Commit()
}
