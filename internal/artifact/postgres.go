package artifact

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hogwarts.org/internal/system"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const artifactColumns = `id, name, description, image_url, owner_id`

// FindAll lists artifacts in id order. limit <= 0 means no limit.
func (s *PGStore) FindAll(ctx context.Context, limit, offset int) ([]Artifact, error) {
	lim := sql.NullInt64{Int64: int64(limit), Valid: limit > 0}
	rows, err := s.db.QueryContext(ctx,
		`select `+artifactColumns+` from artifacts order by id asc limit $1 offset $2`,
		lim, offset)
	if err != nil {
		return nil, err
	}
	return collectArtifacts(rows)
}

func (s *PGStore) FindByID(ctx context.Context, id string) (Artifact, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+artifactColumns+` from artifacts where id=$1`, id)
	var a Artifact
	if err := row.Scan(&a.ID, &a.Name, &a.Description, &a.ImageURL, &a.OwnerID); err != nil {
		if err == sql.ErrNoRows {
			return Artifact{}, system.NotFound("artifact", id)
		}
		return Artifact{}, err
	}
	return a, nil
}

func (s *PGStore) FindByCriteria(ctx context.Context, c Criteria, limit, offset int) ([]Artifact, error) {
	where := []string{}
	args := []any{}
	if c.Name != "" {
		args = append(args, "%"+c.Name+"%")
		where = append(where, fmt.Sprintf("name ilike $%d", len(args)))
	}
	if c.Description != "" {
		args = append(args, "%"+c.Description+"%")
		where = append(where, fmt.Sprintf("description ilike $%d", len(args)))
	}
	q := `select ` + artifactColumns + ` from artifacts`
	if len(where) > 0 {
		q += ` where ` + strings.Join(where, " and ")
	}
	args = append(args, limit)
	q += fmt.Sprintf(" order by id asc limit $%d", len(args))
	args = append(args, offset)
	q += fmt.Sprintf(" offset $%d", len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectArtifacts(rows)
}

func (s *PGStore) FindByOwner(ctx context.Context, ownerID int64) ([]Artifact, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+artifactColumns+` from artifacts where owner_id=$1 order by id asc`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectArtifacts(rows)
}

func (s *PGStore) Create(ctx context.Context, a *Artifact) error {
	_, err := s.db.ExecContext(ctx,
		`insert into artifacts(id, name, description, image_url, owner_id) values($1,$2,$3,$4,$5)`,
		a.ID, a.Name, a.Description, a.ImageURL, a.OwnerID)
	return err
}

// Update rewrites the descriptive fields only; ownership moves through
// SetOwner.
func (s *PGStore) Update(ctx context.Context, a Artifact) error {
	res, err := s.db.ExecContext(ctx,
		`update artifacts set name=$2, description=$3, image_url=$4 where id=$1`,
		a.ID, a.Name, a.Description, a.ImageURL)
	if err != nil {
		return err
	}
	return requireRow(res, "artifact", a.ID)
}

func (s *PGStore) SetOwner(ctx context.Context, id string, ownerID *int64) error {
	res, err := s.db.ExecContext(ctx,
		`update artifacts set owner_id=$2 where id=$1`, id, ownerID)
	if err != nil {
		return err
	}
	return requireRow(res, "artifact", id)
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from artifacts where id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "artifact", id)
}

func collectArtifacts(rows *sql.Rows) ([]Artifact, error) {
	defer rows.Close()
	var artifacts []Artifact
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.ImageURL, &a.OwnerID); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

func requireRow(res sql.Result, kind string, id any) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return system.NotFound(kind, id)
	}
	return nil
}
