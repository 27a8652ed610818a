package user

import (
	"context"
	"database/sql"

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

const userColumns = `id, username, password, enabled, roles`

func (s *PGStore) FindAll(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+userColumns+` from users order by id asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.Enabled, &u.Roles); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *PGStore) FindByID(ctx context.Context, id int64) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where id=$1`, id)
	return scanUser(row, "user", id)
}

func (s *PGStore) FindByUsername(ctx context.Context, username string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where username=$1`, username)
	return scanUser(row, "user", username)
}

func (s *PGStore) Create(ctx context.Context, u *User) error {
	return s.db.QueryRowContext(ctx,
		`insert into users(username, password, enabled, roles) values($1,$2,$3,$4) returning id`,
		u.Username, u.Password, u.Enabled, u.Roles,
	).Scan(&u.ID)
}

func (s *PGStore) Update(ctx context.Context, u User) error {
	res, err := s.db.ExecContext(ctx,
		`update users set username=$2, password=$3, enabled=$4, roles=$5 where id=$1`,
		u.ID, u.Username, u.Password, u.Enabled, u.Roles,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return system.NotFound("user", u.ID)
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from users where id=$1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return system.NotFound("user", id)
	}
	return nil
}

func scanUser(row *sql.Row, kind string, id any) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Enabled, &u.Roles); err != nil {
		if err == sql.ErrNoRows {
			return User{}, system.NotFound(kind, id)
		}
		return User{}, err
	}
	return u, nil
}
