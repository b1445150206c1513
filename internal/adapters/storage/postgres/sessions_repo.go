package postgres

import (
	"context"
	"database/sql"
	"strings"

	"farm-records/internal/farmapi"
	"farm-records/internal/session"
)

// Esquema esperado:
//
//	CREATE TABLE sessions (
//	    id         TEXT PRIMARY KEY,
//	    token      TEXT NOT NULL,
//	    user_id    TEXT,
//	    user_name  TEXT,
//	    user_email TEXT,
//	    has_user   BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

func (r *SessionsRepo) Save(ctx context.Context, s session.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (
			id, token,
			user_id, user_name, user_email, has_user,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			token      = EXCLUDED.token,
			user_id    = EXCLUDED.user_id,
			user_name  = EXCLUDED.user_name,
			user_email = EXCLUDED.user_email,
			has_user   = EXCLUDED.has_user
	`,
		s.ID,
		s.Token,
		s.User.ID,
		s.User.Name,
		s.User.Email,
		s.HasUser,
		s.CreatedAt,
	)
	return err
}

func (r *SessionsRepo) Get(ctx context.Context, id string) (session.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return session.Session{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, token,
			user_id, user_name, user_email, has_user,
			created_at
		FROM sessions
		WHERE id = $1
	`, id)

	var s session.Session
	var uid, uname, uemail sql.NullString
	if err := row.Scan(
		&s.ID,
		&s.Token,
		&uid,
		&uname,
		&uemail,
		&s.HasUser,
		&s.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return session.Session{}, ErrNotFound
		}
		return session.Session{}, err
	}

	s.User = farmapi.User{
		ID:    uid.String,
		Name:  uname.String,
		Email: uemail.String,
	}

	return s, nil
}

func (r *SessionsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}
