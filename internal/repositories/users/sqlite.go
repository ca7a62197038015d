package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/weighttracker/internal/common"
	"github.com/dmitrijs2005/weighttracker/internal/dbx"
	"github.com/dmitrijs2005/weighttracker/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, secret, salt)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO NOTHING
	`, user.Username, user.Secret, user.Salt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if n == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

func (r *SQLiteRepository) GetCredential(ctx context.Context, username string) (*models.Credential, error) {
	c := &models.Credential{}
	err := r.db.QueryRowContext(ctx,
		`SELECT username, secret, salt FROM users WHERE username = ?`, username,
	).Scan(&c.Username, &c.Secret, &c.Salt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT username, secret, salt, phone_number, goal, sms_opt_in
		FROM users WHERE username = ?
	`, username).Scan(&u.Username, &u.Secret, &u.Salt, &u.PhoneNumber, &u.Goal, &u.SMSOptIn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) SetPhoneNumber(ctx context.Context, username, phone string) error {
	return r.update(ctx, "phone number", `UPDATE users SET phone_number = ? WHERE username = ?`, phone, username)
}

func (r *SQLiteRepository) SetGoal(ctx context.Context, username string, goal int) error {
	return r.update(ctx, "goal", `UPDATE users SET goal = ? WHERE username = ?`, goal, username)
}

func (r *SQLiteRepository) SetSMSOptIn(ctx context.Context, username string, optIn bool) error {
	return r.update(ctx, "sms opt-in", `UPDATE users SET sms_opt_in = ? WHERE username = ?`, optIn, username)
}

// update runs a single-row UPDATE; zero affected rows means the user is absent.
func (r *SQLiteRepository) update(ctx context.Context, what, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", what, err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
