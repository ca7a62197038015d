package weights

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/weighttracker/internal/common"
	"github.com/dmitrijs2005/weighttracker/internal/dbx"
	"github.com/dmitrijs2005/weighttracker/internal/models"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, e *models.WeightEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO weights (id, username, entry_date, weight)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (username, entry_date, weight) DO NOTHING
	`, e.ID, e.Username, e.Date.Format(models.StorageDateLayout), e.Weight)
	if err != nil {
		return fmt.Errorf("failed to add weight: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to add weight: %w", err)
	}
	if n == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, username string) ([]models.WeightEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, entry_date, weight
		FROM weights
		WHERE username = ?
		ORDER BY entry_date DESC, created_at DESC, weight DESC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list weights: %w", err)
	}
	defer rows.Close()

	var result []models.WeightEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weight row: %w", err)
		}
		result = append(result, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weight rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, username, id string) (*models.WeightEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, entry_date, weight
		FROM weights
		WHERE username = ? AND id = ?
	`, username, id)

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get weight: %w", err)
	}
	return e, nil
}

// Update skips the row on a uniqueness conflict and then tells the two
// zero-row outcomes apart by checking whether the entry exists.
func (r *SQLiteRepository) Update(ctx context.Context, e *models.WeightEntry) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE OR IGNORE weights
		SET entry_date = ?, weight = ?
		WHERE username = ? AND id = ?
	`, e.Date.Format(models.StorageDateLayout), e.Weight, e.Username, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update weight: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update weight: %w", err)
	}
	if n > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, e.Username, e.ID); err != nil {
		return err
	}
	return common.ErrorAlreadyExists
}

func (r *SQLiteRepository) Delete(ctx context.Context, username, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM weights WHERE username = ? AND id = ?`, username, id)
	if err != nil {
		return fmt.Errorf("failed to delete weight: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete weight: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, username string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM weights WHERE username = ?`, username)
	if err != nil {
		return 0, fmt.Errorf("failed to clear weights: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to clear weights: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.WeightEntry, error) {
	var (
		e    models.WeightEntry
		date string
	)
	if err := s.Scan(&e.ID, &e.Username, &date, &e.Weight); err != nil {
		return nil, err
	}

	d, err := time.Parse(models.StorageDateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("bad entry_date %q: %w", date, err)
	}
	e.Date = d
	return &e, nil
}
