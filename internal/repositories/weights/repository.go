// Package weights stores dated weight measurements per user.
package weights

import (
	"context"

	"github.com/dmitrijs2005/weighttracker/internal/models"
)

type Repository interface {
	// Add stores e, assigning a new ID when e.ID is empty. A row with the same
	// (username, date, weight) yields common.ErrorAlreadyExists.
	Add(ctx context.Context, e *models.WeightEntry) error
	// ListByUser returns entries newest first.
	ListByUser(ctx context.Context, username string) ([]models.WeightEntry, error)
	GetByID(ctx context.Context, username, id string) (*models.WeightEntry, error)
	// Update rewrites date and weight of an existing entry.
	Update(ctx context.Context, e *models.WeightEntry) error
	Delete(ctx context.Context, username, id string) error
	// Clear removes every entry of username and returns how many were removed.
	Clear(ctx context.Context, username string) (int64, error)
}
