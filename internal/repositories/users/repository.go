// Package users persists accounts: credentials, phone number, goal and the
// SMS opt-in flag.
package users

import (
	"context"

	"github.com/dmitrijs2005/weighttracker/internal/models"
)

type Repository interface {
	// Create inserts a new user. An existing username yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) error

	// GetCredential returns the stored secret and salt, or
	// common.ErrorNotFound.
	GetCredential(ctx context.Context, username string) (*models.Credential, error)

	// Get returns the full user row, or common.ErrorNotFound.
	Get(ctx context.Context, username string) (*models.User, error)

	SetPhoneNumber(ctx context.Context, username, phone string) error
	SetGoal(ctx context.Context, username string, goal int) error
	SetSMSOptIn(ctx context.Context, username string, optIn bool) error
}
