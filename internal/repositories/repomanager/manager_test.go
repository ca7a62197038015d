package repomanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/weighttracker/internal/database"
	"github.com/dmitrijs2005/weighttracker/internal/dbx"
	"github.com/dmitrijs2005/weighttracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactories_ReturnRepos(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var m RepositoryManager = NewSQLiteRepositoryManager()
	assert.NotNil(t, m.Users(db))
	assert.NotNil(t, m.Weights(db))
	assert.NotNil(t, m.Metadata(db))
}

func TestReposShareTransaction(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	m := NewSQLiteRepositoryManager()
	boom := errors.New("boom")

	err = dbx.WithTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := m.Users(tx).Create(ctx, &models.User{Username: "alice", Secret: "s", Salt: "x"}); err != nil {
			return err
		}
		e := &models.WeightEntry{Username: "alice", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Weight: 180}
		if err := m.Weights(tx).Add(ctx, e); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = m.Users(db).Get(ctx, "alice")
	require.Error(t, err, "rolled back user must not exist")
}
