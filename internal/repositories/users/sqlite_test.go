package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/weighttracker/internal/common"
	"github.com/dmitrijs2005/weighttracker/internal/database"
	"github.com/dmitrijs2005/weighttracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := database.Open(context.Background(), database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db)
}

func alice() *models.User {
	return &models.User{Username: "alice", Secret: "c2VjcmV0", Salt: "c2FsdA=="}
}

func TestCreateAndGetCredential(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, alice()))

	c, err := r.GetCredential(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.Credential{Username: "alice", Secret: "c2VjcmV0", Salt: "c2FsdA=="}, c)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, alice()))

	other := alice()
	other.Secret = "different"
	err := r.Create(ctx, other)
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	c, err := r.GetCredential(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "c2VjcmV0", c.Secret, "first credential must survive")
}

func TestGetCredential_NotFound(t *testing.T) {
	r := setupRepo(t)

	c, err := r.GetCredential(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Nil(t, c)
}

func TestGet_DefaultsAndUpdates(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, alice()))

	u, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "", u.PhoneNumber)
	assert.Equal(t, 0, u.Goal)
	assert.False(t, u.SMSOptIn)

	require.NoError(t, r.SetPhoneNumber(ctx, "alice", "5551234567"))
	require.NoError(t, r.SetGoal(ctx, "alice", 150))
	require.NoError(t, r.SetSMSOptIn(ctx, "alice", true))

	u, err = r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "5551234567", u.PhoneNumber)
	assert.Equal(t, 150, u.Goal)
	assert.True(t, u.SMSOptIn)
}

func TestUpdates_UnknownUser(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.ErrorIs(t, r.SetGoal(ctx, "ghost", 1), common.ErrorNotFound)
	require.ErrorIs(t, r.SetPhoneNumber(ctx, "ghost", "5551234567"), common.ErrorNotFound)
	require.ErrorIs(t, r.SetSMSOptIn(ctx, "ghost", true), common.ErrorNotFound)

	_, err := r.Get(ctx, "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func newRepoWithMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), mock
}

func TestDriverErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		r, mock := newRepoWithMock(t)
		mock.ExpectExec(`(?s)INSERT\s+INTO\s+users`).
			WithArgs("alice", "c2VjcmV0", "c2FsdA==").
			WillReturnError(errors.New("disk full"))

		err := r.Create(ctx, alice())
		require.Error(t, err)
		assert.Regexp(t, regexp.MustCompile(`failed to create user: .*disk full`), err.Error())
	})

	t.Run("get credential", func(t *testing.T) {
		r, mock := newRepoWithMock(t)
		mock.ExpectQuery(`SELECT\s+username,\s*secret,\s*salt\s+FROM\s+users`).
			WithArgs("alice").
			WillReturnError(errors.New("io error"))

		_, err := r.GetCredential(ctx, "alice")
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorNotFound)
		assert.Contains(t, err.Error(), "failed to get credential")
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		r, mock := newRepoWithMock(t)
		mock.ExpectQuery(`SELECT`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := r.Get(ctx, "ghost")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("set goal", func(t *testing.T) {
		r, mock := newRepoWithMock(t)
		mock.ExpectExec(`UPDATE\s+users\s+SET\s+goal`).
			WithArgs(150, "alice").
			WillReturnError(errors.New("locked"))

		err := r.SetGoal(ctx, "alice", 150)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to set goal")
	})
}
