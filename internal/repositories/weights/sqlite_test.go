package weights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/weighttracker/internal/common"
	"github.com/dmitrijs2005/weighttracker/internal/database"
	"github.com/dmitrijs2005/weighttracker/internal/models"
	"github.com/dmitrijs2005/weighttracker/internal/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T, usernames ...string) *SQLiteRepository {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ur := users.NewSQLiteRepository(db)
	for _, u := range usernames {
		require.NoError(t, ur.Create(ctx, &models.User{Username: u, Secret: "s", Salt: "x"}))
	}
	return NewSQLiteRepository(db)
}

func day(s string) time.Time {
	d, err := time.Parse(models.DisplayDateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAdd_AssignsIDAndLists(t *testing.T) {
	r := setupRepo(t, "alice")
	ctx := context.Background()

	e := &models.WeightEntry{Username: "alice", Date: day("03/01/24"), Weight: 180}
	require.NoError(t, r.Add(ctx, e))
	assert.NotEmpty(t, e.ID)

	list, err := r.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *e, list[0])
}

func TestAdd_Duplicate(t *testing.T) {
	r := setupRepo(t, "alice")
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, &models.WeightEntry{Username: "alice", Date: day("03/01/24"), Weight: 180}))
	err := r.Add(ctx, &models.WeightEntry{Username: "alice", Date: day("03/01/24"), Weight: 180})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	// same day, different weight is fine
	require.NoError(t, r.Add(ctx, &models.WeightEntry{Username: "alice", Date: day("03/01/24"), Weight: 179}))
}

func TestAdd_UnknownUserViolatesForeignKey(t *testing.T) {
	r := setupRepo(t)

	err := r.Add(context.Background(), &models.WeightEntry{Username: "ghost", Date: day("03/01/24"), Weight: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add weight")
}

func TestListByUser_NewestFirstAndScoped(t *testing.T) {
	r := setupRepo(t, "alice", "bob")
	ctx := context.Background()

	// entered out of order and across a year boundary
	for _, d := range []string{"12/30/23", "01/02/24", "06/15/23"} {
		require.NoError(t, r.Add(ctx, &models.WeightEntry{Username: "alice", Date: day(d), Weight: 170}))
	}
	require.NoError(t, r.Add(ctx, &models.WeightEntry{Username: "bob", Date: day("01/05/24"), Weight: 200}))

	list, err := r.ListByUser(ctx, "alice")
	require.NoError(t, err)

	var got []string
	for _, e := range list {
		got = append(got, e.DisplayDate())
	}
	assert.Equal(t, []string{"01/02/24", "12/30/23", "06/15/23"}, got)
}

func TestListByUser_Empty(t *testing.T) {
	r := setupRepo(t, "alice")

	list, err := r.ListByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetByID_ScopedToOwner(t *testing.T) {
	r := setupRepo(t, "alice", "bob")
	ctx := context.Background()

	e := &models.WeightEntry{Username: "alice", Date: day("03/01/24"), Weight: 180}
	require.NoError(t, r.Add(ctx, e))

	got, err := r.GetByID(ctx, "alice", e.ID)
	require.NoError(t, err)
	assert.Equal(t, 180, got.Weight)

	_, err = r.GetByID(ctx, "bob", e.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate(t *testing.T) {
	r := setupRepo(t, "alice")
	ctx := context.Background()

	a := &models.WeightEntry{Username: "alice", Date: day("03/01/24"), Weight: 180}
	b := &models.WeightEntry{Username: "alice", Date: day("03/02/24"), Weight: 179}
	require.NoError(t, r.Add(ctx, a))
	require.NoError(t, r.Add(ctx, b))

	t.Run("ok", func(t *testing.T) {
		upd := &models.WeightEntry{ID: a.ID, Username: "alice", Date: day("03/03/24"), Weight: 178}
		require.NoError(t, r.Update(ctx, upd))

		got, err := r.GetByID(ctx, "alice", a.ID)
		require.NoError(t, err)
		assert.Equal(t, *upd, *got)
	})

	t.Run("collides with another entry", func(t *testing.T) {
		upd := &models.WeightEntry{ID: a.ID, Username: "alice", Date: b.Date, Weight: b.Weight}
		require.ErrorIs(t, r.Update(ctx, upd), common.ErrorAlreadyExists)
	})

	t.Run("missing", func(t *testing.T) {
		upd := &models.WeightEntry{ID: "nope", Username: "alice", Date: day("03/04/24"), Weight: 1}
		require.ErrorIs(t, r.Update(ctx, upd), common.ErrorNotFound)
	})
}

func TestDeleteAndClear(t *testing.T) {
	r := setupRepo(t, "alice", "bob")
	ctx := context.Background()

	a := &models.WeightEntry{Username: "alice", Date: day("03/01/24"), Weight: 180}
	require.NoError(t, r.Add(ctx, a))
	require.NoError(t, r.Add(ctx, &models.WeightEntry{Username: "alice", Date: day("03/02/24"), Weight: 181}))
	require.NoError(t, r.Add(ctx, &models.WeightEntry{Username: "alice", Date: day("03/03/24"), Weight: 182}))
	require.NoError(t, r.Add(ctx, &models.WeightEntry{Username: "bob", Date: day("03/01/24"), Weight: 200}))

	require.NoError(t, r.Delete(ctx, "alice", a.ID))
	require.ErrorIs(t, r.Delete(ctx, "alice", a.ID), common.ErrorNotFound)

	n, err := r.Clear(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	list, err := r.ListByUser(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, list, 1, "other users keep their entries")
}

func TestListByUser_DriverErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := NewSQLiteRepository(db)

	t.Run("query", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WithArgs("alice").WillReturnError(errors.New("boom"))
		_, err := r.ListByUser(context.Background(), "alice")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list weights")
	})

	t.Run("bad date in row", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "entry_date", "weight"}).
			AddRow("1", "alice", "not-a-date", 170)
		mock.ExpectQuery("SELECT").WithArgs("alice").WillReturnRows(rows)

		_, err := r.ListByUser(context.Background(), "alice")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to scan weight row")
	})

	t.Run("row iteration", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "entry_date", "weight"}).
			AddRow("1", "alice", "2024-03-01", 170).
			RowError(0, errors.New("iter"))
		mock.ExpectQuery("SELECT").WithArgs("alice").WillReturnRows(rows)

		_, err := r.ListByUser(context.Background(), "alice")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to iterate weight rows")
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClear_DriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM weights").WithArgs("alice").WillReturnError(errors.New("locked"))

	n, err := NewSQLiteRepository(db).Clear(context.Background(), "alice")
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "failed to clear weights")
}
