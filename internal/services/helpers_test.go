package services

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/weighttracker/internal/cryptox"
	"github.com/dmitrijs2005/weighttracker/internal/database"
	"github.com/dmitrijs2005/weighttracker/internal/logging"
	"github.com/dmitrijs2005/weighttracker/internal/models"
	"github.com/dmitrijs2005/weighttracker/internal/repositories/metadata"
	"github.com/dmitrijs2005/weighttracker/internal/repositories/repomanager"
	"github.com/dmitrijs2005/weighttracker/internal/session"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, phone, message string) error {
	return m.Called(ctx, phone, message).Error(0)
}

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) Export(ctx context.Context, username string, entries []models.EntryView) (string, error) {
	args := m.Called(ctx, username, entries)
	return args.String(0), args.Error(1)
}

type env struct {
	db       *sql.DB
	repos    *repomanager.SQLiteRepositoryManager
	sessions *session.Manager
	log      logging.Logger
	auth     AuthService
	weights  WeightService
	profile  ProfileService
	notifier *mockNotifier
	exporter *mockExporter
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := database.Open(context.Background(), database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	e := &env{
		db:       db,
		repos:    repomanager.NewSQLiteRepositoryManager(),
		log:      logging.NewSlogLoggerTo(&bytes.Buffer{}, "debug", false),
		notifier: &mockNotifier{},
		exporter: &mockExporter{},
	}
	e.sessions = session.NewManager(metadata.NewSQLiteRepository(db), time.Hour)
	e.auth = NewAuthService(db, e.repos, cryptox.NewGuard(), e.sessions, e.log)
	e.weights = NewWeightService(db, e.repos, e.notifier, e.exporter, e.log)
	e.profile = NewProfileService(db, e.repos, e.log)
	return e
}

func (e *env) register(t *testing.T, username string) {
	t.Helper()
	require.NoError(t, e.auth.Register(context.Background(), username, "hunter2", "hunter2"))
}
