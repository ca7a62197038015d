// Package app wires configuration, storage, services and the interactive
// shell together and runs them until the user quits or a signal arrives.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/weighttracker/internal/awsx"
	"github.com/dmitrijs2005/weighttracker/internal/backup"
	"github.com/dmitrijs2005/weighttracker/internal/cli"
	"github.com/dmitrijs2005/weighttracker/internal/config"
	"github.com/dmitrijs2005/weighttracker/internal/cryptox"
	"github.com/dmitrijs2005/weighttracker/internal/database"
	"github.com/dmitrijs2005/weighttracker/internal/logging"
	"github.com/dmitrijs2005/weighttracker/internal/notify"
	"github.com/dmitrijs2005/weighttracker/internal/repositories/repomanager"
	"github.com/dmitrijs2005/weighttracker/internal/services"
	"github.com/dmitrijs2005/weighttracker/internal/session"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	shell  *cli.App
}

// NewApp opens the database and builds every service. Logs go to logOut,
// the shell talks over in and out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger, err := logging.New(logOut, logging.Options{
		Backend: c.LogBackend,
		Level:   c.LogLevel,
		JSON:    c.LogJSON,
	})
	if err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	awsOpts := awsx.Options{
		Region:          c.AWSRegion,
		AccessKeyID:     c.AWSAccessKeyID,
		SecretAccessKey: c.AWSSecretAccessKey,
		Endpoint:        c.AWSEndpoint,
	}

	notifier, err := newNotifier(ctx, c, awsOpts, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	exporter, err := backup.NewExporterFromConfig(ctx, awsOpts, c.BackupBucket, c.BackupPrefix)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("backup init error: %w", err)
	}

	repos := repomanager.NewSQLiteRepositoryManager()
	sessions := session.NewManager(repos.Metadata(db), c.SessionTTL)

	auth := services.NewAuthService(db, repos, cryptox.NewGuard(), sessions, logger)
	weights := services.NewWeightService(db, repos, notifier, exporter, logger)
	profile := services.NewProfileService(db, repos, logger)

	logger.Debug(ctx, "application initialized",
		"db", c.DatabasePath, "sms", c.SMSEnabled, "backup", exporter.Enabled())

	return &App{
		config: c,
		logger: logger,
		db:     db,
		shell:  cli.NewApp(auth, weights, profile, logger, in, out),
	}, nil
}

func newNotifier(ctx context.Context, c *config.Config, o awsx.Options, logger logging.Logger) (notify.Notifier, error) {
	if !c.SMSEnabled {
		return notify.NewLogNotifier(logger), nil
	}
	n, err := notify.NewSNSNotifierFromConfig(ctx, o, logger)
	if err != nil {
		return nil, fmt.Errorf("sms init error: %w", err)
	}
	return n, nil
}

// initSignalHandler cancels on SIGINT, SIGTERM or SIGQUIT until the returned
// stop func is called. stop unregisters the signals and waits for the
// watcher goroutine to exit.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	quit := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		case <-quit:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(quit)
		<-exited
	}
}

// Run serves the shell until it returns or ctx is cancelled, then closes the
// database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := app.initSignalHandler(ctx, cancel)
	defer stop()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "closing database", "error", err)
		}
	}()

	done := make(chan error, 1)
	go func() {
		done <- app.shell.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		app.logger.Info(context.Background(), "shutting down")
		return nil
	}
}
