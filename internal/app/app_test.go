package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/dmitrijs2005/weighttracker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabasePath = filepath.Join(t.TempDir(), "data", "wt.db")
	c.LogLevel = "debug"
	return c
}

func TestNewApp_RunsShellToExit(t *testing.T) {
	c := testConfig(t)
	in := strings.NewReader("help\nexit\n")
	var out, logs bytes.Buffer

	a, err := NewApp(context.Background(), c, in, &out, &logs)
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), "Available commands: register, login, exit")
	assert.Contains(t, out.String(), "Bye!")
	assert.Contains(t, logs.String(), "application initialized")
	assert.FileExists(t, c.DatabasePath)
}

func TestNewApp_UnknownLogBackend(t *testing.T) {
	c := testConfig(t)
	c.LogBackend = "syslog"

	_, err := NewApp(context.Background(), c, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestNewApp_WithAWSBackends(t *testing.T) {
	c := testConfig(t)
	c.LogBackend = "zerolog"
	c.SMSEnabled = true
	c.AWSAccessKeyID = "test"
	c.AWSSecretAccessKey = "test"
	c.AWSEndpoint = "http://127.0.0.1:4566"
	c.BackupBucket = "backups"

	a, err := NewApp(context.Background(), c, strings.NewReader("exit\n"), &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))
}

// blockingReader never returns, like an idle terminal.
type blockingReader struct{ ch chan struct{} }

func (b blockingReader) Read([]byte) (int, error) {
	<-b.ch
	return 0, nil
}

func TestRun_StopsOnCancel(t *testing.T) {
	c := testConfig(t)
	r := blockingReader{ch: make(chan struct{})}
	defer close(r.ch)

	a, err := NewApp(context.Background(), c, r, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- a.Run(ctx) }()

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSignalHandler_CancelsOnSignal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := (&App{}).initSignalHandler(ctx, cancel)
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled by SIGINT")
	}
}

func TestSignalHandler_StopReleasesWatcher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := (&App{}).initSignalHandler(ctx, cancel)

	stopped := make(chan struct{})
	go func() {
		stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("stop did not return")
	}
	assert.NoError(t, ctx.Err(), "stop must not cancel the context")
}
