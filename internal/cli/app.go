package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/weighttracker/internal/logging"
	"github.com/dmitrijs2005/weighttracker/internal/models"
	"github.com/dmitrijs2005/weighttracker/internal/services"
)

// getSimpleText and getPassword are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

type App struct {
	authService    services.AuthService
	weightService  services.WeightService
	profileService services.ProfileService
	log            logging.Logger

	reader *bufio.Reader
	out    io.Writer

	userName string
	// lastList backs the entry numbers accepted by edit and delete.
	lastList []models.EntryView
}

func NewApp(auth services.AuthService, weights services.WeightService, profile services.ProfileService, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		authService:    auth,
		weightService:  weights,
		profileService: profile,
		log:            log,
		reader:         bufio.NewReader(in),
		out:            out,
	}
}

// Run resumes a cached session if possible and then serves commands until
// the user quits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.println("Welcome to weighttracker (type 'help' for commands)")

	s, err := a.authService.Resume(ctx)
	switch {
	case err == nil:
		a.userName = s.Username
		a.println("Welcome back,", s.Username)
	case errors.Is(err, services.ErrNoSession):
	default:
		a.log.Debug(ctx, "session not resumed", "error", err)
	}

	return runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) println(args ...any) {
	_, _ = printlnFn(a.out, args...)
}

// reportError prints msg and logs err unless it is an expected user error.
func (a *App) reportError(ctx context.Context, msg string, err error) {
	a.println(msg)
	a.log.Debug(ctx, msg, "user", a.userName, "error", err)
}
