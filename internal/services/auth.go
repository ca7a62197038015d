// Package services holds the application logic behind the REPL commands:
// accounts and sessions, weight entries and the user profile.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/weighttracker/internal/common"
	"github.com/dmitrijs2005/weighttracker/internal/cryptox"
	"github.com/dmitrijs2005/weighttracker/internal/logging"
	"github.com/dmitrijs2005/weighttracker/internal/models"
	"github.com/dmitrijs2005/weighttracker/internal/repositories/repomanager"
	"github.com/dmitrijs2005/weighttracker/internal/session"
)

// Session is a logged-in user.
type Session struct {
	Username string
	Token    string
}

// AuthService manages accounts and the locally cached session.
type AuthService interface {
	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, username, password, confirm string) error
	// Login checks the password and caches a new session token.
	Login(ctx context.Context, username, password string) (*Session, error)
	// Resume restores the cached session, or returns ErrNoSession.
	Resume(ctx context.Context) (*Session, error)
	Logout(ctx context.Context) error
}

type authService struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	guard    *cryptox.Guard
	sessions *session.Manager
	log      logging.Logger
}

func NewAuthService(db *sql.DB, repos repomanager.RepositoryManager, guard *cryptox.Guard, sessions *session.Manager, log logging.Logger) AuthService {
	return &authService{db: db, repos: repos, guard: guard, sessions: sessions, log: log}
}

// NormalizeUsername lower-cases and trims a username.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validUsername(u string) bool {
	return u != "" && u != "null"
}

func (a *authService) Register(ctx context.Context, username, password, confirm string) error {
	username = NormalizeUsername(username)
	password = strings.TrimSpace(password)
	confirm = strings.TrimSpace(confirm)

	if !validUsername(username) {
		return ErrEmptyUsername
	}
	if password == "" {
		return ErrEmptyPassword
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	salt, err := a.guard.GenerateSalt()
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}

	key := a.guard.DeriveKey(password, salt)
	defer common.WipeByteArray(key)

	secret, err := a.guard.Encrypt(password, key)
	if err != nil {
		return fmt.Errorf("encrypt password: %w", err)
	}

	err = a.repos.Users(a.db).Create(ctx, &models.User{Username: username, Secret: secret, Salt: salt})
	if errors.Is(err, common.ErrorAlreadyExists) {
		return ErrUsernameTaken
	}
	if err != nil {
		return err
	}

	a.log.Info(ctx, "account created", "user", username)
	return nil
}

func (a *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = NormalizeUsername(username)
	password = strings.TrimSpace(password)

	if !validUsername(username) {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	cred, err := a.repos.Users(a.db).GetCredential(ctx, username)
	if errors.Is(err, common.ErrorNotFound) {
		a.log.Debug(ctx, "login for unknown user", "user", username)
		return nil, common.ErrorUnauthorized
	}
	if err != nil {
		return nil, err
	}

	ok, err := a.guard.Verify(password, cred.Salt, cred.Secret)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		a.log.Debug(ctx, "wrong password", "user", username)
		return nil, common.ErrorUnauthorized
	}

	token, err := a.sessions.Issue(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	if err := a.sessions.Save(ctx, token); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	a.log.Info(ctx, "logged in", "user", username)
	return &Session{Username: username, Token: token}, nil
}

func (a *authService) Resume(ctx context.Context) (*Session, error) {
	token, err := a.sessions.Load(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	username, err := a.sessions.Parse(ctx, token)
	if err != nil {
		a.log.Debug(ctx, "discarding cached session", "error", err)
		if cerr := a.sessions.Clear(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}

	if _, err := a.repos.Users(a.db).Get(ctx, username); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			if cerr := a.sessions.Clear(ctx); cerr != nil {
				return nil, cerr
			}
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	return &Session{Username: username, Token: token}, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}
