package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/weighttracker/internal/common"
	"github.com/dmitrijs2005/weighttracker/internal/services"
)

func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}

	err = a.authService.Register(ctx, userName, password, confirm)
	switch {
	case err == nil:
		a.println("Account Created!")
	case errors.Is(err, services.ErrEmptyUsername):
		a.println("Please Enter A Username")
	case errors.Is(err, services.ErrEmptyPassword):
		a.println("Please Enter A Password")
	case errors.Is(err, services.ErrPasswordMismatch):
		a.println("Passwords Do Not Match!")
	case errors.Is(err, services.ErrUsernameTaken):
		a.println("Username Already Taken! Try Again")
	default:
		a.println("Account could not be created")
		a.log.Error(ctx, "register failed", "error", err)
	}
	return err
}

func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	s, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrorValidation) {
			a.println("Account Information Invalid")
		} else {
			a.println("Login failed")
			a.log.Error(ctx, "login failed", "error", err)
		}
		return err
	}

	a.userName = s.Username
	a.lastList = nil
	a.println("Welcome,", s.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.reportError(ctx, "Logout failed", err)
		return err
	}
	a.userName = ""
	a.lastList = nil
	a.println("Logged out")
	return nil
}
