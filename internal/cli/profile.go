package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/weighttracker/internal/services"
)

func (a *App) Goal(ctx context.Context, args []string) error {
	goal, err := a.argOrPrompt(args, "Enter goal weight (0 removes it)")
	if err != nil {
		return err
	}

	if err := a.profileService.SetGoal(ctx, a.userName, goal); err != nil {
		if errors.Is(err, services.ErrInvalidGoal) {
			a.println("Please enter a valid goal")
		} else {
			a.reportError(ctx, "Error adding your goal", err)
		}
		return err
	}

	a.lastList = nil
	a.println("Goal set")
	return nil
}

func (a *App) Phone(ctx context.Context, args []string) error {
	phone, err := a.argOrPrompt(args, "Enter a 10-digit phone number")
	if err != nil {
		return err
	}

	if err := a.profileService.SetPhoneNumber(ctx, a.userName, phone); err != nil {
		if errors.Is(err, services.ErrInvalidPhoneNumber) {
			a.println("Please enter a valid phone number")
		} else {
			a.reportError(ctx, "There was an error adding your number", err)
		}
		return err
	}

	a.println("Your number has been added")
	return nil
}

func (a *App) SMS(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: sms on|off")
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "on":
		changed, err := a.profileService.EnableSMS(ctx, a.userName)
		if err != nil {
			if errors.Is(err, services.ErrNoPhoneNumber) {
				a.println("Please enter a phone number first")
			} else {
				a.reportError(ctx, "Error", err)
			}
			return err
		}
		if changed {
			a.println("SMS notifications enabled")
		} else {
			a.println("SMS notifications already enabled")
		}

	case "off":
		if err := a.profileService.DisableSMS(ctx, a.userName); err != nil {
			a.reportError(ctx, "Error", err)
			return err
		}
		a.println("SMS notifications disabled")

	default:
		a.println("Usage: sms on|off")
	}
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.profileService.Profile(ctx, a.userName)
	if err != nil {
		a.reportError(ctx, "Error", err)
		return err
	}

	goal := "not set"
	if p.Goal != 0 {
		goal = strconv.Itoa(p.Goal)
	}
	phone := "not set"
	if p.PhoneNumber != "" {
		phone = p.PhoneNumber
	}
	sms := "off"
	if p.SMSOptIn {
		sms = "on"
	}

	a.println("User:", p.Username)
	a.println("Goal:", goal)
	a.println("Phone:", phone)
	a.println("SMS:", sms)
	return nil
}

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}
