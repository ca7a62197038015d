package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/weighttracker/internal/backup"
	"github.com/dmitrijs2005/weighttracker/internal/common"
	"github.com/dmitrijs2005/weighttracker/internal/models"
	"github.com/dmitrijs2005/weighttracker/internal/services"
)

func (a *App) List(ctx context.Context) error {
	views, err := a.weightService.List(ctx, a.userName)
	if err != nil {
		a.reportError(ctx, "Could not load weights", err)
		return err
	}

	a.lastList = views
	if len(views) == 0 {
		a.println("No weights recorded")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDate\tWeight\tTo goal")
	for i, v := range views {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", i+1, v.DisplayDate(), v.Weight, v.GoalDiff)
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	date, weight, err := a.readEntry()
	if err != nil {
		return err
	}

	res, err := a.weightService.Add(ctx, a.userName, date, weight)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) || errors.Is(err, services.ErrDuplicateEntry) {
			a.println(entryErrorMessage(err))
		} else {
			a.reportError(ctx, "Error", err)
		}
		return err
	}

	a.lastList = nil
	a.println("Weight added")
	switch {
	case res.Notified:
		a.println("You reached your goal! A congratulation text is on its way.")
	case res.Reason == services.ReasonNoPhoneNumber:
		a.println("Please add your phone number to receive SMS")
	case res.Reason == services.ReasonDeliveryFailed:
		a.println("You reached your goal! The text message could not be sent.")
	case res.Reached:
		a.println("You reached your goal!")
	}
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	entry, err := a.pickEntry(args)
	if err != nil {
		return err
	}

	a.println("Editing", entry.DisplayDate(), entry.Weight)
	date, weight, err := a.readEntry()
	if err != nil {
		return err
	}

	if err := a.weightService.Edit(ctx, a.userName, entry.ID, date, weight); err != nil {
		if errors.Is(err, common.ErrorValidation) || errors.Is(err, services.ErrDuplicateEntry) {
			a.println(entryErrorMessage(err))
		} else {
			a.reportError(ctx, "Error", err)
		}
		return err
	}

	a.lastList = nil
	a.println("Entry Changed")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	entry, err := a.pickEntry(args)
	if err != nil {
		return err
	}

	if err := a.weightService.Delete(ctx, a.userName, entry.ID); err != nil {
		a.reportError(ctx, "Error On Deletion", err)
		return err
	}

	a.lastList = nil
	a.println("Entry Deleted")
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	n, err := a.weightService.Clear(ctx, a.userName)
	if err != nil {
		a.reportError(ctx, "Error", err)
		return err
	}

	a.lastList = nil
	if n == 0 {
		a.println("No Weights Deleted")
		return nil
	}
	a.println("List Cleared")
	return nil
}

func (a *App) Export(ctx context.Context) error {
	uri, err := a.weightService.Export(ctx, a.userName)
	if err != nil {
		if errors.Is(err, backup.ErrBackupDisabled) {
			a.println("Backup is not configured (set WT_BACKUP_BUCKET)")
		} else {
			a.reportError(ctx, "Export failed", err)
		}
		return err
	}
	a.println("Exported to", uri)
	return nil
}

func (a *App) readEntry() (date, weight string, err error) {
	date, err = getSimpleText(a.reader, "Enter date (MM/DD/YY)", a.out)
	if err != nil {
		return "", "", err
	}
	weight, err = getSimpleText(a.reader, "Enter weight", a.out)
	if err != nil {
		return "", "", err
	}
	return date, weight, nil
}

var errNoSuchEntry = errors.New("no such entry")

// pickEntry resolves an entry number from args, or asks for one, against the
// last listing.
func (a *App) pickEntry(args []string) (*models.EntryView, error) {
	if a.lastList == nil {
		a.println("Run 'list' first to see entry numbers")
		return nil, errNoSuchEntry
	}

	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		s, err := getSimpleText(a.reader, "Enter entry number", a.out)
		if err != nil {
			return nil, err
		}
		raw = s
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(a.lastList) {
		a.println("Please enter a number between 1 and", len(a.lastList))
		return nil, errNoSuchEntry
	}
	return &a.lastList[n-1], nil
}

func entryErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrEmptyDate):
		return "Please enter a date"
	case errors.Is(err, services.ErrInvalidDate):
		return "Please enter the date as MM/DD/YY"
	case errors.Is(err, services.ErrEmptyWeight):
		return "Please enter a weight"
	case errors.Is(err, services.ErrInvalidWeight):
		return "Please enter a valid weight"
	case errors.Is(err, services.ErrDuplicateEntry):
		return "Duplicate entry"
	default:
		return "Error"
	}
}
