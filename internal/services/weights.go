package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/weighttracker/internal/common"
	"github.com/dmitrijs2005/weighttracker/internal/dbx"
	"github.com/dmitrijs2005/weighttracker/internal/logging"
	"github.com/dmitrijs2005/weighttracker/internal/models"
	"github.com/dmitrijs2005/weighttracker/internal/notify"
	"github.com/dmitrijs2005/weighttracker/internal/repositories/repomanager"
)

// Reasons a reached goal did not produce a text message.
const (
	ReasonNoPhoneNumber  = "no_phone_number"
	ReasonDeliveryFailed = "delivery_failed"
)

// GoalReached reports what happened when a new weight matched the goal.
// The zero value means the goal was not reached or SMS is off.
type GoalReached struct {
	Reached  bool
	Notified bool
	Reason   string
}

// Exporter uploads a rendered copy of a user's entries and returns where
// it went.
type Exporter interface {
	Export(ctx context.Context, username string, entries []models.EntryView) (string, error)
}

type WeightService interface {
	Add(ctx context.Context, username, date, weight string) (GoalReached, error)
	List(ctx context.Context, username string) ([]models.EntryView, error)
	Edit(ctx context.Context, username, id, date, weight string) error
	Delete(ctx context.Context, username, id string) error
	// Clear removes all entries of username and returns how many there were.
	Clear(ctx context.Context, username string) (int64, error)
	Export(ctx context.Context, username string) (string, error)
}

type weightService struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	notifier notify.Notifier
	exporter Exporter
	log      logging.Logger
}

func NewWeightService(db *sql.DB, repos repomanager.RepositoryManager, notifier notify.Notifier, exporter Exporter, log logging.Logger) WeightService {
	return &weightService{db: db, repos: repos, notifier: notifier, exporter: exporter, log: log}
}

// entryDateLayout also accepts single-digit month and day.
const entryDateLayout = "1/2/06"

// ParseDate accepts MM/DD/YY; leading zeros are optional.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	d, err := time.Parse(entryDateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// ParseWeight accepts a positive whole number.
func ParseWeight(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyWeight
	}
	w, err := strconv.Atoi(s)
	if err != nil || w <= 0 {
		return 0, ErrInvalidWeight
	}
	return w, nil
}

func parseEntry(username, date, weight string) (*models.WeightEntry, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	w, err := ParseWeight(weight)
	if err != nil {
		return nil, err
	}
	return &models.WeightEntry{Username: username, Date: d, Weight: w}, nil
}

func (s *weightService) Add(ctx context.Context, username, date, weight string) (GoalReached, error) {
	e, err := parseEntry(username, date, weight)
	if err != nil {
		return GoalReached{}, err
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repos.Users(tx).Get(ctx, username)
		if err != nil {
			return err
		}
		user = u
		return s.repos.Weights(tx).Add(ctx, e)
	})
	if errors.Is(err, common.ErrorAlreadyExists) {
		return GoalReached{}, ErrDuplicateEntry
	}
	if err != nil {
		return GoalReached{}, err
	}

	s.log.Info(ctx, "weight added", "user", username, "date", e.DisplayDate(), "weight", e.Weight)
	return s.checkGoal(ctx, user, e.Weight), nil
}

// checkGoal sends the congratulation message when weight hits the goal of a
// user who opted in. Delivery problems are logged, never returned.
func (s *weightService) checkGoal(ctx context.Context, user *models.User, weight int) GoalReached {
	if !user.HasGoal() || weight != user.Goal || !user.SMSOptIn {
		return GoalReached{}
	}

	res := GoalReached{Reached: true}
	if !user.HasPhoneNumber() {
		res.Reason = ReasonNoPhoneNumber
		return res
	}

	if err := s.notifier.Send(ctx, user.PhoneNumber, notify.GoalReachedMessage); err != nil {
		s.log.Warn(ctx, "goal sms not delivered", "user", user.Username, "error", err)
		res.Reason = ReasonDeliveryFailed
		return res
	}

	res.Notified = true
	return res
}

func (s *weightService) List(ctx context.Context, username string) ([]models.EntryView, error) {
	var (
		user    *models.User
		entries []models.WeightEntry
	)
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repos.Users(tx).Get(ctx, username)
		if err != nil {
			return err
		}
		user = u

		entries, err = s.repos.Weights(tx).ListByUser(ctx, username)
		return err
	})
	if err != nil {
		return nil, err
	}

	views := make([]models.EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, models.EntryView{WeightEntry: e, GoalDiff: models.GoalDiff(e.Weight, user.Goal)})
	}
	return views, nil
}

func (s *weightService) Edit(ctx context.Context, username, id, date, weight string) error {
	e, err := parseEntry(username, date, weight)
	if err != nil {
		return err
	}
	e.ID = id

	err = s.repos.Weights(s.db).Update(ctx, e)
	if errors.Is(err, common.ErrorAlreadyExists) {
		return ErrDuplicateEntry
	}
	if err != nil {
		return err
	}

	s.log.Info(ctx, "weight changed", "user", username, "id", id)
	return nil
}

func (s *weightService) Delete(ctx context.Context, username, id string) error {
	if err := s.repos.Weights(s.db).Delete(ctx, username, id); err != nil {
		return err
	}
	s.log.Info(ctx, "weight deleted", "user", username, "id", id)
	return nil
}

func (s *weightService) Clear(ctx context.Context, username string) (int64, error) {
	n, err := s.repos.Weights(s.db).Clear(ctx, username)
	if err != nil {
		return 0, err
	}
	s.log.Info(ctx, "weights cleared", "user", username, "count", n)
	return n, nil
}

func (s *weightService) Export(ctx context.Context, username string) (string, error) {
	views, err := s.List(ctx, username)
	if err != nil {
		return "", err
	}

	uri, err := s.exporter.Export(ctx, username, views)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	s.log.Info(ctx, "entries exported", "user", username, "count", len(views), "uri", uri)
	return uri, nil
}
