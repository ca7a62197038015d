package services

import (
	"context"
	"database/sql"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/weighttracker/internal/logging"
	"github.com/dmitrijs2005/weighttracker/internal/repositories/repomanager"
)

var phoneRe = regexp.MustCompile(`^\d{10}$`)

// Profile is the user-facing view of an account.
type Profile struct {
	Username    string
	PhoneNumber string
	Goal        int
	SMSOptIn    bool
}

type ProfileService interface {
	SetGoal(ctx context.Context, username, goal string) error
	Goal(ctx context.Context, username string) (int, error)
	SetPhoneNumber(ctx context.Context, username, phone string) error
	// EnableSMS opts the user in. It reports false when SMS was already on.
	EnableSMS(ctx context.Context, username string) (bool, error)
	DisableSMS(ctx context.Context, username string) error
	Profile(ctx context.Context, username string) (*Profile, error)
}

type profileService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	log   logging.Logger
}

func NewProfileService(db *sql.DB, repos repomanager.RepositoryManager, log logging.Logger) ProfileService {
	return &profileService{db: db, repos: repos, log: log}
}

// ValidPhoneNumber reports whether phone is exactly ten digits.
func ValidPhoneNumber(phone string) bool {
	return phoneRe.MatchString(phone)
}

// SetGoal stores a whole-number goal; "0" removes it.
func (p *profileService) SetGoal(ctx context.Context, username, goal string) error {
	g, err := strconv.Atoi(strings.TrimSpace(goal))
	if err != nil || g < 0 {
		return ErrInvalidGoal
	}
	if err := p.repos.Users(p.db).SetGoal(ctx, username, g); err != nil {
		return err
	}
	p.log.Info(ctx, "goal set", "user", username, "goal", g)
	return nil
}

func (p *profileService) Goal(ctx context.Context, username string) (int, error) {
	u, err := p.repos.Users(p.db).Get(ctx, username)
	if err != nil {
		return 0, err
	}
	return u.Goal, nil
}

func (p *profileService) SetPhoneNumber(ctx context.Context, username, phone string) error {
	phone = strings.TrimSpace(phone)
	if !ValidPhoneNumber(phone) {
		return ErrInvalidPhoneNumber
	}
	if err := p.repos.Users(p.db).SetPhoneNumber(ctx, username, phone); err != nil {
		return err
	}
	p.log.Info(ctx, "phone number set", "user", username)
	return nil
}

func (p *profileService) EnableSMS(ctx context.Context, username string) (bool, error) {
	users := p.repos.Users(p.db)

	u, err := users.Get(ctx, username)
	if err != nil {
		return false, err
	}
	if !u.HasPhoneNumber() {
		return false, ErrNoPhoneNumber
	}
	if u.SMSOptIn {
		return false, nil
	}

	if err := users.SetSMSOptIn(ctx, username, true); err != nil {
		return false, err
	}
	p.log.Info(ctx, "sms enabled", "user", username)
	return true, nil
}

func (p *profileService) DisableSMS(ctx context.Context, username string) error {
	return p.repos.Users(p.db).SetSMSOptIn(ctx, username, false)
}

func (p *profileService) Profile(ctx context.Context, username string) (*Profile, error) {
	u, err := p.repos.Users(p.db).Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return &Profile{
		Username:    u.Username,
		PhoneNumber: u.PhoneNumber,
		Goal:        u.Goal,
		SMSOptIn:    u.SMSOptIn,
	}, nil
}
