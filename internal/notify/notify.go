// Package notify delivers the goal-reached text message.
package notify

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/weighttracker/internal/logging"
)

// GoalReachedMessage is the text sent when a recorded weight hits the goal.
const GoalReachedMessage = "You did It!!! Congratulations on reaching your goal!"

type Notifier interface {
	Send(ctx context.Context, phone, message string) error
}

// E164 turns a 10-digit national number into "+1XXXXXXXXXX". Numbers that
// already start with "+" are returned unchanged.
func E164(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	if len(phone) == 10 {
		return "+1" + phone
	}
	return "+" + phone
}

// maskPhone keeps the last four digits for log output.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// LogNotifier writes messages to the log instead of sending them.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(ctx context.Context, phone, message string) error {
	n.log.Info(ctx, "sms delivery disabled, message not sent", "phone", maskPhone(phone), "message", message)
	return nil
}
