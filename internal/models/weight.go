package models

import (
	"strconv"
	"time"
)

// Date layouts: entries are typed and shown as MM/DD/YY and stored as ISO
// dates so that ordering by the column is chronological.
const (
	DisplayDateLayout = "01/02/06"
	StorageDateLayout = time.DateOnly
)

// WeightEntry is one dated measurement. (Username, Date, Weight) is unique.
type WeightEntry struct {
	ID       string
	Username string
	Date     time.Time
	Weight   int
}

// DisplayDate formats Date as MM/DD/YY.
func (e WeightEntry) DisplayDate() string {
	return e.Date.Format(DisplayDateLayout)
}

// GoalDiff describes how far weight is from goal, from the user's point of
// view: "-5" means five above the goal, "+3" three below it. With no goal the
// result is "N/A".
func GoalDiff(weight, goal int) string {
	if goal == 0 {
		return "N/A"
	}
	diff := weight - goal
	switch {
	case diff > 0:
		return "-" + strconv.Itoa(diff)
	case diff < 0:
		return "+" + strconv.Itoa(-diff)
	default:
		return "0"
	}
}

// EntryView is a WeightEntry prepared for listing.
type EntryView struct {
	WeightEntry
	GoalDiff string
}
