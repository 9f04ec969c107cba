package contract

import "time"

// State represents the lifecycle state of a contract.
type State string

const (
	StateDraft      State = "draft"
	StateInProgress State = "in_progress"
	StateDone       State = "done"
	StateCancelled  State = "cancelled"
)

// Contract defines a client, a validity window and a monthly visit quota.
type Contract struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	ClientID       string         `json:"client_id"`
	ClientName     string         `json:"client_name"`
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	VisitsPerMonth int            `json:"visits_per_month"`
	Weekdays       []time.Weekday `json:"weekdays,omitempty"`
	State          State          `json:"state"`
	FolderID       *string        `json:"folder_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// MonthsCovered returns the first day of every calendar month the validity
// window touches, in ascending order.
func (c *Contract) MonthsCovered() []time.Time {
	if c.StartDate.IsZero() || c.EndDate.IsZero() || c.EndDate.Before(c.StartDate) {
		return nil
	}

	var months []time.Time
	cur := time.Date(c.StartDate.Year(), c.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(c.EndDate.Year(), c.EndDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(end) {
		months = append(months, cur)
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

// TotalVisits returns the number of visits the contract calls for over its
// whole validity window.
func (c *Contract) TotalVisits() int {
	return len(c.MonthsCovered()) * c.VisitsPerMonth
}

// PrefersWeekday reports whether the given weekday is in the preference set.
// A contract with no preference set accepts any weekday.
func (c *Contract) PrefersWeekday(d time.Weekday) bool {
	if len(c.Weekdays) == 0 {
		return true
	}
	for _, w := range c.Weekdays {
		if w == d {
			return true
		}
	}
	return false
}
