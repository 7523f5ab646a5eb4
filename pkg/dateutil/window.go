package dateutil

import (
	"fmt"
	"time"

	"github.com/streamdraw/backend/internal/entity"
)

// WindowKey returns the bucket collaborators aggregate donation totals under
// for the giveaway's donation window. The total window has a single empty
// bucket.
func WindowKey(window entity.DonationWindow, now time.Time) (string, error) {
	switch window {
	case entity.WindowDaily:
		return fmt.Sprintf("day/%d/%d/%d", now.Day(), now.Month(), now.Year()), nil
	case entity.WindowWeekly:
		year, week := now.ISOWeek()
		return fmt.Sprintf("week/%d/%d", week, year), nil
	case entity.WindowMonthly:
		return fmt.Sprintf("month/%d/%d", now.Month(), now.Year()), nil
	case entity.WindowTotal:
		return "", nil
	default:
		return "", fmt.Errorf("donation window must be daily, weekly, monthly, total. but got %s", window)
	}
}

// WindowStart returns the instant the current donation window began.
func WindowStart(window entity.DonationWindow, now time.Time) (time.Time, error) {
	switch window {
	case entity.WindowDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case entity.WindowWeekly:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		weekday := int(start.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return start.AddDate(0, 0, 1-weekday), nil
	case entity.WindowMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case entity.WindowTotal:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("donation window must be daily, weekly, monthly, total. but got %s", window)
	}
}
