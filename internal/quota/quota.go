// Package quota counts map requests per local calendar day.
package quota

import (
	"context"
	"time"
)

// DayLayout formats the day key used by every Counter.
const DayLayout = "2006-01-02"

// Counter tracks how many map requests were made on a day. A day that has not
// been seen starts at zero, so a new local date is the daily reset.
type Counter interface {
	// Increment adds one to day's count and returns the new count.
	Increment(ctx context.Context, day string) (int, error)
	// Current returns day's count without changing it.
	Current(ctx context.Context, day string) (int, error)
}

// Day returns the day key for now in now's location.
func Day(now time.Time) string {
	return now.Format(DayLayout)
}
