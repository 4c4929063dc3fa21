package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	// Mark writes the day's entry; the boolean is false when the date
	// was already marked, which callers surface as a notice.
	Mark(ctx context.Context, entry Entry) (bool, error)
	// Month resolves every day of the month against attendance entries,
	// approved leave, and the holiday calendar.
	Month(ctx context.Context, employeeID string, year int, month time.Month) ([]DayStatus, error)
	WeekOffAvailability(ctx context.Context, employeeID string) (WeekOffAvailability, error)
	// TakeWeekOff trades a completed holiday workday for a week off today.
	TakeWeekOff(ctx context.Context, employeeID string, holidayDate time.Time) (Entry, error)
}
