package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Mark writes the entry unless one already exists for the date.
	// The boolean reports whether the write happened; false means the
	// date was already marked, which callers surface as a notice.
	Mark(ctx context.Context, entry Entry) (bool, error)
	Get(ctx context.Context, employeeID string, date time.Time) (Entry, error)
	ListMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Entry, error)
	// ListWeekOffRefs returns the traded holiday dates referenced by
	// WEEK OFF entries in the given month.
	ListWeekOffRefs(ctx context.Context, employeeID string, year int, month time.Month) ([]time.Time, error)
}
