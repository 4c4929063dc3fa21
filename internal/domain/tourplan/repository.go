package tourplan

import (
	"context"
	"time"
)

type TourPlanRepository interface {
	BulkCreate(ctx context.Context, entries []Entry) error
	ListMonth(ctx context.Context, employeeID string, year int, month int) ([]Entry, error)
	HasMonth(ctx context.Context, employeeID string, year int, month int) (bool, error)
	GetByDate(ctx context.Context, employeeID string, date time.Time) (Entry, error)
	UpdateEntry(ctx context.Context, entry Entry) error
	// ApproveDate flips approved false to true; returns false when the
	// entry was already approved.
	ApproveDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	GetFlags(ctx context.Context, employeeID string) (Flags, error)
	SetFlags(ctx context.Context, flags Flags) error
}
