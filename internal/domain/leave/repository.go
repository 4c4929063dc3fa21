package leave

import (
	"context"
	"time"
)

type LedgerRepository interface {
	Create(ctx context.Context, ledger Ledger) (Ledger, error)
	GetByEmployee(ctx context.Context, employeeID string) (Ledger, error)
	// AdjustBalances applies signed deltas atomically. The update is
	// conditional: it fails with ErrInsufficientBalance when a counter
	// would go negative.
	AdjustBalances(ctx context.Context, employeeID string, dCasual, dPrivileged, dLWP int) error
	AdvanceAccrualMarker(ctx context.Context, employeeID string, marker time.Time, privilegedDelta int) error
	ResetYearly(ctx context.Context, casual int, marker time.Time) error
}

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListPendingByEmployees(ctx context.Context, employeeIDs []string) ([]Request, error)
	// ApprovedCasualConsumedInMonth sums the casual-day consumption of
	// APPROVED requests whose from_date falls in the given month.
	ApprovedCasualConsumedInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error)
	// HasEnclosing reports whether an APPROVED or PENDING request fully
	// encloses the given range.
	HasEnclosing(ctx context.Context, employeeID string, from, to time.Time) (bool, error)
	// HasActiveCovering reports whether a non-rejected request covers the date.
	HasActiveCovering(ctx context.Context, employeeID string, date time.Time) (bool, error)
	// ListApprovedInRange returns APPROVED requests overlapping [from, to].
	ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Request, error)
	UpdateStatus(ctx context.Context, req Request) error
	Delete(ctx context.Context, id string) error
}

// CompletedReportCounter is the slice of the report store the accrual
// rule needs; implemented by the DCR repository.
type CompletedReportCounter interface {
	CountCompletedBetween(ctx context.Context, employeeID string, from, to time.Time) (int, error)
}
