package dcr

import (
	"context"
	"time"
)

type ReportRepository interface {
	// Create inserts the report; a duplicate (employee, date) pair fails
	// with ErrReportExists via the unique index, closing the
	// double-submission race without a read-then-write check.
	Create(ctx context.Context, report Report) (Report, error)
	GetByID(ctx context.Context, id string) (Report, error)
	GetByDate(ctx context.Context, employeeID string, date time.Time) (Report, error)
	Update(ctx context.Context, report Report) error
	UpdateStatus(ctx context.Context, id string, status ReportStatus) error
	Delete(ctx context.Context, id string) error
	ListBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Report, error)
	CountCompletedBetween(ctx context.Context, employeeID string, from, to time.Time) (int, error)
	// ListCompletedHolidayDates returns dates of COMPLETE holiday-flagged
	// reports in the month; these earn week-off trades.
	ListCompletedHolidayDates(ctx context.Context, employeeID string, year int, month time.Month) ([]time.Time, error)
	MonthlyStats(ctx context.Context, employeeID string, year int, month time.Month) (MonthlyStats, error)
}

type VisitRepository interface {
	AddDoctorVisit(ctx context.Context, visit DoctorVisit) (DoctorVisit, error)
	AddCSVisit(ctx context.Context, visit CSVisit) (CSVisit, error)
	GetDoctorVisit(ctx context.Context, id string) (DoctorVisit, error)
	GetCSVisit(ctx context.Context, id string) (CSVisit, error)
	// GetDoctorVisitPairCopy returns the mirrored copy sharing pairKey
	// that lives in a different report, or ErrVisitNotFound.
	GetDoctorVisitPairCopy(ctx context.Context, pairKey, excludeReportID string) (DoctorVisit, error)
	GetCSVisitPairCopy(ctx context.Context, pairKey, excludeReportID string) (CSVisit, error)
	UpdateDoctorVisit(ctx context.Context, visit DoctorVisit) error
	UpdateCSVisit(ctx context.Context, visit CSVisit) error
	DeleteDoctorVisit(ctx context.Context, id string) error
	DeleteCSVisit(ctx context.Context, id string) error
	ListDoctorVisits(ctx context.Context, reportID string) ([]DoctorVisit, error)
	ListCSVisits(ctx context.Context, reportID string) ([]CSVisit, error)
	CountVisits(ctx context.Context, reportID string) (int, error)
	CountOpenVisits(ctx context.Context, reportID string) (int, error)
	// ListCompletedPoints returns completed visit coordinates for the
	// report ordered by completion time.
	ListCompletedPoints(ctx context.Context, reportID string) ([]VisitPoint, error)
}
