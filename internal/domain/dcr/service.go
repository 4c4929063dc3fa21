package dcr

import (
	"context"
	"time"

	"github.com/medirep/sfa-backend-go/internal/domain/employee"
)

type DCRService interface {
	CreateDailyReport(ctx context.Context, viewer employee.Employee, req CreateDailyReportRequest) (Report, error)
	// CreateMeetingReport files one report per day of the range.
	CreateMeetingReport(ctx context.Context, viewer employee.Employee, req CreateMeetingReportRequest) ([]Report, error)
	// CreateTrainingReport resolves the training partner through the
	// hierarchy and files a report for both sides.
	CreateTrainingReport(ctx context.Context, viewer employee.Employee, req CreateTrainingReportRequest) (Report, error)
	CreateAdminDayReport(ctx context.Context, viewer employee.Employee, req CreateAdminDayReportRequest) (CompleteReportResult, error)
	// CreateFromTourPlan files a WORKING report for a planned date,
	// taking the place from the plan instead of a GPS fix.
	CreateFromTourPlan(ctx context.Context, viewer employee.Employee, req CreateFromPlanRequest) (Report, error)

	AddDoctorVisit(ctx context.Context, viewer employee.Employee, reportID string, req AddDoctorVisitRequest) (DoctorVisit, error)
	AddCSVisit(ctx context.Context, viewer employee.Employee, reportID string, req AddCSVisitRequest) (CSVisit, error)
	// DeleteDoctorVisit removes an open call and, when the call was
	// mirrored, the partner's copy with it.
	DeleteDoctorVisit(ctx context.Context, viewer employee.Employee, visitID string) error
	DeleteCSVisit(ctx context.Context, viewer employee.Employee, visitID string) error

	CompleteDoctorVisit(ctx context.Context, viewer employee.Employee, visitID string, req CompleteVisitRequest) (DoctorVisit, error)
	IncompleteDoctorVisit(ctx context.Context, viewer employee.Employee, visitID string, req IncompleteVisitRequest) (DoctorVisit, error)
	CompleteCSVisit(ctx context.Context, viewer employee.Employee, visitID string, req CompleteVisitRequest) (CSVisit, error)
	IncompleteCSVisit(ctx context.Context, viewer employee.Employee, visitID string, req IncompleteVisitRequest) (CSVisit, error)

	CompleteReport(ctx context.Context, viewer employee.Employee, reportID string, req CompleteReportRequest) (CompleteReportResult, error)
	DeleteReport(ctx context.Context, viewer employee.Employee, reportID string) error
	UpdateStartLocation(ctx context.Context, viewer employee.Employee, reportID string, req UpdateStartLocationRequest) (Report, error)

	Get(ctx context.Context, reportID string) (FullReport, error)
	Today(ctx context.Context, employeeID string) (FullReport, error)
	ListBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Report, error)
	Stats(ctx context.Context, employeeID string, year int, month time.Month) (MonthlyStats, error)
	// Route returns the completed visit coordinates of a report in
	// completion order.
	Route(ctx context.Context, reportID string) ([]VisitPoint, error)
}
