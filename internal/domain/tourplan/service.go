package tourplan

import (
	"context"

	"github.com/medirep/sfa-backend-go/internal/domain/employee"
)

type TourPlanService interface {
	// Create files the viewer's plan for next month. For managers it
	// fails with ErrDownlineMissing, carrying the names of direct
	// reports who have not filed their own plan yet.
	Create(ctx context.Context, viewer employee.Employee, req CreatePlanRequest) ([]Entry, error)
	Update(ctx context.Context, viewer employee.Employee, req CreatePlanRequest) ([]Entry, error)
	Month(ctx context.Context, employeeID string, year int, month int) ([]Entry, error)
	// ApproveDates flips the named dates of a report's plan to approved;
	// already-approved dates are skipped, not errors.
	ApproveDates(ctx context.Context, viewer employee.Employee, req ApproveDatesRequest) (int, error)
	GrantOverride(ctx context.Context, employeeID string, forCreate, forApprove bool) error
	// MissingDownline lists the viewer's direct reports without a plan
	// for the target month.
	MissingDownline(ctx context.Context, viewer employee.Employee, year int, month int) ([]string, error)
}
