package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (Employee, error)
	Archive(ctx context.Context, id string) error
	List(ctx context.Context) ([]Employee, error)
	// Downline returns the viewer plus everyone below them. ADMIN and
	// HR/OH see the whole active roster.
	Downline(ctx context.Context, viewer Employee) ([]Employee, error)
	Dashboard(ctx context.Context, viewer Employee) (DashboardCounts, error)
}
