package dvl

import (
	"context"

	"github.com/medirep/sfa-backend-go/internal/domain/employee"
)

// DVLService manages the doctor visit list. Every change sits behind a
// pending action until a manager rules on it.
type DVLService interface {
	Add(ctx context.Context, viewer employee.Employee, req AddDoctorRequest) (Doctor, error)
	RequestUpdate(ctx context.Context, viewer employee.Employee, doctorID string, req UpdateDoctorRequest) (Doctor, error)
	RequestDelete(ctx context.Context, viewer employee.Employee, doctorID string) (Doctor, error)
	Approve(ctx context.Context, doctorID string) (Doctor, error)
	Reject(ctx context.Context, doctorID string) error
	ListApproved(ctx context.Context, employeeID string) ([]Doctor, error)
	// ListPending returns pending roster changes across the viewer's
	// downline.
	ListPending(ctx context.Context, viewer employee.Employee) ([]Doctor, error)
}
