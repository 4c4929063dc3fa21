package dvl

import "context"

type DoctorRepository interface {
	Create(ctx context.Context, doctor Doctor) (Doctor, error)
	GetByID(ctx context.Context, id string) (Doctor, error)
	Update(ctx context.Context, doctor Doctor) error
	Delete(ctx context.Context, id string) error
	ListApproved(ctx context.Context, employeeID string) ([]Doctor, error)
	ListPendingByEmployees(ctx context.Context, employeeIDs []string) ([]Doctor, error)
	// SetLocationIfEmpty records the doctor's coordinates from the first
	// completed visit; later visits leave them untouched.
	SetLocationIfEmpty(ctx context.Context, id string, lat, lon float64) error
}
