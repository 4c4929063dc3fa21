package leave

import (
	"context"

	"github.com/medirep/sfa-backend-go/internal/domain/employee"
)

type LeaveService interface {
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (Request, error)
	Approve(ctx context.Context, requestID string, approverID string) (Request, error)
	Reject(ctx context.Context, requestID string, rejecterID string) (Request, error)
	Delete(ctx context.Context, requestID string, ownerID string) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	Pending(ctx context.Context, viewer employee.Employee) ([]Request, error)
	Balances(ctx context.Context, employeeID string) (BalanceResponse, error)
	// CheckPrivilegedAccrual grants one privileged day per 15-day window
	// holding at least 15 completed call reports.
	CheckPrivilegedAccrual(ctx context.Context, employeeID string) error
}
