package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/medirep/sfa-backend-go/internal/domain/leave"
	"github.com/medirep/sfa-backend-go/internal/repository/postgresql"
)

const (
	casualMonthlyCap = 3

	// accrualWindowDays is the length of the privileged-leave earning
	// window, and accrualReportFloor the completed reports it must hold.
	accrualWindowDays  = 15
	accrualReportFloor = 15
)

type LeaveServiceImpl struct {
	tx postgresql.Transactor
	leave.LedgerRepository
	leave.RequestRepository
	employees employee.EmployeeRepository
	reports   leave.CompletedReportCounter
}

func NewLeaveService(tx postgresql.Transactor, ledgerRepository leave.LedgerRepository, requestRepository leave.RequestRepository, employeeRepository employee.EmployeeRepository, reportCounter leave.CompletedReportCounter) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                tx,
		LedgerRepository:  ledgerRepository,
		RequestRepository: requestRepository,
		employees:         employeeRepository,
		reports:           reportCounter,
	}
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, employeeID string, req leave.ApplyLeaveRequest) (leave.Request, error) {
	from, _ := time.Parse("2006-01-02", req.FromDate)
	to, _ := time.Parse("2006-01-02", req.ToDate)
	if from.After(to) {
		return leave.Request{}, leave.ErrInvalidDateRange
	}

	leaveType := leave.Type(req.Type)

	ledger, err := s.LedgerRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return leave.Request{}, err
	}

	if leaveType == leave.TypeCasual && ledger.CasualCount == 0 {
		return leave.Request{}, leave.ErrBalanceExhausted
	}
	if leaveType == leave.TypePrivileged && ledger.PrivilegedCount == 0 {
		return leave.Request{}, leave.ErrBalanceExhausted
	}

	enclosed, err := s.RequestRepository.HasEnclosing(ctx, employeeID, from, to)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if enclosed {
		return leave.Request{}, leave.ErrOverlappingRequest
	}

	days := int(to.Sub(from).Hours()/24) + 1
	consumed := Allocate(leaveType, days, ledger.CasualCount, ledger.PrivilegedCount)

	if leaveType == leave.TypeCasual {
		prior, err := s.RequestRepository.ApprovedCasualConsumedInMonth(ctx, employeeID, from.Year(), from.Month())
		if err != nil {
			return leave.Request{}, fmt.Errorf("failed to sum casual consumption: %w", err)
		}
		if prior+consumed.Casual > casualMonthlyCap {
			return leave.Request{}, leave.ErrCasualMonthlyCap
		}
	}

	request := leave.Request{
		EmployeeID:  employeeID,
		Type:        leaveType,
		Status:      leave.StatusPending,
		FromDate:    from,
		ToDate:      to,
		Reason:      req.Reason,
		Consumed:    consumed,
		RequestedAt: time.Now(),
	}

	// Medical leave is recorded, not adjudicated. It lands approved and
	// touches no balances.
	if leaveType == leave.TypeMedical {
		now := time.Now()
		request.Status = leave.StatusApproved
		request.ApprovedAt = &now
	}

	return s.RequestRepository.Create(ctx, request)
}

// Approve implements leave.LeaveService. Balances move here, not at
// apply time, so a pending request never holds days hostage.
func (s *LeaveServiceImpl) Approve(ctx context.Context, requestID string, approverID string) (leave.Request, error) {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.Request{}, leave.ErrAlreadyProcessed
	}

	now := time.Now()
	request.Status = leave.StatusApproved
	request.ApprovedBy = &approverID
	request.ApprovedAt = &now

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.LedgerRepository.AdjustBalances(txCtx, request.EmployeeID, -request.Consumed.Casual, -request.Consumed.Privileged, request.Consumed.LWP); err != nil {
			return err
		}
		return s.RequestRepository.UpdateStatus(txCtx, request)
	})
	if err != nil {
		return leave.Request{}, err
	}

	return request, nil
}

// Reject implements leave.LeaveService. Rejecting an approved request
// reverses its balance effects exactly once.
func (s *LeaveServiceImpl) Reject(ctx context.Context, requestID string, rejecterID string) (leave.Request, error) {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.Status == leave.StatusRejected {
		return leave.Request{}, leave.ErrAlreadyRejected
	}

	wasApproved := request.Status == leave.StatusApproved

	now := time.Now()
	request.Status = leave.StatusRejected
	request.RejectedBy = &rejecterID
	request.RejectedAt = &now

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if wasApproved {
			if err := s.LedgerRepository.AdjustBalances(txCtx, request.EmployeeID, request.Consumed.Casual, request.Consumed.Privileged, -request.Consumed.LWP); err != nil {
				return err
			}
		}
		return s.RequestRepository.UpdateStatus(txCtx, request)
	})
	if err != nil {
		return leave.Request{}, err
	}

	return request, nil
}

// Delete implements leave.LeaveService.
func (s *LeaveServiceImpl) Delete(ctx context.Context, requestID string, ownerID string) error {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.EmployeeID != ownerID {
		return leave.ErrNotRequestOwner
	}
	if request.Status != leave.StatusPending {
		return leave.ErrDeleteNonPending
	}
	return s.RequestRepository.Delete(ctx, requestID)
}

// ListByEmployee implements leave.LeaveService.
func (s *LeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	return s.RequestRepository.ListByEmployee(ctx, employeeID)
}

// Pending implements leave.LeaveService.
func (s *LeaveServiceImpl) Pending(ctx context.Context, viewer employee.Employee) ([]leave.Request, error) {
	var members []employee.Employee
	var err error

	if viewer.Role.SeesWholeOrg() {
		members, err = s.employees.ListActive(ctx)
	} else {
		members, err = s.employees.ListDownline(ctx, viewer.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve downline: %w", err)
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		if m.ID != viewer.ID {
			ids = append(ids, m.ID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	return s.RequestRepository.ListPendingByEmployees(ctx, ids)
}

// Balances implements leave.LeaveService.
func (s *LeaveServiceImpl) Balances(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	ledger, err := s.LedgerRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.BalanceResponse{
		Casual:     ledger.CasualCount,
		Privileged: ledger.PrivilegedCount,
		LWP:        ledger.LWPCount,
	}, nil
}

// CheckPrivilegedAccrual implements leave.LeaveService.
func (s *LeaveServiceImpl) CheckPrivilegedAccrual(ctx context.Context, employeeID string) error {
	ledger, err := s.LedgerRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	elapsed := int(today.Sub(ledger.AccrualMarker).Hours() / 24)
	if elapsed < accrualWindowDays {
		return nil
	}

	completed, err := s.reports.CountCompletedBetween(ctx, employeeID, ledger.AccrualMarker, today)
	if err != nil {
		return fmt.Errorf("failed to count completed reports: %w", err)
	}
	if completed < accrualReportFloor {
		return nil
	}

	// The marker guard in the update keeps a concurrent double call from
	// granting the same window twice.
	return s.LedgerRepository.AdvanceAccrualMarker(ctx, employeeID, today, 1)
}
