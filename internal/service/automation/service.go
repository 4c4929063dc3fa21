package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/medirep/sfa-backend-go/internal/domain/attendance"
	"github.com/medirep/sfa-backend-go/internal/domain/dcr"
	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/medirep/sfa-backend-go/internal/domain/leave"
	"github.com/medirep/sfa-backend-go/internal/repository/postgresql"
)

// yearlyResetCasual is the casual grant every ledger resets to on April 1.
const yearlyResetCasual = 14

// SweepResult summarizes one run of the nightly sweep.
type SweepResult struct {
	Date      string `json:"date"`
	Swept     int    `json:"swept"`
	MarkedLWP int    `json:"marked_lwp"`
	Failed    int    `json:"failed"`
}

type AutomationService interface {
	// SweepYesterday settles yesterday's state for every active
	// non-admin employee. One employee's failure never aborts the rest.
	SweepYesterday(ctx context.Context) (SweepResult, error)
	// ResetLeaveYear restores casual balances for the new fiscal year.
	ResetLeaveYear(ctx context.Context) error
}

type AutomationServiceImpl struct {
	tx          postgresql.Transactor
	employees   employee.EmployeeRepository
	attendances attendance.AttendanceRepository
	reports     dcr.ReportRepository
	ledgers     leave.LedgerRepository
	requests    leave.RequestRepository

	now func() time.Time
}

func NewAutomationService(tx postgresql.Transactor, employeeRepository employee.EmployeeRepository, attendanceRepository attendance.AttendanceRepository, reportRepository dcr.ReportRepository, ledgerRepository leave.LedgerRepository, requestRepository leave.RequestRepository) AutomationService {
	return &AutomationServiceImpl{
		tx:          tx,
		employees:   employeeRepository,
		attendances: attendanceRepository,
		reports:     reportRepository,
		ledgers:     ledgerRepository,
		requests:    requestRepository,
		now:         time.Now,
	}
}

// SweepYesterday implements AutomationService.
func (s *AutomationServiceImpl) SweepYesterday(ctx context.Context) (SweepResult, error) {
	now := s.now()
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to list employees: %w", err)
	}

	result := SweepResult{Date: yesterday.Format("2006-01-02")}
	for _, emp := range employees {
		if emp.Role == employee.RoleAdmin {
			continue
		}
		result.Swept++

		marked, err := s.sweepOne(ctx, emp, yesterday)
		if err != nil {
			result.Failed++
			slog.Error("Cron: sweep failed for employee",
				"employee_id", emp.ID,
				"date", result.Date,
				"error", err)
			continue
		}
		if marked {
			result.MarkedLWP++
		}
	}

	return result, nil
}

// sweepOne settles one employee's yesterday. The boolean reports
// whether an absent plus leave-without-pay marking was applied.
func (s *AutomationServiceImpl) sweepOne(ctx context.Context, emp employee.Employee, date time.Time) (bool, error) {
	if emp.Role != employee.RoleHROH {
		report, err := s.reports.GetByDate(ctx, emp.ID, date)
		switch {
		case err == nil:
			if report.Status != dcr.ReportPending {
				return false, nil
			}
			// A day that never closed is sealed INCOMPLETE before the
			// absence marking.
			if err := s.reports.UpdateStatus(ctx, report.ID, dcr.ReportIncomplete); err != nil {
				return false, fmt.Errorf("failed to seal report: %w", err)
			}
		case !errors.Is(err, dcr.ErrReportNotFound):
			return false, fmt.Errorf("failed to get report: %w", err)
		}
	}

	covered, err := s.covered(ctx, emp.ID, date)
	if err != nil {
		return false, err
	}
	if covered {
		return false, nil
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.attendances.Mark(txCtx, attendance.Entry{
			EmployeeID: emp.ID,
			Date:       date,
			Title:      attendance.TitleAbsent,
		}); err != nil {
			return fmt.Errorf("failed to mark absent: %w", err)
		}

		reason := "no report filed"
		if _, err := s.requests.Create(txCtx, leave.Request{
			EmployeeID:  emp.ID,
			Type:        leave.TypeLWP,
			Status:      leave.StatusApproved,
			FromDate:    date,
			ToDate:      date,
			Reason:      reason,
			Consumed:    leave.Consumption{LWP: 1},
			RequestedAt: s.now(),
		}); err != nil {
			return fmt.Errorf("failed to record leave without pay: %w", err)
		}

		return s.ledgers.AdjustBalances(txCtx, emp.ID, 0, 0, 1)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *AutomationServiceImpl) covered(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	_, err := s.attendances.Get(ctx, employeeID, date)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, attendance.ErrEntryNotFound) {
		return false, fmt.Errorf("failed to check attendance: %w", err)
	}

	onLeave, err := s.requests.HasActiveCovering(ctx, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to check leave cover: %w", err)
	}
	return onLeave, nil
}

// ResetLeaveYear implements AutomationService. Privileged balances
// carry over; casual resets and the accrual window restarts.
func (s *AutomationServiceImpl) ResetLeaveYear(ctx context.Context) error {
	now := s.now()
	marker := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.ledgers.ResetYearly(ctx, yearlyResetCasual, marker)
}
