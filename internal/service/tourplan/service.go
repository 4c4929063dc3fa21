package tourplan

import (
	"context"
	"fmt"
	"time"

	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/medirep/sfa-backend-go/internal/domain/tourplan"
)

// Plans are filed in the last stretch of the prior month. Field reps
// close earlier so their managers have time to review.
const (
	windowOpenDay        = 20
	windowCloseDayTBM    = 25
	windowCloseDayOthers = 27
)

type TourPlanServiceImpl struct {
	tourplan.TourPlanRepository
	employees employee.EmployeeRepository

	// now is swappable for tests.
	now func() time.Time
}

func NewTourPlanService(tourPlanRepository tourplan.TourPlanRepository, employeeRepository employee.EmployeeRepository) tourplan.TourPlanService {
	return &TourPlanServiceImpl{
		TourPlanRepository: tourPlanRepository,
		employees:          employeeRepository,
		now:                time.Now,
	}
}

// Create implements tourplan.TourPlanService.
func (s *TourPlanServiceImpl) Create(ctx context.Context, viewer employee.Employee, req tourplan.CreatePlanRequest) ([]tourplan.Entry, error) {
	target := s.targetMonth()

	useFlag, err := s.checkCreateWindow(ctx, viewer)
	if err != nil {
		return nil, err
	}

	exists, err := s.TourPlanRepository.HasMonth(ctx, viewer.ID, target.Year(), int(target.Month()))
	if err != nil {
		return nil, fmt.Errorf("failed to check existing plan: %w", err)
	}
	if exists {
		return nil, tourplan.ErrPlanExists
	}

	if viewer.Role != employee.RoleTBM {
		missing, err := s.MissingDownline(ctx, viewer, target.Year(), int(target.Month()))
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, &tourplan.DownlineMissingError{Missing: missing}
		}
	}

	entries, err := s.buildEntries(viewer.ID, target, req.Entries)
	if err != nil {
		return nil, err
	}

	if err := s.TourPlanRepository.BulkCreate(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	if useFlag {
		if err := s.consumeFlag(ctx, viewer.ID, true, false); err != nil {
			return nil, err
		}
	}

	return s.TourPlanRepository.ListMonth(ctx, viewer.ID, target.Year(), int(target.Month()))
}

// Update implements tourplan.TourPlanService. Changing an entry's place
// voids its approval; remark-only edits keep it.
func (s *TourPlanServiceImpl) Update(ctx context.Context, viewer employee.Employee, req tourplan.CreatePlanRequest) ([]tourplan.Entry, error) {
	target := s.targetMonth()

	useFlag, err := s.checkCreateWindow(ctx, viewer)
	if err != nil {
		return nil, err
	}

	exists, err := s.TourPlanRepository.HasMonth(ctx, viewer.ID, target.Year(), int(target.Month()))
	if err != nil {
		return nil, fmt.Errorf("failed to check existing plan: %w", err)
	}
	if !exists {
		return nil, tourplan.ErrPlanNotFound
	}

	for _, input := range req.Entries {
		date, _ := time.Parse("2006-01-02", input.Date)
		if date.Year() != target.Year() || date.Month() != target.Month() {
			return nil, tourplan.ErrDateOutsideMonth
		}

		entry, err := s.TourPlanRepository.GetByDate(ctx, viewer.ID, date)
		if err != nil {
			return nil, err
		}

		if entry.Place != input.Place {
			entry.Place = input.Place
			entry.Approved = false
		}
		entry.Remarks = input.Remarks

		if err := s.TourPlanRepository.UpdateEntry(ctx, entry); err != nil {
			return nil, err
		}
	}

	if useFlag {
		if err := s.consumeFlag(ctx, viewer.ID, true, false); err != nil {
			return nil, err
		}
	}

	return s.TourPlanRepository.ListMonth(ctx, viewer.ID, target.Year(), int(target.Month()))
}

// Month implements tourplan.TourPlanService.
func (s *TourPlanServiceImpl) Month(ctx context.Context, employeeID string, year int, month int) ([]tourplan.Entry, error) {
	return s.TourPlanRepository.ListMonth(ctx, employeeID, year, month)
}

// ApproveDates implements tourplan.TourPlanService.
func (s *TourPlanServiceImpl) ApproveDates(ctx context.Context, viewer employee.Employee, req tourplan.ApproveDatesRequest) (int, error) {
	if viewer.Role == employee.RoleTBM {
		return 0, tourplan.ErrApprovalNotAllowed
	}

	var useFlag bool
	if viewer.Role != employee.RoleAdmin {
		managed, err := s.employees.IsDescendant(ctx, viewer.ID, req.EmployeeID)
		if err != nil {
			return 0, fmt.Errorf("failed to check hierarchy: %w", err)
		}
		if !managed {
			return 0, tourplan.ErrApprovalNotAllowed
		}

		day := s.now().Day()
		if day < windowOpenDay || day > windowCloseDayOthers {
			flags, err := s.TourPlanRepository.GetFlags(ctx, viewer.ID)
			if err != nil {
				return 0, fmt.Errorf("failed to get override flags: %w", err)
			}
			if !flags.ExtraDayForApprove {
				return 0, tourplan.ErrOutsideWindow
			}
			useFlag = true
		}
	}

	var flipped int
	for _, input := range req.Dates {
		date, _ := time.Parse("2006-01-02", input)
		changed, err := s.TourPlanRepository.ApproveDate(ctx, req.EmployeeID, date)
		if err != nil {
			// The override survives a failed batch so the approver can retry.
			return flipped, err
		}
		if changed {
			flipped++
		}
	}

	if useFlag {
		if err := s.consumeFlag(ctx, viewer.ID, false, true); err != nil {
			return flipped, err
		}
	}
	return flipped, nil
}

// GrantOverride implements tourplan.TourPlanService.
func (s *TourPlanServiceImpl) GrantOverride(ctx context.Context, employeeID string, forCreate, forApprove bool) error {
	flags, err := s.TourPlanRepository.GetFlags(ctx, employeeID)
	if err != nil {
		return err
	}
	if forCreate {
		flags.ExtraDayForCreate = true
	}
	if forApprove {
		flags.ExtraDayForApprove = true
	}
	flags.EmployeeID = employeeID
	return s.TourPlanRepository.SetFlags(ctx, flags)
}

// MissingDownline implements tourplan.TourPlanService.
func (s *TourPlanServiceImpl) MissingDownline(ctx context.Context, viewer employee.Employee, year int, month int) ([]string, error) {
	children, err := s.employees.ListChildren(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list direct reports: %w", err)
	}

	var missing []string
	for _, child := range children {
		has, err := s.TourPlanRepository.HasMonth(ctx, child.ID, year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to check plan for %s: %w", child.ID, err)
		}
		if !has {
			missing = append(missing, child.FullName)
		}
	}
	return missing, nil
}

func (s *TourPlanServiceImpl) targetMonth() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

// checkCreateWindow validates today against the role's filing window.
// The boolean reports that the one-shot override carried the check and
// must be consumed after a successful write.
func (s *TourPlanServiceImpl) checkCreateWindow(ctx context.Context, viewer employee.Employee) (bool, error) {
	closeDay := windowCloseDayOthers
	if viewer.Role == employee.RoleTBM {
		closeDay = windowCloseDayTBM
	}

	day := s.now().Day()
	if day >= windowOpenDay && day <= closeDay {
		return false, nil
	}

	flags, err := s.TourPlanRepository.GetFlags(ctx, viewer.ID)
	if err != nil {
		return false, fmt.Errorf("failed to get override flags: %w", err)
	}
	if !flags.ExtraDayForCreate {
		return false, tourplan.ErrOutsideWindow
	}
	return true, nil
}

func (s *TourPlanServiceImpl) consumeFlag(ctx context.Context, employeeID string, create, approve bool) error {
	flags, err := s.TourPlanRepository.GetFlags(ctx, employeeID)
	if err != nil {
		return err
	}
	if create {
		flags.ExtraDayForCreate = false
	}
	if approve {
		flags.ExtraDayForApprove = false
	}
	return s.TourPlanRepository.SetFlags(ctx, flags)
}

func (s *TourPlanServiceImpl) buildEntries(employeeID string, target time.Time, inputs []tourplan.PlanEntryInput) ([]tourplan.Entry, error) {
	entries := make([]tourplan.Entry, 0, len(inputs))
	for _, input := range inputs {
		date, _ := time.Parse("2006-01-02", input.Date)
		if date.Year() != target.Year() || date.Month() != target.Month() {
			return nil, tourplan.ErrDateOutsideMonth
		}
		entries = append(entries, tourplan.Entry{
			EmployeeID: employeeID,
			Year:       target.Year(),
			Month:      int(target.Month()),
			Date:       date,
			Place:      input.Place,
			Remarks:    input.Remarks,
		})
	}
	return entries, nil
}
