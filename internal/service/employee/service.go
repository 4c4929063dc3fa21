package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/medirep/sfa-backend-go/internal/domain/leave"
	"github.com/medirep/sfa-backend-go/internal/domain/tourplan"
	"github.com/medirep/sfa-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

// casualPerYear is the full casual-leave grant for a fiscal year (April
// through March). New joiners get a pro-rated share of it.
const casualPerYear = 14

type EmployeeServiceImpl struct {
	tx postgresql.Transactor
	employee.EmployeeRepository
	leave.LedgerRepository
	leaveRequests leave.RequestRepository
	tourPlans     tourplan.TourPlanRepository

	now func() time.Time
}

func NewEmployeeService(tx postgresql.Transactor, employeeRepository employee.EmployeeRepository, ledgerRepository leave.LedgerRepository, requestRepository leave.RequestRepository, tourPlanRepository tourplan.TourPlanRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:                 tx,
		EmployeeRepository: employeeRepository,
		LedgerRepository:   ledgerRepository,
		leaveRequests:      requestRepository,
		tourPlans:          tourPlanRepository,
		now:                time.Now,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	role := employee.Role(req.Role)

	if req.ParentID != nil {
		parent, err := s.EmployeeRepository.GetByID(ctx, *req.ParentID)
		if err != nil {
			if err == employee.ErrEmployeeNotFound {
				return employee.Employee{}, employee.ErrParentNotFound
			}
			return employee.Employee{}, fmt.Errorf("failed to get parent: %w", err)
		}
		if parent.Archived() {
			return employee.Employee{}, employee.ErrParentNotFound
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to hash password: %w", err)
	}

	joiningDate, _ := time.Parse("2006-01-02", req.JoiningDate)

	var created employee.Employee
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.EmployeeRepository.Create(txCtx, employee.Employee{
			EmployeeCode:  req.EmployeeCode,
			FullName:      req.FullName,
			Email:         req.Email,
			PasswordHash:  string(hash),
			Phone:         req.Phone,
			Role:          role,
			ParentID:      req.ParentID,
			HeadquarterID: req.HeadquarterID,
			JoiningDate:   joiningDate,
		})
		if err != nil {
			return err
		}

		_, err = s.LedgerRepository.Create(txCtx, leave.Ledger{
			EmployeeID:    created.ID,
			CasualCount:   proRatedCasual(joiningDate),
			AccrualMarker: joiningDate,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	return created, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.EmployeeRepository.GetByID(ctx, id)
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.Archived() {
		return employee.Employee{}, employee.ErrEmployeeArchived
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Phone != nil {
		emp.Phone = req.Phone
	}
	if req.Role != nil {
		emp.Role = employee.Role(*req.Role)
	}
	if req.HeadquarterID != nil {
		emp.HeadquarterID = req.HeadquarterID
	}
	if req.ParentID != nil {
		if *req.ParentID == id {
			return employee.Employee{}, employee.ErrReparentCycle
		}
		// Re-pointing a manager under their own downline would orbit the
		// tree. The check and the write commit together so two
		// concurrent moves cannot interleave into a cycle.
		err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			descendant, err := s.EmployeeRepository.IsDescendant(txCtx, id, *req.ParentID)
			if err != nil {
				return fmt.Errorf("failed to check hierarchy: %w", err)
			}
			if descendant {
				return employee.ErrReparentCycle
			}
			if _, err := s.EmployeeRepository.GetByID(txCtx, *req.ParentID); err != nil {
				if err == employee.ErrEmployeeNotFound {
					return employee.ErrParentNotFound
				}
				return err
			}
			emp.ParentID = req.ParentID
			return s.EmployeeRepository.Update(txCtx, emp)
		})
		if err != nil {
			return employee.Employee{}, err
		}
		return emp, nil
	}

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

// Archive implements employee.EmployeeService. Children of the archived
// employee are re-pointed at its parent so the tree stays connected.
func (s *EmployeeServiceImpl) Archive(ctx context.Context, id string) error {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if emp.Archived() {
		return employee.ErrEmployeeArchived
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		children, err := s.EmployeeRepository.ListChildren(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to list children: %w", err)
		}
		for _, child := range children {
			child.ParentID = emp.ParentID
			if err := s.EmployeeRepository.Update(txCtx, child); err != nil {
				return fmt.Errorf("failed to re-point child %s: %w", child.ID, err)
			}
		}

		return s.EmployeeRepository.Archive(txCtx, id, time.Now())
	})
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.Employee, error) {
	return s.EmployeeRepository.ListActive(ctx)
}

// Downline implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Downline(ctx context.Context, viewer employee.Employee) ([]employee.Employee, error) {
	if viewer.Role.SeesWholeOrg() {
		return s.EmployeeRepository.ListActive(ctx)
	}
	return s.EmployeeRepository.ListDownline(ctx, viewer.ID)
}

// Dashboard implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Dashboard(ctx context.Context, viewer employee.Employee) (employee.DashboardCounts, error) {
	downline, err := s.Downline(ctx, viewer)
	if err != nil {
		return employee.DashboardCounts{}, err
	}

	ids := make([]string, 0, len(downline))
	for _, d := range downline {
		if d.ID != viewer.ID {
			ids = append(ids, d.ID)
		}
	}

	var pendingLeaves int
	if len(ids) > 0 {
		pending, err := s.leaveRequests.ListPendingByEmployees(ctx, ids)
		if err != nil {
			return employee.DashboardCounts{}, fmt.Errorf("failed to list pending leaves: %w", err)
		}
		pendingLeaves = len(pending)
	}

	// The dashboard advertises the month the viewer should be planning for.
	target := tourPlanTarget(s.now())

	return employee.DashboardCounts{
		DownlineCount: len(ids),
		PendingLeaves: pendingLeaves,
		TourPlanYear:  target.Year(),
		TourPlanMonth: int(target.Month()),
	}, nil
}

// tourPlanTarget is the month whose plan currently matters: the running
// month until the 20th, then it rolls forward to the next one.
func tourPlanTarget(now time.Time) time.Time {
	if now.Day() > 20 {
		return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	}
	return now
}

// proRatedCasual scales the yearly casual grant by the whole months left
// in the fiscal year, which runs April through March.
func proRatedCasual(joining time.Time) int {
	month := int(joining.Month())
	var remaining int
	if month >= 4 {
		remaining = 12 - (month - 4)
	} else {
		remaining = 4 - month
	}
	return (casualPerYear*remaining + 6) / 12
}
