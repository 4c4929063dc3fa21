package dvl

import (
	"context"
	"fmt"

	"github.com/medirep/sfa-backend-go/internal/domain/dvl"
	"github.com/medirep/sfa-backend-go/internal/domain/employee"
)

type DVLServiceImpl struct {
	dvl.DoctorRepository
	employees employee.EmployeeRepository
}

func NewDVLService(doctorRepository dvl.DoctorRepository, employeeRepository employee.EmployeeRepository) dvl.DVLService {
	return &DVLServiceImpl{
		DoctorRepository: doctorRepository,
		employees:        employeeRepository,
	}
}

// Add implements dvl.DVLService.
func (s *DVLServiceImpl) Add(ctx context.Context, viewer employee.Employee, req dvl.AddDoctorRequest) (dvl.Doctor, error) {
	action := dvl.ActionAdd
	return s.DoctorRepository.Create(ctx, dvl.Doctor{
		EmployeeID:     viewer.ID,
		Name:           req.Name,
		Specialization: req.Specialization,
		Place:          req.Place,
		Approved:       false,
		PendingAction:  &action,
	})
}

// RequestUpdate implements dvl.DVLService.
func (s *DVLServiceImpl) RequestUpdate(ctx context.Context, viewer employee.Employee, doctorID string, req dvl.UpdateDoctorRequest) (dvl.Doctor, error) {
	doctor, err := s.ownedDoctor(ctx, viewer, doctorID)
	if err != nil {
		return dvl.Doctor{}, err
	}
	if doctor.PendingAction != nil {
		return dvl.Doctor{}, dvl.ErrActionInProgress
	}

	action := dvl.ActionUpdate
	doctor.PendingAction = &action
	doctor.PendingName = req.Name
	doctor.PendingPlace = req.Place

	if err := s.DoctorRepository.Update(ctx, doctor); err != nil {
		return dvl.Doctor{}, err
	}
	return doctor, nil
}

// RequestDelete implements dvl.DVLService.
func (s *DVLServiceImpl) RequestDelete(ctx context.Context, viewer employee.Employee, doctorID string) (dvl.Doctor, error) {
	doctor, err := s.ownedDoctor(ctx, viewer, doctorID)
	if err != nil {
		return dvl.Doctor{}, err
	}
	if doctor.PendingAction != nil {
		return dvl.Doctor{}, dvl.ErrActionInProgress
	}

	action := dvl.ActionDelete
	doctor.PendingAction = &action

	if err := s.DoctorRepository.Update(ctx, doctor); err != nil {
		return dvl.Doctor{}, err
	}
	return doctor, nil
}

// Approve implements dvl.DVLService.
func (s *DVLServiceImpl) Approve(ctx context.Context, doctorID string) (dvl.Doctor, error) {
	doctor, err := s.DoctorRepository.GetByID(ctx, doctorID)
	if err != nil {
		return dvl.Doctor{}, err
	}
	if doctor.PendingAction == nil {
		return dvl.Doctor{}, dvl.ErrNoPendingAction
	}

	switch *doctor.PendingAction {
	case dvl.ActionAdd:
		doctor.Approved = true
	case dvl.ActionUpdate:
		if doctor.PendingName != nil {
			doctor.Name = *doctor.PendingName
		}
		if doctor.PendingPlace != nil {
			doctor.Place = *doctor.PendingPlace
		}
	case dvl.ActionDelete:
		if err := s.DoctorRepository.Delete(ctx, doctorID); err != nil {
			return dvl.Doctor{}, err
		}
		return doctor, nil
	}

	doctor.PendingAction = nil
	doctor.PendingName = nil
	doctor.PendingPlace = nil

	if err := s.DoctorRepository.Update(ctx, doctor); err != nil {
		return dvl.Doctor{}, err
	}
	return doctor, nil
}

// Reject implements dvl.DVLService. Rejecting a pending ADD removes the
// entry; otherwise the pending change is simply discarded.
func (s *DVLServiceImpl) Reject(ctx context.Context, doctorID string) error {
	doctor, err := s.DoctorRepository.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor.PendingAction == nil {
		return dvl.ErrNoPendingAction
	}

	if *doctor.PendingAction == dvl.ActionAdd {
		return s.DoctorRepository.Delete(ctx, doctorID)
	}

	doctor.PendingAction = nil
	doctor.PendingName = nil
	doctor.PendingPlace = nil
	return s.DoctorRepository.Update(ctx, doctor)
}

// ListApproved implements dvl.DVLService.
func (s *DVLServiceImpl) ListApproved(ctx context.Context, employeeID string) ([]dvl.Doctor, error) {
	return s.DoctorRepository.ListApproved(ctx, employeeID)
}

// ListPending implements dvl.DVLService.
func (s *DVLServiceImpl) ListPending(ctx context.Context, viewer employee.Employee) ([]dvl.Doctor, error) {
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
		ids = append(ids, m.ID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	return s.DoctorRepository.ListPendingByEmployees(ctx, ids)
}

func (s *DVLServiceImpl) ownedDoctor(ctx context.Context, viewer employee.Employee, doctorID string) (dvl.Doctor, error) {
	doctor, err := s.DoctorRepository.GetByID(ctx, doctorID)
	if err != nil {
		return dvl.Doctor{}, err
	}
	if doctor.EmployeeID != viewer.ID {
		return dvl.Doctor{}, dvl.ErrNotRosterOwner
	}
	return doctor, nil
}
