package dvl

import "errors"

var (
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrNotRosterOwner   = errors.New("doctor belongs to another employee's roster")
	ErrNoPendingAction  = errors.New("doctor has no pending action to approve")
	ErrActionInProgress = errors.New("doctor already has a pending action")
)
