package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeArchived   = errors.New("employee is archived")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrEmailExists        = errors.New("email already registered")
	ErrParentNotFound     = errors.New("parent employee not found")
	ErrReparentCycle      = errors.New("new parent is a descendant of the employee")
	ErrInvalidRole        = errors.New("invalid employee role")
	ErrNoEligibleAncestor = errors.New("no ancestor with the requested role")
)
