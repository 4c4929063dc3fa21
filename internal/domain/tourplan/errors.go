package tourplan

import "errors"

var (
	ErrPlanExists         = errors.New("tour plan already exists for the month")
	ErrPlanNotFound       = errors.New("tour plan not found")
	ErrEntryNotFound      = errors.New("tour plan entry not found")
	ErrOutsideWindow      = errors.New("outside the tour plan window")
	ErrDownlineMissing    = errors.New("direct reports are missing tour plans")
	ErrDateOutsideMonth   = errors.New("entry date falls outside the target month")
	ErrApprovalNotAllowed = errors.New("not allowed to approve tour plans")
)

// DownlineMissingError names the direct reports blocking a manager's
// plan creation. It matches ErrDownlineMissing under errors.Is.
type DownlineMissingError struct {
	Missing []string
}

func (e *DownlineMissingError) Error() string {
	return ErrDownlineMissing.Error()
}

func (e *DownlineMissingError) Unwrap() error {
	return ErrDownlineMissing
}
