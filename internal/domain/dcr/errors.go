package dcr

import "errors"

var (
	ErrReportExists      = errors.New("a report already exists for this date")
	ErrReportNotFound    = errors.New("report not found")
	ErrVisitNotFound     = errors.New("visit not found")
	ErrNotReportOwner    = errors.New("report belongs to another employee")
	ErrReportHasVisits   = errors.New("report with visits cannot be deleted")
	ErrVisitsNotTerminal = errors.New("report has visits that are not yet closed")
	ErrVisitProcessed    = errors.New("visit is already closed")
	ErrPartnerIsAdmin    = errors.New("cannot work with an admin")
	ErrPartnerRole       = errors.New("resolved partner does not match the requested role")
	ErrPartnerOnLeave    = errors.New("partner is on leave for this date")
	ErrPartnerOnWeekOff  = errors.New("partner is on week off for this date")
	ErrPartnerCallOpen   = errors.New("partner has not closed their copy of this call")
	ErrDoctorNotApproved = errors.New("doctor is not on the approved visit list")
	ErrRemarksRequired   = errors.New("remarks are required to mark a call incomplete")
	ErrInvalidDateRange  = errors.New("from date is after to date")
)
