package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/medirep/sfa-backend-go/internal/domain/attendance"
	"github.com/medirep/sfa-backend-go/internal/domain/auth"
	"github.com/medirep/sfa-backend-go/internal/domain/dcr"
	"github.com/medirep/sfa-backend-go/internal/domain/dvl"
	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/medirep/sfa-backend-go/internal/domain/leave"
	"github.com/medirep/sfa-backend-go/internal/domain/master/headquarter"
	"github.com/medirep/sfa-backend-go/internal/domain/master/holiday"
	"github.com/medirep/sfa-backend-go/internal/domain/master/notice"
	"github.com/medirep/sfa-backend-go/internal/domain/master/product"
	"github.com/medirep/sfa-backend-go/internal/domain/tourplan"
	"github.com/medirep/sfa-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A blocked manager plan carries the names of the reports still
	// missing theirs.
	var downlineMissing *tourplan.DownlineMissingError
	if errors.As(err, &downlineMissing) {
		Warning(w, "Direct reports have not filed their tour plans yet", map[string]string{
			"missing": strings.Join(downlineMissing.Missing, ", "),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountArchived):
		Forbidden(w, "Account is archived")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeArchived):
		Conflict(w, "Employee is archived")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrParentNotFound):
		BadRequest(w, "Parent employee not found", nil)
	case errors.Is(err, employee.ErrReparentCycle):
		BadRequest(w, "Cannot move an employee under their own downline", nil)
	case errors.Is(err, employee.ErrInvalidRole):
		BadRequest(w, "Unknown role", nil)
	case errors.Is(err, employee.ErrNoEligibleAncestor):
		NotFound(w, "No ancestor with the requested role")

	// Leave domain errors
	case errors.Is(err, leave.ErrLedgerNotFound):
		NotFound(w, "Leave ledger not found")
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "From date is after to date", nil)
	case errors.Is(err, leave.ErrBalanceExhausted):
		Warning(w, "Leave balance is exhausted for the requested type", nil)
	case errors.Is(err, leave.ErrCasualMonthlyCap):
		Warning(w, "Casual leave is capped at 3 days per month", nil)
	case errors.Is(err, leave.ErrOverlappingRequest):
		Warning(w, "An existing leave request already covers this range", nil)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrAlreadyRejected):
		Conflict(w, "Leave request already rejected")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Only the requesting employee may delete this request")
	case errors.Is(err, leave.ErrDeleteNonPending):
		BadRequest(w, "Only pending leave requests can be deleted", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyMarked):
		Warning(w, "Attendance already marked for this date", nil)
	case errors.Is(err, attendance.ErrEntryNotFound):
		NotFound(w, "Attendance entry not found")
	case errors.Is(err, attendance.ErrWeekOffNotEarned):
		Warning(w, "No completed holiday workday available to trade", nil)
	case errors.Is(err, attendance.ErrWeekOffAlreadyTaken):
		Warning(w, "Week off already taken for this holiday workday", nil)
	case errors.Is(err, attendance.ErrWeekOffOutsideMonth):
		Warning(w, "Week off can only trade a holiday workday from the current month", nil)

	// Tour plan domain errors
	case errors.Is(err, tourplan.ErrPlanExists):
		Conflict(w, "Tour plan already exists for the month")
	case errors.Is(err, tourplan.ErrPlanNotFound):
		NotFound(w, "Tour plan not found")
	case errors.Is(err, tourplan.ErrEntryNotFound):
		NotFound(w, "Tour plan entry not found")
	case errors.Is(err, tourplan.ErrOutsideWindow):
		Warning(w, "Outside the tour plan window", nil)
	case errors.Is(err, tourplan.ErrDateOutsideMonth):
		BadRequest(w, "Entry date falls outside the target month", nil)
	case errors.Is(err, tourplan.ErrApprovalNotAllowed):
		Forbidden(w, "Not allowed to approve this tour plan")

	// Report domain errors
	case errors.Is(err, dcr.ErrReportExists):
		Conflict(w, "A report already exists for this date")
	case errors.Is(err, dcr.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, dcr.ErrVisitNotFound):
		NotFound(w, "Visit not found")
	case errors.Is(err, dcr.ErrNotReportOwner):
		Forbidden(w, "Report belongs to another employee")
	case errors.Is(err, dcr.ErrReportHasVisits):
		BadRequest(w, "A report with visits cannot be deleted", nil)
	case errors.Is(err, dcr.ErrVisitsNotTerminal):
		Warning(w, "Close every visit before completing the report", nil)
	case errors.Is(err, dcr.ErrVisitProcessed):
		Conflict(w, "Visit is already closed")
	case errors.Is(err, dcr.ErrPartnerIsAdmin):
		BadRequest(w, "Cannot work with an admin", nil)
	case errors.Is(err, dcr.ErrPartnerRole):
		BadRequest(w, "Unknown partner role", nil)
	case errors.Is(err, dcr.ErrPartnerOnLeave):
		Warning(w, "Partner is on leave for this date", nil)
	case errors.Is(err, dcr.ErrPartnerOnWeekOff):
		Warning(w, "Partner is on week off for this date", nil)
	case errors.Is(err, dcr.ErrPartnerCallOpen):
		Warning(w, "The partner has not closed their copy of this call", nil)
	case errors.Is(err, dcr.ErrDoctorNotApproved):
		BadRequest(w, "Doctor is not on the approved visit list", nil)
	case errors.Is(err, dcr.ErrRemarksRequired):
		BadRequest(w, "Remarks are required to mark a call incomplete", nil)
	case errors.Is(err, dcr.ErrInvalidDateRange):
		BadRequest(w, "From date is after to date", nil)

	// Doctor roster errors
	case errors.Is(err, dvl.ErrDoctorNotFound):
		NotFound(w, "Doctor not found")
	case errors.Is(err, dvl.ErrNotRosterOwner):
		Forbidden(w, "Doctor belongs to another employee's roster")
	case errors.Is(err, dvl.ErrNoPendingAction):
		BadRequest(w, "Doctor has no pending action", nil)
	case errors.Is(err, dvl.ErrActionInProgress):
		Conflict(w, "Doctor already has a pending action")

	// Reference data errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")
	case errors.Is(err, product.ErrProductNotFound):
		NotFound(w, "Product not found")
	case errors.Is(err, product.ErrCategoryNotFound):
		NotFound(w, "Product category not found")
	case errors.Is(err, product.ErrCategoryExists):
		Conflict(w, "Product category already exists")
	case errors.Is(err, headquarter.ErrHeadquarterNotFound):
		NotFound(w, "Headquarter not found")
	case errors.Is(err, headquarter.ErrHeadquarterExists):
		Conflict(w, "Headquarter already exists")
	case errors.Is(err, headquarter.ErrPlaceNotFound):
		NotFound(w, "Place not found")
	case errors.Is(err, notice.ErrNoticeNotFound):
		NotFound(w, "Notice not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
