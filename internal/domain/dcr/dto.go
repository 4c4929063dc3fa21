package dcr

import (
	"github.com/medirep/sfa-backend-go/internal/pkg/validator"
)

type CreateDailyReportRequest struct {
	WorkStatus string  `json:"work_status"`
	StartLat   float64 `json:"start_lat"`
	StartLon   float64 `json:"start_lon"`
}

func (r CreateDailyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	status := WorkStatus(r.WorkStatus)
	if !status.Valid() || status == WorkStatusMeeting || status == WorkStatusTraining || status == WorkStatusAdminDay {
		errs = append(errs, validator.ValidationError{Field: "work_status", Message: "Work status must be WORKING, CAMP or JOINING"})
	}
	if r.StartLat == 0 && r.StartLon == 0 {
		errs = append(errs, validator.ValidationError{Field: "start_lat", Message: "Start location is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateFromPlanRequest files a WORKING report for a planned tour date.
// The place comes from the tour plan entry, so no geocoding happens.
type CreateFromPlanRequest struct {
	Date  string `json:"date"`
	Place string `json:"place"`
}

func (r CreateFromPlanRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "Date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Place) {
		errs = append(errs, validator.ValidationError{Field: "place", Message: "Place is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateMeetingReportRequest struct {
	FromDate string  `json:"from_date"`
	ToDate   string  `json:"to_date"`
	Agenda   string  `json:"agenda"`
	StartLat float64 `json:"start_lat"`
	StartLon float64 `json:"start_lon"`
}

func (r CreateMeetingReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.FromDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "From date must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.ToDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "To date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Agenda) {
		errs = append(errs, validator.ValidationError{Field: "agenda", Message: "Meeting agenda is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateTrainingReportRequest struct {
	PartnerRole string  `json:"partner_role"`
	StartLat    float64 `json:"start_lat"`
	StartLon    float64 `json:"start_lon"`
}

func (r CreateTrainingReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PartnerRole) {
		errs = append(errs, validator.ValidationError{Field: "partner_role", Message: "Partner role is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateAdminDayReportRequest struct {
	StartLat float64 `json:"start_lat"`
	StartLon float64 `json:"start_lon"`
}

type AddDoctorVisitRequest struct {
	DoctorID    string `json:"doctor_id"`
	PartnerRole string `json:"partner_role"` // "SELF" or an ancestor role
}

func (r AddDoctorVisitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DoctorID) {
		errs = append(errs, validator.ValidationError{Field: "doctor_id", Message: "Doctor is required"})
	}
	if validator.IsEmpty(r.PartnerRole) {
		errs = append(errs, validator.ValidationError{Field: "partner_role", Message: "Partner role is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddCSVisitRequest struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	PartnerRole string `json:"partner_role"`
}

func (r AddCSVisitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}
	if r.Kind != CSKindChemist && r.Kind != CSKindStockist {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "Kind must be CHEMIST or STOCKIST"})
	}
	if validator.IsEmpty(r.PartnerRole) {
		errs = append(errs, validator.ValidationError{Field: "partner_role", Message: "Partner role is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CompleteVisitRequest struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	PhotoURL string  `json:"-"`
}

type IncompleteVisitRequest struct {
	Remarks string `json:"remarks"`
}

type CompleteReportRequest struct {
	EndLat float64 `json:"end_lat"`
	EndLon float64 `json:"end_lon"`
}

// UpdateStartLocationRequest corrects a report's start point after the
// fact, for example when the phone's first GPS fix was off.
type UpdateStartLocationRequest struct {
	StartLat float64 `json:"start_lat"`
	StartLon float64 `json:"start_lon"`
}

func (r UpdateStartLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartLat == 0 && r.StartLon == 0 {
		errs = append(errs, validator.ValidationError{Field: "start_lat", Message: "Start location is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CompleteReportResult carries a completion outcome plus a non-fatal
// notice (attendance already marked) the client shows as a warning.
type CompleteReportResult struct {
	Report Report `json:"report"`
	Notice string `json:"notice,omitempty"`
}
