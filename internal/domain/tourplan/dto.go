package tourplan

import (
	"github.com/medirep/sfa-backend-go/internal/pkg/validator"
)

type PlanEntryInput struct {
	Date    string  `json:"date"`
	Place   string  `json:"place"`
	Remarks *string `json:"remarks"`
}

type CreatePlanRequest struct {
	Entries []PlanEntryInput `json:"entries"`
}

func (r CreatePlanRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Entries) == 0 {
		errs = append(errs, validator.ValidationError{Field: "entries", Message: "At least one entry is required"})
	}
	for _, e := range r.Entries {
		if _, ok := validator.IsValidDate(e.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "entries", Message: "Entry dates must be YYYY-MM-DD"})
			break
		}
	}
	for _, e := range r.Entries {
		if validator.IsEmpty(e.Place) {
			errs = append(errs, validator.ValidationError{Field: "entries", Message: "Every entry needs a place"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveDatesRequest struct {
	EmployeeID string   `json:"employee_id"`
	Dates      []string `json:"dates"`
}

func (r ApproveDatesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Employee is required"})
	}
	if len(r.Dates) == 0 {
		errs = append(errs, validator.ValidationError{Field: "dates", Message: "At least one date is required"})
	}
	for _, d := range r.Dates {
		if _, ok := validator.IsValidDate(d); !ok {
			errs = append(errs, validator.ValidationError{Field: "dates", Message: "Dates must be YYYY-MM-DD"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
