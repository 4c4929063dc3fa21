package dvl

import (
	"github.com/medirep/sfa-backend-go/internal/pkg/validator"
)

type AddDoctorRequest struct {
	Name           string  `json:"name"`
	Specialization *string `json:"specialization"`
	Place          string  `json:"place"`
}

func (r AddDoctorRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Doctor name is required"})
	}
	if validator.IsEmpty(r.Place) {
		errs = append(errs, validator.ValidationError{Field: "place", Message: "Place is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDoctorRequest struct {
	Name  *string `json:"name"`
	Place *string `json:"place"`
}

func (r UpdateDoctorRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil && r.Place == nil {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Nothing to update"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Doctor name cannot be empty"})
	}
	if r.Place != nil && validator.IsEmpty(*r.Place) {
		errs = append(errs, validator.ValidationError{Field: "place", Message: "Place cannot be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
