package employee

import (
	"github.com/medirep/sfa-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode  string  `json:"employee_code"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Phone         *string `json:"phone"`
	Role          string  `json:"role"`
	ParentID      *string `json:"parent_id"`
	HeadquarterID *string `json:"headquarter_id"`
	JoiningDate   string  `json:"joining_date"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "Employee code is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "Full name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "A valid email is required"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password must be at least 8 characters"})
	}
	if !Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "Unknown role"})
	}
	if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "Joining date must be YYYY-MM-DD"})
	}
	if Role(r.Role) != RoleAdmin && r.ParentID == nil {
		errs = append(errs, validator.ValidationError{Field: "parent_id", Message: "Parent is required for non-admin roles"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FullName      *string `json:"full_name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Role          *string `json:"role"`
	ParentID      *string `json:"parent_id"`
	HeadquarterID *string `json:"headquarter_id"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "A valid email is required"})
	}
	if r.Role != nil && !Role(*r.Role).Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "Unknown role"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DashboardCounts is the summary block shown on the mobile home screen.
type DashboardCounts struct {
	DownlineCount int `json:"downline_count"`
	PendingLeaves int `json:"pending_leaves"`
	TourPlanYear  int `json:"tour_plan_year"`
	TourPlanMonth int `json:"tour_plan_month"`
}
