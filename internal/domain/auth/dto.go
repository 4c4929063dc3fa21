package auth

import (
	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/medirep/sfa-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	// Identifier is an email address or an employee code.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Identifier) {
		errs = append(errs, validator.ValidationError{Field: "identifier", Message: "Email or employee code is required"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken  string            `json:"access_token"`
	ExpiresAt    int64             `json:"expires_at"`
	RefreshToken string            `json:"-"`
	RefreshExp   int64             `json:"-"`
	Employee     employee.Employee `json:"employee"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OldPassword) {
		errs = append(errs, validator.ValidationError{Field: "old_password", Message: "Old password is required"})
	}
	if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{Field: "new_password", Message: "New password must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
