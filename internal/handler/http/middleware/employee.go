package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/medirep/sfa-backend-go/internal/domain/auth"
	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/medirep/sfa-backend-go/internal/handler/http/response"
)

type contextKey string

const employeeContextKey contextKey = "current_employee"

// EmployeeMiddleware resolves the authenticated employee once per request
// so handlers do not each hit the database for the same row.
type EmployeeMiddleware struct {
	employeeService employee.EmployeeService
}

func NewEmployeeMiddleware(employeeService employee.EmployeeService) *EmployeeMiddleware {
	return &EmployeeMiddleware{
		employeeService: employeeService,
	}
}

// LoadEmployee reads employee_id from the JWT claims, loads the employee
// and stores it on the request context.
func (m *EmployeeMiddleware) LoadEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		emp, err := m.employeeService.Get(r.Context(), employeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if emp.ArchivedAt != nil {
			response.HandleError(w, auth.ErrAccountArchived)
			return
		}

		ctx := context.WithValue(r.Context(), employeeContextKey, emp)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EmployeeFromContext returns the employee stored by LoadEmployee.
func EmployeeFromContext(ctx context.Context) (employee.Employee, bool) {
	emp, ok := ctx.Value(employeeContextKey).(employee.Employee)
	return emp, ok
}
