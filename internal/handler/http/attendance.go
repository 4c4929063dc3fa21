package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/medirep/sfa-backend-go/internal/domain/attendance"
	"github.com/medirep/sfa-backend-go/internal/handler/http/middleware"
	"github.com/medirep/sfa-backend-go/internal/handler/http/response"
	"github.com/medirep/sfa-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Month(w http.ResponseWriter, r *http.Request)
	WeekOffAvailability(w http.ResponseWriter, r *http.Request)
	TakeWeekOff(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

// Month implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Month(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		employeeID = viewer.ID
	}

	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "Year must be a number", nil)
			return
		}
		year = parsed
	}
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			response.BadRequest(w, "Month must be between 1 and 12", nil)
			return
		}
		month = time.Month(parsed)
	}

	days, err := h.attendanceService.Month(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}

// WeekOffAvailability implements AttendanceHandler.
func (h *AttendanceHandlerImpl) WeekOffAvailability(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	availability, err := h.attendanceService.WeekOffAvailability(r.Context(), viewer.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, availability)
}

type takeWeekOffRequest struct {
	HolidayDate string `json:"holiday_date"`
}

// TakeWeekOff implements AttendanceHandler.
func (h *AttendanceHandlerImpl) TakeWeekOff(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req takeWeekOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Take week off decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	holidayDate, valid := validator.IsValidDate(req.HolidayDate)
	if !valid {
		response.BadRequest(w, "Holiday date must be YYYY-MM-DD", nil)
		return
	}

	entry, err := h.attendanceService.TakeWeekOff(r.Context(), viewer.ID, holidayDate)
	if err != nil {
		slog.Error("Take week off service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Week off marked", entry)
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}
