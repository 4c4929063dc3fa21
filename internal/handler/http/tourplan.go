package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/medirep/sfa-backend-go/internal/domain/tourplan"
	"github.com/medirep/sfa-backend-go/internal/handler/http/middleware"
	"github.com/medirep/sfa-backend-go/internal/handler/http/response"
)

type TourPlanHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Month(w http.ResponseWriter, r *http.Request)
	ApproveDates(w http.ResponseWriter, r *http.Request)
	GrantOverride(w http.ResponseWriter, r *http.Request)
	MissingDownline(w http.ResponseWriter, r *http.Request)
}

type TourPlanHandlerImpl struct {
	tourPlanService tourplan.TourPlanService
}

// Create implements TourPlanHandler.
func (h *TourPlanHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req tourplan.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create tour plan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.tourPlanService.Create(r.Context(), viewer, req)
	if err != nil {
		slog.Error("Create tour plan service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tour plan filed", entries)
}

// Update implements TourPlanHandler.
func (h *TourPlanHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req tourplan.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update tour plan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.tourPlanService.Update(r.Context(), viewer, req)
	if err != nil {
		slog.Error("Update tour plan service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tour plan updated", entries)
}

// Month implements TourPlanHandler.
func (h *TourPlanHandlerImpl) Month(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		employeeID = viewer.ID
	}

	// Default to next month, the month a plan is filed for.
	target := time.Now().UTC().AddDate(0, 1, 0)
	year := target.Year()
	month := int(target.Month())
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
		month = parsed
	}

	entries, err := h.tourPlanService.Month(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// ApproveDates implements TourPlanHandler.
func (h *TourPlanHandlerImpl) ApproveDates(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req tourplan.ApproveDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Approve tour plan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	approved, err := h.tourPlanService.ApproveDates(r.Context(), viewer, req)
	if err != nil {
		slog.Error("Approve tour plan service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tour plan dates approved", map[string]int{"approved": approved})
}

type grantOverrideRequest struct {
	EmployeeID string `json:"employee_id"`
	ForCreate  bool   `json:"for_create"`
	ForApprove bool   `json:"for_approve"`
}

// GrantOverride implements TourPlanHandler.
func (h *TourPlanHandlerImpl) GrantOverride(w http.ResponseWriter, r *http.Request) {
	var req grantOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Grant override decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.EmployeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	if !req.ForCreate && !req.ForApprove {
		response.BadRequest(w, "At least one override flag is required", nil)
		return
	}

	if err := h.tourPlanService.GrantOverride(r.Context(), req.EmployeeID, req.ForCreate, req.ForApprove); err != nil {
		slog.Error("Grant override service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Override granted", nil)
}

// MissingDownline implements TourPlanHandler.
func (h *TourPlanHandlerImpl) MissingDownline(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	target := time.Now().UTC().AddDate(0, 1, 0)
	missing, err := h.tourPlanService.MissingDownline(r.Context(), viewer, target.Year(), int(target.Month()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, missing)
}

func NewTourPlanHandler(tourPlanService tourplan.TourPlanService) TourPlanHandler {
	return &TourPlanHandlerImpl{
		tourPlanService: tourPlanService,
	}
}
