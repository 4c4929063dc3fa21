package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medirep/sfa-backend-go/internal/domain/dvl"
	"github.com/medirep/sfa-backend-go/internal/handler/http/middleware"
	"github.com/medirep/sfa-backend-go/internal/handler/http/response"
)

type DVLHandler interface {
	Add(w http.ResponseWriter, r *http.Request)
	RequestUpdate(w http.ResponseWriter, r *http.Request)
	RequestDelete(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ListApproved(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
}

type DVLHandlerImpl struct {
	dvlService dvl.DVLService
}

// Add implements DVLHandler.
func (h *DVLHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dvl.AddDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add doctor decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	doctor, err := h.dvlService.Add(r.Context(), viewer, req)
	if err != nil {
		slog.Error("Add doctor service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Doctor submitted for approval", doctor)
}

// RequestUpdate implements DVLHandler.
func (h *DVLHandlerImpl) RequestUpdate(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		response.BadRequest(w, "Doctor ID is required", nil)
		return
	}

	var req dvl.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Request doctor update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	doctor, err := h.dvlService.RequestUpdate(r.Context(), viewer, doctorID, req)
	if err != nil {
		slog.Error("Request doctor update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Update submitted for approval", doctor)
}

// RequestDelete implements DVLHandler.
func (h *DVLHandlerImpl) RequestDelete(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		response.BadRequest(w, "Doctor ID is required", nil)
		return
	}

	doctor, err := h.dvlService.RequestDelete(r.Context(), viewer, doctorID)
	if err != nil {
		slog.Error("Request doctor delete service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Removal submitted for approval", doctor)
}

// Approve implements DVLHandler.
func (h *DVLHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		response.BadRequest(w, "Doctor ID is required", nil)
		return
	}

	doctor, err := h.dvlService.Approve(r.Context(), doctorID)
	if err != nil {
		slog.Error("Approve doctor service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pending action approved", doctor)
}

// Reject implements DVLHandler.
func (h *DVLHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "id")
	if doctorID == "" {
		response.BadRequest(w, "Doctor ID is required", nil)
		return
	}

	if err := h.dvlService.Reject(r.Context(), doctorID); err != nil {
		slog.Error("Reject doctor service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pending action rejected", nil)
}

// ListApproved implements DVLHandler.
func (h *DVLHandlerImpl) ListApproved(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		employeeID = viewer.ID
	}

	doctors, err := h.dvlService.ListApproved(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, doctors)
}

// ListPending implements DVLHandler.
func (h *DVLHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	doctors, err := h.dvlService.ListPending(r.Context(), viewer)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, doctors)
}

func NewDVLHandler(dvlService dvl.DVLService) DVLHandler {
	return &DVLHandlerImpl{
		dvlService: dvlService,
	}
}
