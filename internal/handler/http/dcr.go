package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/medirep/sfa-backend-go/internal/domain/dcr"
	"github.com/medirep/sfa-backend-go/internal/handler/http/middleware"
	"github.com/medirep/sfa-backend-go/internal/handler/http/response"
	"github.com/medirep/sfa-backend-go/internal/pkg/validator"
	"github.com/medirep/sfa-backend-go/internal/service/file"
)

type DCRHandler interface {
	CreateDailyReport(w http.ResponseWriter, r *http.Request)
	CreateMeetingReport(w http.ResponseWriter, r *http.Request)
	CreateTrainingReport(w http.ResponseWriter, r *http.Request)
	CreateAdminDayReport(w http.ResponseWriter, r *http.Request)
	CreateFromTourPlan(w http.ResponseWriter, r *http.Request)
	UpdateStartLocation(w http.ResponseWriter, r *http.Request)

	AddDoctorVisit(w http.ResponseWriter, r *http.Request)
	AddCSVisit(w http.ResponseWriter, r *http.Request)
	DeleteDoctorVisit(w http.ResponseWriter, r *http.Request)
	DeleteCSVisit(w http.ResponseWriter, r *http.Request)
	CompleteDoctorVisit(w http.ResponseWriter, r *http.Request)
	IncompleteDoctorVisit(w http.ResponseWriter, r *http.Request)
	CompleteCSVisit(w http.ResponseWriter, r *http.Request)
	IncompleteCSVisit(w http.ResponseWriter, r *http.Request)

	CompleteReport(w http.ResponseWriter, r *http.Request)
	DeleteReport(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Route(w http.ResponseWriter, r *http.Request)
}

type DCRHandlerImpl struct {
	dcrService  dcr.DCRService
	fileService file.FileService
}

// CreateDailyReport implements DCRHandler.
func (h *DCRHandlerImpl) CreateDailyReport(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dcr.CreateDailyReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create daily report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.dcrService.CreateDailyReport(r.Context(), viewer, req)
	if err != nil {
		slog.Error("Create daily report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report started", report)
}

// CreateMeetingReport implements DCRHandler.
func (h *DCRHandlerImpl) CreateMeetingReport(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dcr.CreateMeetingReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create meeting report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	reports, err := h.dcrService.CreateMeetingReport(r.Context(), viewer, req)
	if err != nil {
		slog.Error("Create meeting report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Meeting reports filed", reports)
}

// CreateTrainingReport implements DCRHandler.
func (h *DCRHandlerImpl) CreateTrainingReport(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dcr.CreateTrainingReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create training report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.dcrService.CreateTrainingReport(r.Context(), viewer, req)
	if err != nil {
		slog.Error("Create training report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Training report filed", report)
}

// CreateAdminDayReport implements DCRHandler.
func (h *DCRHandlerImpl) CreateAdminDayReport(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dcr.CreateAdminDayReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create admin day report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.dcrService.CreateAdminDayReport(r.Context(), viewer, req)
	if err != nil {
		slog.Error("Create admin day report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Admin day filed", result)
}

// CreateFromTourPlan implements DCRHandler.
func (h *DCRHandlerImpl) CreateFromTourPlan(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dcr.CreateFromPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create report from tour plan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.dcrService.CreateFromTourPlan(r.Context(), viewer, req)
	if err != nil {
		slog.Error("Create report from tour plan service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report started", report)
}

// UpdateStartLocation implements DCRHandler.
func (h *DCRHandlerImpl) UpdateStartLocation(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	reportID := chi.URLParam(r, "id")
	if reportID == "" {
		response.BadRequest(w, "Report ID is required", nil)
		return
	}

	var req dcr.UpdateStartLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update start location decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.dcrService.UpdateStartLocation(r.Context(), viewer, reportID, req)
	if err != nil {
		slog.Error("Update start location service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Start location updated", report)
}

// AddDoctorVisit implements DCRHandler.
func (h *DCRHandlerImpl) AddDoctorVisit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	reportID := chi.URLParam(r, "id")
	if reportID == "" {
		response.BadRequest(w, "Report ID is required", nil)
		return
	}

	var req dcr.AddDoctorVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add doctor visit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	visit, err := h.dcrService.AddDoctorVisit(r.Context(), viewer, reportID, req)
	if err != nil {
		slog.Error("Add doctor visit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Doctor visit added", visit)
}

// AddCSVisit implements DCRHandler.
func (h *DCRHandlerImpl) AddCSVisit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	reportID := chi.URLParam(r, "id")
	if reportID == "" {
		response.BadRequest(w, "Report ID is required", nil)
		return
	}

	var req dcr.AddCSVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add chemist visit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	visit, err := h.dcrService.AddCSVisit(r.Context(), viewer, reportID, req)
	if err != nil {
		slog.Error("Add chemist visit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Chemist visit added", visit)
}

// completeVisitRequest parses the multipart completion form. The
// coordinates ride in a JSON "data" field next to the optional photo.
func (h *DCRHandlerImpl) completeVisitRequest(r *http.Request, employeeID, visitID string) (dcr.CompleteVisitRequest, error) {
	var req dcr.CompleteVisitRequest

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return req, err
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		return req, errors.New("field 'data' is required")
	}
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		return req, err
	}

	photo, header, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			return req, nil
		}
		return req, err
	}
	defer photo.Close()

	url, err := h.fileService.UploadVisitPhoto(r.Context(), employeeID, visitID, time.Now().UTC(), photo, header.Filename)
	if err != nil {
		return req, err
	}
	req.PhotoURL = url
	return req, nil
}

// CompleteDoctorVisit implements DCRHandler.
func (h *DCRHandlerImpl) CompleteDoctorVisit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	visitID := chi.URLParam(r, "id")
	if visitID == "" {
		response.BadRequest(w, "Visit ID is required", nil)
		return
	}

	req, err := h.completeVisitRequest(r, viewer.ID, visitID)
	if err != nil {
		slog.Error("Complete doctor visit form error", "error", err)
		response.BadRequest(w, "Invalid form data", nil)
		return
	}

	visit, err := h.dcrService.CompleteDoctorVisit(r.Context(), viewer, visitID, req)
	if err != nil {
		slog.Error("Complete doctor visit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Doctor visit completed", visit)
}

// IncompleteDoctorVisit implements DCRHandler.
func (h *DCRHandlerImpl) IncompleteDoctorVisit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	visitID := chi.URLParam(r, "id")
	if visitID == "" {
		response.BadRequest(w, "Visit ID is required", nil)
		return
	}

	var req dcr.IncompleteVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Incomplete doctor visit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	visit, err := h.dcrService.IncompleteDoctorVisit(r.Context(), viewer, visitID, req)
	if err != nil {
		slog.Error("Incomplete doctor visit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Doctor visit marked incomplete", visit)
}

// CompleteCSVisit implements DCRHandler.
func (h *DCRHandlerImpl) CompleteCSVisit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	visitID := chi.URLParam(r, "id")
	if visitID == "" {
		response.BadRequest(w, "Visit ID is required", nil)
		return
	}

	req, err := h.completeVisitRequest(r, viewer.ID, visitID)
	if err != nil {
		slog.Error("Complete chemist visit form error", "error", err)
		response.BadRequest(w, "Invalid form data", nil)
		return
	}

	visit, err := h.dcrService.CompleteCSVisit(r.Context(), viewer, visitID, req)
	if err != nil {
		slog.Error("Complete chemist visit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Chemist visit completed", visit)
}

// IncompleteCSVisit implements DCRHandler.
func (h *DCRHandlerImpl) IncompleteCSVisit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	visitID := chi.URLParam(r, "id")
	if visitID == "" {
		response.BadRequest(w, "Visit ID is required", nil)
		return
	}

	var req dcr.IncompleteVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Incomplete chemist visit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	visit, err := h.dcrService.IncompleteCSVisit(r.Context(), viewer, visitID, req)
	if err != nil {
		slog.Error("Incomplete chemist visit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Chemist visit marked incomplete", visit)
}

// DeleteDoctorVisit implements DCRHandler.
func (h *DCRHandlerImpl) DeleteDoctorVisit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	visitID := chi.URLParam(r, "id")
	if visitID == "" {
		response.BadRequest(w, "Visit ID is required", nil)
		return
	}

	if err := h.dcrService.DeleteDoctorVisit(r.Context(), viewer, visitID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Doctor visit deleted", nil)
}

// DeleteCSVisit implements DCRHandler.
func (h *DCRHandlerImpl) DeleteCSVisit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	visitID := chi.URLParam(r, "id")
	if visitID == "" {
		response.BadRequest(w, "Visit ID is required", nil)
		return
	}

	if err := h.dcrService.DeleteCSVisit(r.Context(), viewer, visitID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Chemist visit deleted", nil)
}

// CompleteReport implements DCRHandler.
func (h *DCRHandlerImpl) CompleteReport(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	reportID := chi.URLParam(r, "id")
	if reportID == "" {
		response.BadRequest(w, "Report ID is required", nil)
		return
	}

	var req dcr.CompleteReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Complete report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.dcrService.CompleteReport(r.Context(), viewer, reportID, req)
	if err != nil {
		slog.Error("Complete report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report completed", result)
}

// DeleteReport implements DCRHandler.
func (h *DCRHandlerImpl) DeleteReport(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	reportID := chi.URLParam(r, "id")
	if reportID == "" {
		response.BadRequest(w, "Report ID is required", nil)
		return
	}

	if err := h.dcrService.DeleteReport(r.Context(), viewer, reportID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report deleted", nil)
}

// Get implements DCRHandler.
func (h *DCRHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "id")
	if reportID == "" {
		response.BadRequest(w, "Report ID is required", nil)
		return
	}

	report, err := h.dcrService.Get(r.Context(), reportID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// Today implements DCRHandler.
func (h *DCRHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	report, err := h.dcrService.Today(r.Context(), viewer.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// List implements DCRHandler.
func (h *DCRHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		employeeID = viewer.ID
	}

	from, fromOK := validator.IsValidDate(r.URL.Query().Get("from"))
	to, toOK := validator.IsValidDate(r.URL.Query().Get("to"))
	if !fromOK || !toOK {
		response.BadRequest(w, "From and to dates must be YYYY-MM-DD", nil)
		return
	}

	reports, err := h.dcrService.ListBetween(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

// Stats implements DCRHandler.
func (h *DCRHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
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

	stats, err := h.dcrService.Stats(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// Route implements DCRHandler.
func (h *DCRHandlerImpl) Route(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "id")
	if reportID == "" {
		response.BadRequest(w, "Report ID is required", nil)
		return
	}

	points, err := h.dcrService.Route(r.Context(), reportID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, points)
}

func NewDCRHandler(dcrService dcr.DCRService, fileService file.FileService) DCRHandler {
	return &DCRHandlerImpl{
		dcrService:  dcrService,
		fileService: fileService,
	}
}
