package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/medirep/sfa-backend-go/internal/handler/http/middleware"
	"github.com/medirep/sfa-backend-go/internal/handler/http/response"
	"github.com/medirep/sfa-backend-go/internal/pkg/validator"
	"github.com/medirep/sfa-backend-go/internal/service/master"
)

type MasterHandler interface {
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)

	CreateProductCategory(w http.ResponseWriter, r *http.Request)
	ListProductCategories(w http.ResponseWriter, r *http.Request)
	DeleteProductCategory(w http.ResponseWriter, r *http.Request)
	CreateProduct(w http.ResponseWriter, r *http.Request)
	ListProducts(w http.ResponseWriter, r *http.Request)
	DeleteProduct(w http.ResponseWriter, r *http.Request)

	CreateHeadquarter(w http.ResponseWriter, r *http.Request)
	ListHeadquarters(w http.ResponseWriter, r *http.Request)
	DeleteHeadquarter(w http.ResponseWriter, r *http.Request)
	AddPlace(w http.ResponseWriter, r *http.Request)
	ListPlaces(w http.ResponseWriter, r *http.Request)
	DeletePlace(w http.ResponseWriter, r *http.Request)

	CreateNotice(w http.ResponseWriter, r *http.Request)
	ListNotices(w http.ResponseWriter, r *http.Request)
	DeleteNotice(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	masterService master.MasterService
}

// ==================== HOLIDAY OPERATIONS ====================

type createHolidayRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

func (h *MasterHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req createHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create holiday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if validator.IsEmpty(req.Name) {
		response.BadRequest(w, "Holiday name is required", nil)
		return
	}
	date, valid := validator.IsValidDate(req.Date)
	if !valid {
		response.BadRequest(w, "Date must be YYYY-MM-DD", nil)
		return
	}

	created, err := h.masterService.CreateHoliday(r.Context(), req.Name, date)
	if err != nil {
		slog.Error("Create holiday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", created)
}

func (h *MasterHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := 0
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "Year must be a number", nil)
			return
		}
		year = parsed
	}

	holidays, err := h.masterService.ListHolidays(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}

func (h *MasterHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Holiday ID is required", nil)
		return
	}

	if err := h.masterService.DeleteHoliday(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}

// ==================== PRODUCT OPERATIONS ====================

type createNamedRequest struct {
	Name string `json:"name"`
}

func (h *MasterHandlerImpl) CreateProductCategory(w http.ResponseWriter, r *http.Request) {
	var req createNamedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create product category decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if validator.IsEmpty(req.Name) {
		response.BadRequest(w, "Category name is required", nil)
		return
	}

	category, err := h.masterService.CreateProductCategory(r.Context(), req.Name)
	if err != nil {
		slog.Error("Create product category service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Product category created successfully", category)
}

func (h *MasterHandlerImpl) ListProductCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.masterService.ListProductCategories(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, categories)
}

func (h *MasterHandlerImpl) DeleteProductCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Category ID is required", nil)
		return
	}

	if err := h.masterService.DeleteProductCategory(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Product category deleted successfully", nil)
}

type createProductRequest struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

func (h *MasterHandlerImpl) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create product decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if validator.IsEmpty(req.CategoryID) {
		response.BadRequest(w, "Category ID is required", nil)
		return
	}
	if validator.IsEmpty(req.Name) {
		response.BadRequest(w, "Product name is required", nil)
		return
	}

	created, err := h.masterService.CreateProduct(r.Context(), req.CategoryID, req.Name)
	if err != nil {
		slog.Error("Create product service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Product created successfully", created)
}

func (h *MasterHandlerImpl) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.masterService.ListProducts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, products)
}

func (h *MasterHandlerImpl) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Product ID is required", nil)
		return
	}

	if err := h.masterService.DeleteProduct(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Product deleted successfully", nil)
}

// ==================== HEADQUARTER OPERATIONS ====================

func (h *MasterHandlerImpl) CreateHeadquarter(w http.ResponseWriter, r *http.Request) {
	var req createNamedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create headquarter decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if validator.IsEmpty(req.Name) {
		response.BadRequest(w, "Headquarter name is required", nil)
		return
	}

	created, err := h.masterService.CreateHeadquarter(r.Context(), req.Name)
	if err != nil {
		slog.Error("Create headquarter service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Headquarter created successfully", created)
}

func (h *MasterHandlerImpl) ListHeadquarters(w http.ResponseWriter, r *http.Request) {
	headquarters, err := h.masterService.ListHeadquarters(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, headquarters)
}

func (h *MasterHandlerImpl) DeleteHeadquarter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Headquarter ID is required", nil)
		return
	}

	if err := h.masterService.DeleteHeadquarter(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Headquarter deleted successfully", nil)
}

func (h *MasterHandlerImpl) AddPlace(w http.ResponseWriter, r *http.Request) {
	headquarterID := chi.URLParam(r, "id")
	if headquarterID == "" {
		response.BadRequest(w, "Headquarter ID is required", nil)
		return
	}

	var req createNamedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add place decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if validator.IsEmpty(req.Name) {
		response.BadRequest(w, "Place name is required", nil)
		return
	}

	place, err := h.masterService.AddPlace(r.Context(), headquarterID, req.Name)
	if err != nil {
		slog.Error("Add place service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Place added successfully", place)
}

func (h *MasterHandlerImpl) ListPlaces(w http.ResponseWriter, r *http.Request) {
	headquarterID := chi.URLParam(r, "id")
	if headquarterID == "" {
		response.BadRequest(w, "Headquarter ID is required", nil)
		return
	}

	places, err := h.masterService.ListPlaces(r.Context(), headquarterID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, places)
}

func (h *MasterHandlerImpl) DeletePlace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "placeID")
	if id == "" {
		response.BadRequest(w, "Place ID is required", nil)
		return
	}

	if err := h.masterService.DeletePlace(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Place deleted successfully", nil)
}

// ==================== NOTICE OPERATIONS ====================

type createNoticeRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *MasterHandlerImpl) CreateNotice(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req createNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create notice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if validator.IsEmpty(req.Title) {
		response.BadRequest(w, "Notice title is required", nil)
		return
	}
	if validator.IsEmpty(req.Body) {
		response.BadRequest(w, "Notice body is required", nil)
		return
	}

	created, err := h.masterService.CreateNotice(r.Context(), viewer.ID, req.Title, req.Body)
	if err != nil {
		slog.Error("Create notice service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Notice published successfully", created)
}

func (h *MasterHandlerImpl) ListNotices(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			response.BadRequest(w, "Limit must be a number", nil)
			return
		}
		limit = parsed
	}

	notices, err := h.masterService.ListNotices(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notices)
}

func (h *MasterHandlerImpl) DeleteNotice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Notice ID is required", nil)
		return
	}

	if err := h.masterService.DeleteNotice(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notice deleted successfully", nil)
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &MasterHandlerImpl{
		masterService: masterService,
	}
}
