package master

import (
	"context"
	"time"

	"github.com/medirep/sfa-backend-go/internal/domain/master/headquarter"
	"github.com/medirep/sfa-backend-go/internal/domain/master/holiday"
	"github.com/medirep/sfa-backend-go/internal/domain/master/notice"
	"github.com/medirep/sfa-backend-go/internal/domain/master/product"
)

type MasterService interface {
	// Holiday operations
	CreateHoliday(ctx context.Context, name string, date time.Time) (holiday.Holiday, error)
	ListHolidays(ctx context.Context, year int) ([]holiday.Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error

	// Product operations
	CreateProductCategory(ctx context.Context, name string) (product.Category, error)
	ListProductCategories(ctx context.Context) ([]product.Category, error)
	DeleteProductCategory(ctx context.Context, id string) error
	CreateProduct(ctx context.Context, categoryID string, name string) (product.Product, error)
	ListProducts(ctx context.Context) ([]product.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Headquarter operations
	CreateHeadquarter(ctx context.Context, name string) (headquarter.Headquarter, error)
	ListHeadquarters(ctx context.Context) ([]headquarter.Headquarter, error)
	DeleteHeadquarter(ctx context.Context, id string) error
	AddPlace(ctx context.Context, headquarterID string, name string) (headquarter.Place, error)
	ListPlaces(ctx context.Context, headquarterID string) ([]headquarter.Place, error)
	DeletePlace(ctx context.Context, id string) error

	// Notice operations
	CreateNotice(ctx context.Context, createdBy string, title string, body string) (notice.Notice, error)
	ListNotices(ctx context.Context, limit int) ([]notice.Notice, error)
	DeleteNotice(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	holidayRepo     holiday.HolidayRepository
	productRepo     product.ProductRepository
	headquarterRepo headquarter.HeadquarterRepository
	noticeRepo      notice.NoticeRepository
}

func NewMasterService(
	holidayRepo holiday.HolidayRepository,
	productRepo product.ProductRepository,
	headquarterRepo headquarter.HeadquarterRepository,
	noticeRepo notice.NoticeRepository,
) MasterService {
	return &masterServiceImpl{
		holidayRepo:     holidayRepo,
		productRepo:     productRepo,
		headquarterRepo: headquarterRepo,
		noticeRepo:      noticeRepo,
	}
}

// ==================== HOLIDAY OPERATIONS ====================

func (s *masterServiceImpl) CreateHoliday(ctx context.Context, name string, date time.Time) (holiday.Holiday, error) {
	return s.holidayRepo.Create(ctx, holiday.Holiday{Name: name, Date: date})
}

func (s *masterServiceImpl) ListHolidays(ctx context.Context, year int) ([]holiday.Holiday, error) {
	return s.holidayRepo.ListYear(ctx, year)
}

func (s *masterServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	return s.holidayRepo.Delete(ctx, id)
}

// ==================== PRODUCT OPERATIONS ====================

func (s *masterServiceImpl) CreateProductCategory(ctx context.Context, name string) (product.Category, error) {
	return s.productRepo.CreateCategory(ctx, product.Category{Name: name})
}

func (s *masterServiceImpl) ListProductCategories(ctx context.Context) ([]product.Category, error) {
	return s.productRepo.ListCategories(ctx)
}

func (s *masterServiceImpl) DeleteProductCategory(ctx context.Context, id string) error {
	return s.productRepo.DeleteCategory(ctx, id)
}

func (s *masterServiceImpl) CreateProduct(ctx context.Context, categoryID string, name string) (product.Product, error) {
	return s.productRepo.CreateProduct(ctx, product.Product{CategoryID: categoryID, Name: name})
}

func (s *masterServiceImpl) ListProducts(ctx context.Context) ([]product.Product, error) {
	return s.productRepo.ListProducts(ctx)
}

func (s *masterServiceImpl) DeleteProduct(ctx context.Context, id string) error {
	return s.productRepo.DeleteProduct(ctx, id)
}

// ==================== HEADQUARTER OPERATIONS ====================

func (s *masterServiceImpl) CreateHeadquarter(ctx context.Context, name string) (headquarter.Headquarter, error) {
	return s.headquarterRepo.Create(ctx, headquarter.Headquarter{Name: name})
}

func (s *masterServiceImpl) ListHeadquarters(ctx context.Context) ([]headquarter.Headquarter, error) {
	return s.headquarterRepo.List(ctx)
}

func (s *masterServiceImpl) DeleteHeadquarter(ctx context.Context, id string) error {
	return s.headquarterRepo.Delete(ctx, id)
}

func (s *masterServiceImpl) AddPlace(ctx context.Context, headquarterID string, name string) (headquarter.Place, error) {
	return s.headquarterRepo.AddPlace(ctx, headquarter.Place{HeadquarterID: headquarterID, Name: name})
}

func (s *masterServiceImpl) ListPlaces(ctx context.Context, headquarterID string) ([]headquarter.Place, error) {
	return s.headquarterRepo.ListPlaces(ctx, headquarterID)
}

func (s *masterServiceImpl) DeletePlace(ctx context.Context, id string) error {
	return s.headquarterRepo.DeletePlace(ctx, id)
}

// ==================== NOTICE OPERATIONS ====================

func (s *masterServiceImpl) CreateNotice(ctx context.Context, createdBy string, title string, body string) (notice.Notice, error) {
	return s.noticeRepo.Create(ctx, notice.Notice{Title: title, Body: body, CreatedBy: createdBy})
}

func (s *masterServiceImpl) ListNotices(ctx context.Context, limit int) ([]notice.Notice, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.noticeRepo.List(ctx, limit)
}

func (s *masterServiceImpl) DeleteNotice(ctx context.Context, id string) error {
	return s.noticeRepo.Delete(ctx, id)
}
