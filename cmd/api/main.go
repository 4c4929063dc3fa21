package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/medirep/sfa-backend-go/internal/config"
	appHTTP "github.com/medirep/sfa-backend-go/internal/handler/http"
	"github.com/medirep/sfa-backend-go/internal/handler/http/middleware"
	"github.com/medirep/sfa-backend-go/internal/pkg/cron"
	"github.com/medirep/sfa-backend-go/internal/pkg/database"
	"github.com/medirep/sfa-backend-go/internal/pkg/geo"
	"github.com/medirep/sfa-backend-go/internal/pkg/jwt"
	"github.com/medirep/sfa-backend-go/internal/pkg/storage"
	"github.com/medirep/sfa-backend-go/internal/repository/postgresql"
	attendanceService "github.com/medirep/sfa-backend-go/internal/service/attendance"
	authService "github.com/medirep/sfa-backend-go/internal/service/auth"
	automationService "github.com/medirep/sfa-backend-go/internal/service/automation"
	dcrService "github.com/medirep/sfa-backend-go/internal/service/dcr"
	dvlService "github.com/medirep/sfa-backend-go/internal/service/dvl"
	employeeService "github.com/medirep/sfa-backend-go/internal/service/employee"
	"github.com/medirep/sfa-backend-go/internal/service/file"
	leaveService "github.com/medirep/sfa-backend-go/internal/service/leave"
	"github.com/medirep/sfa-backend-go/internal/service/master"
	tourPlanService "github.com/medirep/sfa-backend-go/internal/service/tourplan"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if err := database.Migrate(dsn); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	ledgerRepo := postgresql.NewLeaveLedgerRepository(db)
	requestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	tourPlanRepo := postgresql.NewTourPlanRepository(db)
	reportRepo := postgresql.NewDCRReportRepository(db)
	visitRepo := postgresql.NewDCRVisitRepository(db)
	dvlRepo := postgresql.NewDVLRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	productRepo := postgresql.NewProductRepository(db)
	headquarterRepo := postgresql.NewHeadquarterRepository(db)
	noticeRepo := postgresql.NewNoticeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	geocoder := geo.NewNominatimClient(cfg.Geo.NominatimBaseURL, cfg.Geo.UserAgent)
	distanceCalculator := geo.NewHaversineCalculator()

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	transactor := postgresql.NewTransactor(db)

	fileSvc := file.NewFileService(fileStorage)
	authSvc := authService.NewAuthService(employeeRepo, attendanceRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(transactor, employeeRepo, ledgerRepo, requestRepo, tourPlanRepo)
	leaveSvc := leaveService.NewLeaveService(transactor, ledgerRepo, requestRepo, employeeRepo, reportRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, requestRepo, holidayRepo, reportRepo)
	tourPlanSvc := tourPlanService.NewTourPlanService(tourPlanRepo, employeeRepo)
	dcrSvc := dcrService.NewDCRService(
		transactor,
		reportRepo,
		visitRepo,
		employeeRepo,
		attendanceRepo,
		requestRepo,
		leaveSvc,
		holidayRepo,
		dvlRepo,
		geocoder,
		distanceCalculator,
	)
	dvlSvc := dvlService.NewDVLService(dvlRepo, employeeRepo)
	masterSvc := master.NewMasterService(holidayRepo, productRepo, headquarterRepo, noticeRepo)
	automationSvc := automationService.NewAutomationService(transactor, employeeRepo, attendanceRepo, reportRepo, ledgerRepo, requestRepo)

	employeeMiddleware := middleware.NewEmployeeMiddleware(employeeSvc)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	tourPlanHandler := appHTTP.NewTourPlanHandler(tourPlanSvc)
	dcrHandler := appHTTP.NewDCRHandler(dcrSvc, fileSvc)
	dvlHandler := appHTTP.NewDVLHandler(dvlSvc)
	masterHandler := appHTTP.NewMasterHandler(masterSvc)
	automationHandler := appHTTP.NewAutomationHandler(automationSvc)

	scheduler := cron.NewScheduler()
	cron.NewAutomationJobs(automationSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		employeeMiddleware,
		authHandler,
		employeeHandler,
		leaveHandler,
		attendanceHandler,
		tourPlanHandler,
		dcrHandler,
		dvlHandler,
		masterHandler,
		automationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
