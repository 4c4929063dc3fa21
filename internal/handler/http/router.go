package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/medirep/sfa-backend-go/internal/handler/http/middleware"
	"github.com/medirep/sfa-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	employeeMiddleware *middleware.EmployeeMiddleware,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	leaveHandler LeaveHandler,
	attendanceHandler AttendanceHandler,
	tourPlanHandler TourPlanHandler,
	dcrHandler DCRHandler,
	dvlHandler DVLHandler,
	masterHandler MasterHandler,
	automationHandler AutomationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "sfa-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(employeeMiddleware.LoadEmployee)

			r.Post("/auth/change-password", authHandler.ChangePassword)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", employeeHandler.Me)
				r.Get("/downline", employeeHandler.Downline)
				r.Get("/dashboard", employeeHandler.Dashboard)
				r.Get("/{id}", employeeHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Archive)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Apply)
				r.Get("/my", leaveHandler.MyRequests)
				r.Get("/pending", leaveHandler.Pending)
				r.Get("/balances", leaveHandler.Balances)
				r.Post("/{id}/approve", leaveHandler.Approve)
				r.Post("/{id}/reject", leaveHandler.Reject)
				r.Delete("/{id}", leaveHandler.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/month", attendanceHandler.Month)
				r.Get("/week-off", attendanceHandler.WeekOffAvailability)
				r.Post("/week-off", attendanceHandler.TakeWeekOff)
			})

			r.Route("/tour-plans", func(r chi.Router) {
				r.Post("/", tourPlanHandler.Create)
				r.Put("/", tourPlanHandler.Update)
				r.Get("/", tourPlanHandler.Month)
				r.Post("/approve", tourPlanHandler.ApproveDates)
				r.Get("/missing-downline", tourPlanHandler.MissingDownline)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/override", tourPlanHandler.GrantOverride)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Post("/daily", dcrHandler.CreateDailyReport)
				r.Post("/meeting", dcrHandler.CreateMeetingReport)
				r.Post("/training", dcrHandler.CreateTrainingReport)
				r.Post("/admin-day", dcrHandler.CreateAdminDayReport)
				r.Post("/from-tour-plan", dcrHandler.CreateFromTourPlan)

				r.Get("/", dcrHandler.List)
				r.Get("/today", dcrHandler.Today)
				r.Get("/stats", dcrHandler.Stats)
				r.Get("/{id}", dcrHandler.Get)
				r.Get("/{id}/route", dcrHandler.Route)
				r.Delete("/{id}", dcrHandler.DeleteReport)
				r.Post("/{id}/complete", dcrHandler.CompleteReport)
				r.Put("/{id}/start-location", dcrHandler.UpdateStartLocation)

				r.Post("/{id}/doctor-visits", dcrHandler.AddDoctorVisit)
				r.Post("/{id}/cs-visits", dcrHandler.AddCSVisit)
			})

			r.Route("/visits", func(r chi.Router) {
				r.Post("/doctor/{id}/complete", dcrHandler.CompleteDoctorVisit)
				r.Post("/doctor/{id}/incomplete", dcrHandler.IncompleteDoctorVisit)
				r.Post("/cs/{id}/complete", dcrHandler.CompleteCSVisit)
				r.Post("/cs/{id}/incomplete", dcrHandler.IncompleteCSVisit)
				r.Delete("/doctor/{id}", dcrHandler.DeleteDoctorVisit)
				r.Delete("/cs/{id}", dcrHandler.DeleteCSVisit)
			})

			r.Route("/dvl", func(r chi.Router) {
				r.Post("/", dvlHandler.Add)
				r.Get("/", dvlHandler.ListApproved)
				r.Get("/pending", dvlHandler.ListPending)
				r.Put("/{id}", dvlHandler.RequestUpdate)
				r.Delete("/{id}", dvlHandler.RequestDelete)
				r.Post("/{id}/approve", dvlHandler.Approve)
				r.Post("/{id}/reject", dvlHandler.Reject)
			})

			r.Route("/master", func(r chi.Router) {
				r.Get("/holidays", masterHandler.ListHolidays)
				r.Get("/product-categories", masterHandler.ListProductCategories)
				r.Get("/products", masterHandler.ListProducts)
				r.Get("/headquarters", masterHandler.ListHeadquarters)
				r.Get("/headquarters/{id}/places", masterHandler.ListPlaces)
				r.Get("/notices", masterHandler.ListNotices)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/holidays", masterHandler.CreateHoliday)
					r.Delete("/holidays/{id}", masterHandler.DeleteHoliday)
					r.Post("/product-categories", masterHandler.CreateProductCategory)
					r.Delete("/product-categories/{id}", masterHandler.DeleteProductCategory)
					r.Post("/products", masterHandler.CreateProduct)
					r.Delete("/products/{id}", masterHandler.DeleteProduct)
					r.Post("/headquarters", masterHandler.CreateHeadquarter)
					r.Delete("/headquarters/{id}", masterHandler.DeleteHeadquarter)
					r.Post("/headquarters/{id}/places", masterHandler.AddPlace)
					r.Delete("/headquarters/{id}/places/{placeID}", masterHandler.DeletePlace)
					r.Post("/notices", masterHandler.CreateNotice)
					r.Delete("/notices/{id}", masterHandler.DeleteNotice)
				})
			})

			// Admin only
			r.Route("/automation", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/sweep", automationHandler.TriggerSweep)
				r.Post("/leave-year-reset", automationHandler.TriggerLeaveYearReset)
			})
		})
	})
	return r
}
