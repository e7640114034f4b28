package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pontohq/ponto-backend-go/internal/domain/user"
	"github.com/pontohq/ponto-backend-go/internal/handler/http/middleware"
	"github.com/pontohq/ponto-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Company    CompanyHandler
	Employee   EmployeeHandler
	TimeRecord TimeRecordHandler
	Absence    AbsenceHandler
	Ticket     TicketHandler
	Stats      StatsHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
}

func NewRouter(jwtService jwt.Service, frontendURL string, env string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ponto-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/login/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
			})
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/auth/change-password", h.Auth.ChangePassword)

			r.Route("/companies", func(r chi.Router) {
				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", h.Company.ListCompanies)
					r.Post("/", h.Company.CreateCompany)
					r.Put("/{id}", h.Company.UpdateCompany)
					r.Delete("/{id}", h.Company.DeactivateCompany)
				})

				r.Get("/{id}", h.Company.GetCompany)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", h.Employee.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeViewAll))
					r.Get("/", h.Employee.ListEmployees)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeactivateEmployee)
				})
			})

			r.Route("/time-records", func(r chi.Router) {
				r.Post("/clock-in", h.TimeRecord.ClockIn)
				r.Post("/clock-out", h.TimeRecord.ClockOut)
				r.Get("/my", h.TimeRecord.GetMyRecords)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimeRecordViewAll))
					r.Get("/", h.TimeRecord.ListRecords)
				})
			})

			r.Route("/absences", func(r chi.Router) {
				r.Post("/", h.Absence.CreateAbsence)
				r.Post("/attachments", h.Absence.UploadAttachment)
				r.Get("/", h.Absence.ListAbsences)
				r.Get("/{id}", h.Absence.GetAbsence)

				// Reviewer only (hr, manager, admin)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Post("/{id}/approve", h.Absence.ApproveAbsence)
					r.Post("/{id}/reject", h.Absence.RejectAbsence)
				})
			})

			r.Route("/tickets", func(r chi.Router) {
				r.Post("/", h.Ticket.CreateTicket)
				r.Get("/", h.Ticket.ListTickets)
				r.Get("/{id}", h.Ticket.GetTicket)
				r.Post("/{id}/responses", h.Ticket.RespondTicket)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTicketResolve))
					r.Post("/{id}/in-review", h.Ticket.MarkTicketInReview)
					r.Post("/{id}/resolve", h.Ticket.ResolveTicket)
				})
			})

			r.Get("/statistics", h.Stats.GetStatistics)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsExport))
				r.Get("/reports/attendance", h.Report.GetAttendanceReport)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/dashboard", h.Dashboard.GetDashboard)
			})
		})
	})
	return r
}
