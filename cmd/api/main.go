package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pontohq/ponto-backend-go/internal/config"
	appHTTP "github.com/pontohq/ponto-backend-go/internal/handler/http"
	"github.com/pontohq/ponto-backend-go/internal/pkg/database"
	"github.com/pontohq/ponto-backend-go/internal/pkg/email"
	"github.com/pontohq/ponto-backend-go/internal/pkg/jwt"
	"github.com/pontohq/ponto-backend-go/internal/pkg/oauth"
	"github.com/pontohq/ponto-backend-go/internal/pkg/storage"
	"github.com/pontohq/ponto-backend-go/internal/repository/postgresql"
	absenceService "github.com/pontohq/ponto-backend-go/internal/service/absence"
	authService "github.com/pontohq/ponto-backend-go/internal/service/auth"
	companyService "github.com/pontohq/ponto-backend-go/internal/service/company"
	dashboardService "github.com/pontohq/ponto-backend-go/internal/service/dashboard"
	employeeService "github.com/pontohq/ponto-backend-go/internal/service/employee"
	"github.com/pontohq/ponto-backend-go/internal/service/file"
	reportService "github.com/pontohq/ponto-backend-go/internal/service/report"
	statsService "github.com/pontohq/ponto-backend-go/internal/service/stats"
	ticketService "github.com/pontohq/ponto-backend-go/internal/service/ticket"
	timeRecordService "github.com/pontohq/ponto-backend-go/internal/service/timerecord"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timeRecordRepo := postgresql.NewTimeRecordRepository(db)
	absenceRepo := postgresql.NewAbsenceRepository(db)
	ticketRepo := postgresql.NewTicketRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	fileSvc := file.NewFileService(fileStorage)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	companySvc := companyService.NewCompanyService(companyRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, companyRepo, emailService)
	timeRecordSvc := timeRecordService.NewTimeRecordService(timeRecordRepo)
	absenceSvc := absenceService.NewAbsenceService(absenceRepo, employeeRepo, emailService)
	ticketSvc := ticketService.NewTicketService(ticketRepo)
	statsSvc := statsService.NewStatsService(timeRecordRepo)
	reportSvc := reportService.NewReportService(timeRecordRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		Company:    appHTTP.NewCompanyHandler(companySvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		TimeRecord: appHTTP.NewTimeRecordHandler(timeRecordSvc),
		Absence:    appHTTP.NewAbsenceHandler(absenceSvc, fileSvc),
		Ticket:     appHTTP.NewTicketHandler(ticketSvc),
		Stats:      appHTTP.NewStatsHandler(statsSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	}

	router := appHTTP.NewRouter(jwtService, cfg.App.FrontendURL, cfg.App.Env, handlers)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
