package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"prodflow/internal/config"
	"prodflow/internal/database"
	"prodflow/internal/domain"
	"prodflow/internal/middleware"
	"prodflow/internal/modules/auth"
	"prodflow/internal/modules/dashboard"
	"prodflow/internal/modules/document"
	"prodflow/internal/modules/notification"
	"prodflow/internal/modules/observation"
	"prodflow/internal/modules/purchase"
	"prodflow/internal/modules/study"
	"prodflow/internal/modules/workflow"
	"prodflow/internal/pkg/jwt"
	"prodflow/internal/pkg/mailer"
	"prodflow/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SenderEmail)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	studyRepo := repository.NewStudyRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	purchaseRepo := repository.NewPurchaseOrderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	observationRepo := repository.NewObservationRepository(db)

	hub := notification.NewHub()
	defer hub.Close()

	store, err := document.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("document store: %v", err)
	}

	notificationService := notification.NewService(notificationRepo, userRepo, mail, hub)
	authService := auth.NewService(userRepo, jwtService, store)
	workflowService := workflow.NewService(projectRepo, userRepo, workflow.NewGateChecker(documentRepo), notificationService)
	studyService := study.NewService(studyRepo, userRepo)

	documentService := document.NewService(documentRepo, projectRepo, store)
	purchaseService := purchase.NewService(purchaseRepo, projectRepo)
	observationService := observation.NewService(observationRepo, projectRepo, userRepo, notificationService)
	dashboardService := dashboard.NewService(projectRepo, userRepo)

	authHandler := auth.NewHandler(authService)
	workflowHandler := workflow.NewHandler(workflowService)
	studyHandler := study.NewHandler(studyService)
	documentHandler := document.NewHandler(documentService)
	purchaseHandler := purchase.NewHandler(purchaseService)
	observationHandler := observation.NewHandler(observationService)
	notificationHandler := notification.NewHandler(notificationService, hub, jwtService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/ws", notificationHandler.HandleWebSocket)

	api := router.Group("/api")
	authHandler.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwtService))

	authHandler.RegisterProtectedRoutes(protected)
	workflowHandler.RegisterRoutes(protected)
	studyHandler.RegisterRoutes(protected)
	documentHandler.RegisterRoutes(protected)
	purchaseHandler.RegisterRoutes(protected, middleware.RequireRole(domain.RolePurchasing))
	observationHandler.RegisterRoutes(protected)
	notificationHandler.RegisterRoutes(protected)
	dashboardHandler.RegisterRoutes(protected, middleware.SuperadminOnly())

	startOverdueSweeper(workflowService)

	log.Printf("listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// startOverdueSweeper scans hourly for active stages past their deadline
// and notifies the responsible role plus the superadmins.
func startOverdueSweeper(svc *workflow.Service) {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := svc.NotifyOverdue(ctx); err != nil {
			log.Printf("overdue sweep: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("cron: %v", err)
	}
	c.Start()
}
