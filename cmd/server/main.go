package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	identityapp "github.com/sppg/backend/internal/application/identity"
	inventoryapp "github.com/sppg/backend/internal/application/inventory"
	monitoringapp "github.com/sppg/backend/internal/application/monitoring"
	notificationapp "github.com/sppg/backend/internal/application/notification"
	partnerapp "github.com/sppg/backend/internal/application/partner"
	procurementapp "github.com/sppg/backend/internal/application/procurement"
	productionapp "github.com/sppg/backend/internal/application/production"
	domainnotification "github.com/sppg/backend/internal/domain/notification"
	"github.com/sppg/backend/internal/infrastructure/auth"
	"github.com/sppg/backend/internal/infrastructure/config"
	"github.com/sppg/backend/internal/infrastructure/logger"
	infranotification "github.com/sppg/backend/internal/infrastructure/notification"
	"github.com/sppg/backend/internal/infrastructure/persistence"
	"github.com/sppg/backend/internal/interfaces/http/handler"
	"github.com/sppg/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database
	gormLogLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormLogLevel))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Redis, used for the token blacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = redisClient.Close() }()

	// Repositories
	itemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	procurementRepo := persistence.NewGormProcurementRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	qcRepo := persistence.NewGormQualityControlRepository(db.DB)
	productionRepo := persistence.NewGormProductionRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	ratingRepo := persistence.NewGormSupplierRatingRepository(db.DB)
	sppgRepo := persistence.NewGormSppgRepository(db.DB)
	departmentRepo := persistence.NewGormDepartmentRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Transaction scopes
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	procurementScope := persistence.NewGormProcurementTransactionScope(db.DB)
	productionScope := persistence.NewGormProductionTransactionScope(db.DB)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := auth.NewRedisTokenBlacklist(redisClient)

	// Outbound notification gateways
	var gateways []domainnotification.Gateway
	if cfg.Notification.WhatsAppEnabled {
		gateways = append(gateways, infranotification.NewFonnteGateway(cfg.Notification))
	}
	if cfg.Notification.EmailEnabled {
		gateways = append(gateways, infranotification.NewResendGateway(cfg.Notification))
	}
	dispatcher := notificationapp.NewDispatcher(notificationRepo, sppgRepo, gateways, log)

	// Application services
	authService := identityapp.NewAuthService(userRepo, sppgRepo, jwtService, blacklist, cfg.Auth.MaxLoginAttempts, cfg.Auth.LockDuration)
	inventoryService := inventoryapp.NewService(itemRepo, movementRepo, inventoryScope)
	inventoryImportService := inventoryapp.NewImportService(itemRepo)
	procurementService := procurementapp.NewService(procurementRepo, qcRepo, procurementScope, dispatcher)
	planService := procurementapp.NewPlanService(planRepo, procurementRepo, dispatcher)
	productionService := productionapp.NewService(productionRepo, itemRepo, productionScope, dispatcher)
	supplierService := partnerapp.NewSupplierService(supplierRepo, ratingRepo)
	departmentService := identityapp.NewDepartmentService(departmentRepo)
	employeeService := identityapp.NewEmployeeService(employeeRepo, departmentRepo)
	userService := identityapp.NewUserService(userRepo, departmentRepo)
	reportService := monitoringapp.NewReportService(reportRepo)

	engine := router.New(router.Dependencies{
		Logger:           log,
		JWTService:       jwtService,
		TokenBlacklist:   blacklist,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		TrustedProxies:   cfg.HTTP.TrustedProxies,

		System:      handler.NewSystemHandler(db),
		Auth:        handler.NewAuthHandler(authService),
		Inventory:   handler.NewInventoryHandler(inventoryService, inventoryImportService),
		Procurement: handler.NewProcurementHandler(procurementService),
		Plan:        handler.NewPlanHandler(planService),
		Production:  handler.NewProductionHandler(productionService),
		Supplier:    handler.NewSupplierHandler(supplierService),
		Department:  handler.NewDepartmentHandler(departmentService),
		Employee:    handler.NewEmployeeHandler(employeeService),
		User:        handler.NewUserHandler(userService),
		Report:      handler.NewReportHandler(reportService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server starting",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	// Let in-flight notification deliveries drain
	dispatcher.Wait()
	log.Info("Server stopped")
}
