package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"invest-desk.backend/internal/config"
	"invest-desk.backend/internal/infrastructure/repositories"
	"invest-desk.backend/internal/interfaces/http/handlers"
	"invest-desk.backend/internal/interfaces/http/middleware"
	"invest-desk.backend/internal/usecases"
	"invest-desk.backend/pkg/jwt"
	"invest-desk.backend/pkg/logger"
	"invest-desk.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	investorRepo := repositories.NewInvestorRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize Session Store
	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, sessionStore)
	userUsecase := usecases.NewUserUsecase(userRepo)
	investorUsecase := usecases.NewInvestorUsecase(investorRepo, userRepo, uow)
	accountUsecase := usecases.NewAccountUsecase(accountRepo, investorRepo)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, investorRepo)
	allocationUsecase := usecases.NewAllocationUsecase(paymentRepo, accountRepo, investmentRepo, uow)
	dashboardUsecase := usecases.NewDashboardUsecase(investorRepo, accountRepo, paymentRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)
	investorHandler := handlers.NewInvestorHandler(investorUsecase)
	accountHandler := handlers.NewAccountHandler(accountUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	investmentHandler := handlers.NewInvestmentHandler(allocationUsecase, investmentRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       authHandler,
		userHandler:       userHandler,
		investorHandler:   investorHandler,
		accountHandler:    accountHandler,
		paymentHandler:    paymentHandler,
		investmentHandler: investmentHandler,
		dashboardHandler:  dashboardHandler,
		authMiddleware:    authMiddleware,
	})

	log.Printf("invest-desk backend starting on port %s", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
