package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/interview-coach-team/interview-coach/pkg/validator"

	"github.com/interview-coach-team/interview-coach/internal/adapter/handler"
	"github.com/interview-coach-team/interview-coach/internal/adapter/repository"
	"github.com/interview-coach-team/interview-coach/internal/infrastructure/cache"
	"github.com/interview-coach-team/interview-coach/internal/infrastructure/database"
	"github.com/interview-coach-team/interview-coach/internal/infrastructure/external/livekit"
	"github.com/interview-coach-team/interview-coach/internal/infrastructure/external/profile"
	"github.com/interview-coach-team/interview-coach/internal/infrastructure/storage"
	httpmw "github.com/interview-coach-team/interview-coach/internal/infrastructure/http/middleware"
	interviewUsecase "github.com/interview-coach-team/interview-coach/internal/usecase/interview"
	pkgai "github.com/interview-coach-team/interview-coach/pkg/ai"
	"github.com/interview-coach-team/interview-coach/pkg/config"
	"github.com/interview-coach-team/interview-coach/pkg/jwt"
)

// @title           Interview Coach API
// @version         1.0
// @description     API for AI mock interviews with live behavioral metrics tracking

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.Bootstrap(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Profile cache: Redis when reachable, in-process store otherwise
	log.Println("📦 Connecting to Redis...")
	var profileStore profile.Store
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v), using in-memory profile cache", err)
		profileStore = profile.NewMemoryStoreAdapter(cache.NewMemoryStore())
	} else {
		defer redisClient.Close()
		profileStore = profile.NewRedisStore(redisClient)
	}
	profileProvider := profile.NewProvider(profileStore)

	// Repositories
	log.Println("⚙️  Initializing repositories...")
	metricsRepo := repository.NewMetricsRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// AI clients
	log.Println("🤖 Initializing AI components...")
	ctx := context.Background()
	geminiClient, err := pkgai.NewGeminiClient(ctx, &cfg.Gemini)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	var speechClient interviewUsecase.SpeechTranscriber
	if cfg.Assembly.APIKey != "" {
		speechClient = pkgai.NewSpeechClient(&cfg.Assembly)
	} else {
		log.Println("⚠️  ASSEMBLYAI_API_KEY not set, audio answers disabled")
	}

	// Object storage for transcript archives and answer audio (optional)
	var archiver interviewUsecase.Archiver
	var audioStore interviewUsecase.AnswerAudioStore
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Printf("⚠️  Object storage unavailable (%v), transcript archiving disabled", err)
	} else {
		archiver = minioClient
		audioStore = minioClient
	}

	// LiveKit camera-feed tokens (optional)
	var rooms interviewUsecase.RoomTokenIssuer
	if cfg.LiveKit.APIKey != "" && cfg.LiveKit.APISecret != "" {
		rooms = livekit.NewClient(cfg.LiveKit.URL, cfg.LiveKit.APIKey, cfg.LiveKit.APISecret, cfg.LiveKit.TokenTTL)
		log.Printf("🎥 LiveKit tokens issued for %s", cfg.LiveKit.URL)
	} else {
		log.Println("⚠️  LiveKit credentials not set, camera feed disabled")
	}

	// Interview engine
	log.Println("🎤 Initializing interview service...")
	store := interviewUsecase.NewStore()
	validator := interviewUsecase.NewAnswerValidator(geminiClient, logger, cfg.Gemini.Timeout)
	gateway := interviewUsecase.NewGateway(metricsRepo, transcriptRepo, feedbackRepo, archiver, logger)
	interviewService := interviewUsecase.NewService(
		store,
		geminiClient,
		validator,
		gateway,
		speechClient,
		audioStore,
		rooms,
		profileProvider,
		logger,
		cfg.Interview,
		cfg.Gemini.Timeout,
	)

	// JWT manager and auth middleware
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)
	authMW := httpmw.EchoAuth(jwtManager)

	// Handlers and routes
	log.Println("🛣️  Setting up routes...")
	interviewHandler := handler.NewInterviewHandler(interviewService, transcriptRepo, metricsRepo, feedbackRepo, logger)
	devTokenHandler := handler.NewDevTokenHandler(jwtManager)
	router := handler.NewRouter(cfg, interviewHandler, devTokenHandler, authMW)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	// Flush every live interview before the process exits
	interviewService.Shutdown(shutdownCtx)

	log.Println("✅ Server stopped gracefully")
}
