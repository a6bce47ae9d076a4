package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/edunet/edunet/internal/app/controllers"
	appMigrations "github.com/edunet/edunet/internal/app/migrations"
	"github.com/edunet/edunet/internal/app/realtime"
	"github.com/edunet/edunet/internal/app/repositories"
	"github.com/edunet/edunet/internal/app/routes"
	"github.com/edunet/edunet/internal/app/services"
	"github.com/edunet/edunet/internal/config"
	"github.com/edunet/edunet/internal/db"
	"github.com/edunet/edunet/internal/middleware"
	pkgAuth "github.com/edunet/edunet/internal/pkg/auth"
	"github.com/edunet/edunet/internal/pkg/email"
	"github.com/edunet/edunet/internal/pkg/genai"
	"github.com/edunet/edunet/internal/pkg/logger"
	"github.com/edunet/edunet/internal/pkg/pdftext"
	"github.com/edunet/edunet/internal/pkg/storage"
	"github.com/edunet/edunet/internal/pkg/transcribe"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          services.AuthService
	ClassService         services.ClassService
	ClassroomService     services.ClassroomService
	ChatService          services.ChatService
	AnnouncementService  services.AnnouncementService
	AssignmentService    services.AssignmentService
	NoteService          services.NoteService
	RoomService          services.RoomService
	MeetingService       services.MeetingService
	AuthController       *controllers.AuthController
	ClassController      *controllers.ClassController
	ChatController       *controllers.ChatController
	AssignmentController *controllers.AssignmentController
	NoteController       *controllers.NoteController
	MeetingController    *controllers.MeetingController
	ChatNamespace        *realtime.ChatNamespace
	VideoNamespace       *realtime.VideoNamespace
	Repos                *repositories.Repositories
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes repositories, gateways, services and
// controllers
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	repos := repositories.NewRepositories(dbPool)

	verificationExp, err := time.ParseDuration(cfg.JWT.VerificationTokenExp)
	if err != nil {
		verificationExp = time.Hour
	}
	tokenService := pkgAuth.NewTokenService(pkgAuth.TokenConfig{
		SecretKey: cfg.JWT.Secret,
		Expiry:    verificationExp,
		Issuer:    cfg.JWT.Issuer,
	})

	mailer := email.NewService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.FromEmail,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr)

	generator := genai.NewClient(genai.Config{
		APIKey:  cfg.GenAI.APIKey,
		BaseURL: cfg.GenAI.BaseURL,
		Model:   cfg.GenAI.Model,
	})

	objectStorage, err := storage.NewS3Client(storage.S3Config{
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		Endpoint:  cfg.Storage.Endpoint,
		CDNURL:    cfg.Storage.CDNURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure object storage: %w", err)
	}

	transcriber := transcribe.NewClient(transcribe.Config{
		APIKey:  cfg.Deepgram.APIKey,
		BaseURL: cfg.Deepgram.BaseURL,
	})

	extractor := pdftext.NewExtractor()

	authService := services.NewAuthService(repos.UserRepository, tokenService, mailer, lgr)
	classService := services.NewClassService(repos.ClassRepository, lgr)
	classroomService := services.NewClassroomService(repos.ClassroomRepository, lgr)
	chatService := services.NewChatService(repos.ChatRepository, generator, lgr)
	announcementService := services.NewAnnouncementService(repos.AnnouncementRepository, lgr)
	assignmentService := services.NewAssignmentService(repos.AssignmentRepository, lgr)
	moderationService := services.NewModerationService(generator, lgr)
	noteService := services.NewNoteService(repos.NoteRepository, extractor, moderationService, objectStorage, cfg.Moderation.Enabled, lgr)
	roomService := services.NewRoomService(repos.RoomRepository, repos.UserRepository, lgr)
	meetingService := services.NewMeetingService(repos.MeetingRepository, repos.RoomRepository, announcementService, transcriber, generator, objectStorage, lgr)

	deps := &Dependencies{
		AuthService:          authService,
		ClassService:         classService,
		ClassroomService:     classroomService,
		ChatService:          chatService,
		AnnouncementService:  announcementService,
		AssignmentService:    assignmentService,
		NoteService:          noteService,
		RoomService:          roomService,
		MeetingService:       meetingService,
		AuthController:       controllers.NewAuthController(authService, lgr),
		ClassController:      controllers.NewClassController(classService, classroomService, lgr),
		ChatController:       controllers.NewChatController(chatService, announcementService, lgr),
		AssignmentController: controllers.NewAssignmentController(assignmentService, lgr),
		NoteController:       controllers.NewNoteController(noteService, lgr),
		MeetingController:    controllers.NewMeetingController(meetingService, lgr),
		ChatNamespace:        realtime.NewChatNamespace(chatService, lgr),
		VideoNamespace:       realtime.NewVideoNamespace(roomService, lgr),
		Repos:                repos,
		Logger:               lgr,
	}

	return deps, nil
}

// SetupRouter builds the gin engine and registers all routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	routes.SetupRouter(
		router,
		deps.AuthController,
		deps.ClassController,
		deps.ChatController,
		deps.AssignmentController,
		deps.NoteController,
		deps.MeetingController,
		deps.ChatNamespace,
		deps.VideoNamespace,
	)

	// Namespace hubs run for the lifetime of the process
	go deps.ChatNamespace.Run()
	go deps.VideoNamespace.Run()

	return router
}
