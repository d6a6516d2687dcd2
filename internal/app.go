package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	token_adapter "catalog-service/internal/adapters/jwt"
	logger_adapter "catalog-service/internal/adapters/logger"
	"catalog-service/internal/adapters/excel"
	"catalog-service/internal/adapters/filestorage"
	postgres_adapter "catalog-service/internal/adapters/postgres"
	"catalog-service/internal/adapters/rest"
	"catalog-service/internal/adapters/totp"
	"catalog-service/internal/configs"
	"catalog-service/internal/core/port"
	"catalog-service/internal/core/usecase"

	"catalog-service/pkg/fluentlogger"
	"catalog-service/pkg/postgres"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. НИЗКОУРОВНЕВЫЕ ЗАВИСИМОСТИ ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	projectStorage := postgres_adapter.NewProjectStorageAdapter(dbPool)
	mediaStorage := postgres_adapter.NewMediaStorageAdapter(dbPool)
	userRepository := postgres_adapter.NewUserRepositoryAdapter(dbPool)
	activityLog := postgres_adapter.NewActivityLogAdapter(dbPool)
	appLogger.Info("Postgres storage adapters initialized.", nil)

	tokenService, err := token_adapter.NewTokenService(appConfig.JWT.Secret, appConfig.JWT.TokenTTL)
	if err != nil {
		appLogger.Error("Failed to create token service", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	totpService := totp.NewTOTPService(appConfig.AppName)

	fileStorage, err := filestorage.NewDiskStorage(appConfig.Uploads.Dir)
	if err != nil {
		appLogger.Error("Failed to create file storage", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create file storage: %w", err)
	}

	workbook := excel.NewProjectWorkbook()
	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 4. USE CASES (ядро бизнес-логики) ---
	searchProjectsUseCase := usecase.NewSearchProjectsUseCase(projectStorage, userRepository)
	getProjectUseCase := usecase.NewGetProjectUseCase(projectStorage, userRepository)
	createProjectUseCase := usecase.NewCreateProjectUseCase(projectStorage, activityLog)
	updateProjectUseCase := usecase.NewUpdateProjectUseCase(projectStorage, activityLog)
	deleteProjectUseCase := usecase.NewDeleteProjectUseCase(projectStorage, fileStorage, activityLog)
	bulkDeleteProjectsUseCase := usecase.NewBulkDeleteProjectsUseCase(projectStorage, fileStorage, activityLog)
	bulkImportProjectsUseCase := usecase.NewBulkImportProjectsUseCase(projectStorage, workbook, activityLog)
	exportProjectsUseCase := usecase.NewExportProjectsUseCase(projectStorage, workbook)
	findSimilarProjectsUseCase := usecase.NewFindSimilarProjectsUseCase(projectStorage, userRepository)
	setProjectVisibilityUseCase := usecase.NewSetProjectVisibilityUseCase(projectStorage, activityLog)

	uploadMediaUseCase := usecase.NewUploadMediaUseCase(mediaStorage, projectStorage, fileStorage, activityLog)
	deleteMediaUseCase := usecase.NewDeleteMediaUseCase(mediaStorage, fileStorage, activityLog)
	downloadMediaUseCase := usecase.NewDownloadMediaUseCase(mediaStorage, fileStorage)
	setMediaVisibilityUseCase := usecase.NewSetMediaVisibilityUseCase(mediaStorage, activityLog)

	registerUserUseCase := usecase.NewRegisterUserUseCase(userRepository, tokenService)
	loginUserUseCase := usecase.NewLoginUserUseCase(userRepository, tokenService)
	verifyTOTPUseCase := usecase.NewVerifyTOTPUseCase(userRepository, totpService, tokenService)
	manageTwoFactorUseCase := usecase.NewManageTwoFactorUseCase(userRepository, totpService)
	getProfileUseCase := usecase.NewGetProfileUseCase(userRepository)

	listUsersUseCase := usecase.NewListUsersUseCase(userRepository)
	createUserUseCase := usecase.NewCreateUserUseCase(userRepository, activityLog)
	updateUserUseCase := usecase.NewUpdateUserUseCase(userRepository, activityLog)
	deleteUserUseCase := usecase.NewDeleteUserUseCase(userRepository, activityLog)

	appLogger.Info("All use cases initialized.", nil)

	// --- 5. REST API Server ---
	projectHandler := rest.NewProjectHandler(
		searchProjectsUseCase,
		getProjectUseCase,
		createProjectUseCase,
		updateProjectUseCase,
		deleteProjectUseCase,
		bulkDeleteProjectsUseCase,
		bulkImportProjectsUseCase,
		exportProjectsUseCase,
		findSimilarProjectsUseCase,
		setProjectVisibilityUseCase,
	)
	mediaHandler := rest.NewMediaHandler(uploadMediaUseCase, deleteMediaUseCase, downloadMediaUseCase, setMediaVisibilityUseCase)
	authHandler := rest.NewAuthHandler(registerUserUseCase, loginUserUseCase, verifyTOTPUseCase, manageTwoFactorUseCase, getProfileUseCase)
	userHandler := rest.NewUserHandler(listUsersUseCase, createUserUseCase, updateUserUseCase, deleteUserUseCase)
	authMiddleware := rest.NewAuthMiddleware(tokenService)

	apiServer := rest.NewServer(appConfig.Rest.PORT, projectHandler, mediaHandler, authHandler, userHandler, authMiddleware, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	// --- 6. Собираем приложение ---
	application := &App{
		config:       appConfig,
		dbPool:       dbPool,
		apiServer:    apiServer,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
