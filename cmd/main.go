package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	acceptRequestHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/accept_request"
	attachInvoiceHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/attach_invoice"
	cancelRequestHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/cancel_request"
	completeRequestHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/complete_request"
	createRequestHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/create_request"
	declineRequestHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/decline_request"
	deleteRequestHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/delete_request"
	getRequestHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/get_request"
	listClientRequestsHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/list_client_requests"
	listProviderRequestsHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/list_provider_requests"
	providerCancelHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/provider_cancel_request"
	providerFeedHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/provider_feed"
	startRequestHandler "github.com/m04kA/SMC-WashRequestService/internal/api/handlers/start_request"
	"github.com/m04kA/SMC-WashRequestService/internal/api/middleware"
	"github.com/m04kA/SMC-WashRequestService/internal/config"
	declineRepo "github.com/m04kA/SMC-WashRequestService/internal/infra/storage/decline"
	providerRepo "github.com/m04kA/SMC-WashRequestService/internal/infra/storage/provider"
	washrequestRepo "github.com/m04kA/SMC-WashRequestService/internal/infra/storage/washrequest"
	notifyServiceClient "github.com/m04kA/SMC-WashRequestService/internal/integrations/notifyservice"
	washrequestsService "github.com/m04kA/SMC-WashRequestService/internal/service/washrequests"
	acceptRequestUC "github.com/m04kA/SMC-WashRequestService/internal/usecase/accept_request"
	createRequestUC "github.com/m04kA/SMC-WashRequestService/internal/usecase/create_request"
	providerFeedUC "github.com/m04kA/SMC-WashRequestService/internal/usecase/provider_feed"
	"github.com/m04kA/SMC-WashRequestService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WashRequestService/pkg/logger"
	"github.com/m04kA/SMC-WashRequestService/pkg/metrics"
	"github.com/m04kA/SMC-WashRequestService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-WashRequestService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-WashRequestService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Клиент уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Notify client initialized (NotifyService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		requestRepository  *washrequestRepo.Repository
		declineRepository  *declineRepo.Repository
		providerRepository *providerRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		requestRepository = washrequestRepo.NewRepository(wrappedDB)
		declineRepository = declineRepo.NewRepository(wrappedDB)
		providerRepository = providerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		requestRepository = washrequestRepo.NewRepository(db)
		declineRepository = declineRepo.NewRepository(db)
		providerRepository = providerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Сервис жизненного цикла заявок
	requestSvc := washrequestsService.NewService(
		requestRepository,
		declineRepository,
		notifyClient,
		log,
	)

	// Use cases
	createRequestUseCase := createRequestUC.NewUseCase(
		requestRepository,
		txMgr,
		notifyClient,
		log,
	)

	acceptRequestUseCase := acceptRequestUC.NewUseCase(
		requestRepository,
		notifyClient,
		log,
	)

	providerFeedUseCase := providerFeedUC.NewUseCase(
		requestRepository,
		declineRepository,
		providerRepository,
		&providerFeedUC.RealTimeProvider{},
		log,
	)

	// Handlers
	createRequest := createRequestHandler.NewHandler(createRequestUseCase, log)
	getRequest := getRequestHandler.NewHandler(requestSvc, log)
	listClientRequests := listClientRequestsHandler.NewHandler(requestSvc, log)
	listProviderRequests := listProviderRequestsHandler.NewHandler(requestSvc, log)
	providerFeed := providerFeedHandler.NewHandler(providerFeedUseCase, log)
	acceptRequest := acceptRequestHandler.NewHandler(acceptRequestUseCase, log)
	declineRequest := declineRequestHandler.NewHandler(requestSvc, log)
	startRequest := startRequestHandler.NewHandler(requestSvc, log)
	completeRequest := completeRequestHandler.NewHandler(requestSvc, log)
	cancelRequest := cancelRequestHandler.NewHandler(requestSvc, log)
	providerCancel := providerCancelHandler.NewHandler(requestSvc, log)
	deleteRequest := deleteRequestHandler.NewHandler(requestSvc, log)
	attachInvoice := attachInvoiceHandler.NewHandler(requestSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все ручки требуют X-User-ID header
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки (клиент) ---
	// Создание заявки
	protected.HandleFunc("/requests", createRequest.Handle).Methods(http.MethodPost)

	// Получение заявки по ID
	protected.HandleFunc("/requests/{requestId}", getRequest.Handle).Methods(http.MethodGet)

	// История заявок клиентской компании
	protected.HandleFunc("/clients/{clientId}/requests", listClientRequests.Handle).Methods(http.MethodGet)

	// Отмена заявки клиентом
	protected.HandleFunc("/requests/{requestId}/cancel", cancelRequest.Handle).Methods(http.MethodPatch)

	// Удаление нетерминальной заявки
	protected.HandleFunc("/requests/{requestId}", deleteRequest.Handle).Methods(http.MethodDelete)

	// --- Заявки (исполнитель) ---
	// Лента доступных заявок
	protected.HandleFunc("/providers/{providerId}/feed", providerFeed.Handle).Methods(http.MethodGet)

	// Принятые исполнителем заявки
	protected.HandleFunc("/providers/{providerId}/requests", listProviderRequests.Handle).Methods(http.MethodGet)

	// Принятие заявки (условная запись, при гонке выигрывает один)
	protected.HandleFunc("/requests/{requestId}/accept", acceptRequest.Handle).Methods(http.MethodPost)

	// Отказ от непринятой заявки
	protected.HandleFunc("/requests/{requestId}/decline", declineRequest.Handle).Methods(http.MethodPost)

	// Переходы жизненного цикла
	protected.HandleFunc("/requests/{requestId}/start", startRequest.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/requests/{requestId}/complete", completeRequest.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/requests/{requestId}/provider-cancel", providerCancel.Handle).Methods(http.MethodPatch)

	// Прикрепление счета к завершенной заявке
	protected.HandleFunc("/requests/{requestId}/invoice", attachInvoice.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
