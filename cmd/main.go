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

	acceptAppointmentHandler "github.com/garagedesk/GMS-AppointmentService/internal/api/handlers/accept_appointment"
	cancelAppointmentHandler "github.com/garagedesk/GMS-AppointmentService/internal/api/handlers/cancel_appointment"
	completePaymentHandler "github.com/garagedesk/GMS-AppointmentService/internal/api/handlers/complete_payment"
	getAppointmentHandler "github.com/garagedesk/GMS-AppointmentService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/garagedesk/GMS-AppointmentService/internal/api/handlers/get_availability"
	getClientAppointmentsHandler "github.com/garagedesk/GMS-AppointmentService/internal/api/handlers/get_client_appointments"
	getClientInvoicesHandler "github.com/garagedesk/GMS-AppointmentService/internal/api/handlers/get_client_invoices"
	getInvoiceHandler "github.com/garagedesk/GMS-AppointmentService/internal/api/handlers/get_invoice"
	getMechanicAppointmentsHandler "github.com/garagedesk/GMS-AppointmentService/internal/api/handlers/get_mechanic_appointments"
	publishAvailabilityHandler "github.com/garagedesk/GMS-AppointmentService/internal/api/handlers/publish_availability"
	refuseAppointmentHandler "github.com/garagedesk/GMS-AppointmentService/internal/api/handlers/refuse_appointment"
	requestAppointmentHandler "github.com/garagedesk/GMS-AppointmentService/internal/api/handlers/request_appointment"
	"github.com/garagedesk/GMS-AppointmentService/internal/api/middleware"
	"github.com/garagedesk/GMS-AppointmentService/internal/config"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	appointmentRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/appointment"
	availabilityRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/availability"
	invoiceRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/invoice"
	staffServiceClient "github.com/garagedesk/GMS-AppointmentService/internal/integrations/staffservice"
	vehicleServiceClient "github.com/garagedesk/GMS-AppointmentService/internal/integrations/vehicleservice"
	appointmentsService "github.com/garagedesk/GMS-AppointmentService/internal/service/appointments"
	availabilityService "github.com/garagedesk/GMS-AppointmentService/internal/service/availability"
	invoicesService "github.com/garagedesk/GMS-AppointmentService/internal/service/invoices"
	cancelAppointmentUC "github.com/garagedesk/GMS-AppointmentService/internal/usecase/cancel_appointment"
	completePaymentUC "github.com/garagedesk/GMS-AppointmentService/internal/usecase/complete_payment"
	publishAvailabilityUC "github.com/garagedesk/GMS-AppointmentService/internal/usecase/publish_availability"
	refuseAppointmentUC "github.com/garagedesk/GMS-AppointmentService/internal/usecase/refuse_appointment"
	requestAppointmentUC "github.com/garagedesk/GMS-AppointmentService/internal/usecase/request_appointment"
	"github.com/garagedesk/GMS-AppointmentService/pkg/dbmetrics"
	"github.com/garagedesk/GMS-AppointmentService/pkg/logger"
	"github.com/garagedesk/GMS-AppointmentService/pkg/metrics"
	"github.com/garagedesk/GMS-AppointmentService/pkg/simpletxmanager"
	"github.com/garagedesk/GMS-AppointmentService/pkg/txmanager"
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

	log.Info("Starting GMS-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Рабочее окно публикации слотов
	window, err := cfg.Booking.ToDomainWindow()
	if err != nil {
		log.Fatal("Invalid booking window configuration: %v", err)
	}
	log.Info("Booking window: %s-%s, granularity %d min",
		window.OpenTime, window.CloseTime, window.GranularityMinutes)

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

	// Инициализируем интеграционных клиентов
	vehicleClient := vehicleServiceClient.NewClient(
		cfg.VehicleService.URL,
		time.Duration(cfg.VehicleService.Timeout)*time.Second,
		log,
	)
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VehicleService=%s timeout=%ds, StaffService=%s timeout=%ds)",
		cfg.VehicleService.URL, cfg.VehicleService.Timeout, cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Публикация событий жизненного цикла записей
	publisher := events.NewLogPublisher(log)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		invoiceRepository      *invoiceRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		invoiceRepository = invoiceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		invoiceRepository = invoiceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		publisher,
		log,
	)
	availabilitySvc := availabilityService.NewService(availabilityRepository, log)
	invoiceSvc := invoicesService.NewService(invoiceRepository, log)

	// Инициализируем use cases
	requestAppointmentUseCase := requestAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		vehicleClient,
		staffClient,
		txMgr,
		publisher,
		&requestAppointmentUC.RealTimeProvider{},
		log,
	)
	refuseAppointmentUseCase := refuseAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		txMgr,
		publisher,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		txMgr,
		publisher,
		log,
	)
	completePaymentUseCase := completePaymentUC.NewUseCase(
		appointmentRepository,
		invoiceRepository,
		txMgr,
		publisher,
		&completePaymentUC.RealTimeProvider{},
		log,
	)
	publishAvailabilityUseCase := publishAvailabilityUC.NewUseCase(
		availabilityRepository,
		appointmentRepository,
		staffClient,
		txMgr,
		publisher,
		&publishAvailabilityUC.RealTimeProvider{},
		window,
		log,
	)

	// Инициализируем handlers
	requestAppointment := requestAppointmentHandler.NewHandler(requestAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	acceptAppointment := acceptAppointmentHandler.NewHandler(appointmentSvc, log)
	refuseAppointment := refuseAppointmentHandler.NewHandler(refuseAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	completePayment := completePaymentHandler.NewHandler(completePaymentUseCase, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getMechanicAppointments := getMechanicAppointmentsHandler.NewHandler(appointmentSvc, log)
	publishAvailability := publishAvailabilityHandler.NewHandler(publishAvailabilityUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getInvoice := getInvoiceHandler.NewHandler(invoiceSvc, log)
	getClientInvoices := getClientInvoicesHandler.NewHandler(invoiceSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты механика видны всем клиентам
	api.HandleFunc("/mechanics/{mechanicId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Уведомление платежной системы о завершенной оплате
	api.HandleFunc("/appointments/{appointmentId}/payment",
		completePayment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи к механику
	protected.HandleFunc("/appointments", requestAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Решения по записи
	protected.HandleFunc("/appointments/{appointmentId}/accept", acceptAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/refuse", refuseAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Кабинет механика ---
	// План записей механика
	protected.HandleFunc("/mechanics/{mechanicId}/appointments", getMechanicAppointments.Handle).Methods(http.MethodGet)

	// Публикация календаря доступности
	protected.HandleFunc("/mechanics/{mechanicId}/availability", publishAvailability.Handle).Methods(http.MethodPut)

	// --- Счета ---
	protected.HandleFunc("/invoices/{invoiceNumber}", getInvoice.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{clientId}/invoices", getClientInvoices.Handle).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
