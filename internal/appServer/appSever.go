package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/seat-reservation/config"
	"github.com/ds124wfegd/seat-reservation/internal/cache"
	repository "github.com/ds124wfegd/seat-reservation/internal/database/postgres"
	"github.com/ds124wfegd/seat-reservation/internal/service"
	"github.com/ds124wfegd/seat-reservation/internal/transport"
	"github.com/ds124wfegd/seat-reservation/internal/worker"

	"github.com/ds124wfegd/seat-reservation/pkg/postgres"
	"github.com/ds124wfegd/seat-reservation/pkg/queue"
	"github.com/ds124wfegd/seat-reservation/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	ledgerRepo := repository.NewLedgerRepository(db)
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize availability cache
	redisClient := redis.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()
	availabilityCache := cache.NewAvailabilityCache(redisClient, cfg.Cache.AvailabilityTTL)

	// Initialize task queue for commit events
	var taskPublisher service.TaskPublisher
	var redisQueue queue.Queue

	queueConfig := queue.DefaultRedisQueueConfig()
	queueConfig.Addr = redisClient.Options().Addr
	queueConfig.Password = cfg.Redis.Password
	queueConfig.DB = cfg.Redis.DB

	if q, err := queue.NewRedisQueue(queueConfig, nil); err != nil {
		logrus.Errorf("Failed to initialize Redis queue: %v. Continuing without queue...", err)
	} else {
		redisQueue = q
		logrus.Info("Redis queue initialized")
		// Создаем адаптер для очереди
		taskPublisher = service.NewQueueAdapter(redisQueue)
	}

	// Initialize services
	availabilityService := service.NewAvailabilityService(ledgerRepo, eventRepo, availabilityCache)
	reservationService := service.NewReservationService(
		ledgerRepo,
		eventRepo,
		taskPublisher,
		cfg.Reservation.MaxAttempts,
		cfg.Reservation.BackoffBase,
		cfg.Reservation.BackoffMax,
		cfg.Reservation.MaxSeats,
	)
	eventService := service.NewEventService(eventRepo, availabilityService)
	historyService := service.NewHistoryService(ledgerRepo, eventRepo)
	userService := service.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start queue consumer if queue is available
	if redisQueue != nil {
		taskHandler := service.NewTaskHandler(availabilityService)
		if err := redisQueue.Subscribe(ctx, taskHandler.HandleTask); err != nil {
			logrus.Errorf("Queue subscriber error: %v", err)
		} else {
			logrus.Info("Queue subscriber started")
		}
	}

	// Initialize cache warm worker
	warmWorker := worker.NewAvailabilityWorker(eventRepo, availabilityService, cfg.Worker.WarmInterval)
	go warmWorker.Start(ctx)
	logrus.Info("Availability warm worker started")

	// Initialize handlers
	eventHandler := transport.NewEventHandler(eventService, availabilityService)
	bookingHandler := transport.NewBookingHandler(reservationService, historyService)
	userHandler := transport.NewUserHandler(userService)

	// Setup HTTP server
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(cfg.JWT.Secret, eventHandler, bookingHandler, userHandler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

	if redisQueue != nil {
		if err := redisQueue.Close(); err != nil {
			logrus.Errorf("error occured on queue closing: %s", err.Error())
		}
	}
}
