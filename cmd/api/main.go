package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/event-marketplace/internal/api/http"
	"github.com/spec-kit/event-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/event-marketplace/internal/auth"
	"github.com/spec-kit/event-marketplace/internal/cache"
	"github.com/spec-kit/event-marketplace/internal/config"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/i18n"
	"github.com/spec-kit/event-marketplace/internal/observability"
	"github.com/spec-kit/event-marketplace/internal/persistence"
	"github.com/spec-kit/event-marketplace/internal/repository"
	"github.com/spec-kit/event-marketplace/internal/service"
	"github.com/spec-kit/event-marketplace/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()
	readCache := cache.New(redis.Client)

	translator, err := i18n.NewTranslator(cfg.Notification.Locale)
	if err != nil {
		logger.Fatal("failed to load translations", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.SubscribeAll(func(_ context.Context, event events.Event) error {
		metrics.RecordEvent(string(event.Type))
		return nil
	})

	if cfg.Kafka.Enabled() {
		mirror := events.NewKafkaMirror(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), logger)
		mirror.Register(dispatcher)
		defer func() {
			if err := mirror.Close(); err != nil {
				logger.Warn("closing kafka writer", zap.Error(err))
			}
		}()
		logger.Info("mirroring events to kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	pool := pg.Pool
	userRepo := repository.NewUserRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	vendorRepo := repository.NewVendorRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	chatRepo := repository.NewChatRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	contractRepo := repository.NewContractRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:     userRepo,
		ActivityRepo: activityRepo,
		BcryptCost:   cfg.Auth.BcryptCost,
	})
	vendorService := service.NewVendorService(service.VendorDependencies{
		VendorRepo:  vendorRepo,
		PackageRepo: packageRepo,
		ReviewRepo:  reviewRepo,
		UserRepo:    userRepo,
		Cache:       readCache,
		CacheConfig: cfg.Cache,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	packageService := service.NewPackageService(service.PackageDependencies{
		PackageRepo: packageRepo,
		VendorRepo:  vendorRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	eventService := service.NewEventService(service.EventDependencies{
		EventRepo:  eventRepo,
		VendorRepo: vendorRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	reviewService := service.NewReviewService(service.ReviewDependencies{
		ReviewRepo: reviewRepo,
		VendorRepo: vendorRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	chatService := service.NewChatService(service.ChatDependencies{
		ChatRepo:   chatRepo,
		VendorRepo: vendorRepo,
		UserRepo:   userRepo,
	})
	messageService := service.NewMessageService(service.MessageDependencies{
		MessageRepo: messageRepo,
		ChatRepo:    chatRepo,
		ChatService: chatService,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	contractService := service.NewContractService(service.ContractDependencies{
		ContractRepo: contractRepo,
		EventRepo:    eventRepo,
		VendorRepo:   vendorRepo,
		PackageRepo:  packageRepo,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	paymentService := service.NewPaymentService(service.PaymentDependencies{
		PaymentRepo:     paymentRepo,
		ContractService: contractService,
		VendorRepo:      vendorRepo,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		StatsRepo:   statsRepo,
		VendorRepo:  vendorRepo,
		ChatService: chatService,
		Cache:       readCache,
		CacheConfig: cfg.Cache,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher:       dispatcher,
		NotificationRepo: notificationRepo,
		Translator:       translator,
		Logger:           logger,
		Config:           cfg.Notification,
	})

	worker.StartNotificationWorker(
		notificationService,
		service.NewActivityRecorder(dispatcher, activityRepo, logger),
		vendorService,
	)

	var scheduler *worker.ReminderScheduler
	if cfg.Scheduler.Enabled {
		scheduler = worker.NewReminderScheduler(worker.ReminderDependencies{
			ContractRepo: contractRepo,
			EventRepo:    eventRepo,
			Notifier:     notificationService,
			Cache:        readCache,
			Config:       cfg.Scheduler,
			Logger:       logger,
		})
		if err := scheduler.Start(); err != nil {
			logger.Fatal("failed to start reminder scheduler", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Users:          handlers.NewUsersHandler(authService, userService),
		Vendors:        handlers.NewVendorsHandler(vendorService, packageService),
		Events:         handlers.NewEventsHandler(eventService),
		Reviews:        handlers.NewReviewsHandler(reviewService),
		Chats:          handlers.NewChatsHandler(chatService, messageService),
		Contracts:      handlers.NewContractsHandler(contractService, paymentService),
		Admin:          handlers.NewAdminHandler(adminService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if scheduler != nil {
		scheduler.Stop()
	}
	logger.Info("stopped", zap.Any("events", metrics.Snapshot().Events))
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
