package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/joho/godotenv"

	"github.com/mehdios/senteur/internal/config"
	"github.com/mehdios/senteur/internal/event"
	"github.com/mehdios/senteur/internal/handler"
	"github.com/mehdios/senteur/internal/logger"
	"github.com/mehdios/senteur/internal/metrics"
	"github.com/mehdios/senteur/internal/notifier"
	"github.com/mehdios/senteur/internal/push"
	"github.com/mehdios/senteur/internal/realtime"
	"github.com/mehdios/senteur/internal/router"
	"github.com/mehdios/senteur/internal/service"
	"github.com/mehdios/senteur/internal/storage"
	"github.com/mehdios/senteur/internal/subscription"
	"github.com/mehdios/senteur/migrations"
	"github.com/mehdios/senteur/pkg/observability"
)

const serviceName = "senteur"

func main() {
	l := logger.NewLogger()
	slog.SetDefault(l)

	if err := godotenv.Load(); err != nil {
		l.Info("no .env file loaded", "err", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	metrics.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.App.CollectorEndpoint != "" {
		tracerShutdown, err := observability.NewTracerProvider(ctx, serviceName, cfg.App.CollectorEndpoint, l)
		if err != nil {
			l.Error("failed to initialize tracer provider", slog.Any("error", err))
			os.Exit(1)
		}
		defer tracerShutdown()
	}

	dbPool, err := storage.NewPostgresPool(ctx, cfg.DB)
	if err != nil {
		l.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := migrations.AutoMigrateOrders(ctx, dbPool); err != nil {
		l.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}

	// Subscription store: memory by default, Redis when configured so
	// admin opt-ins survive restarts.
	var subStore subscription.Store
	if cfg.RedisAddr != "" {
		rs := subscription.NewRedisStore(cfg.RedisAddr)
		if err := rs.Ping(ctx); err != nil {
			l.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		subStore = rs
		l.Info("using redis subscription store", "addr", cfg.RedisAddr)
	} else {
		subStore = subscription.NewMemoryStore()
		l.Info("using in-memory subscription store")
	}

	var wg sync.WaitGroup

	// Realtime hub
	hub := realtime.NewHub(l)
	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()

	// Notification fan-out
	sender := push.NewSender(cfg.Push, l)
	dispatcher := notifier.NewDispatcher(
		hub,
		subStore,
		sender,
		cfg.Push.AdminURL,
		cfg.Notifier.WorkerLimit,
		cfg.Notifier.PushTimeout,
		l,
	)

	// Event pipeline: Kafka when brokers are configured, otherwise the
	// in-process bus.
	var publisher event.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		saramaCfg := sarama.NewConfig()
		saramaCfg.Version = sarama.V2_1_0_0
		saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
		saramaCfg.Producer.Retry.Max = 5
		saramaCfg.Producer.Return.Successes = true
		saramaCfg.Consumer.Return.Errors = true
		saramaCfg.ClientID = serviceName

		asyncProducer, err := sarama.NewAsyncProducer(cfg.Kafka.Brokers, saramaCfg)
		if err != nil {
			l.Error("failed to create kafka producer", slog.Any("error", err))
			os.Exit(1)
		}
		kafkaProducer := event.NewKafkaProducer(asyncProducer, cfg.Kafka.Topic, l)
		kafkaProducer.Start(ctx)
		defer kafkaProducer.Close()
		publisher = kafkaProducer

		consumerGroup, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, saramaCfg)
		if err != nil {
			l.Error("failed to create kafka consumer group", slog.Any("error", err))
			os.Exit(1)
		}
		consumer := event.NewKafkaConsumer(cfg.Kafka.Topic, consumerGroup, dispatcher, l)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				l.Error("kafka consumer stopped with error", slog.Any("error", err))
			}
		}()
		l.Info("using kafka event pipeline", "topic", cfg.Kafka.Topic)
	} else {
		bus := event.NewBus(dispatcher, 64, l)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := bus.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				l.Error("event bus stopped with error", slog.Any("error", err))
			}
		}()
		publisher = bus
		l.Info("using in-process event pipeline")
	}

	// Initialize layers
	orderStore := storage.NewPostgresStorage(dbPool)
	orderSvc := service.NewOrderService(orderStore, publisher, l)
	healthSvc := service.NewHealthService(orderStore, l)

	orderHandler := handler.NewOrderHandler(orderSvc, l)
	pushHandler := handler.NewPushHandler(subStore, sender, hub, cfg.Push, l)
	healthHandler := handler.NewHealthHandler(healthSvc, l)

	r := router.NewRouter(orderHandler, pushHandler, healthHandler, hub)

	server := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		l.Info("server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("failed to start server", slog.Any("error", err))
			cancel()
		}
	}()

	// Wait for a termination signal from the OS.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		l.Info("shutdown signal received")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		l.Error("server shutdown failed", slog.Any("error", err))
	}

	cancel()
	wg.Wait()
	l.Info("service shut down gracefully")
}
