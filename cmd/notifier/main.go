package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sendgrid/sendgrid-go"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"eurekastreams-backend/internal/api/grpc/interceptor"
	httpapi "eurekastreams-backend/internal/api/http"
	"eurekastreams-backend/internal/app"
	"eurekastreams-backend/internal/config"
	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/notifier"
	"eurekastreams-backend/internal/queue"
	"eurekastreams-backend/internal/repository/postgres"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Eureka Streams notification worker...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "grpc_address", cfg.GetServerAddress(), "http_address", cfg.GetMetricsAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Redis configuration", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB, "queue", cfg.Notification.QueueKey)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to ping redis", "error", err)
		log.Fatalf("Failed to ping redis: %v", err)
	}
	logger.Info("Redis connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Notifiers
	notifiers, err := buildNotifiers(ctx, cfg, store, rdb)
	if err != nil {
		logger.Error("Failed to initialize notifiers", "error", err)
		log.Fatalf("Failed to initialize notifiers: %v", err)
	}

	// Initialize Services
	noteSvc := app.NewNotificationService(store, notifiers)

	// Initialize Queue
	requests := queue.NewRedisQueue(rdb, cfg.Notification.QueueKey, cfg.QueueTimeout())
	consumer := queue.NewConsumer(requests, noteSvc.CreateNotifications, cfg.Notification.Workers)

	// Set up HTTP server
	router := mux.NewRouter()
	httpapi.RegisterOpsRoutes(router, map[string]httpapi.HealthCheck{
		"database": db.PingContext,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	})
	httpServer := &http.Server{
		Addr:              cfg.GetMetricsAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	// Set up gRPC health server
	lis, err := net.Listen("tcp", cfg.GetServerAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetServerAddress())
		log.Fatalf("Failed to listen: %v", err)
	}
	s := grpc.NewServer(grpc.UnaryInterceptor(interceptor.Unary()))
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(s, healthSrv)
	reflection.Register(s)
	go func() {
		logger.Info("gRPC server listening", "address", cfg.GetServerAddress())
		if err := s.Serve(lis); err != nil {
			logger.Error("Failed to serve gRPC", "error", err)
			stop()
		}
	}()

	// Run consumer until shutdown
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	consumer.Run(ctx)

	// Graceful shutdown
	logger.Info("Shutting down notification worker...")
	healthSrv.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	s.GracefulStop()
	logger.Info("Notification worker stopped. Goodbye!")
}

// buildNotifiers creates one notifier per enabled delivery channel. In-app
// delivery is always on.
func buildNotifiers(ctx context.Context, cfg *config.Config, store *postgres.Store, rdb *redis.Client) (map[domain.NotifierType]notifier.Notifier, error) {
	notifiers := make(map[domain.NotifierType]notifier.Notifier)

	inApp, err := notifier.NewInAppNotifier(store.NotificationRepository, rdb, cfg.Notification.ChannelPrefix, notifier.DefaultMessages, notifier.DefaultAggregateMessages)
	if err != nil {
		return nil, fmt.Errorf("in-app notifier: %w", err)
	}
	notifiers[domain.NotifierInApp] = inApp

	if cfg.Email.Enabled {
		email, err := notifier.NewEmailNotifier(sendgrid.NewSendClient(cfg.Email.APIKey), notifier.EmailConfig{
			FromAddress:   cfg.Email.From,
			FromName:      cfg.Email.FromName,
			SubjectPrefix: cfg.Email.SubjectPrefix,
			BaseURL:       cfg.Email.BaseURL,
		}, notifier.DefaultMessages)
		if err != nil {
			return nil, fmt.Errorf("email notifier: %w", err)
		}
		notifiers[domain.NotifierEmail] = email
		logger.Info("Email notifications enabled", "from", cfg.Email.From)
	}

	if cfg.Push.Enabled {
		fbApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.Push.CredentialsFile))
		if err != nil {
			return nil, fmt.Errorf("firebase app: %w", err)
		}
		client, err := fbApp.Messaging(ctx)
		if err != nil {
			return nil, fmt.Errorf("firebase messaging: %w", err)
		}
		push, err := notifier.NewPushNotifier(client, store.DeviceRepository, cfg.Push.Title, notifier.DefaultMessages)
		if err != nil {
			return nil, fmt.Errorf("push notifier: %w", err)
		}
		notifiers[domain.NotifierPush] = push
		logger.Info("Push notifications enabled")
	}

	return notifiers, nil
}
