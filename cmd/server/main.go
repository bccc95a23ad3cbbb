package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/OnSightTeam/ordersvc/internal/cache"
	"github.com/OnSightTeam/ordersvc/internal/config"
	"github.com/OnSightTeam/ordersvc/internal/discount"
	"github.com/OnSightTeam/ordersvc/internal/events"
	"github.com/OnSightTeam/ordersvc/internal/handlers"
	"github.com/OnSightTeam/ordersvc/internal/metrics"
	"github.com/OnSightTeam/ordersvc/internal/middleware"
	"github.com/OnSightTeam/ordersvc/internal/notify"
	"github.com/OnSightTeam/ordersvc/internal/repository"
	"github.com/OnSightTeam/ordersvc/internal/service"
	"github.com/OnSightTeam/ordersvc/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting order service",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	// Discount codes: built-in codes plus any configured files
	codes := discount.NewRegistry()
	if len(cfg.Discount.Files) > 0 {
		log.Info("loading discount codes...")
		if err := codes.LoadFromFiles(runCtx, cfg.Discount.Files); err != nil {
			log.Error("failed to load discount codes", "error", err)
			os.Exit(1)
		}
	}
	stats := codes.Stats()
	log.Info("discount codes ready",
		"total_codes", stats["total_codes"],
		"loaded_files", stats["loaded_files"],
	)

	// Order storage
	repo, err := repository.Open(cfg.DB.Path)
	if err != nil {
		log.Error("failed to open orders database", "error", err)
		os.Exit(1)
	}
	log.Info("orders database ready", "path", cfg.DB.Path)

	// Optional Redis cache for order lookups
	var orderCache cache.Cache
	if cfg.Redis.Addr != "" {
		orderCache = cache.NewRedisCache(cfg.Redis.Addr, cfg.ServiceName)
		log.Info("order cache enabled", "addr", cfg.Redis.Addr)
	}

	// Optional Kafka producer for order events
	var producer *events.Producer
	var eventSink service.OrderEvents
	if len(cfg.Kafka.Brokers) > 0 {
		producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.ServiceName, cfg.Kafka.Buffer, log)
		producer.Start(runCtx)
		eventSink = producer
		log.Info("event publishing enabled", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	}

	// Initialize services
	m := metrics.NewRegistry()
	notifier := notify.NewLogNotifier(log)
	orderService := service.NewOrderService(repo, codes, notifier, eventSink, m, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.ServiceName, log)
	orderHandler := handlers.NewOrderHandler(orderService, orderCache, log)
	discountHandler := handlers.NewDiscountHandler(codes, log)
	shippingHandler := handlers.NewShippingHandler(log)
	customerHandler := handlers.NewCustomerHandler(log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Operational endpoints
	r.Get("/health", healthHandler.ServeHTTP)
	r.Handle("/metrics", m.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Order endpoints; creating orders requires an API key
		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.APIKeyAuth(cfg.Auth)).Post("/", orderHandler.CreateOrder)
			r.Get("/{orderId}", orderHandler.GetOrder)
		})

		// Shipping and customer endpoints
		r.Get("/shipping/quote", shippingHandler.Quote)
		r.Get("/customers/{customerName}", customerHandler.Profile)

		// Discount endpoints
		r.Get("/discounts/stats", discountHandler.GetStats)
		r.Get("/discounts/{code}", discountHandler.GetDiscount)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown; in-flight requests finish before the
	// producer inbox is closed, so no publish can race the close.
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if producer != nil {
		producer.Close()
		producer.WaitClosed()
	}
	if orderCache != nil {
		if err := orderCache.Close(); err != nil {
			log.Warn("closing order cache", "error", err)
		}
	}
	if err := repo.Close(); err != nil {
		log.Warn("closing orders database", "error", err)
	}

	log.Info("server stopped gracefully")
}
