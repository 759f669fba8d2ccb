package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cartcommand "github.com/iothub/storefront/internal/cart/usecase/command"
	cartquery "github.com/iothub/storefront/internal/cart/usecase/query"
	catalogcommand "github.com/iothub/storefront/internal/catalog/usecase/command"
	catalogquery "github.com/iothub/storefront/internal/catalog/usecase/query"
	ordercommand "github.com/iothub/storefront/internal/order/usecase/command"
	orderquery "github.com/iothub/storefront/internal/order/usecase/query"
	otpcommand "github.com/iothub/storefront/internal/otp/usecase/command"
	"github.com/iothub/storefront/internal/session"
	usercommand "github.com/iothub/storefront/internal/user/usecase/command"
	userquery "github.com/iothub/storefront/internal/user/usecase/query"
	"github.com/iothub/storefront/kafka"
	"github.com/iothub/storefront/pkg/database"
	"github.com/iothub/storefront/pkg/keystore"
	"github.com/iothub/storefront/pkg/links"
	"github.com/iothub/storefront/pkg/logger"
	"github.com/iothub/storefront/pkg/tracing"

	carthttp "github.com/iothub/storefront/internal/cart/delivery/http"
	cartrepo "github.com/iothub/storefront/internal/cart/repository"
	cataloghttp "github.com/iothub/storefront/internal/catalog/delivery/http"
	catalogdomain "github.com/iothub/storefront/internal/catalog/domain"
	catalogrepo "github.com/iothub/storefront/internal/catalog/repository"
	orderhttp "github.com/iothub/storefront/internal/order/delivery/http"
	orderrepo "github.com/iothub/storefront/internal/order/repository"
	otpdomain "github.com/iothub/storefront/internal/otp/domain"
	otprepo "github.com/iothub/storefront/internal/otp/repository"
	userhttp "github.com/iothub/storefront/internal/user/delivery/http"
	userdomain "github.com/iothub/storefront/internal/user/domain"
	userrepo "github.com/iothub/storefront/internal/user/repository"
	wishlisthttp "github.com/iothub/storefront/internal/wishlist/delivery/http"
	wishlistrepo "github.com/iothub/storefront/internal/wishlist/repository"
	wishlistcommand "github.com/iothub/storefront/internal/wishlist/usecase/command"
	wishlistquery "github.com/iothub/storefront/internal/wishlist/usecase/query"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting storefront service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "storefrontdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database with GORM (catalog, profiles, OTP)
	gormDB, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := gormDB.AutoMigrate(&catalogdomain.Product{}, &userdomain.Profile{}, &otpdomain.Verification{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Separate plain connection for the order repository
	orderDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to order database")
	}
	defer orderDB.Close()

	orders := orderrepo.NewPostgresOrderRepository(orderDB)
	if err := orders.Migrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run order migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Connect to Redis for carts, wishlists and sessions
	redisClient, err := database.NewRedisClient(database.RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	store := keystore.NewRedisStore(redisClient)

	// Kafka publisher is optional; without it order and OTP events are
	// simply not emitted
	var publisher *kafka.Publisher
	if getEnv("KAFKA_ENABLED", "true") == "true" {
		brokers := []string{getEnv("KAFKA_BROKERS", "localhost:9092")}
		publisher, err = kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Repositories
	products := catalogrepo.NewGormProductRepository(gormDB)
	profiles := userrepo.NewGormProfileRepository(gormDB)
	verifications := otprepo.NewGormVerificationRepository(gormDB)
	carts := cartrepo.NewKeystoreCartRepository(store)
	wishlists := wishlistrepo.NewKeystoreWishlistRepository(store)
	sessions := session.NewManager(store)

	upiConfig := links.UPIConfig{
		PayeeAddress: getEnv("UPI_PAYEE_ADDRESS", "store@upi"),
		PayeeName:    getEnv("UPI_PAYEE_NAME", "IoT Components Hub"),
	}
	supportNo := getEnv("SUPPORT_WHATSAPP", "919000000000")
	supportEmail := getEnv("SUPPORT_EMAIL", "support@iothub.example.com")

	// HTTP handlers
	userHandler := userhttp.NewUserHandler(
		usercommand.NewRegisterUserHandler(profiles),
		usercommand.NewLoginUserHandler(profiles, sessions),
		usercommand.NewOAuthLoginHandler(profiles, sessions),
		usercommand.NewLogoutUserHandler(sessions, store),
		usercommand.NewVerifyAuthHandler(sessions),
		otpcommand.NewRequestOTPHandler(verifications, publisher),
		otpcommand.NewVerifyOTPHandler(verifications),
		userquery.NewGetProfileHandler(profiles),
		userquery.NewRehydrateSessionHandler(profiles, sessions),
		profiles,
	)

	catalogHandler := cataloghttp.NewCatalogHandler(
		catalogcommand.NewCreateProductHandler(products),
		catalogcommand.NewUpdateStockHandler(products),
		catalogquery.NewGetProductHandler(products),
		catalogquery.NewListProductsHandler(products),
		catalogquery.NewGetStatsHandler(products),
		products,
	)

	cartHandler := carthttp.NewCartHandler(
		cartcommand.NewAddItemHandler(carts, products),
		cartcommand.NewRemoveItemHandler(carts),
		cartcommand.NewUpdateQuantityHandler(carts),
		cartcommand.NewClearCartHandler(carts),
		cartquery.NewGetCartHandler(carts),
	)

	wishlistHandler := wishlisthttp.NewWishlistHandler(
		wishlistcommand.NewAddItemHandler(wishlists, products),
		wishlistcommand.NewRemoveItemHandler(wishlists),
		wishlistcommand.NewClearWishlistHandler(wishlists),
		wishlistquery.NewGetWishlistHandler(wishlists),
	)

	orderHandler := orderhttp.NewOrderHandler(
		ordercommand.NewPlaceOrderHandler(orders, carts, publisher, upiConfig, supportNo, supportEmail),
		ordercommand.NewUpdateStatusHandler(orders),
		orderquery.NewGetOrderHandler(orders),
		orderquery.NewListOrdersHandler(orders),
	)

	// Setup router
	router := mux.NewRouter()
	userHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	wishlistHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := orderDB.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := otelhttp.NewHandler(c.Handler(router), "storefront-http")

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: handler,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
