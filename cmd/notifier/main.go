package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iothub/storefront/kafka"
	"github.com/iothub/storefront/pkg/logger"
	"github.com/iothub/storefront/pkg/tracing"
)

// The notifier consumes storefront events and fans them out as customer
// notifications. Delivery is log-only for now; the SMS and email
// transports hang off the same handlers.
func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront-notifier")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().Str("service", serviceName).Msg("Starting notifier")

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

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "storefront-notifier")
	topics := []string{kafka.TopicOrderPlaced, kafka.TopicOTPRequested}

	consumer, err := kafka.NewConsumer(brokers, groupID, topics)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeOrderPlaced, handleOrderPlaced)
	consumer.RegisterHandler(kafka.EventTypeOTPRequested, handleOTPRequested)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Logger.Info().Msg("Shutting down notifier...")
		cancel()
	}()

	logger.Logger.Info().
		Strs("brokers", brokers).
		Strs("topics", topics).
		Str("group_id", groupID).
		Msg("Consuming events")

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	<-ctx.Done()
}

func handleOrderPlaced(ctx context.Context, payload []byte) error {
	var event kafka.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("order_id", event.OrderID).
		Str("user_id", event.UserID).
		Float64("total", event.Total).
		Str("currency", event.Currency).
		Int("items", len(event.Items)).
		Msg("Order confirmation notification")

	return nil
}

func handleOTPRequested(ctx context.Context, payload []byte) error {
	var event kafka.OTPRequestedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	// The code itself never goes to the log, only to the SMS transport
	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("phone", maskPhone(event.Phone)).
		Time("expires_at", event.ExpiresAt).
		Msg("OTP notification")

	return nil
}

// maskPhone keeps the last four digits for correlation
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
