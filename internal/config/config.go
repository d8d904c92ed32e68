package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPPort int

	DatabaseURL string

	StripeSecretKey   string
	PaymentSuccessURL string
	PaymentCancelURL  string
	PaymentCurrency   currency.Unit
	PaymentTimeout    time.Duration

	// KafkaBrokers is a comma separated list; empty disables the outbox relay.
	KafkaBrokers   string
	OutboxTopic    string
	OutboxInterval time.Duration

	ShutdownTimeout time.Duration
	DefaultPageSize int
}

func Load() (Config, error) {
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if db == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}

	cur, err := currency.ParseISO(strings.ToUpper(getEnv("PAYMENT_CURRENCY", "INR")))
	if err != nil {
		return Config{}, fmt.Errorf("PAYMENT_CURRENCY: %w", err)
	}

	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		DatabaseURL: db,

		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		PaymentSuccessURL: getEnv("PAYMENT_SUCCESS_URL", "http://localhost:8080/orders?orderid={ORDER_ID}"),
		PaymentCancelURL:  getEnv("PAYMENT_CANCEL_URL", "http://localhost:8080/"),
		PaymentCurrency:   cur,
		PaymentTimeout:    getEnvDuration("PAYMENT_TIMEOUT", 10*time.Second),

		KafkaBrokers:   os.Getenv("KAFKA_BROKERS"),
		OutboxTopic:    os.Getenv("OUTBOX_TOPIC"),
		OutboxInterval: getEnvDuration("OUTBOX_INTERVAL", time.Second),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 6),
	}, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}
