package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcheckout/internal/checkout"
	"github.com/nikolayk812/shopcheckout/internal/config"
	"github.com/nikolayk812/shopcheckout/internal/httpapi"
	"github.com/nikolayk812/shopcheckout/internal/logger"
	"github.com/nikolayk812/shopcheckout/internal/metrics"
	"github.com/nikolayk812/shopcheckout/internal/migrations"
	"github.com/nikolayk812/shopcheckout/internal/orders"
	"github.com/nikolayk812/shopcheckout/internal/outbox"
	"github.com/nikolayk812/shopcheckout/internal/payment"
	"github.com/nikolayk812/shopcheckout/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("shop exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log := logger.New(logger.Options{
		Service: "shop",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}
	if err := migrations.Up(pool); err != nil {
		return fmt.Errorf("migrations.Up: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	if cfg.StripeSecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY is empty, checkouts will fail at the payment step")
	}
	gateway := payment.NewBreakerGateway(
		payment.NewStripeGateway(payment.StripeConfig{
			SecretKey:  cfg.StripeSecretKey,
			SuccessURL: cfg.PaymentSuccessURL,
			CancelURL:  cfg.PaymentCancelURL,
			Timeout:    cfg.PaymentTimeout,
		}, log),
		payment.DefaultBreakerSettings(),
		log,
	)

	checkoutService := checkout.NewService(repository.NewStore(pool), gateway, cfg.PaymentCurrency, log, m)
	orderService := orders.NewService(repository.NewOrder(pool), gateway, cfg.DefaultPageSize, log)

	handler := httpapi.NewHandler(checkoutService, orderService, pool, 0, log)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.NewRouter(handler, m, metrics.Handler(reg), log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("srv.Shutdown: %w", err)
		}
		return nil
	})

	if brokers := outbox.ParseBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		publisher := outbox.NewKafkaPublisher(brokers, cfg.OutboxTopic)
		defer publisher.Close()

		relay := outbox.NewRelay(repository.NewOutbox(pool), publisher, cfg.OutboxInterval, log)
		g.Go(func() error {
			relay.Run(gctx)
			return nil
		})
	} else {
		log.Info("outbox relay disabled, KAFKA_BROKERS is empty")
	}

	return g.Wait()
}
