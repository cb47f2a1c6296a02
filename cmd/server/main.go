package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-map/internal/config"
	"travel-map/internal/database"
	"travel-map/internal/handlers"
	"travel-map/internal/kafka"
	"travel-map/internal/logger"
	"travel-map/internal/mapscreen"
	"travel-map/internal/models"
	"travel-map/internal/redis"
	"travel-map/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "travel-map: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info("Starting travel-map server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Хранилище маркеров
	db, err := database.Connect(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	// Кеш геокодера и маршрутов
	redisClient, err := redis.Connect(&cfg.Redis, log)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	// Сервисы
	markerService := services.NewMarkerService(db, log)
	markerStore := services.NewMarkerStore(markerService, log)
	locationService := services.NewLocationService(log)
	geocoder := services.NewGeocoderService(&cfg.Geolocation, redisClient, cfg.Redis.CacheTTL, log)
	directionsService := services.NewDirectionsService(&cfg.Geolocation, redisClient, cfg.Redis.CacheTTL, log)

	if _, err := markerStore.Refresh(ctx); err != nil {
		log.WithError(err).Warn("Initial marker snapshot is empty")
	}

	// Kafka
	kafkaMetrics := kafka.NewKafkaMetrics()

	producer, err := kafka.NewProducer(&cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer producer.Close()

	dlqProducer, err := kafka.NewDLQProducer(&cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer dlqProducer.Close()

	consumer, err := kafka.NewConsumer(&cfg.Kafka, log, dlqProducer, kafkaMetrics)
	if err != nil {
		return err
	}
	consumer.RegisterHandler(models.EventTypeLocationUpdated, locationService.HandleLocationUpdated)
	consumer.RegisterHandler(models.EventTypeMarkerChanged, markerStore.HandleMarkerChanged)

	lagMonitor, err := kafka.NewLagMonitor(&cfg.Kafka, log)
	if err != nil {
		return err
	}

	// Экраны карты
	registry := mapscreen.NewRegistry(ctx,
		func(deviceID string) mapscreen.Locator { return locationService.For(deviceID) },
		markerStore,
		geocoder,
		log,
	)
	registry.StartReaper(cfg.Server.SessionIdleTTL, cfg.Server.SessionSweepInterval)

	mux := handlers.NewMux(handlers.Router{
		Markers:      handlers.NewMarkerHandler(markerService, producer, log),
		MapSessions:  handlers.NewMapSessionHandler(registry, log),
		Directions:   handlers.NewDirectionsHandler(directionsService, log),
		RedisMetrics: handlers.NewRedisMetricsHandler(services.NewRedisService(redisClient, log), log),
		KafkaMetrics: handlers.NewKafkaMetricsHandler(services.NewKafkaMetricsService(kafkaMetrics, registry), log),
		Metrics:      promhttp.Handler(),
		HealthChecks: map[string]handlers.HealthCheck{
			"postgres": db.PingContext,
			"redis":    redisClient.Health,
		},
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := consumer.Start(); err != nil {
			return fmt.Errorf("failed to start Kafka consumer: %w", err)
		}
		lagMonitor.Start(kafkaMetrics)

		<-gctx.Done()
		lagMonitor.Stop()
		return consumer.Stop()
	})

	g.Go(func() error {
		log.WithField("addr", server.Addr).Info("HTTP server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		registry.CloseAll()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Server stopped with error")
		return err
	}

	log.Info("Server exited")
	return nil
}
