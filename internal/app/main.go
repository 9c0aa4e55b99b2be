package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/LogVault/internal/broker"
	kafkabroker "github.com/Egor213/LogVault/internal/broker/kafka"
	"github.com/Egor213/LogVault/internal/config"
	httpv1 "github.com/Egor213/LogVault/internal/controller/http/v1"
	"github.com/Egor213/LogVault/internal/metrics"
	"github.com/Egor213/LogVault/internal/repo"
	"github.com/Egor213/LogVault/internal/service"
	errorsUtils "github.com/Egor213/LogVault/pkg/errors"
	"github.com/Egor213/LogVault/pkg/httpserver"
	"github.com/Egor213/LogVault/pkg/logger"
	"github.com/labstack/echo/v4"

	log "github.com/sirupsen/logrus"
)

func Run() {
	// Config
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level)
	log.WithFields(log.Fields{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
	}).Info("Logger has been set up")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go watchConfig(ctx, config.Path())

	// Repos
	repositories := repo.NewRepositories()

	// Producer
	var brokerProducer broker.Producer
	if cfg.Kafka.Enabled {
		log.Infof("Kafka notifications enabled, topic: %s", cfg.Kafka.Topic)
		producer := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error(errorsUtils.WrapPathErr(err))
			}
		}()
		brokerProducer = producer
	}

	// Services
	metricsCnt := metrics.New()
	deps := service.ServicesDependencies{
		Repos:          repositories,
		Counters:       metricsCnt,
		BrokerProducer: brokerProducer,
		Retention:      cfg.Store.Retention,
	}
	services := service.NewServices(deps)

	// Retention sweep
	sweepDone := make(chan struct{})
	sweeper := service.NewSweeper(services.Log, cfg.Store.SweepInterval)
	go func() {
		sweeper.Run(ctx)
		close(sweepDone)
	}()

	// API server
	log.Infof("Starting API server...")
	log.Debugf("API server port: %s", cfg.HTTP.Port)
	apiHandler := echo.New()
	apiHandler.Use(metrics.Middleware())
	httpv1.ConfigureRouter(apiHandler, services, metricsCnt)
	apiServer := httpserver.New(apiHandler, serverOptions(cfg, cfg.HTTP.Port, "api")...)

	// Prometheus server
	log.Infof("Starting metrics server...")
	log.Debugf("Metrics server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metricsHandler.HideBanner = true
	metricsHandler.HidePort = true
	metrics.ConfigureRouter(metricsHandler)
	metricsServer := httpserver.New(metricsHandler, serverOptions(cfg, cfg.Prometheus.Port, "metrics")...)

	log.Info("Configuring graceful shutdown...")

	// Waiting signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info(errorsUtils.WrapPathErr(errors.New(s.String())))
	case err := <-apiServer.Notify():
		log.Error(errorsUtils.WrapPathErr(errors.Join(errors.New("api server stopped"), err)))
	case err := <-metricsServer.Notify():
		log.Error(errorsUtils.WrapPathErr(errors.Join(errors.New("metrics server stopped"), err)))
	}

	// Graceful shutdown
	cancel()
	<-sweepDone
	shutdownApp(apiServer, metricsServer)
}

func serverOptions(cfg *config.Config, port, name string) []httpserver.Option {
	return []httpserver.Option{
		httpserver.Port(port),
		httpserver.Name(name),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
		httpserver.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	}
}

func shutdownApp(servers ...*httpserver.Server) {
	log.Info("Shutting down...")
	for _, s := range servers {
		if err := s.Shutdown(context.Background()); err != nil {
			log.Error(errorsUtils.WrapPathErr(err))
		}
	}
}

func watchConfig(ctx context.Context, path string) {
	if _, err := os.Stat(path); err != nil {
		log.WithField("path", path).Debug("Config file absent, hot reload disabled")
		return
	}

	err := config.Watch(ctx, path, func(cfg *config.Config) {
		logger.SetLevel(cfg.Log.Level)
	})
	if err != nil {
		log.Warn(errorsUtils.WrapPathErr(err))
	}
}
