package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"immunotrack/internal/handlers"
	"immunotrack/internal/ingest"
	"immunotrack/internal/logger"
	"immunotrack/internal/notify"
	"immunotrack/internal/repository"
	"immunotrack/internal/server"
	"immunotrack/internal/service"

	"github.com/spf13/viper"

	_ "immunotrack/docs"
)

const defaultStalenessTick = 30 * time.Second

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository()
	notifier := newNotifier(log)
	services := service.NewService(repos, notifier, viper.GetDuration("staleness.threshold"), log)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start staleness watcher (SENSOR_OFFLINE detection)
	go services.Watcher.Run(ctx, stalenessTick())

	// start MQTT ingestion when a broker is configured
	runMQTTSubscriber(ctx, services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// newNotifier builds the SNS channel when a topic is configured; alerts are
// still recorded without one, just not delivered anywhere.
func newNotifier(log *logger.Logger) notify.Notifier {
	topicARN := viper.GetString("notifications.sns_topic_arn")
	if topicARN == "" {
		log.Infow("notifications.sns_topic_arn not set; notification dispatch disabled")
		return notify.Nop{}
	}
	n, err := notify.NewSNS(context.Background(), topicARN, viper.GetDuration("notifications.timeout"))
	if err != nil {
		log.Warnw("failed to init sns notifier; notification dispatch disabled", "err", err)
		return notify.Nop{}
	}
	return n
}

func stalenessTick() time.Duration {
	if d := viper.GetDuration("staleness.tick"); d > 0 {
		return d
	}
	return defaultStalenessTick
}

// runMQTTSubscriber starts the broker-side ingestion path when mqtt.broker is
// set; without one the collector accepts readings over HTTP only.
func runMQTTSubscriber(ctx context.Context, services *service.Service, log *logger.Logger) {
	broker := viper.GetString("mqtt.broker")
	if broker == "" {
		return
	}
	sub := ingest.NewMQTTSubscriber(broker, viper.GetString("mqtt.topic_prefix"), services.Telemetry, log)
	go func() {
		if err := sub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warnw("mqtt subscriber stopped", "err", err)
		}
	}()
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8000"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down collector...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
