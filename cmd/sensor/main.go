package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"immunotrack/internal/logger"
	"immunotrack/internal/publisher"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	log := logger.Get(logger.InfoLevel)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalw("invalid publisher configuration", "err", err)
	}

	pub, err := publisher.New(cfg, buildTransport(cfg), log)
	if err != nil {
		log.Fatalw("invalid publisher configuration", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Infow("shutting down sensor...")
		cancel()
	}()

	log.Infow("sensor started",
		"sensor_id", cfg.SensorID, "transport", cfg.Transport, "interval", cfg.Interval)
	pub.Run(ctx)

	st := pub.Stats()
	log.Infow("sensor stopped",
		"delivered", st.Delivered, "abandoned", st.Abandoned, "skipped", st.Skipped)
}

// loadConfig binds flags and SENSOR_* environment variables into a publisher
// config. Flags win over environment, environment over defaults.
func loadConfig() (publisher.Config, error) {
	pflag.String("sensor-id", "sensor-001", "sensor identifier")
	pflag.String("collector-url", "http://localhost:8000", "collector base URL")
	pflag.Duration("interval", publisher.DefaultInterval, "publish interval")
	pflag.Float64("safe-min", publisher.DefaultSafeMinC, "lower bound of the safe range (°C)")
	pflag.Float64("safe-max", publisher.DefaultSafeMaxC, "upper bound of the safe range (°C)")
	pflag.Int("retries", publisher.DefaultRetries, "delivery attempts per reading")
	pflag.Duration("attempt-timeout", publisher.DefaultAttemptTimeout, "timeout per probe/send attempt")
	pflag.String("transport", publisher.TransportHTTP, "delivery transport: http or mqtt")
	pflag.String("mqtt-broker", "", "mqtt broker address (tcp://host:1883)")
	pflag.String("mqtt-topic", publisher.DefaultTopicPrefix, "mqtt topic prefix")
	pflag.Parse()

	v := viper.New()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return publisher.Config{}, err
	}
	v.SetEnvPrefix("SENSOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := publisher.Config{
		SensorID:       v.GetString("sensor-id"),
		CollectorURL:   v.GetString("collector-url"),
		Interval:       v.GetDuration("interval"),
		SafeMinC:       v.GetFloat64("safe-min"),
		SafeMaxC:       v.GetFloat64("safe-max"),
		Retries:        v.GetInt("retries"),
		AttemptTimeout: v.GetDuration("attempt-timeout"),
		Transport:      v.GetString("transport"),
		MQTTBroker:     v.GetString("mqtt-broker"),
		MQTTTopic:      v.GetString("mqtt-topic"),
	}
	cfg.ApplyDefaults()
	return cfg, cfg.Validate()
}

func buildTransport(cfg publisher.Config) publisher.Transport {
	if cfg.Transport == publisher.TransportMQTT {
		return publisher.NewMQTTTransport(cfg.MQTTBroker, cfg.SensorID, cfg.MQTTTopic)
	}
	return publisher.NewHTTPTransport(cfg.CollectorURL)
}
