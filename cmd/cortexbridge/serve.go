package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/cortex-voice-bridge/internal/api"
	"github.com/nerrad567/cortex-voice-bridge/internal/auth"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/config"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/influxdb"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/logging"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/mqtt"
	"github.com/nerrad567/cortex-voice-bridge/internal/relay"
	"github.com/nerrad567/cortex-voice-bridge/internal/telemetry"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve directives over HTTP and, if enabled, MQTT",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
}

// run starts every configured component and blocks until ctx is cancelled.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - cfg: Loaded configuration
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context, cfg *config.Config) error {
	log := logging.New(cfg.Logging, version)
	log.Info("starting cortexbridge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	svc, controller, err := newService(cfg, log)
	if err != nil {
		return err
	}
	log.Info("controller configured",
		"url", controller.BaseURL(),
		"user", logging.Redact(cfg.Controller.Username),
		"token_mode", cfg.Auth.TokenMode,
	)

	deps := api.Deps{
		Config:  cfg.API,
		WS:      cfg.WebSocket,
		Logger:  log,
		Handler: svc,
		Version: version,
	}
	// The feed accepts the same tokens as directives.
	if deps.Tokens, err = auth.NewValidator(cfg.Auth); err != nil {
		return fmt.Errorf("token validator: %w", err)
	}

	// Connect to InfluxDB (optional)
	if cfg.InfluxDB.Enabled {
		influxClient, connErr := influxdb.Connect(cfg.InfluxDB)
		if connErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", connErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		svc.AddObserver(telemetry.NewRecorder(influxClient))
		deps.InfluxDB = influxClient
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Connect to MQTT and start the directive relay (optional)
	if cfg.MQTT.Enabled {
		mqttClient, connErr := mqtt.Connect(cfg.MQTT)
		if connErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", connErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT connected")
		})
		deps.MQTT = mqttClient

		rl := relay.New(mqttClient, svc)
		rl.SetLogger(log)
		svc.AddObserver(rl)
		if startErr := rl.Start(ctx); startErr != nil {
			return fmt.Errorf("starting directive relay: %w", startErr)
		}
		defer func() {
			if stopErr := rl.Stop(); stopErr != nil {
				log.Warn("error stopping directive relay", "error", stopErr)
			}
		}()
		log.Info("MQTT relay started",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"prefix", mqttClient.Topics().Prefix(),
		)
	} else {
		log.Info("MQTT relay disabled")
	}

	server, err := api.New(deps)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	svc.AddObserver(server.Observer())

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("cortexbridge started", "api", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port))

	<-ctx.Done()
	log.Info("shutdown signal received")
	return nil
}
