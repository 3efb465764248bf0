// Cortex voice bridge - Alexa smart-home adapter for the Idratek Cortex API.
//
// The bridge receives smart-home directives (discovery, power, brightness,
// thermostat, state reports), turns them into Cortex HTTP commands, and
// answers with the normalized response. Directives arrive over HTTP
// (cortexbridge serve) or MQTT when the relay is enabled.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nerrad567/cortex-voice-bridge/internal/auth"
	"github.com/nerrad567/cortex-voice-bridge/internal/bridges/cortex"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/config"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/logging"
	"github.com/nerrad567/cortex-voice-bridge/internal/skill"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// configEnvVar overrides the default configuration path.
const configEnvVar = "CORTEXBRIDGE_CONFIG"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "cortexbridge",
		Short: "Alexa smart-home bridge for the Idratek Cortex controller",
		Long: `cortexbridge answers Alexa smart-home directives using the Idratek Cortex HTTP API.

The controller connection comes from the config file or from
HOST_IP, HOST_PORT, HOST_UNAME and HOST_UPASS.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default $"+configEnvVar+" or "+defaultConfigPath+")")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output JSON")

	root.AddCommand(
		newServeCmd(opts),
		newInvokeCmd(opts),
		newDevicesCmd(opts),
		newTokenCmd(opts),
	)
	return root
}

// getConfigPath resolves the configuration path: flag, then environment,
// then the default.
func (o *rootOptions) getConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	if path := os.Getenv(configEnvVar); path != "" {
		return path
	}
	return defaultConfigPath
}

// loadConfig loads the configuration named by the flags.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newService wires a skill service to the controller named in cfg.
// One-shot commands log to stderr so stdout carries only their output.
func newService(cfg *config.Config, log *logging.Logger, observers ...skill.Observer) (*skill.Service, *cortex.Client, error) {
	controller := cortex.NewClient(cfg.Controller, cortex.WithLogger(log))

	tokens, err := auth.NewValidator(cfg.Auth)
	if err != nil {
		return nil, nil, fmt.Errorf("token validator: %w", err)
	}

	svc, err := skill.New(skill.Options{
		Controller: controller,
		Tokens:     tokens,
		Logger:     log,
		Observers:  observers,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating skill service: %w", err)
	}
	return svc, controller, nil
}
