package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the Cortex voice bridge.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	API        APIConfig        `yaml:"api"`
	WebSocket  WebSocketConfig  `yaml:"websocket"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	InfluxDB   InfluxDBConfig   `yaml:"influxdb"`
	Logging    LoggingConfig    `yaml:"logging"`
	Auth       AuthConfig       `yaml:"auth"`
}

// ControllerConfig contains the Cortex device controller connection settings.
//
// These are the only settings the bridge cannot run without. They are
// normally supplied through the environment rather than the YAML file.
type ControllerConfig struct {
	// Host is the controller's IP address or hostname.
	Host string `yaml:"host" validate:"required,hostname_rfc1123|ip"`

	// Port is the controller's HTTP port.
	Port int `yaml:"port" validate:"min=1,max=65535"`

	// Scheme is "http" or "https". Default: "http"
	Scheme string `yaml:"scheme" validate:"oneof=http https"`

	// Username and Password are sent as HTTP basic credentials.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// TimeoutSeconds bounds a single controller request. 0 leaves the
	// request bounded only by the caller's context.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"gte=0"`
}

// Timeout returns the per-request controller timeout as a Duration.
func (c ControllerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	TLS      TLSConfig        `yaml:"tls"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// APITimeoutConfig contains HTTP timeout settings.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// WebSocketConfig contains settings for the live event feed.
type WebSocketConfig struct {
	Enabled        bool `yaml:"enabled"`
	MaxMessageSize int  `yaml:"max_message_size"`
	PingInterval   int  `yaml:"ping_interval"`
	PongTimeout    int  `yaml:"pong_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled     bool                `yaml:"enabled"`
	Broker      MQTTBrokerConfig    `yaml:"broker"`
	Auth        MQTTAuthConfig      `yaml:"auth"`
	QoS         int                 `yaml:"qos"`
	Reconnect   MQTTReconnectConfig `yaml:"reconnect"`
	TopicPrefix string              `yaml:"topic_prefix"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Token validation modes.
const (
	TokenModeAcceptAll = "accept_all"
	TokenModeJWT       = "jwt"
)

// AuthConfig selects how directive bearer tokens are validated.
type AuthConfig struct {
	// TokenMode is "accept_all" (any non-empty token) or "jwt".
	TokenMode string    `yaml:"token_mode"`
	JWT       JWTConfig `yaml:"jwt"`
}

// JWTConfig contains settings for HMAC-signed bearer token validation.
type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults), skipped if the file does not exist
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: CORTEXBRIDGE_SECTION_KEY.
// The controller connection also honours HOST_IP, HOST_PORT, HOST_UNAME and
// HOST_UPASS when the prefixed variable is unset.
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file cannot be read or parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Environment-only deployment
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Controller: ControllerConfig{
			Port:           80,
			Scheme:         "http",
			TimeoutSeconds: 10,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			Enabled:        true,
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "cortexbridge",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
			TopicPrefix: "cortexbridge",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Auth: AuthConfig{
			TokenMode: TokenModeAcceptAll,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Controller
	if v := envOr("CORTEXBRIDGE_CONTROLLER_HOST", "HOST_IP"); v != "" {
		cfg.Controller.Host = v
	}
	if v := envOr("CORTEXBRIDGE_CONTROLLER_PORT", "HOST_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Controller.Port = port
		}
	}
	if v := envOr("CORTEXBRIDGE_CONTROLLER_USERNAME", "HOST_UNAME"); v != "" {
		cfg.Controller.Username = v
	}
	if v := envOr("CORTEXBRIDGE_CONTROLLER_PASSWORD", "HOST_UPASS"); v != "" {
		cfg.Controller.Password = v
	}

	// MQTT
	if v := os.Getenv("CORTEXBRIDGE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("CORTEXBRIDGE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("CORTEXBRIDGE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("CORTEXBRIDGE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Auth
	if v := os.Getenv("CORTEXBRIDGE_JWT_SECRET"); v != "" {
		cfg.Auth.JWT.Secret = v
	}

	// Logging
	if v := os.Getenv("CORTEXBRIDGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// envOr returns the first non-empty value among the named variables.
func envOr(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of every validation failure, or nil if valid
func (c *Config) Validate() error {
	errs := validateController(c.Controller)

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if c.MQTT.Enabled {
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			errs = append(errs, "mqtt.qos must be 0, 1, or 2")
		}
		if c.MQTT.TopicPrefix == "" {
			errs = append(errs, "mqtt.topic_prefix is required when mqtt is enabled")
		}
	}

	if c.InfluxDB.Enabled && c.InfluxDB.URL == "" {
		errs = append(errs, "influxdb.url is required when influxdb is enabled")
	}

	switch c.Auth.TokenMode {
	case TokenModeAcceptAll:
	case TokenModeJWT:
		const minJWTSecretLength = 32
		if len(c.Auth.JWT.Secret) < minJWTSecretLength {
			errs = append(errs, "auth.jwt.secret must be at least 32 characters (set CORTEXBRIDGE_JWT_SECRET)")
		}
	default:
		errs = append(errs, fmt.Sprintf("auth.token_mode must be %q or %q", TokenModeAcceptAll, TokenModeJWT))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// controllerValidator checks ControllerConfig struct tags, reporting
// fields by their YAML names.
var controllerValidator = newControllerValidator()

func newControllerValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateController returns one message per failing controller field.
func validateController(cc ControllerConfig) []string {
	err := controllerValidator.Struct(cc)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{fmt.Sprintf("controller: %v", err)}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := "controller." + fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required (set CORTEXBRIDGE_CONTROLLER_HOST or HOST_IP)")
		case "min", "max":
			msgs = append(msgs, field+" must be between 1 and 65535")
		case "oneof":
			msgs = append(msgs, field+" must be one of: "+fe.Param())
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q validation", field, fe.Tag()))
		}
	}
	return msgs
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
