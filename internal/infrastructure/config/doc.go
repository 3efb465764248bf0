// Package config handles loading and validating the Cortex voice bridge configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Controller credentials should be set via environment variables
//   - The config file should have restricted permissions (0600)
//   - A JWT secret is only required when auth.token_mode is "jwt"
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Controller.Host)
//
// A missing file is not an error. The classic deployment supplies only the
// controller connection through HOST_IP, HOST_PORT, HOST_UNAME and HOST_UPASS.
package config
