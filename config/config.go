package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rediwo/redi-query/registry"
	"github.com/rediwo/redi-query/types"
)

// Compiled-in defaults, the lowest tier of the merge
const (
	DefaultHost   = "localhost"
	DefaultDriver = types.DriverMySQL
)

// Environment variables, the middle tier of the merge
const (
	EnvDriver   = "REDIQ_DRIVER"
	EnvHost     = "REDIQ_HOST"
	EnvPort     = "REDIQ_PORT"
	EnvUser     = "REDIQ_USER"
	EnvPassword = "REDIQ_PASSWORD"
	EnvDatabase = "REDIQ_DB"
)

// FromEnv builds the environment-tier configuration: compiled-in defaults
// overlaid with REDIQ_* variables. When no explicit port is given the
// selected driver's default port is filled in. An unparsable REDIQ_PORT is
// ignored, leaving the port at the driver default.
func FromEnv(reg *registry.Registry) types.Config {
	cfg := types.Config{
		Host:   DefaultHost,
		Driver: DefaultDriver,
	}

	if v := os.Getenv(EnvDriver); v != "" {
		cfg.Driver = types.DriverType(strings.ToLower(v))
	}
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv(EnvUser); v != "" {
		cfg.User = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}

	if cfg.Port == 0 {
		if driver := reg.Resolve(string(cfg.Driver)); driver != nil {
			cfg.Port = driver.Descriptor().DefaultPort
		}
	}
	return cfg
}

// Merge overlays file-header params onto the environment-tier config; the
// file header is the highest tier and wins per field. When the header
// switches to a different driver without giving an explicit port, the new
// driver's default port (if it has one) replaces the inherited port;
// drivers without a default port keep the inherited value.
func Merge(reg *registry.Registry, cfg types.Config, params types.Params) types.Config {
	merged := cfg

	if params.Driver != nil {
		merged.Driver = *params.Driver
	}
	if params.Host != nil {
		merged.Host = *params.Host
	}
	if params.User != nil {
		merged.User = *params.User
	}
	if params.Password != nil {
		merged.Password = *params.Password
	}
	if params.Database != nil {
		merged.Database = *params.Database
	}
	if params.ConnString != nil {
		merged.ConnString = *params.ConnString
	}

	switch {
	case params.Port != nil:
		merged.Port = *params.Port
	case merged.Driver != cfg.Driver:
		if driver := reg.Resolve(string(merged.Driver)); driver != nil {
			if port := driver.Descriptor().DefaultPort; port != 0 {
				merged.Port = port
			}
		}
	}
	return merged
}

// Validate delegates to the resolved driver's field-requirement rules.
// Every violated requirement is reported as its own message; execution
// must not proceed while any are returned.
func Validate(reg *registry.Registry, cfg types.Config) []string {
	driver := reg.Resolve(string(cfg.Driver))
	if driver == nil {
		return []string{fmt.Sprintf("unknown database driver: %s", cfg.Driver)}
	}
	return driver.Validate(cfg)
}
