package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rediwo/redi-query/config"
	"github.com/rediwo/redi-query/database"
	"github.com/rediwo/redi-query/types"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvDriver, config.EnvHost, config.EnvPort,
		config.EnvUser, config.EnvPassword, config.EnvDatabase,
	} {
		t.Setenv(key, "")
	}
}

func driverPtr(d types.DriverType) *types.DriverType { return &d }
func strPtr(s string) *string                        { return &s }
func intPtr(n int) *int                              { return &n }

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	reg := database.DefaultRegistry(nil)

	cfg := config.FromEnv(reg)
	require.Equal(t, types.DriverMySQL, cfg.Driver)
	require.Equal(t, "localhost", cfg.Host)
	require.Equal(t, 3306, cfg.Port, "default driver's default port is filled in")
	require.Empty(t, cfg.User)
	require.Empty(t, cfg.Database)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvDriver, "PostgreSQL")
	t.Setenv(config.EnvHost, "db.internal")
	t.Setenv(config.EnvUser, "svc")
	t.Setenv(config.EnvPassword, "hunter2")
	t.Setenv(config.EnvDatabase, "orders")
	reg := database.DefaultRegistry(nil)

	cfg := config.FromEnv(reg)
	require.Equal(t, types.DriverPostgreSQL, cfg.Driver, "driver name is lowercased")
	require.Equal(t, "db.internal", cfg.Host)
	require.Equal(t, 5432, cfg.Port, "port follows the env-selected driver")
	require.Equal(t, "svc", cfg.User)
	require.Equal(t, "hunter2", cfg.Password)
	require.Equal(t, "orders", cfg.Database)
}

func TestFromEnvInvalidPortIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvPort, "lots")
	reg := database.DefaultRegistry(nil)

	cfg := config.FromEnv(reg)
	require.Equal(t, 3306, cfg.Port)
}

func TestMergeDriverChangeAdoptsNewDefaultPort(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvDriver, "mysql")
	reg := database.DefaultRegistry(nil)

	env := config.FromEnv(reg)
	require.Equal(t, 3306, env.Port)

	merged := config.Merge(reg, env, types.Params{Driver: driverPtr(types.DriverPostgreSQL)})
	require.Equal(t, types.DriverPostgreSQL, merged.Driver)
	require.Equal(t, 5432, merged.Port, "driver change without an explicit port adopts the new default")
}

func TestMergeExplicitHeaderPortWins(t *testing.T) {
	clearEnv(t)
	reg := database.DefaultRegistry(nil)

	env := config.FromEnv(reg)
	merged := config.Merge(reg, env, types.Params{
		Driver: driverPtr(types.DriverPostgreSQL),
		Port:   intPtr(15432),
	})
	require.Equal(t, 15432, merged.Port)
}

func TestMergeDriverChangeWithoutDefaultPortKeepsInherited(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvPort, "4000")
	reg := database.DefaultRegistry(nil)

	env := config.FromEnv(reg)
	merged := config.Merge(reg, env, types.Params{
		Driver:   driverPtr(types.DriverSQLite),
		Database: strPtr("/tmp/app.db"),
	})
	require.Equal(t, types.DriverSQLite, merged.Driver)
	require.Equal(t, 4000, merged.Port, "a driver with no default port preserves the inherited value")
	require.Equal(t, "/tmp/app.db", merged.Database)
}

func TestMergeFieldOverlay(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvUser, "envuser")
	t.Setenv(config.EnvPassword, "envpass")
	reg := database.DefaultRegistry(nil)

	env := config.FromEnv(reg)
	merged := config.Merge(reg, env, types.Params{
		Host: strPtr("filehost"),
		User: strPtr("fileuser"),
	})
	require.Equal(t, "filehost", merged.Host)
	require.Equal(t, "fileuser", merged.User, "file header beats environment")
	require.Equal(t, "envpass", merged.Password, "unset header fields keep the env value")
}

func TestValidateAccumulatesErrors(t *testing.T) {
	reg := database.DefaultRegistry(nil)

	errs := config.Validate(reg, types.Config{Driver: types.DriverMySQL, Host: "localhost"})
	require.Len(t, errs, 3, "missing user, password and database each get their own message")
}

func TestValidateUnknownDriver(t *testing.T) {
	reg := database.DefaultRegistry(nil)

	errs := config.Validate(reg, types.Config{Driver: "oracle"})
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "oracle")
}

func TestValidateRedisNeedsHostOnly(t *testing.T) {
	reg := database.DefaultRegistry(nil)

	require.Empty(t, config.Validate(reg, types.Config{Driver: types.DriverRedis, Host: "localhost"}))
	require.Len(t, config.Validate(reg, types.Config{Driver: types.DriverRedis}), 1)
}
