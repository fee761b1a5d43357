package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rediwo/redi-query/config"
	"github.com/rediwo/redi-query/database"
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

func TestRunSQLiteSelect(t *testing.T) {
	clearEnv(t)
	reg := database.DefaultRegistry(nil)

	content := "-- url: sqlite://:memory:\n\nSELECT 1 AS n, 'alice' AS name;"
	result, err := database.Run(context.Background(), reg, content)
	require.NoError(t, err)
	require.True(t, result.IsSelect)
	require.Equal(t, []string{"n", "name"}, result.Columns)
	require.Equal(t, [][]any{{int64(1), "alice"}}, result.Rows)
}

func TestRunSQLiteFile(t *testing.T) {
	clearEnv(t)
	reg := database.DefaultRegistry(nil)

	path := filepath.Join(t.TempDir(), "app.db")
	ctx := context.Background()

	_, err := database.Run(ctx, reg,
		"-- url: sqlite://"+path+"\n\nCREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);")
	require.NoError(t, err)

	result, err := database.Run(ctx, reg,
		"-- url: sqlite://"+path+"\n\nINSERT INTO users (name) VALUES ('bob');")
	require.NoError(t, err)
	require.False(t, result.IsSelect)
	require.EqualValues(t, 1, result.AffectedRows)
	require.Equal(t, "1", result.LastInsertID)

	result, err = database.Run(ctx, reg,
		"-- url: sqlite://"+path+"\n\nSELECT name FROM users;")
	require.NoError(t, err)
	require.Equal(t, [][]any{{"bob"}}, result.Rows)
}

func TestRunEmptyBody(t *testing.T) {
	clearEnv(t)
	reg := database.DefaultRegistry(nil)

	_, err := database.Run(context.Background(), reg, "-- url: sqlite://:memory:\n\n")
	require.Error(t, err)
	require.Equal(t, "no query found in file", err.Error())
}

func TestRunValidationFailure(t *testing.T) {
	clearEnv(t)
	reg := database.DefaultRegistry(nil)

	// default driver is MySQL which requires user, password and database
	_, err := database.Run(context.Background(), reg, "SELECT 1;")
	require.Error(t, err)
	require.Contains(t, err.Error(), "user not specified")
	require.Contains(t, err.Error(), "password not specified")
	require.Contains(t, err.Error(), "database not specified")
}

func TestRunUnknownEnvDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvDriver, "oracle")
	reg := database.DefaultRegistry(nil)

	_, err := database.Run(context.Background(), reg, "SELECT 1;")
	require.Error(t, err)
	require.Contains(t, err.Error(), "oracle")
}
