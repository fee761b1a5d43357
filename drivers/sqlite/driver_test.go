package sqlite

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rediwo/redi-query/types"
)

func urlParams(t *testing.T, raw string) types.Params {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return New(nil).URLParams(u, raw)
}

func TestURLParamsMemory(t *testing.T) {
	params := urlParams(t, "sqlite://:memory:")
	require.Equal(t, types.DriverSQLite, *params.Driver)
	require.Equal(t, ":memory:", *params.Database)

	params = urlParams(t, "sqlite:///:memory:")
	require.Equal(t, ":memory:", *params.Database)
}

func TestURLParamsAbsolutePath(t *testing.T) {
	params := urlParams(t, "sqlite:///var/data/app.db")
	require.Equal(t, "/var/data/app.db", *params.Database)
}

func TestURLParamsRelativePath(t *testing.T) {
	params := urlParams(t, "sqlite://data/app.db")
	require.Equal(t, "data/app.db", *params.Database)
}

func TestValidate(t *testing.T) {
	d := New(nil)
	require.Empty(t, d.Validate(types.Config{Driver: types.DriverSQLite, Database: "/tmp/a.db"}))

	errs := d.Validate(types.Config{Driver: types.DriverSQLite})
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "database file not specified")
}

func TestConnectMemory(t *testing.T) {
	ctx := context.Background()
	conn, err := New(nil).Connect(ctx, types.Config{Database: ":memory:"})
	require.NoError(t, err)
	defer conn.Close()

	res, err := conn.Execute(ctx, "SELECT 1 AS n")
	require.NoError(t, err)
	require.Equal(t, []string{"n"}, res.Columns)
	require.Equal(t, int64(1), res.Rows[0][0])
}
