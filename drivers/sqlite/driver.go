package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rediwo/redi-query/drivers/base"
	"github.com/rediwo/redi-query/types"
	"github.com/rediwo/redi-query/utils"
)

// Driver implements the SQLite backend. SQLite has no network presence:
// the "database" is a file path or the :memory: marker.
type Driver struct {
	logger utils.Logger
}

// New creates a SQLite driver
func New(logger utils.Logger) *Driver {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Driver{logger: logger}
}

// Descriptor returns the SQLite driver capabilities
func (d *Driver) Descriptor() types.Descriptor {
	return types.Descriptor{
		Type:             types.DriverSQLite,
		Schemes:          []string{"sqlite"},
		DefaultPort:      0,
		CommentMarkers:   []string{"--"},
		RequiresAuth:     false,
		RequiresDatabase: true,
	}
}

// URLParams decomposes a sqlite:// connection URL. Supported formats:
//   - sqlite:///path/to/database.db
//   - sqlite://relative/path.db
//   - sqlite://:memory:
//   - sqlite:///:memory:
func (d *Driver) URLParams(u *url.URL, raw string) types.Params {
	dt := types.DriverSQLite
	params := types.Params{Driver: &dt}

	var path string
	switch {
	case u.Host == ":memory:" || u.Path == "/:memory:":
		path = ":memory:"
	case u.Host == "" && u.Path != "":
		path = u.Path
	default:
		path = u.Host + u.Path
	}
	if path != "" {
		params.Database = &path
	}
	return params
}

// Validate checks the SQLite field requirements
func (d *Driver) Validate(config types.Config) []string {
	var errs []string
	if config.Database == "" {
		errs = append(errs, "database file not specified. Set REDIQ_DB, add '-- db: xxx' to the file header, or use a sqlite:// URL")
	}
	return errs
}

// Connect opens the SQLite database file
func (d *Driver) Connect(ctx context.Context, config types.Config) (types.Conn, error) {
	db, err := sql.Open("sqlite3", config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	return &base.SQLConn{DB: db, Logger: d.logger}, nil
}
