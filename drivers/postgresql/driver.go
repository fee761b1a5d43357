package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/lib/pq"

	"github.com/rediwo/redi-query/drivers/base"
	"github.com/rediwo/redi-query/types"
	"github.com/rediwo/redi-query/utils"
)

// Driver implements the PostgreSQL backend
type Driver struct {
	logger utils.Logger
}

// New creates a PostgreSQL driver
func New(logger utils.Logger) *Driver {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Driver{logger: logger}
}

// Descriptor returns the PostgreSQL driver capabilities. Both the
// "postgresql" and "postgres" schemes map to the canonical "postgresql"
// driver type.
func (d *Driver) Descriptor() types.Descriptor {
	return types.Descriptor{
		Type:             types.DriverPostgreSQL,
		Schemes:          []string{"postgresql", "postgres"},
		DefaultPort:      5432,
		CommentMarkers:   []string{"--"},
		RequiresAuth:     true,
		RequiresDatabase: true,
	}
}

// URLParams decomposes a postgresql:// or postgres:// connection URL
func (d *Driver) URLParams(u *url.URL, raw string) types.Params {
	return base.NetworkParams(types.DriverPostgreSQL, u)
}

// Validate checks the PostgreSQL field requirements
func (d *Driver) Validate(config types.Config) []string {
	var errs []string
	if config.User == "" {
		errs = append(errs, "user not specified. Set REDIQ_USER or add '-- user: xxx' to the file header")
	}
	if config.Password == "" {
		errs = append(errs, "password not specified. Set REDIQ_PASSWORD or add '-- password: xxx' to the file header")
	}
	if config.Database == "" {
		errs = append(errs, "database not specified. Set REDIQ_DB or add '-- db: xxx' to the file header")
	}
	return errs
}

// Connect establishes a connection to the PostgreSQL server
func (d *Driver) Connect(ctx context.Context, config types.Config) (types.Conn, error) {
	port := config.Port
	if port == 0 {
		port = d.Descriptor().DefaultPort
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Host,
		port,
		config.User,
		config.Password,
		config.Database,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}
	return &base.SQLConn{DB: db, Logger: d.logger}, nil
}
