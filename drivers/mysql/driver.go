package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/go-sql-driver/mysql"

	"github.com/rediwo/redi-query/drivers/base"
	"github.com/rediwo/redi-query/types"
	"github.com/rediwo/redi-query/utils"
)

// Driver implements the MySQL backend
type Driver struct {
	logger utils.Logger
}

// New creates a MySQL driver
func New(logger utils.Logger) *Driver {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Driver{logger: logger}
}

// Descriptor returns the MySQL driver capabilities
func (d *Driver) Descriptor() types.Descriptor {
	return types.Descriptor{
		Type:             types.DriverMySQL,
		Schemes:          []string{"mysql"},
		DefaultPort:      3306,
		CommentMarkers:   []string{"--"},
		RequiresAuth:     true,
		RequiresDatabase: true,
	}
}

// URLParams decomposes a mysql:// connection URL
func (d *Driver) URLParams(u *url.URL, raw string) types.Params {
	return base.NetworkParams(types.DriverMySQL, u)
}

// Validate checks the MySQL field requirements
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

// Connect establishes a connection to the MySQL server
func (d *Driver) Connect(ctx context.Context, config types.Config) (types.Conn, error) {
	port := config.Port
	if port == 0 {
		port = d.Descriptor().DefaultPort
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		config.User,
		config.Password,
		config.Host,
		port,
		config.Database,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
	}
	return &base.SQLConn{DB: db, Logger: d.logger}, nil
}
