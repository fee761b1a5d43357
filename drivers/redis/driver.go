package redis

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rediwo/redi-query/drivers/base"
	"github.com/rediwo/redi-query/types"
	"github.com/rediwo/redi-query/utils"
)

// Driver implements the Redis backend
type Driver struct {
	logger utils.Logger
}

// New creates a Redis driver
func New(logger utils.Logger) *Driver {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Driver{logger: logger}
}

// Descriptor returns the Redis driver capabilities. Redis files use
// # comments, both for header lines and inside command bodies.
func (d *Driver) Descriptor() types.Descriptor {
	return types.Descriptor{
		Type:             types.DriverRedis,
		Schemes:          []string{"redis"},
		DefaultPort:      6379,
		CommentMarkers:   []string{"#"},
		RequiresAuth:     false,
		RequiresDatabase: false,
	}
}

// URLParams decomposes a redis:// URL. The path carries the numeric
// database index (redis://localhost:6379/0); non-numeric paths are
// ignored.
func (d *Driver) URLParams(u *url.URL, raw string) types.Params {
	params := base.NetworkParams(types.DriverRedis, u)
	if params.Database != nil {
		if _, err := strconv.Atoi(*params.Database); err != nil {
			params.Database = nil
		}
	}
	return params
}

// Validate checks the Redis field requirements
func (d *Driver) Validate(config types.Config) []string {
	var errs []string
	if config.Host == "" {
		errs = append(errs, "Redis host not specified. Use a URL like 'redis://localhost:6379/0'")
	}
	return errs
}

// Connect establishes a connection to the Redis server
func (d *Driver) Connect(ctx context.Context, config types.Config) (types.Conn, error) {
	port := config.Port
	if port == 0 {
		port = d.Descriptor().DefaultPort
	}

	db := 0
	if config.Database != "" {
		if n, err := strconv.Atoi(config.Database); err == nil {
			db = n
		}
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     net.JoinHostPort(config.Host, strconv.Itoa(port)),
		Username: config.User,
		Password: config.Password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &Conn{client: client, logger: d.logger}, nil
}
