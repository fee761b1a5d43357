package mongodb

import (
	"context"
	"fmt"
	"net/url"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/rediwo/redi-query/drivers/base"
	"github.com/rediwo/redi-query/types"
	"github.com/rediwo/redi-query/utils"
)

// Driver implements the MongoDB backend
type Driver struct {
	logger utils.Logger
}

// New creates a MongoDB driver
func New(logger utils.Logger) *Driver {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Driver{logger: logger}
}

// Descriptor returns the MongoDB driver capabilities. MongoDB files use
// // comments, both for header lines and inside command bodies.
func (d *Driver) Descriptor() types.Descriptor {
	return types.Descriptor{
		Type:             types.DriverMongoDB,
		Schemes:          []string{"mongodb", "mongodb+srv"},
		DefaultPort:      27017,
		CommentMarkers:   []string{"//"},
		RequiresAuth:     false,
		RequiresDatabase: true,
	}
}

// URLParams decomposes a mongodb:// URL. The original URL is retained
// verbatim alongside the decomposed fields because the official driver
// prefers whole connection strings.
func (d *Driver) URLParams(u *url.URL, raw string) types.Params {
	params := base.NetworkParams(types.DriverMongoDB, u)
	params.ConnString = &raw
	return params
}

// Validate checks the MongoDB field requirements
func (d *Driver) Validate(config types.Config) []string {
	var errs []string
	if config.ConnString == "" && config.Host == "" {
		errs = append(errs, "MongoDB host or connection string not specified. Use a URL like 'mongodb://localhost:27017/mydb'")
	}
	if config.Database == "" {
		errs = append(errs, "database not specified. Add a database name to your MongoDB URL")
	}
	return errs
}

// Connect establishes a connection to the MongoDB server. The raw
// connection string wins when present; otherwise a URI is assembled from
// the individual fields.
func (d *Driver) Connect(ctx context.Context, config types.Config) (types.Conn, error) {
	uri := config.ConnString
	if uri == "" {
		port := config.Port
		if port == 0 {
			port = d.Descriptor().DefaultPort
		}
		u := &url.URL{
			Scheme: "mongodb",
			Host:   fmt.Sprintf("%s:%d", config.Host, port),
		}
		if config.User != "" {
			if config.Password != "" {
				u.User = url.UserPassword(config.User, config.Password)
			} else {
				u.User = url.User(config.User)
			}
		}
		uri = u.String()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Conn{
		client: client,
		db:     client.Database(config.Database),
		logger: d.logger,
	}, nil
}
