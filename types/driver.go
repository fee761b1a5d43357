package types

import (
	"context"
	"net/url"
)

// DriverType identifies a supported database backend.
// It's defined as a string to allow extensibility for new backends.
type DriverType string

// Well-known driver types
const (
	DriverMySQL      DriverType = "mysql"
	DriverPostgreSQL DriverType = "postgresql"
	DriverSQLite     DriverType = "sqlite"
	DriverMongoDB    DriverType = "mongodb"
	DriverRedis      DriverType = "redis"
)

// String returns the string representation of the driver type
func (d DriverType) String() string {
	return string(d)
}

// Descriptor holds the static capabilities of a driver. It is built once
// per driver and never mutated afterwards.
type Descriptor struct {
	// Type is the canonical driver type every scheme alias maps to
	Type DriverType

	// Schemes are the URL schemes this driver owns (e.g. ["postgresql", "postgres"])
	Schemes []string

	// DefaultPort is the backend's default network port, 0 when the
	// backend has no network presence
	DefaultPort int

	// CommentMarkers are the comment tokens that introduce header lines
	// in this backend's file dialect (e.g. "--", "//", "#")
	CommentMarkers []string

	// RequiresAuth reports whether user and password are mandatory
	RequiresAuth bool

	// RequiresDatabase reports whether a database/namespace name is mandatory
	RequiresDatabase bool
}

// Driver is the capability set implemented once per backend: URL
// decomposition, configuration validation and connection establishment.
type Driver interface {
	// Descriptor returns the driver's static capabilities
	Descriptor() Descriptor

	// URLParams decomposes a connection URL into header parameters.
	// Credentials are percent-decoded; a path of exactly "/" is treated
	// as an absent database name.
	URLParams(u *url.URL, raw string) Params

	// Validate returns one human-readable message per violated
	// field requirement. An empty slice means the config is usable.
	Validate(config Config) []string

	// Connect opens a connection to the backend
	Connect(ctx context.Context, config Config) (Conn, error)
}

// Conn is an open backend connection that can execute body text
type Conn interface {
	// Execute runs the query or command text and returns a normalized result
	Execute(ctx context.Context, body string) (*Result, error)

	// Close releases the connection
	Close() error
}
