package database

import (
	"github.com/rediwo/redi-query/drivers/mongodb"
	"github.com/rediwo/redi-query/drivers/mysql"
	"github.com/rediwo/redi-query/drivers/postgresql"
	"github.com/rediwo/redi-query/drivers/redis"
	"github.com/rediwo/redi-query/drivers/sqlite"
	"github.com/rediwo/redi-query/registry"
	"github.com/rediwo/redi-query/utils"
)

// DefaultRegistry builds a registry with every built-in driver registered:
// MySQL, PostgreSQL, SQLite, MongoDB and Redis
func DefaultRegistry(logger utils.Logger) *registry.Registry {
	reg := registry.New()
	reg.Register(mysql.New(logger))
	reg.Register(postgresql.New(logger))
	reg.Register(sqlite.New(logger))
	reg.Register(mongodb.New(logger))
	reg.Register(redis.New(logger))
	return reg
}
