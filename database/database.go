// Package database wires the built-in drivers into a registry and runs the
// parse-resolve-execute pipeline for a query file.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rediwo/redi-query/config"
	"github.com/rediwo/redi-query/parser"
	"github.com/rediwo/redi-query/registry"
	"github.com/rediwo/redi-query/types"
)

// Run parses query file content, resolves the connection configuration
// (defaults < environment < file header), validates it against the
// selected driver and executes the body. Each invocation allocates its own
// state; only the read-only registry is shared.
func Run(ctx context.Context, reg *registry.Registry, content string) (*types.Result, error) {
	parsed := parser.Parse(reg, content)
	if parsed.Query == "" {
		return nil, errors.New("no query found in file")
	}

	cfg := config.Merge(reg, config.FromEnv(reg), parsed.Params)
	if errs := config.Validate(reg, cfg); len(errs) > 0 {
		return nil, errors.New(strings.Join(errs, "\n"))
	}

	driver := reg.Resolve(string(cfg.Driver))
	if driver == nil {
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Driver)
	}

	conn, err := driver.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return conn.Execute(ctx, parsed.Query)
}
