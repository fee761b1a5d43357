// Package base holds shared behavior for the SQL-speaking drivers: network
// URL decomposition, statement classification and row scanning into the
// normalized result shape.
package base

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rediwo/redi-query/types"
	"github.com/rediwo/redi-query/utils"
)

// NetworkParams decomposes a network connection URL (user, password, host,
// port, database path) into header parameters tagged with the given driver
// type. Credentials come back percent-decoded from url.Parse; a path of
// exactly "/" counts as no database.
func NetworkParams(dt types.DriverType, u *url.URL) types.Params {
	params := types.Params{Driver: &dt}

	if host := u.Hostname(); host != "" {
		params.Host = &host
	}
	if portStr := u.Port(); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			params.Port = &port
		}
	}
	if u.User != nil {
		if user := u.User.Username(); user != "" {
			params.User = &user
		}
		if password, ok := u.User.Password(); ok && password != "" {
			params.Password = &password
		}
	}
	if u.Path != "" && u.Path != "/" {
		database := strings.TrimPrefix(u.Path, "/")
		params.Database = &database
	}
	return params
}

// SQLConn executes body text against a database/sql handle. All three SQL
// drivers share it; only DSN construction differs per backend.
type SQLConn struct {
	DB     *sql.DB
	Logger utils.Logger
}

// Execute runs a single SQL statement. Row-returning statements produce a
// columns/rows result, everything else an affected-count result. Driver
// errors propagate unchanged.
func (c *SQLConn) Execute(ctx context.Context, query string) (*types.Result, error) {
	start := time.Now()
	defer func() {
		c.Logger.LogSQL(query, time.Since(start))
	}()

	if IsRowQuery(query) {
		rows, err := c.DB.QueryContext(ctx, query)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return ScanResult(rows)
	}

	res, err := c.DB.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &types.Result{IsSelect: false}
	if affected, err := res.RowsAffected(); err == nil {
		result.AffectedRows = affected
	}
	// not every driver reports one (lib/pq returns an error here)
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		result.LastInsertID = strconv.FormatInt(id, 10)
	}
	return result, nil
}

// Close closes the underlying handle
func (c *SQLConn) Close() error {
	return c.DB.Close()
}

// IsRowQuery reports whether the statement produces a row set, judged by
// its leading keyword. Mutations carrying a RETURNING clause also produce
// a row set and must go through the query path or their rows are lost.
func IsRowQuery(query string) bool {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "SHOW", "DESCRIBE", "DESC", "EXPLAIN", "PRAGMA", "WITH", "VALUES", "TABLE":
		return true
	case "INSERT", "UPDATE", "DELETE", "REPLACE":
		return hasReturningClause(query)
	}
	return false
}

// hasReturningClause scans for a RETURNING keyword outside quoted
// literals and identifiers
func hasReturningClause(query string) bool {
	var quote rune
	var word strings.Builder
	matches := func() bool {
		ok := strings.EqualFold(word.String(), "RETURNING")
		word.Reset()
		return ok
	}
	for _, ch := range query {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"' || ch == '`':
			if matches() {
				return true
			}
			quote = ch
		case isWordChar(ch):
			word.WriteRune(ch)
		default:
			if matches() {
				return true
			}
		}
	}
	return matches()
}

func isWordChar(ch rune) bool {
	return ch == '_' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}

// ScanResult drains rows into a normalized result, converting driver byte
// slices to strings so MySQL text columns display as text.
func ScanResult(rows *sql.Rows) (*types.Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	result := &types.Result{Columns: columns, IsSelect: true}

	values := make([]any, len(columns))
	valuePtrs := make([]any, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make([]any, len(columns))
		for i, val := range values {
			if b, ok := val.([]byte); ok {
				row[i] = string(b)
			} else {
				row[i] = val
			}
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}
