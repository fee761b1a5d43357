package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rediwo/redi-query/types"
	"github.com/rediwo/redi-query/utils"
)

// Conn is an open Redis connection
type Conn struct {
	client *goredis.Client
	logger utils.Logger
}

// executed is one (command, arguments, raw result) triple
type executed struct {
	command string
	args    []string
	result  any
}

// Execute runs the body as a sequence of Redis command lines. Blank lines
// and # comments are skipped. A single executed command yields its own
// normalized result; multiple commands flatten into a three-column
// (command, args, result) table with one row per command line.
func (c *Conn) Execute(ctx context.Context, body string) (*types.Result, error) {
	return c.execute(ctx, body, func(ctx context.Context, args ...any) (any, error) {
		return c.client.Do(ctx, args...).Result()
	})
}

func (c *Conn) execute(ctx context.Context, body string, do func(ctx context.Context, args ...any) (any, error)) (*types.Result, error) {
	var results []executed

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := Tokenize(line)
		if len(tokens) == 0 {
			// a line of bare quotes: nothing to send, the failure joins
			// the result stream like any other command error
			results = append(results, executed{
				command: line,
				result:  fmt.Sprintf("ERROR: command produced no tokens: %s", line),
			})
			continue
		}

		command := strings.ToUpper(tokens[0])
		args := tokens[1:]

		cmdArgs := make([]any, 0, len(tokens))
		cmdArgs = append(cmdArgs, command)
		for _, arg := range args {
			cmdArgs = append(cmdArgs, arg)
		}

		start := time.Now()
		value, err := do(ctx, cmdArgs...)
		c.logger.LogCommand(line, time.Since(start))

		switch {
		case errors.Is(err, goredis.Nil):
			value = nil
		case err != nil:
			// command-level failures become part of the result stream,
			// later commands still run
			value = fmt.Sprintf("ERROR: %v", err)
		}
		results = append(results, executed{command: command, args: args, result: value})
	}

	if len(results) == 1 {
		return singleResult(results[0].command, results[0].result), nil
	}

	result := &types.Result{
		Columns:  []string{"command", "args", "result"},
		IsSelect: true,
	}
	for _, r := range results {
		result.Rows = append(result.Rows, []any{
			r.command,
			strings.Join(r.args, " "),
			formatValue(r.result),
		})
	}
	return result, nil
}

// Close closes the client
func (c *Conn) Close() error {
	return c.client.Close()
}

// singleResult shapes the outcome of a lone command: hashes become
// field/value tables, lists become index/value tables, everything else a
// one-cell result
func singleResult(command string, value any) *types.Result {
	if m := asStringMap(value); m != nil && (command == "HGETALL" || command == "CONFIG") {
		result := &types.Result{Columns: []string{"field", "value"}, IsSelect: true}
		for _, kv := range m {
			result.Rows = append(result.Rows, []any{kv[0], kv[1]})
		}
		return result
	}

	if list, ok := value.([]any); ok {
		result := &types.Result{Columns: []string{"index", "value"}, IsSelect: true}
		for i, item := range list {
			result.Rows = append(result.Rows, []any{i, formatValue(item)})
		}
		return result
	}

	return &types.Result{
		Columns:  []string{"result"},
		Rows:     [][]any{{formatValue(value)}},
		IsSelect: true,
	}
}

// asStringMap normalizes the map shapes go-redis can return into ordered
// key/value pairs, or nil when the value is not a map
func asStringMap(value any) [][2]string {
	switch m := value.(type) {
	case map[string]string:
		pairs := make([][2]string, 0, len(m))
		for k, v := range m {
			pairs = append(pairs, [2]string{k, v})
		}
		return pairs
	case map[any]any:
		pairs := make([][2]string, 0, len(m))
		for k, v := range m {
			pairs = append(pairs, [2]string{fmt.Sprintf("%v", k), formatValue(v)})
		}
		return pairs
	default:
		return nil
	}
}

// formatValue renders a Redis reply for display, following redis-cli
// conventions for nils, lists and hashes
func formatValue(value any) string {
	switch val := value.(type) {
	case nil:
		return "(nil)"
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "OK"
		}
		return "(error)"
	case []any:
		if len(val) == 0 {
			return "(empty list)"
		}
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprintf("%d) %s", i+1, formatValue(item))
		}
		return strings.Join(parts, "\n")
	case map[string]string:
		if len(val) == 0 {
			return "(empty hash)"
		}
		var parts []string
		for k, v := range val {
			parts = append(parts, fmt.Sprintf("%s: %s", k, v))
		}
		return strings.Join(parts, "\n")
	case map[any]any:
		if len(val) == 0 {
			return "(empty hash)"
		}
		var parts []string
		for k, v := range val {
			parts = append(parts, fmt.Sprintf("%v: %s", k, formatValue(v)))
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprintf("%v", val)
	}
}
