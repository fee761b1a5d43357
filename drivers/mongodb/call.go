package mongodb

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Call is the structured form of a fluent MongoDB command such as
// db.users.find({"age": {"$gt": 21}}, {"name": 1}): the collection, the
// method, and the parsed JSON argument values in order.
type Call struct {
	Collection string
	Method     string
	Args       []any
}

var callPattern = regexp.MustCompile(`(?s)^db\.(\w+)\.(\w+)\s*\((.*)\)\s*;?\s*$`)

// ParseCall parses a db.collection.method(args) command string
func ParseCall(command string) (*Call, error) {
	command = strings.TrimSpace(command)

	match := callPattern.FindStringSubmatch(command)
	if match == nil {
		return nil, fmt.Errorf("invalid MongoDB command, expected db.collection.method(args), got: %s", command)
	}

	args, err := parseArgs(strings.TrimSpace(match[3]))
	if err != nil {
		return nil, err
	}
	return &Call{
		Collection: match[1],
		Method:     match[2],
		Args:       args,
	}, nil
}

// parseArgs splits a top-level comma-separated list of JSON values.
// Unmarshaling the whole list as a JSON array would be wrong: commas also
// appear inside nested objects, arrays and string literals. The scanner
// tracks string state, a one-character escape flag and bracket depth by
// hand; only a comma at depth zero outside a string ends an argument.
func parseArgs(argsStr string) ([]any, error) {
	if argsStr == "" {
		return nil, nil
	}

	var args []any
	var current strings.Builder
	depth := 0
	inString := false
	escaped := false

	flush := func() error {
		arg := strings.TrimSpace(current.String())
		current.Reset()
		if arg == "" {
			return nil
		}
		var value any
		if err := json.Unmarshal([]byte(arg), &value); err != nil {
			return fmt.Errorf("invalid JSON in argument %q: %w", arg, err)
		}
		args = append(args, value)
		return nil
	}

	for _, ch := range argsStr {
		if escaped {
			current.WriteRune(ch)
			escaped = false
			continue
		}
		if ch == '\\' {
			current.WriteRune(ch)
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			current.WriteRune(ch)
			continue
		}
		if !inString {
			switch ch {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			case ',':
				if depth == 0 {
					if err := flush(); err != nil {
						return nil, err
					}
					continue
				}
			}
		}
		current.WriteRune(ch)
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return args, nil
}
