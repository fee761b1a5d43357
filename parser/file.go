package parser

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/rediwo/redi-query/registry"
	"github.com/rediwo/redi-query/types"
)

// ParsedFile is the outcome of splitting a query file into its connection
// header and body. Params carries only fields explicitly present in the
// header; Query is the body text trimmed of leading/trailing blank lines.
type ParsedFile struct {
	Params types.Params
	Query  string
}

// Parse splits file content into connection header and query body.
//
// Header lines are comments of the form "<marker> key: value" using any
// comment marker known to the registry:
//
//	-- host: localhost
//	-- user: myuser
//	-- db: mydb
//	// url: mongodb://localhost:27017/mydb
//
// The header ends at the first line that is not a recognized key/value
// comment: a blank line (consumed), any other comment, or the first line
// of query text. Everything from that point on belongs to the body
// verbatim; the split is single-pass and never re-enters the header state.
func Parse(reg *registry.Registry, content string) ParsedFile {
	var result ParsedFile

	markers := reg.CommentMarkers()
	headerPattern := buildHeaderPattern(markers)

	var queryLines []string
	headerEnded := false

	for _, line := range strings.Split(content, "\n") {
		if headerEnded {
			queryLines = append(queryLines, line)
			continue
		}

		stripped := strings.TrimSpace(line)
		if match := headerPattern.FindStringSubmatch(stripped); match != nil {
			key := strings.ToLower(match[1])
			value := match[2]

			if key == "url" {
				result.Params.Apply(ResolveURL(reg, value))
				continue
			}
			if applyHeaderKey(&result.Params, key, value) {
				continue
			}
			// key:value shaped comment, but not a recognized header key
			headerEnded = true
			queryLines = append(queryLines, line)
			continue
		}

		switch {
		case hasAnyPrefix(stripped, markers):
			// plain comment, belongs to the query
			headerEnded = true
			queryLines = append(queryLines, line)
		case stripped == "":
			// blank line terminates the header without entering the body
			headerEnded = true
		default:
			// first substantive line of query text
			headerEnded = true
			queryLines = append(queryLines, line)
		}
	}

	result.Query = strings.TrimSpace(strings.Join(queryLines, "\n"))
	return result
}

// ParseFile reads and parses a query file from disk
func ParseFile(reg *registry.Registry, path string) (ParsedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ParsedFile{}, fmt.Errorf("failed to read query file: %w", err)
	}
	return Parse(reg, string(content)), nil
}

// ResolveURL maps a connection URL to header parameters through the
// registry. The scheme selects the driver; unrecognized schemes fall back
// to the default MySQL driver rather than failing (permissive by design).
func ResolveURL(reg *registry.Registry, raw string) types.Params {
	u, err := url.Parse(raw)
	if err != nil {
		return types.Params{}
	}

	driver := reg.Resolve(u.Scheme)
	if driver == nil {
		driver = reg.Resolve(string(types.DriverMySQL))
	}
	if driver == nil {
		return types.Params{}
	}
	return driver.URLParams(u, raw)
}

// RenderHeader serializes params back into header comment lines using the
// given comment marker. Re-parsing the rendered header yields the same
// params. URL-derived params round-trip through their retained connection
// string; a Driver tag without one has no header form (the grammar has no
// driver key) and is omitted.
func RenderHeader(p types.Params, marker string) string {
	var lines []string
	add := func(key, value string) {
		lines = append(lines, fmt.Sprintf("%s %s: %s", marker, key, value))
	}

	if p.ConnString != nil {
		add("url", *p.ConnString)
	}
	if p.Host != nil {
		add("host", *p.Host)
	}
	if p.Port != nil {
		add("port", strconv.Itoa(*p.Port))
	}
	if p.User != nil {
		add("user", *p.User)
	}
	if p.Password != nil {
		add("password", *p.Password)
	}
	if p.Database != nil {
		add("db", *p.Database)
	}
	return strings.Join(lines, "\n")
}

// buildHeaderPattern compiles the "<marker> key: value" recognizer for the
// registered comment markers
func buildHeaderPattern(markers []string) *regexp.Regexp {
	escaped := make([]string, len(markers))
	for i, m := range markers {
		escaped[i] = regexp.QuoteMeta(m)
	}
	return regexp.MustCompile(`^(?:` + strings.Join(escaped, "|") + `)\s*(\w+)\s*:\s*(.+?)\s*$`)
}

// applyHeaderKey sets the param field a header key maps to. Returns false
// when the key is not a recognized header key. Invalid port values are
// dropped silently, leaving the field unset.
func applyHeaderKey(p *types.Params, key, value string) bool {
	switch key {
	case "host", "server":
		p.Host = &value
	case "port":
		if port, err := strconv.Atoi(value); err == nil {
			p.Port = &port
		}
	case "user", "username":
		p.User = &value
	case "password", "pass":
		p.Password = &value
	case "db", "database", "schema":
		p.Database = &value
	default:
		return false
	}
	return true
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
