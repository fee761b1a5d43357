package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/rediwo/redi-query/config"
	"github.com/rediwo/redi-query/database"
	"github.com/rediwo/redi-query/formatter"
	"github.com/rediwo/redi-query/parser"
	"github.com/rediwo/redi-query/utils"
)

const (
	version = "0.1.0"
	usage   = `redi-query - execute query files with connection headers

Usage:
  redi-query [flags] <file>

The file is a query annotated with an optional connection header in
comments. Use '-' to read from stdin.

  -- host: localhost
  -- user: myuser
  -- db: mydb
  SELECT * FROM users;

Or a URL directive, whose scheme selects the backend:

  // url: mongodb://localhost:27017/mydb
  db.users.find({"active": true})

Supported backends: mysql, postgresql, sqlite, mongodb, redis.
Connection priority: file header > REDIQ_* environment variables > defaults.

Flags:
  -format   Output format: table|csv|json|record (default: table)
  -env      Path to a .env file to load (default: ./.env if present)
  -verbose  Log connection info and executed statements to stderr
  -version  Show version information
  -help     Show this help message

Environment:
  REDIQ_DRIVER, REDIQ_HOST, REDIQ_PORT, REDIQ_USER, REDIQ_PASSWORD, REDIQ_DB
`
)

func main() {
	var (
		format      string
		envFile     string
		verbose     bool
		showVersion bool
		help        bool
	)

	flag.StringVar(&format, "format", "table", "Output format: table|csv|json|record")
	flag.StringVar(&envFile, "env", "", "Path to a .env file to load")
	flag.BoolVar(&verbose, "verbose", false, "Log connection info and executed statements")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&help, "help", false, "Show help message")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("redi-query v%s\n", version)
		os.Exit(0)
	}
	if help || flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fatalf("failed to load env file %s: %v", envFile, err)
		}
	} else {
		// default .env is optional
		_ = godotenv.Load()
	}

	logger := utils.NewDefaultLogger("redi-query")
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(utils.LogLevelDebug)
	} else {
		logger.SetLevel(utils.LogLevelError)
	}

	reg := database.DefaultRegistry(logger)

	content, err := readInput(flag.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}

	parsed := parser.Parse(reg, content)
	if parsed.Query == "" {
		fatalf("no query found in file")
	}

	cfg := config.Merge(reg, config.FromEnv(reg), parsed.Params)
	if errs := config.Validate(reg, cfg); len(errs) > 0 {
		for _, msg := range errs {
			fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		}
		os.Exit(1)
	}

	if verbose {
		target := fmt.Sprintf("%s: %s", cfg.Driver, cfg.Host)
		if cfg.Port != 0 {
			target += fmt.Sprintf(":%d", cfg.Port)
		}
		if cfg.Database != "" {
			target += "/" + cfg.Database
		}
		logger.Info("connecting to %s", target)
		if cfg.User != "" {
			logger.Info("user: %s", cfg.User)
		}
	}

	driver := reg.Resolve(string(cfg.Driver))
	if driver == nil {
		fatalf("unknown database driver: %s", cfg.Driver)
	}

	ctx := context.Background()
	conn, err := driver.Connect(ctx, cfg)
	if err != nil {
		fatalf("%v", err)
	}
	defer conn.Close()

	result, err := conn.Execute(ctx, parsed.Query)
	if err != nil {
		fatalf("%v", err)
	}

	output, err := formatter.Render(result, formatter.Format(format))
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(output)
}

// readInput reads the query file, or stdin when path is "-"
func readInput(path string) (string, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read query file: %w", err)
	}
	return string(content), nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
